package models

import (
	"fmt"
	"sort"
	"strings"
)

// Weekday is one of the seven schedule slots.
type Weekday string

const (
	Monday    Weekday = "Mon"
	Tuesday   Weekday = "Tue"
	Wednesday Weekday = "Wed"
	Thursday  Weekday = "Thu"
	Friday    Weekday = "Fri"
	Saturday  Weekday = "Sat"
	Sunday    Weekday = "Sun"
)

// Weekdays lists the slots in calendar order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func (d Weekday) Valid() bool {
	return d.index() >= 0
}

func (d Weekday) index() int {
	for i, w := range Weekdays {
		if w == d {
			return i
		}
	}
	return -1
}

var weekdayNames = map[string]Weekday{
	"mon": Monday, "monday": Monday,
	"tue": Tuesday, "tues": Tuesday, "tuesday": Tuesday,
	"wed": Wednesday, "wednesday": Wednesday,
	"thu": Thursday, "thurs": Thursday, "thursday": Thursday,
	"fri": Friday, "friday": Friday,
	"sat": Saturday, "saturday": Saturday,
	"sun": Sunday, "sunday": Sunday,
}

// ParseWeekday accepts short or full day names in any case.
func ParseWeekday(s string) (Weekday, error) {
	day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown weekday %q", s)
	}
	return day, nil
}

// ParseWeekdays parses a comma separated list, keeping the given order.
func ParseWeekdays(s string) ([]Weekday, error) {
	var days []Weekday
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		day, err := ParseWeekday(part)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, nil
}

// Schedule maps a weekday to the post content for that day. A missing
// key means nothing is scheduled.
type Schedule map[Weekday]string

// Days returns the scheduled days in calendar order.
func (s Schedule) Days() []Weekday {
	days := make([]Weekday, 0, len(s))
	for day := range s {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].index() < days[j].index()
	})
	return days
}

func (s Schedule) Clone() Schedule {
	out := make(Schedule, len(s))
	for day, content := range s {
		out[day] = content
	}
	return out
}
