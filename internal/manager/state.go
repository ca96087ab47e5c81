package manager

import (
	"github.com/shubh-37/social-manager/internal/models"
)

// GenerationState is everything the full generation pipeline produces.
type GenerationState struct {
	Profile *models.BusinessProfile
	News    []models.NewsItem
	// Drafts are the editable generated posts, addressed by position.
	Drafts []string

	ProfileError    string
	NewsError       string
	GenerationError string

	Running           bool
	NewsLoading       bool
	GenerationLoading bool
}

// PlannerState mirrors the backend's weekly schedule.
type PlannerState struct {
	Schedule models.Schedule
	Error    string
	Loading  bool
}

type DraftEdit struct {
	Index int
	Text  string
}

type DayEdit struct {
	Day  models.Weekday
	Text string
}

// View is a point in time copy of all client state.
type View struct {
	Connection models.ConnectionStatus
	Generation GenerationState
	Planner    PlannerState
	Publish    *models.PublishResult

	// At most one draft and one scheduled day are edited at a time.
	DraftEdit *DraftEdit
	DayEdit   *DayEdit
}

func (v View) clone() View {
	out := v

	if v.Generation.Profile != nil {
		profile := *v.Generation.Profile
		profile.Services = append(models.Services(nil), v.Generation.Profile.Services...)
		out.Generation.Profile = &profile
	}
	out.Generation.News = append([]models.NewsItem(nil), v.Generation.News...)
	out.Generation.Drafts = append([]string(nil), v.Generation.Drafts...)
	out.Planner.Schedule = v.Planner.Schedule.Clone()

	if v.Publish != nil {
		publish := *v.Publish
		out.Publish = &publish
	}
	if v.DraftEdit != nil {
		edit := *v.DraftEdit
		out.DraftEdit = &edit
	}
	if v.DayEdit != nil {
		edit := *v.DayEdit
		out.DayEdit = &edit
	}
	return out
}
