package manager

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/shubh-37/social-manager/internal/backend"
	"github.com/shubh-37/social-manager/internal/models"
)

// Load fetches the current schedule. A 404 means the backend has no
// schedule and empties the mirror; other failures are ignored and leave
// it as it was.
func (m *Manager) Load(ctx context.Context) {
	seq := m.nextScheduleSeq()
	schedule, err := m.api.GetSchedule(ctx)
	switch {
	case backend.IsStatus(err, http.StatusNotFound):
		m.setSchedule(seq, models.Schedule{})
	case err != nil:
		m.log.WithError(err).Debug("schedule load failed")
	default:
		m.setSchedule(seq, schedule)
	}
}

// Schedule returns a copy of the schedule mirror.
func (m *Manager) Schedule() models.Schedule {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Planner.Schedule.Clone()
}

// CreateSchedule asks the backend for a schedule shell and fills the first
// frequency preferred days, in the order given, with the drafts at the
// same positions. Days are assigned one at a time. A day that fails to
// assign does not stop the others; the failures come back as an
// *AssignError after the schedule has been refreshed.
func (m *Manager) CreateSchedule(ctx context.Context, frequency int, preferredDays []models.Weekday) error {
	m.mu.Lock()
	if err := validateScheduleRequest(len(m.state.Generation.Drafts), frequency, preferredDays); err != nil {
		m.state.Planner.Error = err.Error()
		m.mu.Unlock()
		return err
	}

	runCtx, id := m.schedRun.beginLocked(ctx)
	m.state.Planner.Error = ""
	m.state.Planner.Loading = true
	m.setScheduleLocked(m.nextScheduleSeqLocked(), models.Schedule{})
	m.state.Publish = nil
	m.state.DayEdit = nil

	days := append([]models.Weekday(nil), preferredDays[:frequency]...)
	posts := append([]string(nil), m.state.Generation.Drafts[:frequency]...)
	m.mu.Unlock()

	log := m.log.WithField("run_id", id)
	log.WithField("days", days).Info("creating schedule")

	err := m.createSchedule(runCtx, id, frequency, preferredDays, days, posts)
	if err != nil && !errors.Is(err, ErrSuperseded) {
		_ = m.applyRun(&m.schedRun, id, func(v *View) {
			v.Planner.Error = err.Error()
		})
		log.WithError(err).Warn("schedule creation failed")
	}

	m.mu.Lock()
	if m.schedRun.endLocked(id) {
		m.state.Planner.Loading = false
	}
	m.mu.Unlock()
	return err
}

func (m *Manager) createSchedule(ctx context.Context, id string, frequency int, preferredDays, days []models.Weekday, posts []string) error {
	if _, err := m.api.CreateSchedule(ctx, frequency, preferredDays); err != nil {
		if !m.current(&m.schedRun, id) {
			return ErrSuperseded
		}
		return &messageError{message: backend.MessageOr(err, msgScheduleFailed), err: err}
	}

	assignErr := &AssignError{Failures: map[string]error{}}
	for i, day := range days {
		if _, err := m.api.AssignDay(ctx, day, posts[i]); err != nil {
			if !m.current(&m.schedRun, id) {
				return ErrSuperseded
			}
			m.log.WithField("day", day).WithError(err).Warn("assigning post to day failed")
			assignErr.Days = append(assignErr.Days, string(day))
			assignErr.Failures[string(day)] = err
		}
	}

	seq := m.nextScheduleSeq()
	schedule, err := m.api.GetSchedule(ctx)
	if err != nil {
		if !m.current(&m.schedRun, id) {
			return ErrSuperseded
		}
		return &messageError{message: backend.MessageOr(err, msgScheduleLoad), err: err}
	}
	if err := m.applyRun(&m.schedRun, id, func(*View) {
		m.setScheduleLocked(seq, schedule)
	}); err != nil {
		return err
	}

	if len(assignErr.Days) > 0 {
		return assignErr
	}
	return nil
}

// UpdatePost replaces the content scheduled for day.
func (m *Manager) UpdatePost(ctx context.Context, day models.Weekday, content string) error {
	if err := validateDay(day); err != nil {
		m.alert(ctx, err.Error())
		return err
	}
	seq := m.nextScheduleSeq()
	schedule, err := m.api.AssignDay(ctx, day, content)
	if err != nil {
		m.alert(ctx, backend.MessageOr(err, msgUpdateFailed))
		return err
	}
	m.setSchedule(seq, schedule)
	return nil
}

// DeletePost removes the post scheduled for day after the user confirms.
func (m *Manager) DeletePost(ctx context.Context, day models.Weekday) error {
	if err := validateDay(day); err != nil {
		m.alert(ctx, err.Error())
		return err
	}
	ok, err := m.prompt.Confirm(ctx, fmt.Sprintf("Delete post scheduled for %s?", day))
	if err != nil {
		return fmt.Errorf("confirm delete: %w", err)
	}
	if !ok {
		return ErrDeclined
	}

	seq := m.nextScheduleSeq()
	schedule, err := m.api.DeleteDay(ctx, day)
	if err != nil {
		m.alert(ctx, backend.MessageOr(err, msgDeleteFailed))
		return err
	}
	m.setSchedule(seq, schedule)
	return nil
}

// ResetSchedule clears the whole schedule on the backend.
func (m *Manager) ResetSchedule(ctx context.Context) error {
	seq := m.nextScheduleSeq()
	if err := m.api.ResetSchedule(ctx); err != nil {
		m.alert(ctx, backend.MessageOr(err, msgResetFailed))
		return err
	}
	m.setSchedule(seq, models.Schedule{})
	return nil
}

// StartDayEdit copies the content scheduled for day into the edit buffer.
func (m *Manager) StartDayEdit(day models.Weekday) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.state.Planner.Schedule[day]
	if !ok {
		return ErrNotScheduled
	}
	m.state.DayEdit = &DayEdit{Day: day, Text: content}
	return nil
}

func (m *Manager) SetDayEditText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.DayEdit == nil {
		return ErrNoDayEdit
	}
	m.state.DayEdit.Text = text
	return nil
}

// SaveDayEdit leaves edit mode and sends the buffer through UpdatePost.
func (m *Manager) SaveDayEdit(ctx context.Context) error {
	m.mu.Lock()
	edit := m.state.DayEdit
	m.state.DayEdit = nil
	m.mu.Unlock()
	if edit == nil {
		return ErrNoDayEdit
	}
	return m.UpdatePost(ctx, edit.Day, edit.Text)
}

func (m *Manager) CancelDayEdit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.DayEdit = nil
}
