package manager

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/shubh-37/social-manager/internal/backend"
	"github.com/shubh-37/social-manager/internal/models"
)

// Publish posts the content scheduled for day to the connected page.
// Without a connection the user is alerted and nothing is sent.
func (m *Manager) Publish(ctx context.Context, day models.Weekday) error {
	if err := validateDay(day); err != nil {
		m.alert(ctx, err.Error())
		return err
	}

	m.mu.Lock()
	pageID := ""
	if m.state.Connection.State == models.Connected {
		pageID = m.state.Connection.PageID
	}
	if pageID == "" {
		m.mu.Unlock()
		m.alert(ctx, msgConnectFirst)
		return ErrNotConnected
	}
	content := m.state.Planner.Schedule[day]
	m.publishSeq++
	seq := m.publishSeq
	m.state.Publish = &models.PublishResult{Day: day, Pending: true}
	m.mu.Unlock()

	resp, err := m.api.Publish(ctx, backend.PublishRequest{
		PageID:  pageID,
		Day:     day,
		Content: content,
	})

	result := &models.PublishResult{Day: day}
	var apiErr *backend.APIError
	switch {
	case errors.As(err, &apiErr):
		result.Error = backend.MessageOr(err, msgPublishFailed)
	case err != nil:
		result.Error = msgPublishErrorPrefix + err.Error()
	default:
		result.PostID = resp.PostID
		result.PostLink = resp.PostLink
		result.PostURL = resp.PostURL
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if seq != m.publishSeq {
		return ErrSuperseded
	}
	m.state.Publish = result
	if err != nil {
		m.log.WithField("day", day).WithError(err).Warn("publish failed")
		return err
	}
	m.log.WithFields(logrus.Fields{"day": day, "link": result.Link()}).Info("post published")
	return nil
}
