package manager

import (
	"context"
	"errors"

	"github.com/shubh-37/social-manager/internal/backend"
	"github.com/shubh-37/social-manager/internal/models"
)

// Connect links the social account. On success the page id is recorded
// and publishing becomes possible.
func (m *Manager) Connect(ctx context.Context) error {
	m.mu.Lock()
	m.connectSeq++
	seq := m.connectSeq
	m.state.Connection = models.ConnectionStatus{State: models.Connecting}
	m.mu.Unlock()

	resp, err := m.api.Connect(ctx)

	var status models.ConnectionStatus
	switch {
	case err != nil:
		status = models.ConnectionStatus{State: models.ConnectionFailed, Message: backend.MessageOr(err, msgConnectFailed)}
	case resp.FBPageID == "":
		status = models.ConnectionStatus{State: models.ConnectionFailed, Message: msgConnectFailed}
		err = errors.New(msgConnectFailed)
	default:
		status = models.ConnectionStatus{State: models.Connected, PageID: resp.FBPageID}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if seq != m.connectSeq {
		return ErrSuperseded
	}
	m.state.Connection = status
	if err != nil {
		m.log.WithError(err).Warn("connect failed")
		return err
	}
	m.log.WithField("page_id", status.PageID).Info("social account connected")
	return nil
}

// PageID returns the connected page id, or "" when not connected.
func (m *Manager) PageID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Connection.State != models.Connected {
		return ""
	}
	return m.state.Connection.PageID
}
