package slack

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/shubh-37/social-manager/internal/manager"
)

// SessionStore keeps one manager per channel. A channel's manager is
// created on first use and loads the current schedule right away.
type SessionStore struct {
	api       manager.Backend
	approvals *ApprovalHandler
	log       *logrus.Entry

	mu       sync.Mutex
	sessions map[string]*manager.Manager
}

func NewSessionStore(api manager.Backend, approvals *ApprovalHandler, log *logrus.Entry) *SessionStore {
	return &SessionStore{
		api:       api,
		approvals: approvals,
		log:       log,
		sessions:  make(map[string]*manager.Manager),
	}
}

func (s *SessionStore) Get(ctx context.Context, channelID string) *manager.Manager {
	s.mu.Lock()
	mgr, ok := s.sessions[channelID]
	if !ok {
		mgr = manager.New(s.api,
			manager.WithPrompter(s.approvals.Prompter(channelID)),
			manager.WithLogger(s.log.WithField("channel", channelID)),
		)
		s.sessions[channelID] = mgr
	}
	s.mu.Unlock()

	if !ok {
		s.log.WithField("channel", channelID).Info("new session")
		mgr.Load(ctx)
	}
	return mgr
}
