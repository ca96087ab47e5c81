package manager

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shubh-37/social-manager/internal/backend"
	"github.com/shubh-37/social-manager/internal/models"
)

// Backend is the remote API the manager drives. *backend.Client
// implements it.
type Backend interface {
	Connect(ctx context.Context) (*backend.ConnectResponse, error)
	BusinessProfile(ctx context.Context, websiteURL string) (*models.BusinessProfile, error)
	IndustryNews(ctx context.Context, industry string) ([]models.NewsItem, error)
	GeneratePosts(ctx context.Context, req backend.GeneratePostsRequest) ([]string, error)
	CreateSchedule(ctx context.Context, frequency int, preferredDays []models.Weekday) (models.Schedule, error)
	AssignDay(ctx context.Context, day models.Weekday, content string) (models.Schedule, error)
	GetSchedule(ctx context.Context) (models.Schedule, error)
	DeleteDay(ctx context.Context, day models.Weekday) (models.Schedule, error)
	ResetSchedule(ctx context.Context) error
	Publish(ctx context.Context, req backend.PublishRequest) (*backend.PublishResponse, error)
}

// Manager holds the state of one social media manager view and runs the
// backend pipelines that change it. Methods are safe for concurrent use;
// the lock is never held across a backend call.
type Manager struct {
	api    Backend
	prompt Prompter
	log    *logrus.Entry

	mu    sync.Mutex
	state View

	genRun   run
	schedRun run

	// Schedule writes are applied in the order they were initiated.
	scheduleSeq     uint64
	scheduleApplied uint64

	connectSeq uint64
	publishSeq uint64
}

type Option func(*Manager)

func WithPrompter(p Prompter) Option {
	return func(m *Manager) {
		m.prompt = p
	}
}

func WithLogger(log *logrus.Entry) Option {
	return func(m *Manager) {
		m.log = log
	}
}

func New(api Backend, opts ...Option) *Manager {
	m := &Manager{
		api:    api,
		prompt: silentPrompter{},
		log:    logrus.NewEntry(logrus.StandardLogger()),
		state: View{
			Planner: PlannerState{Schedule: models.Schedule{}},
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.WithField("component", "manager")
	return m
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// run identifies the in-flight execution of a pipeline. Starting a new run
// cancels the previous one; results carrying an old id are discarded.
type run struct {
	id     string
	cancel context.CancelFunc
}

// beginLocked must be called with m.mu held.
func (r *run) beginLocked(ctx context.Context) (context.Context, string) {
	if r.cancel != nil {
		r.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	r.id = uuid.NewString()
	r.cancel = cancel
	return runCtx, r.id
}

// endLocked must be called with m.mu held.
func (r *run) endLocked(id string) bool {
	if r.id != id {
		return false
	}
	r.cancel()
	*r = run{}
	return true
}

// applyRun runs fn against the state if id is still the current run.
func (m *Manager) applyRun(r *run, id string, fn func(*View)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.id != id {
		return ErrSuperseded
	}
	fn(&m.state)
	return nil
}

func (m *Manager) current(r *run, id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return r.id == id
}

// nextScheduleSeqLocked must be called with m.mu held.
func (m *Manager) nextScheduleSeqLocked() uint64 {
	m.scheduleSeq++
	return m.scheduleSeq
}

func (m *Manager) nextScheduleSeq() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nextScheduleSeqLocked()
}

// setScheduleLocked replaces the schedule unless a newer write already
// landed. It must be called with m.mu held.
func (m *Manager) setScheduleLocked(seq uint64, schedule models.Schedule) bool {
	if seq < m.scheduleApplied {
		m.log.WithField("seq", seq).Debug("dropping stale schedule response")
		return false
	}
	m.scheduleApplied = seq
	if schedule == nil {
		schedule = models.Schedule{}
	}
	m.state.Planner.Schedule = schedule
	return true
}

func (m *Manager) setSchedule(seq uint64, schedule models.Schedule) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setScheduleLocked(seq, schedule)
}

func (m *Manager) alert(ctx context.Context, message string) {
	m.log.WithField("alert", message).Info("alerting user")
	m.prompt.Alert(ctx, message)
}
