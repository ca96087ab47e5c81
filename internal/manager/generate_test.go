package manager

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubh-37/social-manager/internal/backend"
	"github.com/shubh-37/social-manager/internal/models"
)

func TestGenerate_RunsProfileNewsAndGeneration(t *testing.T) {
	m, fb, _ := newTestManager(t)

	require.NoError(t, m.Generate(context.Background(), bakeryRequest()))

	view := m.Snapshot()
	require.NotNil(t, view.Generation.Profile)
	assert.Equal(t, "bakery", view.Generation.Profile.Industry)
	assert.Equal(t, models.Services{"bread", "cakes"}, view.Generation.Profile.Services)
	assert.Equal(t, []models.NewsItem{
		{Headline: "Flour prices drop", URL: "https://news.test/1"},
		{Headline: "Sourdough is back"},
	}, view.Generation.News)
	assert.Len(t, view.Generation.Drafts, 3)
	assert.False(t, view.Generation.Running)
	assert.False(t, view.Generation.NewsLoading)
	assert.False(t, view.Generation.GenerationLoading)

	assert.Equal(t, []string{
		"POST /api/business/profile",
		"POST /api/news/industry-news",
		"POST /api/content/generate-posts",
	}, fb.routes())

	calls := fb.recorded()
	assert.Equal(t, "https://acme.test", calls[0].Body["website_url"])
	assert.Equal(t, "bakery", calls[1].Body["industry"])
	gen := calls[2].Body
	assert.Equal(t, "Acme Bakery", gen["name"])
	assert.Equal(t, "motivational", gen["tone"])
	assert.Equal(t, "promo", gen["post_type"])
	assert.Equal(t, float64(3), gen["count"])
	assert.Equal(t, []interface{}{"Flour prices drop", "Sourdough is back"}, gen["news"])
}

func TestGenerate_TrimsURLAndAcceptsStringNews(t *testing.T) {
	m, fb, _ := newTestManager(t)
	fb.news = []interface{}{"plain headline"}

	req := bakeryRequest()
	req.BusinessURL = "  https://acme.test  "
	require.NoError(t, m.Generate(context.Background(), req))

	calls := fb.recorded()
	assert.Equal(t, "https://acme.test", calls[0].Body["website_url"])
	assert.Equal(t, []interface{}{"plain headline"}, calls[2].Body["news"])
}

func TestGenerate_EmptyURLMakesNoCalls(t *testing.T) {
	m, fb, _ := newTestManager(t)

	req := bakeryRequest()
	req.BusinessURL = "   "
	err := m.Generate(context.Background(), req)

	require.Error(t, err)
	assert.Equal(t, StageProfile, StageOf(err))
	assert.Equal(t, "Please enter a valid business website URL.", m.Snapshot().Generation.ProfileError)
	assert.Empty(t, fb.recorded())
}

func TestGenerate_MissingIndustryStopsAfterProfile(t *testing.T) {
	m, fb, _ := newTestManager(t)
	fb.profile = map[string]interface{}{"name": "Acme"}

	err := m.Generate(context.Background(), bakeryRequest())

	require.Error(t, err)
	assert.Equal(t, StageProfile, StageOf(err))
	view := m.Snapshot()
	assert.Equal(t, "Industry info not found in business profile", view.Generation.ProfileError)
	require.NotNil(t, view.Generation.Profile)
	assert.Equal(t, "Acme", view.Generation.Profile.Name)
	assert.Equal(t, []string{"POST /api/business/profile"}, fb.routes())
}

func TestGenerate_ProfileFailureUsesServerMessage(t *testing.T) {
	m, fb, prompter := newTestManager(t)
	fb.override("POST /api/business/profile", errorReply(http.StatusInternalServerError, "site unreachable"))

	err := m.Generate(context.Background(), bakeryRequest())

	assert.Equal(t, StageProfile, StageOf(err))
	assert.Equal(t, "site unreachable", m.Snapshot().Generation.ProfileError)
	assert.Empty(t, prompter.Alerts())
}

func TestGenerate_NewsFailureKeepsProfile(t *testing.T) {
	m, fb, _ := newTestManager(t)
	fb.override("POST /api/news/industry-news", errorReply(http.StatusInternalServerError, ""))

	err := m.Generate(context.Background(), bakeryRequest())

	assert.Equal(t, StageNews, StageOf(err))
	view := m.Snapshot()
	assert.Equal(t, "Failed to fetch industry news", view.Generation.NewsError)
	assert.NotNil(t, view.Generation.Profile)
	assert.Empty(t, view.Generation.Drafts)
	assert.False(t, view.Generation.NewsLoading)
	assert.NotContains(t, fb.routes(), "POST /api/content/generate-posts")
}

func TestGenerate_GenerationFailure(t *testing.T) {
	m, fb, _ := newTestManager(t)
	fb.override("POST /api/content/generate-posts", errorReply(http.StatusBadGateway, ""))

	err := m.Generate(context.Background(), bakeryRequest())

	assert.Equal(t, StageGeneration, StageOf(err))
	view := m.Snapshot()
	assert.Equal(t, "Failed to generate posts", view.Generation.GenerationError)
	assert.Len(t, view.Generation.News, 2)
	assert.False(t, view.Generation.GenerationLoading)
}

func TestGenerate_InvalidPreferencesAlertAndMakeNoCalls(t *testing.T) {
	m, fb, prompter := newTestManager(t)

	req := bakeryRequest()
	req.Preferences.Count = 0
	err := m.Generate(context.Background(), req)

	assert.Equal(t, StageOther, StageOf(err))
	assert.Empty(t, m.Snapshot().Generation.GenerationError)
	assert.Equal(t, []string{"Number of posts must be at least 1."}, prompter.Alerts())
	assert.Empty(t, fb.recorded())
}

func TestGenerate_ResetsPreviousRun(t *testing.T) {
	m, fb, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.Connect(ctx))
	require.NoError(t, m.Generate(ctx, bakeryRequest()))
	require.NoError(t, m.CreateSchedule(ctx, 1, []models.Weekday{models.Monday}))
	require.NoError(t, m.Publish(ctx, models.Monday))
	require.NoError(t, m.BeginDraftEdit(0))

	fb.override("POST /api/business/profile", errorReply(http.StatusInternalServerError, "boom"))
	require.Error(t, m.Generate(ctx, bakeryRequest()))

	view := m.Snapshot()
	assert.Nil(t, view.Generation.Profile)
	assert.Empty(t, view.Generation.News)
	assert.Empty(t, view.Generation.Drafts)
	assert.Empty(t, view.Planner.Schedule)
	assert.Nil(t, view.Publish)
	assert.Nil(t, view.DraftEdit)
	assert.Equal(t, models.Connected, view.Connection.State)
}

// blockingProfile holds the first profile call until its context ends.
type blockingProfile struct {
	Backend
	started chan struct{}
	calls   int
}

func (b *blockingProfile) BusinessProfile(ctx context.Context, websiteURL string) (*models.BusinessProfile, error) {
	b.calls++
	if b.calls == 1 {
		close(b.started)
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return b.Backend.BusinessProfile(ctx, websiteURL)
}

func TestGenerate_NewRunSupersedesOlder(t *testing.T) {
	_, srv := newFakeBackend(t)
	api := &blockingProfile{
		Backend: backend.NewClient(srv.URL, backend.WithLogger(quietLogger())),
		started: make(chan struct{}),
	}
	m := New(api, WithLogger(quietLogger()))
	ctx := context.Background()

	firstErr := make(chan error, 1)
	go func() {
		firstErr <- m.Generate(ctx, GenerateRequest{BusinessURL: "https://old.test", Preferences: models.DefaultPreferences()})
	}()
	<-api.started

	require.NoError(t, m.Generate(ctx, bakeryRequest()))
	assert.True(t, errors.Is(<-firstErr, ErrSuperseded))

	view := m.Snapshot()
	assert.Empty(t, view.Generation.ProfileError)
	assert.Len(t, view.Generation.Drafts, 3)
	assert.False(t, view.Generation.Running)
}

func TestRouteStageError_OtherStageAlerts(t *testing.T) {
	m, _, prompter := newTestManager(t)

	m.mu.Lock()
	_, id := m.genRun.beginLocked(context.Background())
	m.mu.Unlock()

	err := m.routeStageError(context.Background(), id, errors.New("something odd"), m.log)

	assert.EqualError(t, err, "something odd")
	assert.Equal(t, []string{"something odd"}, prompter.Alerts())
	view := m.Snapshot()
	assert.Empty(t, view.Generation.ProfileError)
	assert.Empty(t, view.Generation.NewsError)
	assert.Empty(t, view.Generation.GenerationError)
}
