package manager

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubh-37/social-manager/internal/models"
)

func TestConnect_RecordsPageID(t *testing.T) {
	m, _, _ := newTestManager(t)

	require.NoError(t, m.Connect(context.Background()))

	conn := m.Snapshot().Connection
	assert.Equal(t, models.Connected, conn.State)
	assert.Equal(t, "1234567890", conn.PageID)
	assert.Equal(t, "1234567890", m.PageID())
}

func TestConnect_ServerError(t *testing.T) {
	m, fb, _ := newTestManager(t)
	fb.override("POST /api/facebook/connect", errorReply(http.StatusServiceUnavailable, "token expired"))

	require.Error(t, m.Connect(context.Background()))

	conn := m.Snapshot().Connection
	assert.Equal(t, models.ConnectionFailed, conn.State)
	assert.Equal(t, "Error: token expired", conn.String())
	assert.Empty(t, m.PageID())
}

func TestConnect_MissingPageID(t *testing.T) {
	m, fb, _ := newTestManager(t)
	fb.override("POST /api/facebook/connect", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "connected"})
	})

	require.Error(t, m.Connect(context.Background()))
	assert.Equal(t, "Error: Unknown error", m.Snapshot().Connection.String())
}

func TestPublish_WithoutConnectionAlertsAndSendsNothing(t *testing.T) {
	m, fb, prompter := newTestManager(t)

	err := m.Publish(context.Background(), models.Monday)

	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Equal(t, []string{"Connect your Facebook page first."}, prompter.Alerts())
	assert.Empty(t, fb.recorded())
	assert.Nil(t, m.Snapshot().Publish)
}

func TestPublish_StoresLink(t *testing.T) {
	m, fb, _ := newTestManager(t)
	ctx := context.Background()
	fb.schedule = map[string]string{"Mon": "monday post"}
	m.Load(ctx)
	require.NoError(t, m.Connect(ctx))

	require.NoError(t, m.Publish(ctx, models.Monday))

	result := m.Snapshot().Publish
	require.NotNil(t, result)
	assert.False(t, result.Pending)
	assert.Equal(t, "https://facebook.com/1234567890/posts/mock_post_1", result.Link())

	calls := fb.recorded()
	body := calls[len(calls)-1].Body
	assert.Equal(t, "1234567890", body["page_id"])
	assert.Equal(t, "Mon", body["day"])
	assert.Equal(t, "monday post", body["content"])
}

func TestPublish_FailureStoresMessage(t *testing.T) {
	m, fb, _ := newTestManager(t)
	ctx := context.Background()
	require.NoError(t, m.Connect(ctx))
	fb.override("POST /api/facebook/publish", errorReply(http.StatusNotFound, "No scheduled post for 'Tue'"))

	require.Error(t, m.Publish(ctx, models.Tuesday))

	assert.Equal(t, "No scheduled post for 'Tue'", m.Snapshot().Publish.Error)
}

func TestPublish_FailureWithoutMessage(t *testing.T) {
	m, fb, _ := newTestManager(t)
	ctx := context.Background()
	require.NoError(t, m.Connect(ctx))
	fb.override("POST /api/facebook/publish", errorReply(http.StatusInternalServerError, ""))

	require.Error(t, m.Publish(ctx, models.Tuesday))

	assert.Equal(t, "Publish failed", m.Snapshot().Publish.Status())
}
