package manager

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/shubh-37/social-manager/internal/backend"
	"github.com/shubh-37/social-manager/internal/models"
)

type recordedCall struct {
	Method string
	Path   string
	Body   map[string]interface{}
}

// fakeBackend is an in-memory stand-in for the social media manager API.
// Handlers can be overridden per route with "METHOD /path".
type fakeBackend struct {
	t *testing.T

	mu        sync.Mutex
	calls     []recordedCall
	schedule  map[string]string
	overrides map[string]http.HandlerFunc

	profile map[string]interface{}
	news    []interface{}
	posts   []string
	pageID  string
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	fb := &fakeBackend{
		t:         t,
		schedule:  map[string]string{},
		overrides: map[string]http.HandlerFunc{},
		profile: map[string]interface{}{
			"name":     "Acme Bakery",
			"industry": "bakery",
			"services": []string{"bread", "cakes"},
		},
		news: []interface{}{
			map[string]interface{}{"headline": "Flour prices drop", "url": "https://news.test/1"},
			map[string]interface{}{"headline": "Sourdough is back", "url": nil},
		},
		posts:  []string{"post one #bakery", "post two #bread", "post three #cake"},
		pageID: "1234567890",
	}
	srv := httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(srv.Close)
	return fb, srv
}

func (fb *fakeBackend) override(route string, h http.HandlerFunc) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.overrides[route] = h
}

func (fb *fakeBackend) recorded() []recordedCall {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]recordedCall(nil), fb.calls...)
}

func (fb *fakeBackend) routes() []string {
	var out []string
	for _, c := range fb.recorded() {
		out = append(out, c.Method+" "+c.Path)
	}
	return out
}

func (fb *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body map[string]interface{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			fb.t.Errorf("request body is not a JSON object: %s", raw)
		}
	}
	route := r.Method + " " + r.URL.Path

	fb.mu.Lock()
	fb.calls = append(fb.calls, recordedCall{Method: r.Method, Path: r.URL.Path, Body: body})
	h, ok := fb.overrides[route]
	fb.mu.Unlock()
	if ok {
		h(w, r)
		return
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()

	switch {
	case route == "POST /api/facebook/connect":
		writeJSON(w, http.StatusOK, map[string]interface{}{"status": "connected", "fb_page_id": fb.pageID})
	case route == "POST /api/business/profile":
		writeJSON(w, http.StatusOK, map[string]interface{}{"profile": fb.profile})
	case route == "POST /api/news/industry-news":
		writeJSON(w, http.StatusOK, map[string]interface{}{"news": fb.news})
	case route == "POST /api/content/generate-posts":
		count := int(body["count"].(float64))
		posts := fb.posts
		if count < len(posts) {
			posts = posts[:count]
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"posts": posts})
	case route == "POST /api/weekly-planner/":
		fb.schedule = map[string]string{}
		writeJSON(w, http.StatusOK, fb.schedule)
	case route == "GET /api/weekly-planner/":
		writeJSON(w, http.StatusOK, fb.schedule)
	case route == "DELETE /api/weekly-planner/reset":
		fb.schedule = map[string]string{}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Schedule reset successfully."})
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/api/weekly-planner/"):
		day := strings.TrimPrefix(r.URL.Path, "/api/weekly-planner/")
		fb.schedule[day] = body["content"].(string)
		writeJSON(w, http.StatusOK, fb.schedule)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/weekly-planner/"):
		day := strings.TrimPrefix(r.URL.Path, "/api/weekly-planner/")
		if _, ok := fb.schedule[day]; !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "No scheduled post for " + day})
			return
		}
		delete(fb.schedule, day)
		writeJSON(w, http.StatusOK, fb.schedule)
	case route == "POST /api/facebook/publish":
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":   true,
			"post_id":   "mock_post_1",
			"post_link": "https://facebook.com/" + fb.pageID + "/posts/mock_post_1",
		})
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no route " + route})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errorReply(status int, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if message == "" {
			writeJSON(w, status, map[string]string{})
			return
		}
		writeJSON(w, status, map[string]string{"error": message})
	}
}

// recordingPrompter remembers alerts and answers confirmations with answer.
type recordingPrompter struct {
	mu      sync.Mutex
	alerts  []string
	prompts []string
	answer  bool
}

func (p *recordingPrompter) Alert(_ context.Context, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, message)
}

func (p *recordingPrompter) Confirm(_ context.Context, prompt string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompts = append(p.prompts, prompt)
	return p.answer, nil
}

func (p *recordingPrompter) Alerts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.alerts...)
}

func quietLogger() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

func newTestManager(t *testing.T) (*Manager, *fakeBackend, *recordingPrompter) {
	t.Helper()
	fb, srv := newFakeBackend(t)
	prompter := &recordingPrompter{answer: true}
	api := backend.NewClient(srv.URL, backend.WithLogger(quietLogger()))
	m := New(api, WithPrompter(prompter), WithLogger(quietLogger()))
	return m, fb, prompter
}

func bakeryRequest() GenerateRequest {
	return GenerateRequest{
		BusinessURL: "https://acme.test",
		Preferences: models.GenerationPreferences{Tone: "motivational", PostType: models.PostTypePromo, Count: 3},
	}
}
