package slack

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/shubh-37/social-manager/internal/backend"
	"github.com/shubh-37/social-manager/internal/models"
)

type sentMessage struct {
	Channel   string
	Text      string
	Timestamp string
}

type fakeMessenger struct {
	mu        sync.Mutex
	messages  []sentMessage
	reactions []string
}

func (f *fakeMessenger) SendMessage(_ context.Context, channelID, message string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ts := fmt.Sprintf("1700000000.%06d", len(f.messages)+1)
	f.messages = append(f.messages, sentMessage{Channel: channelID, Text: message, Timestamp: ts})
	return ts, nil
}

func (f *fakeMessenger) AddReaction(_ context.Context, channelID, timestamp, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reactions = append(f.reactions, channelID+"/"+timestamp+":"+name)
	return nil
}

func (f *fakeMessenger) sent() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.messages...)
}

func (f *fakeMessenger) last() sentMessage {
	msgs := f.sent()
	if len(msgs) == 0 {
		return sentMessage{}
	}
	return msgs[len(msgs)-1]
}

// find returns the latest message containing substr.
func (f *fakeMessenger) find(substr string) (sentMessage, bool) {
	msgs := f.sent()
	for i := len(msgs) - 1; i >= 0; i-- {
		if strings.Contains(msgs[i].Text, substr) {
			return msgs[i], true
		}
	}
	return sentMessage{}, false
}

// stubBackend is an in-memory manager.Backend.
type stubBackend struct {
	mu       sync.Mutex
	schedule models.Schedule
	pageID   string
	posts    []string
	deletes  int
}

func newStubBackend() *stubBackend {
	return &stubBackend{
		schedule: models.Schedule{},
		pageID:   "page-1",
		posts:    []string{"Fresh loaves daily", "Croissant Tuesday", "Cake orders open"},
	}
}

func (s *stubBackend) Connect(context.Context) (*backend.ConnectResponse, error) {
	return &backend.ConnectResponse{Status: "connected", FBPageID: s.pageID}, nil
}

func (s *stubBackend) BusinessProfile(context.Context, string) (*models.BusinessProfile, error) {
	return &models.BusinessProfile{Name: "Crumb", Industry: "bakery", Services: models.Services{"bread", "cakes"}}, nil
}

func (s *stubBackend) IndustryNews(context.Context, string) ([]models.NewsItem, error) {
	return []models.NewsItem{{Headline: "Sourdough is back", URL: "https://news.test/1"}}, nil
}

func (s *stubBackend) GeneratePosts(_ context.Context, req backend.GeneratePostsRequest) ([]string, error) {
	n := req.Count
	if n > len(s.posts) {
		n = len(s.posts)
	}
	return append([]string(nil), s.posts[:n]...), nil
}

func (s *stubBackend) CreateSchedule(context.Context, int, []models.Weekday) (models.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedule = models.Schedule{}
	return s.schedule.Clone(), nil
}

func (s *stubBackend) AssignDay(_ context.Context, day models.Weekday, content string) (models.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedule[day] = content
	return s.schedule.Clone(), nil
}

func (s *stubBackend) GetSchedule(context.Context) (models.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.schedule) == 0 {
		return nil, &backend.APIError{Call: "get_schedule", StatusCode: http.StatusNotFound, Message: "No schedule has been generated yet."}
	}
	return s.schedule.Clone(), nil
}

func (s *stubBackend) DeleteDay(_ context.Context, day models.Weekday) (models.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.schedule[day]; !ok {
		return nil, &backend.APIError{Call: "delete_day", StatusCode: http.StatusNotFound, Message: "No scheduled post for " + string(day)}
	}
	s.deletes++
	delete(s.schedule, day)
	return s.schedule.Clone(), nil
}

func (s *stubBackend) ResetSchedule(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedule = models.Schedule{}
	return nil
}

func (s *stubBackend) Publish(_ context.Context, req backend.PublishRequest) (*backend.PublishResponse, error) {
	return &backend.PublishResponse{Success: true, PostID: "p-1", PostLink: "https://facebook.test/p-1"}, nil
}

func quietLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}
