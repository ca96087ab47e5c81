package slack

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
)

type Server struct {
	messageHandler  *MessageHandler
	approvalHandler *ApprovalHandler
	signingSecret   string
	gatherer        prometheus.Gatherer
	events          *prometheus.CounterVec
	log             *logrus.Entry

	// ctx bounds every dispatched event; Close cancels it.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewServer(messageHandler *MessageHandler, approvalHandler *ApprovalHandler, signingSecret string, reg *prometheus.Registry, log *logrus.Entry) *Server {
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "social_manager_slack_events_total",
		Help: "Slack events received, by event type.",
	}, []string{"type"})
	reg.MustRegister(events)

	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		messageHandler:  messageHandler,
		approvalHandler: approvalHandler,
		signingSecret:   signingSecret,
		gatherer:        reg,
		events:          events,
		log:             log.WithField("component", "slack_server"),
		ctx:             ctx,
		cancel:          cancel,
	}
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.log.WithError(err).Warn("error reading body")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// Verify the request signature
	sv, err := slack.NewSecretsVerifier(r.Header, s.signingSecret)
	if err != nil {
		s.log.WithError(err).Warn("error creating secrets verifier")
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if _, err := sv.Write(body); err != nil {
		s.log.WithError(err).Warn("error writing to verifier")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if err := sv.Ensure(); err != nil {
		s.log.WithError(err).Warn("error verifying signature")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	eventsAPIEvent, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		s.log.WithError(err).Warn("error parsing event")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if eventsAPIEvent.Type == slackevents.URLVerification {
		var challenge *slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			s.log.WithError(err).Warn("error unmarshaling challenge")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		s.log.Info("responding to URL verification challenge")
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(challenge.Challenge))
		return
	}

	// Slack resends events it did not see acknowledged in time; the
	// first delivery is already being handled.
	if r.Header.Get("X-Slack-Retry-Num") != "" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if eventsAPIEvent.Type == slackevents.CallbackEvent {
		innerEvent := eventsAPIEvent.InnerEvent
		s.events.WithLabelValues(innerEvent.Type).Inc()
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.dispatch(s.ctx, innerEvent)
		}()
	}

	w.WriteHeader(http.StatusOK)
}

// dispatch runs after the HTTP response so long pipelines never hold up
// the acknowledgement Slack expects within a few seconds.
func (s *Server) dispatch(ctx context.Context, innerEvent slackevents.EventsAPIInnerEvent) {
	log := s.log.WithField("event_type", innerEvent.Type)

	var err error
	switch ev := innerEvent.Data.(type) {
	case *slackevents.MessageEvent:
		err = s.messageHandler.HandleMessage(ctx, ev)
	case *slackevents.AppMentionEvent:
		err = s.messageHandler.HandleAppMention(ctx, ev)
	case *slackevents.ReactionAddedEvent:
		err = s.approvalHandler.HandleReaction(ctx, ev)
	default:
		log.Debug("unsupported event type")
		return
	}
	if err != nil {
		log.WithError(err).Error("error handling event")
	}
}

// healthCheck provides a simple health check endpoint
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/slack/events", s.handleEvents)
	mux.HandleFunc("/health", s.healthCheck)
	mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return mux
}

// Close cancels events still being handled and waits for them to return.
func (s *Server) Close() {
	s.cancel()
	s.wg.Wait()
}

// Start serves until ctx is cancelled, then shuts down gracefully and
// closes the server.
func (s *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.WithFields(logrus.Fields{
		"events": "http://localhost:" + port + "/slack/events",
		"health": "http://localhost:" + port + "/health",
	}).Info("slack server starting")

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	defer s.Close()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
