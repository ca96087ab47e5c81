package slack

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack/slackevents"

	"github.com/shubh-37/social-manager/internal/manager"
)

const (
	reactionApprove = "white_check_mark"
	reactionReject  = "x"
)

var (
	approveReactions = map[string]bool{reactionApprove: true, "heavy_check_mark": true, "+1": true}
	rejectReactions  = map[string]bool{reactionReject: true, "-1": true}
)

// ApprovalHandler asks yes/no questions in a channel and resolves them
// from the reactions added to the question message. A question nobody
// answers before the timeout counts as declined.
type ApprovalHandler struct {
	client  Messenger
	botID   string
	timeout time.Duration
	log     *logrus.Entry

	mu      sync.Mutex
	pending map[string]chan bool // channel/messageTS -> answer
}

func NewApprovalHandler(client Messenger, botID string, timeout time.Duration, log *logrus.Entry) *ApprovalHandler {
	return &ApprovalHandler{
		client:  client,
		botID:   botID,
		timeout: timeout,
		log:     log.WithField("component", "approvals"),
		pending: make(map[string]chan bool),
	}
}

func approvalKey(channelID, timestamp string) string {
	return channelID + "/" + timestamp
}

// Prompter returns a manager.Prompter that alerts and asks in channelID.
func (h *ApprovalHandler) Prompter(channelID string) manager.Prompter {
	return &channelPrompter{approvals: h, channelID: channelID}
}

type channelPrompter struct {
	approvals *ApprovalHandler
	channelID string
}

func (p *channelPrompter) Alert(ctx context.Context, message string) {
	if _, err := p.approvals.client.SendMessage(ctx, p.channelID, ":warning: "+message); err != nil {
		p.approvals.log.WithError(err).WithField("channel", p.channelID).Warn("failed to send alert")
	}
}

func (p *channelPrompter) Confirm(ctx context.Context, prompt string) (bool, error) {
	return p.approvals.Ask(ctx, p.channelID, prompt)
}

// Ask posts prompt and blocks until someone other than the bot approves
// or rejects it, the timeout passes, or ctx is done.
func (h *ApprovalHandler) Ask(ctx context.Context, channelID, prompt string) (bool, error) {
	text := fmt.Sprintf("%s\nReact with :%s: to confirm or :%s: to cancel.", prompt, reactionApprove, reactionReject)
	timestamp, err := h.client.SendMessage(ctx, channelID, text)
	if err != nil {
		return false, fmt.Errorf("failed to send prompt: %w", err)
	}

	key := approvalKey(channelID, timestamp)
	answer := make(chan bool, 1)
	h.mu.Lock()
	h.pending[key] = answer
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		delete(h.pending, key)
		h.mu.Unlock()
	}()

	log := h.log.WithFields(logrus.Fields{"channel": channelID, "message_ts": timestamp})
	log.Debug("waiting for approval")

	for _, name := range []string{reactionApprove, reactionReject} {
		if err := h.client.AddReaction(ctx, channelID, timestamp, name); err != nil {
			log.WithError(err).Debug("failed to add reaction hint")
		}
	}

	timer := time.NewTimer(h.timeout)
	defer timer.Stop()

	select {
	case ok := <-answer:
		log.WithField("approved", ok).Info("approval answered")
		return ok, nil
	case <-timer.C:
		log.Info("approval timed out")
		if _, err := h.client.SendMessage(ctx, channelID, "No answer received, cancelled."); err != nil {
			log.WithError(err).Warn("failed to send timeout notice")
		}
		return false, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// HandleReaction processes reactions added to messages
func (h *ApprovalHandler) HandleReaction(ctx context.Context, event *slackevents.ReactionAddedEvent) error {
	if event.User == h.botID {
		return nil
	}

	var approved bool
	switch {
	case approveReactions[event.Reaction]:
		approved = true
	case rejectReactions[event.Reaction]:
		approved = false
	default:
		return nil
	}

	key := approvalKey(event.Item.Channel, event.Item.Timestamp)
	h.mu.Lock()
	answer, exists := h.pending[key]
	if exists {
		delete(h.pending, key)
	}
	h.mu.Unlock()

	if !exists {
		h.log.WithField("message_ts", event.Item.Timestamp).Debug("no pending approval for this message")
		return nil
	}

	answer <- approved
	return nil
}
