package slack

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/shubh-37/social-manager/config"
	"github.com/shubh-37/social-manager/internal/manager"
	"github.com/shubh-37/social-manager/internal/models"
)

// Command is a parsed bot command. Args holds the positional words,
// Options the key=value words, and Text whatever follows the first
// argument verbatim (post content for edit and update).
type Command struct {
	Name    string
	Args    []string
	Options map[string]string
	Text    string
}

func (c Command) Arg(i int) string {
	if i < len(c.Args) {
		return c.Args[i]
	}
	return ""
}

// splitHead cuts s at its first run of whitespace.
func splitHead(s string) (string, string) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

// unwrapLink turns Slack's <https://x.com|x.com> markup back into the URL.
func unwrapLink(s string) string {
	if !strings.HasPrefix(s, "<") || !strings.HasSuffix(s, ">") {
		return s
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "<"), ">")
	if i := strings.Index(s, "|"); i >= 0 {
		s = s[:i]
	}
	return s
}

func ParseCommand(text string) Command {
	head, rest := splitHead(text)
	cmd := Command{Name: strings.ToLower(head), Options: map[string]string{}}

	if next, after := splitHead(rest); strings.EqualFold(next, "schedule") {
		switch cmd.Name {
		case "view", "show":
			cmd.Name = "view schedule"
			rest = after
		case "reset", "clear":
			cmd.Name = "reset schedule"
			rest = after
		}
	}

	_, cmd.Text = splitHead(rest)
	for _, word := range strings.Fields(rest) {
		if key, value, ok := strings.Cut(word, "="); ok && key != "" {
			cmd.Options[strings.ToLower(key)] = unwrapLink(value)
			continue
		}
		cmd.Args = append(cmd.Args, unwrapLink(word))
	}
	return cmd
}

type CommandHandler struct {
	client   Messenger
	sessions *SessionStore
	defaults config.Defaults
	log      *logrus.Entry
}

func NewCommandHandler(client Messenger, sessions *SessionStore, defaults config.Defaults, log *logrus.Entry) *CommandHandler {
	return &CommandHandler{
		client:   client,
		sessions: sessions,
		defaults: defaults,
		log:      log.WithField("component", "commands"),
	}
}

func (h *CommandHandler) reply(ctx context.Context, channelID, message string) error {
	_, err := h.client.SendMessage(ctx, channelID, message)
	return err
}

// Handle runs one command for channelID. Problems the user should see are
// answered in the channel; the returned error is for failures to talk to
// Slack itself.
func (h *CommandHandler) Handle(ctx context.Context, channelID, text string) error {
	cmd := ParseCommand(text)
	log := h.log.WithFields(logrus.Fields{"channel": channelID, "command": cmd.Name})
	log.Info("handling command")

	if cmd.Name == "" || cmd.Name == "help" {
		return h.reply(ctx, channelID, helpText)
	}

	mgr := h.sessions.Get(ctx, channelID)

	switch cmd.Name {
	case "status":
		return h.reply(ctx, channelID, renderStatus(mgr.Snapshot()))
	case "connect":
		return h.handleConnect(ctx, channelID, mgr)
	case "generate":
		return h.handleGenerate(ctx, channelID, mgr, cmd)
	case "drafts":
		return h.reply(ctx, channelID, renderDrafts(mgr.Drafts()))
	case "edit":
		return h.handleEditDraft(ctx, channelID, mgr, cmd)
	case "drop":
		return h.handleDropDraft(ctx, channelID, mgr, cmd)
	case "schedule":
		return h.handleSchedule(ctx, channelID, mgr, cmd)
	case "view schedule":
		mgr.Load(ctx)
		return h.reply(ctx, channelID, renderSchedule(mgr.Schedule()))
	case "update":
		return h.handleUpdate(ctx, channelID, mgr, cmd)
	case "remove":
		return h.handleRemove(ctx, channelID, mgr, cmd)
	case "publish":
		return h.handlePublish(ctx, channelID, mgr, cmd)
	case "reset schedule":
		if err := mgr.ResetSchedule(ctx); err != nil {
			log.WithError(err).Warn("reset failed")
			return nil
		}
		return h.reply(ctx, channelID, "Schedule cleared.")
	default:
		return h.reply(ctx, channelID, fmt.Sprintf("I don't know `%s`. Try `help`.", cmd.Name))
	}
}

func (h *CommandHandler) handleConnect(ctx context.Context, channelID string, mgr *manager.Manager) error {
	if err := h.reply(ctx, channelID, ":hourglass: Connecting..."); err != nil {
		return err
	}
	if err := mgr.Connect(ctx); errors.Is(err, manager.ErrSuperseded) {
		return nil
	}
	return h.reply(ctx, channelID, renderConnection(mgr.Snapshot().Connection))
}

func (h *CommandHandler) handleGenerate(ctx context.Context, channelID string, mgr *manager.Manager, cmd Command) error {
	prefs := h.defaults.Preferences
	if tone, ok := cmd.Options["tone"]; ok {
		prefs.Tone = tone
	}
	if postType, ok := cmd.Options["type"]; ok {
		prefs.PostType = postType
	}
	if raw, ok := cmd.Options["count"]; ok {
		count, err := strconv.Atoi(raw)
		if err != nil {
			return h.reply(ctx, channelID, "count must be a whole number.")
		}
		prefs.Count = count
	}

	url := cmd.Arg(0)
	if url != "" {
		if err := h.reply(ctx, channelID, fmt.Sprintf(":hourglass: Generating %d %s posts for %s...", prefs.Count, prefs.PostType, url)); err != nil {
			return err
		}
	}

	err := mgr.Generate(ctx, manager.GenerateRequest{BusinessURL: url, Preferences: prefs})
	switch {
	case errors.Is(err, manager.ErrSuperseded):
		return nil
	case err != nil && manager.StageOf(err) == manager.StageOther:
		// Already alerted.
		return nil
	}
	return h.reply(ctx, channelID, renderGeneration(mgr.Snapshot().Generation))
}

func draftNumber(cmd Command, drafts int) (int, error) {
	n, err := strconv.Atoi(cmd.Arg(0))
	if err != nil || n < 1 || n > drafts {
		return 0, fmt.Errorf("pick a draft between 1 and %d", drafts)
	}
	return n - 1, nil
}

func (h *CommandHandler) handleEditDraft(ctx context.Context, channelID string, mgr *manager.Manager, cmd Command) error {
	i, err := draftNumber(cmd, len(mgr.Drafts()))
	if err != nil {
		return h.reply(ctx, channelID, err.Error()+".")
	}
	if cmd.Text == "" {
		return h.reply(ctx, channelID, "Usage: `edit <n> <new text>`")
	}
	if err := mgr.BeginDraftEdit(i); err != nil {
		return h.reply(ctx, channelID, err.Error())
	}
	if err := mgr.SetDraftEditText(cmd.Text); err != nil {
		return h.reply(ctx, channelID, err.Error())
	}
	if err := mgr.SaveDraftEdit(); err != nil {
		return h.reply(ctx, channelID, err.Error())
	}
	return h.reply(ctx, channelID, fmt.Sprintf("Draft %d updated.", i+1))
}

func (h *CommandHandler) handleDropDraft(ctx context.Context, channelID string, mgr *manager.Manager, cmd Command) error {
	i, err := draftNumber(cmd, len(mgr.Drafts()))
	if err != nil {
		return h.reply(ctx, channelID, err.Error()+".")
	}
	if err := mgr.DeleteDraft(i); err != nil {
		return h.reply(ctx, channelID, err.Error())
	}
	return h.reply(ctx, channelID, renderDrafts(mgr.Drafts()))
}

func (h *CommandHandler) handleSchedule(ctx context.Context, channelID string, mgr *manager.Manager, cmd Command) error {
	frequency := h.defaults.Frequency
	if raw := cmd.Arg(0); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return h.reply(ctx, channelID, "frequency must be a whole number.")
		}
		frequency = n
	}

	days := h.defaults.Days
	if raw, ok := cmd.Options["days"]; ok {
		parsed, err := models.ParseWeekdays(raw)
		if err != nil {
			return h.reply(ctx, channelID, err.Error())
		}
		days = parsed
	}

	err := mgr.CreateSchedule(ctx, frequency, days)
	if errors.Is(err, manager.ErrSuperseded) {
		return nil
	}
	view := mgr.Snapshot()
	if view.Planner.Error != "" {
		return h.reply(ctx, channelID, ":x: "+view.Planner.Error+"\n\n"+renderSchedule(view.Planner.Schedule))
	}
	return h.reply(ctx, channelID, renderSchedule(view.Planner.Schedule))
}

func (h *CommandHandler) parseDay(ctx context.Context, channelID string, cmd Command) (models.Weekday, bool, error) {
	day, err := models.ParseWeekday(cmd.Arg(0))
	if err != nil {
		return "", false, h.reply(ctx, channelID, fmt.Sprintf("Usage: `%s <day>` with a day like Mon or Friday.", cmd.Name))
	}
	return day, true, nil
}

// handleUpdate goes through the day edit buffer, so only a day that is
// already scheduled can be rewritten.
func (h *CommandHandler) handleUpdate(ctx context.Context, channelID string, mgr *manager.Manager, cmd Command) error {
	day, ok, err := h.parseDay(ctx, channelID, cmd)
	if !ok {
		return err
	}
	if cmd.Text == "" {
		return h.reply(ctx, channelID, "Usage: `update <day> <new text>`")
	}
	if err := mgr.StartDayEdit(day); err != nil {
		return h.reply(ctx, channelID, fmt.Sprintf("Nothing is scheduled for %s.", day))
	}
	if err := mgr.SetDayEditText(cmd.Text); err != nil {
		return h.reply(ctx, channelID, err.Error())
	}
	if err := mgr.SaveDayEdit(ctx); err != nil {
		return nil
	}
	return h.reply(ctx, channelID, renderSchedule(mgr.Schedule()))
}

func (h *CommandHandler) handleRemove(ctx context.Context, channelID string, mgr *manager.Manager, cmd Command) error {
	day, ok, err := h.parseDay(ctx, channelID, cmd)
	if !ok {
		return err
	}
	err = mgr.DeletePost(ctx, day)
	switch {
	case errors.Is(err, manager.ErrDeclined):
		return h.reply(ctx, channelID, fmt.Sprintf("Kept the post for %s.", day))
	case err != nil:
		h.log.WithError(err).WithField("day", day).Warn("remove failed")
		return nil
	}
	return h.reply(ctx, channelID, renderSchedule(mgr.Schedule()))
}

func (h *CommandHandler) handlePublish(ctx context.Context, channelID string, mgr *manager.Manager, cmd Command) error {
	day, ok, err := h.parseDay(ctx, channelID, cmd)
	if !ok {
		return err
	}
	if mgr.PageID() != "" {
		if err := h.reply(ctx, channelID, fmt.Sprintf(":hourglass: Publishing %s...", day)); err != nil {
			return err
		}
	}
	err = mgr.Publish(ctx, day)
	if errors.Is(err, manager.ErrNotConnected) || errors.Is(err, manager.ErrSuperseded) {
		return nil
	}
	return h.reply(ctx, channelID, renderPublish(mgr.Snapshot().Publish))
}
