package slack

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack/slackevents"
)

type MessageHandler struct {
	botID    string
	commands *CommandHandler
	log      *logrus.Entry
}

func NewMessageHandler(botID string, commands *CommandHandler, log *logrus.Entry) *MessageHandler {
	return &MessageHandler{
		botID:    botID,
		commands: commands,
		log:      log,
	}
}

// HandleMessage treats direct messages to the bot as commands. Channel
// chatter is ignored; there the bot has to be mentioned.
func (h *MessageHandler) HandleMessage(ctx context.Context, event *slackevents.MessageEvent) error {
	if event.BotID != "" || event.User == h.botID || event.SubType != "" {
		return nil
	}
	if event.ChannelType != "im" {
		return nil
	}
	if strings.TrimSpace(event.Text) == "" {
		return nil
	}
	return h.commands.Handle(ctx, event.Channel, h.stripMention(event.Text))
}

func (h *MessageHandler) HandleAppMention(ctx context.Context, event *slackevents.AppMentionEvent) error {
	if event.BotID != "" {
		return nil
	}
	return h.commands.Handle(ctx, event.Channel, h.stripMention(event.Text))
}

func (h *MessageHandler) stripMention(text string) string {
	return strings.TrimSpace(strings.Replace(text, "<@"+h.botID+">", "", 1))
}
