package slack

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// Messenger is the part of the Slack API the bot talks through.
type Messenger interface {
	SendMessage(ctx context.Context, channelID, message string) (string, error)
	AddReaction(ctx context.Context, channelID, timestamp, name string) error
}

type Client struct {
	api   *slack.Client
	botID string
}

func NewClient(ctx context.Context, token string, options ...slack.Option) (*Client, error) {
	api := slack.New(token, options...)

	authTest, err := api.AuthTestContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate with Slack: %w", err)
	}

	return &Client{
		api:   api,
		botID: authTest.UserID,
	}, nil
}

func (c *Client) GetBotID() string {
	return c.botID
}

// SendMessage posts a plain text message and returns its timestamp.
func (c *Client) SendMessage(ctx context.Context, channelID, message string) (string, error) {
	_, timestamp, err := c.api.PostMessageContext(
		ctx,
		channelID,
		slack.MsgOptionText(message, false),
	)
	return timestamp, err
}

func (c *Client) AddReaction(ctx context.Context, channelID, timestamp, name string) error {
	return c.api.AddReactionContext(ctx, name, slack.NewRefToMessage(channelID, timestamp))
}
