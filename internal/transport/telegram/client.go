package telegram

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/samber/oops"

	channelDomain "github.com/reshetovitsme/devradar/internal/modules/channel/domain"
	"github.com/reshetovitsme/devradar/internal/shared/errors"
)

//go:generate moq -out mocks/api.go -pkg mocks -skip-ensure -fmt goimports . API

// API is the part of the Bot API the bot uses. *bot.Bot implements it.
type API interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	ForwardMessage(ctx context.Context, params *bot.ForwardMessageParams) (*models.Message, error)
	GetChat(ctx context.Context, params *bot.GetChatParams) (*models.ChatFullInfo, error)
}

// Client adapts the Bot API to the delivery and chat lookup capabilities
// of the core modules
type Client struct {
	api API
}

// NewClient creates a new Bot API client
func NewClient(api API) *Client {
	return &Client{api: api}
}

// ForwardMessage forwards a channel message to a user.
func (c *Client) ForwardMessage(ctx context.Context, to, fromChannel int64, messageID int) error {
	_, err := c.api.ForwardMessage(ctx, &bot.ForwardMessageParams{
		ChatID:     to,
		FromChatID: fromChannel,
		MessageID:  messageID,
	})
	if err != nil {
		return oops.With("to", to, "from", fromChannel, "message_id", messageID).
			Wrap(errors.Join(errors.ErrTransport, err))
	}
	return nil
}

// SendMessage sends an HTML message.
func (c *Client) SendMessage(ctx context.Context, to int64, text string, disablePreview bool) error {
	params := &bot.SendMessageParams{
		ChatID:    to,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if disablePreview {
		params.LinkPreviewOptions = &models.LinkPreviewOptions{IsDisabled: bot.True()}
	}

	if _, err := c.api.SendMessage(ctx, params); err != nil {
		return oops.With("to", to).Wrap(errors.Join(errors.ErrTransport, err))
	}
	return nil
}

// GetChatInfo resolves a chat by numeric id (int64) or "@handle".
func (c *Client) GetChatInfo(ctx context.Context, identifier any) (*channelDomain.ChatInfo, error) {
	chat, err := c.api.GetChat(ctx, &bot.GetChatParams{ChatID: identifier})
	if err != nil {
		return nil, oops.With("identifier", identifier).Wrap(errors.Join(errors.ErrTransport, err))
	}

	chatType, err := channelDomain.ParseChatType(strings.ToLower(string(chat.Type)))
	if err != nil {
		return nil, oops.With("identifier", identifier, "type", chat.Type).Wrap(errors.Join(errors.ErrTransport, err))
	}

	return &channelDomain.ChatInfo{
		ID:       chat.ID,
		Type:     chatType,
		Title:    chat.Title,
		Username: chat.Username,
	}, nil
}
