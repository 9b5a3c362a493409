package telegram

import (
	"fmt"
	"html"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/samber/lo"

	channelDomain "github.com/reshetovitsme/devradar/internal/modules/channel/domain"
	"github.com/reshetovitsme/devradar/internal/modules/conversation"
	postDomain "github.com/reshetovitsme/devradar/internal/modules/post/domain"
)

const dateLayout = "02.01.2006"

// FormatChannels renders the public channel list as HTML.
func FormatChannels(channels []*channelDomain.Channel) string {
	if len(channels) == 0 {
		return "📭 No channels are tracked yet."
	}

	var b strings.Builder
	b.WriteString("📡 <b>Tracked channels:</b>\n")
	for i, ch := range channels {
		name := html.EscapeString(ch.DisplayName())
		if link := ch.Link(); link != "" {
			name = fmt.Sprintf("<a href='%s'>%s</a>", html.EscapeString(link), name)
		}
		fmt.Fprintf(&b, "\n%d. %s\n   Added: %s", i+1, name, ch.AddedAt.Format(dateLayout))
	}
	return b.String()
}

// FormatChannelsDetailed renders the admin channel list with full metadata.
func FormatChannelsDetailed(channels []*channelDomain.Channel) string {
	if len(channels) == 0 {
		return "📭 No channels are tracked yet. Add one with /add_channel."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 Tracked channels (%d):\n", len(channels))
	for i, ch := range channels {
		fmt.Fprintf(&b, "\n%d. %s\n   ID: %d\n   Handle: %s\n   Added by: %d\n   Added: %s\n",
			i+1, ch.DisplayName(), ch.ID, lo.CoalesceOrEmpty(ch.Handle(), "none"), ch.AddedBy,
			ch.AddedAt.Format(dateLayout+" 15:04"))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// RawPost converts a channel message to the ingestion input.
func RawPost(msg *models.Message) postDomain.RawPost {
	return postDomain.RawPost{
		ChannelID:       msg.Chat.ID,
		ChannelUsername: msg.Chat.Username,
		ChannelTitle:    msg.Chat.Title,
		MessageID:       msg.ID,
		Text:            msg.Text,
		Caption:         msg.Caption,
	}
}

// Input converts a user message to conversation input.
func Input(msg *models.Message) conversation.Input {
	in := conversation.Input{
		ChatID: msg.Chat.ID,
		Text:   msg.Text,
	}
	if msg.From != nil {
		in.UserID = msg.From.ID
		in.Username = msg.From.Username
	}
	return in
}

// CommandArgs returns what follows the command word of a message.
func CommandArgs(text string) string {
	_, args, _ := strings.Cut(strings.TrimSpace(text), " ")
	return strings.TrimSpace(args)
}

// SendParams converts a reply into Bot API parameters.
func SendParams(chatID int64, reply conversation.Reply) *bot.SendMessageParams {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   reply.Text,
	}

	if reply.HTML {
		params.ParseMode = models.ParseModeHTML
		params.LinkPreviewOptions = &models.LinkPreviewOptions{IsDisabled: bot.True()}
	}

	switch {
	case len(reply.Keyboard) > 0:
		params.ReplyMarkup = &models.ReplyKeyboardMarkup{
			Keyboard: lo.Map(reply.Keyboard, func(row []string, _ int) []models.KeyboardButton {
				return lo.Map(row, func(text string, _ int) models.KeyboardButton {
					return models.KeyboardButton{Text: text}
				})
			}),
			ResizeKeyboard:  true,
			OneTimeKeyboard: true,
		}
	case reply.RemoveKeyboard:
		params.ReplyMarkup = &models.ReplyKeyboardRemove{RemoveKeyboard: true}
	}

	return params
}
