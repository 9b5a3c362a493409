package telegram

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	channelDomain "github.com/reshetovitsme/devradar/internal/modules/channel/domain"
	"github.com/reshetovitsme/devradar/internal/modules/conversation"
	postDomain "github.com/reshetovitsme/devradar/internal/modules/post/domain"
	"github.com/reshetovitsme/devradar/internal/shared/errors"
)

// ChannelService lists and removes tracked channels
type ChannelService interface {
	List(ctx context.Context) ([]*channelDomain.Channel, error)
	Remove(ctx context.Context, id int64) (bool, error)
}

// PostIngestor turns channel posts into dispatch tasks
type PostIngestor interface {
	Ingest(ctx context.Context, raw postDomain.RawPost) (*postDomain.DispatchTask, error)
}

// TaskSubmitter queues dispatch tasks
type TaskSubmitter interface {
	Submit(ctx context.Context, task *postDomain.DispatchTask) error
}

// Handler routes Telegram updates to the conversation flows and the
// ingestion pipeline
type Handler struct {
	admins       conversation.AdminChecker
	channels     ChannelService
	conversation *conversation.Manager
	posts        PostIngestor
	dispatcher   TaskSubmitter
}

// New creates a new Telegram handler
func New(admins conversation.AdminChecker, channels ChannelService, conv *conversation.Manager, posts PostIngestor, dispatcher TaskSubmitter) *Handler {
	return &Handler{
		admins:       admins,
		channels:     channels,
		conversation: conv,
		posts:        posts,
		dispatcher:   dispatcher,
	}
}

type command struct {
	name        string
	description string
	handle      func(ctx context.Context, in conversation.Input) conversation.Reply
}

func (h *Handler) commands() []command {
	return []command{
		{"/start", "Start the bot", h.Welcome},
		{"/help", "How to use the bot", h.Help},
		{"/add_filter", "Create a keyword filter", h.conversation.StartFilter},
		{"/manage", "List and delete filters", h.conversation.StartManage},
		{"/channels", "Tracked channels", h.Channels},
		{"/list_channels", "Tracked channels with details (admin)", h.ListChannels},
		{"/add_channel", "Track a channel (admin)", h.conversation.StartChannel},
		{"/force_add_channel", "Track a channel by id (admin)", func(ctx context.Context, in conversation.Input) conversation.Reply {
			return h.conversation.ForceAddChannel(ctx, in, CommandArgs(in.Text))
		}},
		{"/delete_channel", "Stop tracking a channel (admin)", h.DeleteChannel},
		{"/cancel", "Cancel the current action", h.conversation.Cancel},
	}
}

// RegisterCommands registers bot commands
func (h *Handler) RegisterCommands(b *bot.Bot) {
	for _, cmd := range h.commands() {
		b.RegisterHandler(bot.HandlerTypeMessageText, cmd.name, bot.MatchTypePrefix, h.wrap(cmd.handle))
	}
}

// PublishCommands sets the command menu shown by Telegram clients.
func (h *Handler) PublishCommands(ctx context.Context, b *bot.Bot) {
	var menu []models.BotCommand
	for _, cmd := range h.commands() {
		menu = append(menu, models.BotCommand{
			Command:     strings.TrimPrefix(cmd.name, "/"),
			Description: cmd.description,
		})
	}
	if _, err := b.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands: menu}); err != nil {
		slog.Warn("Failed to publish bot commands", "error", err)
	}
}

func (h *Handler) wrap(handle func(ctx context.Context, in conversation.Input) conversation.Reply) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil {
			return
		}
		in := Input(update.Message)
		h.send(ctx, b, in.ChatID, handle(ctx, in))
	}
}

// HandleUpdate processes updates no command handler claimed: channel posts
// and plain text that feeds an active conversation.
func (h *Handler) HandleUpdate(ctx context.Context, b *bot.Bot, update *models.Update) {
	switch {
	case update.ChannelPost != nil:
		h.ProcessChannelPost(ctx, update.ChannelPost)
	case update.Message != nil && update.Message.Chat.Type == "channel":
		h.ProcessChannelPost(ctx, update.Message)
	case update.Message != nil:
		in := Input(update.Message)
		if reply, ok := h.HandleText(ctx, in, update.Message.Chat.Type == "private"); ok {
			h.send(ctx, b, in.ChatID, reply)
		}
	}
}

// HandleText routes plain text to the sender's active flow in the chat.
// Outside a flow only private chats get a hint.
func (h *Handler) HandleText(ctx context.Context, in conversation.Input, private bool) (conversation.Reply, bool) {
	if in.Text == "" {
		return conversation.Reply{}, false
	}
	if strings.HasPrefix(in.Text, "/") {
		return conversation.Reply{Text: "Unknown command. Use /help to see what I can do."}, private
	}
	if reply, ok := h.conversation.HandleText(ctx, in); ok {
		return reply, true
	}
	return conversation.Reply{Text: "Use /add_filter to create a filter or /help to see all commands."}, private
}

// ProcessChannelPost ingests a channel post and queues it for delivery.
func (h *Handler) ProcessChannelPost(ctx context.Context, msg *models.Message) {
	if msg == nil {
		return
	}

	task, err := h.posts.Ingest(ctx, RawPost(msg))
	if err != nil {
		slog.Error("Error ingesting post", "channel_id", msg.Chat.ID, "message_id", msg.ID, "class", errors.Class(err), "error", err)
		return
	}
	if task == nil {
		return
	}

	if err := h.dispatcher.Submit(ctx, task); err != nil {
		slog.Error("Error queueing post", "task_id", task.ID, "channel_id", task.ChannelID, "class", errors.Class(err), "error", err)
	}
}

// Welcome greets the user and drops any active flow.
func (h *Handler) Welcome(_ context.Context, in conversation.Input) conversation.Reply {
	h.conversation.Reset(in.ChatID, in.UserID)
	return conversation.Reply{
		Text: `👋 Welcome to DevRadar!

I watch developer job channels and forward you the posts that match your keyword filters.

Create your first filter with /add_filter. Use /help to see all commands.`,
		RemoveKeyboard: true,
	}
}

// Help lists the commands available to the user.
func (h *Handler) Help(_ context.Context, in conversation.Input) conversation.Reply {
	text := `ℹ️ How it works

A filter is a set of words. A post matches when it contains every word of the filter. Synonyms count too: "python" also finds "питон", "remote" also finds "удалённо".

Commands:
/add_filter - create a filter (up to 10)
/manage - list and delete your filters
/channels - channels I watch
/cancel - cancel the current action`

	if h.admins.IsAdmin(in.UserID) {
		text += `

Admin commands:
/add_channel - track a channel
/force_add_channel <id> - track a channel by id
/delete_channel <id> - stop tracking a channel
/list_channels - tracked channels with details`
	}
	return conversation.Reply{Text: text}
}

// Channels lists tracked channels for everyone.
func (h *Handler) Channels(ctx context.Context, _ conversation.Input) conversation.Reply {
	channels, err := h.channels.List(ctx)
	if err != nil {
		slog.Error("Failed to list channels", "class", errors.Class(err), "error", err)
		return conversation.Reply{Text: "❌ Failed to load channels. Please try again later."}
	}
	return conversation.Reply{Text: FormatChannels(channels), HTML: true}
}

// ListChannels lists tracked channels with full metadata. Admins only.
func (h *Handler) ListChannels(ctx context.Context, in conversation.Input) conversation.Reply {
	if !h.admins.IsAdmin(in.UserID) {
		return conversation.Reply{Text: "❌ This command is available to administrators only."}
	}

	channels, err := h.channels.List(ctx)
	if err != nil {
		slog.Error("Failed to list channels", "class", errors.Class(err), "error", err)
		return conversation.Reply{Text: "❌ Failed to load channels. Please try again later."}
	}
	return conversation.Reply{Text: FormatChannelsDetailed(channels)}
}

// DeleteChannel stops tracking a channel by id. Admins only.
func (h *Handler) DeleteChannel(ctx context.Context, in conversation.Input) conversation.Reply {
	if !h.admins.IsAdmin(in.UserID) {
		return conversation.Reply{Text: "❌ This command is available to administrators only."}
	}

	id, err := strconv.ParseInt(CommandArgs(in.Text), 10, 64)
	if err != nil {
		return conversation.Reply{Text: "Usage: /delete_channel <channel id>\nSee /list_channels for ids."}
	}

	removed, err := h.channels.Remove(ctx, id)
	switch {
	case err != nil:
		slog.Error("Failed to remove channel", "channel_id", id, "class", errors.Class(err), "error", err)
		return conversation.Reply{Text: "❌ Failed to remove the channel. Please try again later."}
	case !removed:
		return conversation.Reply{Text: "❌ Channel not found: " + strconv.FormatInt(id, 10)}
	default:
		return conversation.Reply{Text: "🗑 Channel removed: " + strconv.FormatInt(id, 10)}
	}
}

func (h *Handler) send(ctx context.Context, api API, chatID int64, reply conversation.Reply) {
	if reply.Text == "" {
		return
	}
	if _, err := api.SendMessage(ctx, SendParams(chatID, reply)); err != nil {
		slog.Error("Failed to send reply", "chat_id", chatID, "class", errors.Class(err), "error", err)
	}
}
