package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/oops"

	channelDomain "github.com/reshetovitsme/devradar/internal/modules/channel/domain"
	"github.com/reshetovitsme/devradar/internal/shared/errors"
)

// confirmTokens are the case-insensitive answers accepted as "yes".
var confirmTokens = []string{"да", "yes", "y", "д"}

const identifierHelp = "❌ Could not find that channel. Check that:\n" +
	"• the link or @handle is spelled correctly\n" +
	"• the channel is public, or the bot is a member of it\n\n" +
	"Send another link, @handle or numeric id, or /cancel."

// StartChannel enters the channel registration flow. Admins only.
func (m *Manager) StartChannel(_ context.Context, in Input) Reply {
	s := m.session(in.ChatID, in.UserID)
	defer s.mu.Unlock()

	if !m.admins.IsAdmin(in.UserID) {
		slog.Warn("Channel registration denied", "user_id", in.UserID, "error", errors.ErrPermissionDenied)
		return text("❌ This command is available to administrators only.")
	}

	if err := m.enter(s, StateAwaitingIdentifier); err != nil {
		return m.abort(s, in, err, "/add_channel")
	}
	return closing("📡 Send the channel link (https://t.me/name), its @handle or its numeric id.")
}

func (m *Manager) awaitIdentifier(ctx context.Context, s *Session, in Input) Reply {
	identifier, err := ParseIdentifier(in.Text)
	if err != nil {
		return text("Please send a channel link, @handle or numeric id, or /cancel.")
	}

	channel, reply, ok := m.resolve(ctx, identifier)
	if !ok {
		return reply
	}
	channel.AddedBy = in.UserID

	if err := s.moveTo(StateAwaitingConfirmation); err != nil {
		return m.abort(s, in, err, "/add_channel")
	}
	s.Pending = channel

	return Reply{
		Text:     "Add this channel?\n\n" + describe(channel) + "\n\nReply \"yes\" to confirm. Anything else cancels.",
		Keyboard: [][]string{{"Yes", "No"}},
	}
}

func (m *Manager) awaitConfirmation(ctx context.Context, s *Session, in Input) Reply {
	pending := s.Pending
	if pending == nil {
		return m.abort(s, in, oops.With("state", s.State).Wrap(errors.ErrSessionCorrupted), "/add_channel")
	}

	if err := s.moveTo(StateIdle); err != nil {
		return m.abort(s, in, err, "/add_channel")
	}
	s.reset()

	if !IsConfirmation(in.Text) {
		return closing("Channel was not added.")
	}
	// Admin rights may have been revoked while the flow was open.
	if !m.admins.IsAdmin(in.UserID) {
		slog.Warn("Channel registration denied", "user_id", in.UserID, "error", errors.ErrPermissionDenied)
		return closing("❌ This command is available to administrators only.")
	}
	return closing(m.register(ctx, pending))
}

// ForceAddChannel registers a channel by id without a confirmation step.
// When the platform cannot resolve the id a placeholder record is stored.
func (m *Manager) ForceAddChannel(ctx context.Context, in Input, arg string) Reply {
	if !m.admins.IsAdmin(in.UserID) {
		return text("❌ This command is available to administrators only.")
	}

	identifier, err := ParseIdentifier(arg)
	if err != nil {
		return text("Usage: /force_add_channel <channel id or @handle>")
	}

	channel, reply, ok := m.resolve(ctx, identifier)
	if !ok {
		return reply
	}
	channel.AddedBy = in.UserID
	return text(m.register(ctx, channel))
}

// resolve looks a channel up. A numeric id that cannot be resolved yields a
// placeholder record; any other failure yields the reply to send instead.
func (m *Manager) resolve(ctx context.Context, identifier any) (*channelDomain.Channel, Reply, bool) {
	info, err := m.resolver.GetChatInfo(ctx, identifier)
	if err == nil {
		if !info.IsChannel() {
			return nil, text("⚠️ That chat is not a channel. Send a channel link, @handle or numeric id, or /cancel."), false
		}
		return &channelDomain.Channel{
			ID:       info.ID,
			Username: info.Username,
			Title:    info.Title,
		}, Reply{}, true
	}

	id, numeric := identifier.(int64)
	if !numeric {
		slog.Warn("Failed to resolve channel", "identifier", identifier, "error", err)
		return nil, text(identifierHelp), false
	}

	slog.Warn("Channel not resolvable, using placeholder", "channel_id", id, "error", err)
	return &channelDomain.Channel{
		ID:    id,
		Title: channelDomain.PlaceholderTitle(id),
	}, Reply{}, true
}

func (m *Manager) register(ctx context.Context, channel *channelDomain.Channel) string {
	err := m.channels.Register(ctx, channel)
	switch {
	case err == nil:
		return "✅ Channel added: " + channel.DisplayName()
	case errors.Is(err, errors.ErrChannelExists):
		return "ℹ️ This channel is already tracked."
	default:
		slog.Error("Failed to register channel", "channel_id", channel.ID, "class", errors.Class(err), "error", err)
		return "❌ Failed to add the channel. Please try again later."
	}
}

// IsConfirmation reports whether the answer is an affirmative token.
func IsConfirmation(answer string) bool {
	answer = strings.ToLower(strings.TrimSpace(answer))
	return lo.Contains(confirmTokens, answer)
}

func describe(ch *channelDomain.Channel) string {
	handle := lo.Ternary(ch.Username != "", ch.Handle(), "none")
	return fmt.Sprintf("Title: %s\nHandle: %s\nID: %d", ch.DisplayName(), handle, ch.ID)
}
