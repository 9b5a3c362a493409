// Package conversation implements the multi-step chat flows: creating a
// filter, deleting a filter and registering a tracked channel.
package conversation

import (
	"context"
	"log/slog"
	"sync"

	channelDomain "github.com/reshetovitsme/devradar/internal/modules/channel/domain"
	subscriberDomain "github.com/reshetovitsme/devradar/internal/modules/subscriber/domain"
	"github.com/reshetovitsme/devradar/internal/shared/errors"
)

// FilterStore keeps subscriber filters
type FilterStore interface {
	AddFilter(ctx context.Context, subscriberID int64, username string, words []string) (int, error)
	ListFilters(ctx context.Context, subscriberID int64) ([]subscriberDomain.Filter, error)
	FilterCount(ctx context.Context, subscriberID int64) (int, error)
	DeleteFilter(ctx context.Context, subscriberID int64, position int) (subscriberDomain.Filter, error)
}

// ChannelRegistry stores tracked channels
type ChannelRegistry interface {
	Register(ctx context.Context, channel *channelDomain.Channel) error
}

// ChatResolver looks up chats on the messaging platform. The identifier is
// either a numeric chat id (int64) or an "@handle" string.
type ChatResolver interface {
	GetChatInfo(ctx context.Context, identifier any) (*channelDomain.ChatInfo, error)
}

// AdminChecker decides who may manage tracked channels
type AdminChecker interface {
	IsAdmin(userID int64) bool
}

type step func(ctx context.Context, s *Session, in Input) Reply

// sessionKey identifies one user's conversation within one chat. In group
// chats every member has a session of their own.
type sessionKey struct {
	chatID int64
	userID int64
}

// Manager routes chat input to the active flow of each chat
type Manager struct {
	filters  FilterStore
	channels ChannelRegistry
	resolver ChatResolver
	admins   AdminChecker

	steps map[State]step

	mu       sync.Mutex
	sessions map[sessionKey]*Session
}

// NewManager creates a conversation manager
func NewManager(filters FilterStore, channels ChannelRegistry, resolver ChatResolver, admins AdminChecker) *Manager {
	m := &Manager{
		filters:  filters,
		channels: channels,
		resolver: resolver,
		admins:   admins,
		sessions: make(map[sessionKey]*Session),
	}
	m.steps = map[State]step{
		StateAskingCount:           m.askCount,
		StateAskingWords:           m.askWords,
		StateAwaitingDeletionIndex: m.awaitDeletionIndex,
		StateAwaitingIdentifier:    m.awaitIdentifier,
		StateAwaitingConfirmation:  m.awaitConfirmation,
	}
	return m
}

// session returns the locked session of a user in a chat. Callers must
// unlock it.
func (m *Manager) session(chatID, userID int64) *Session {
	key := sessionKey{chatID: chatID, userID: userID}
	m.mu.Lock()
	s, ok := m.sessions[key]
	if !ok {
		s = &Session{State: StateIdle}
		m.sessions[key] = s
	}
	m.mu.Unlock()

	s.mu.Lock()
	return s
}

// State returns the current state of a user in a chat.
func (m *Manager) State(chatID, userID int64) State {
	s := m.session(chatID, userID)
	defer s.mu.Unlock()
	return s.State
}

// Active reports whether the user is inside a flow in the chat.
func (m *Manager) Active(chatID, userID int64) bool {
	return m.State(chatID, userID) != StateIdle
}

// HandleText feeds a plain text message to the active flow of its sender.
// The second result is false when the sender has no active flow in the chat.
func (m *Manager) HandleText(ctx context.Context, in Input) (Reply, bool) {
	s := m.session(in.ChatID, in.UserID)
	defer s.mu.Unlock()

	handle, ok := m.steps[s.State]
	if !ok {
		return Reply{}, false
	}
	return handle(ctx, s, in), true
}

// Cancel leaves the active flow without side effects.
func (m *Manager) Cancel(_ context.Context, in Input) Reply {
	s := m.session(in.ChatID, in.UserID)
	defer s.mu.Unlock()

	if s.State == StateIdle {
		return closing("Nothing to cancel.")
	}

	slog.Debug("Conversation cancelled", "chat_id", in.ChatID, "state", s.State)
	s.reset()
	return closing("Action cancelled.")
}

// Reset silently drops any active flow of a user in a chat.
func (m *Manager) Reset(chatID, userID int64) {
	s := m.session(chatID, userID)
	defer s.mu.Unlock()
	s.reset()
}

// enter starts a flow from scratch, abandoning any flow in progress.
func (m *Manager) enter(s *Session, to State) error {
	s.reset()
	return s.moveTo(to)
}

// abort resets a session whose data no longer fits its state.
func (m *Manager) abort(s *Session, in Input, err error, restart string) Reply {
	slog.Error("Conversation aborted", "chat_id", in.ChatID, "user_id", in.UserID, "state", s.State,
		"class", errors.Class(err), "error", err)
	s.reset()
	return closing("⚠️ Something went wrong. Please start again with " + restart + ".")
}
