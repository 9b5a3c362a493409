package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	subscriberDomain "github.com/reshetovitsme/devradar/internal/modules/subscriber/domain"
	"github.com/reshetovitsme/devradar/internal/shared/errors"
)

// StartManage lists the user's filters and asks which one to delete.
func (m *Manager) StartManage(ctx context.Context, in Input) Reply {
	s := m.session(in.ChatID, in.UserID)
	defer s.mu.Unlock()

	filters, err := m.filters.ListFilters(ctx, in.UserID)
	if err != nil {
		slog.Error("Failed to load filters", "user_id", in.UserID, "class", errors.Class(err), "error", err)
		s.reset()
		return closing("❌ Failed to load your filters. Please try again later.")
	}

	if len(filters) == 0 {
		s.reset()
		return closing("📭 You have no filters yet. Create one with /add_filter.")
	}

	if err := m.enter(s, StateAwaitingDeletionIndex); err != nil {
		return m.abort(s, in, err, "/manage")
	}
	return text(FormatFilters(filters) + "\n\nSend the number of the filter to delete, or /cancel.")
}

func (m *Manager) awaitDeletionIndex(ctx context.Context, s *Session, in Input) Reply {
	position, err := strconv.Atoi(strings.TrimSpace(in.Text))
	if err != nil || position < 1 {
		return text("Please send the number of a filter from the list.")
	}

	removed, err := m.filters.DeleteFilter(ctx, in.UserID, position)
	switch {
	case errors.Is(err, errors.ErrFilterNotFound):
		return text("Invalid number. Send the number of a filter from the list, or /cancel.")
	case err != nil:
		slog.Error("Failed to delete filter", "user_id", in.UserID, "position", position, "class", errors.Class(err), "error", err)
		s.reset()
		return closing("❌ Failed to delete the filter. Please try again later.")
	}

	if err := s.moveTo(StateIdle); err != nil {
		return m.abort(s, in, err, "/manage")
	}
	s.reset()
	return closing("🗑 Filter deleted: " + removed.String())
}

// FormatFilters renders filters as a 1-indexed list.
func FormatFilters(filters []subscriberDomain.Filter) string {
	var b strings.Builder
	b.WriteString("📋 Your filters:\n")
	for i, f := range filters {
		fmt.Fprintf(&b, "\n%d. %s", i+1, f.String())
	}
	return b.String()
}
