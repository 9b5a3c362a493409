package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/oops"

	subscriberDomain "github.com/reshetovitsme/devradar/internal/modules/subscriber/domain"
	"github.com/reshetovitsme/devradar/internal/shared/errors"
)

// countKeyboard offers 1..MaxWordsPerFilter in rows of five.
var countKeyboard = lo.Chunk(lo.Map(lo.RangeFrom(1, subscriberDomain.MaxWordsPerFilter), func(n int, _ int) string {
	return strconv.Itoa(n)
}), 5)

// StartFilter enters the filter creation flow.
func (m *Manager) StartFilter(ctx context.Context, in Input) Reply {
	s := m.session(in.ChatID, in.UserID)
	defer s.mu.Unlock()

	held, err := m.filters.FilterCount(ctx, in.UserID)
	if err != nil {
		slog.Error("Failed to count filters", "user_id", in.UserID, "class", errors.Class(err), "error", err)
		s.reset()
		return closing("❌ Failed to load your filters. Please try again later.")
	}

	if held >= subscriberDomain.MaxFilters {
		s.reset()
		return closing(fmt.Sprintf("⚠️ You already have %d filters, which is the maximum.\nDelete one with /manage before adding a new one.", subscriberDomain.MaxFilters))
	}

	if err := m.enter(s, StateAskingCount); err != nil {
		return m.abort(s, in, err, "/add_filter")
	}
	return Reply{
		Text:     fmt.Sprintf("🔎 How many words should the filter contain? Send a number from 1 to %d.", subscriberDomain.MaxWordsPerFilter),
		Keyboard: countKeyboard,
	}
}

func (m *Manager) askCount(_ context.Context, s *Session, in Input) Reply {
	count, err := strconv.Atoi(strings.TrimSpace(in.Text))
	if err != nil || count < 1 || count > subscriberDomain.MaxWordsPerFilter {
		return Reply{
			Text:     fmt.Sprintf("Please send a number from 1 to %d.", subscriberDomain.MaxWordsPerFilter),
			Keyboard: countKeyboard,
		}
	}

	if err := s.moveTo(StateAskingWords); err != nil {
		return m.abort(s, in, err, "/add_filter")
	}
	s.WordCount = count

	return Reply{
		Text:           fmt.Sprintf("✍️ Send %d %s separated by commas.\nExample: python, remote", count, plural(count, "word", "words")),
		RemoveKeyboard: true,
	}
}

func (m *Manager) askWords(ctx context.Context, s *Session, in Input) Reply {
	if s.WordCount < 1 {
		return m.abort(s, in, oops.With("state", s.State).Wrap(errors.ErrSessionCorrupted), "/add_filter")
	}

	words := ParseWords(in.Text)
	if len(words) != s.WordCount {
		return text(fmt.Sprintf("You sent %d %s, but the filter needs exactly %d. Try again.",
			len(words), plural(len(words), "word", "words"), s.WordCount))
	}

	count, err := m.filters.AddFilter(ctx, in.UserID, in.Username, words)
	if err != nil {
		slog.Error("Failed to save filter", "user_id", in.UserID, "words", words, "class", errors.Class(err), "error", err)
		s.reset()
		return closing("❌ Failed to save the filter. Please try again later.")
	}

	if err := s.moveTo(StateIdle); err != nil {
		return m.abort(s, in, err, "/add_filter")
	}
	s.reset()

	return closing(fmt.Sprintf("✅ Filter saved: %s\nYou have %d/%d filters.",
		strings.Join(words, ", "), count, subscriberDomain.MaxFilters))
}

// ParseWords splits a comma-separated list, trimming blanks and dropping
// empty entries.
func ParseWords(s string) []string {
	return lo.FilterMap(strings.Split(s, ","), func(w string, _ int) (string, bool) {
		w = strings.TrimSpace(w)
		return w, w != ""
	})
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
