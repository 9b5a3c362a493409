package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/samber/oops"

	"github.com/reshetovitsme/devradar/internal/modules/subscriber/domain"
	"github.com/reshetovitsme/devradar/internal/modules/subscriber/repository"
	"github.com/reshetovitsme/devradar/internal/shared/errors"
)

// Service is the filter store: it owns subscribers and their filters
type Service struct {
	repo repository.Repository
	now  func() time.Time
}

// New creates a new subscriber service
func New(repo repository.Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// AddFilter stores a filter made of one single-keyword group per word and
// returns the subscriber's filter count afterwards. When the subscriber
// already holds domain.MaxFilters filters the oldest one is evicted.
func (s *Service) AddFilter(ctx context.Context, subscriberID int64, username string, words []string) (int, error) {
	words = lo.Map(words, func(w string, _ int) string { return strings.TrimSpace(w) })
	if len(words) == 0 || lo.Contains(words, "") {
		return 0, oops.With("subscriber_id", subscriberID, "words", words).Wrap(errors.ErrInvalidInput)
	}

	subscriber, err := s.repo.AppendFilter(ctx, subscriberID, username, domain.NewFilter(words...), domain.MaxFilters, s.now())
	if err != nil {
		return 0, err
	}

	slog.Info("Filter added", "subscriber_id", subscriberID, "words", words, "filters", len(subscriber.Filters))
	return len(subscriber.Filters), nil
}

// ListFilters returns the subscriber's filters in creation order. Unknown
// subscribers have no filters.
func (s *Service) ListFilters(ctx context.Context, subscriberID int64) ([]domain.Filter, error) {
	subscriber, err := s.repo.GetSubscriber(ctx, subscriberID)
	if err != nil {
		if errors.Is(err, errors.ErrSubscriberNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return subscriber.Filters, nil
}

// FilterCount returns the number of filters the subscriber holds.
func (s *Service) FilterCount(ctx context.Context, subscriberID int64) (int, error) {
	filters, err := s.ListFilters(ctx, subscriberID)
	return len(filters), err
}

// DeleteFilter removes the filter at the 1-based position and returns it.
func (s *Service) DeleteFilter(ctx context.Context, subscriberID int64, position int) (domain.Filter, error) {
	if position < 1 {
		return domain.Filter{}, oops.With("subscriber_id", subscriberID, "position", position).Wrap(errors.ErrInvalidInput)
	}

	removed, err := s.repo.DeleteFilter(ctx, subscriberID, position-1, s.now())
	if err != nil {
		return domain.Filter{}, err
	}

	slog.Info("Filter deleted", "subscriber_id", subscriberID, "position", position, "filter", removed.String())
	return removed, nil
}

// Subscribers returns every subscriber with their filters.
func (s *Service) Subscribers(ctx context.Context) ([]*domain.Subscriber, error) {
	return s.repo.GetAllSubscribers(ctx)
}
