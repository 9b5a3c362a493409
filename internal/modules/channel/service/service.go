package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/oops"

	"github.com/reshetovitsme/devradar/internal/modules/channel/domain"
	channelRepo "github.com/reshetovitsme/devradar/internal/modules/channel/repository"
	"github.com/reshetovitsme/devradar/internal/shared/errors"
)

// Service is the registry of tracked channels
type Service struct {
	repo channelRepo.Repository
	now  func() time.Time
}

// New creates a new channel service
func New(repo channelRepo.Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// IsTracked reports whether a channel with the given id, handle or title
// is registered. Empty handle and title are ignored.
func (s *Service) IsTracked(ctx context.Context, id int64, handle, title string) (bool, error) {
	_, err := s.repo.Find(ctx, id, handle, title)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errors.ErrChannelNotFound):
		return false, nil
	default:
		return false, oops.With("channel_id", id, "context", "failed to look up channel").Wrap(err)
	}
}

// Register adds a channel to the registry. It fails with
// errors.ErrChannelExists when the id or handle is already taken.
func (s *Service) Register(ctx context.Context, channel *domain.Channel) error {
	if channel == nil || channel.ID == 0 {
		return oops.With("context", "channel id is required").Wrap(errors.ErrInvalidInput)
	}

	channel.Username = domain.NormalizeHandle(channel.Username)
	if channel.AddedAt.IsZero() {
		channel.AddedAt = s.now()
	}

	if err := s.repo.Register(ctx, channel); err != nil {
		return err
	}

	slog.Info("Channel registered", "channel_id", channel.ID, "username", channel.Username, "added_by", channel.AddedBy)
	return nil
}

// List returns all tracked channels, oldest registration first.
func (s *Service) List(ctx context.Context) ([]*domain.Channel, error) {
	return s.repo.GetAllChannels(ctx)
}

// Get returns the channel with the given id.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Channel, error) {
	return s.repo.GetChannel(ctx, id)
}

// Remove deletes a channel and reports whether it was tracked.
func (s *Service) Remove(ctx context.Context, id int64) (bool, error) {
	removed, err := s.repo.DeleteChannel(ctx, id)
	if err != nil {
		return false, err
	}
	if removed {
		slog.Info("Channel removed", "channel_id", id)
	}
	return removed, nil
}
