package repository

import (
	"context"

	"github.com/reshetovitsme/devradar/internal/modules/channel/domain"
)

// Repository defines the interface for channel data persistence.
// Implementations: FileStorage (JSON files) and SQLiteStorage.
type Repository interface {
	// Register stores channel unless a channel with the same id or handle
	// exists, in which case it returns errors.ErrChannelExists.
	Register(ctx context.Context, channel *domain.Channel) error
	// Find returns the first channel matching id OR handle OR title.
	Find(ctx context.Context, id int64, handle, title string) (*domain.Channel, error)
	GetChannel(ctx context.Context, id int64) (*domain.Channel, error)
	// GetAllChannels returns channels ordered by AddedAt ascending.
	GetAllChannels(ctx context.Context) ([]*domain.Channel, error)
	// DeleteChannel reports whether a channel was removed.
	DeleteChannel(ctx context.Context, id int64) (bool, error)
}
