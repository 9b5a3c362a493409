package repository

import (
	"context"
	"time"

	"github.com/reshetovitsme/devradar/internal/modules/subscriber/domain"
)

// Repository defines the interface for subscriber data persistence
type Repository interface {
	GetSubscriber(ctx context.Context, id int64) (*domain.Subscriber, error)
	GetAllSubscribers(ctx context.Context) ([]*domain.Subscriber, error)
	// AppendFilter creates the subscriber if needed, appends filter and keeps
	// only the newest max filters. The read-modify-write is atomic per subscriber.
	AppendFilter(ctx context.Context, id int64, username string, filter domain.Filter, max int, at time.Time) (*domain.Subscriber, error)
	// DeleteFilter removes the filter at the zero-based index.
	DeleteFilter(ctx context.Context, id int64, index int, at time.Time) (domain.Filter, error)
}
