package repository

import (
	"context"

	"github.com/reshetovitsme/devradar/internal/modules/post/domain"
)

// Repository defines the interface for processed post persistence
type Repository interface {
	// SavePost stores post unless a post with the same channel and message
	// id exists. It reports whether the post was inserted.
	SavePost(ctx context.Context, post *domain.Post) (bool, error)
	// GetPosts returns up to limit posts of a channel, newest first.
	GetPosts(ctx context.Context, channelID int64, limit int) ([]*domain.Post, error)
}
