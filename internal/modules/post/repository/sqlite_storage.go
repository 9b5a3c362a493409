package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/samber/oops"

	"github.com/reshetovitsme/devradar/internal/modules/post/domain"
	"github.com/reshetovitsme/devradar/internal/shared/database"
)

// SQLiteStorage implements Repository on top of the shared SQLite database
type SQLiteStorage struct {
	db *sqlx.DB
}

// NewSQLiteStorage creates a post repository backed by db
func NewSQLiteStorage(db *sqlx.DB) *SQLiteStorage {
	return &SQLiteStorage{db: db}
}

func (s *SQLiteStorage) SavePost(ctx context.Context, post *domain.Post) (bool, error) {
	query := `
		INSERT INTO posts (channel_id, message_id, channel_username, channel_title, text, link, processed_at)
		VALUES (:channel_id, :message_id, :channel_username, :channel_title, :text, :link, :processed_at)
		ON CONFLICT(channel_id, message_id) DO NOTHING
	`
	var inserted int64
	err := database.Retry(ctx, func() error {
		res, err := s.db.NamedExecContext(ctx, query, post)
		if err != nil {
			return err
		}
		inserted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return false, oops.With("channel_id", post.ChannelID, "message_id", post.MessageID, "context", "failed to save post").Wrap(err)
	}
	return inserted > 0, nil
}

func (s *SQLiteStorage) GetPosts(ctx context.Context, channelID int64, limit int) ([]*domain.Post, error) {
	if limit <= 0 {
		limit = -1
	}
	posts := []*domain.Post{}
	err := s.db.SelectContext(ctx, &posts, `
		SELECT channel_id, message_id, channel_username, channel_title, text, link, processed_at
		FROM posts WHERE channel_id = ?
		ORDER BY processed_at DESC, message_id DESC
		LIMIT ?`, channelID, limit)
	if err != nil {
		return nil, oops.With("channel_id", channelID, "context", "failed to get posts").Wrap(err)
	}
	return posts, nil
}
