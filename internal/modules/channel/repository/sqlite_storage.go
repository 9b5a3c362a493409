package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/samber/oops"

	"github.com/reshetovitsme/devradar/internal/modules/channel/domain"
	"github.com/reshetovitsme/devradar/internal/shared/database"
	"github.com/reshetovitsme/devradar/internal/shared/errors"
)

// SQLiteStorage implements Repository on top of the shared SQLite database
type SQLiteStorage struct {
	db *sqlx.DB
}

// NewSQLiteStorage creates a channel repository backed by db
func NewSQLiteStorage(db *sqlx.DB) *SQLiteStorage {
	return &SQLiteStorage{db: db}
}

// Register relies on the primary key and the unique handle index, so two
// concurrent registrations of the same channel cannot both succeed.
func (s *SQLiteStorage) Register(ctx context.Context, channel *domain.Channel) error {
	query := `
		INSERT INTO channels (id, username, title, added_by, added_at)
		VALUES (:id, :username, :title, :added_by, :added_at)
		ON CONFLICT DO NOTHING
	`
	var inserted int64
	err := database.Retry(ctx, func() error {
		res, err := s.db.NamedExecContext(ctx, query, channel)
		if err != nil {
			return err
		}
		inserted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return oops.With("channel_id", channel.ID, "context", "failed to register channel").Wrap(err)
	}
	if inserted == 0 {
		return oops.With("channel_id", channel.ID, "username", channel.Username).Wrap(errors.ErrChannelExists)
	}
	return nil
}

func (s *SQLiteStorage) Find(ctx context.Context, id int64, handle, title string) (*domain.Channel, error) {
	handle = domain.NormalizeHandle(handle)
	query := `
		SELECT id, username, title, added_by, added_at FROM channels
		WHERE id = ?
		   OR (? <> '' AND username = ? COLLATE NOCASE)
		   OR (? <> '' AND title = ?)
		ORDER BY added_at
		LIMIT 1
	`
	var channel domain.Channel
	err := s.db.GetContext(ctx, &channel, query, id, handle, handle, title, title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrChannelNotFound
		}
		return nil, oops.With("channel_id", id, "context", "failed to find channel").Wrap(err)
	}
	return &channel, nil
}

func (s *SQLiteStorage) GetChannel(ctx context.Context, id int64) (*domain.Channel, error) {
	var channel domain.Channel
	err := s.db.GetContext(ctx, &channel,
		`SELECT id, username, title, added_by, added_at FROM channels WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrChannelNotFound
		}
		return nil, oops.With("channel_id", id, "context", "failed to get channel").Wrap(err)
	}
	return &channel, nil
}

func (s *SQLiteStorage) GetAllChannels(ctx context.Context) ([]*domain.Channel, error) {
	var channels []*domain.Channel
	err := s.db.SelectContext(ctx, &channels,
		`SELECT id, username, title, added_by, added_at FROM channels ORDER BY added_at, id`)
	if err != nil {
		return nil, oops.With("context", "failed to list channels").Wrap(err)
	}
	return channels, nil
}

func (s *SQLiteStorage) DeleteChannel(ctx context.Context, id int64) (bool, error) {
	var deleted int64
	err := database.Retry(ctx, func() error {
		res, err := s.db.ExecContext(ctx, `DELETE FROM channels WHERE id = ?`, id)
		if err != nil {
			return err
		}
		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return false, oops.With("channel_id", id, "context", "failed to delete channel").Wrap(err)
	}
	return deleted > 0, nil
}
