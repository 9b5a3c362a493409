package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
	"github.com/samber/oops"

	"github.com/reshetovitsme/devradar/internal/modules/subscriber/domain"
	"github.com/reshetovitsme/devradar/internal/shared/database"
	"github.com/reshetovitsme/devradar/internal/shared/errors"
)

type subscriberRow struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	Filters   string    `db:"filters"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// SQLiteStorage implements Repository on top of the shared SQLite database.
// Filters are kept as a JSON array in the subscriber row.
type SQLiteStorage struct {
	db *sqlx.DB
}

// NewSQLiteStorage creates a subscriber repository backed by db
func NewSQLiteStorage(db *sqlx.DB) *SQLiteStorage {
	return &SQLiteStorage{db: db}
}

func (s *SQLiteStorage) GetSubscriber(ctx context.Context, id int64) (*domain.Subscriber, error) {
	return s.get(ctx, s.db, id)
}

func (s *SQLiteStorage) GetAllSubscribers(ctx context.Context) ([]*domain.Subscriber, error) {
	var rows []subscriberRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM subscribers ORDER BY id`); err != nil {
		return nil, oops.With("context", "failed to list subscribers").Wrap(err)
	}

	subscribers := make([]*domain.Subscriber, 0, len(rows))
	for _, row := range rows {
		subscriber, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		subscribers = append(subscribers, subscriber)
	}
	return subscribers, nil
}

func (s *SQLiteStorage) AppendFilter(ctx context.Context, id int64, username string, filter domain.Filter, max int, at time.Time) (*domain.Subscriber, error) {
	var result *domain.Subscriber
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		subscriber, err := s.get(ctx, tx, id)
		switch {
		case err == nil:
		case errors.Is(err, errors.ErrSubscriberNotFound):
			subscriber = &domain.Subscriber{ID: id, CreatedAt: at}
		default:
			return err
		}

		if username != "" {
			subscriber.Username = username
		}
		subscriber.Filters = domain.AppendWindow(subscriber.Filters, filter, max)
		subscriber.UpdatedAt = at

		if err := s.upsert(ctx, tx, subscriber); err != nil {
			return err
		}
		result = subscriber
		return nil
	})
	if err != nil {
		return nil, oops.With("subscriber_id", id, "context", "failed to append filter").Wrap(err)
	}
	return result, nil
}

func (s *SQLiteStorage) DeleteFilter(ctx context.Context, id int64, index int, at time.Time) (domain.Filter, error) {
	var removed domain.Filter
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		subscriber, err := s.get(ctx, tx, id)
		if err != nil {
			if errors.Is(err, errors.ErrSubscriberNotFound) {
				return errors.ErrFilterNotFound
			}
			return err
		}

		if index < 0 || index >= len(subscriber.Filters) {
			return errors.ErrFilterNotFound
		}

		removed = subscriber.Filters[index]
		subscriber.Filters = append(subscriber.Filters[:index:index], subscriber.Filters[index+1:]...)
		subscriber.UpdatedAt = at
		return s.upsert(ctx, tx, subscriber)
	})
	if err != nil {
		return domain.Filter{}, oops.With("subscriber_id", id, "index", index).Wrap(err)
	}
	return removed, nil
}

func (s *SQLiteStorage) get(ctx context.Context, q sqlx.QueryerContext, id int64) (*domain.Subscriber, error) {
	var row subscriberRow
	if err := sqlx.GetContext(ctx, q, &row, `SELECT * FROM subscribers WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrSubscriberNotFound
		}
		return nil, oops.With("subscriber_id", id, "context", "failed to get subscriber").Wrap(err)
	}
	return row.toDomain()
}

func (s *SQLiteStorage) upsert(ctx context.Context, tx *sqlx.Tx, subscriber *domain.Subscriber) error {
	filters, err := json.Marshal(lo.Ternary(subscriber.Filters == nil, []domain.Filter{}, subscriber.Filters))
	if err != nil {
		return oops.With("subscriber_id", subscriber.ID, "context", "failed to marshal filters").Wrap(err)
	}

	query := `
		INSERT INTO subscribers (id, username, filters, created_at, updated_at)
		VALUES (:id, :username, :filters, :created_at, :updated_at)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			filters = excluded.filters,
			updated_at = excluded.updated_at
	`
	_, err = tx.NamedExecContext(ctx, query, subscriberRow{
		ID:        subscriber.ID,
		Username:  subscriber.Username,
		Filters:   string(filters),
		CreatedAt: subscriber.CreatedAt,
		UpdatedAt: subscriber.UpdatedAt,
	})
	return err
}

// inTx runs fn in a transaction, retrying the whole transaction on lock errors.
func (s *SQLiteStorage) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	return database.Retry(ctx, func() error {
		tx, err := s.db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		if err := fn(tx); err != nil {
			_ = tx.Rollback()
			return err
		}
		return tx.Commit()
	})
}

func (r subscriberRow) toDomain() (*domain.Subscriber, error) {
	var filters []domain.Filter
	if err := json.Unmarshal([]byte(r.Filters), &filters); err != nil {
		return nil, oops.With("subscriber_id", r.ID, "context", "failed to unmarshal filters").Wrap(err)
	}
	return &domain.Subscriber{
		ID:        r.ID,
		Username:  r.Username,
		Filters:   filters,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}
