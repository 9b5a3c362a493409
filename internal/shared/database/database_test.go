package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesSchema(t *testing.T) {
	db, err := Open(context.Background(), Config{DSN: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err)
	defer func() { assert.NoError(t, db.Close()) }()

	var tables []string
	err = db.SelectContext(context.Background(), &tables,
		`SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`)
	require.NoError(t, err)
	assert.Equal(t, []string{"channels", "posts", "subscribers"}, tables)
}

func TestIsLockError(t *testing.T) {
	assert.False(t, IsLockError(nil))
	assert.True(t, IsLockError(errors.New("SQLITE_BUSY: busy")))
	assert.True(t, IsLockError(errors.New("database is locked (5)")))
	assert.True(t, IsLockError(errors.New("database table is locked")))
	assert.False(t, IsLockError(errors.New("UNIQUE constraint failed")))
}

func TestRetry(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	t.Run("retries lock errors until success", func(t *testing.T) {
		calls := 0
		err := Retry(ctx, func() error {
			calls++
			if calls < 3 {
				return errors.New("database is locked")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on other errors", func(t *testing.T) {
		calls := 0
		boom := errors.New("boom")
		err := Retry(ctx, func() error {
			calls++
			return boom
		})
		require.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})
}
