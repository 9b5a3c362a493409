package repository

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reshetovitsme/devradar/internal/modules/post/domain"
	"github.com/reshetovitsme/devradar/internal/shared/database"
)

func storages(t *testing.T) map[string]Repository {
	t.Helper()

	fs, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	db, err := database.Open(context.Background(), database.Config{DSN: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return map[string]Repository{
		"file":   fs,
		"sqlite": NewSQLiteStorage(db),
	}
}

func TestRepository_SavePostDedup(t *testing.T) {
	at := time.Date(2025, 2, 2, 8, 0, 0, 0, time.UTC)

	for name, repo := range storages(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			post := &domain.Post{ChannelID: -1001, MessageID: 10, Text: "hello", Link: "https://t.me/c/1/10", ProcessedAt: at}

			inserted, err := repo.SavePost(ctx, post)
			require.NoError(t, err)
			assert.True(t, inserted)

			inserted, err = repo.SavePost(ctx, &domain.Post{ChannelID: -1001, MessageID: 10, Text: "edited", ProcessedAt: at.Add(time.Hour)})
			require.NoError(t, err)
			assert.False(t, inserted)

			inserted, err = repo.SavePost(ctx, &domain.Post{ChannelID: -1002, MessageID: 10, ProcessedAt: at})
			require.NoError(t, err)
			assert.True(t, inserted, "same message id in another channel is a different post")

			posts, err := repo.GetPosts(ctx, -1001, 0)
			require.NoError(t, err)
			require.Len(t, posts, 1)
			assert.Equal(t, "hello", posts[0].Text)
		})
	}
}

func TestRepository_ConcurrentSaveSingleWinner(t *testing.T) {
	for name, repo := range storages(t) {
		t.Run(name, func(t *testing.T) {
			var (
				wg       sync.WaitGroup
				inserted atomic.Int32
			)
			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					ok, err := repo.SavePost(context.Background(), &domain.Post{ChannelID: -1, MessageID: 1, ProcessedAt: time.Now()})
					assert.NoError(t, err)
					if ok {
						inserted.Add(1)
					}
				}()
			}
			wg.Wait()
			assert.Equal(t, int32(1), inserted.Load())
		})
	}
}

func TestRepository_GetPostsNewestFirst(t *testing.T) {
	at := time.Date(2025, 2, 2, 8, 0, 0, 0, time.UTC)

	for name, repo := range storages(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for i := 1; i <= 5; i++ {
				_, err := repo.SavePost(ctx, &domain.Post{ChannelID: -1001, MessageID: i, ProcessedAt: at.Add(time.Duration(i) * time.Minute)})
				require.NoError(t, err)
			}

			posts, err := repo.GetPosts(ctx, -1001, 3)
			require.NoError(t, err)
			require.Len(t, posts, 3)
			assert.Equal(t, []int{5, 4, 3}, []int{posts[0].MessageID, posts[1].MessageID, posts[2].MessageID})

			posts, err = repo.GetPosts(ctx, -42, 3)
			require.NoError(t, err)
			assert.Empty(t, posts)
		})
	}
}

func TestCreateExclusive_FailedWriteLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "10.json")
	errDisk := errors.New("disk full")

	created, err := createExclusive(path, func(w io.Writer) error {
		_, _ = w.Write([]byte(`{"chan`))
		return errDisk
	})
	require.ErrorIs(t, err, errDisk)
	assert.False(t, created)
	assert.NoFileExists(t, path)

	created, err = createExclusive(path, func(w io.Writer) error {
		_, err := w.Write([]byte(`{}`))
		return err
	})
	require.NoError(t, err)
	assert.True(t, created, "the post can be saved again after a failed write")

	created, err = createExclusive(path, func(io.Writer) error {
		t.Fatal("existing file must not be rewritten")
		return nil
	})
	require.NoError(t, err)
	assert.False(t, created)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}
