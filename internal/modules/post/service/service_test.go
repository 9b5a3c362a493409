package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reshetovitsme/devradar/internal/modules/post/domain"
	"github.com/reshetovitsme/devradar/internal/modules/post/repository"
)

// trackedSet tracks channels by id or handle.
type trackedSet struct {
	ids     map[int64]bool
	handles map[string]bool
	err     error
}

func (t *trackedSet) IsTracked(_ context.Context, id int64, handle, _ string) (bool, error) {
	return t.ids[id] || (handle != "" && t.handles[handle]), t.err
}

func newService(t *testing.T, lookup ChannelLookup) *Service {
	t.Helper()
	repo, err := repository.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	svc := New(lookup, repo)
	svc.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	svc.newID = func() string { return "task-1" }
	return svc
}

func TestService_IngestTwiceDispatchesOnce(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, &trackedSet{ids: map[int64]bool{-1001234567890: true}})

	raw := domain.RawPost{ChannelID: -1001234567890, ChannelUsername: "devjobs", ChannelTitle: "Dev Jobs", MessageID: 42, Text: "Go developer wanted"}

	task, err := svc.Ingest(ctx, raw)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, &domain.DispatchTask{
		ID:              "task-1",
		ChannelID:       -1001234567890,
		ChannelUsername: "devjobs",
		ChannelTitle:    "Dev Jobs",
		MessageID:       42,
		Text:            "Go developer wanted",
		Link:            "https://t.me/devjobs/42",
	}, task)

	task, err = svc.Ingest(ctx, raw)
	require.NoError(t, err)
	assert.Nil(t, task)

	posts, err := svc.RecentPosts(ctx, -1001234567890, 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), posts[0].ProcessedAt.UTC())
}

func TestService_IngestSkips(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, &trackedSet{ids: map[int64]bool{-100777: true}})

	task, err := svc.Ingest(ctx, domain.RawPost{ChannelID: -100555, MessageID: 1, Text: "python"})
	require.NoError(t, err)
	assert.Nil(t, task, "untracked channel")

	task, err = svc.Ingest(ctx, domain.RawPost{ChannelID: -100777, MessageID: 2})
	require.NoError(t, err)
	assert.Nil(t, task, "no text")

	posts, err := svc.RecentPosts(ctx, -100555, 10)
	require.NoError(t, err)
	assert.Empty(t, posts, "skipped posts are not recorded")
}

func TestService_IngestPrivateChannelAndCaption(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, &trackedSet{ids: map[int64]bool{-1009876543210: true}})

	task, err := svc.Ingest(ctx, domain.RawPost{ChannelID: -1009876543210, ChannelTitle: "Closed", MessageID: 5, Caption: "photo caption"})
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "https://t.me/c/9876543210/5", task.Link)
	assert.Equal(t, "photo caption", task.Text)
}

func TestService_IngestTrackedByHandle(t *testing.T) {
	svc := newService(t, &trackedSet{handles: map[string]bool{"remote_jobs": true}})

	task, err := svc.Ingest(context.Background(), domain.RawPost{ChannelID: -1, ChannelUsername: "@remote_jobs", MessageID: 9, Text: "x"})
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "https://t.me/remote_jobs/9", task.Link)
}

func TestService_IngestLookupError(t *testing.T) {
	boom := errors.New("boom")
	svc := newService(t, &trackedSet{err: boom})

	task, err := svc.Ingest(context.Background(), domain.RawPost{ChannelID: -1, MessageID: 1, Text: "x"})
	require.ErrorIs(t, err, boom)
	assert.Nil(t, task)
}
