package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reshetovitsme/devradar/internal/modules/channel/domain"
	channelRepo "github.com/reshetovitsme/devradar/internal/modules/channel/repository"
	"github.com/reshetovitsme/devradar/internal/shared/errors"
)

func newService(t *testing.T) *Service {
	t.Helper()
	repo, err := channelRepo.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	svc := New(repo)
	svc.now = func() time.Time { return time.Date(2025, 5, 17, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestService_IsTrackedOrSemantics(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	require.NoError(t, svc.Register(ctx, &domain.Channel{ID: -1001, Username: "@remote_it", Title: "Remote IT"}))

	tests := []struct {
		name   string
		id     int64
		handle string
		title  string
		want   bool
	}{
		{"matching id", -1001, "", "", true},
		{"matching handle", 7, "remote_it", "", true},
		{"matching title", 7, "", "Remote IT", true},
		{"only one of three matches", 7, "nope", "Remote IT", true},
		{"none match", 7, "nope", "Nope", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.IsTracked(ctx, tt.id, tt.handle, tt.title)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	ch := &domain.Channel{ID: -1001, Username: " @Go_Jobs ", Title: "Go Jobs", AddedBy: 42}
	require.NoError(t, svc.Register(ctx, ch))
	assert.Equal(t, "Go_Jobs", ch.Username)
	assert.Equal(t, time.Date(2025, 5, 17, 12, 0, 0, 0, time.UTC), ch.AddedAt)

	err := svc.Register(ctx, &domain.Channel{ID: -1002, Username: "go_jobs"})
	assert.ErrorIs(t, err, errors.ErrChannelExists)
	assert.Equal(t, errors.ClassConflict, errors.Class(err))

	err = svc.Register(ctx, &domain.Channel{Username: "no_id"})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	channels, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, int64(42), channels[0].AddedBy)
}

func TestService_Remove(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	require.NoError(t, svc.Register(ctx, &domain.Channel{ID: -1001}))

	removed, err := svc.Remove(ctx, -1001)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.Remove(ctx, -1001)
	require.NoError(t, err)
	assert.False(t, removed)

	tracked, err := svc.IsTracked(ctx, -1001, "", "")
	require.NoError(t, err)
	assert.False(t, tracked)
}
