package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/oops"

	"github.com/reshetovitsme/devradar/internal/modules/post/domain"
	"github.com/reshetovitsme/devradar/internal/modules/post/repository"
)

// ChannelLookup answers whether a channel is tracked
type ChannelLookup interface {
	IsTracked(ctx context.Context, id int64, handle, title string) (bool, error)
}

// Service ingests channel posts: it filters untracked channels, drops
// duplicates and turns new posts into dispatch tasks
type Service struct {
	channels ChannelLookup
	repo     repository.Repository
	now      func() time.Time
	newID    func() string
}

// New creates a new post service
func New(channels ChannelLookup, repo repository.Repository) *Service {
	return &Service{
		channels: channels,
		repo:     repo,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Ingest records raw and returns the task to dispatch. It returns a nil
// task without error when the post is skipped: its channel is not tracked,
// it has no text, or it was processed before.
func (s *Service) Ingest(ctx context.Context, raw domain.RawPost) (*domain.DispatchTask, error) {
	username := strings.TrimPrefix(raw.ChannelUsername, "@")

	tracked, err := s.channels.IsTracked(ctx, raw.ChannelID, username, raw.ChannelTitle)
	if err != nil {
		return nil, oops.With("channel_id", raw.ChannelID, "message_id", raw.MessageID).Wrap(err)
	}
	if !tracked {
		slog.Debug("Post from untracked channel ignored", "channel_id", raw.ChannelID, "username", username)
		return nil, nil
	}

	text := raw.Body()
	if strings.TrimSpace(text) == "" {
		slog.Debug("Post without text ignored", "channel_id", raw.ChannelID, "message_id", raw.MessageID)
		return nil, nil
	}

	post := &domain.Post{
		ChannelID:       raw.ChannelID,
		MessageID:       raw.MessageID,
		ChannelUsername: username,
		ChannelTitle:    raw.ChannelTitle,
		Text:            text,
		Link:            domain.Permalink(raw.ChannelID, username, raw.MessageID),
		ProcessedAt:     s.now(),
	}

	inserted, err := s.repo.SavePost(ctx, post)
	if err != nil {
		return nil, oops.With("channel_id", raw.ChannelID, "message_id", raw.MessageID, "context", "failed to record post").Wrap(err)
	}
	if !inserted {
		slog.Debug("Duplicate post ignored", "channel_id", raw.ChannelID, "message_id", raw.MessageID)
		return nil, nil
	}

	task := &domain.DispatchTask{
		ID:              s.newID(),
		ChannelID:       post.ChannelID,
		ChannelUsername: post.ChannelUsername,
		ChannelTitle:    post.ChannelTitle,
		MessageID:       post.MessageID,
		Text:            post.Text,
		Link:            post.Link,
	}

	slog.Info("New post ingested", "task_id", task.ID, "channel_id", task.ChannelID, "message_id", task.MessageID)
	return task, nil
}

// RecentPosts returns up to limit processed posts of a channel, newest first.
func (s *Service) RecentPosts(ctx context.Context, channelID int64, limit int) ([]*domain.Post, error) {
	return s.repo.GetPosts(ctx, channelID, limit)
}
