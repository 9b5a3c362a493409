package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/gorilla/feeds"
	"github.com/samber/lo"
	"github.com/samber/oops"

	channelDomain "github.com/reshetovitsme/devradar/internal/modules/channel/domain"
	"github.com/reshetovitsme/devradar/internal/modules/feed/domain"
	postDomain "github.com/reshetovitsme/devradar/internal/modules/post/domain"
)

// ChannelSource returns tracked channels
type ChannelSource interface {
	Get(ctx context.Context, id int64) (*channelDomain.Channel, error)
}

// PostSource returns processed posts of a channel, newest first
type PostSource interface {
	RecentPosts(ctx context.Context, channelID int64, limit int) ([]*postDomain.Post, error)
}

// Service handles RSS feed generation
type Service struct {
	channels ChannelSource
	posts    PostSource
	limit    int
}

// New creates a new feed service
func New(channels ChannelSource, posts PostSource) *Service {
	return &Service{
		channels: channels,
		posts:    posts,
		limit:    domain.DefaultItemLimit,
	}
}

// GenerateFeed builds the feed of the latest processed posts of a tracked channel
func (s *Service) GenerateFeed(ctx context.Context, channelID int64, baseURL string) (*feeds.Feed, error) {
	channel, err := s.channels.Get(ctx, channelID)
	if err != nil {
		return nil, oops.With("channel_id", channelID, "context", "channel not found").Wrap(err)
	}

	posts, err := s.posts.RecentPosts(ctx, channelID, s.limit)
	if err != nil {
		return nil, oops.With("channel_id", channelID, "context", "failed to get posts").Wrap(err)
	}

	cfg := s.feedConfig(channel, posts, baseURL)
	feed := &feeds.Feed{
		Title:       fmt.Sprintf("%s - DevRadar", cfg.Title),
		Link:        &feeds.Link{Href: cfg.Link},
		Description: fmt.Sprintf("Posts from Telegram channel: %s", cfg.Title),
		Author:      &feeds.Author{Name: lo.CoalesceOrEmpty(channel.Handle(), channel.DisplayName())},
		Created:     channel.AddedAt,
		Updated:     cfg.Updated,
	}

	feed.Items = lo.Map(posts, func(p *postDomain.Post, _ int) *feeds.Item {
		return postToFeedItem(p)
	})
	return feed, nil
}

func (s *Service) feedConfig(channel *channelDomain.Channel, posts []*postDomain.Post, baseURL string) domain.FeedConfig {
	cfg := domain.FeedConfig{
		ChannelID: channel.ID,
		Title:     channel.DisplayName(),
		Link:      lo.CoalesceOrEmpty(channel.Link(), domain.SelfLink(baseURL, channel.ID)),
		Updated:   channel.AddedAt,
	}
	if len(posts) > 0 {
		cfg.Updated = posts[0].ProcessedAt
	}
	return cfg
}

func postToFeedItem(p *postDomain.Post) *feeds.Item {
	paragraphs := lo.Map(strings.Split(p.Text, "\n"), func(line string, _ int) string {
		return html.EscapeString(line)
	})

	return &feeds.Item{
		Title:       truncate(firstLine(p.Text), 100),
		Link:        &feeds.Link{Href: p.Link},
		Description: p.Text,
		Content:     "<p>" + strings.Join(paragraphs, "<br>") + "</p>",
		Author:      &feeds.Author{Name: lo.CoalesceOrEmpty(p.ChannelTitle, p.ChannelUsername)},
		Created:     p.ProcessedAt,
		Id:          fmt.Sprintf("%d-%d", p.ChannelID, p.MessageID),
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}

func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen]) + "..."
}
