package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/samber/lo"
	"github.com/samber/oops"

	"github.com/reshetovitsme/devradar/internal/modules/post/domain"
)

// FileStorage implements Repository using file system, one directory per
// channel and one file per message
type FileStorage struct {
	basePath string
}

// NewFileStorage creates a new file-based post repository
func NewFileStorage(basePath string) (*FileStorage, error) {
	postPath := filepath.Join(basePath, "posts")
	if err := os.MkdirAll(postPath, 0755); err != nil {
		return nil, oops.With("base_path", basePath, "context", "failed to create posts directory").Wrap(err)
	}

	return &FileStorage{basePath: postPath}, nil
}

// SavePost creates the post file exclusively, so the first writer wins
// even across processes sharing the directory.
func (s *FileStorage) SavePost(_ context.Context, post *domain.Post) (bool, error) {
	postDir := filepath.Join(s.basePath, strconv.FormatInt(post.ChannelID, 10))
	if err := os.MkdirAll(postDir, 0755); err != nil {
		return false, oops.With("post_dir", postDir, "context", "failed to create post directory").Wrap(err)
	}

	data, err := json.MarshalIndent(post, "", "  ")
	if err != nil {
		return false, oops.With("channel_id", post.ChannelID, "message_id", post.MessageID, "context", "failed to marshal post").Wrap(err)
	}

	path := filepath.Join(postDir, fmt.Sprintf("%d.json", post.MessageID))
	created, err := createExclusive(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		return false, oops.With("channel_id", post.ChannelID, "message_id", post.MessageID, "context", "failed to save post").Wrap(err)
	}
	return created, nil
}

// createExclusive creates path only if it does not exist yet and fills it
// with write. It returns false when the file already exists. A failed write
// or close removes the file so the post can be saved again.
func createExclusive(path string, write func(io.Writer) error) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, err
	}

	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return false, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return false, err
	}
	return true, nil
}

func (s *FileStorage) GetPosts(_ context.Context, channelID int64, limit int) ([]*domain.Post, error) {
	postDir := filepath.Join(s.basePath, strconv.FormatInt(channelID, 10))
	entries, err := os.ReadDir(postDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*domain.Post{}, nil
		}
		return nil, oops.With("channel_id", channelID, "post_dir", postDir, "context", "failed to read posts directory").Wrap(err)
	}

	posts := lo.FilterMap(entries, func(entry os.DirEntry, _ int) (*domain.Post, bool) {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			return nil, false
		}
		data, err := os.ReadFile(filepath.Join(postDir, entry.Name()))
		if err != nil {
			return nil, false
		}
		var post domain.Post
		if err := json.Unmarshal(data, &post); err != nil {
			return nil, false
		}
		return &post, true
	})

	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].ProcessedAt.Equal(posts[j].ProcessedAt) {
			return posts[i].ProcessedAt.After(posts[j].ProcessedAt)
		}
		return posts[i].MessageID > posts[j].MessageID
	})

	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}
