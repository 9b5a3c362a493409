package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/samber/oops"

	"github.com/reshetovitsme/devradar/internal/modules/channel/domain"
	"github.com/reshetovitsme/devradar/internal/shared/errors"
)

// FileStorage implements Repository using one JSON file per channel
type FileStorage struct {
	basePath string
	mu       sync.RWMutex
}

// NewFileStorage creates a new file-based channel repository
func NewFileStorage(basePath string) (*FileStorage, error) {
	channelPath := filepath.Join(basePath, "channels")
	if err := os.MkdirAll(channelPath, 0755); err != nil {
		return nil, oops.With("base_path", basePath, "context", "failed to create channels directory").Wrap(err)
	}

	return &FileStorage{basePath: channelPath}, nil
}

func (s *FileStorage) Register(_ context.Context, channel *domain.Channel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	channels, err := s.readAll()
	if err != nil {
		return err
	}

	_, exists := lo.Find(channels, func(ch *domain.Channel) bool {
		return ch.ID == channel.ID || (channel.Username != "" && strings.EqualFold(ch.Username, channel.Username))
	})
	if exists {
		return oops.With("channel_id", channel.ID, "username", channel.Username).Wrap(errors.ErrChannelExists)
	}

	data, err := json.MarshalIndent(channel, "", "  ")
	if err != nil {
		return oops.With("channel_id", channel.ID, "context", "failed to marshal channel").Wrap(err)
	}

	if err := os.WriteFile(s.path(channel.ID), data, 0644); err != nil {
		return oops.With("channel_id", channel.ID, "context", "failed to write channel").Wrap(err)
	}
	return nil
}

func (s *FileStorage) Find(_ context.Context, id int64, handle, title string) (*domain.Channel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	channels, err := s.readAll()
	if err != nil {
		return nil, err
	}

	channel, ok := lo.Find(channels, func(ch *domain.Channel) bool {
		return ch.Matches(id, handle, title)
	})
	if !ok {
		return nil, errors.ErrChannelNotFound
	}
	return channel, nil
}

func (s *FileStorage) GetChannel(_ context.Context, id int64) (*domain.Channel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.read(s.path(id))
}

func (s *FileStorage) GetAllChannels(_ context.Context) ([]*domain.Channel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.readAll()
}

func (s *FileStorage) DeleteChannel(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(id)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, oops.With("channel_id", id, "context", "failed to delete channel").Wrap(err)
	}
	return true, nil
}

func (s *FileStorage) path(id int64) string {
	return filepath.Join(s.basePath, fmt.Sprintf("%d.json", id))
}

func (s *FileStorage) read(path string) (*domain.Channel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ErrChannelNotFound
		}
		return nil, oops.With("path", path, "context", "failed to read channel").Wrap(err)
	}

	var channel domain.Channel
	if err := json.Unmarshal(data, &channel); err != nil {
		return nil, oops.With("path", path, "context", "failed to unmarshal channel").Wrap(err)
	}

	return &channel, nil
}

// readAll loads every channel file, skipping unreadable ones, sorted by AddedAt.
func (s *FileStorage) readAll() ([]*domain.Channel, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, oops.With("directory", s.basePath, "context", "failed to read channels directory").Wrap(err)
	}

	channels := lo.FilterMap(entries, func(entry os.DirEntry, _ int) (*domain.Channel, bool) {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			return nil, false
		}
		channel, err := s.read(filepath.Join(s.basePath, entry.Name()))
		return channel, err == nil
	})

	sort.SliceStable(channels, func(i, j int) bool {
		return channels[i].AddedAt.Before(channels[j].AddedAt)
	})
	return channels, nil
}
