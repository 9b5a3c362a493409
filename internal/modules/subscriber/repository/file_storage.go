package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/samber/oops"

	"github.com/reshetovitsme/devradar/internal/modules/subscriber/domain"
	"github.com/reshetovitsme/devradar/internal/shared/errors"
)

// FileStorage implements Repository using one JSON file per subscriber
type FileStorage struct {
	basePath string
	mu       sync.RWMutex
}

// NewFileStorage creates a new file-based subscriber repository
func NewFileStorage(basePath string) (*FileStorage, error) {
	subscriberPath := filepath.Join(basePath, "subscribers")
	if err := os.MkdirAll(subscriberPath, 0755); err != nil {
		return nil, oops.With("base_path", basePath, "context", "failed to create subscribers directory").Wrap(err)
	}

	return &FileStorage{basePath: subscriberPath}, nil
}

func (s *FileStorage) GetSubscriber(_ context.Context, id int64) (*domain.Subscriber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.read(s.path(id))
}

func (s *FileStorage) GetAllSubscribers(_ context.Context) ([]*domain.Subscriber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, oops.With("directory", s.basePath, "context", "failed to read subscribers directory").Wrap(err)
	}

	subscribers := lo.FilterMap(entries, func(entry os.DirEntry, _ int) (*domain.Subscriber, bool) {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			return nil, false
		}
		subscriber, err := s.read(filepath.Join(s.basePath, entry.Name()))
		return subscriber, err == nil
	})

	sort.Slice(subscribers, func(i, j int) bool {
		return subscribers[i].ID < subscribers[j].ID
	})
	return subscribers, nil
}

func (s *FileStorage) AppendFilter(_ context.Context, id int64, username string, filter domain.Filter, max int, at time.Time) (*domain.Subscriber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subscriber, err := s.read(s.path(id))
	switch {
	case err == nil:
	case errors.Is(err, errors.ErrSubscriberNotFound):
		subscriber = &domain.Subscriber{ID: id, CreatedAt: at}
	default:
		return nil, err
	}

	if username != "" {
		subscriber.Username = username
	}
	subscriber.Filters = domain.AppendWindow(subscriber.Filters, filter, max)
	subscriber.UpdatedAt = at

	if err := s.write(subscriber); err != nil {
		return nil, err
	}
	return subscriber, nil
}

func (s *FileStorage) DeleteFilter(_ context.Context, id int64, index int, at time.Time) (domain.Filter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subscriber, err := s.read(s.path(id))
	if err != nil {
		if errors.Is(err, errors.ErrSubscriberNotFound) {
			return domain.Filter{}, oops.With("subscriber_id", id, "index", index).Wrap(errors.ErrFilterNotFound)
		}
		return domain.Filter{}, err
	}

	if index < 0 || index >= len(subscriber.Filters) {
		return domain.Filter{}, oops.With("subscriber_id", id, "index", index).Wrap(errors.ErrFilterNotFound)
	}

	removed := subscriber.Filters[index]
	subscriber.Filters = append(subscriber.Filters[:index:index], subscriber.Filters[index+1:]...)
	subscriber.UpdatedAt = at

	if err := s.write(subscriber); err != nil {
		return domain.Filter{}, err
	}
	return removed, nil
}

func (s *FileStorage) path(id int64) string {
	return filepath.Join(s.basePath, fmt.Sprintf("%d.json", id))
}

func (s *FileStorage) read(path string) (*domain.Subscriber, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ErrSubscriberNotFound
		}
		return nil, oops.With("path", path, "context", "failed to read subscriber").Wrap(err)
	}

	var subscriber domain.Subscriber
	if err := json.Unmarshal(data, &subscriber); err != nil {
		return nil, oops.With("path", path, "context", "failed to unmarshal subscriber").Wrap(err)
	}

	return &subscriber, nil
}

func (s *FileStorage) write(subscriber *domain.Subscriber) error {
	data, err := json.MarshalIndent(subscriber, "", "  ")
	if err != nil {
		return oops.With("subscriber_id", subscriber.ID, "context", "failed to marshal subscriber").Wrap(err)
	}

	if err := os.WriteFile(s.path(subscriber.ID), data, 0644); err != nil {
		return oops.With("subscriber_id", subscriber.ID, "context", "failed to write subscriber").Wrap(err)
	}
	return nil
}
