package service

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/samber/oops"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/reshetovitsme/devradar/internal/modules/matching"
	"github.com/reshetovitsme/devradar/internal/modules/post/domain"
	subscriberDomain "github.com/reshetovitsme/devradar/internal/modules/subscriber/domain"
	"github.com/reshetovitsme/devradar/internal/shared/errors"
)

//go:generate moq -out mocks/transport.go -pkg mocks -skip-ensure -fmt goimports . Transport
//go:generate moq -out mocks/subscribers.go -pkg mocks -skip-ensure -fmt goimports . SubscriberSource
//go:generate moq -out mocks/matcher.go -pkg mocks -skip-ensure -fmt goimports . Matcher

// Transport delivers notifications to subscribers
type Transport interface {
	ForwardMessage(ctx context.Context, to, fromChannel int64, messageID int) error
	SendMessage(ctx context.Context, to int64, text string, disablePreview bool) error
}

// SubscriberSource lists subscribers with their filters
type SubscriberSource interface {
	Subscribers(ctx context.Context) ([]*subscriberDomain.Subscriber, error)
}

// Matcher evaluates filters against post text
type Matcher interface {
	Matches(text string, filter subscriberDomain.Filter) bool
	MatchedVariants(text string, filter subscriberDomain.Filter) []string
}

// Config holds dispatcher tuning
type Config struct {
	Workers   int
	QueueSize int
	RateLimit float64 // outbound calls per second, 0 disables limiting
}

// Stats summarises one dispatch
type Stats struct {
	Subscribers int
	Matched     int
	Forwarded   int
	Fallback    int
	Failed      int
}

// Service fans new posts out to matching subscribers
type Service struct {
	subscribers SubscriberSource
	transport   Transport
	matcher     Matcher
	limiter     *rate.Limiter
	workers     int

	queue  chan *domain.DispatchTask
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new dispatch service
func New(cfg Config, subscribers SubscriberSource, transport Transport, matcher Matcher) *Service {
	limit, burst := rate.Inf, 1
	if cfg.RateLimit > 0 {
		limit, burst = rate.Limit(cfg.RateLimit), max(1, int(cfg.RateLimit))
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		subscribers: subscribers,
		transport:   transport,
		matcher:     matcher,
		limiter:     rate.NewLimiter(limit, burst),
		workers:     max(1, cfg.Workers),
		queue:       make(chan *domain.DispatchTask, max(1, cfg.QueueSize)),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start runs the loop consuming submitted tasks until Stop is called or ctx
// is done.
func (s *Service) Start(ctx context.Context) {
	s.wg.Add(1)
	go s.loop(ctx)
}

// Stop stops the loop and waits for the task in progress to finish.
func (s *Service) Stop() {
	s.cancel()
	s.wg.Wait()
	if pending := len(s.queue); pending > 0 {
		slog.Warn("Dispatcher stopped with pending tasks", "pending", pending)
	}
}

// Submit queues task for dispatch, waiting for room in the queue.
func (s *Service) Submit(ctx context.Context, task *domain.DispatchTask) error {
	select {
	case <-s.ctx.Done():
		return errors.ErrDispatcherStopped
	default:
	}

	select {
	case s.queue <- task:
		return nil
	case <-s.ctx.Done():
		return errors.ErrDispatcherStopped
	case <-ctx.Done():
		return oops.With("task_id", task.ID).Wrap(ctx.Err())
	}
}

func (s *Service) loop(ctx context.Context) {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ctx.Done():
			return
		case task := <-s.queue:
			stats, err := s.Dispatch(ctx, task)
			if err != nil {
				slog.Error("Dispatch failed", "task_id", task.ID, "class", errors.Class(err), "error", err)
				continue
			}
			slog.Info("Post dispatched", "task_id", task.ID, "channel_id", task.ChannelID, "message_id", task.MessageID,
				"subscribers", stats.Subscribers, "matched", stats.Matched, "forwarded", stats.Forwarded,
				"fallback", stats.Fallback, "failed", stats.Failed)
		}
	}
}

// Dispatch delivers task to every subscriber having a matching filter. Each
// subscriber gets at most one notification: filters are evaluated in stored
// order and evaluation stops at the first match. Failures are isolated per
// subscriber and reported in Stats.
func (s *Service) Dispatch(ctx context.Context, task *domain.DispatchTask) (Stats, error) {
	subscribers, err := s.subscribers.Subscribers(ctx)
	if err != nil {
		return Stats{}, oops.With("task_id", task.ID, "context", "failed to list subscribers").Wrap(err)
	}

	var matched, forwarded, fallback, failed atomic.Int32

	var g errgroup.Group
	g.SetLimit(s.workers)
	for _, sub := range subscribers {
		g.Go(func() error {
			variants, ok := s.firstMatch(sub, task)
			if !ok {
				return nil
			}
			matched.Add(1)

			switch s.deliver(ctx, sub.ID, task, variants) {
			case deliveredForward:
				forwarded.Add(1)
			case deliveredFallback:
				fallback.Add(1)
			default:
				failed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	return Stats{
		Subscribers: len(subscribers),
		Matched:     int(matched.Load()),
		Forwarded:   int(forwarded.Load()),
		Fallback:    int(fallback.Load()),
		Failed:      int(failed.Load()),
	}, nil
}

// firstMatch returns the highlight variants of the first matching filter.
func (s *Service) firstMatch(sub *subscriberDomain.Subscriber, task *domain.DispatchTask) ([]string, bool) {
	for i, filter := range sub.Filters {
		if variants, ok := s.evaluate(sub.ID, i, task, filter); ok {
			return variants, true
		}
	}
	return nil, false
}

// evaluate treats a panicking filter as non-matching.
func (s *Service) evaluate(subscriberID int64, index int, task *domain.DispatchTask, filter subscriberDomain.Filter) (variants []string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Filter evaluation failed", "subscriber_id", subscriberID, "filter", index, "task_id", task.ID, "panic", r)
			variants, ok = nil, false
		}
	}()

	if !s.matcher.Matches(task.Text, filter) {
		return nil, false
	}
	return s.matcher.MatchedVariants(task.Text, filter), true
}

type delivery int

const (
	deliveryFailed delivery = iota
	deliveredForward
	deliveredFallback
)

func (s *Service) deliver(ctx context.Context, to int64, task *domain.DispatchTask, variants []string) delivery {
	if err := s.limiter.Wait(ctx); err != nil {
		slog.Error("Delivery aborted", "subscriber_id", to, "task_id", task.ID, "class", errors.Class(err), "error", err)
		return deliveryFailed
	}

	err := s.transport.ForwardMessage(ctx, to, task.ChannelID, task.MessageID)
	if err == nil {
		return deliveredForward
	}
	slog.Warn("Forward failed, sending formatted copy", "subscriber_id", to, "task_id", task.ID, "class", errors.Class(err), "error", err)

	if err := s.limiter.Wait(ctx); err != nil {
		slog.Error("Delivery aborted", "subscriber_id", to, "task_id", task.ID, "class", errors.Class(err), "error", err)
		return deliveryFailed
	}

	if err := s.transport.SendMessage(ctx, to, FallbackMessage(task, variants), true); err != nil {
		slog.Error("Failed to notify subscriber", "subscriber_id", to, "task_id", task.ID, "class", errors.Class(err), "error", err)
		return deliveryFailed
	}
	return deliveredFallback
}

// FallbackMessage renders the HTML notification sent when forwarding fails.
func FallbackMessage(task *domain.DispatchTask, variants []string) string {
	return fmt.Sprintf("🔔 <b>New post in channel %s</b>\n\n%s\n\n<a href='%s'>Link to post</a>",
		html.EscapeString(task.Title()),
		matching.Highlight(task.Text, variants),
		html.EscapeString(task.Link),
	)
}
