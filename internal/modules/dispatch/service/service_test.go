package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reshetovitsme/devradar/internal/modules/dispatch/service/mocks"
	"github.com/reshetovitsme/devradar/internal/modules/matching"
	"github.com/reshetovitsme/devradar/internal/modules/post/domain"
	subscriberDomain "github.com/reshetovitsme/devradar/internal/modules/subscriber/domain"
	sharedErrors "github.com/reshetovitsme/devradar/internal/shared/errors"
)

func subscribersOf(subs ...*subscriberDomain.Subscriber) *mocks.SubscriberSourceMock {
	return &mocks.SubscriberSourceMock{
		SubscribersFunc: func(context.Context) ([]*subscriberDomain.Subscriber, error) {
			return subs, nil
		},
	}
}

func okTransport() *mocks.TransportMock {
	return &mocks.TransportMock{
		ForwardMessageFunc: func(context.Context, int64, int64, int) error { return nil },
		SendMessageFunc:    func(context.Context, int64, string, bool) error { return nil },
	}
}

func newService(subs *mocks.SubscriberSourceMock, transport *mocks.TransportMock, matcher Matcher) *Service {
	if matcher == nil {
		matcher = matching.NewEngine(matching.NewExpander(nil))
	}
	return New(Config{Workers: 4, QueueSize: 4}, subs, transport, matcher)
}

var remotePython = &domain.DispatchTask{
	ID:              "t1",
	ChannelID:       -1001234567890,
	ChannelUsername: "devjobs",
	ChannelTitle:    "Dev <Jobs>",
	MessageID:       42,
	Text:            "Ищем Python разработчика, удаленно",
	Link:            "https://t.me/devjobs/42",
}

func TestDispatch_ForwardsToMatchingSubscribers(t *testing.T) {
	transport := okTransport()
	svc := newService(subscribersOf(
		&subscriberDomain.Subscriber{ID: 1, Filters: []subscriberDomain.Filter{{Groups: []subscriberDomain.Group{{"python"}, {"удалённо"}}}}},
		&subscriberDomain.Subscriber{ID: 2, Filters: []subscriberDomain.Filter{subscriberDomain.NewFilter("golang")}},
		&subscriberDomain.Subscriber{ID: 3},
	), transport, nil)

	stats, err := svc.Dispatch(context.Background(), remotePython)
	require.NoError(t, err)
	assert.Equal(t, Stats{Subscribers: 3, Matched: 1, Forwarded: 1}, stats)

	calls := transport.ForwardMessageCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, int64(1), calls[0].To)
	assert.Equal(t, int64(-1001234567890), calls[0].FromChannel)
	assert.Equal(t, 42, calls[0].MessageID)
	assert.Empty(t, transport.SendMessageCalls())
}

func TestDispatch_OneNotificationPerSubscriber(t *testing.T) {
	transport := okTransport()
	svc := newService(subscribersOf(
		&subscriberDomain.Subscriber{ID: 1, Filters: []subscriberDomain.Filter{
			subscriberDomain.NewFilter("python"),
			subscriberDomain.NewFilter("удаленно"),
			subscriberDomain.NewFilter("разработчик"),
		}},
	), transport, nil)

	stats, err := svc.Dispatch(context.Background(), remotePython)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Matched)
	assert.Len(t, transport.ForwardMessageCalls(), 1)
}

func TestDispatch_FallbackMessage(t *testing.T) {
	transport := okTransport()
	transport.ForwardMessageFunc = func(context.Context, int64, int64, int) error {
		return errors.New("forbidden: bot can't forward")
	}
	svc := newService(subscribersOf(
		&subscriberDomain.Subscriber{ID: 7, Filters: []subscriberDomain.Filter{subscriberDomain.NewFilter("python", "удалённо")}},
	), transport, nil)

	stats, err := svc.Dispatch(context.Background(), remotePython)
	require.NoError(t, err)
	assert.Equal(t, Stats{Subscribers: 1, Matched: 1, Fallback: 1}, stats)

	sends := transport.SendMessageCalls()
	require.Len(t, sends, 1)
	assert.Equal(t, int64(7), sends[0].To)
	assert.True(t, sends[0].DisablePreview)
	assert.Equal(t,
		"🔔 <b>New post in channel Dev &lt;Jobs&gt;</b>\n\n"+
			"Ищем <b>Python</b> разработчика, <b>удаленно</b>\n\n"+
			"<a href='https://t.me/devjobs/42'>Link to post</a>",
		sends[0].Text)
}

func TestFallbackMessage_PrivateChannelLink(t *testing.T) {
	task := &domain.DispatchTask{
		ChannelID: -1009876543210,
		MessageID: 5,
		Text:      "go & rust",
		Link:      domain.Permalink(-1009876543210, "", 5),
	}
	assert.Equal(t,
		"🔔 <b>New post in channel -1009876543210</b>\n\ngo &amp; <b>rust</b>\n\n<a href='https://t.me/c/9876543210/5'>Link to post</a>",
		FallbackMessage(task, []string{"rust"}))
}

func TestDispatch_FailuresAreIsolated(t *testing.T) {
	var mu sync.Mutex
	var delivered []int64

	transport := &mocks.TransportMock{
		ForwardMessageFunc: func(_ context.Context, to int64, _ int64, _ int) error {
			if to == 2 {
				return errors.New("blocked")
			}
			mu.Lock()
			delivered = append(delivered, to)
			mu.Unlock()
			return nil
		},
		SendMessageFunc: func(_ context.Context, to int64, _ string, _ bool) error {
			return errors.New("blocked")
		},
	}

	filters := []subscriberDomain.Filter{subscriberDomain.NewFilter("python")}
	svc := newService(subscribersOf(
		&subscriberDomain.Subscriber{ID: 1, Filters: filters},
		&subscriberDomain.Subscriber{ID: 2, Filters: filters},
		&subscriberDomain.Subscriber{ID: 3, Filters: filters},
	), transport, nil)

	stats, err := svc.Dispatch(context.Background(), remotePython)
	require.NoError(t, err)
	assert.Equal(t, Stats{Subscribers: 3, Matched: 3, Forwarded: 2, Failed: 1}, stats)

	sort.Slice(delivered, func(i, j int) bool { return delivered[i] < delivered[j] })
	assert.Equal(t, []int64{1, 3}, delivered)
}

func TestDispatch_PanickingFilterIsSkipped(t *testing.T) {
	broken := subscriberDomain.NewFilter("broken")
	good := subscriberDomain.NewFilter("python")

	matcher := &mocks.MatcherMock{
		MatchesFunc: func(text string, filter subscriberDomain.Filter) bool {
			if filter.String() == "broken" {
				panic("corrupted filter")
			}
			return true
		},
		MatchedVariantsFunc: func(string, subscriberDomain.Filter) []string { return []string{"python"} },
	}

	transport := okTransport()
	svc := newService(subscribersOf(
		&subscriberDomain.Subscriber{ID: 1, Filters: []subscriberDomain.Filter{broken, good}},
	), transport, matcher)

	stats, err := svc.Dispatch(context.Background(), remotePython)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Forwarded)
	assert.Len(t, matcher.MatchesCalls(), 2)
}

func TestDispatch_SubscriberListError(t *testing.T) {
	boom := errors.New("storage down")
	subs := &mocks.SubscriberSourceMock{
		SubscribersFunc: func(context.Context) ([]*subscriberDomain.Subscriber, error) { return nil, boom },
	}
	svc := newService(subs, okTransport(), nil)

	_, err := svc.Dispatch(context.Background(), remotePython)
	require.ErrorIs(t, err, boom)
}

func TestService_SubmitAndLoop(t *testing.T) {
	forwarded := make(chan int64, 1)
	transport := okTransport()
	transport.ForwardMessageFunc = func(_ context.Context, to int64, _ int64, _ int) error {
		forwarded <- to
		return nil
	}

	svc := newService(subscribersOf(
		&subscriberDomain.Subscriber{ID: 11, Filters: []subscriberDomain.Filter{subscriberDomain.NewFilter("python")}},
	), transport, nil)
	svc.Start(context.Background())

	require.NoError(t, svc.Submit(context.Background(), remotePython))

	select {
	case to := <-forwarded:
		assert.Equal(t, int64(11), to)
	case <-time.After(5 * time.Second):
		t.Fatal("task was not dispatched")
	}

	svc.Stop()
	err := svc.Submit(context.Background(), remotePython)
	assert.ErrorIs(t, err, sharedErrors.ErrDispatcherStopped)
}

func TestService_SubmitHonoursContext(t *testing.T) {
	svc := New(Config{Workers: 1, QueueSize: 1}, subscribersOf(), okTransport(), matching.NewEngine(matching.NewExpander(nil)))
	defer svc.Stop()

	require.NoError(t, svc.Submit(context.Background(), remotePython))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := svc.Submit(ctx, remotePython)
	assert.ErrorIs(t, err, context.Canceled)
}
