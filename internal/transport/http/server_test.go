package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/feeds"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reshetovitsme/devradar/internal/shared/config"
	"github.com/reshetovitsme/devradar/internal/shared/errors"
)

type feedStub struct {
	baseURL string
}

func (f *feedStub) GenerateFeed(_ context.Context, channelID int64, baseURL string) (*feeds.Feed, error) {
	f.baseURL = baseURL
	switch channelID {
	case -1001:
		return &feeds.Feed{
			Title:   "Dev Jobs - DevRadar",
			Link:    &feeds.Link{Href: "https://t.me/devjobs"},
			Created: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Items: []*feeds.Item{{
				Title: "Go developer",
				Link:  &feeds.Link{Href: "https://t.me/devjobs/7"},
				Id:    "-1001-7",
			}},
		}, nil
	case -1002:
		return nil, errors.ErrTransport
	default:
		return nil, errors.ErrChannelNotFound
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *feedStub) {
	t.Helper()
	stub := &feedStub{}
	srv := New(&config.Config{HTTPPort: "0"}, stub)
	srv.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, stub
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestServer_Health(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, body := get(t, ts.URL+"/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestServer_RSS(t *testing.T) {
	ts, stub := newTestServer(t)

	resp, body := get(t, ts.URL+"/rss/-1001")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/rss+xml; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, body, "<title>Dev Jobs - DevRadar</title>")
	assert.Contains(t, body, "https://t.me/devjobs/7")
	assert.Equal(t, ts.URL, stub.baseURL)

	resp, _ = get(t, ts.URL+"/rss/devjobs")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = get(t, ts.URL+"/rss/42")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = get(t, ts.URL+"/rss/-1002")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestServer_Root(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := get(t, ts.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "/rss/{channelID}")

	resp, _ = get(t, ts.URL+"/missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_ShutdownBeforeStart(t *testing.T) {
	srv := New(&config.Config{}, &feedStub{})
	assert.NoError(t, srv.Shutdown(context.Background()))
}
