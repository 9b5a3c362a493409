package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/feeds"
	sloghttp "github.com/samber/slog-http"

	"github.com/reshetovitsme/devradar/internal/shared/config"
	"github.com/reshetovitsme/devradar/internal/shared/errors"
)

// FeedGenerator builds channel feeds
type FeedGenerator interface {
	GenerateFeed(ctx context.Context, channelID int64, baseURL string) (*feeds.Feed, error)
}

// Server serves health checks and RSS feeds of ingested posts
type Server struct {
	cfg    *config.Config
	feeds  FeedGenerator
	logger *slog.Logger

	mu     sync.Mutex
	server *http.Server
}

// New creates a new HTTP server
func New(cfg *config.Config, feeds FeedGenerator) *Server {
	return &Server{
		cfg:    cfg,
		feeds:  feeds,
		logger: slog.Default(),
	}
}

// SetLogger sets the logger
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Handler returns the routed handler wrapped in logging and recovery middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /rss/{channelID}", s.handleRSSFeed)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleRoot)

	handler := sloghttp.Recovery(mux)
	return sloghttp.New(s.logger)(handler)
}

// Start listens until Shutdown is called.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%s", s.cfg.HTTPPort)
	s.logger.Info("HTTP server starting", "addr", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	s.mu.Lock()
	s.server = server
	s.mu.Unlock()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	server := s.server
	s.mu.Unlock()

	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

func (s *Server) handleRSSFeed(w http.ResponseWriter, r *http.Request) {
	channelID, err := strconv.ParseInt(r.PathValue("channelID"), 10, 64)
	if err != nil {
		http.Error(w, "Channel ID must be numeric", http.StatusBadRequest)
		return
	}

	baseURL := fmt.Sprintf("%s://%s", getScheme(r), r.Host)

	feed, err := s.feeds.GenerateFeed(r.Context(), channelID, baseURL)
	switch {
	case errors.Is(err, errors.ErrChannelNotFound):
		http.Error(w, "Channel is not tracked", http.StatusNotFound)
		return
	case err != nil:
		s.logger.Error("Error generating feed", "channel_id", channelID, "error", err)
		http.Error(w, "Failed to generate feed", http.StatusInternalServerError)
		return
	}

	rss, err := feed.ToRss()
	if err != nil {
		s.logger.Error("Error converting feed to RSS", "error", err)
		http.Error(w, "Failed to generate RSS", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(rss))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	page := `<!DOCTYPE html>
<html>
<head>
    <title>DevRadar</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 800px; margin: 50px auto; padding: 20px; }
        h1 { color: #333; }
        .info { background: #f5f5f5; padding: 15px; border-radius: 5px; margin: 20px 0; }
        code { background: #e8e8e8; padding: 2px 6px; border-radius: 3px; }
    </style>
</head>
<body>
    <h1>DevRadar</h1>
    <div class="info">
        <p>Keyword radar for Telegram job channels. Subscribe through the bot.</p>
        <p>Posts of a tracked channel are available as RSS: <code>/rss/{channelID}</code></p>
        <p>Example: <code>/rss/-1001234567890</code></p>
    </div>
    <p><a href="/health">Health Check</a></p>
</body>
</html>`
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page))
}

func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
