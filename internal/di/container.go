package di

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/jmoiron/sqlx"
	"github.com/samber/do/v2"
	"github.com/samber/oops"

	channelRepo "github.com/reshetovitsme/devradar/internal/modules/channel/repository"
	channelService "github.com/reshetovitsme/devradar/internal/modules/channel/service"
	"github.com/reshetovitsme/devradar/internal/modules/conversation"
	dispatchService "github.com/reshetovitsme/devradar/internal/modules/dispatch/service"
	feedService "github.com/reshetovitsme/devradar/internal/modules/feed/service"
	"github.com/reshetovitsme/devradar/internal/modules/matching"
	postRepo "github.com/reshetovitsme/devradar/internal/modules/post/repository"
	postService "github.com/reshetovitsme/devradar/internal/modules/post/service"
	subscriberRepo "github.com/reshetovitsme/devradar/internal/modules/subscriber/repository"
	subscriberService "github.com/reshetovitsme/devradar/internal/modules/subscriber/service"
	"github.com/reshetovitsme/devradar/internal/shared/config"
	"github.com/reshetovitsme/devradar/internal/shared/database"
	httpServer "github.com/reshetovitsme/devradar/internal/transport/http"
	"github.com/reshetovitsme/devradar/internal/transport/telegram"
)

// Setup initializes the dependency injection container. Services are built
// lazily on first invocation.
func Setup(configPath string) (do.Injector, error) {
	injector := do.New()

	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// SQLite connection, only built for the sqlite storage driver
	do.Provide(injector, func(i do.Injector) (*sqlx.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		db, err := database.Open(context.Background(), database.Config{DSN: cfg.SQLiteDSN})
		if err != nil {
			return nil, oops.With("dsn", cfg.SQLiteDSN, "context", "failed to open database").Wrap(err)
		}
		return db, nil
	})

	do.Provide(injector, func(i do.Injector) (channelRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.StorageDriver == config.StorageDriverSqlite {
			return channelRepo.NewSQLiteStorage(do.MustInvoke[*sqlx.DB](i)), nil
		}
		repo, err := channelRepo.NewFileStorage(cfg.StoragePath)
		if err != nil {
			return nil, oops.With("storage_path", cfg.StoragePath, "context", "failed to initialize channel repository").Wrap(err)
		}
		return repo, nil
	})

	do.Provide(injector, func(i do.Injector) (subscriberRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.StorageDriver == config.StorageDriverSqlite {
			return subscriberRepo.NewSQLiteStorage(do.MustInvoke[*sqlx.DB](i)), nil
		}
		repo, err := subscriberRepo.NewFileStorage(cfg.StoragePath)
		if err != nil {
			return nil, oops.With("storage_path", cfg.StoragePath, "context", "failed to initialize subscriber repository").Wrap(err)
		}
		return repo, nil
	})

	do.Provide(injector, func(i do.Injector) (postRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.StorageDriver == config.StorageDriverSqlite {
			return postRepo.NewSQLiteStorage(do.MustInvoke[*sqlx.DB](i)), nil
		}
		repo, err := postRepo.NewFileStorage(cfg.StoragePath)
		if err != nil {
			return nil, oops.With("storage_path", cfg.StoragePath, "context", "failed to initialize post repository").Wrap(err)
		}
		return repo, nil
	})

	do.Provide(injector, func(i do.Injector) (*matching.Engine, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return matching.NewEngine(matching.NewExpander(cfg.Synonyms)), nil
	})

	do.Provide(injector, func(i do.Injector) (*channelService.Service, error) {
		return channelService.New(do.MustInvoke[channelRepo.Repository](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*subscriberService.Service, error) {
		return subscriberService.New(do.MustInvoke[subscriberRepo.Repository](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*postService.Service, error) {
		channels := do.MustInvoke[*channelService.Service](i)
		return postService.New(channels, do.MustInvoke[postRepo.Repository](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*feedService.Service, error) {
		channels := do.MustInvoke[*channelService.Service](i)
		posts := do.MustInvoke[*postService.Service](i)
		return feedService.New(channels, posts), nil
	})

	// The bot resolves its update handler lazily: the handler depends on the
	// dispatcher, which delivers through the bot.
	do.Provide(injector, func(i do.Injector) (*bot.Bot, error) {
		cfg := do.MustInvoke[*config.Config](i)

		opts := []bot.Option{
			bot.WithServerURL(cfg.TelegramAPIURL),
			bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
				do.MustInvoke[*telegram.Handler](i).HandleUpdate(ctx, b, update)
			}),
		}

		b, err := bot.New(cfg.TelegramBotToken, opts...)
		if err != nil {
			return nil, oops.With("context", "failed to create telegram bot").Wrap(err)
		}
		return b, nil
	})

	do.Provide(injector, func(i do.Injector) (*telegram.Client, error) {
		return telegram.NewClient(do.MustInvoke[*bot.Bot](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*dispatchService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return dispatchService.New(
			dispatchService.Config{
				Workers:   cfg.DispatchWorkers,
				QueueSize: cfg.DispatchQueueSize,
				RateLimit: cfg.DispatchRateLimit,
			},
			do.MustInvoke[*subscriberService.Service](i),
			do.MustInvoke[*telegram.Client](i),
			do.MustInvoke[*matching.Engine](i),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*conversation.Manager, error) {
		return conversation.NewManager(
			do.MustInvoke[*subscriberService.Service](i),
			do.MustInvoke[*channelService.Service](i),
			do.MustInvoke[*telegram.Client](i),
			do.MustInvoke[*config.Config](i),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*telegram.Handler, error) {
		handler := telegram.New(
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*channelService.Service](i),
			do.MustInvoke[*conversation.Manager](i),
			do.MustInvoke[*postService.Service](i),
			do.MustInvoke[*dispatchService.Service](i),
		)
		handler.RegisterCommands(do.MustInvoke[*bot.Bot](i))
		return handler, nil
	})

	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		server := httpServer.New(cfg, do.MustInvoke[*feedService.Service](i))
		server.SetLogger(slog.Default())
		return server, nil
	})

	return injector, nil
}

// Shutdown gracefully shuts down all services
func Shutdown(injector do.Injector) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if server, err := do.Invoke[*httpServer.Server](injector); err == nil && server != nil {
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Failed to stop HTTP server", "error", err)
		}
	}

	if dispatcher, err := do.Invoke[*dispatchService.Service](injector); err == nil && dispatcher != nil {
		dispatcher.Stop()
	}

	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil || cfg.StorageDriver != config.StorageDriverSqlite {
		return nil
	}
	if db, err := do.Invoke[*sqlx.DB](injector); err == nil && db != nil {
		if err := db.Close(); err != nil {
			return oops.With("context", "failed to close database").Wrap(err)
		}
	}
	return nil
}
