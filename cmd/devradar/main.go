package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/jessevdk/go-flags"
	"github.com/samber/do/v2"
	slogmulti "github.com/samber/slog-multi"

	"github.com/reshetovitsme/devradar/internal/di"
	dispatchService "github.com/reshetovitsme/devradar/internal/modules/dispatch/service"
	"github.com/reshetovitsme/devradar/internal/shared/config"
	httpServer "github.com/reshetovitsme/devradar/internal/transport/http"
	"github.com/reshetovitsme/devradar/internal/transport/telegram"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"DEVRADAR_CONFIG" description:"config file (yaml, json or toml)"`

	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug)

	if err := run(opts); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Shutdown complete")
}

func run(opts Opts) error {
	injector, err := di.Setup(opts.Config)
	if err != nil {
		return err
	}
	defer func() {
		if err := di.Shutdown(injector); err != nil {
			slog.Error("Error during shutdown", "error", err)
		}
	}()

	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		return err
	}
	b, err := do.Invoke[*bot.Bot](injector)
	if err != nil {
		return err
	}
	handler := do.MustInvoke[*telegram.Handler](injector)
	dispatcher := do.MustInvoke[*dispatchService.Service](injector)
	server := do.MustInvoke[*httpServer.Server](injector)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	dispatcher.Start(ctx)

	go func() {
		if err := server.Start(); err != nil {
			slog.Error("HTTP server failed", "error", err)
			cancel()
		}
	}()

	handler.PublishCommands(ctx, b)

	slog.Info("Application started", "version", revision, "port", cfg.HTTPPort,
		"storage", cfg.StorageDriver, "admins", len(cfg.AdminIDs), "env", cfg.AppEnv)

	// blocks until ctx is cancelled
	b.Start(ctx)

	slog.Info("Shutting down...")
	return nil
}

// setupLog sends everything from Info (Debug with --dbg) to stdout as text
// and errors to stderr as JSON.
func setupLog(dbg bool) {
	level := slog.LevelInfo
	if dbg {
		level = slog.LevelDebug
	}

	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: dbg,
	})
	jsonHandler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	})

	slog.SetDefault(slog.New(slogmulti.Fanout(textHandler, jsonHandler)))
}
