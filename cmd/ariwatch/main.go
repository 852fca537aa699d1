// ariwatch runs a Stasis application: it answers each channel that enters,
// plays a greeting, and serves health and Prometheus metrics over HTTP.
//
// Usage: go run ./cmd/ariwatch --config configs/ariwatch.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rickgao/ari-events/internal/ari"
	"github.com/rickgao/ari-events/internal/config"
	"github.com/rickgao/ari-events/internal/poller"
	"github.com/rickgao/ari-events/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/ariwatch.yaml", "path to config file")
	greeting := flag.String("greeting", "sound:hello-world", "media played after answering (empty to skip)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err, "config", *configPath)
		os.Exit(1)
	}

	// Set up structured logging
	logger, err := newLogger(cfg.Log, os.Stdout)
	if err != nil {
		slog.Error("invalid log config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	logger.Info("starting ariwatch",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)
	logger.Info("configuration loaded",
		"base_url", cfg.API.BaseURL,
		"app", cfg.Events.Application,
		"subscribe_all", cfg.Events.SubscribeAllEvents(),
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if err := run(ctx, cfg, *greeting, logger); err != nil {
		logger.Error("ariwatch failed", "error", err)
		os.Exit(1)
	}
	logger.Info("ariwatch stopped")
}

func run(ctx context.Context, cfg *config.Config, greeting string, logger *slog.Logger) error {
	client, err := ari.NewFromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("create ari client: %w", err)
	}
	registerHandlers(client, greeting, logger)

	pl := poller.New(poller.Config{
		Interval: cfg.Health.PingInterval,
		Timeout:  cfg.Health.PingTimeout,
	}, client.Executor(), logger)

	healthServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Health.Port),
		Handler:           newHealthRouter(client, pl, cfg.Health.MetricsPath, 2*cfg.Health.PingInterval, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("connecting to asterisk", "app", cfg.Events.Application)
	if err := client.Start(ctx, cfg.Events.Application); err != nil {
		return fmt.Errorf("start ari client: %w", err)
	}
	if err := pl.Start(ctx); err != nil {
		client.Stop()
		return fmt.Errorf("start poller: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting health server", "addr", healthServer.Addr, "metrics_path", cfg.Health.MetricsPath)
		if err := healthServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("health server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-client.Done():
			if ctx.Err() == nil {
				return errors.New("ari client stopped unexpectedly")
			}
		}
		return nil
	})

	logger.Info("ariwatch running",
		"app", cfg.Events.Application,
		"health_url", fmt.Sprintf("http://localhost:%d/healthz", cfg.Health.Port),
	)

	<-gctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := client.Stop(); err != nil {
		logger.Warn("ari client stop", "error", err)
	}
	if err := pl.Stop(shutdownCtx); err != nil {
		logger.Warn("poller stop", "error", err)
	}
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("health server shutdown", "error", err)
	}

	return g.Wait()
}

// newLogger builds the process logger from the log section.
func newLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	switch cfg.Format {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	case "text", "":
		h = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	return slog.New(h), nil
}
