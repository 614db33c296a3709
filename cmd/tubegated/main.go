package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/haukened/tubegate/internal/block/common/clock"
	"github.com/haukened/tubegate/internal/block/common/log"
	"github.com/haukened/tubegate/internal/block/config"
	"github.com/haukened/tubegate/internal/block/gateways/transport"
	"github.com/haukened/tubegate/internal/block/repos/rules"
	"github.com/haukened/tubegate/internal/block/repos/rules/bloom"
	"github.com/haukened/tubegate/internal/block/repos/rules/lru"
	"github.com/haukened/tubegate/internal/block/repos/settings"
	"github.com/haukened/tubegate/internal/block/services/matcher"
	"github.com/haukened/tubegate/internal/block/services/refresh"
)

const (
	// Version information
	version = "0.1.0-dev"
	appName = "tubegated"

	defaultShutdownTimeout = 10 * time.Second
)

// Application holds all the components of the blocking daemon
type Application struct {
	config    *config.AppConfig
	settings  *settings.Store
	transport *transport.Server
}

func main() {
	// Load a .env file when present; real environment wins
	_ = godotenv.Load()

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Configure global logging
	err = log.Configure(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}

	log.Info(map[string]any{
		"version":    version,
		"env":        cfg.Env,
		"log_level":  cfg.LogLevel,
		"port":       cfg.Port,
		"cache_size": cfg.CacheSize,
		"store":      cfg.StorePath,
	}, "Starting tubegate daemon")

	// Build application with all dependencies
	app, err := buildApplication(cfg)
	if err != nil {
		log.Fatal(map[string]any{"error": err}, "Failed to build application")
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info(map[string]any{"signal": sig.String()}, "Shutdown signal received")
		cancel()
	}()

	if err := app.Run(ctx); err != nil {
		log.Fatal(map[string]any{"error": err}, "Daemon failed")
	}

	log.Info(nil, "Tubegate daemon stopped gracefully")
}

// buildApplication constructs all components and wires them together
func buildApplication(cfg *config.AppConfig) (*Application, error) {
	clk := &clock.RealClock{}
	logger := log.GetLogger()

	// Repository layer: persisted settings plus the in-memory rule snapshot
	settingsStore, err := settings.Open(cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings store: %w", err)
	}

	hostCache, err := buildHostCache(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create host cache: %w", err)
	}

	ruleStore := rules.NewStore(bloom.NewFactory(), hostCache, cfg.BloomFPRate)

	// Service layer
	matchService := matcher.New(matcher.Options{
		Source: ruleStore,
		Logger: logger,
	})
	refreshService := refresh.New(refresh.Options{
		Source: settingsStore,
		Sink:   ruleStore,
		Logger: logger,
	})

	// Populate the initial snapshot. An empty or unreadable store means
	// nothing is blocked until a later refresh succeeds.
	if err := refreshService.Refresh(context.Background()); err != nil {
		log.Warn(map[string]any{"error": err.Error()}, "Initial rule load failed; starting with no active rules")
	}

	// Transport layer
	addr := fmt.Sprintf(":%d", cfg.Port)
	httpTransport := transport.NewServer(transport.Options{
		Addr:      addr,
		HomeURL:   cfg.HomeURL,
		Evaluator: matchService,
		Refresher: refreshService,
		Clock:     clk,
		Logger:    logger,
	})

	return &Application{
		config:    cfg,
		settings:  settingsStore,
		transport: httpTransport,
	}, nil
}

// buildHostCache creates the structural-match cache, or a disabled one when
// the configured size is zero.
func buildHostCache(cfg *config.AppConfig) (rules.HostCache, error) {
	if cfg.CacheSize <= 0 {
		log.Info(map[string]any{"disabled": true}, "Host match caching disabled")
		return lru.New(0)
	}
	cache, err := lru.New(cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	log.Info(map[string]any{
		"type": "LRU",
		"size": cfg.CacheSize,
	}, "Host match cache configured")
	return cache, nil
}

// Run starts the HTTP transport and blocks until context is cancelled
func (app *Application) Run(ctx context.Context) error {
	if err := app.transport.Start(ctx); err != nil {
		return fmt.Errorf("failed to start HTTP transport: %w", err)
	}

	log.Info(map[string]any{
		"address":   app.transport.Address(),
		"transport": "HTTP",
	}, "Blocking daemon started")

	<-ctx.Done()

	log.Info(nil, "Shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	if err := app.transport.Stop(shutdownCtx); err != nil {
		log.Warn(map[string]any{"error": err}, "Error during transport shutdown")
	}

	if err := app.settings.Close(); err != nil {
		log.Warn(map[string]any{"error": err}, "Error closing settings store")
	}

	log.Info(nil, "Graceful shutdown completed")
	return nil
}
