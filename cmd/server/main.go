// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/learnrec/internal/api"
	"github.com/tomtom215/learnrec/internal/config"
	"github.com/tomtom215/learnrec/internal/logging"
	"github.com/tomtom215/learnrec/internal/recommend"
	"github.com/tomtom215/learnrec/internal/recommend/builder"
	"github.com/tomtom215/learnrec/internal/recommend/storage"
	"github.com/tomtom215/learnrec/internal/supervisor"
	"github.com/tomtom215/learnrec/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("learnrec stopped with error")
	}
	logging.Info().Msg("learnrec stopped")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.Logger()
	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Bool("storage", cfg.Storage.Enabled).
		Bool("events", cfg.Events.Enabled).
		Msg("Starting learnrec with supervisor tree")

	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing store")
			}
		}()
	}

	engine, err := newEngine(ctx, cfg, store, logger)
	if err != nil {
		return err
	}

	handler := api.NewHandler(engine, cfg.Server.Timeout, logger)
	if store != nil {
		handler.RegisterHealthCheck("storage", store.Ping)
	}

	events, err := InitEvents(ctx, cfg, engine, logger)
	if err != nil {
		return fmt.Errorf("initialize events: %w", err)
	}
	if events != nil {
		handler.RegisterHealthCheck("nats", events.HealthCheck)
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeConfig(&cfg.Supervisor))
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	if store != nil {
		tree.AddDataService(store)
		if cfg.Storage.BackupInterval > 0 {
			snapshotter, err := storage.NewSnapshotter(store, storage.SnapshotConfig{
				Dir:      cfg.Storage.BackupDir,
				Interval: cfg.Storage.BackupInterval,
				Keep:     cfg.Storage.BackupKeep,
				MaxAge:   cfg.Storage.BackupMaxAge,
			}, logger)
			if err != nil {
				return fmt.Errorf("create snapshotter: %w", err)
			}
			tree.AddDataService(snapshotter)
		}
	}
	rebuilder := services.NewIndexRebuildService(engine, services.IndexRebuildConfig{
		Timeout: cfg.Supervisor.IndexRebuildTimeout,
	}, logger)
	handler.SetIndexRebuildTrigger(rebuilder)
	tree.AddDataService(rebuilder)
	AddEventsToSupervisor(tree, events, cfg.Supervisor.ShutdownTimeout)

	mw := api.NewChiMiddlewareFromSecurity(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.NewRouter(handler, mw).SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout, logger))

	err = tree.Serve(ctx)
	if report, rerr := tree.UnstoppedServiceReport(); rerr == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop within timeout")
		}
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}
	return nil
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func openStore(cfg *config.Config, logger zerolog.Logger) (*storage.Store, error) {
	if !cfg.Storage.Enabled {
		logging.Info().Msg("Persistence disabled; state is in memory only")
		return nil, nil
	}
	store, err := storage.Open(storage.Config{
		Path:        cfg.Storage.Path,
		InMemory:    cfg.Storage.InMemory,
		SyncWrites:  cfg.Storage.SyncWrites,
		Compression: cfg.Storage.Compression,
		GCInterval:  cfg.Storage.GCInterval,
		GCRatio:     cfg.Storage.GCRatio,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return store, nil
}

// newEngine builds the engine and restores persisted state.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func newEngine(ctx context.Context, cfg *config.Config, store *storage.Store, logger zerolog.Logger) (*recommend.Engine, error) {
	var opts []recommend.Option
	if store != nil {
		opts = append(opts, recommend.WithPersister(store))
	}

	engine, err := builder.NewEngine(&cfg.Recommend, logger, opts...)
	if err != nil {
		return nil, err
	}
	if err := engine.Restore(ctx); err != nil {
		return nil, fmt.Errorf("restore engine state: %w", err)
	}

	stats := engine.Stats()
	logging.Info().
		Int("profiles", stats.Profiles).
		Int("content", stats.Content).
		Msg("Recommendation engine ready")
	return engine, nil
}

func treeConfig(cfg *config.SupervisorConfig) supervisor.TreeConfig {
	return supervisor.TreeConfig{
		FailureThreshold: cfg.FailureThreshold,
		FailureDecay:     cfg.FailureDecay,
		FailureBackoff:   cfg.FailureBackoff,
		ShutdownTimeout:  cfg.ShutdownTimeout,
	}
}
