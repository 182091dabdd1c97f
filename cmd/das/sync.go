package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/teodordimeski/das/internal/api"
	"github.com/teodordimeski/das/internal/config"
	"github.com/teodordimeski/das/internal/database"
	"github.com/teodordimeski/das/internal/fetch"
	"github.com/teodordimeski/das/internal/store"
	"github.com/teodordimeski/das/internal/syncer"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch and merge missing daily bars for all tracked symbols",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext(logger)
		defer cancel()

		pool, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer pool.Close()

		st, fetcher := buildPipeline(cfg, pool, logger)

		var enricher syncer.Enricher
		if cfg.Sync.Enrich {
			enricher = fetcher
		}

		sched := syncer.New(
			syncer.Config{Concurrency: cfg.Sync.Concurrency},
			fetcher, enricher, st, st, logger,
		)

		report, err := sched.SyncMissing(ctx, syncer.Cutoff(time.Now()))
		if err != nil {
			return err
		}

		if err := st.RecordRun(ctx, report.SyncRun()); err != nil {
			logger.Warn("failed to record run summary", "err", err)
		}

		return nil
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh-watermarks",
	Short: "Rebuild every watermark from the max persisted bar date",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext(logger)
		defer cancel()

		pool, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer pool.Close()

		st := store.New(pool, logger)
		n, err := st.RefreshWatermarks(ctx)
		if err != nil {
			return err
		}

		logger.Info("watermarks refreshed", "symbols", n)
		return nil
	},
}

// buildPipeline wires the shared fetch/store components from config.
func buildPipeline(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (*store.Store, *fetch.Fetcher) {
	client := api.NewClient(
		cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetry(cfg.API.MaxAttempts, cfg.API.BackoffBase, cfg.API.BackoffMultiplier),
		api.WithRequestPause(cfg.API.RequestPause),
		api.WithLogger(logger),
	)

	st := store.New(pool, logger)
	fetcher := fetch.New(client, cfg.Sync.PageSize, logger)
	return st, fetcher
}
