package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/teodordimeski/das/internal/database"
	"github.com/teodordimeski/das/internal/model"
	"github.com/teodordimeski/das/internal/syncer"
	"github.com/teodordimeski/das/internal/universe"
)

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Bootstrap full history for the top symbols by quote volume",
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

		info, err := fetcher.ExchangeInfo(ctx)
		if err != nil {
			return fmt.Errorf("load exchange catalog: %w", err)
		}
		tickers, err := fetcher.AllTickers(ctx)
		if err != nil {
			return fmt.Errorf("load ticker stats: %w", err)
		}

		listings := universe.Select(info, tickers, universe.Criteria{
			MinQuoteVolume: cfg.Backfill.MinQuoteVolume,
			QuoteAssets:    cfg.Backfill.QuoteAssets,
			TopN:           cfg.Backfill.TopSymbols,
		})

		// Resume semantics: symbols bootstrapped by an earlier run
		// already have a watermark and are left to incremental sync.
		existing, err := st.WatermarkSymbols(ctx)
		if err != nil {
			return fmt.Errorf("load tracked symbols: %w", err)
		}

		cutoff := syncer.Cutoff(time.Now())
		start := cutoff.AddDate(0, 0, -(cfg.Backfill.HistoryDays - 1))

		tasks := make([]syncer.Task, 0, len(listings))
		skipped := 0
		for _, l := range listings {
			if existing[l.Symbol] {
				skipped++
				continue
			}
			tasks = append(tasks, syncer.Task{
				Symbol:     l.Symbol,
				Start:      start,
				End:        cutoff,
				BaseAsset:  l.BaseAsset,
				QuoteAsset: l.QuoteAsset,
			})
		}

		logger.Info("backfill starting",
			"universe", len(listings),
			"new", len(tasks),
			"already_tracked", skipped,
			"history_days", cfg.Backfill.HistoryDays,
		)

		var enricher syncer.Enricher
		if cfg.Sync.Enrich {
			enricher = fetcher
		}

		sched := syncer.New(
			syncer.Config{Concurrency: cfg.Sync.Concurrency},
			fetcher, enricher, st, st, logger,
		)

		report, err := sched.Run(ctx, model.RunModeBackfill, tasks, skipped)
		if err != nil {
			return err
		}

		if err := st.RecordRun(ctx, report.SyncRun()); err != nil {
			logger.Warn("failed to record run summary", "err", err)
		}

		return nil
	},
}
