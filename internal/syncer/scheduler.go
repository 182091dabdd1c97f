package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/teodordimeski/das/internal/model"
	"github.com/teodordimeski/das/internal/store"
)

// BarFetcher downloads a symbol's missing date range. On failure it may
// return a partial ascending prefix alongside the error; the scheduler
// persists that prefix before recording the failure.
type BarFetcher interface {
	FetchRange(ctx context.Context, symbol string, start, end time.Time) ([]model.Bar, error)
}

// Enricher provides 24h rolling stats for fetched bars. Optional:
// enrichment failures degrade to storing bars unenriched.
type Enricher interface {
	TickerStats(ctx context.Context, symbol string) (model.TickerStats, error)
}

// Merger persists bars idempotently and reports what was newly written.
type Merger interface {
	MergeBars(ctx context.Context, symbol string, bars []model.Bar) (store.MergeResult, error)
}

// WatermarkTracker is the per-symbol gap state.
type WatermarkTracker interface {
	StaleWatermarks(ctx context.Context, cutoff time.Time) ([]model.Watermark, error)
	AdvanceWatermark(ctx context.Context, symbol string, date time.Time) error
	CountWatermarks(ctx context.Context) (int, error)
}

// Task is one symbol's fetch-then-merge unit of work.
type Task struct {
	Symbol string
	Start  time.Time // First missing date, inclusive
	End    time.Time // Last wanted date, inclusive

	// Asset metadata stamped onto fetched bars when known (backfill
	// resolves it from the exchange catalog; incremental sync leaves
	// it empty since existing rows are never overwritten anyway).
	BaseAsset  string
	QuoteAsset string
}

// Status is a task's terminal state for one run.
type Status string

const (
	StatusSynced Status = "synced"
	StatusNoData Status = "no_data"
	StatusFailed Status = "failed"
)

// Outcome is the typed completion message a worker sends back to the
// collector.
type Outcome struct {
	Symbol   string
	Status   Status
	Inserted int
	Err      error
}

// Config holds scheduler settings.
type Config struct {
	Concurrency int // Worker pool size
}

// Scheduler fans tasks out over a bounded worker pool and drains
// outcomes in completion order.
type Scheduler struct {
	cfg        Config
	fetcher    BarFetcher
	enricher   Enricher // may be nil
	merger     Merger
	watermarks WatermarkTracker
	logger     *slog.Logger
}

// New creates a Scheduler. enricher may be nil to disable enrichment.
func New(cfg Config, fetcher BarFetcher, enricher Enricher, merger Merger, watermarks WatermarkTracker, logger *slog.Logger) *Scheduler {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cfg:        cfg,
		fetcher:    fetcher,
		enricher:   enricher,
		merger:     merger,
		watermarks: watermarks,
		logger:     logger,
	}
}

// Cutoff returns the sync target date for a run starting at now:
// yesterday, UTC. Today's bar is still forming upstream.
func Cutoff(now time.Time) time.Time {
	return model.MidnightUTC(now).Add(-model.Day)
}

// SyncMissing enumerates stale symbols and syncs each one's missing
// range [watermark+1d .. cutoff]. Only store errors while building the
// task list are fatal; per-symbol failures land in the report.
func (s *Scheduler) SyncMissing(ctx context.Context, cutoff time.Time) (*Report, error) {
	cutoff = model.MidnightUTC(cutoff)

	stale, err := s.watermarks.StaleWatermarks(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("enumerate stale symbols: %w", err)
	}
	total, err := s.watermarks.CountWatermarks(ctx)
	if err != nil {
		return nil, fmt.Errorf("count symbols: %w", err)
	}

	tasks := make([]Task, 0, len(stale))
	for _, w := range stale {
		tasks = append(tasks, Task{
			Symbol: w.Symbol,
			Start:  w.LastAvailableDate.Add(model.Day),
			End:    cutoff,
		})
	}

	s.logger.Info("sync run starting",
		"cutoff", cutoff.Format(time.DateOnly),
		"stale", len(tasks),
		"up_to_date", total-len(tasks),
	)

	return s.Run(ctx, model.RunModeSync, tasks, total-len(tasks))
}

// Run executes tasks with bounded concurrency and collects outcomes in
// completion order. It returns only after every dispatched task has
// finished; there is no run-level timeout.
func (s *Scheduler) Run(ctx context.Context, mode model.RunMode, tasks []Task, upToDate int) (*Report, error) {
	report := newReport(mode)
	report.UpToDate = upToDate

	outcomes := make(chan Outcome, len(tasks))

	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)
	for _, task := range tasks {
		task := task
		g.Go(func() error {
			outcomes <- s.runTask(ctx, task)
			return nil
		})
	}
	go func() {
		g.Wait()
		close(outcomes)
	}()

	done := 0
	for oc := range outcomes {
		done++
		report.record(oc)

		switch oc.Status {
		case StatusFailed:
			s.logger.Warn("symbol failed",
				"symbol", oc.Symbol,
				"inserted", oc.Inserted,
				"err", oc.Err,
			)
		default:
			s.logger.Debug("symbol done",
				"symbol", oc.Symbol,
				"status", oc.Status,
				"inserted", oc.Inserted,
				"progress", fmt.Sprintf("%d/%d", done, len(tasks)),
			)
		}
	}

	report.finish()

	s.logger.Info("run complete",
		"run_id", report.RunID,
		"mode", string(mode),
		"synced", report.Synced,
		"up_to_date", report.UpToDate,
		"no_data", report.NoData,
		"failed", report.Failed,
		"inserted", report.Inserted,
		"duration", report.FinishedAt.Sub(report.StartedAt),
	)

	return report, nil
}

// runTask executes one symbol's pipeline: fetch, optionally enrich,
// merge, advance watermark. The watermark moves only to the max date
// the merge confirmed, so a range cut short by a failure leaves exactly
// the unfetched remainder for the next run.
func (s *Scheduler) runTask(ctx context.Context, t Task) Outcome {
	bars, fetchErr := s.fetcher.FetchRange(ctx, t.Symbol, t.Start, t.End)

	if len(bars) > 0 {
		if s.enricher != nil {
			if stats, err := s.enricher.TickerStats(ctx, t.Symbol); err != nil {
				s.logger.Warn("enrichment failed, storing bars unenriched",
					"symbol", t.Symbol,
					"err", err,
				)
			} else {
				model.EnrichBars(bars, stats)
			}
		}
		if t.BaseAsset != "" || t.QuoteAsset != "" {
			for i := range bars {
				bars[i].BaseAsset = t.BaseAsset
				bars[i].QuoteAsset = t.QuoteAsset
			}
		}
	}

	var inserted int
	if len(bars) > 0 {
		res, err := s.merger.MergeBars(ctx, t.Symbol, bars)
		if err != nil {
			return Outcome{Symbol: t.Symbol, Status: StatusFailed, Err: fmt.Errorf("merge: %w", err)}
		}
		inserted = res.Inserted

		if res.Inserted > 0 {
			if err := s.watermarks.AdvanceWatermark(ctx, t.Symbol, res.MaxInsertedDate); err != nil {
				return Outcome{Symbol: t.Symbol, Status: StatusFailed, Inserted: inserted, Err: fmt.Errorf("advance watermark: %w", err)}
			}
		}
	}

	if fetchErr != nil {
		return Outcome{Symbol: t.Symbol, Status: StatusFailed, Inserted: inserted, Err: fetchErr}
	}
	if len(bars) == 0 {
		return Outcome{Symbol: t.Symbol, Status: StatusNoData}
	}
	return Outcome{Symbol: t.Symbol, Status: StatusSynced, Inserted: inserted}
}
