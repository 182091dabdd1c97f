package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teodordimeski/das/internal/model"
)

// Store provides access to the bar archive tables.
type Store struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// New creates a Store.
func New(db *pgxpool.Pool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		db:     db,
		logger: logger,
	}
}

// MergeResult reports what a merge actually persisted.
type MergeResult struct {
	Inserted        int       // Rows newly written (conflicts excluded)
	MaxInsertedDate time.Time // Max date among inserted rows; zero when Inserted == 0
}

const insertBarSQL = `
	INSERT INTO bars (symbol, date, open, high, low, close, volume, quote_volume,
	                  last_price_24h, volume_24h, quote_volume_24h, high_24h, low_24h,
	                  base_asset, quote_asset)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	ON CONFLICT (symbol, date) DO NOTHING
`

// MergeBars inserts bars for one symbol in a single transaction.
// Rows already present are skipped, never overwritten. The returned
// result counts only rows confirmed written, so callers can advance the
// watermark by exactly what is persisted.
func (s *Store) MergeBars(ctx context.Context, symbol string, bars []model.Bar) (MergeResult, error) {
	var res MergeResult
	if len(bars) == 0 {
		return res, nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return res, fmt.Errorf("begin merge %s: %w", symbol, err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, b := range bars {
		batch.Queue(insertBarSQL, barArgs(b)...)
	}

	results := tx.SendBatch(ctx, batch)
	inserted := make([]bool, len(bars))
	for i := range bars {
		ct, err := results.Exec()
		if err != nil {
			results.Close()
			return MergeResult{}, fmt.Errorf("merge %s: %w", symbol, err)
		}
		inserted[i] = ct.RowsAffected() > 0
	}
	if err := results.Close(); err != nil {
		return MergeResult{}, fmt.Errorf("merge %s: %w", symbol, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return MergeResult{}, fmt.Errorf("commit merge %s: %w", symbol, err)
	}

	for i, b := range bars {
		if !inserted[i] {
			continue
		}
		res.Inserted++
		if b.Date.After(res.MaxInsertedDate) {
			res.MaxInsertedDate = b.Date
		}
	}

	s.logger.Debug("bars merged",
		"symbol", symbol,
		"attempted", len(bars),
		"inserted", res.Inserted,
	)

	return res, nil
}

// barArgs maps a bar onto the insert parameter list. Date is
// normalized to midnight UTC so the DATE column never shifts across
// zones; empty asset strings become NULL.
func barArgs(b model.Bar) []any {
	return []any{
		b.Symbol,
		model.MidnightUTC(b.Date),
		b.Open,
		b.High,
		b.Low,
		b.Close,
		b.Volume,
		b.QuoteVolume,
		b.LastPrice24h,
		b.Volume24h,
		b.QuoteVolume24h,
		b.High24h,
		b.Low24h,
		nullIfEmpty(b.BaseAsset),
		nullIfEmpty(b.QuoteAsset),
	}
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
