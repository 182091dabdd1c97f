package store

import (
	"context"
	"fmt"
	"time"

	"github.com/teodordimeski/das/internal/model"
)

// AdvanceWatermark sets a symbol's watermark to max(current, date).
// Creates the row on first merge; idempotent; never moves backward.
func (s *Store) AdvanceWatermark(ctx context.Context, symbol string, date time.Time) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO watermarks (symbol, last_available_date)
		VALUES ($1, $2)
		ON CONFLICT (symbol) DO UPDATE
		SET last_available_date = GREATEST(watermarks.last_available_date, EXCLUDED.last_available_date)
	`, symbol, model.MidnightUTC(date))
	if err != nil {
		return fmt.Errorf("advance watermark %s: %w", symbol, err)
	}
	return nil
}

// StaleWatermarks returns symbols whose watermark is strictly older
// than cutoff, i.e. the symbols that need a fetch this run.
func (s *Store) StaleWatermarks(ctx context.Context, cutoff time.Time) ([]model.Watermark, error) {
	rows, err := s.db.Query(ctx, `
		SELECT symbol, last_available_date
		FROM watermarks
		WHERE last_available_date < $1
		ORDER BY symbol
	`, model.MidnightUTC(cutoff))
	if err != nil {
		return nil, fmt.Errorf("query stale watermarks: %w", err)
	}
	defer rows.Close()

	var stale []model.Watermark
	for rows.Next() {
		var w model.Watermark
		if err := rows.Scan(&w.Symbol, &w.LastAvailableDate); err != nil {
			return nil, fmt.Errorf("scan watermark: %w", err)
		}
		w.LastAvailableDate = model.MidnightUTC(w.LastAvailableDate)
		stale = append(stale, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watermarks: %w", err)
	}

	return stale, nil
}

// CountWatermarks returns the number of tracked symbols.
func (s *Store) CountWatermarks(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM watermarks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count watermarks: %w", err)
	}
	return n, nil
}

// WatermarkSymbols returns the set of symbols that already have a
// watermark. Backfill uses it to skip symbols bootstrapped earlier.
func (s *Store) WatermarkSymbols(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.Query(ctx, `SELECT symbol FROM watermarks`)
	if err != nil {
		return nil, fmt.Errorf("query watermark symbols: %w", err)
	}
	defer rows.Close()

	symbols := make(map[string]bool)
	for rows.Next() {
		var sym string
		if err := rows.Scan(&sym); err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		symbols[sym] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate symbols: %w", err)
	}

	return symbols, nil
}

// RefreshWatermarks rebuilds every watermark from the max persisted bar
// date. This is a repair operation: unlike AdvanceWatermark it writes
// the recomputed value exactly.
func (s *Store) RefreshWatermarks(ctx context.Context) (int, error) {
	ct, err := s.db.Exec(ctx, `
		INSERT INTO watermarks (symbol, last_available_date)
		SELECT symbol, MAX(date) FROM bars GROUP BY symbol
		ON CONFLICT (symbol) DO UPDATE
		SET last_available_date = EXCLUDED.last_available_date
	`)
	if err != nil {
		return 0, fmt.Errorf("refresh watermarks: %w", err)
	}
	return int(ct.RowsAffected()), nil
}
