package model

import (
	"time"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Archive Types
// -----------------------------------------------------------------------------

// Bar is one day's OHLCV record for a symbol. Natural key: (Symbol, Date).
// Date is always midnight UTC.
type Bar struct {
	Symbol string    // Trading pair (e.g., "BTCUSDT")
	Date   time.Time // Bar date, midnight UTC

	Open        float64
	High        float64
	Low         float64
	Close       float64
	Volume      float64 // Base-asset volume
	QuoteVolume float64 // Quote-asset volume

	// 24h ticker enrichment. Nil when the bar was stored without
	// enrichment (the ticker call failed or was disabled).
	LastPrice24h   *float64
	Volume24h      *float64
	QuoteVolume24h *float64
	High24h        *float64
	Low24h         *float64

	BaseAsset  string // e.g., "BTC"
	QuoteAsset string // e.g., "USDT"
}

// Watermark records the last date confirmed persisted for a symbol.
// It never exceeds the true max persisted date and never moves backward.
type Watermark struct {
	Symbol            string
	LastAvailableDate time.Time // Midnight UTC
}

// -----------------------------------------------------------------------------
// Run Types
// -----------------------------------------------------------------------------

// RunMode distinguishes incremental syncs from full-history backfills.
type RunMode string

const (
	RunModeSync     RunMode = "sync"
	RunModeBackfill RunMode = "backfill"
)

// SyncRun summarizes one completed run for the sync_runs table.
type SyncRun struct {
	ID         uuid.UUID
	Mode       RunMode
	StartedAt  time.Time
	FinishedAt time.Time

	Synced   int // Symbols with at least one new bar
	UpToDate int // Symbols already at the cutoff
	NoData   int // Symbols where upstream returned nothing new
	Failed   int // Symbols that errored
	Inserted int // Total bars written
}
