// Package model defines the core domain types shared across the sync
// engine: daily bars, per-symbol watermarks, and run summaries.
package model
