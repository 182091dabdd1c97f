package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL           = "https://api.binance.com"
	DefaultAPITimeout        = 20 * time.Second
	DefaultMaxAttempts       = 5
	DefaultBackoffBase       = 3 * time.Second
	DefaultBackoffMultiplier = 1.7
	DefaultRequestPause      = 150 * time.Millisecond
	DefaultDBPort            = 5432
	DefaultDBSSLMode         = "prefer"
	DefaultMaxConns          = 10
	DefaultMinConns          = 2
	DefaultConcurrency       = 10
	DefaultPageSize          = 1000
	DefaultHistoryDays       = 3650
	DefaultTopSymbols        = 1000
	DefaultMinQuoteVolume    = 10000
	DefaultMigrationsSource  = "file://migrations"
	DefaultLogLevel          = "info"
)

// DefaultQuoteAssets is the accepted set of quote assets for the
// backfill universe.
var DefaultQuoteAssets = []string{"USDT", "FDUSD", "USDC", "TUSD", "BUSD"}

func (c *Config) applyDefaults() {
	// API defaults
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxAttempts == 0 {
		c.API.MaxAttempts = DefaultMaxAttempts
	}
	if c.API.BackoffBase == 0 {
		c.API.BackoffBase = DefaultBackoffBase
	}
	if c.API.BackoffMultiplier == 0 {
		c.API.BackoffMultiplier = DefaultBackoffMultiplier
	}
	if c.API.RequestPause == 0 {
		c.API.RequestPause = DefaultRequestPause
	}

	// Database defaults
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}

	// Sync defaults
	if c.Sync.Concurrency == 0 {
		c.Sync.Concurrency = DefaultConcurrency
	}
	if c.Sync.PageSize == 0 {
		c.Sync.PageSize = DefaultPageSize
	}

	// Backfill defaults
	if c.Backfill.HistoryDays == 0 {
		c.Backfill.HistoryDays = DefaultHistoryDays
	}
	if c.Backfill.TopSymbols == 0 {
		c.Backfill.TopSymbols = DefaultTopSymbols
	}
	if c.Backfill.MinQuoteVolume == 0 {
		c.Backfill.MinQuoteVolume = DefaultMinQuoteVolume
	}
	if len(c.Backfill.QuoteAssets) == 0 {
		c.Backfill.QuoteAssets = append([]string(nil), DefaultQuoteAssets...)
	}

	// Migrations defaults
	if c.Migrations.SourceURL == "" {
		c.Migrations.SourceURL = DefaultMigrationsSource
	}

	// Logging defaults
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
}
