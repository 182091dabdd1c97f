package config

import "time"

// Config is the root configuration for the das binary.
type Config struct {
	API        APIConfig        `yaml:"api"`
	Database   DBConfig         `yaml:"database"`
	Sync       SyncConfig       `yaml:"sync"`
	Backfill   BackfillConfig   `yaml:"backfill"`
	Migrations MigrationsConfig `yaml:"migrations"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// APIConfig holds Binance REST API settings.
type APIConfig struct {
	BaseURL           string        `yaml:"base_url"`
	Timeout           time.Duration `yaml:"timeout"`            // Per-request timeout
	MaxAttempts       int           `yaml:"max_attempts"`       // Total attempts per request
	BackoffBase       time.Duration `yaml:"backoff_base"`       // First retry delay
	BackoffMultiplier float64       `yaml:"backoff_multiplier"` // Geometric factor, no jitter
	RequestPause      time.Duration `yaml:"request_pause"`      // Delay after each success
}

// DBConfig holds the PostgreSQL connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// SyncConfig holds incremental sync settings.
type SyncConfig struct {
	Concurrency int  `yaml:"concurrency"` // Worker pool size
	PageSize    int  `yaml:"page_size"`   // Daily points per klines request
	Enrich      bool `yaml:"enrich"`      // Attach 24h ticker stats to fetched bars
}

// BackfillConfig holds full-history bootstrap settings.
type BackfillConfig struct {
	HistoryDays    int      `yaml:"history_days"`     // How far back to fetch
	TopSymbols     int      `yaml:"top_symbols"`      // Universe size, ranked by quote volume
	MinQuoteVolume float64  `yaml:"min_quote_volume"` // Eligibility floor (24h quote volume)
	QuoteAssets    []string `yaml:"quote_assets"`     // Accepted quote assets
}

// MigrationsConfig holds schema migration settings.
type MigrationsConfig struct {
	SourceURL string `yaml:"source_url"` // e.g., "file://migrations"
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}
