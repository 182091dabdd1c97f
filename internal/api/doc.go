// Package api provides the Binance REST API client used by the sync
// engine.
//
// Endpoints:
//   - GET /api/v3/exchangeInfo  (symbol catalog)
//   - GET /api/v3/ticker/24hr   (24h rolling stats, single symbol or all)
//   - GET /api/v3/klines        (daily candlesticks, paginated by time window)
//
// Rate limiting is signaled with HTTP 429 (and 418 for repeat
// offenders); both are retried with geometric backoff from a shared
// attempt budget.
package api
