// Package store persists bars, watermarks, and run summaries in
// PostgreSQL.
//
// Bars are insert-only: the (symbol, date) primary key plus
// ON CONFLICT DO NOTHING makes concurrent and repeated merges safe
// without external locking. Watermarks advance monotonically via a
// GREATEST upsert, so an advance is idempotent and never moves a
// symbol backward.
package store
