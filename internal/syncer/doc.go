// Package syncer orchestrates incremental synchronization: it turns
// stale watermarks into per-symbol fetch tasks, runs them on a bounded
// worker pool, and advances each watermark only by what the merge
// confirmed persisted.
//
// Failures are isolated per symbol. A task that errors is recorded in
// the run report and never cancels or blocks other in-flight tasks.
package syncer
