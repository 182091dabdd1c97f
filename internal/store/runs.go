package store

import (
	"context"
	"fmt"

	"github.com/teodordimeski/das/internal/model"
)

// RecordRun persists one run summary.
func (s *Store) RecordRun(ctx context.Context, run model.SyncRun) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO sync_runs (id, mode, started_at, finished_at,
		                       synced, up_to_date, no_data, failed, inserted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		run.ID,
		string(run.Mode),
		run.StartedAt,
		run.FinishedAt,
		run.Synced,
		run.UpToDate,
		run.NoData,
		run.Failed,
		run.Inserted,
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", run.ID, err)
	}
	return nil
}
