package syncer

import (
	"time"

	"github.com/google/uuid"

	"github.com/teodordimeski/das/internal/model"
)

// Report aggregates one run's per-symbol outcomes.
type Report struct {
	RunID      uuid.UUID
	Mode       model.RunMode
	StartedAt  time.Time
	FinishedAt time.Time

	Synced   int
	UpToDate int
	NoData   int
	Failed   int
	Inserted int

	// Failures maps failed symbols to their reasons.
	Failures map[string]error
}

func newReport(mode model.RunMode) *Report {
	return &Report{
		RunID:     uuid.New(),
		Mode:      mode,
		StartedAt: time.Now().UTC(),
		Failures:  make(map[string]error),
	}
}

func (r *Report) record(oc Outcome) {
	r.Inserted += oc.Inserted
	switch oc.Status {
	case StatusSynced:
		r.Synced++
	case StatusNoData:
		r.NoData++
	case StatusFailed:
		r.Failed++
		r.Failures[oc.Symbol] = oc.Err
	}
}

func (r *Report) finish() {
	r.FinishedAt = time.Now().UTC()
}

// SyncRun converts the report into its persistent form.
func (r *Report) SyncRun() model.SyncRun {
	return model.SyncRun{
		ID:         r.RunID,
		Mode:       r.Mode,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Synced:     r.Synced,
		UpToDate:   r.UpToDate,
		NoData:     r.NoData,
		Failed:     r.Failed,
		Inserted:   r.Inserted,
	}
}
