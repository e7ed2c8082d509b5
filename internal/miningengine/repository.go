package miningengine

import (
	"context"

	"github.com/ignite/contactminer/internal/domain"
)

// JobRepository persists job lifecycle transitions. Implementations must
// make MarkRunning/Complete/Fail safe to call exactly once per job; the
// Engine never re-enters a terminal job.
type JobRepository interface {
	MarkRunning(ctx context.Context, jobID string) error
	Complete(ctx context.Context, jobID string, totalFound, totalValid int, statsJSON string) error
	Fail(ctx context.Context, jobID string, errMsg string) error
}

// ResultRowRepository persists the merged contacts for a job in one
// transaction, grounded on the teacher's internal/worker/bulk_enqueuer.go
// pq.CopyIn batch-insert pattern. InsertBatch must be all-or-nothing: a
// partial failure rolls back every row for the job.
type ResultRowRepository interface {
	InsertBatch(ctx context.Context, rows []domain.MiningResultRow) error
}
