package verifyqueue

import (
	"context"
	"time"

	"github.com/ignite/contactminer/internal/domain"
)

// Repository persists verification tasks and claims batches of them for
// processing. ClaimBatch must flip pending -> processing atomically
// (Postgres FOR UPDATE SKIP LOCKED) so two concurrent workers never claim
// the same task.
type Repository interface {
	// Enqueue inserts a new pending task. Implementations must be
	// idempotent: enqueuing a (tenant, email) pair that already has a task
	// in {pending, processing} is a no-op, not an error.
	Enqueue(ctx context.Context, task *domain.VerificationTask) error

	// ClaimBatch flips up to limit pending tasks to processing and returns
	// them, oldest first.
	ClaimBatch(ctx context.Context, limit int) ([]domain.VerificationTask, error)

	// Complete marks a processing task completed and stores the
	// collaborator's raw response.
	Complete(ctx context.Context, taskID, providerRaw string) error

	// Fail marks a processing task failed with errMsg.
	Fail(ctx context.Context, taskID, errMsg string) error

	// CancelPending marks a pending task cancelled. Honored cooperatively:
	// a task already claimed by the time this runs finishes processing.
	CancelPending(ctx context.Context, taskID string) error

	// ReclaimStuck resets any task still processing after staleAge back to
	// pending, for recovery after a worker crash.
	ReclaimStuck(ctx context.Context, staleAge time.Duration) (int, error)
}
