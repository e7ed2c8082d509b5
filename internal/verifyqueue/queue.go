package verifyqueue

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignite/contactminer/internal/domain"
)

// Queue is the enqueue-side API. Callers ask for a person's mailbox to be
// verified without knowing anything about the background worker that
// eventually claims and processes the task.
type Queue struct {
	repo Repository
}

func NewQueue(repo Repository) *Queue {
	return &Queue{repo: repo}
}

// Enqueue submits (tenantID, personID, email) for verification. Safe to
// call repeatedly for the same person/email: the repository's uniqueness
// guarantee makes a second enqueue while one is already pending or
// processing a no-op.
func (q *Queue) Enqueue(ctx context.Context, tenantID, personID, email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	task := &domain.VerificationTask{
		ID:       uuid.NewString(),
		TenantID: tenantID,
		PersonID: personID,
		Email:    email,
		Status:   domain.VerificationTaskPending,
	}
	return q.repo.Enqueue(ctx, task)
}

// Cancel requests cancellation of a still-pending task.
func (q *Queue) Cancel(ctx context.Context, taskID string) error {
	return q.repo.CancelPending(ctx, taskID)
}
