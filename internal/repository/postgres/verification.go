package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/ignite/contactminer/internal/domain"
	"github.com/ignite/contactminer/internal/verifyqueue"
)

// VerificationRepo implements verifyqueue.Repository against PostgreSQL.
// Enqueue relies on a partial unique index over (tenant_id, lower(email))
// WHERE status IN ('pending', 'processing') to make enqueue idempotent at
// the database level, matching the teacher's claim-by-row-lock style from
// internal/worker/email_verifier.go.
type VerificationRepo struct{ db *sql.DB }

func NewVerificationRepo(db *sql.DB) *VerificationRepo { return &VerificationRepo{db: db} }

func (r *VerificationRepo) Enqueue(ctx context.Context, task *domain.VerificationTask) error {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO verification_tasks (id, tenant_id, email, person_id, status, created_at)
		VALUES ($1, $2, lower($3), $4, $5, NOW())
		ON CONFLICT (tenant_id, lower(email)) WHERE status IN ('pending', 'processing')
		DO UPDATE SET email = verification_tasks.email
		RETURNING id, status, created_at
	`, task.ID, task.TenantID, task.Email, task.PersonID, task.Status)

	if err := row.Scan(&task.ID, &task.Status, &task.CreatedAt); err != nil {
		return fmt.Errorf("enqueue verification task: %w", err)
	}
	return nil
}

func (r *VerificationRepo) ClaimBatch(ctx context.Context, limit int) ([]domain.VerificationTask, error) {
	txn, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin claim batch: %w", err)
	}
	defer txn.Rollback()

	rows, err := txn.QueryContext(ctx, `
		SELECT id, tenant_id, email, person_id, status, created_at
		FROM verification_tasks
		WHERE status = $1
		ORDER BY created_at
		LIMIT $2
		FOR UPDATE SKIP LOCKED
	`, domain.VerificationTaskPending, limit)
	if err != nil {
		return nil, fmt.Errorf("select claim batch: %w", err)
	}

	var tasks []domain.VerificationTask
	ids := make([]string, 0, limit)
	for rows.Next() {
		var t domain.VerificationTask
		if err := rows.Scan(&t.ID, &t.TenantID, &t.Email, &t.PersonID, &t.Status, &t.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan claimed task: %w", err)
		}
		t.Status = domain.VerificationTaskProcessing
		tasks = append(tasks, t)
		ids = append(ids, t.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) > 0 {
		if _, err := txn.ExecContext(ctx, `
			UPDATE verification_tasks SET status = $1, claimed_at = NOW()
			WHERE id = ANY($2)
		`, domain.VerificationTaskProcessing, pq.Array(ids)); err != nil {
			return nil, fmt.Errorf("mark claimed: %w", err)
		}
	}

	if err := txn.Commit(); err != nil {
		return nil, fmt.Errorf("commit claim batch: %w", err)
	}
	return tasks, nil
}

func (r *VerificationRepo) Complete(ctx context.Context, taskID, providerRaw string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE verification_tasks SET status = $1, provider_raw = $2, processed_at = NOW()
		WHERE id = $3
	`, domain.VerificationTaskCompleted, providerRaw, taskID)
	if err != nil {
		return fmt.Errorf("complete verification task: %w", err)
	}
	return nil
}

func (r *VerificationRepo) Fail(ctx context.Context, taskID, errMsg string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE verification_tasks SET status = $1, error = $2, processed_at = NOW()
		WHERE id = $3
	`, domain.VerificationTaskFailed, errMsg, taskID)
	if err != nil {
		return fmt.Errorf("fail verification task: %w", err)
	}
	return nil
}

func (r *VerificationRepo) CancelPending(ctx context.Context, taskID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE verification_tasks SET status = $1, processed_at = NOW()
		WHERE id = $2 AND status = $3
	`, domain.VerificationTaskCancelled, taskID, domain.VerificationTaskPending)
	if err != nil {
		return fmt.Errorf("cancel verification task: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("verification task %s is not pending", taskID)
	}
	return nil
}

// ReclaimStuck resets tasks left in "processing" past staleAge (a worker
// crashed mid-claim) back to "pending", mirroring the teacher's
// internal/worker/queue_recovery.go stuck-item sweep.
func (r *VerificationRepo) ReclaimStuck(ctx context.Context, staleAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-staleAge)
	res, err := r.db.ExecContext(ctx, `
		UPDATE verification_tasks SET status = $1, claimed_at = NULL
		WHERE status = $2 AND claimed_at < $3
	`, domain.VerificationTaskPending, domain.VerificationTaskProcessing, cutoff)
	if err != nil {
		return 0, fmt.Errorf("reclaim stuck verification tasks: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

var _ verifyqueue.Repository = (*VerificationRepo)(nil)
