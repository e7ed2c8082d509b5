package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ignite/contactminer/internal/domain"
	"github.com/ignite/contactminer/internal/miningengine"
)

// JobRepo implements miningengine.JobRepository against PostgreSQL.
type JobRepo struct{ db *sql.DB }

func NewJobRepo(db *sql.DB) *JobRepo { return &JobRepo{db: db} }

// Create inserts a new pending job row. Not part of miningengine.JobRepository
// since the Engine only ever transitions an existing job; job creation is the
// caller's responsibility (HTTP intake, S3 watcher, CLI).
func (r *JobRepo) Create(ctx context.Context, job *domain.Job) error {
	if job.Status == "" {
		job.Status = domain.JobPending
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO jobs (id, tenant_id, type, input, status, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`, job.ID, job.TenantID, job.Type, job.Input, job.Status)
	if err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

func (r *JobRepo) MarkRunning(ctx context.Context, jobID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE jobs SET status = $1, started_at = NOW()
		WHERE id = $2 AND status = $3
	`, domain.JobRunning, jobID, domain.JobPending)
	if err != nil {
		return fmt.Errorf("mark job running: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("mark job running: job %s not pending", jobID)
	}
	return nil
}

func (r *JobRepo) Complete(ctx context.Context, jobID string, totalFound, totalValid int, statsJSON string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE jobs SET status = $1, total_found = $2, total_valid = $3, stats = $4, completed_at = NOW()
		WHERE id = $5
	`, domain.JobCompleted, totalFound, totalValid, statsJSON, jobID)
	if err != nil {
		return fmt.Errorf("complete job: %w", err)
	}
	return nil
}

func (r *JobRepo) Fail(ctx context.Context, jobID string, errMsg string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE jobs SET status = $1, error = $2, completed_at = NOW()
		WHERE id = $3
	`, domain.JobFailed, errMsg, jobID)
	if err != nil {
		return fmt.Errorf("fail job: %w", err)
	}
	return nil
}

var _ miningengine.JobRepository = (*JobRepo)(nil)
