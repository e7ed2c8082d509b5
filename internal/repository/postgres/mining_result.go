package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ignite/contactminer/internal/domain"
	"github.com/ignite/contactminer/internal/miningengine"
)

// MiningResultRepo implements miningengine.ResultRowRepository, bulk-inserting
// a job's merged contacts in one COPY transaction, grounded on the teacher's
// internal/worker/bulk_enqueuer.go BulkEnqueuer.
type MiningResultRepo struct{ db *sql.DB }

func NewMiningResultRepo(db *sql.DB) *MiningResultRepo { return &MiningResultRepo{db: db} }

func (r *MiningResultRepo) InsertBatch(ctx context.Context, rows []domain.MiningResultRow) error {
	if len(rows) == 0 {
		return nil
	}

	txn, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin result batch transaction: %w", err)
	}
	defer txn.Rollback()

	stmt, err := txn.Prepare(pq.CopyIn(
		"mining_result_rows",
		"id", "job_id", "tenant_id", "status", "source_url", "email",
		"name", "company", "title", "phone", "website", "country", "city", "address", "raw",
	))
	if err != nil {
		return fmt.Errorf("prepare result batch COPY: %w", err)
	}

	for i := range rows {
		row := &rows[i]
		if row.ID == "" {
			row.ID = uuid.NewString()
		}
		if row.Status == "" {
			row.Status = domain.ResultRowStatusNew
		}
		_, err = stmt.Exec(
			row.ID, row.JobID, row.TenantID, row.Status, row.SourceURL, row.Email,
			row.Name, row.Company, row.Title, row.Phone, row.Website, row.Country, row.City, row.Address, row.Raw,
		)
		if err != nil {
			return fmt.Errorf("exec result batch row %s: %w", row.Email, err)
		}
	}

	if _, err = stmt.Exec(); err != nil {
		return fmt.Errorf("flush result batch COPY: %w", err)
	}
	if err = stmt.Close(); err != nil {
		return fmt.Errorf("close result batch COPY: %w", err)
	}
	if err = txn.Commit(); err != nil {
		return fmt.Errorf("commit result batch: %w", err)
	}
	return nil
}

var _ miningengine.ResultRowRepository = (*MiningResultRepo)(nil)
