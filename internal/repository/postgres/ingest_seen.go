package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ignite/contactminer/internal/ingest"
)

// IngestSeenRepo implements ingest.SeenKeyStore against PostgreSQL, tracking
// which bucket keys have already produced a mining job.
type IngestSeenRepo struct{ db *sql.DB }

func NewIngestSeenRepo(db *sql.DB) *IngestSeenRepo { return &IngestSeenRepo{db: db} }

func (r *IngestSeenRepo) IsSeen(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM ingest_seen_keys WHERE object_key = $1)`, key,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check seen key: %w", err)
	}
	return exists, nil
}

func (r *IngestSeenRepo) MarkSeen(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ingest_seen_keys (object_key, seen_at) VALUES ($1, NOW())
		ON CONFLICT (object_key) DO NOTHING
	`, key)
	if err != nil {
		return fmt.Errorf("mark seen key: %w", err)
	}
	return nil
}

var _ ingest.SeenKeyStore = (*IngestSeenRepo)(nil)
