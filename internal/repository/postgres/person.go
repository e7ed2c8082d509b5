package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/contactminer/internal/domain"
	"github.com/ignite/contactminer/internal/service/person"
)

// PersonRepo implements person.Repository against PostgreSQL, grounded on
// the teacher's internal/repository/postgres/suppression.go ON CONFLICT
// upsert style.
type PersonRepo struct{ db *sql.DB }

func NewPersonRepo(db *sql.DB) *PersonRepo { return &PersonRepo{db: db} }

func (r *PersonRepo) Upsert(ctx context.Context, p *domain.Person) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.VerificationStatus == "" {
		p.VerificationStatus = domain.VerificationUnknown
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO persons (id, tenant_id, email, first_name, last_name, verification_status, created_at, updated_at)
		VALUES ($1, $2, lower($3), $4, $5, $6, NOW(), NOW())
		ON CONFLICT (tenant_id, lower(email)) DO UPDATE SET
			first_name = COALESCE(NULLIF(persons.first_name, ''), EXCLUDED.first_name),
			last_name  = COALESCE(NULLIF(persons.last_name, ''), EXCLUDED.last_name),
			updated_at = NOW()
		RETURNING id, first_name, last_name, verification_status, verified_at, created_at
	`, p.ID, p.TenantID, p.Email, p.FirstName, p.LastName, p.VerificationStatus)

	var verifiedAt sql.NullTime
	if err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.VerificationStatus, &verifiedAt, &p.CreatedAt); err != nil {
		return fmt.Errorf("upsert person: %w", err)
	}
	if verifiedAt.Valid {
		p.VerifiedAt = &verifiedAt.Time
	}
	return nil
}

func (r *PersonRepo) GetByEmail(ctx context.Context, tenantID, email string) (*domain.Person, error) {
	var p domain.Person
	var verifiedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT id, tenant_id, email, first_name, last_name, verification_status, verified_at, created_at, updated_at
		FROM persons WHERE tenant_id = $1 AND lower(email) = lower($2)
	`, tenantID, email).Scan(&p.ID, &p.TenantID, &p.Email, &p.FirstName, &p.LastName,
		&p.VerificationStatus, &verifiedAt, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, person.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get person by email: %w", err)
	}
	if verifiedAt.Valid {
		p.VerifiedAt = &verifiedAt.Time
	}
	return &p, nil
}

func (r *PersonRepo) SetVerification(ctx context.Context, tenantID, personID string, status domain.VerificationStatus, verifiedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE persons SET verification_status = $1, verified_at = $2, updated_at = NOW()
		WHERE tenant_id = $3 AND id = $4
	`, status, verifiedAt, tenantID, personID)
	if err != nil {
		return fmt.Errorf("set verification: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return person.ErrNotFound
	}
	return nil
}

var _ person.Repository = (*PersonRepo)(nil)
