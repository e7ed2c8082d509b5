package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignite/contactminer/internal/domain"
	"github.com/ignite/contactminer/internal/service/affiliation"
)

// AffiliationRepo implements affiliation.Repository against PostgreSQL.
type AffiliationRepo struct{ db *sql.DB }

func NewAffiliationRepo(db *sql.DB) *AffiliationRepo { return &AffiliationRepo{db: db} }

func (r *AffiliationRepo) InsertIgnore(ctx context.Context, a *domain.Affiliation) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO affiliations (id, tenant_id, person_id, company_name, title, phone, website, country, city, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		ON CONFLICT (tenant_id, person_id, lower(company_name)) DO UPDATE SET company_name = affiliations.company_name
		RETURNING id, created_at
	`, a.ID, a.TenantID, a.PersonID, a.CompanyName, a.Title, a.Phone, a.Website, a.Country, a.City, a.Address)

	if err := row.Scan(&a.ID, &a.CreatedAt); err != nil {
		return fmt.Errorf("insert affiliation: %w", err)
	}
	return nil
}

func (r *AffiliationRepo) ListForPerson(ctx context.Context, tenantID, personID string) ([]domain.Affiliation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, person_id, company_name, title, phone, website, country, city, address, created_at
		FROM affiliations WHERE tenant_id = $1 AND person_id = $2 ORDER BY created_at DESC
	`, tenantID, personID)
	if err != nil {
		return nil, fmt.Errorf("list affiliations for person: %w", err)
	}
	defer rows.Close()

	var out []domain.Affiliation
	for rows.Next() {
		var a domain.Affiliation
		if err := rows.Scan(&a.ID, &a.TenantID, &a.PersonID, &a.CompanyName, &a.Title, &a.Phone,
			&a.Website, &a.Country, &a.City, &a.Address, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan affiliation: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

var _ affiliation.Repository = (*AffiliationRepo)(nil)
