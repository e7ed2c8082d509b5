package affiliation

import (
	"context"

	"github.com/ignite/contactminer/internal/domain"
)

// Repository defines the data access contract for the Affiliation entity.
type Repository interface {
	// InsertIgnore inserts an affiliation if (tenant_id, person_id,
	// lower(company_name)) does not already exist; otherwise it is a no-op.
	// Populates a.ID and a.CreatedAt when a new row was inserted, or the
	// existing row's values when it already existed.
	InsertIgnore(ctx context.Context, a *domain.Affiliation) error

	// ListForPerson returns every affiliation on record for a person,
	// newest first.
	ListForPerson(ctx context.Context, tenantID, personID string) ([]domain.Affiliation, error)
}
