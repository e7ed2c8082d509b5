package person

import (
	"context"
	"time"

	"github.com/ignite/contactminer/internal/domain"
)

// Repository defines the data access contract for the Person entity.
type Repository interface {
	// Upsert inserts a person or, if (tenant_id, lower(email)) already
	// exists, fills FirstName/LastName only where currently null and never
	// changes VerificationStatus. Populates p.ID and p.CreatedAt either way.
	Upsert(ctx context.Context, p *domain.Person) error

	// GetByEmail returns the person for (tenantID, lower(email)), or
	// ErrNotFound.
	GetByEmail(ctx context.Context, tenantID, email string) (*domain.Person, error)

	// SetVerification updates VerificationStatus and VerifiedAt for one
	// person. The only writer of VerificationStatus besides Upsert's
	// initial "unknown" default.
	SetVerification(ctx context.Context, tenantID, personID string, status domain.VerificationStatus, verifiedAt time.Time) error
}
