package person

import (
	"context"
	"strings"
	"time"

	"github.com/ignite/contactminer/internal/domain"
)

// Service implements person business logic. It is safe for concurrent use.
type Service struct {
	repo Repository
}

// NewService creates a person service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// UpsertFromContact creates or enriches the person identified by
// (tenantID, contact.Email). Name splitting follows domain.SplitName: the
// last token is the surname, everything before it the given name. Calling
// this repeatedly with the same contact is a no-op after the first call,
// satisfying the aggregation idempotence property.
func (s *Service) UpsertFromContact(ctx context.Context, tenantID string, contact domain.CandidateContact) (*domain.Person, error) {
	email := strings.ToLower(strings.TrimSpace(contact.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}

	parts := domain.SplitName(contact.Name)
	p := &domain.Person{
		TenantID:           tenantID,
		Email:              email,
		FirstName:          parts.FirstName,
		LastName:           parts.LastName,
		VerificationStatus: domain.VerificationUnknown,
	}
	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByEmail looks up a person by tenant-scoped email.
func (s *Service) GetByEmail(ctx context.Context, tenantID, email string) (*domain.Person, error) {
	return s.repo.GetByEmail(ctx, tenantID, strings.ToLower(strings.TrimSpace(email)))
}

// SetVerification records a mailbox-verification outcome. It is the only
// entry point that changes VerificationStatus outside of Upsert's initial
// default.
func (s *Service) SetVerification(ctx context.Context, tenantID, personID string, status domain.VerificationStatus) error {
	return s.repo.SetVerification(ctx, tenantID, personID, status, time.Now().UTC())
}
