package affiliation

import (
	"context"
	"strings"

	"github.com/ignite/contactminer/internal/domain"
)

// Service implements affiliation business logic. It is safe for concurrent
// use.
type Service struct {
	repo Repository
}

// NewService creates an affiliation service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RecordFromContact links personID to the company named in contact, if any.
// A contact with no company is a no-op and returns (nil, nil) rather than an
// error, since affiliation is optional enrichment. Calling this repeatedly
// for the same person/company pair is a no-op after the first call.
func (s *Service) RecordFromContact(ctx context.Context, tenantID, personID string, contact domain.CandidateContact) (*domain.Affiliation, error) {
	company := strings.TrimSpace(contact.Company)
	if company == "" {
		return nil, nil
	}
	if strings.ContainsAny(company, "@|") {
		return nil, ErrInvalidCompanyName
	}

	a := &domain.Affiliation{
		TenantID:    tenantID,
		PersonID:    personID,
		CompanyName: company,
		Title:       contact.Title,
		Phone:       contact.Phone,
		Website:     contact.Website,
		Country:     contact.Country,
		City:        contact.City,
		Address:     contact.Address,
	}
	if err := s.repo.InsertIgnore(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListForPerson returns every affiliation on record for a person.
func (s *Service) ListForPerson(ctx context.Context, tenantID, personID string) ([]domain.Affiliation, error) {
	return s.repo.ListForPerson(ctx, tenantID, personID)
}
