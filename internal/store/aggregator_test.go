package store

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ignite/contactminer/internal/domain"
	"github.com/ignite/contactminer/internal/service/affiliation"
	"github.com/ignite/contactminer/internal/service/person"
)

type fakePersonRepo struct {
	mu    sync.Mutex
	store map[string]*domain.Person
	seq   int
}

func newFakePersonRepo() *fakePersonRepo {
	return &fakePersonRepo{store: make(map[string]*domain.Person)}
}

func (r *fakePersonRepo) key(tenantID, email string) string {
	return tenantID + ":" + strings.ToLower(email)
}

func (r *fakePersonRepo) Upsert(_ context.Context, p *domain.Person) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := r.key(p.TenantID, p.Email)
	if existing, ok := r.store[k]; ok {
		if existing.FirstName == "" {
			existing.FirstName = p.FirstName
		}
		if existing.LastName == "" {
			existing.LastName = p.LastName
		}
		*p = *existing
		return nil
	}
	r.seq++
	p.ID = "person-" + string(rune('0'+r.seq))
	stored := *p
	r.store[k] = &stored
	return nil
}

func (r *fakePersonRepo) GetByEmail(_ context.Context, tenantID, email string) (*domain.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.store[r.key(tenantID, email)]
	if !ok {
		return nil, person.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePersonRepo) SetVerification(_ context.Context, tenantID, personID string, status domain.VerificationStatus, verifiedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.store {
		if p.TenantID == tenantID && p.ID == personID {
			p.VerificationStatus = status
			p.VerifiedAt = &verifiedAt
			return nil
		}
	}
	return person.ErrNotFound
}

type fakeAffiliationRepo struct {
	mu    sync.Mutex
	store map[string]*domain.Affiliation
	seq   int
}

func newFakeAffiliationRepo() *fakeAffiliationRepo {
	return &fakeAffiliationRepo{store: make(map[string]*domain.Affiliation)}
}

func (r *fakeAffiliationRepo) key(tenantID, personID, company string) string {
	return tenantID + ":" + personID + ":" + strings.ToLower(company)
}

func (r *fakeAffiliationRepo) InsertIgnore(_ context.Context, a *domain.Affiliation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := r.key(a.TenantID, a.PersonID, a.CompanyName)
	if existing, ok := r.store[k]; ok {
		*a = *existing
		return nil
	}
	r.seq++
	a.ID = "aff-" + string(rune('0'+r.seq))
	stored := *a
	r.store[k] = &stored
	return nil
}

func (r *fakeAffiliationRepo) ListForPerson(_ context.Context, tenantID, personID string) ([]domain.Affiliation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Affiliation
	for _, a := range r.store {
		if a.TenantID == tenantID && a.PersonID == personID {
			out = append(out, *a)
		}
	}
	return out, nil
}

var _ affiliation.Repository = (*fakeAffiliationRepo)(nil)
var _ person.Repository = (*fakePersonRepo)(nil)

func TestAggregateIsIdempotentAcrossRepeatedImports(t *testing.T) {
	personRepo := newFakePersonRepo()
	affiliationRepo := newFakeAffiliationRepo()
	agg := NewAggregator(personRepo, affiliationRepo)
	ctx := context.Background()
	contacts := []domain.CandidateContact{
		{Email: "jane@acme.com", Name: "Jane Smith", Company: "Acme Ltd"},
		{Email: "bob@beta.com", Name: "Bob Jones", Company: "Beta Inc"},
	}

	first := agg.Aggregate(ctx, "tenant-a", contacts)
	second := agg.Aggregate(ctx, "tenant-a", contacts)

	if first.PersonsTouched != second.PersonsTouched || first.AffiliationsTouched != second.AffiliationsTouched {
		t.Errorf("aggregate not idempotent: %+v vs %+v", first, second)
	}
	if len(personRepo.store) != 2 {
		t.Errorf("expected 2 distinct persons after repeated aggregation, got %d", len(personRepo.store))
	}
	if len(affiliationRepo.store) != 2 {
		t.Errorf("expected 2 distinct affiliations after repeated aggregation, got %d", len(affiliationRepo.store))
	}
}

func TestAggregateSkipsContactsWithDisallowedCompanyName(t *testing.T) {
	agg := NewAggregator(newFakePersonRepo(), newFakeAffiliationRepo())
	ctx := context.Background()
	contacts := []domain.CandidateContact{
		{Email: "jane@acme.com", Company: "evil@acme|co"},
	}
	res := agg.Aggregate(ctx, "tenant-a", contacts)
	if res.PersonsTouched != 1 {
		t.Errorf("expected person still created despite affiliation error, got %d", res.PersonsTouched)
	}
	if len(res.Errors) != 1 {
		t.Errorf("expected 1 recorded error, got %d", len(res.Errors))
	}
}
