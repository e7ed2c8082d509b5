package affiliation

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/ignite/contactminer/internal/domain"
)

type mockRepo struct {
	mu    sync.RWMutex
	store map[string]*domain.Affiliation
	seq   int
}

func newMockRepo() *mockRepo {
	return &mockRepo{store: make(map[string]*domain.Affiliation)}
}

func (m *mockRepo) key(tenantID, personID, company string) string {
	return tenantID + ":" + personID + ":" + strings.ToLower(company)
}

func (m *mockRepo) InsertIgnore(_ context.Context, a *domain.Affiliation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := m.key(a.TenantID, a.PersonID, a.CompanyName)
	if existing, ok := m.store[k]; ok {
		*a = *existing
		return nil
	}
	m.seq++
	a.ID = "aff-" + string(rune('0'+m.seq))
	stored := *a
	m.store[k] = &stored
	return nil
}

func (m *mockRepo) ListForPerson(_ context.Context, tenantID, personID string) ([]domain.Affiliation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.Affiliation
	for _, a := range m.store {
		if a.TenantID == tenantID && a.PersonID == personID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func TestRecordFromContactCreatesAffiliation(t *testing.T) {
	svc := NewService(newMockRepo())
	a, err := svc.RecordFromContact(context.Background(), "tenant-a", "person-1", domain.CandidateContact{Company: "Acme Ltd", Title: "CEO"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == nil || a.CompanyName != "Acme Ltd" {
		t.Fatalf("unexpected affiliation: %+v", a)
	}
}

func TestRecordFromContactNoCompanyIsNoop(t *testing.T) {
	svc := NewService(newMockRepo())
	a, err := svc.RecordFromContact(context.Background(), "tenant-a", "person-1", domain.CandidateContact{})
	if err != nil || a != nil {
		t.Fatalf("expected no-op for missing company, got %+v, %v", a, err)
	}
}

func TestRecordFromContactRejectsDisallowedChars(t *testing.T) {
	svc := NewService(newMockRepo())
	_, err := svc.RecordFromContact(context.Background(), "tenant-a", "person-1", domain.CandidateContact{Company: "evil@acme|co"})
	if err != ErrInvalidCompanyName {
		t.Errorf("expected ErrInvalidCompanyName, got %v", err)
	}
}

func TestRecordFromContactIsIdempotent(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()
	contact := domain.CandidateContact{Company: "Acme Ltd"}

	first, err := svc.RecordFromContact(ctx, "tenant-a", "person-1", contact)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.RecordFromContact(ctx, "tenant-a", "person-1", contact)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected same affiliation id across repeated aggregation, got %q vs %q", first.ID, second.ID)
	}

	all, err := svc.ListForPerson(ctx, "tenant-a", "person-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected exactly 1 affiliation after repeated aggregation, got %d", len(all))
	}
}
