package miningengine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ignite/contactminer/internal/collab"
	"github.com/ignite/contactminer/internal/domain"
	"github.com/ignite/contactminer/internal/miner"
	"github.com/ignite/contactminer/internal/service/affiliation"
	"github.com/ignite/contactminer/internal/service/person"
	"github.com/ignite/contactminer/internal/store"
)

// fakeMiner returns a fixed bundle regardless of input, for exercising the
// engine's orchestration without depending on real extraction logic.
type fakeMiner struct {
	id       miner.ID
	contacts []domain.CandidateContact
	status   miner.Status
}

func NewFakeMiner(id miner.ID, contacts []domain.CandidateContact) *fakeMiner {
	return &fakeMiner{id: id, contacts: contacts, status: miner.StatusSuccess}
}

func NewFakeErrorMiner(id miner.ID) *fakeMiner {
	return &fakeMiner{id: id, status: miner.StatusError}
}

func (m *fakeMiner) ID() miner.ID { return m.id }

func (m *fakeMiner) Mine(ctx context.Context, input miner.Input) miner.Bundle {
	contacts := make([]domain.CandidateContact, len(m.contacts))
	copy(contacts, m.contacts)
	for i := range contacts {
		contacts[i].AddSource(string(m.id))
	}
	return miner.Bundle{Miner: m.id, Status: m.status, Contacts: contacts}
}

type fakePersonRepo struct {
	mu    sync.Mutex
	store map[string]*domain.Person
	seq   int
}

func newFakePersonRepo() *fakePersonRepo { return &fakePersonRepo{store: map[string]*domain.Person{}} }

func (r *fakePersonRepo) key(tenantID, email string) string {
	return tenantID + ":" + strings.ToLower(email)
}

func (r *fakePersonRepo) Upsert(_ context.Context, p *domain.Person) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := r.key(p.TenantID, p.Email)
	if existing, ok := r.store[k]; ok {
		*p = *existing
		return nil
	}
	r.seq++
	p.ID = fmt.Sprintf("person-%d", r.seq)
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
	return nil
}

type fakeAffiliationRepo struct {
	mu    sync.Mutex
	store map[string]*domain.Affiliation
	seq   int
}

func newFakeAffiliationRepo() *fakeAffiliationRepo {
	return &fakeAffiliationRepo{store: map[string]*domain.Affiliation{}}
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
	a.ID = fmt.Sprintf("aff-%d", r.seq)
	stored := *a
	r.store[k] = &stored
	return nil
}

func (r *fakeAffiliationRepo) ListForPerson(_ context.Context, tenantID, personID string) ([]domain.Affiliation, error) {
	return nil, nil
}

var _ person.Repository = (*fakePersonRepo)(nil)
var _ affiliation.Repository = (*fakeAffiliationRepo)(nil)

type fakeJobRepo struct {
	mu        sync.Mutex
	running   map[string]bool
	completed map[string]bool
	failed    map[string]string
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{running: map[string]bool{}, completed: map[string]bool{}, failed: map[string]string{}}
}

func (r *fakeJobRepo) MarkRunning(_ context.Context, jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.running[jobID] = true
	return nil
}

func (r *fakeJobRepo) Complete(_ context.Context, jobID string, totalFound, totalValid int, statsJSON string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed[jobID] = true
	return nil
}

func (r *fakeJobRepo) Fail(_ context.Context, jobID string, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed[jobID] = errMsg
	return nil
}

type fakeResultRepo struct {
	mu       sync.Mutex
	inserted []domain.MiningResultRow
	err      error
}

func (r *fakeResultRepo) InsertBatch(_ context.Context, rows []domain.MiningResultRow) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inserted = append(r.inserted, rows...)
	return nil
}

func newTestAggregator() *store.Aggregator {
	return store.NewAggregator(newFakePersonRepo(), newFakeAffiliationRepo())
}

func TestRunJobTextInputSuccess(t *testing.T) {
	eng := New(Config{
		Miners:  []miner.Miner{NewFakeMiner(miner.IDStructured, []domain.CandidateContact{{Email: "jane@acme.com", Name: "Jane Smith"}})},
		Jobs:    newFakeJobRepo(),
		Results: &fakeResultRepo{},
		Aggregator: newTestAggregator(),
	})

	job := &domain.Job{ID: "job-1", TenantID: "tenant-a", Type: domain.JobTypeText}
	err := eng.RunJob(context.Background(), job, miner.Input{Text: "irrelevant"}, domain.MinerFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Status != domain.JobCompleted {
		t.Errorf("expected job completed, got %s", job.Status)
	}
	if job.TotalValid != 1 {
		t.Errorf("expected 1 valid contact, got %d", job.TotalValid)
	}
}

func TestRunJobAllMinersFailYieldsFailedJob(t *testing.T) {
	eng := New(Config{
		Miners:     []miner.Miner{NewFakeErrorMiner(miner.IDStructured)},
		Jobs:       newFakeJobRepo(),
		Results:    &fakeResultRepo{},
		Aggregator: newTestAggregator(),
	})

	job := &domain.Job{ID: "job-2", TenantID: "tenant-a", Type: domain.JobTypeText}
	err := eng.RunJob(context.Background(), job, miner.Input{Text: "x"}, domain.MinerFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Status != domain.JobFailed {
		t.Errorf("expected job failed, got %s", job.Status)
	}
}

func TestRunJobPersistenceErrorMarksFailed(t *testing.T) {
	eng := New(Config{
		Miners:     []miner.Miner{NewFakeMiner(miner.IDStructured, []domain.CandidateContact{{Email: "jane@acme.com"}})},
		Jobs:       newFakeJobRepo(),
		Results:    &fakeResultRepo{err: fmt.Errorf("disk full")},
		Aggregator: newTestAggregator(),
	})

	job := &domain.Job{ID: "job-3", TenantID: "tenant-a", Type: domain.JobTypeText}
	err := eng.RunJob(context.Background(), job, miner.Input{Text: "x"}, domain.MinerFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Status != domain.JobFailed {
		t.Errorf("expected job failed after persistence error, got %s", job.Status)
	}
}

type countingRenderer struct {
	mu    sync.Mutex
	calls int
	html  string
}

func (c *countingRenderer) Render(ctx context.Context, url string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.html, nil
}

func TestRunJobURLRendersOnceForAllMiners(t *testing.T) {
	renderer := &countingRenderer{html: "<html><body>jane@acme.com</body></html>"}
	eng := New(Config{
		Miners: []miner.Miner{
			miner.NewDOMBlock(),
			miner.NewStructured(),
			miner.NewUnstructured(),
		},
		Jobs:       newFakeJobRepo(),
		Results:    &fakeResultRepo{},
		Aggregator: newTestAggregator(),
	})

	job := &domain.Job{ID: "job-4", TenantID: "tenant-a", Type: domain.JobTypeURL}
	input := miner.Input{URL: "https://acme.com", Render: renderer}
	if err := eng.RunJob(context.Background(), job, input, domain.MinerFlags{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	renderer.mu.Lock()
	calls := renderer.calls
	renderer.mu.Unlock()
	if calls != 1 {
		t.Errorf("expected exactly 1 render call across all URL-eligible miners, got %d", calls)
	}
}

var _ collab.PageRenderer = (*countingRenderer)(nil)
