package dedupe

import (
	"testing"

	"github.com/ignite/contactminer/internal/domain"
)

func TestDedupeGroupsByLowercaseEmail(t *testing.T) {
	in := []domain.CandidateContact{
		{Email: "Jane@Acme.com", Name: "Jane Smith", Sources: []string{"structured"}},
		{Email: "jane@acme.com", Company: "Acme Ltd", Sources: []string{"unstructured"}},
	}
	out := Dedupe(in, []string{"structured", "unstructured"})
	if len(out) != 1 {
		t.Fatalf("expected 1 merged contact, got %d", len(out))
	}
	if out[0].Name != "Jane Smith" || out[0].Company != "Acme Ltd" {
		t.Errorf("unexpected merge result: %+v", out[0])
	}
	if len(out[0].Sources) != 2 {
		t.Errorf("expected both sources preserved, got %v", out[0].Sources)
	}
}

func TestDedupeConflictResolutionBySuffixScore(t *testing.T) {
	in := []domain.CandidateContact{
		{Email: "jane@acme.com", Company: "ACME", Sources: []string{"a"}},
		{Email: "jane@acme.com", Company: "Acme Ltd", Sources: []string{"b"}},
	}
	out := Dedupe(in, []string{"a", "b"})
	if out[0].Company != "Acme Ltd" {
		t.Errorf("expected legal-suffix company to win, got %q", out[0].Company)
	}
}

func TestDedupeIsIdempotent(t *testing.T) {
	in := []domain.CandidateContact{
		{Email: "jane@acme.com", Name: "Jane Smith", Company: "Acme Ltd", Sources: []string{"structured"}},
		{Email: "bob@beta.com", Name: "Bob Jones", Sources: []string{"tabular"}},
	}
	priority := []string{"structured", "tabular"}
	once := Dedupe(in, priority)
	twice := Dedupe(once, priority)

	if len(once) != len(twice) {
		t.Fatalf("dedupe not idempotent in length: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Email != twice[i].Email ||
			once[i].Name != twice[i].Name ||
			once[i].Company != twice[i].Company {
			t.Errorf("dedupe not idempotent at %d: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestDedupePreservesFirstSeenOrder(t *testing.T) {
	in := []domain.CandidateContact{
		{Email: "b@x.com", Sources: []string{"s"}},
		{Email: "a@x.com", Sources: []string{"s"}},
	}
	out := Dedupe(in, []string{"s"})
	if out[0].Email != "b@x.com" || out[1].Email != "a@x.com" {
		t.Errorf("expected first-seen order preserved, got %v", out)
	}
}
