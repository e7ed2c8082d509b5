package merge

import (
	"sort"
	"testing"

	"github.com/ignite/contactminer/internal/domain"
)

func byEmail(contacts []domain.CandidateContact) []domain.CandidateContact {
	out := make([]domain.CandidateContact, len(contacts))
	copy(out, contacts)
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out
}

func TestMergeIsCommutativeInBundleOrder(t *testing.T) {
	b1 := Bundle{Source: "structured", Status: StatusSuccess, Contacts: []domain.CandidateContact{
		{Email: "jane@acme.com", Name: "Jane Smith"},
	}}
	b2 := Bundle{Source: "tabular", Status: StatusSuccess, Contacts: []domain.CandidateContact{
		{Email: "jane@acme.com", Company: "Acme Ltd"},
		{Email: "bob@beta.com", Name: "Bob Jones"},
	}}

	forward := Merge([]Bundle{b1, b2})
	backward := Merge([]Bundle{b2, b1})

	fwd := byEmail(forward.Contacts)
	bwd := byEmail(backward.Contacts)

	if len(fwd) != len(bwd) {
		t.Fatalf("different contact counts depending on bundle order: %d vs %d", len(fwd), len(bwd))
	}
	for i := range fwd {
		if fwd[i].Email != bwd[i].Email || fwd[i].Name != bwd[i].Name || fwd[i].Company != bwd[i].Company {
			t.Errorf("merge not commutative at %d: %+v vs %+v", i, fwd[i], bwd[i])
		}
	}
	if forward.EnrichmentRate != backward.EnrichmentRate {
		t.Errorf("enrichment rate not commutative: %.2f vs %.2f", forward.EnrichmentRate, backward.EnrichmentRate)
	}
}

func TestMergeFlattensAllBundlesAndBareEmails(t *testing.T) {
	bundles := []Bundle{
		{Source: "structured", Status: StatusSuccess, Contacts: []domain.CandidateContact{{Email: "a@x.com"}}},
		{Source: "tabular", Status: StatusSuccess, Contacts: []domain.CandidateContact{{Email: "b@x.com"}}},
		{Source: "unstructured", Status: StatusSuccess, Emails: []string{"c@x.com"}},
	}
	res := Merge(bundles)
	if len(res.Contacts) != 3 {
		t.Fatalf("expected 3 distinct contacts, got %d", len(res.Contacts))
	}
	if res.Status != StatusSuccess {
		t.Errorf("expected SUCCESS status, got %s", res.Status)
	}
}

func TestMergeEmptyBundlesYieldsPartial(t *testing.T) {
	res := Merge(nil)
	if res.Status != StatusPartial {
		t.Errorf("expected PARTIAL for no contacts, got %s", res.Status)
	}
}

func TestMergeWasBlockedPropagates(t *testing.T) {
	bundles := []Bundle{
		{Source: "domblock", Status: StatusBlocked},
		{Source: "structured", Status: StatusSuccess, Contacts: []domain.CandidateContact{{Email: "a@x.com"}}},
	}
	res := Merge(bundles)
	if !res.WasBlocked {
		t.Error("expected WasBlocked to propagate from a blocked bundle")
	}
}

func TestMergeEnrichmentRate(t *testing.T) {
	bundles := []Bundle{
		{Source: "structured", Status: StatusSuccess, Contacts: []domain.CandidateContact{
			{Email: "a@x.com", Company: "Acme"},
			{Email: "b@x.com"},
		}},
	}
	res := Merge(bundles)
	if res.EnrichmentRate != 0.5 {
		t.Errorf("expected 0.5 enrichment rate, got %.2f", res.EnrichmentRate)
	}
}
