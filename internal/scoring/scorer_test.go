package scoring

import (
	"testing"

	"github.com/ignite/contactminer/internal/domain"
)

func TestContactScoreMonotone(t *testing.T) {
	base := domain.CandidateContact{Email: "jane@acme.com"}
	withName := base
	withName.Name = "Jane Smith"

	if ContactScore(withName) < ContactScore(base) {
		t.Errorf("adding name decreased score: %d < %d", ContactScore(withName), ContactScore(base))
	}

	withAll := domain.CandidateContact{
		Email: "jane@acme.com", Name: "Jane Smith", Company: "Acme Ltd",
		Phone: "+12125550100", Country: "USA", Website: "https://acme.com",
		City: "New York", Title: "CEO", Address: "1 Main St",
	}
	if ContactScore(withAll) < ContactScore(withName) {
		t.Error("fully populated contact scored lower than partial contact")
	}
}

func TestScoreBatchZeroContactsFails(t *testing.T) {
	res := ScoreBatch(nil)
	if res.Decision != DecisionFailed {
		t.Errorf("expected FAILED for empty batch, got %s", res.Decision)
	}
}

func TestScoreBatchDecisionBands(t *testing.T) {
	rich := domain.CandidateContact{
		Email: "jane@acme.com", Name: "Jane Smith", Company: "Acme Ltd",
		Phone: "+12125550100", Country: "USA", Website: "https://acme.com",
		City: "New York", Title: "CEO", Address: "1 Main St",
	}
	var many []domain.CandidateContact
	for i := 0; i < 10; i++ {
		many = append(many, rich)
	}
	res := ScoreBatch(many)
	if res.Decision != DecisionExcellent {
		t.Errorf("expected EXCELLENT for rich batch, got %s (%.1f)", res.Decision, res.Score)
	}

	sparse := []domain.CandidateContact{{Email: "a@b.com"}}
	res = ScoreBatch(sparse)
	if res.Decision == DecisionExcellent {
		t.Errorf("sparse single-field batch should not score EXCELLENT, got %.1f", res.Score)
	}
}
