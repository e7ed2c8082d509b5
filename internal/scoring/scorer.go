// Package scoring implements the Quality Scorer: a per-contact 0-100 score
// from weighted field presence plus quality bonuses, and a per-batch
// aggregate score with a decision band, grounded on the same additive
// scoring shape as the teacher's computeQualityScore
// (internal/datanorm/value_normalizer.go) but normalized to the spec's 0-100
// contact scale and weights.
package scoring

import (
	"strings"

	"github.com/ignite/contactminer/internal/cleaning"
	"github.com/ignite/contactminer/internal/domain"
)

// fieldWeights are the presence weights from §4.6, summing to 98 across a
// fully-populated contact before quality bonuses are added.
var fieldWeights = map[string]int{
	"email":   30,
	"name":    20,
	"company": 15,
	"phone":   15,
	"country": 5,
	"website": 5,
	"city":    3,
	"title":   3,
	"address": 2,
}

// ContactScore computes a 0-100 score for one contact: sum of weighted field
// presence plus small quality bonuses, capped at 100.
func ContactScore(c domain.CandidateContact) int {
	score := 0
	if c.Email != "" {
		score += fieldWeights["email"]
	}
	if c.Name != "" {
		score += fieldWeights["name"]
		if strings.Contains(strings.TrimSpace(c.Name), " ") {
			score += 3 // full name bonus
		}
	}
	if c.Company != "" {
		score += fieldWeights["company"]
		if cleaning.HasLegalEntitySuffix(c.Company) {
			score += 3 // legal-entity suffix bonus
		}
	}
	if c.Phone != "" {
		score += fieldWeights["phone"]
		if strings.HasPrefix(c.Phone, "+") {
			score += 2 // international phone bonus
		}
	}
	if c.Country != "" {
		score += fieldWeights["country"]
	}
	if c.Website != "" {
		score += fieldWeights["website"]
		if strings.HasPrefix(strings.ToLower(c.Website), "https://") {
			score += 2 // https bonus
		}
	}
	if c.City != "" {
		score += fieldWeights["city"]
	}
	if c.Title != "" {
		score += fieldWeights["title"]
	}
	if c.Address != "" {
		score += fieldWeights["address"]
	}
	if score > 100 {
		score = 100
	}
	return score
}

// Decision is the aggregate quality band for a batch of mined contacts.
type Decision string

const (
	DecisionExcellent Decision = "EXCELLENT"
	DecisionGood      Decision = "GOOD"
	DecisionFair      Decision = "FAIR"
	DecisionPoor      Decision = "POOR"
	DecisionRetry     Decision = "RETRY"
	DecisionFailed    Decision = "FAILED"
)

// BatchResult is the quality scorer's output for one batch.
type BatchResult struct {
	Score    float64
	Decision Decision
}

// coveredFields lists the canonical fields counted toward field-coverage %.
var coveredFields = []string{"email", "name", "company", "phone", "country", "city", "address", "website", "title"}

// ScoreBatch implements §4.6's batch formula:
// 0.5*avg(contact score) + 0.3*avg(field-coverage %) + min(20, 2*N), capped
// at 100, mapped to a decision band. Zero contacts is always FAILED.
func ScoreBatch(contacts []domain.CandidateContact) BatchResult {
	n := len(contacts)
	if n == 0 {
		return BatchResult{Score: 0, Decision: DecisionFailed}
	}

	totalContactScore := 0
	totalCoveragePct := 0.0
	for _, c := range contacts {
		totalContactScore += ContactScore(c)
		totalCoveragePct += fieldCoveragePercent(c)
	}
	avgContactScore := float64(totalContactScore) / float64(n)
	avgCoverage := totalCoveragePct / float64(n)

	volumeBonus := 2.0 * float64(n)
	if volumeBonus > 20 {
		volumeBonus = 20
	}

	score := 0.5*avgContactScore + 0.3*avgCoverage + volumeBonus
	if score > 100 {
		score = 100
	}

	return BatchResult{Score: score, Decision: decisionFor(score)}
}

func fieldCoveragePercent(c domain.CandidateContact) float64 {
	present := 0
	values := map[string]string{
		"email": c.Email, "name": c.Name, "company": c.Company, "phone": c.Phone,
		"country": c.Country, "city": c.City, "address": c.Address,
		"website": c.Website, "title": c.Title,
	}
	for _, f := range coveredFields {
		if values[f] != "" {
			present++
		}
	}
	return 100 * float64(present) / float64(len(coveredFields))
}

func decisionFor(score float64) Decision {
	switch {
	case score >= 80:
		return DecisionExcellent
	case score >= 60:
		return DecisionGood
	case score >= 40:
		return DecisionFair
	case score >= 25:
		return DecisionPoor
	default:
		return DecisionRetry
	}
}
