// Package merge implements the Result Merger: it combines every miner's
// result bundle for a job into one merged bundle, in a way that is
// commutative in the order bundles arrive — a requirement since miners run
// concurrently and complete in nondeterministic order (§4.8).
package merge

import (
	"github.com/ignite/contactminer/internal/dedupe"
	"github.com/ignite/contactminer/internal/domain"
)

// MinerPriority is the fixed, declaration-order list of miner identifiers
// used to break dedupe field conflicts. Declared once at engine start so
// that merge/dedupe stays deterministic regardless of which miner happened
// to finish first.
var MinerPriority = []string{"structured", "tabular", "unstructured", "domblock", "ai_extractor"}

// Status mirrors miner.Status without importing the miner package, since
// merge only needs to read and combine it.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusPartial Status = "PARTIAL"
	StatusBlocked Status = "BLOCKED"
	StatusError   Status = "ERROR"
)

// Bundle is one miner's contribution to a job: its source id, status, any
// bare emails it noticed without full context, and the contacts it built.
type Bundle struct {
	Source   string
	Status   Status
	Emails   []string
	Contacts []domain.CandidateContact
}

// Result is the merger's output for one job: the merged contacts plus the
// two batch-level signals the engine needs to decide job outcome and
// quality.
type Result struct {
	Status         Status
	Contacts       []domain.CandidateContact
	WasBlocked     bool
	EnrichmentRate float64
}

// Merge combines bundles into one Result. Every email mentioned by any
// bundle — whether as a bare email or inside a contact — becomes exactly
// one merged contact; per field, the value is chosen by dedupe's
// FieldScore, ties broken by MinerPriority. The set of merged emails is
// independent of the order bundles are passed in; contacts come back in
// first-seen order, and a field tie that FieldScore and MinerPriority leave
// open goes to the value seen first.
func Merge(bundles []Bundle) Result {
	var all []domain.CandidateContact
	wasBlocked := false

	for _, b := range bundles {
		if b.Status == StatusBlocked {
			wasBlocked = true
		}
		for _, c := range b.Contacts {
			c.AddSource(b.Source)
			all = append(all, c)
		}
		for _, email := range b.Emails {
			all = append(all, domain.CandidateContact{Email: email, Sources: []string{b.Source}})
		}
	}

	merged := dedupe.Dedupe(all, MinerPriority)

	status := StatusPartial
	if len(merged) > 0 {
		status = StatusSuccess
	}

	return Result{
		Status:         status,
		Contacts:       merged,
		WasBlocked:     wasBlocked,
		EnrichmentRate: enrichmentRate(merged),
	}
}

// enrichmentRate is the fraction of merged contacts carrying at least one of
// company, phone or website — the signal the engine and quality scorer use
// to judge whether a job did more than collect bare emails.
func enrichmentRate(contacts []domain.CandidateContact) float64 {
	if len(contacts) == 0 {
		return 0
	}
	enriched := 0
	for _, c := range contacts {
		if c.Company != "" || c.Phone != "" || c.Website != "" {
			enriched++
		}
	}
	return float64(enriched) / float64(len(contacts))
}
