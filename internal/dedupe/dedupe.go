// Package dedupe implements the Deduplicator: it groups validated
// candidates by normalized email and, within each group, picks the best
// value per field using a monotone field-quality score. Ties are broken by
// a fixed source-miner priority order declared at engine start, which also
// makes the deduplicator idempotent and its output order reproducible.
package dedupe

import (
	"sort"
	"strings"

	"github.com/ignite/contactminer/internal/domain"
)

// Dedupe groups candidates by lower(email) and returns one merged candidate
// per distinct email, in the order each email was first seen. priority lists
// miner identifiers from highest to lowest priority; a candidate whose
// Sources does not appear in priority is treated as lowest priority.
func Dedupe(candidates []domain.CandidateContact, priority []string) []domain.CandidateContact {
	rank := make(map[string]int, len(priority))
	for i, id := range priority {
		rank[id] = i
	}

	type group struct {
		email string
		items []domain.CandidateContact
	}
	order := make([]string, 0)
	groups := make(map[string]*group)

	for _, c := range candidates {
		key := strings.ToLower(c.Email)
		g, ok := groups[key]
		if !ok {
			g = &group{email: key}
			groups[key] = g
			order = append(order, key)
		}
		g.items = append(g.items, c)
	}

	out := make([]domain.CandidateContact, 0, len(order))
	for _, key := range order {
		out = append(out, mergeGroup(groups[key], rank))
	}
	return out
}

func bestRank(c domain.CandidateContact, rank map[string]int) int {
	best := len(rank) // unranked sources sort after every known source
	for _, src := range c.Sources {
		if r, ok := rank[src]; ok && r < best {
			best = r
		}
	}
	return best
}

// mergeGroup picks, per field, the value from the candidate with the
// highest FieldScore; ties are broken by source-miner priority, then by
// first-seen order. Only that last tie-break depends on input slice order.
func mergeGroup(g *struct {
	email string
	items []domain.CandidateContact
}, rank map[string]int) domain.CandidateContact {
	merged := domain.CandidateContact{Email: g.email}

	merged.Name = pickBest(g.items, rank, "name", func(c domain.CandidateContact) string { return c.Name })
	merged.Company = pickBest(g.items, rank, "company", func(c domain.CandidateContact) string { return c.Company })
	merged.Title = pickBest(g.items, rank, "title", func(c domain.CandidateContact) string { return c.Title })
	merged.Phone = pickBest(g.items, rank, "phone", func(c domain.CandidateContact) string { return c.Phone })
	merged.Website = pickBest(g.items, rank, "website", func(c domain.CandidateContact) string { return c.Website })
	merged.Country = pickBest(g.items, rank, "country", func(c domain.CandidateContact) string { return c.Country })
	merged.City = pickBest(g.items, rank, "city", func(c domain.CandidateContact) string { return c.City })
	merged.Address = pickBest(g.items, rank, "address", func(c domain.CandidateContact) string { return c.Address })

	var issues []string
	for _, c := range g.items {
		for _, s := range c.Sources {
			merged.AddSource(s)
		}
		issues = append(issues, c.Issues...)
	}
	merged.Issues = dedupeStrings(issues)
	return merged
}

// pickBest returns the value of field (extracted by get) from the candidate
// in items that scores highest by FieldScore, breaking ties by source-miner
// priority and then by first-seen order.
func pickBest(items []domain.CandidateContact, rank map[string]int, field string, get func(domain.CandidateContact) string) string {
	bestScore := -1 << 31
	bestRankVal := len(rank) + 1
	bestIdx := -1
	var bestValue string
	for idx, c := range items {
		v := get(c)
		if v == "" {
			continue
		}
		score := FieldScore(field, v)
		r := bestRank(c, rank)
		if bestIdx == -1 || score > bestScore || (score == bestScore && r < bestRankVal) {
			bestScore, bestRankVal, bestIdx, bestValue = score, r, idx, v
		}
	}
	return bestValue
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return sortedCopy(out)
}

func sortedCopy(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	sort.Strings(out)
	return out
}
