// Package store implements the Canonical Store: the single write entry
// point that aggregates merged candidates into the Person and Affiliation
// tables, grounded on the teacher's internal/repository/postgres
// repository-interface-over-*sql.DB pattern and the internal/service/
// suppression three-file service layout, here split across
// internal/service/person and internal/service/affiliation.
package store

import (
	"context"
	"fmt"

	"github.com/ignite/contactminer/internal/domain"
	"github.com/ignite/contactminer/internal/service/affiliation"
	"github.com/ignite/contactminer/internal/service/person"
)

// Aggregator is the single write entry point for canonical identity data.
// Re-aggregating the same candidate list yields the same store state: both
// underlying services are individually idempotent (Upsert, InsertIgnore).
type Aggregator struct {
	persons      *person.Service
	affiliations *affiliation.Service
}

// NewAggregator builds an Aggregator over the given repositories.
func NewAggregator(personRepo person.Repository, affiliationRepo affiliation.Repository) *Aggregator {
	return &Aggregator{
		persons:      person.NewService(personRepo),
		affiliations: affiliation.NewService(affiliationRepo),
	}
}

// Outcome summarizes one Aggregate call for job stats and logging.
type Outcome struct {
	PersonsTouched      int
	AffiliationsTouched int
	Errors              []error
}

// Aggregate writes every merged contact into the canonical store for
// tenantID. A contact-level error (e.g. a disallowed company name) is
// recorded in Outcome.Errors and does not abort aggregation of the
// remaining contacts.
func (a *Aggregator) Aggregate(ctx context.Context, tenantID string, contacts []domain.CandidateContact) Outcome {
	var out Outcome
	for _, c := range contacts {
		p, err := a.persons.UpsertFromContact(ctx, tenantID, c)
		if err != nil {
			out.Errors = append(out.Errors, fmt.Errorf("person upsert for %q: %w", c.Email, err))
			continue
		}
		out.PersonsTouched++

		aff, err := a.affiliations.RecordFromContact(ctx, tenantID, p.ID, c)
		if err != nil {
			out.Errors = append(out.Errors, fmt.Errorf("affiliation record for %q: %w", c.Email, err))
			continue
		}
		if aff != nil {
			out.AffiliationsTouched++
		}
	}
	return out
}
