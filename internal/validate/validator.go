// Package validate implements the Candidate Validator: it runs the Field
// Cleaners over every incoming candidate, rejects candidates without a
// usable email, and reports non-fatal cleaning issues on the survivors. It
// also enforces the struct-shape contract with go-playground/validator
// before the business rules run, the way §4.4 describes "clean, then
// accept/reject" as two distinct phases.
package validate

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ignite/contactminer/internal/cleaning"
	"github.com/ignite/contactminer/internal/domain"
)

// shapeValidator enforces struct-tag constraints on CandidateContact before
// business-rule validation runs. A shared, package-level instance is safe
// for concurrent use per the library's own contract.
var shapeValidator = validator.New()

// shapeCheck is the struct-tag-annotated mirror of domain.CandidateContact
// used only to run length/charset checks that are awkward to express as
// hand-written Go; this does not replace the field cleaners, which still do
// the semantic normalization.
type shapeCheck struct {
	Email string `validate:"omitempty,max=320"`
}

// Result is the outcome of validating one batch of candidates.
type Result struct {
	Valid   []domain.CandidateContact
	Invalid []domain.CandidateContact
	// Counters mirror the batch-level stats the spec requires alongside the
	// two disjoint arrays.
	TotalIn      int
	TotalValid   int
	TotalInvalid int
}

// ValidateBatch cleans every candidate in candidates and splits the result
// into valid/invalid according to §4.4: a candidate without a structurally
// valid, non-blacklisted email is rejected outright; everything else is
// cleaned field-by-field and kept, carrying any non-fatal issues found along
// the way.
func ValidateBatch(candidates []domain.CandidateContact) Result {
	res := Result{TotalIn: len(candidates)}
	for _, c := range candidates {
		cleaned, ok := validateOne(c)
		if !ok {
			res.Invalid = append(res.Invalid, c)
			res.TotalInvalid++
			continue
		}
		res.Valid = append(res.Valid, cleaned)
		res.TotalValid++
	}
	return res
}

func validateOne(c domain.CandidateContact) (domain.CandidateContact, bool) {
	if err := shapeValidator.Struct(shapeCheck{Email: c.Email}); err != nil {
		return c, false
	}

	email, ok := cleaning.CleanEmail(c.Email)
	if !ok {
		return c, false
	}
	c.Email = email

	var issues []string
	if c.Name != "" {
		if cleaned, ok := cleaning.CleanName(c.Name); ok {
			c.Name = cleaned
		} else {
			issues = append(issues, "name removed: invalid")
			c.Name = ""
		}
	}
	if c.Company != "" {
		if cleaned, ok := cleaning.CleanCompany(c.Company); ok {
			c.Company = cleaned
		} else {
			issues = append(issues, "company removed: invalid")
			c.Company = ""
		}
	}
	if c.Phone != "" {
		if cleaned, ok := cleaning.CleanPhone(c.Phone); ok {
			c.Phone = cleaned
		} else {
			issues = append(issues, "phone removed: invalid")
			c.Phone = ""
		}
	}
	if c.Website != "" {
		if cleaned, ok := cleaning.CleanWebsite(c.Website); ok {
			c.Website = cleaned
		} else {
			issues = append(issues, "website removed: invalid")
			c.Website = ""
		}
	}
	if c.Country != "" {
		c.Country = cleaning.CleanWhitespace(c.Country)
	}
	if c.City != "" {
		c.City = cleaning.CleanWhitespace(c.City)
	}
	if c.Title != "" {
		c.Title = cleaning.CleanWhitespace(c.Title)
	}
	if c.Address != "" {
		c.Address = cleaning.CleanWhitespace(c.Address)
	}

	c.Issues = issues
	return c, true
}

// ErrEmailRequired documents why a candidate was rejected, for callers that
// want a human-readable reason rather than just the invalid list.
var ErrEmailRequired = fmt.Errorf("candidate has no structurally valid, non-blacklisted email")
