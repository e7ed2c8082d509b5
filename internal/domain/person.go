package domain

import (
	"strings"
	"time"
)

// VerificationStatus enumerates the mailbox-verification outcomes a Person
// can carry. It never downgrades: once set to a terminal status other than
// "unknown", aggregation must not revert it to "unknown".
type VerificationStatus string

const (
	VerificationUnknown  VerificationStatus = "unknown"
	VerificationValid    VerificationStatus = "valid"
	VerificationInvalid  VerificationStatus = "invalid"
	VerificationCatchall VerificationStatus = "catchall"
	VerificationRisky    VerificationStatus = "risky"
)

// Person is the canonical, long-lived identity record. Unique on
// (tenant_id, lower(email)). Email is write-once; FirstName/LastName are
// enriched additively (set only when currently null); VerificationStatus is
// updated only by the Verification Queue, never by aggregation directly.
type Person struct {
	ID                 string              `json:"id" db:"id"`
	TenantID           string              `json:"tenant_id" db:"tenant_id"`
	Email              string              `json:"email" db:"email"`
	FirstName          string              `json:"first_name,omitempty" db:"first_name"`
	LastName           string              `json:"last_name,omitempty" db:"last_name"`
	VerificationStatus VerificationStatus  `json:"verification_status" db:"verification_status"`
	VerifiedAt         *time.Time          `json:"verified_at,omitempty" db:"verified_at"`
	CreatedAt          time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at" db:"updated_at"`
}

// Affiliation is the canonical record of a person's relationship to a
// company. Unique on (tenant_id, person_id, lower(company_name)). Never
// overwritten once created; a person accumulates affiliation history as new
// companies appear across imports.
type Affiliation struct {
	ID          string    `json:"id" db:"id"`
	TenantID    string    `json:"tenant_id" db:"tenant_id"`
	PersonID    string    `json:"person_id" db:"person_id"`
	CompanyName string    `json:"company_name" db:"company_name"`
	Title       string    `json:"title,omitempty" db:"title"`
	Phone       string    `json:"phone,omitempty" db:"phone"`
	Website     string    `json:"website,omitempty" db:"website"`
	Country     string    `json:"country,omitempty" db:"country"`
	City        string    `json:"city,omitempty" db:"city"`
	Address     string    `json:"address,omitempty" db:"address"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// NameParts is the result of splitting a full name into given/family parts.
type NameParts struct {
	FirstName string
	LastName  string
}

// SplitName preserves multi-word surnames: the last whitespace-delimited
// token is treated as the surname, everything before it as the given name.
// A single-token name sets only FirstName.
func SplitName(full string) NameParts {
	fields := strings.Fields(full)
	switch len(fields) {
	case 0:
		return NameParts{}
	case 1:
		return NameParts{FirstName: fields[0]}
	default:
		return NameParts{
			FirstName: strings.Join(fields[:len(fields)-1], " "),
			LastName:  fields[len(fields)-1],
		}
	}
}
