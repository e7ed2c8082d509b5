package domain

import "time"

// CandidateContact is the ephemeral pipeline record produced by a miner and
// consumed by the validator, deduplicator and merger. It never survives past
// a single job's pipeline run.
type CandidateContact struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Company string `json:"company,omitempty"`
	Title   string `json:"title,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
	Country string `json:"country,omitempty"`
	City    string `json:"city,omitempty"`
	Address string `json:"address,omitempty"`

	// Raw preserves the miner's original, uncleaned value for this record
	// (e.g. the source line, row, or JSON block) for audit purposes.
	Raw string `json:"raw,omitempty"`

	// Sources lists the miner identifiers that contributed to this record.
	// Populated by the Result Merger; a freshly-mined candidate carries
	// exactly one source.
	Sources []string `json:"sources,omitempty"`

	// Issues records non-fatal problems found while cleaning this candidate
	// (e.g. "phone removed: invalid"). Populated by the Validator.
	Issues []string `json:"issues,omitempty"`
}

// HasSource reports whether miner id already contributed to this candidate.
func (c *CandidateContact) HasSource(id string) bool {
	for _, s := range c.Sources {
		if s == id {
			return true
		}
	}
	return false
}

// AddSource appends a miner id to Sources if not already present.
func (c *CandidateContact) AddSource(id string) {
	if id == "" || c.HasSource(id) {
		return
	}
	c.Sources = append(c.Sources, id)
}

// MiningResultRow is a persisted, storage-layout record produced by the
// Engine for one merged contact within a job. Rows are created once and may
// subsequently be edited by a caller but never change job_id.
type MiningResultRow struct {
	ID        string    `json:"id" db:"id"`
	JobID     string    `json:"job_id" db:"job_id"`
	TenantID  string    `json:"tenant_id" db:"tenant_id"`
	Status    string    `json:"status" db:"status"` // new | imported
	SourceURL string    `json:"source_url,omitempty" db:"source_url"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name,omitempty" db:"name"`
	Company   string    `json:"company,omitempty" db:"company"`
	Title     string    `json:"title,omitempty" db:"title"`
	Phone     string    `json:"phone,omitempty" db:"phone"`
	Website   string    `json:"website,omitempty" db:"website"`
	Country   string    `json:"country,omitempty" db:"country"`
	City      string    `json:"city,omitempty" db:"city"`
	Address   string    `json:"address,omitempty" db:"address"`
	Raw       string    `json:"raw,omitempty" db:"raw"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

const (
	ResultRowStatusNew      = "new"
	ResultRowStatusImported = "imported"
)

// FromContact copies the fields of a merged CandidateContact into a result
// row shaped for persistence. JobID, TenantID and SourceURL are set by the
// caller, which has that context.
func (r *MiningResultRow) FromContact(c CandidateContact) {
	r.Email = c.Email
	r.Name = c.Name
	r.Company = c.Company
	r.Title = c.Title
	r.Phone = c.Phone
	r.Website = c.Website
	r.Country = c.Country
	r.City = c.City
	r.Address = c.Address
	r.Raw = c.Raw
}
