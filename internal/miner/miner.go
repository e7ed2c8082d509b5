// Package miner implements the family of strategy miners that turn raw
// bytes or a URL into candidate contacts: Structured, Tabular, Unstructured,
// DOM-block and AI-extractor. All five share the Miner contract defined
// here, the way the teacher's ESP adapters (internal/worker/esp_*.go) share
// the ESPAdapter interface behind internal/worker/esp_distributor.go — a
// closed, declaration-ordered set of variants, no inheritance.
package miner

import (
	"context"

	"github.com/ignite/contactminer/internal/collab"
	"github.com/ignite/contactminer/internal/domain"
)

// ID identifies one miner strategy. Used as provenance in
// CandidateContact.Sources and as the tie-break key in dedupe/merge
// priority ordering.
type ID string

const (
	IDStructured   ID = "structured"
	IDTabular      ID = "tabular"
	IDUnstructured ID = "unstructured"
	IDDOMBlock     ID = "domblock"
	IDAIExtractor  ID = "ai_extractor"
)

// Status is the outcome of running one miner, independent of how many
// contacts it found — a miner can succeed with zero contacts, or be
// blocked/erroring at the transport level.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusPartial Status = "PARTIAL"
	StatusBlocked Status = "BLOCKED"
	StatusError   Status = "ERROR"
)

// Stats carries free-form per-miner diagnostics (method used, blocks
// scanned, rows processed, etc.) surfaced in job metadata.
type Stats map[string]interface{}

// Bundle is what every miner returns: its status, the candidates it found,
// and diagnostic stats. Bare emails-only results (e.g. a miner that only
// confirms an address exists without full context) populate Emails.
type Bundle struct {
	Miner     ID
	Status    Status
	Contacts  []domain.CandidateContact
	Emails    []string
	Stats     Stats
	Err       error
}

// Miner is the contract every strategy implementation satisfies. mine never
// panics and never returns an error across the pipeline boundary — failures
// are reported as Bundle.Status/Err per §7's "miners report structured
// results, never throw across the pipeline boundary".
type Miner interface {
	ID() ID
	Mine(ctx context.Context, input Input) Bundle
}

// Input is the union of everything a miner might need. Concrete miners only
// read the fields relevant to their input shape (text, sheets, or URL).
type Input struct {
	Text   string
	Sheets []Sheet
	URL    string

	Render collab.PageRenderer
	LLM    collab.LLMClient
}

// Sheet is one worksheet's row/column data, with an optional pre-detected
// header-to-field mapping from upstream ingestion.
type Sheet struct {
	Name    string
	Rows    [][]string
	Mapping ColumnMapping // nil if no header row was recognized
}

// tagContacts stamps every contact in bundle with the miner's own source id,
// so downstream merge/dedupe stages always see accurate provenance even if
// the miner forgot to set it.
func tagContacts(id ID, contacts []domain.CandidateContact) []domain.CandidateContact {
	for i := range contacts {
		contacts[i].AddSource(string(id))
	}
	return contacts
}
