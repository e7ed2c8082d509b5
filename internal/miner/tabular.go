package miner

import (
	"context"
	"regexp"
	"strings"

	"github.com/ignite/contactminer/internal/cleaning"
	"github.com/ignite/contactminer/internal/domain"
	"github.com/ignite/contactminer/internal/lexicon"
)

// ColumnMapping maps a sheet's column index to the canonical field it holds.
// Produced either from a recognized header row or, for headerless sheets, by
// Tabular's own type-guesser.
type ColumnMapping map[int]lexicon.Field

// Tabular mines spreadsheet-shaped input: CSV/XLSX rows already split into
// cells upstream. With a header row it maps columns via lexicon.FieldFor;
// without one it guesses column types by sampling cell shapes (an email
// regex hit, a phone digit-count match, etc.), the way the teacher's
// internal/datanorm/column_mapper.go falls back to content-based detection
// when header names don't match its alias table.
type Tabular struct{}

func NewTabular() *Tabular { return &Tabular{} }

func (m *Tabular) ID() ID { return IDTabular }

func (m *Tabular) Mine(ctx context.Context, input Input) Bundle {
	var contacts []domain.CandidateContact
	rowsScanned := 0
	sheetsGuessed := 0

	for _, sheet := range input.Sheets {
		mapping := sheet.Mapping
		if mapping == nil || len(mapping) == 0 {
			mapping = guessColumnMapping(sheet.Rows)
			sheetsGuessed++
		}
		for _, row := range sheet.Rows {
			rowsScanned++
			c, ok := rowToContact(row, mapping)
			if ok {
				contacts = append(contacts, c)
			}
		}
	}

	contacts = tagContacts(m.ID(), contacts)
	status := StatusSuccess
	if len(contacts) == 0 {
		status = StatusPartial
	}
	return Bundle{
		Miner:    m.ID(),
		Status:   status,
		Contacts: contacts,
		Stats:    Stats{"method": "tabular", "rows_scanned": rowsScanned, "sheets_guessed": sheetsGuessed},
	}
}

// BuildHeaderMapping maps a header row's cells to canonical fields via
// lexicon.FieldFor, for ingestion sources that recognize a header row.
func BuildHeaderMapping(header []string) ColumnMapping {
	mapping := ColumnMapping{}
	for idx, cell := range header {
		if field, ok := lexicon.FieldFor(cell); ok {
			mapping[idx] = field
		}
	}
	return mapping
}

func rowToContact(row []string, mapping ColumnMapping) (domain.CandidateContact, bool) {
	c := domain.CandidateContact{Raw: strings.Join(row, " | ")}
	haveEmail := false
	for idx, field := range mapping {
		if idx < 0 || idx >= len(row) {
			continue
		}
		cell := row[idx]
		switch field {
		case lexicon.FieldEmail:
			if v, ok := cleaning.CleanEmail(cell); ok {
				c.Email = v
				haveEmail = true
			}
		case lexicon.FieldName:
			if v, ok := cleaning.CleanName(cell); ok {
				c.Name = v
			}
		case lexicon.FieldCompany:
			if v, ok := cleaning.CleanCompany(cell); ok {
				c.Company = v
			}
		case lexicon.FieldPhone:
			if v, ok := cleaning.CleanPhone(cell); ok {
				c.Phone = v
			}
		case lexicon.FieldWebsite:
			if v, ok := cleaning.CleanWebsite(cell); ok {
				c.Website = v
			}
		case lexicon.FieldTitle:
			c.Title = cleaning.CleanWhitespace(cell)
		case lexicon.FieldCountry:
			c.Country = cleaning.CleanWhitespace(cell)
		case lexicon.FieldCity:
			c.City = cleaning.CleanWhitespace(cell)
		case lexicon.FieldAddress:
			c.Address = cleaning.CleanWhitespace(cell)
		}
	}
	return c, haveEmail
}

var (
	phoneGuessShape = regexp.MustCompile(`^[\d\s\+\-\(\)\.]{8,20}$`)
	urlGuessShape   = regexp.MustCompile(`(?i)^(https?://|www\.)`)
	nameGuessShape  = regexp.MustCompile(`^\p{Lu}[\p{L}'\-]*(?:\s+\p{Lu}[\p{L}'\-]*){1,3}$`)
)

// cellShapeOrder is the tie-break order for guessColumnMapping's majority
// vote, matching cellShape's own unambiguous-first priority.
var cellShapeOrder = []lexicon.Field{
	lexicon.FieldEmail, lexicon.FieldPhone, lexicon.FieldWebsite,
	lexicon.FieldCompany, lexicon.FieldCountry, lexicon.FieldName,
}

// cellShape classifies one non-empty, trimmed cell against every field's
// shape test, in the order §4.3.2 prioritizes the unambiguous shapes
// (email, phone, URL) before the looser ones (name, company, country) that
// could otherwise mistake each other's values.
func cellShape(cell string) (lexicon.Field, bool) {
	switch {
	case cleaning.EmailPattern().MatchString(cell):
		return lexicon.FieldEmail, true
	case phoneGuessShape.MatchString(cell):
		return lexicon.FieldPhone, true
	case urlGuessShape.MatchString(cell):
		return lexicon.FieldWebsite, true
	case cleaning.HasLegalEntitySuffix(cell):
		return lexicon.FieldCompany, true
	case func() bool { _, ok := cleaning.FindCountryName(cell); return ok }():
		return lexicon.FieldCountry, true
	case nameGuessShape.MatchString(cell):
		return lexicon.FieldName, true
	default:
		return "", false
	}
}

// guessColumnMapping samples up to the first 5 rows of a headerless sheet
// and assigns each column the canonical field whose shape test the majority
// of sampled cells satisfy. Columns with no conclusive majority are left
// unmapped.
func guessColumnMapping(rows [][]string) ColumnMapping {
	if len(rows) == 0 {
		return ColumnMapping{}
	}
	sampleSize := len(rows)
	if sampleSize > 5 {
		sampleSize = 5
	}
	width := 0
	for _, r := range rows[:sampleSize] {
		if len(r) > width {
			width = len(r)
		}
	}

	mapping := ColumnMapping{}
	for col := 0; col < width; col++ {
		hits := map[lexicon.Field]int{}
		total := 0
		for _, r := range rows[:sampleSize] {
			if col >= len(r) || strings.TrimSpace(r[col]) == "" {
				continue
			}
			total++
			cell := strings.TrimSpace(r[col])
			if field, ok := cellShape(cell); ok {
				hits[field]++
			}
		}
		if total == 0 {
			continue
		}
		bestField, bestHits := lexicon.Field(""), 0
		for _, field := range cellShapeOrder {
			if n := hits[field]; n > bestHits {
				bestField, bestHits = field, n
			}
		}
		if bestHits*2 >= total {
			mapping[col] = bestField
		}
	}
	return mapping
}
