package miner

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/ignite/contactminer/internal/cleaning"
	"github.com/ignite/contactminer/internal/domain"
	"github.com/ignite/contactminer/internal/lexicon"
)

// Structured mines "Label: value" lines — signature blocks, vCard-like
// dumps, form exports — by walking lexicon label patterns over the text
// line by line. A Company line starts a new candidate (the company-retrigger
// rule from §4.3.1): once a company has been seen, any further company line
// flushes the current candidate and starts a fresh one, since a new company
// line means a new person block began without an explicit separator.
type Structured struct{}

func NewStructured() *Structured { return &Structured{} }

func (m *Structured) ID() ID { return IDStructured }

// ocrColonRepair fixes common OCR confusions of the label/value separator
// (pipe or semicolon standing in for a colon) before label matching runs.
var ocrColonRepair = regexp.MustCompile(`(?m)^([ \t]*[\p{L} ]{2,30}?)[;|]([ \t]*\S)`)

func repairOCRLabels(text string) string {
	return ocrColonRepair.ReplaceAllString(text, "$1:$2")
}

// midLineLabelPattern matches a lexicon label that appears after other text
// on the same line rather than at the line start, e.g. the "Company:" in
// "...Acme Ltd Company: Jane Smith" — the collapsed single-line layout a
// PDF-to-text or OCR pass commonly produces for what was a multi-line block.
// Surface forms are tried longest-first so "full name" is not cut short by
// the shorter "name" alternative matching its tail.
var midLineLabelPattern = buildMidLineLabelPattern()

func buildMidLineLabelPattern() *regexp.Regexp {
	surfaces := make([]string, 0)
	for _, ls := range lexicon.LabelsAll() {
		surfaces = append(surfaces, regexp.QuoteMeta(ls.Surface))
	}
	sort.Slice(surfaces, func(i, j int) bool { return len(surfaces[i]) > len(surfaces[j]) })
	return regexp.MustCompile(`(?i)[ \t]+\b(` + strings.Join(surfaces, "|") + `)\b[ \t]*[:\-][ \t]*\S`)
}

// insertLabelLineBreaks implements §4.3.1's preprocessing pass: a newline is
// inserted before every label match that doesn't already begin a line, so
// the line-walk below sees one label per line even when a PDF/OCR extraction
// collapsed several contact fields onto a single physical line.
func insertLabelLineBreaks(text string) string {
	matches := midLineLabelPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		labelStart := m[2]
		if labelStart <= last {
			continue
		}
		b.WriteString(text[last:labelStart])
		b.WriteByte('\n')
		last = labelStart
	}
	b.WriteString(text[last:])
	return b.String()
}

func (m *Structured) Mine(ctx context.Context, input Input) Bundle {
	text := repairOCRLabels(input.Text)
	text = insertLabelLineBreaks(text)
	lines := strings.Split(text, "\n")

	var contacts []domain.CandidateContact
	cur := domain.CandidateContact{}
	haveCompany := false
	dirty := false

	flush := func() {
		if dirty {
			contacts = append(contacts, cur)
		}
		cur = domain.CandidateContact{}
		haveCompany = false
		dirty = false
	}

	for _, line := range lines {
		field, value, matched := matchLabelLine(line)
		if !matched {
			continue
		}
		switch field {
		case lexicon.FieldCompany:
			if clean, ok := cleaning.CleanCompany(value); ok {
				if haveCompany {
					flush()
				}
				cur.Company = clean
				haveCompany = true
				dirty = true
			}
		case lexicon.FieldEmail:
			if clean, ok := cleaning.CleanEmail(value); ok {
				cur.Email = clean
				dirty = true
			}
		case lexicon.FieldName:
			if clean, ok := cleaning.CleanName(value); ok {
				cur.Name = clean
				dirty = true
			}
		case lexicon.FieldPhone:
			if clean, ok := cleaning.CleanPhone(value); ok {
				cur.Phone = clean
				dirty = true
			}
		case lexicon.FieldWebsite:
			if clean, ok := cleaning.CleanWebsite(value); ok {
				cur.Website = clean
				dirty = true
			}
		case lexicon.FieldTitle:
			cur.Title = cleaning.CleanWhitespace(value)
			dirty = true
		case lexicon.FieldCountry:
			cur.Country = cleaning.CleanWhitespace(value)
			dirty = true
		case lexicon.FieldCity:
			cur.City = cleaning.CleanWhitespace(value)
			dirty = true
		case lexicon.FieldAddress:
			cur.Address = cleaning.CleanWhitespace(value)
			dirty = true
		}
	}
	flush()

	contacts = tagContacts(m.ID(), contacts)
	status := StatusSuccess
	if len(contacts) == 0 {
		status = StatusPartial
	}
	return Bundle{
		Miner:    m.ID(),
		Status:   status,
		Contacts: contacts,
		Stats:    Stats{"method": "label_lines", "lines_scanned": len(lines)},
	}
}

// matchLabelLine checks a single line against every known label pattern and
// returns the first field (declaration order) whose pattern matches at line
// start, along with the remainder of the line as the raw value.
func matchLabelLine(line string) (field lexicon.Field, value string, matched bool) {
	for _, ls := range lexicon.LabelsAll() {
		pat := lexicon.LabelLinePattern(ls.Surface)
		if pat == nil {
			continue
		}
		if loc := pat.FindStringIndex(line); loc != nil {
			return ls.Field, line[loc[1]:], true
		}
	}
	return "", "", false
}
