package miner

import (
	"context"
	"strings"

	"github.com/ignite/contactminer/internal/cleaning"
	"github.com/ignite/contactminer/internal/domain"
	"github.com/ignite/contactminer/internal/lexicon"
)

// contextLinesAbove and contextLinesBelow bound the asymmetric window of
// lines scanned around a found email for label-bearing context, per §4.3.3:
// signature blocks and directory cards put the name/title/company above the
// email far more often than below it.
const (
	contextLinesAbove = 8
	contextLinesBelow = 4
)

// Unstructured mines free-form text (page bodies, PDFs, pasted blocks) by
// first finding every email-shaped substring, then scanning a small window
// of surrounding lines for other field labels to attach to that email. Each
// email anchors exactly one candidate, so two emails sharing a context
// window each get their own candidate rather than merging into one.
type Unstructured struct{}

func NewUnstructured() *Unstructured { return &Unstructured{} }

func (m *Unstructured) ID() ID { return IDUnstructured }

func (m *Unstructured) Mine(ctx context.Context, input Input) Bundle {
	lines := strings.Split(input.Text, "\n")

	var emailLines []int
	for i, line := range lines {
		if cleaning.EmailPattern().MatchString(line) {
			emailLines = append(emailLines, i)
		}
	}

	var contacts []domain.CandidateContact
	for _, lineIdx := range emailLines {
		raw := cleaning.EmailPattern().FindString(lines[lineIdx])
		email, ok := cleaning.CleanEmail(raw)
		if !ok {
			continue
		}
		c := domain.CandidateContact{Email: email, Raw: lines[lineIdx]}

		lo := lineIdx - contextLinesAbove
		if lo < 0 {
			lo = 0
		}
		hi := lineIdx + contextLinesBelow
		if hi >= len(lines) {
			hi = len(lines) - 1
		}
		for w := lo; w <= hi; w++ {
			if w == lineIdx {
				continue
			}
			attachContextLine(&c, lines[w])
		}
		fillWebsiteFromEmailDomain(&c)
		contacts = append(contacts, c)
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
		Stats:    Stats{"method": "email_anchored_context", "emails_found": len(emailLines)},
	}
}

// attachContextLine tries an explicit label match first, falling back to
// shape-based guesses (phone digit pattern, website scheme) for context
// lines that carry no label at all.
func attachContextLine(c *domain.CandidateContact, line string) {
	if field, value, ok := matchLabelLine(line); ok {
		applyField(c, field, value)
		return
	}

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}
	if c.Phone == "" {
		if v, ok := cleaning.CleanPhone(trimmed); ok {
			c.Phone = v
			return
		}
	}
	if c.Website == "" && urlGuessShape.MatchString(trimmed) {
		if v, ok := cleaning.CleanWebsite(trimmed); ok {
			c.Website = v
			return
		}
	}
	// A country/legal-entity check runs before the name guess: "Acme Ltd" and
	// "New York, USA" both satisfy CleanName's charset (letters, spaces, a
	// hyphen) well enough to be mistaken for a person's name otherwise.
	if c.Country == "" {
		if country, ok := cleaning.FindCountryName(trimmed); ok {
			c.Country = country
			return
		}
	}
	if c.Company == "" && cleaning.HasLegalEntitySuffix(trimmed) {
		if v, ok := cleaning.CleanCompany(trimmed); ok {
			c.Company = v
			return
		}
	}
	if c.Name == "" {
		if v, ok := cleaning.CleanName(trimmed); ok {
			c.Name = v
		}
	}
}

// fillWebsiteFromEmailDomain derives a company website from the contact's
// own email domain when context lines supplied none, skipping generic
// consumer mailbox providers that don't identify a company.
func fillWebsiteFromEmailDomain(c *domain.CandidateContact) {
	if c.Website != "" || c.Email == "" {
		return
	}
	at := strings.LastIndex(c.Email, "@")
	if at < 0 || at == len(c.Email)-1 {
		return
	}
	emailDomain := c.Email[at+1:]
	if cleaning.IsGenericMailDomain(emailDomain) {
		return
	}
	if v, ok := cleaning.CleanWebsite(emailDomain); ok {
		c.Website = v
	}
}

func applyField(c *domain.CandidateContact, field lexicon.Field, value string) {
	switch field {
	case lexicon.FieldName:
		if v, ok := cleaning.CleanName(value); ok {
			c.Name = v
		}
	case lexicon.FieldCompany:
		if v, ok := cleaning.CleanCompany(value); ok {
			c.Company = v
		}
	case lexicon.FieldPhone:
		if v, ok := cleaning.CleanPhone(value); ok {
			c.Phone = v
		}
	case lexicon.FieldWebsite:
		if v, ok := cleaning.CleanWebsite(value); ok {
			c.Website = v
		}
	case lexicon.FieldTitle:
		c.Title = cleaning.CleanWhitespace(value)
	case lexicon.FieldCountry:
		c.Country = cleaning.CleanWhitespace(value)
	case lexicon.FieldCity:
		c.City = cleaning.CleanWhitespace(value)
	case lexicon.FieldAddress:
		c.Address = cleaning.CleanWhitespace(value)
	}
}
