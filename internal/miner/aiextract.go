package miner

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/ignite/contactminer/internal/cleaning"
	"github.com/ignite/contactminer/internal/domain"
)

var errNoLLM = errors.New("miner: no LLM client configured")

// aiExtractSystemPrompt instructs the LLM to return a single JSON object
// matching §4.3.5's named schema and nothing else. The miner still parses
// tolerantly since models routinely wrap JSON in prose or markdown fences
// despite instructions.
const aiExtractSystemPrompt = `Extract one person's contact details from the given text. ` +
	`Respond with a single JSON object only, no prose, no markdown fences. ` +
	`It must have exactly these fields, each a string or null if unknown: ` +
	`company_name, contact_name, job_title, email, phone, address, city, state, country, website.`

// aiExtractRateLimitDelay is the small per-block pause §4.3.5 requires to
// stay under the provider's rate limit when the engine drives this miner
// across many blocks of the same page/document.
const aiExtractRateLimitDelay = 250 * time.Millisecond

// AIExtractor delegates extraction to a large language model collaborator
// for text too irregular for the other miners to parse reliably, then
// parses the model's response tolerantly (markdown fences, leading prose)
// before running every field through the same cleaners every other miner
// uses, grounded on the teacher's internal/agent/bedrock_agent.go Bedrock
// Converse wrapper generalized from chat replies to structured extraction.
type AIExtractor struct{}

func NewAIExtractor() *AIExtractor { return &AIExtractor{} }

func (m *AIExtractor) ID() ID { return IDAIExtractor }

func (m *AIExtractor) Mine(ctx context.Context, input Input) Bundle {
	if input.LLM == nil {
		return Bundle{Miner: m.ID(), Status: StatusError, Err: errNoLLM}
	}

	raw, err := input.LLM.Complete(ctx, aiExtractSystemPrompt, input.Text)

	select {
	case <-ctx.Done():
	case <-time.After(aiExtractRateLimitDelay):
	}

	if err != nil {
		return Bundle{Miner: m.ID(), Status: StatusBlocked, Err: err}
	}

	row, err := parseExtractionJSON(raw)
	if err != nil {
		return Bundle{Miner: m.ID(), Status: StatusError, Err: err, Stats: Stats{"method": "ai_extractor"}}
	}

	var contacts []domain.CandidateContact
	if c, ok := rowToCleanContact(row); ok {
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
		Stats:    Stats{"method": "ai_extractor"},
	}
}

var (
	jsonFence   = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	jsonObjGrab = regexp.MustCompile(`(?s)\{.*\}`)
)

// parseExtractionJSON strips markdown fences and any leading/trailing prose
// around the JSON object before unmarshaling, since LLMs frequently add
// commentary despite being told not to. If a direct parse fails, the first
// "{…}" substring is extracted and retried, per §4.3.5.
func parseExtractionJSON(raw string) (map[string]string, error) {
	s := strings.TrimSpace(raw)
	if fence := jsonFence.FindStringSubmatch(s); fence != nil {
		s = fence[1]
	}

	var row map[string]string
	err := json.Unmarshal([]byte(s), &row)
	if err == nil {
		return row, nil
	}

	if grabbed := jsonObjGrab.FindString(s); grabbed != "" {
		if err := json.Unmarshal([]byte(grabbed), &row); err == nil {
			return row, nil
		}
	}
	return nil, err
}

func rowToCleanContact(row map[string]string) (domain.CandidateContact, bool) {
	c := domain.CandidateContact{}
	email, ok := cleaning.CleanEmail(row["email"])
	if !ok {
		return c, false
	}
	c.Email = email
	if v, ok := cleaning.CleanName(row["contact_name"]); ok {
		c.Name = v
	}
	if v, ok := cleaning.CleanCompany(row["company_name"]); ok {
		c.Company = v
	}
	if v, ok := cleaning.CleanPhone(row["phone"]); ok {
		c.Phone = v
	}
	if v, ok := cleaning.CleanWebsite(row["website"]); ok {
		c.Website = v
	}
	c.Title = cleaning.CleanWhitespace(row["job_title"])
	c.Country = cleaning.CleanWhitespace(row["country"])
	c.City = cleaning.CleanWhitespace(row["city"])
	c.Address = combineAddressAndState(row["address"], row["state"])
	return c, true
}

// combineAddressAndState folds the schema's separate "state" field into
// Address, the nearest field domain.CandidateContact has for it.
func combineAddressAndState(address, state string) string {
	address = cleaning.CleanWhitespace(address)
	state = cleaning.CleanWhitespace(state)
	switch {
	case address == "":
		return state
	case state == "":
		return address
	default:
		return address + ", " + state
	}
}
