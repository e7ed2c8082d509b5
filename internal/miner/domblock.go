package miner

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ignite/contactminer/internal/domain"
)

var errNoRenderer = errors.New("miner: no page renderer configured")

// Length bounds and caps for the ordered block-detection strategies, §4.3.4.
const (
	tdCellMinLen     = 50
	classHintMinLen  = 30
	classHintMaxLen  = 3000
	fallbackMinLen   = 30
	fallbackMaxLen   = 1500
	maxBlocksPerPage = 50
	dedupPrefixLen   = 80
)

// classHintSelectors are generic class-name hints a team/contact page's
// markup commonly carries on its repeating cards.
var classHintSelectors = []string{".card", ".contact", ".member", ".profile", ".bio", ".staff"}

// profileContainerSelectors are more specific directory/profile-listing
// container shapes, tried once the looser class-hint pass finds nothing.
var profileContainerSelectors = []string{
	".team-member", ".staff-card", ".person-card", ".contact-card",
	"[itemtype*='Person']", "article.person", "li.team-member",
	".directory-item", ".profile-card",
}

var phoneWithContext = regexp.MustCompile(`(?i)(phone|tel|call|mobile)[^0-9]{0,10}\d[\d\s\-.()]{6,}\d`)

// profileLinkPath matches the URL shape of an individual member/profile page
// linked from a directory listing, for optional second-pass crawling.
var profileLinkPath = regexp.MustCompile(`(?i)/(member|profile|user|author)s?/`)

// DOMBlock mines a rendered page by locating repeating block-level elements
// that look like a person card, then treating each block's text as input to
// the same label/context scanning the Unstructured and Structured miners
// use, the way the teacher's ISP agent learner
// (internal/api/isp_agent_learner.go) walks goquery selections over fetched
// pages rather than regexing the raw HTML.
type DOMBlock struct {
	unstructured *Unstructured
	structured   *Structured
}

func NewDOMBlock() *DOMBlock {
	return &DOMBlock{unstructured: NewUnstructured(), structured: NewStructured()}
}

func (m *DOMBlock) ID() ID { return IDDOMBlock }

func (m *DOMBlock) Mine(ctx context.Context, input Input) Bundle {
	if input.Render == nil {
		return Bundle{Miner: m.ID(), Status: StatusError, Err: errNoRenderer}
	}
	html, err := input.Render.Render(ctx, input.URL)
	if err != nil {
		return Bundle{Miner: m.ID(), Status: StatusBlocked, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Bundle{Miner: m.ID(), Status: StatusError, Err: err}
	}

	strategy, blocks := selectBlockTexts(doc)
	profileLinks := harvestProfileLinks(doc)

	var contacts []domain.CandidateContact
	for _, text := range blocks {
		bundle := m.structured.Mine(ctx, Input{Text: text})
		if len(bundle.Contacts) == 0 {
			bundle = m.unstructured.Mine(ctx, Input{Text: text})
		}
		for _, c := range bundle.Contacts {
			c.Raw = text
			contacts = append(contacts, c)
		}
	}

	if len(contacts) == 0 {
		// No block structure recognized; fall back to scanning the whole
		// page body as unstructured text.
		bundle := m.unstructured.Mine(ctx, Input{Text: doc.Text()})
		contacts = bundle.Contacts
		strategy = "body_fallback"
	}

	contacts = tagContacts(m.ID(), contacts)
	status := StatusSuccess
	if len(contacts) == 0 {
		status = StatusPartial
	}
	stats := Stats{
		"method":              "dom_block",
		"strategy":            strategy,
		"blocks_found":        len(blocks),
		"profile_links_found": len(profileLinks),
	}
	if len(profileLinks) > 0 {
		stats["profile_links"] = profileLinks
	}
	return Bundle{
		Miner:    m.ID(),
		Status:   status,
		Contacts: contacts,
		Stats:    stats,
	}
}

// selectBlockTexts runs §4.3.4's four block-detection strategies in order,
// stopping at the first one that yields any blocks.
func selectBlockTexts(doc *goquery.Document) (string, []string) {
	if texts := dedupAndCap(tdCellTexts(doc)); len(texts) > 0 {
		return "td_cells", texts
	}
	if texts := dedupAndCap(classHintTexts(doc)); len(texts) > 0 {
		return "class_hints", texts
	}
	if texts := dedupAndCap(profileContainerTexts(doc)); len(texts) > 0 {
		return "profile_container", texts
	}
	if texts := dedupAndCap(genericFallbackTexts(doc)); len(texts) > 0 {
		return "generic_fallback", texts
	}
	return "", nil
}

// tdCellTexts is strategy 1: table cells long enough to carry more than a
// label, that look contact-bearing.
func tdCellTexts(doc *goquery.Document) []string {
	var out []string
	doc.Find("td").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if len(text) <= tdCellMinLen {
			return
		}
		if looksContactBearing(text) {
			out = append(out, text)
		}
	})
	return out
}

func looksContactBearing(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(text, "@") || strings.Contains(lower, "address") || strings.Contains(lower, "phone")
}

// classHintTexts is strategy 2: generic card-shaped elements bearing an
// email or a phone number with surrounding context.
func classHintTexts(doc *goquery.Document) []string {
	var out []string
	for _, sel := range classHintSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) < classHintMinLen || len(text) > classHintMaxLen {
				return
			}
			if strings.Contains(text, "@") || phoneWithContext.MatchString(text) {
				out = append(out, text)
			}
		})
	}
	return out
}

// profileContainerTexts is strategy 3: known directory/profile-listing
// container shapes, collected unfiltered beyond being non-empty.
func profileContainerTexts(doc *goquery.Document) []string {
	var out []string
	for _, sel := range profileContainerSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if text := strings.TrimSpace(s.Text()); text != "" {
				out = append(out, text)
			}
		})
	}
	return out
}

// genericFallbackTexts is strategy 4: any block-level element in the right
// size range that contains an email, when nothing more specific matched.
func genericFallbackTexts(doc *goquery.Document) []string {
	var out []string
	doc.Find("div, li, article, section, p").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if len(text) < fallbackMinLen || len(text) > fallbackMaxLen {
			return
		}
		if strings.Contains(text, "@") {
			out = append(out, text)
		}
	})
	return out
}

// harvestProfileLinks is strategy 5, run independently of which block
// strategy (if any) produced contacts: member/profile/user/author page links
// worth a second-pass crawl.
func harvestProfileLinks(doc *goquery.Document) []string {
	var out []string
	seen := map[string]bool{}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || seen[href] || !profileLinkPath.MatchString(href) {
			return
		}
		seen[href] = true
		out = append(out, href)
	})
	return out
}

// dedupAndCap drops blocks that share a normalized text prefix with one
// already kept, then caps the result at 50 blocks per page.
func dedupAndCap(texts []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range texts {
		key := normalizedPrefix(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
		if len(out) >= maxBlocksPerPage {
			break
		}
	}
	return out
}

func normalizedPrefix(s string) string {
	norm := strings.Join(strings.Fields(strings.ToLower(s)), " ")
	if len(norm) > dedupPrefixLen {
		norm = norm[:dedupPrefixLen]
	}
	return norm
}
