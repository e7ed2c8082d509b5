// Package cleaning implements the per-field normalizers described by the
// spec's Field Cleaners component: structural validation plus blacklist
// filtering, grounded on the teacher's internal/datanorm/value_normalizer.go
// (normalizeEmail/normalizeName/normalizePhone/normalizeCountry) generalized
// from subscriber-import fields to the full contact field set, plus a new
// website cleaner and markdown/control-character preamble stripping.
package cleaning

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// zeroWidthAndBidi strips zero-width and bidirectional control characters
// that corrupt copy-pasted text from PDFs and rich clients.
var zeroWidthAndBidi = regexp.MustCompile(`[\x{200B}-\x{200F}\x{202A}-\x{202E}\x{FEFF}]`)

// markdownLink matches "[text]{...}" and "[text](url)" artefacts left over
// from markdown-to-text conversion.
var markdownLink = regexp.MustCompile(`\[([^\]]*)\](?:\([^)]*\)|\{[^}]*\})`)

var htmlTag = regexp.MustCompile(`<[^>]+>`)

// StripPreamble removes zero-width/bidi controls, markdown link artefacts
// (keeping the link text) and raw HTML tags. Every field cleaner runs this
// first.
func StripPreamble(s string) string {
	s = zeroWidthAndBidi.ReplaceAllString(s, "")
	s = markdownLink.ReplaceAllString(s, "$1")
	s = htmlTag.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

var emailPattern = regexp.MustCompile(`(?i)[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)

// EmailPattern exposes the compiled email-shape pattern for miners that need
// to scan raw text for occurrences.
func EmailPattern() *regexp.Regexp { return emailPattern }

// CleanEmail extracts the first email-shaped substring, lowercases it, trims
// trailing punctuation, and rejects blacklisted addresses. ok is false if no
// usable email could be produced.
func CleanEmail(raw string) (email string, ok bool) {
	s := StripPreamble(raw)
	match := emailPattern.FindString(s)
	if match == "" {
		return "", false
	}
	match = strings.ToLower(match)
	match = strings.TrimRight(match, ",;:.")
	if IsEmailBlacklisted(match) {
		return "", false
	}
	return match, true
}

var phoneRawShape = regexp.MustCompile(`^[\d\s\+\-\(\)\.]{8,20}$`)
var digitOnly = regexp.MustCompile(`\d`)

// CleanPhone runs StripPreamble and trims trailing punctuation, then accepts
// the value only if 8-15 digits remain and the raw form matches the allowed
// phone character shape. A leading field label such as "Phone:" is not
// removed, so a value that still carries one is rejected.
func CleanPhone(raw string) (phone string, ok bool) {
	s := StripPreamble(raw)
	s = strings.TrimRight(s, ".,;: ")
	if !phoneRawShape.MatchString(s) {
		return "", false
	}
	digits := digitOnly.FindAllString(s, -1)
	if len(digits) < 8 || len(digits) > 15 {
		return "", false
	}
	return s, true
}

// CleanWebsite rejects document-file and social-media URLs, prepends a
// scheme (and "www." when absent) if missing, and requires the result to
// parse as an absolute URL.
func CleanWebsite(raw string) (website string, ok bool) {
	s := StripPreamble(raw)
	if s == "" {
		return "", false
	}
	lower := strings.ToLower(s)
	if HasDocFileSuffix(lower) {
		return "", false
	}

	if !strings.Contains(s, "://") {
		host := s
		if !strings.HasPrefix(strings.ToLower(host), "www.") {
			host = "www." + host
		}
		s = "https://" + host
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" || !u.IsAbs() {
		return "", false
	}
	if IsSocialMediaHost(u.Hostname()) {
		return "", false
	}
	if HasDocFileSuffix(u.Path) {
		return "", false
	}
	return u.String(), true
}

var allowedNameChar = regexp.MustCompile(`^[\p{L}\s.\-']+$`)

// CleanName runs StripPreamble, rejects names with disallowed characters
// or out-of-range length, and title-cases values that are fully upper or
// fully lower. A leading field label such as "Name:" is not removed.
func CleanName(raw string) (name string, ok bool) {
	s := StripPreamble(raw)
	if len(s) < 2 || len(s) > 100 {
		return "", false
	}
	if !allowedNameChar.MatchString(s) {
		return "", false
	}
	return maybeTitleCase(s), true
}

// CleanCompany runs StripPreamble, rejects out-of-range length or values
// containing "@", and title-cases fully-upper values. A leading field label
// such as "Company:" is not removed.
func CleanCompany(raw string) (company string, ok bool) {
	s := StripPreamble(raw)
	if len(s) < 2 || len(s) > 200 {
		return "", false
	}
	if strings.Contains(s, "@") {
		return "", false
	}
	if isAllUpper(s) {
		return titleCaser.String(strings.ToLower(s)), true
	}
	return s, true
}

// CleanWhitespace normalizes runs of whitespace for fields that need no
// other structural validation (country, city, title).
func CleanWhitespace(raw string) string {
	return strings.Join(strings.Fields(StripPreamble(raw)), " ")
}

func maybeTitleCase(s string) string {
	if isAllUpper(s) || isAllLower(s) {
		return titleCaser.String(strings.ToLower(s))
	}
	return s
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

func isAllLower(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}
