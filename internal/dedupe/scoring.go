package dedupe

import (
	"strings"

	"github.com/ignite/contactminer/internal/cleaning"
)

// FieldScore computes the per-field "informativeness" score used to pick the
// best value among several candidates for the same email, grounded on the
// teacher's computeQualityScore (internal/datanorm/value_normalizer.go):
// an additive/subtractive base score per signal, generalized from subscriber
// quality to contact field quality.
func FieldScore(field, value string) int {
	if value == "" {
		return 0
	}
	score := 10 // base: non-empty

	switch field {
	case "name":
		if l := len(value); l >= 5 && l <= 50 {
			score += 20
		}
		if strings.Contains(value, " ") {
			score += 15
		}
		if cleaning.ContainsLabelKeyword(value) {
			score -= 30
		}
		if strings.ContainsAny(value, "@:;,") {
			score -= 20
		}
	case "company":
		if l := len(value); l >= 3 && l <= 100 {
			score += 20
		}
		if cleaning.HasLegalEntitySuffix(value) {
			score += 15
		}
		if strings.Contains(value, "@") {
			score -= 25
		}
		if cleaning.ContainsLabelKeyword(value) {
			score -= 30
		}
	case "phone":
		digits := countDigits(value)
		if digits >= 10 && digits <= 15 {
			score += 20
		}
		if strings.HasPrefix(value, "+") {
			score += 10
		}
		if noiseToDigitRatioExcessive(value) {
			score -= 10
		}
	case "website":
		lower := strings.ToLower(value)
		switch {
		case strings.HasPrefix(lower, "https://"):
			score += 15
		case strings.HasPrefix(lower, "http://"):
			score += 10
		}
		if cleaning.HasDocFileSuffix(value) {
			score -= 30
		}
		if strings.Contains(lower, "www.") {
			score += 5
		}
	case "country", "city", "title":
		if len(value) > 0 && len(value) <= 30 {
			score += 15
		}
		if cleaning.ContainsLabelKeyword(value) {
			score -= 30
		}
	}
	return score
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// noiseToDigitRatioExcessive flags phone values where non-digit characters
// heavily outnumber digits, a sign of corrupted OCR/scrape noise.
func noiseToDigitRatioExcessive(s string) bool {
	digits := countDigits(s)
	if digits == 0 {
		return true
	}
	noise := len(s) - digits
	return noise > digits
}
