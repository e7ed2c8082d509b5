package cleaning

import "strings"

// emailBlacklist is a slice of substrings, in the spirit of the teacher's
// skipColumns blacklist (internal/datanorm/column_mapper.go), but targets
// email values rather than column headers.
var emailBlacklist = []string{
	".png", ".jpg", ".jpeg", ".gif", ".svg", ".bmp", ".webp",
	"example.com", "example.org", "example.net",
	"noreply", "no-reply", "donotreply", "do-not-reply",
	"test@test", "sentry.io", "wixpress.com",
}

// IsEmailBlacklisted reports whether a cleaned (lowercased) email matches a
// blacklist substring.
func IsEmailBlacklisted(email string) bool {
	lower := strings.ToLower(email)
	for _, bad := range emailBlacklist {
		if strings.Contains(lower, bad) {
			return true
		}
	}
	return false
}

// docFileSuffixes are website/document extensions that disqualify a URL from
// being treated as a company website.
var docFileSuffixes = []string{
	"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "csv", "zip", "rar",
}

// HasDocFileSuffix reports whether host/path ends in a known document
// extension.
func HasDocFileSuffix(pathOrHost string) bool {
	lower := strings.ToLower(pathOrHost)
	idx := strings.LastIndex(lower, ".")
	if idx < 0 {
		return false
	}
	suffix := lower[idx+1:]
	for _, s := range docFileSuffixes {
		if suffix == s {
			return true
		}
	}
	return false
}

// socialMediaHosts are websites that are never a company's own site — the
// Field Cleaner rejects them, and miners treat them as "not a real website".
var socialMediaHosts = map[string]bool{
	"facebook.com": true, "www.facebook.com": true,
	"twitter.com": true, "www.twitter.com": true, "x.com": true,
	"linkedin.com": true, "www.linkedin.com": true,
	"instagram.com": true, "www.instagram.com": true,
	"youtube.com": true, "www.youtube.com": true,
	"tiktok.com": true, "www.tiktok.com": true,
	"pinterest.com": true, "www.pinterest.com": true,
}

// IsSocialMediaHost reports whether host is a known social-media domain.
func IsSocialMediaHost(host string) bool {
	return socialMediaHosts[strings.ToLower(host)]
}

// genericMailProviders are mailbox domains that do not identify a company;
// the Unstructured Miner avoids deriving a company name from them.
var genericMailProviders = map[string]bool{
	"gmail.com": true, "googlemail.com": true, "yahoo.com": true,
	"outlook.com": true, "hotmail.com": true, "live.com": true,
	"icloud.com": true, "me.com": true, "aol.com": true,
	"protonmail.com": true, "gmx.com": true, "mail.com": true,
	"yandex.com": true, "zoho.com": true,
}

// IsGenericMailDomain reports whether domain is a generic consumer mail
// provider rather than a company-owned domain.
func IsGenericMailDomain(domain string) bool {
	return genericMailProviders[strings.ToLower(domain)]
}

// legalEntitySuffixes mark a string as company-shaped.
var legalEntitySuffixes = []string{
	"inc", "inc.", "llc", "llc.", "ltd", "ltd.", "limited", "corp", "corp.",
	"corporation", "co.", "company", "gmbh", "ag", "s.a.", "sa", "plc",
	"a.ş.", "a.s.", "srl", "s.r.l.", "bv", "b.v.", "oy", "ab", "kft",
}

// HasLegalEntitySuffix reports whether s ends with (case-insensitively, and
// tolerating a trailing comma/period) a recognized legal-entity suffix.
func HasLegalEntitySuffix(s string) bool {
	lower := strings.ToLower(strings.TrimRight(strings.TrimSpace(s), ".,"))
	for _, suf := range legalEntitySuffixes {
		suf = strings.TrimSuffix(suf, ".")
		if strings.HasSuffix(lower, suf) {
			// require a preceding space or the whole string (avoid matching mid-word)
			if len(lower) == len(suf) {
				return true
			}
			if idx := len(lower) - len(suf) - 1; idx >= 0 && lower[idx] == ' ' {
				return true
			}
		}
	}
	return false
}

// labelKeywords flag a cleaned value as still containing its own label
// ("Name:", "Company -"), used by the Deduplicator's scoring penalties.
var labelKeywords = []string{"name", "company", "email", "phone", "title", "country", "city", "address", "website"}

// ContainsLabelKeyword reports whether s contains one of the generic label
// words the Field Cleaners are supposed to have stripped.
func ContainsLabelKeyword(s string) bool {
	lower := strings.ToLower(s)
	for _, kw := range labelKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
