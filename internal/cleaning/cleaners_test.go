package cleaning

import "testing"

func TestCleanEmail(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantOK  bool
	}{
		{"Email: Jane@Acme.com,", "jane@acme.com", true},
		{"contact me at jane@acme.com.", "jane@acme.com", true},
		{"photo.png", "", false},
		{"noreply@acme.com", "", false},
		{"no email here", "", false},
	}
	for _, tt := range tests {
		got, ok := CleanEmail(tt.raw)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("CleanEmail(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCleanPhone(t *testing.T) {
	tests := []struct {
		raw    string
		wantOK bool
	}{
		{"+1 212 555 0100", true},
		{"2125550100", true},
		{"123", false},                    // too few digits
		{"12345678901234567890", false},   // too many digits (20 > 15)
		{"call me maybe", false},
	}
	for _, tt := range tests {
		_, ok := CleanPhone(tt.raw)
		if ok != tt.wantOK {
			t.Errorf("CleanPhone(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
		}
	}
}

func TestCleanWebsite(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"acme.com", "https://www.acme.com", true},
		{"https://acme.com/about", "https://acme.com/about", true},
		{"facebook.com/acme", "", false},
		{"brochure.pdf", "", false},
	}
	for _, tt := range tests {
		got, ok := CleanWebsite(tt.raw)
		if ok != tt.wantOK {
			t.Errorf("CleanWebsite(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("CleanWebsite(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"JANE SMITH", "Jane Smith", true},
		{"jane smith", "Jane Smith", true},
		{"Jane Smith", "Jane Smith", true},
		{"a", "", false},                // too short
		{"jane123", "", false},          // disallowed chars
		{"Süer AY", "Süer AY", true},    // mixed case, diacritic preserved
	}
	for _, tt := range tests {
		got, ok := CleanName(tt.raw)
		if ok != tt.wantOK {
			t.Errorf("CleanName(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("CleanName(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCleanCompany(t *testing.T) {
	got, ok := CleanCompany("ACME LTD")
	if !ok || got != "Acme Ltd" {
		t.Errorf("CleanCompany(ACME LTD) = (%q, %v)", got, ok)
	}
	if _, ok := CleanCompany("jane@acme.com"); ok {
		t.Error("expected company containing @ to be rejected")
	}
}

func TestCleanWhitespace(t *testing.T) {
	if got := CleanWhitespace("  USA  \n  "); got != "USA" {
		t.Errorf("CleanWhitespace = %q", got)
	}
}
