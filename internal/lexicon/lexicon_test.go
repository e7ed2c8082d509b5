package lexicon

import "testing"

func TestFieldFor(t *testing.T) {
	tests := []struct {
		label string
		want  Field
		ok    bool
	}{
		{"Company", FieldCompany, true},
		{"  company name  ", FieldCompany, true},
		{"Firma", FieldCompany, true},
		{"Şirket", FieldCompany, true},
		{"Email Address", FieldEmail, true},
		{"E-posta", FieldEmail, true},
		{"Phone Number", FieldPhone, true},
		{"Website", FieldWebsite, true},
		{"Job Title", FieldTitle, true},
		{"", "", false},
		{"unrecognized garbage", "", false},
	}
	for _, tt := range tests {
		got, ok := FieldFor(tt.label)
		if ok != tt.ok || got != tt.want {
			t.Errorf("FieldFor(%q) = (%q, %v), want (%q, %v)", tt.label, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFieldForDeclarationOrderTieBreak(t *testing.T) {
	// "company" appears before "name" in declaration order; a label text
	// containing both surface forms must resolve to company.
	got, ok := FieldFor("company name")
	if !ok || got != FieldCompany {
		t.Errorf("expected company to win tie, got %q ok=%v", got, ok)
	}
}

func TestLabelsAllCoversEveryField(t *testing.T) {
	seen := map[Field]bool{}
	for _, ls := range LabelsAll() {
		seen[ls.Field] = true
	}
	for _, f := range fieldOrder {
		if !seen[f] {
			t.Errorf("field %q has no surface forms in LabelsAll()", f)
		}
	}
}

func TestLabelLinePatternAnchorsAndTerminates(t *testing.T) {
	re := LabelLinePattern("email")
	if re == nil {
		t.Fatal("expected pattern for \"email\"")
	}
	cases := []struct {
		in    string
		match bool
	}{
		{"Email: jane@acme.com", true},
		{"  email - jane@acme.com", true},
		{"notanemail: foo", false},
		{"prefix Email: foo", false}, // not anchored at line start
	}
	for _, c := range cases {
		if got := re.MatchString(c.in); got != c.match {
			t.Errorf("MatchString(%q) = %v, want %v", c.in, got, c.match)
		}
	}
}
