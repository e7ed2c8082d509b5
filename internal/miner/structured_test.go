package miner

import (
	"context"
	"testing"
)

func TestStructuredMinesLabelLines(t *testing.T) {
	text := "Name: Jane Smith\nCompany: Acme Ltd\nEmail: jane@acme.com\nPhone: +1 212 555 0100\n"
	b := NewStructured().Mine(context.Background(), Input{Text: text})
	if len(b.Contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(b.Contacts))
	}
	c := b.Contacts[0]
	if c.Email != "jane@acme.com" || c.Name != "Jane Smith" || c.Company != "Acme Ltd" {
		t.Errorf("unexpected contact: %+v", c)
	}
	if !c.HasSource("structured") {
		t.Error("expected structured source tag")
	}
}

func TestStructuredCompanyRetriggerStartsNewCandidate(t *testing.T) {
	text := "Company: Acme Ltd\nEmail: jane@acme.com\nCompany: Beta Inc\nEmail: bob@beta.com\n"
	b := NewStructured().Mine(context.Background(), Input{Text: text})
	if len(b.Contacts) != 2 {
		t.Fatalf("expected 2 contacts from company retrigger, got %d", len(b.Contacts))
	}
	if b.Contacts[0].Company != "Acme Ltd" || b.Contacts[1].Company != "Beta Inc" {
		t.Errorf("unexpected company split: %+v", b.Contacts)
	}
}

func TestStructuredOCRColonRepair(t *testing.T) {
	text := "Email; jane@acme.com\nPhone| +1 212 555 0100\n"
	b := NewStructured().Mine(context.Background(), Input{Text: text})
	if len(b.Contacts) != 1 || b.Contacts[0].Email != "jane@acme.com" {
		t.Fatalf("expected OCR-repaired label to be mined, got %+v", b.Contacts)
	}
}

func TestStructuredSplitsCollapsedMultiLabelLine(t *testing.T) {
	text := "Name: Jane Smith Company: Acme Ltd Email: jane@acme.com"
	b := NewStructured().Mine(context.Background(), Input{Text: text})
	if len(b.Contacts) != 1 {
		t.Fatalf("expected 1 contact from collapsed line, got %d: %+v", len(b.Contacts), b.Contacts)
	}
	c := b.Contacts[0]
	if c.Name != "Jane Smith" || c.Company != "Acme Ltd" || c.Email != "jane@acme.com" {
		t.Errorf("unexpected contact from collapsed line: %+v", c)
	}
}

func TestStructuredNoLabelsYieldsPartial(t *testing.T) {
	b := NewStructured().Mine(context.Background(), Input{Text: "just some prose with no labels"})
	if b.Status != StatusPartial {
		t.Errorf("expected PARTIAL status for no matches, got %s", b.Status)
	}
}
