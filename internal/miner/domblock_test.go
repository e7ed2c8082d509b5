package miner

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
)

type fakeRenderer struct {
	html string
	err  error
}

func (f fakeRenderer) Render(ctx context.Context, url string) (string, error) {
	return f.html, f.err
}

func TestDOMBlockMinesRepeatingCards(t *testing.T) {
	html := "<html><body>" +
		"<div class=\"team-member\">Jane Smith\njane@acme.com</div>" +
		"<div class=\"team-member\">Bob Jones\nbob@beta.com</div>" +
		"</body></html>"
	b := NewDOMBlock().Mine(context.Background(), Input{URL: "https://acme.com/team", Render: fakeRenderer{html: html}})
	if len(b.Contacts) != 2 {
		t.Fatalf("expected 2 contacts from team-member blocks, got %d: %+v", len(b.Contacts), b.Contacts)
	}
}

func TestDOMBlockFallsBackToBodyTextWithNoBlocks(t *testing.T) {
	html := `<html><body><p>Contact us: jane@acme.com</p></body></html>`
	b := NewDOMBlock().Mine(context.Background(), Input{URL: "https://acme.com", Render: fakeRenderer{html: html}})
	if len(b.Contacts) != 1 || b.Contacts[0].Email != "jane@acme.com" {
		t.Fatalf("expected body fallback to find the single email, got %+v", b.Contacts)
	}
}

func TestDOMBlockTDCellStrategy(t *testing.T) {
	html := "<html><body><table>" +
		"<tr><td>Jane Smith, Head of Sales. Reach her at jane@acme.com or by phone during business hours.</td></tr>" +
		"<tr><td>Bob Jones, Head of Support. Contact bob@beta.com or by phone for urgent issues.</td></tr>" +
		"</table></body></html>"
	b := NewDOMBlock().Mine(context.Background(), Input{URL: "https://acme.com/team", Render: fakeRenderer{html: html}})
	if b.Stats["strategy"] != "td_cells" {
		t.Fatalf("expected td_cells strategy, got %v (contacts=%+v)", b.Stats["strategy"], b.Contacts)
	}
	if len(b.Contacts) != 2 {
		t.Fatalf("expected 2 contacts from td cells, got %d: %+v", len(b.Contacts), b.Contacts)
	}
}

func TestDOMBlockClassHintStrategy(t *testing.T) {
	html := "<html><body>" +
		"<div class=\"card\">Jane Smith - Sales Lead\njane@acme.com</div>" +
		"<div class=\"card\">Bob Jones - Support Lead\nbob@beta.com</div>" +
		"</body></html>"
	b := NewDOMBlock().Mine(context.Background(), Input{URL: "https://acme.com/team", Render: fakeRenderer{html: html}})
	if b.Stats["strategy"] != "class_hints" {
		t.Fatalf("expected class_hints strategy, got %v", b.Stats["strategy"])
	}
	if len(b.Contacts) != 2 {
		t.Fatalf("expected 2 contacts from .card blocks, got %d: %+v", len(b.Contacts), b.Contacts)
	}
}

func TestDOMBlockHarvestsProfileLinks(t *testing.T) {
	html := "<html><body>" +
		"<p>Contact us: jane@acme.com</p>" +
		"<a href=\"/team/profile/jane-smith\">Jane</a>" +
		"<a href=\"/about\">About</a>" +
		"</body></html>"
	b := NewDOMBlock().Mine(context.Background(), Input{URL: "https://acme.com", Render: fakeRenderer{html: html}})
	if b.Stats["profile_links_found"] != 1 {
		t.Fatalf("expected 1 harvested profile link, got %v", b.Stats["profile_links_found"])
	}
}

func TestDOMBlockCapsAt50Blocks(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 75; i++ {
		sb.WriteString("<div class=\"card\">Team Member Profile ")
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString("\nperson")
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString("@acme.com</div>")
	}
	sb.WriteString("</body></html>")
	b := NewDOMBlock().Mine(context.Background(), Input{URL: "https://acme.com/team", Render: fakeRenderer{html: sb.String()}})
	if got := b.Stats["blocks_found"]; got != 50 {
		t.Fatalf("expected block cap of 50, got %v", got)
	}
}

func TestDOMBlockNoRendererErrors(t *testing.T) {
	b := NewDOMBlock().Mine(context.Background(), Input{URL: "https://acme.com"})
	if b.Status != StatusError {
		t.Errorf("expected ERROR status with no renderer, got %s", b.Status)
	}
}

func TestDOMBlockRenderFailureIsBlocked(t *testing.T) {
	b := NewDOMBlock().Mine(context.Background(), Input{URL: "https://acme.com", Render: fakeRenderer{err: errors.New("timeout")}})
	if b.Status != StatusBlocked {
		t.Errorf("expected BLOCKED status on render failure, got %s", b.Status)
	}
}
