package collab

import (
	"context"
	"testing"
)

func TestMXMailboxVerifierValidDomain(t *testing.T) {
	v := NewMXMailboxVerifier()
	result, err := v.Verify(context.Background(), "test@gmail.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status == "invalid" {
		t.Skip("DNS resolution unavailable in this environment")
	}
}

func TestMXMailboxVerifierNoSuchDomain(t *testing.T) {
	v := NewMXMailboxVerifier()
	result, err := v.Verify(context.Background(), "test@thisisnotarealdomainxyz123.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != "invalid" {
		t.Errorf("expected invalid for non-existent domain, got %s", result.Status)
	}
}

func TestMXMailboxVerifierBadFormat(t *testing.T) {
	v := NewMXMailboxVerifier()
	result, err := v.Verify(context.Background(), "not-an-email")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != "invalid" {
		t.Errorf("expected invalid for malformed address, got %s", result.Status)
	}
}
