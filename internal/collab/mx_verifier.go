package collab

import (
	"context"
	"net"
	"strings"
)

// MXMailboxVerifier is a free, local MailboxVerifier that only confirms the
// recipient domain resolves an MX record, grounded on the teacher's
// internal/worker/email_verifier.go checkMX pre-filter phase. It never
// confirms a mailbox actually exists at the provider; a deployment that
// needs that wraps a paid verification API behind the same interface
// instead, the way the teacher's EmailVerifier.verifyAPIBatch layers a
// provider call on top of its own MX pre-filter.
type MXMailboxVerifier struct {
	resolver *net.Resolver
}

func NewMXMailboxVerifier() *MXMailboxVerifier {
	return &MXMailboxVerifier{resolver: &net.Resolver{}}
}

func (m *MXMailboxVerifier) Verify(ctx context.Context, email string) (VerifyResult, error) {
	parts := strings.SplitN(email, "@", 2)
	if len(parts) != 2 || parts[1] == "" {
		return VerifyResult{Status: "invalid", Message: "malformed address"}, nil
	}
	records, err := m.resolver.LookupMX(ctx, parts[1])
	if err != nil || len(records) == 0 {
		return VerifyResult{Status: "invalid", Message: "no MX record"}, nil
	}
	return VerifyResult{Status: "unknown", Message: "mx_valid"}, nil
}

var _ MailboxVerifier = (*MXMailboxVerifier)(nil)
