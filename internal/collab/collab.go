// Package collab declares the narrow collaborator interfaces the mining
// pipeline depends on but does not own: page rendering, LLM extraction, and
// mailbox verification. Concrete defaults live alongside each interface
// (HTTPPageRenderer over internal/pkg/httpretry, BedrockLLMClient,
// MXMailboxVerifier); none of them is wrapped in a circuit breaker here.
package collab

import "context"

// PageRenderer fetches a URL and returns its rendered (or raw) HTML body.
// The DOM-block miner and the mining engine's one-time URL pre-render are
// its callers.
type PageRenderer interface {
	Render(ctx context.Context, url string) (html string, err error)
}

// LLMClient sends a prompt to a large language model and returns its raw
// text completion. The AI-extractor miner is the only caller; it is
// responsible for tolerant parsing of the response.
type LLMClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// MailboxVerifier checks a single mailbox's deliverability. The
// verification worker makes one Verify call per task; MXMailboxVerifier's
// MX lookup is itself an implementation, not a separate prefilter phase.
type MailboxVerifier interface {
	Verify(ctx context.Context, email string) (VerifyResult, error)
}

// VerifyResult is the outcome of a single mailbox check.
type VerifyResult struct {
	Status   string // matches domain.VerificationStatus values
	RawCode  string
	Message  string
}
