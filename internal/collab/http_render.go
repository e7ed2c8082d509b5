package collab

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/ignite/contactminer/internal/pkg/httpretry"
)

// HTTPPageRenderer fetches a URL's raw HTML over HTTP with retry/back-off,
// grounded on the teacher's internal/pkg/httpretry.RetryClient. It never
// executes JavaScript; pages that require client-side rendering are out of
// this implementation's reach and surface as whatever static markup the
// server returns — callers that need a headless-browser render supply their
// own PageRenderer instead.
type HTTPPageRenderer struct {
	client *httpretry.RetryClient
}

// NewHTTPPageRenderer wraps the given HTTPDoer (nil for a default 30s
// *http.Client) in a retrying renderer.
func NewHTTPPageRenderer(doer httpretry.HTTPDoer, maxRetries int) *HTTPPageRenderer {
	return &HTTPPageRenderer{client: httpretry.NewRetryClient(doer, maxRetries)}
}

func (r *HTTPPageRenderer) Render(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("collab: build render request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("collab: render fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("collab: render fetch returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("collab: read render body: %w", err)
	}
	return string(body), nil
}

var _ PageRenderer = (*HTTPPageRenderer)(nil)
