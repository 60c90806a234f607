package httpprobe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Probe implements domain.HeaderFetcher with a single GET request.
type Probe struct {
	client *http.Client
}

// New returns a probe. A zero timeout leaves deadlines to the caller's context.
func New(timeout time.Duration) *Probe {
	return &Probe{client: &http.Client{Timeout: timeout}}
}

func (p *Probe) FetchHeaders(ctx context.Context, url string) (http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", "archfit")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", url, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))

	return resp.Header, nil
}
