package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openkraft/archfit/internal/domain"
	"github.com/openkraft/archfit/internal/domain/headers"
)

// HeaderCheck audits the security headers of a single response.
type HeaderCheck struct {
	fetcher domain.HeaderFetcher
}

func NewHeaderCheck(fetcher domain.HeaderFetcher) *HeaderCheck {
	return &HeaderCheck{fetcher: fetcher}
}

func (c *HeaderCheck) Name() string    { return domain.CheckHeaders }
func (c *HeaderCheck) Mandatory() bool { return true }

func (c *HeaderCheck) Run(ctx context.Context, _ string, cfg domain.Config) domain.CheckOutcome {
	ctx, cancel := withTimeout(ctx, cfg.Timeout)
	defer cancel()

	h, err := c.fetcher.FetchHeaders(ctx, cfg.AppURL)
	if err != nil {
		msg := fmt.Sprintf("Security headers check failed: %v", err)
		return fail(c.Name(), msg, true, nil, details(domain.StatusFail, []string{msg}))
	}

	results := headers.Audit(h, cfg.Headers)
	failures := headers.Failures(results)
	slog.Debug("audited headers", "url", cfg.AppURL, "required", len(results), "failed", len(failures))

	lines := make([]domain.Detail, 0, len(results))
	for _, r := range results {
		status := domain.StatusPass
		if !r.Passed {
			status = domain.StatusFail
		}
		lines = append(lines, domain.Detail{Status: status, Message: r.String()})
	}

	if len(failures) == 0 {
		return pass(c.Name(), "Security headers check passed", true, lines)
	}
	items := make([]string, 0, len(failures))
	for _, r := range failures {
		items = append(items, r.String())
	}
	return fail(c.Name(), "Security headers check failed", true, items, lines)
}
