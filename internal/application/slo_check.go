package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openkraft/archfit/internal/domain"
	"github.com/openkraft/archfit/internal/domain/slo"
)

// QuerierFactory builds a metrics querier for a backend base URL.
type QuerierFactory func(address string) (domain.MetricsQuerier, error)

// SLOCheck evaluates each objective against the metrics backend. Per-metric
// errors are reported and the remaining objectives are still evaluated.
type SLOCheck struct {
	newQuerier QuerierFactory
}

func NewSLOCheck(newQuerier QuerierFactory) *SLOCheck {
	return &SLOCheck{newQuerier: newQuerier}
}

func (c *SLOCheck) Name() string    { return domain.CheckSLO }
func (c *SLOCheck) Mandatory() bool { return true }

func (c *SLOCheck) Run(ctx context.Context, _ string, cfg domain.Config) domain.CheckOutcome {
	q, err := c.newQuerier(cfg.PrometheusURL)
	if err != nil {
		msg := fmt.Sprintf("SLO check failed: %v", err)
		return fail(c.Name(), msg, true, nil, details(domain.StatusFail, []string{msg}))
	}

	results := make([]slo.Result, 0, len(cfg.Objectives))
	for _, o := range cfg.Objectives {
		results = append(results, slo.Evaluate(o, c.sample(ctx, q, o, cfg)))
	}

	var (
		lines    []domain.Detail
		failures []string
		noData   int
	)
	for _, r := range results {
		status := domain.StatusPass
		switch {
		case r.NoData:
			status = domain.StatusWarn
			noData++
		case r.Failed():
			status = domain.StatusFail
			failures = append(failures, r.String())
		}
		lines = append(lines, domain.Detail{Status: status, Message: r.String()})
	}

	switch {
	case len(failures) > 0:
		return fail(c.Name(), "SLO check failed", true, failures, lines)
	case noData > 0:
		return domain.CheckOutcome{
			Name:      c.Name(),
			Status:    domain.StatusWarn,
			Message:   fmt.Sprintf("SLO compliance check completed, %d of %d metrics had no data", noData, len(results)),
			Details:   lines,
			Mandatory: true,
		}
	default:
		return pass(c.Name(), "SLO compliance check completed", true, lines)
	}
}

func (c *SLOCheck) sample(ctx context.Context, q domain.MetricsQuerier, o slo.Objective, cfg domain.Config) slo.Sample {
	ctx, cancel := withTimeout(ctx, cfg.Timeout)
	defer cancel()

	v, ok, err := q.QueryScalar(ctx, o.Query)
	slog.Debug("queried objective", "metric", o.Name, "value", v, "ok", ok, "err", err)
	switch {
	case err != nil:
		return slo.Sample{Err: err}
	case !ok:
		return slo.Sample{NoData: true}
	default:
		return slo.Sample{Value: v}
	}
}
