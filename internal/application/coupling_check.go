package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/openkraft/archfit/internal/domain"
	"github.com/openkraft/archfit/internal/domain/coupling"
)

// CouplingCheck detects dependency cycles and core → feature edges.
type CouplingCheck struct {
	graphs domain.GraphSource
}

func NewCouplingCheck(graphs domain.GraphSource) *CouplingCheck {
	return &CouplingCheck{graphs: graphs}
}

func (c *CouplingCheck) Name() string    { return domain.CheckCoupling }
func (c *CouplingCheck) Mandatory() bool { return true }

func (c *CouplingCheck) Run(ctx context.Context, projectPath string, cfg domain.Config) domain.CheckOutcome {
	g, err := c.graphs.Graph(ctx, projectPath, cfg.Paths)
	if err != nil {
		// An explicitly configured graph file must exist; an absent source
		// tree just means there is nothing to analyze.
		if cfg.Paths.Graph == "" && errors.Is(err, os.ErrNotExist) {
			return domain.Skipped(c.Name(), fmt.Sprintf("No module graph to analyze: %v", err), true)
		}
		return abort(c.Name(), fmt.Sprintf("Coupling check failed: %v", err))
	}

	res := coupling.Analyze(g, cfg.Layers)
	slog.Debug("analyzed module graph",
		"modules", res.Modules, "edges", res.Edges,
		"cycles", len(res.Cycles), "violations", len(res.Violations))

	if res.OK() {
		msg := fmt.Sprintf("Coupling check passed (%d modules, %d edges)", res.Modules, res.Edges)
		return pass(c.Name(), msg, true, nil)
	}

	var items []string
	if len(res.Cycles) > 0 {
		items = append(items, fmt.Sprintf("Found %d circular dependencies", len(res.Cycles)))
		for _, cy := range res.Cycles {
			items = append(items, cy.String())
		}
	}
	for _, v := range res.Violations {
		items = append(items, v.String())
	}
	return fail(c.Name(), "Coupling check failed", true, items, details(domain.StatusFail, items))
}
