package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/openkraft/archfit/internal/domain"
	"github.com/openkraft/archfit/internal/domain/budget"
)

// BudgetCheck compares build artifact sizes against the budget table.
type BudgetCheck struct {
	sizer domain.ArtifactSizer
}

func NewBudgetCheck(sizer domain.ArtifactSizer) *BudgetCheck {
	return &BudgetCheck{sizer: sizer}
}

func (c *BudgetCheck) Name() string    { return domain.CheckBudgets }
func (c *BudgetCheck) Mandatory() bool { return true }

func (c *BudgetCheck) Run(_ context.Context, projectPath string, cfg domain.Config) domain.CheckOutcome {
	dist := resolvePath(projectPath, cfg.Paths.Dist)
	info, err := os.Stat(dist)
	if errors.Is(err, os.ErrNotExist) {
		return domain.Skipped(c.Name(), fmt.Sprintf("Build output %s not found", cfg.Paths.Dist), true)
	}
	if err == nil && !info.IsDir() {
		return fail(c.Name(), fmt.Sprintf("Performance budget check failed: %s is not a directory", cfg.Paths.Dist), true, nil, nil)
	}

	measured := make([]budget.Measurement, 0, len(cfg.Budgets))
	unmeasured := make(map[string]string)
	for _, name := range cfg.Budgets.Names() {
		m, err := c.sizer.Measure(dist, name)
		if err != nil {
			slog.Debug("measuring artifact failed", "artifact", name, "error", err)
			unmeasured[name] = fmt.Sprintf("Could not measure %s: %v", name, err)
			continue
		}
		slog.Debug("measured artifact", "artifact", name, "files", m.Files, "bytes", m.Bytes)
		measured = append(measured, m)
	}

	verdicts := budget.Evaluate(cfg.Budgets, measured)
	var (
		lines []domain.Detail
		items []string
	)
	for _, v := range verdicts {
		if msg, ok := unmeasured[v.Name]; ok {
			lines = append(lines, domain.Detail{Status: domain.StatusFail, Message: msg})
			items = append(items, msg)
			continue
		}
		status := domain.StatusPass
		switch {
		case !v.Found:
			status = domain.StatusSkip
		case !v.Passed:
			status = domain.StatusFail
		}
		lines = append(lines, domain.Detail{Status: status, Message: v.String()})
	}

	for _, v := range budget.Overages(verdicts) {
		items = append(items, v.String())
	}
	if len(items) == 0 {
		return pass(c.Name(), "Performance budgets met", true, lines)
	}
	return fail(c.Name(), "Performance budget check failed", true, items, lines)
}
