package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openkraft/archfit/internal/domain"
)

// RunOptions tunes a single run.
type RunOptions struct {
	// FailFast stops at the first mandatory FAIL.
	FailFast bool
	// Only restricts the run to the named checks; empty runs all.
	Only []string
}

// Runner executes the fitness functions in a fixed order and folds their
// outcomes into a Report.
type Runner struct {
	configLoader domain.ConfigLoader
	git          domain.GitInfo
	checks       []Check
}

// NewRunner orders checks by domain.CheckOrder regardless of argument order.
// git may be nil.
func NewRunner(configLoader domain.ConfigLoader, git domain.GitInfo, checks ...Check) *Runner {
	byName := make(map[string]Check, len(checks))
	for _, c := range checks {
		byName[c.Name()] = c
	}
	ordered := make([]Check, 0, len(checks))
	for _, name := range domain.CheckOrder {
		if c, ok := byName[name]; ok {
			ordered = append(ordered, c)
		}
	}
	return &Runner{configLoader: configLoader, git: git, checks: ordered}
}

// Run loads the configuration and runs every check. The only error returned
// is a configuration failure; check failures live in the report.
func (r *Runner) Run(ctx context.Context, projectPath string, opts RunOptions) (*domain.Report, error) {
	cfg, err := r.configLoader.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return r.RunWithConfig(ctx, projectPath, cfg, opts), nil
}

// RunWithConfig runs the checks against an already resolved configuration.
func (r *Runner) RunWithConfig(ctx context.Context, projectPath string, cfg domain.Config, opts RunOptions) *domain.Report {
	report := &domain.Report{}
	if r.git != nil {
		if hash, err := r.git.CommitHash(projectPath); err == nil {
			report.CommitHash = hash
		} else {
			slog.Debug("no commit hash", "err", err)
		}
	}

	for _, c := range r.checks {
		if len(opts.Only) > 0 && !contains(opts.Only, c.Name()) {
			continue
		}

		if cfg.IsSkipped(c.Name()) {
			report.Outcomes = append(report.Outcomes,
				domain.Skipped(c.Name(), "Disabled in configuration", c.Mandatory()))
			continue
		}

		if err := ctx.Err(); err != nil {
			report.Outcomes = append(report.Outcomes,
				domain.Skipped(c.Name(), fmt.Sprintf("Not run: %v", err), c.Mandatory()))
			continue
		}

		slog.Debug("running check", "check", c.Name())
		outcome := c.Run(ctx, projectPath, cfg)
		outcome.Name = c.Name()
		if !c.Mandatory() {
			outcome.Mandatory = false
			outcome.Abort = false
		}
		report.Outcomes = append(report.Outcomes, outcome)
		slog.Debug("check finished", "check", c.Name(), "status", outcome.Status)

		if outcome.Abort {
			report.Aborted = true
			report.AbortedBy = c.Name()
			break
		}
		if opts.FailFast && outcome.Failed() {
			report.Aborted = true
			report.AbortedBy = c.Name()
			break
		}
	}

	return report
}

// Check runs a single named check.
func (r *Runner) Check(ctx context.Context, projectPath, name string) (*domain.Report, error) {
	if !domain.IsValidCheck(name) {
		return nil, fmt.Errorf("unknown check %q (valid: %v)", name, domain.CheckOrder)
	}
	return r.Run(ctx, projectPath, RunOptions{Only: []string{name}})
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
