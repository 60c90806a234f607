package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/openkraft/archfit/internal/adapters/outbound/artifacts"
	"github.com/openkraft/archfit/internal/adapters/outbound/config"
	"github.com/openkraft/archfit/internal/adapters/outbound/gitinfo"
	"github.com/openkraft/archfit/internal/adapters/outbound/graph"
	"github.com/openkraft/archfit/internal/adapters/outbound/httpprobe"
	"github.com/openkraft/archfit/internal/adapters/outbound/migrations"
	"github.com/openkraft/archfit/internal/adapters/outbound/openapi"
	"github.com/openkraft/archfit/internal/adapters/outbound/prometheus"
	"github.com/openkraft/archfit/internal/adapters/outbound/tui"
	"github.com/openkraft/archfit/internal/application"
	"github.com/openkraft/archfit/internal/domain"
)

// errNotPassed makes the process exit non-zero once the report is printed.
var errNotPassed = errors.New("fitness functions did not pass")

// newRunner wires every check to its production adapter.
func newRunner() *application.Runner {
	git := gitinfo.New()
	return application.NewRunner(
		config.New(),
		git,
		application.NewCouplingCheck(graph.New()),
		application.NewBudgetCheck(artifacts.New()),
		application.NewContractCheck(openapi.New(), git),
		application.NewMigrationCheck(migrations.New()),
		application.NewSLOCheck(newQuerier),
		application.NewHeaderCheck(httpprobe.New(0)),
	)
}

func newQuerier(address string) (domain.MetricsQuerier, error) {
	q, err := prometheus.New(address)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func absPath(path string) (string, error) {
	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return abs, nil
}

// printReport writes the report and returns errNotPassed when the run failed.
func printReport(w io.Writer, report *domain.Report, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
	} else {
		fmt.Fprint(w, tui.RenderReport(report))
	}

	if !report.Passed() {
		return errNotPassed
	}
	return nil
}
