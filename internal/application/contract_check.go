package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/openkraft/archfit/internal/domain"
	"github.com/openkraft/archfit/internal/domain/contract"
)

// ContractCheck diffs the current API contract against the previous one.
type ContractCheck struct {
	specs domain.SpecLoader
	git   domain.GitInfo
}

// NewContractCheck wires the spec loader. git may be nil, in which case
// baseline_ref is ignored.
func NewContractCheck(specs domain.SpecLoader, git domain.GitInfo) *ContractCheck {
	return &ContractCheck{specs: specs, git: git}
}

func (c *ContractCheck) Name() string    { return domain.CheckContract }
func (c *ContractCheck) Mandatory() bool { return true }

func (c *ContractCheck) Run(_ context.Context, projectPath string, cfg domain.Config) domain.CheckOutcome {
	current, err := c.specs.Load(resolvePath(projectPath, cfg.Paths.OpenAPICurrent))
	if err != nil {
		return abort(c.Name(), fmt.Sprintf("API stability check failed: %v", err))
	}

	previous, err := c.loadPrevious(projectPath, cfg.Paths)
	if err != nil {
		return abort(c.Name(), fmt.Sprintf("API stability check failed: %v", err))
	}

	changes := contract.Diff(current, previous)
	slog.Debug("diffed api contract",
		"current_paths", len(current.Paths), "previous_paths", len(previous.Paths), "breaking", len(changes))

	if len(changes) == 0 {
		return pass(c.Name(), "API contract stability check passed", true, nil)
	}
	items := make([]string, 0, len(changes))
	for _, ch := range changes {
		items = append(items, ch.String())
	}
	return fail(c.Name(), "Breaking changes detected", true, items, details(domain.StatusFail, items))
}

// loadPrevious reads the previous contract from disk, falling back to the
// current contract's path at baseline_ref when the file is absent.
func (c *ContractCheck) loadPrevious(projectPath string, paths domain.PathsConfig) (*contract.Spec, error) {
	previous, err := c.specs.Load(resolvePath(projectPath, paths.OpenAPIPrevious))
	if err == nil {
		return previous, nil
	}
	if paths.BaselineRef == "" || c.git == nil || !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	slog.Debug("reading previous contract from git", "ref", paths.BaselineRef, "path", paths.OpenAPICurrent)
	data, gitErr := c.git.ReadFileAtRef(projectPath, paths.BaselineRef, paths.OpenAPICurrent)
	if gitErr != nil {
		return nil, fmt.Errorf("%w (baseline %s: %v)", err, paths.BaselineRef, gitErr)
	}
	return c.specs.Parse(data)
}
