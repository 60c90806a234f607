package application

import (
	"context"
	"path/filepath"
	"time"

	"github.com/openkraft/archfit/internal/domain"
)

// Check is one fitness function. Run never returns an error: every failure
// mode is expressed in the outcome.
type Check interface {
	Name() string
	Mandatory() bool
	Run(ctx context.Context, projectPath string, cfg domain.Config) domain.CheckOutcome
}

// resolvePath anchors a configured path at the project root.
func resolvePath(projectPath, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(projectPath, p)
}

// withTimeout bounds a single network call when a timeout is configured.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func pass(name, msg string, mandatory bool, details []domain.Detail) domain.CheckOutcome {
	return domain.CheckOutcome{
		Name:      name,
		Status:    domain.StatusPass,
		Message:   msg,
		Details:   details,
		Mandatory: mandatory,
	}
}

// fail builds a FAIL outcome whose message lists items under the headline.
func fail(name, headline string, mandatory bool, items []string, details []domain.Detail) domain.CheckOutcome {
	return domain.CheckOutcome{
		Name:      name,
		Status:    domain.StatusFail,
		Message:   domain.FailureMessage(headline, items),
		Details:   details,
		Mandatory: mandatory,
	}
}

// abort builds a FAIL outcome that stops the run.
func abort(name, msg string) domain.CheckOutcome {
	return domain.CheckOutcome{
		Name:      name,
		Status:    domain.StatusFail,
		Message:   msg,
		Details:   []domain.Detail{{Status: domain.StatusFail, Message: msg}},
		Mandatory: true,
		Abort:     true,
	}
}

func details(status domain.Status, msgs []string) []domain.Detail {
	out := make([]domain.Detail, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, domain.Detail{Status: status, Message: m})
	}
	return out
}
