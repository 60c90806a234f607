package domain

import "fmt"

// Report aggregates the outcomes of a single run.
type Report struct {
	Outcomes   []CheckOutcome `json:"outcomes"`
	Aborted    bool           `json:"aborted"`
	AbortedBy  string         `json:"aborted_by,omitempty"`
	CommitHash string         `json:"commit_hash,omitempty"`
}

// Passed reports whether the run should exit 0.
func (r *Report) Passed() bool {
	if r.Aborted {
		return false
	}
	for _, o := range r.Outcomes {
		if o.Failed() {
			return false
		}
	}
	return true
}

// FailedChecks returns the names of mandatory checks that failed.
func (r *Report) FailedChecks() []string {
	var names []string
	for _, o := range r.Outcomes {
		if o.Failed() {
			names = append(names, o.Name)
		}
	}
	return names
}

// Count returns how many outcomes carry the given status.
func (r *Report) Count(status Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Summary is the final one-line verdict.
func (r *Report) Summary() string {
	counts := fmt.Sprintf("%d passed, %d failed, %d warnings, %d skipped",
		r.Count(StatusPass), r.Count(StatusFail), r.Count(StatusWarn), r.Count(StatusSkip))
	switch {
	case r.Aborted:
		return fmt.Sprintf("Fitness run aborted by %s (%s)", r.AbortedBy, counts)
	case r.Passed():
		return fmt.Sprintf("All fitness functions passed (%s)", counts)
	default:
		return fmt.Sprintf("Fitness functions failed: %v (%s)", r.FailedChecks(), counts)
	}
}
