package domain

import "strings"

// Status is the normalized verdict of a single check.
type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
	StatusWarn Status = "WARN"
	StatusSkip Status = "SKIP"
)

// Check names, in the order the runner executes them.
const (
	CheckCoupling   = "coupling"
	CheckBudgets    = "budgets"
	CheckContract   = "contract"
	CheckMigrations = "migrations"
	CheckSLO        = "slo"
	CheckHeaders    = "headers"
)

// CheckOrder is the fixed execution order.
var CheckOrder = []string{
	CheckCoupling, CheckBudgets, CheckContract,
	CheckMigrations, CheckSLO, CheckHeaders,
}

// IsValidCheck reports whether name is a known check.
func IsValidCheck(name string) bool {
	for _, c := range CheckOrder {
		if c == name {
			return true
		}
	}
	return false
}

// Detail is one itemized line of a check outcome.
type Detail struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
}

// CheckOutcome is the uniform result shape every check normalizes to.
type CheckOutcome struct {
	Name      string   `json:"name"`
	Status    Status   `json:"status"`
	Message   string   `json:"message"`
	Details   []Detail `json:"details,omitempty"`
	Mandatory bool     `json:"mandatory"`
	// Abort asks the runner to stop before the next check.
	Abort bool `json:"abort,omitempty"`
}

// Failed reports whether the outcome counts against the exit status.
func (o CheckOutcome) Failed() bool {
	return o.Mandatory && o.Status == StatusFail
}

// Messages returns the detail messages carrying the given status.
func (o CheckOutcome) Messages(status Status) []string {
	var out []string
	for _, d := range o.Details {
		if d.Status == status {
			out = append(out, d.Message)
		}
	}
	return out
}

// Skipped builds a SKIP outcome with a single reason.
func Skipped(name, reason string, mandatory bool) CheckOutcome {
	return CheckOutcome{
		Name:      name,
		Status:    StatusSkip,
		Message:   reason,
		Details:   []Detail{{Status: StatusSkip, Message: reason}},
		Mandatory: mandatory,
	}
}

// FailureMessage formats a headline followed by the itemized violations.
func FailureMessage(headline string, items []string) string {
	if len(items) == 0 {
		return headline
	}
	return headline + ":\n" + strings.Join(items, "\n")
}
