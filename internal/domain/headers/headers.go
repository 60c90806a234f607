package headers

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

// Expectation is either an exact, case-sensitive literal or a
// case-insensitive pattern. Exactly one of the two is set.
type Expectation struct {
	Literal string
	Pattern string
	re      *regexp.Regexp
}

// Literal builds an exact-match expectation.
func Literal(v string) Expectation {
	return Expectation{Literal: v}
}

// NewPattern compiles a case-insensitive pattern expectation.
func NewPattern(expr string) (Expectation, error) {
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return Expectation{}, fmt.Errorf("compiling header pattern %q: %w", expr, err)
	}
	return Expectation{Pattern: expr, re: re}, nil
}

// MustPattern is NewPattern for static tables.
func MustPattern(expr string) Expectation {
	e, err := NewPattern(expr)
	if err != nil {
		panic(err)
	}
	return e
}

// IsPattern reports whether the expectation matches by pattern.
func (e Expectation) IsPattern() bool {
	return e.re != nil
}

// Matches checks a header value.
func (e Expectation) Matches(value string) bool {
	if e.re != nil {
		return e.re.MatchString(value)
	}
	return value == e.Literal
}

func (e Expectation) String() string {
	if e.re != nil {
		return "/" + e.Pattern + "/i"
	}
	return e.Literal
}

// Requirement pairs a header name with its expectation.
type Requirement struct {
	Header string
	Expect Expectation
}

// DefaultRequirements are the five baseline security headers.
func DefaultRequirements() []Requirement {
	return []Requirement{
		{Header: "strict-transport-security", Expect: MustPattern(`max-age=\d+`)},
		{Header: "x-content-type-options", Expect: Literal("nosniff")},
		{Header: "x-frame-options", Expect: MustPattern(`DENY|SAMEORIGIN`)},
		{Header: "x-xss-protection", Expect: Literal("1; mode=block")},
		{Header: "content-security-policy", Expect: MustPattern(`.+`)},
	}
}

// Result is the audit of one required header.
type Result struct {
	Header   string `json:"header"`
	Observed string `json:"observed,omitempty"`
	Present  bool   `json:"present"`
	Expected string `json:"expected"`
	Passed   bool   `json:"passed"`
	Reason   string `json:"reason,omitempty"`
}

func (r Result) String() string {
	if r.Passed {
		return fmt.Sprintf("%s: %s", r.Header, r.Observed)
	}
	return r.Reason
}

// Audit checks every requirement against the response headers without
// stopping at the first failure.
func Audit(h http.Header, reqs []Requirement) []Result {
	results := make([]Result, 0, len(reqs))
	for _, req := range reqs {
		r := Result{Header: req.Header, Expected: req.Expect.String()}

		// An empty value counts as absent.
		observed := strings.Join(h.Values(req.Header), ", ")
		if observed == "" {
			r.Reason = fmt.Sprintf("Missing security header: %s", req.Header)
			results = append(results, r)
			continue
		}

		r.Present = true
		r.Observed = observed
		switch {
		case req.Expect.Matches(r.Observed):
			r.Passed = true
		case req.Expect.IsPattern():
			r.Reason = fmt.Sprintf("Header %s doesn't match pattern: %s", req.Header, r.Observed)
		default:
			r.Reason = fmt.Sprintf("Header %s has incorrect value: %s", req.Header, r.Observed)
		}
		results = append(results, r)
	}
	return results
}

// Failures returns the results that did not pass.
func Failures(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}
