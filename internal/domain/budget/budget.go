package budget

import (
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// Size is a byte count. In YAML it accepts either an integer number of bytes
// or a human-readable size such as "170 KiB".
type Size int64

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Size) UnmarshalYAML(node *yaml.Node) error {
	var n int64
	if err := node.Decode(&n); err == nil {
		*s = Size(n)
		return nil
	}
	var raw string
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("budget size must be bytes or a size string: %w", err)
	}
	b, err := humanize.ParseBytes(raw)
	if err != nil {
		return fmt.Errorf("parsing budget size %q: %w", raw, err)
	}
	*s = Size(b)
	return nil
}

// KB renders a byte count in kilobytes with two decimals, e.g. "20.00KB".
func KB(bytes int64) string {
	return fmt.Sprintf("%.2fKB", float64(bytes)/1024)
}

// Table maps an artifact name (a glob relative to the build output dir) to
// the maximum number of bytes it may occupy.
type Table map[string]Size

// Names returns the artifact names in sorted order.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for n := range t {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Validate rejects non-positive limits and malformed artifact globs.
func (t Table) Validate() error {
	for _, name := range t.Names() {
		if t[name] <= 0 {
			return fmt.Errorf("budgets[%q] must be > 0 (got %d)", name, t[name])
		}
		if !doublestar.ValidatePattern(name) {
			return fmt.Errorf("budgets[%q] is not a valid glob pattern", name)
		}
	}
	return nil
}

// DefaultTable holds the stock bundle budgets.
func DefaultTable() Table {
	return Table{
		"bundle.js":  170 * 1024,
		"bundle.css": 50 * 1024,
		"vendor.js":  300 * 1024,
	}
}

// Measurement is the resolved size of one budgeted artifact.
// Found is false when the glob matched nothing.
type Measurement struct {
	Name  string
	Found bool
	Files int
	Bytes int64
}

// Verdict is the comparison of one artifact against its budget.
type Verdict struct {
	Name   string `json:"name"`
	Found  bool   `json:"found"`
	Bytes  int64  `json:"bytes"`
	Limit  int64  `json:"limit"`
	Passed bool   `json:"passed"`
}

func (v Verdict) String() string {
	switch {
	case !v.Found:
		return fmt.Sprintf("Skipping %s - not found", v.Name)
	case v.Passed:
		return fmt.Sprintf("%s: %s (budget: %s)", v.Name, KB(v.Bytes), KB(v.Limit))
	default:
		return fmt.Sprintf("File %s is %s, exceeds budget of %s", v.Name, KB(v.Bytes), KB(v.Limit))
	}
}

// Evaluate compares every measurement against the table. All artifacts are
// evaluated; the caller aggregates the failures.
func Evaluate(table Table, measured []Measurement) []Verdict {
	byName := make(map[string]Measurement, len(measured))
	for _, m := range measured {
		byName[m.Name] = m
	}

	verdicts := make([]Verdict, 0, len(table))
	for _, name := range table.Names() {
		limit := int64(table[name])
		m, ok := byName[name]
		if !ok || !m.Found {
			verdicts = append(verdicts, Verdict{Name: name, Limit: limit})
			continue
		}
		verdicts = append(verdicts, Verdict{
			Name:   name,
			Found:  true,
			Bytes:  m.Bytes,
			Limit:  limit,
			Passed: m.Bytes <= limit,
		})
	}
	return verdicts
}

// Overages returns only the verdicts that exceed their budget.
func Overages(verdicts []Verdict) []Verdict {
	var out []Verdict
	for _, v := range verdicts {
		if v.Found && !v.Passed {
			out = append(out, v)
		}
	}
	return out
}
