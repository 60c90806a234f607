package migration

import (
	"fmt"
	"regexp"
)

// File is one migration script. Scripts are scanned, never executed.
type File struct {
	Name string
	SQL  string
}

// Pattern is a named, precompiled dangerous-statement matcher.
type Pattern struct {
	Name string
	Expr string
	re   *regexp.Regexp
}

// NewPattern compiles expr case-insensitively.
func NewPattern(name, expr string) (Pattern, error) {
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return Pattern{}, fmt.Errorf("compiling migration pattern %q: %w", name, err)
	}
	return Pattern{Name: name, Expr: expr, re: re}, nil
}

// MustPattern is NewPattern for static tables.
func MustPattern(name, expr string) Pattern {
	p, err := NewPattern(name, expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether the SQL text contains the pattern.
func (p Pattern) Match(sql string) bool {
	return p.re != nil && p.re.MatchString(sql)
}

func (p Pattern) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Expr)
}

// DefaultPatterns flags table drops, column drops and truncates.
func DefaultPatterns() []Pattern {
	return []Pattern{
		MustPattern("drop table", `DROP\s+TABLE`),
		MustPattern("drop column", `ALTER\s+TABLE.*DROP\s+COLUMN`),
		MustPattern("truncate", `TRUNCATE`),
	}
}

// RollbackReminder accompanies any set of warnings.
const RollbackReminder = "Ensure proper rollback scripts exist"

// Warning is a single (file, pattern) match.
type Warning struct {
	File    string `json:"file"`
	Pattern string `json:"pattern"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s contains potentially dangerous operation: %s", w.File, w.Pattern)
}

// Scan checks every file against every pattern, in file order then pattern
// order. A pattern matching several times in one file yields one warning.
func Scan(files []File, patterns []Pattern) []Warning {
	var warnings []Warning
	for _, f := range files {
		for _, p := range patterns {
			if p.Match(f.SQL) {
				warnings = append(warnings, Warning{File: f.Name, Pattern: p.String()})
			}
		}
	}
	return warnings
}
