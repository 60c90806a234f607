package domain

import (
	"fmt"
	"time"

	"github.com/openkraft/archfit/internal/domain/budget"
	"github.com/openkraft/archfit/internal/domain/coupling"
	"github.com/openkraft/archfit/internal/domain/headers"
	"github.com/openkraft/archfit/internal/domain/migration"
	"github.com/openkraft/archfit/internal/domain/slo"
)

const (
	DefaultPrometheusURL = "http://localhost:9090"
	DefaultAppURL        = "http://localhost:3000"
)

// PathsConfig locates the run's file-system inputs, relative to the project path.
type PathsConfig struct {
	Source          string `yaml:"source"           json:"source"`
	Graph           string `yaml:"graph"            json:"graph,omitempty"`
	Dist            string `yaml:"dist"             json:"dist"`
	Migrations      string `yaml:"migrations"       json:"migrations"`
	OpenAPICurrent  string `yaml:"openapi_current"  json:"openapi_current"`
	OpenAPIPrevious string `yaml:"openapi_previous" json:"openapi_previous"`
	BaselineRef     string `yaml:"baseline_ref"     json:"baseline_ref,omitempty"`
}

// PatternSpec is the raw form of a migration pattern.
type PatternSpec struct {
	Name string `yaml:"name" json:"name"`
	Expr string `yaml:"expr" json:"expr"`
}

// HeaderSpec is the raw form of a header requirement. Exactly one of
// Literal or Pattern must be set.
type HeaderSpec struct {
	Header  string `yaml:"header"  json:"header"`
	Literal string `yaml:"literal" json:"literal,omitempty"`
	Pattern string `yaml:"pattern" json:"pattern,omitempty"`
}

// SLOConfig configures the metrics backend and objectives.
type SLOConfig struct {
	PrometheusURL string          `yaml:"prometheus_url" json:"prometheus_url,omitempty"`
	Objectives    []slo.Objective `yaml:"objectives"     json:"objectives,omitempty"`
}

// HeadersConfig configures the audited URL and required headers.
type HeadersConfig struct {
	URL      string       `yaml:"url"      json:"url,omitempty"`
	Required []HeaderSpec `yaml:"required" json:"required,omitempty"`
}

// ProjectConfig holds project-level configuration loaded from .archfit.yaml.
// Zero values mean "use the default".
type ProjectConfig struct {
	Paths             PathsConfig         `yaml:"paths"              json:"paths"`
	Layers            *coupling.LayerRule `yaml:"layers,omitempty"   json:"layers,omitempty"`
	Budgets           budget.Table        `yaml:"budgets"            json:"budgets,omitempty"`
	MigrationPatterns []PatternSpec       `yaml:"migration_patterns" json:"migration_patterns,omitempty"`
	SLO               SLOConfig           `yaml:"slo"                json:"slo"`
	Headers           HeadersConfig       `yaml:"headers"            json:"headers"`
	Skip              []string            `yaml:"skip"               json:"skip,omitempty"`
	Timeout           string              `yaml:"timeout"            json:"timeout,omitempty"`
}

// Validate checks the raw config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	// 1. skip entries must name known checks
	for _, s := range c.Skip {
		if !IsValidCheck(s) {
			return fmt.Errorf("unknown check %q in skip (valid: %v)", s, CheckOrder)
		}
	}

	// 2. budgets must be positive with well-formed globs
	if err := c.Budgets.Validate(); err != nil {
		return err
	}

	// 3. migration patterns need a name and expression
	for i, p := range c.MigrationPatterns {
		if p.Name == "" || p.Expr == "" {
			return fmt.Errorf("migration_patterns[%d] must have name and expr", i)
		}
	}

	// 4. slo objectives
	seen := make(map[string]bool)
	for _, o := range c.SLO.Objectives {
		if err := o.Validate(); err != nil {
			return err
		}
		if seen[o.Name] {
			return fmt.Errorf("duplicate slo objective %q", o.Name)
		}
		seen[o.Name] = true
	}

	// 5. header requirements: exactly one of literal / pattern
	for i, h := range c.Headers.Required {
		if h.Header == "" {
			return fmt.Errorf("headers.required[%d].header must not be empty", i)
		}
		if (h.Literal == "") == (h.Pattern == "") {
			return fmt.Errorf("headers.required[%d] (%s) must set exactly one of literal or pattern", i, h.Header)
		}
	}

	// 6. timeout must parse
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
		}
		if d < 0 {
			return fmt.Errorf("timeout must not be negative (got %s)", c.Timeout)
		}
	}

	return nil
}

// Config is the resolved, immutable run configuration. Patterns are
// compiled once here and shared by every invocation.
type Config struct {
	Paths             PathsConfig
	Layers            coupling.LayerRule
	Budgets           budget.Table
	MigrationPatterns []migration.Pattern
	PrometheusURL     string
	Objectives        []slo.Objective
	AppURL            string
	Headers           []headers.Requirement
	Skip              []string
	// Timeout bounds each network call; zero means no deadline.
	Timeout time.Duration
}

// DefaultPaths are the conventional input locations.
func DefaultPaths() PathsConfig {
	return PathsConfig{
		Source:          "src",
		Dist:            "dist",
		Migrations:      "migrations",
		OpenAPICurrent:  "openapi.yaml",
		OpenAPIPrevious: "openapi-previous.yaml",
	}
}

// DefaultConfig returns the stock fitness constraints.
func DefaultConfig() Config {
	return Config{
		Paths:             DefaultPaths(),
		Layers:            coupling.DefaultLayerRule(),
		Budgets:           budget.DefaultTable(),
		MigrationPatterns: migration.DefaultPatterns(),
		PrometheusURL:     DefaultPrometheusURL,
		Objectives:        slo.DefaultObjectives(),
		AppURL:            DefaultAppURL,
		Headers:           headers.DefaultRequirements(),
	}
}

// Resolve overlays the explicit values of c on the defaults and compiles
// patterns. Explicit lists and tables replace the defaults entirely.
func (c ProjectConfig) Resolve() (Config, error) {
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	cfg.Paths = mergePaths(cfg.Paths, c.Paths)

	if c.Layers != nil {
		cfg.Layers = *c.Layers
	}
	if len(c.Budgets) > 0 {
		cfg.Budgets = c.Budgets
	}

	if len(c.MigrationPatterns) > 0 {
		patterns := make([]migration.Pattern, 0, len(c.MigrationPatterns))
		for _, p := range c.MigrationPatterns {
			compiled, err := migration.NewPattern(p.Name, p.Expr)
			if err != nil {
				return Config{}, err
			}
			patterns = append(patterns, compiled)
		}
		cfg.MigrationPatterns = patterns
	}

	if c.SLO.PrometheusURL != "" {
		cfg.PrometheusURL = c.SLO.PrometheusURL
	}
	if len(c.SLO.Objectives) > 0 {
		objectives := make([]slo.Objective, 0, len(c.SLO.Objectives))
		for _, o := range c.SLO.Objectives {
			objectives = append(objectives, o.Normalize())
		}
		cfg.Objectives = objectives
	}

	if c.Headers.URL != "" {
		cfg.AppURL = c.Headers.URL
	}
	if len(c.Headers.Required) > 0 {
		reqs := make([]headers.Requirement, 0, len(c.Headers.Required))
		for _, h := range c.Headers.Required {
			expect := headers.Literal(h.Literal)
			if h.Pattern != "" {
				var err error
				if expect, err = headers.NewPattern(h.Pattern); err != nil {
					return Config{}, err
				}
			}
			reqs = append(reqs, headers.Requirement{Header: h.Header, Expect: expect})
		}
		cfg.Headers = reqs
	}

	cfg.Skip = c.Skip
	if c.Timeout != "" {
		cfg.Timeout, _ = time.ParseDuration(c.Timeout)
	}

	return cfg, nil
}

func mergePaths(base, override PathsConfig) PathsConfig {
	pick := func(b, o string) string {
		if o != "" {
			return o
		}
		return b
	}
	return PathsConfig{
		Source:          pick(base.Source, override.Source),
		Graph:           pick(base.Graph, override.Graph),
		Dist:            pick(base.Dist, override.Dist),
		Migrations:      pick(base.Migrations, override.Migrations),
		OpenAPICurrent:  pick(base.OpenAPICurrent, override.OpenAPICurrent),
		OpenAPIPrevious: pick(base.OpenAPIPrevious, override.OpenAPIPrevious),
		BaselineRef:     pick(base.BaselineRef, override.BaselineRef),
	}
}

// IsSkipped reports whether the named check is disabled.
func (c Config) IsSkipped(name string) bool {
	for _, s := range c.Skip {
		if s == name {
			return true
		}
	}
	return false
}
