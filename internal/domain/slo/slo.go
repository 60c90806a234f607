package slo

import (
	"fmt"
	"strconv"
)

// Direction is the comparison an observed value must satisfy.
type Direction string

const (
	AtLeast Direction = "gte"
	AtMost  Direction = "lte"
)

// Unit controls how values are rendered.
type Unit string

const (
	UnitPercent Unit = "percent"
	UnitSeconds Unit = "seconds"
	UnitRatio   Unit = "ratio"
)

// Objective is one named query with its threshold.
type Objective struct {
	Name      string    `yaml:"name"      json:"name"`
	Query     string    `yaml:"query"     json:"query"`
	Threshold float64   `yaml:"threshold" json:"threshold"`
	Direction Direction `yaml:"direction" json:"direction"`
	Unit      Unit      `yaml:"unit"      json:"unit"`
}

// Normalize fills direction and unit from the metric name when unset:
// availability must stay above its threshold, everything else below.
func (o Objective) Normalize() Objective {
	if o.Direction == "" {
		if o.Name == "availability" {
			o.Direction = AtLeast
		} else {
			o.Direction = AtMost
		}
	}
	if o.Unit == "" {
		switch o.Name {
		case "availability", "error_rate":
			o.Unit = UnitPercent
		case "latency_p95", "latency_p99":
			o.Unit = UnitSeconds
		default:
			o.Unit = UnitRatio
		}
	}
	return o
}

// Validate rejects objectives that cannot be evaluated.
func (o Objective) Validate() error {
	if o.Name == "" {
		return fmt.Errorf("slo objective must have a name")
	}
	if o.Query == "" {
		return fmt.Errorf("slo objective %q must have a query", o.Name)
	}
	switch o.Direction {
	case AtLeast, AtMost, "":
	default:
		return fmt.Errorf("slo objective %q has unknown direction %q (valid: gte, lte)", o.Name, o.Direction)
	}
	switch o.Unit {
	case UnitPercent, UnitSeconds, UnitRatio, "":
	default:
		return fmt.Errorf("slo objective %q has unknown unit %q (valid: percent, seconds, ratio)", o.Name, o.Unit)
	}
	return nil
}

// Satisfied reports whether observed meets the objective.
func (o Objective) Satisfied(observed float64) bool {
	if o.Direction == AtLeast {
		return observed >= o.Threshold
	}
	return observed <= o.Threshold
}

// Format renders a value in the objective's unit.
func (o Objective) Format(v float64) string {
	switch o.Unit {
	case UnitPercent:
		return fmt.Sprintf("%.2f%%", v)
	case UnitSeconds:
		return fmt.Sprintf("%.0fms", v*1000)
	default:
		return strconv.FormatFloat(v, 'f', 4, 64)
	}
}

// DefaultObjectives are the 30-day availability, latency and error-rate SLOs.
func DefaultObjectives() []Objective {
	return []Objective{
		{
			Name:      "availability",
			Query:     `(sum(rate(http_requests_total{status=~"2.."}[30d])) / sum(rate(http_requests_total[30d]))) * 100`,
			Threshold: 99.9,
			Direction: AtLeast,
			Unit:      UnitPercent,
		},
		{
			Name:      "latency_p95",
			Query:     `histogram_quantile(0.95, sum(rate(http_request_duration_seconds_bucket[30d])) by (le))`,
			Threshold: 0.3,
			Direction: AtMost,
			Unit:      UnitSeconds,
		},
		{
			Name:      "error_rate",
			Query:     `(sum(rate(http_requests_total{status=~"5.."}[30d])) / sum(rate(http_requests_total[30d]))) * 100`,
			Threshold: 0.1,
			Direction: AtMost,
			Unit:      UnitPercent,
		},
	}
}

// Sample is what the metrics backend returned for one objective.
type Sample struct {
	Value  float64
	NoData bool
	Err    error
}

// Result is the evaluation of one objective.
type Result struct {
	Metric    string    `json:"metric"`
	Observed  float64   `json:"observed"`
	Threshold float64   `json:"threshold"`
	Direction Direction `json:"direction"`
	Unit      Unit      `json:"unit"`
	Passed    bool      `json:"passed"`
	NoData    bool      `json:"no_data,omitempty"`
	Error     string    `json:"error,omitempty"`

	objective Objective
}

// Evaluate compares a sample to its objective.
func Evaluate(o Objective, s Sample) Result {
	o = o.Normalize()
	r := Result{
		Metric:    o.Name,
		Threshold: o.Threshold,
		Direction: o.Direction,
		Unit:      o.Unit,
		objective: o,
	}
	switch {
	case s.Err != nil:
		r.Error = s.Err.Error()
	case s.NoData:
		r.NoData = true
	default:
		r.Observed = s.Value
		r.Passed = o.Satisfied(s.Value)
	}
	return r
}

// Failed reports a threshold breach or a backend error.
func (r Result) Failed() bool {
	return !r.Passed && !r.NoData
}

func (r Result) String() string {
	o := r.objective
	switch {
	case r.Error != "":
		return fmt.Sprintf("Failed to check %s: %s", r.Metric, r.Error)
	case r.NoData:
		return fmt.Sprintf("No data for %s", r.Metric)
	case r.Passed:
		return fmt.Sprintf("%s: %s (SLO: %s)", r.Metric, o.Format(r.Observed), o.Format(r.Threshold))
	case r.Direction == AtLeast:
		return fmt.Sprintf("%s is %s, below SLO of %s", r.Metric, o.Format(r.Observed), o.Format(r.Threshold))
	default:
		return fmt.Sprintf("%s is %s, above SLO of %s", r.Metric, o.Format(r.Observed), o.Format(r.Threshold))
	}
}
