package coupling

import (
	"fmt"
	"sort"
	"strings"
)

// ModuleGraph maps a module identifier to the modules it depends on.
type ModuleGraph map[string][]string

// Modules returns every module id that appears as a key or an edge target,
// sorted for deterministic traversal.
func (g ModuleGraph) Modules() []string {
	seen := make(map[string]bool, len(g))
	for m, deps := range g {
		seen[m] = true
		for _, d := range deps {
			seen[d] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EdgeCount returns the total number of directed edges.
func (g ModuleGraph) EdgeCount() int {
	total := 0
	for _, deps := range g {
		total += len(deps)
	}
	return total
}

// Cycle is a closed dependency loop. The first module is repeated at the end.
type Cycle []string

func (c Cycle) String() string {
	return "[" + strings.Join(c, ", ") + "]"
}

// LayerRule forbids modules matching Core from depending on modules matching Feature.
type LayerRule struct {
	Core    string `yaml:"core"    json:"core"`
	Feature string `yaml:"feature" json:"feature"`
}

// DefaultLayerRule is the "core must not depend on features" rule.
func DefaultLayerRule() LayerRule {
	return LayerRule{Core: "core/", Feature: "features/"}
}

// LayerViolation is a forbidden core→feature edge.
type LayerViolation struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (v LayerViolation) String() string {
	return fmt.Sprintf("core module %s depends on feature module %s", v.From, v.To)
}

// Result holds everything the analyzer found in one graph.
type Result struct {
	Modules    int              `json:"modules"`
	Edges      int              `json:"edges"`
	Cycles     []Cycle          `json:"cycles,omitempty"`
	Violations []LayerViolation `json:"violations,omitempty"`
}

// OK reports whether the graph has neither cycles nor layering violations.
func (r Result) OK() bool {
	return len(r.Cycles) == 0 && len(r.Violations) == 0
}

// Analyze runs cycle detection and the layering rule over g.
func Analyze(g ModuleGraph, rule LayerRule) Result {
	return Result{
		Modules:    len(g.Modules()),
		Edges:      g.EdgeCount(),
		Cycles:     DetectCycles(g),
		Violations: CheckLayering(g, rule),
	}
}

// DetectCycles finds dependency cycles using an iterative DFS with
// white/grey/black colouring. Each cycle starts at its seed, the
// earliest-visited module of the loop, and is deduplicated by rotation.
func DetectCycles(g ModuleGraph) []Cycle {
	if len(g) == 0 {
		return nil
	}

	const (
		white = 0
		grey  = 1
		black = 2
	)

	type frame struct {
		node string
		next int
		deps []string
	}

	color := make(map[string]int)
	seen := make(map[string]bool)
	var cycles []Cycle

	neighbors := func(u string) []string {
		deps := make([]string, 0, len(g[u]))
		for _, d := range g[u] {
			if d != u {
				deps = append(deps, d)
			}
		}
		sort.Strings(deps)
		return deps
	}

	for _, root := range g.Modules() {
		if color[root] != white {
			continue
		}

		color[root] = grey
		stack := []*frame{{node: root, deps: neighbors(root)}}

		for len(stack) > 0 {
			top := stack[len(stack)-1]
			if top.next >= len(top.deps) {
				color[top.node] = black
				stack = stack[:len(stack)-1]
				continue
			}

			v := top.deps[top.next]
			top.next++

			switch color[v] {
			case grey:
				// Back edge: the loop is the stack suffix starting at v.
				start := len(stack) - 1
				for stack[start].node != v {
					start--
				}
				cycle := make(Cycle, 0, len(stack)-start+1)
				for _, f := range stack[start:] {
					cycle = append(cycle, f.node)
				}
				cycle = append(cycle, v)

				key := rotationKey(cycle[:len(cycle)-1])
				if !seen[key] {
					seen[key] = true
					cycles = append(cycles, cycle)
				}
			case white:
				color[v] = grey
				stack = append(stack, &frame{node: v, deps: neighbors(v)})
			}
		}
	}

	return cycles
}

// rotationKey identifies an open cycle independent of where it starts.
func rotationKey(open []string) string {
	minIdx := 0
	for i, s := range open {
		if s < open[minIdx] {
			minIdx = i
		}
	}
	rotated := make([]string, len(open))
	for i := range open {
		rotated[i] = open[(minIdx+i)%len(open)]
	}
	return strings.Join(rotated, "→")
}

// CheckLayering enumerates the direct edges of every core module and returns
// the ones that reach a feature module.
func CheckLayering(g ModuleGraph, rule LayerRule) []LayerViolation {
	if rule.Core == "" || rule.Feature == "" {
		return nil
	}

	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var violations []LayerViolation
	for _, m := range keys {
		if !matchesLayer(m, rule.Core) {
			continue
		}
		for _, dep := range g[m] {
			if matchesLayer(dep, rule.Feature) {
				violations = append(violations, LayerViolation{From: m, To: dep})
			}
		}
	}
	return violations
}

// matchesLayer treats ids as directory-like so "internal/core" matches "core/".
func matchesLayer(id, marker string) bool {
	normalized := strings.ReplaceAll(id, "\\", "/") + "/"
	return strings.Contains(normalized, marker)
}
