package coupling

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCycles_Empty(t *testing.T) {
	assert.Empty(t, DetectCycles(ModuleGraph{}))
	assert.Empty(t, DetectCycles(nil))
}

func TestDetectCycles_NoCycles(t *testing.T) {
	g := ModuleGraph{
		"a": {"b"},
		"b": {"c"},
		"c": nil,
	}
	assert.Empty(t, DetectCycles(g))
}

func TestDetectCycles_TwoNodeCycle(t *testing.T) {
	g := ModuleGraph{
		"A": {"B"},
		"B": {"A"},
	}
	cycles := DetectCycles(g)
	require.Len(t, cycles, 1)
	assert.Equal(t, Cycle{"A", "B", "A"}, cycles[0])
	assert.Equal(t, "[A, B, A]", cycles[0].String())
}

func TestDetectCycles_ThreeNodeCycle(t *testing.T) {
	g := ModuleGraph{
		"a": {"b"},
		"b": {"c"},
		"c": {"a"},
	}
	cycles := DetectCycles(g)
	require.Len(t, cycles, 1)
	assert.Equal(t, Cycle{"a", "b", "c", "a"}, cycles[0])
}

func TestDetectCycles_DiamondIsNotACycle(t *testing.T) {
	g := ModuleGraph{
		"app":    {"left", "right"},
		"left":   {"shared"},
		"right":  {"shared"},
		"shared": nil,
	}
	assert.Empty(t, DetectCycles(g))
}

func TestDetectCycles_SelfEdgeIgnored(t *testing.T) {
	g := ModuleGraph{"a": {"a", "b"}, "b": nil}
	assert.Empty(t, DetectCycles(g))
}

func TestDetectCycles_MultipleIndependentCycles(t *testing.T) {
	g := ModuleGraph{
		"a": {"b"},
		"b": {"a"},
		"x": {"y"},
		"y": {"z"},
		"z": {"x"},
	}
	cycles := DetectCycles(g)
	require.Len(t, cycles, 2)
	assert.Equal(t, Cycle{"a", "b", "a"}, cycles[0])
	assert.Equal(t, Cycle{"x", "y", "z", "x"}, cycles[1])
}

func TestDetectCycles_EdgeToUnknownModule(t *testing.T) {
	g := ModuleGraph{"a": {"external"}}
	assert.Empty(t, DetectCycles(g))
}

func TestDetectCycles_DeepChainDoesNotRecurse(t *testing.T) {
	g := ModuleGraph{}
	const n = 20000
	for i := 0; i < n; i++ {
		g[key(i)] = []string{key(i + 1)}
	}
	g[key(n)] = []string{key(0)}

	cycles := DetectCycles(g)
	require.Len(t, cycles, 1)
	assert.Len(t, cycles[0], n+2)
}

func key(i int) string {
	return fmt.Sprintf("m%05d", i)
}

func TestCheckLayering_CoreToFeature(t *testing.T) {
	g := ModuleGraph{
		"src/core/auth.ts":        {"src/features/billing/index.ts", "src/core/util.ts"},
		"src/core/util.ts":        nil,
		"src/features/billing.ts": {"src/core/util.ts"},
	}
	v := CheckLayering(g, DefaultLayerRule())
	require.Len(t, v, 1)
	assert.Equal(t, "src/core/auth.ts", v[0].From)
	assert.Equal(t, "src/features/billing/index.ts", v[0].To)
}

func TestCheckLayering_GoPackageIDs(t *testing.T) {
	g := ModuleGraph{
		"internal/core":            {"internal/features/search"},
		"internal/features/search": {"internal/core"},
	}
	v := CheckLayering(g, DefaultLayerRule())
	require.Len(t, v, 1)
	assert.Equal(t, "core module internal/core depends on feature module internal/features/search", v[0].String())
}

func TestCheckLayering_EmptyRuleDisabled(t *testing.T) {
	g := ModuleGraph{"core/a": {"features/b"}}
	assert.Empty(t, CheckLayering(g, LayerRule{}))
}

func TestAnalyze_CleanGraphIsOK(t *testing.T) {
	g := ModuleGraph{
		"features/a": {"core/x"},
		"core/x":     {"core/y"},
		"core/y":     nil,
	}
	r := Analyze(g, DefaultLayerRule())
	assert.True(t, r.OK())
	assert.Equal(t, 3, r.Modules)
	assert.Equal(t, 2, r.Edges)
}

func TestAnalyze_Idempotent(t *testing.T) {
	g := ModuleGraph{
		"core/a":     {"features/b", "core/c"},
		"core/c":     {"core/a"},
		"features/b": nil,
	}
	assert.Equal(t, Analyze(g, DefaultLayerRule()), Analyze(g, DefaultLayerRule()))
}
