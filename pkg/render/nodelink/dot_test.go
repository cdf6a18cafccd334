package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/prefgraph/pkg/dominance"
	"github.com/matzehuels/prefgraph/pkg/prefgraph"
)

func criterionTwo() *prefgraph.Graph {
	g := prefgraph.New()
	g.AddPreference(2, 1)
	g.AddEquivalence(1, 3)
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(criterionTwo(), 4, Options{})

	assert.True(t, strings.HasPrefix(dot, "digraph G {\n"))
	assert.True(t, strings.HasSuffix(dot, "}\n"))
	for _, n := range []string{`"1" [label="1"]`, `"2" [label="2"]`, `"3" [label="3"]`, `"4" [label="4"]`} {
		assert.Contains(t, dot, n)
	}
	assert.Contains(t, dot, `"2" -> "1";`)
	assert.Contains(t, dot, `"1" -> "3" [dir=none, style=dashed];`)
	assert.NotContains(t, dot, `"3" -> "1"`, "equivalence drawn once")
	assert.NotContains(t, dot, "label=\"\"")
}

func TestToDOTOutOfRangeNodes(t *testing.T) {
	g := prefgraph.New()
	g.AddPreference(1, 7)

	dot := ToDOT(g, 2, Options{})
	assert.Contains(t, dot, `"7" [label="7"]`)
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(criterionTwo(), 3, Options{Detailed: true, Title: "criterion 2"})

	assert.Contains(t, dot, `label="2\nreach 3"`)
	assert.Contains(t, dot, `label="1\nreach 2"`)
	assert.Contains(t, dot, `label="criterion 2";`)
}

func decision(t *testing.T) *dominance.Decision {
	t.Helper()
	d, err := dominance.Decide(dominance.Problem{
		Alternatives: 3,
		Relations: map[int][]prefgraph.Relation{
			1: {prefgraph.Prefer(1, 2), prefgraph.Prefer(2, 3)},
			2: {prefgraph.Prefer(2, 1), prefgraph.Equal(1, 3)},
		},
		Weights: map[int]float64{1: 0.3, 2: 0.7},
	})
	require.NoError(t, err)
	return d
}

func TestDecisionDOT(t *testing.T) {
	d := decision(t)
	dot := DecisionDOT(d, Options{})

	// Scheme A: 1 and 2 both strictly dominate 3.
	assert.Contains(t, dot, `"1" -> "3";`)
	assert.Contains(t, dot, `"2" -> "3";`)

	// Scheme B only: 2 over 1 with degree 0.7 - 0.3.
	assert.Contains(t, dot, `"2" -> "1" [style=dashed, label="0.40"];`)

	assert.Contains(t, dot, `"2" [label="2", fillcolor=palegreen, penwidth=3];`)
	assert.Contains(t, dot, `"3" [label="3", fillcolor=lightgrey, fontcolor=dimgrey];`)
}

func TestDecisionDOTDetailed(t *testing.T) {
	dot := DecisionDOT(decision(t), Options{Detailed: true})
	assert.Contains(t, dot, `Q1 1.00  Q2 1.00\nresult 1.00`)
}

func TestDecisionDOTEmpty(t *testing.T) {
	d := &dominance.Decision{Answer: dominance.NoAnswer}
	dot := DecisionDOT(d, Options{})
	assert.NotContains(t, dot, "->")
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))

	assert.Contains(t, out, `viewBox="0 0 100.00 50.00" width="100" height="50"`)
	assert.NotContains(t, out, "pt\"")

	plain := []byte("<svg><g/></svg>")
	assert.Equal(t, plain, normalizeViewBox(plain))
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz runtime start-up is slow")
	}
	svg, err := RenderSVG(context.Background(), ToDOT(criterionTwo(), 3, Options{}))
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
}
