package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/prefgraph/pkg/dominance"
	"github.com/matzehuels/prefgraph/pkg/prefgraph"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds values to node labels: the size of the reachable set
	// for criterion graphs, and Q1, Q2 and the result for decisions.
	Detailed bool

	// Title is drawn as the graph caption when non-empty.
	Title string
}

func header(buf *bytes.Buffer, opts Options) {
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=18];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.4;\n")
	if opts.Title != "" {
		fmt.Fprintf(buf, "  label=%q;\n", opts.Title)
		buf.WriteString("  labelloc=b;\n")
	}
	buf.WriteString("\n")
}

func id(n int) string { return strconv.Itoa(n) }

// ToDOT converts one criterion's graph to DOT. Alternatives 1..alternatives
// are always drawn, including those without judgments; alternatives only
// mentioned by relations are drawn too.
func ToDOT(g *prefgraph.Graph, alternatives int, opts Options) string {
	nodes := make([]int, 0, alternatives)
	for i := 1; i <= alternatives; i++ {
		nodes = append(nodes, i)
	}
	for _, n := range g.Nodes() {
		if n < 1 || n > alternatives {
			nodes = append(nodes, n)
		}
	}
	slices.Sort(nodes)

	var buf bytes.Buffer
	header(&buf, opts)

	for _, n := range nodes {
		label := id(n)
		if opts.Detailed {
			label = fmt.Sprintf("%d\nreach %d", n, len(g.Reachable(n)))
		}
		fmt.Fprintf(&buf, "  %q [label=%q];\n", id(n), label)
	}

	buf.WriteString("\n")
	for _, e := range g.Preferences() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", id(e.From), id(e.To))
	}
	for _, e := range g.Equivalences() {
		fmt.Fprintf(&buf, "  %q -> %q [dir=none, style=dashed];\n", id(e.From), id(e.To))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// DecisionDOT converts a decision to DOT.
func DecisionDOT(d *dominance.Decision, opts Options) string {
	var buf bytes.Buffer
	header(&buf, opts)

	n := d.Alternatives
	for i := 0; i < n; i++ {
		attrs := []string{fmt.Sprintf("label=%q", decisionLabel(d, i, opts.Detailed))}
		switch {
		case d.Answer.Index == i:
			attrs = append(attrs, "fillcolor=palegreen", "penwidth=3")
		case i < len(d.Q1) && d.Q1[i] == 0:
			attrs = append(attrs, "fillcolor=lightgrey", "fontcolor=dimgrey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id(i+1), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			switch {
			case cell(d.Strict, i, j) > 0:
				fmt.Fprintf(&buf, "  %q -> %q;\n", id(i+1), id(j+1))
			case cell(d.Q2Strict, i, j) > 0:
				fmt.Fprintf(&buf, "  %q -> %q [style=dashed, label=%q];\n",
					id(i+1), id(j+1), strconv.FormatFloat(d.Q2Strict[i][j], 'f', 2, 64))
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func decisionLabel(d *dominance.Decision, i int, detailed bool) string {
	if !detailed {
		return id(i + 1)
	}
	return fmt.Sprintf("%d\nQ1 %s  Q2 %s\nresult %s", i+1,
		value(d.Q1, i), value(d.Q2, i), value(d.Result, i))
}

func value(v dominance.Vector, i int) string {
	if i >= len(v) {
		return "-"
	}
	return strconv.FormatFloat(v[i], 'f', 2, 64)
}

func cell(m dominance.Matrix, i, j int) float64 {
	if i >= len(m) || j >= len(m[i]) {
		return 0
	}
	return m[i][j]
}

// RenderSVG renders DOT source to SVG using the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-based svg tag with one whose
// width and height match the viewBox, so the image scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
