// Package nodelink renders preference graphs and decisions as node-link
// diagrams.
//
// # Overview
//
// Two diagrams are available, both produced as Graphviz DOT source:
//
//   - [ToDOT] draws one criterion's judgments. Strict preferences are solid
//     arrows from the better to the worse alternative; equivalences are
//     dashed lines without arrowheads.
//   - [DecisionDOT] draws the outcome. Solid arrows are the unanimous strict
//     dominance of scheme A, dashed arrows labelled with their degree are
//     the weighted strict dominance of scheme B that scheme A lacks. The
//     winner is highlighted and alternatives dominated under scheme A are
//     greyed out.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, 3, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: add per-alternative values to node labels
//   - Title: caption drawn below the graph
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is required.
package nodelink
