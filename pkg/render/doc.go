// Package render groups the visual outputs of prefgraph.
//
// The [nodelink] subpackage draws a criterion's preference graph or a whole
// decision as a Graphviz DOT document and lays it out to SVG:
//
//	dot := nodelink.ToDOT(g, 3, nodelink.Options{Title: "criterion 1"})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [nodelink]: github.com/matzehuels/prefgraph/pkg/render/nodelink
package render
