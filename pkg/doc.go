// Package pkg provides the libraries behind prefgraph, a multi-criterion
// decision procedure.
//
// # Overview
//
// A decision starts from a set of alternatives numbered 1..n and, per
// criterion, a list of pairwise judgements ("1>2", "2=3"). prefgraph turns
// every criterion into a preference graph, derives a dominance matrix from
// graph reachability and combines the criteria in two ways:
//
//  1. Relational convolution: the element-wise minimum over criteria, whose
//     strict part yields the non-dominated set Q1.
//  2. Weighted additive convolution: the weighted sum of dominance
//     matrices, whose strict part yields Q2.
//
// The final score of an alternative is min(Q1, Q2) and the winner is the
// first alternative with the highest score.
//
// # Architecture
//
//	scenario file (JSON/TOML/YAML)
//	         ↓
//	    [io] package (decode + validate)
//	         ↓
//	    [scenario] package (criteria, weights, relations)
//	         ↓
//	    [prefgraph] package (graph per criterion + reachability)
//	         ↓
//	    [dominance] package (matrices, convolutions, Q1/Q2, answer)
//	         ↓
//	    [render/nodelink] package (DOT/SVG)
//
// The [pipeline] package drives these stages with caching from [cache] and
// metrics hooks from [observability]. The [api] package exposes the
// pipeline over HTTP.
//
// # Quick Start
//
//	s, _ := io.Import("scenario.toml")
//	d, err := dominance.Decide(s.Problem())
//	if err != nil {
//	    return err
//	}
//	fmt.Println("winner:", d.Answer.Alternative())
//
// [io]: github.com/matzehuels/prefgraph/pkg/io
// [scenario]: github.com/matzehuels/prefgraph/pkg/scenario
// [prefgraph]: github.com/matzehuels/prefgraph/pkg/prefgraph
// [dominance]: github.com/matzehuels/prefgraph/pkg/dominance
// [render/nodelink]: github.com/matzehuels/prefgraph/pkg/render/nodelink
// [pipeline]: github.com/matzehuels/prefgraph/pkg/pipeline
// [cache]: github.com/matzehuels/prefgraph/pkg/cache
// [observability]: github.com/matzehuels/prefgraph/pkg/observability
// [api]: github.com/matzehuels/prefgraph/pkg/api
package pkg
