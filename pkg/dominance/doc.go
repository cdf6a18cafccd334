// Package dominance turns per-criterion preference graphs into a single
// decision.
//
// # Pipeline
//
// The stages run in a fixed order, each consuming the previous output:
//
//  1. Dominance matrices: one N×N 0/1 matrix per criterion, cell (i, j) set
//     when alternative i+1 reaches j+1 in that criterion's graph.
//  2. Scheme A: the relational convolution (cell-wise minimum across all
//     criteria, i.e. unanimity), its strict convolution
//     max(M[i][j] − M[j][i], 0), and the Pareto indicator Q1.
//  3. Scheme B: the additive convolution (weighted sum across criteria), its
//     strict convolution, and the Pareto indicator Q2.
//  4. The result min(Q1, Q2) and the answer, the first index holding the
//     maximum result.
//
// Schemes A and B only depend on the dominance matrices, not on each other.
//
// # Usage
//
// [Decide] runs the whole pipeline and returns every stage:
//
//	d, err := dominance.Decide(dominance.Problem{
//	    Alternatives: 3,
//	    Relations: map[int][]prefgraph.Relation{
//	        1: {prefgraph.Prefer(1, 2), prefgraph.Prefer(2, 3)},
//	        2: {prefgraph.Prefer(2, 1), prefgraph.Equal(1, 3)},
//	    },
//	    Weights: map[int]float64{1: 0.5, 2: 0.5},
//	})
//	fmt.Println(d.Answer.Alternative()) // 1
//
// [Engine] exposes the same stages one call at a time for callers that need
// to drive or inspect them individually. The pure functions
// [RelationalConvolution], [StrictConvolution], [ParetoSet],
// [WeightedConvolution], [Combine] and [ArgMax] back both.
//
// # Errors
//
// Failures carry codes from pkg/errors: MISSING_INPUT when the weighted
// scheme has no weights or references a criterion with no matrix,
// DIMENSION_MISMATCH when matrices or vectors disagree in size, and
// INVALID_INPUT or INVALID_WEIGHTS for malformed counts and weights. An empty
// result is not an error; [ArgMax] returns the sentinel [NoAnswer].
//
// # Weights
//
// Weights are used as given. They are expected, not required, to sum to 1;
// set [Problem.RequireNormalized] to reject weight sets that do not.
package dominance
