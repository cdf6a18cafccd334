package dominance

import (
	"maps"
	"slices"
	"strconv"

	perrors "github.com/matzehuels/prefgraph/pkg/errors"
)

// Reacher answers reachability queries over one criterion's judgments.
// *prefgraph.Graph implements it.
type Reacher interface {
	IsPreferred(x, y int) bool
}

// Answer is the winning alternative of a decision: Index is 0-based into the
// result vector and Value is the result at that index.
type Answer struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

// NoAnswer is returned by [ArgMax] for an empty result vector.
var NoAnswer = Answer{Index: -1, Value: -1}

// Alternative returns the 1-based alternative identifier, or -1 for
// [NoAnswer].
func (a Answer) Alternative() int {
	if a.Index < 0 {
		return -1
	}
	return a.Index + 1
}

// Found reports whether a names an alternative.
func (a Answer) Found() bool { return a.Index >= 0 }

// DominanceMatrix builds the n×n 0/1 matrix of g: cell (i-1, j-1) is 1 iff
// g.IsPreferred(i, j).
func DominanceMatrix(g Reacher, n int) (Matrix, error) {
	if err := perrors.ValidateAlternatives(n); err != nil {
		return nil, err
	}
	m := NewMatrix(n)
	for i := 1; i <= n; i++ {
		for j := 1; j <= n; j++ {
			if g.IsPreferred(i, j) {
				m[i-1][j-1] = 1
			}
		}
	}
	return m, nil
}

// RelationalConvolution returns the n×n cell-wise minimum of matrices.
// With no matrices every cell is 0. Each matrix must be n×n.
func RelationalConvolution(matrices []Matrix, n int) (Matrix, error) {
	if err := perrors.ValidateAlternatives(n); err != nil {
		return nil, err
	}
	for i, m := range matrices {
		if err := checkSquare("dominance matrix "+strconv.Itoa(i), m, n); err != nil {
			return nil, err
		}
	}

	out := NewMatrix(n)
	if len(matrices) == 0 {
		return out, nil
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := matrices[0][i][j]
			for _, m := range matrices[1:] {
				v = min(v, m[i][j])
			}
			out[i][j] = v
		}
	}
	return out, nil
}

// StrictConvolution returns max(m[i][j] − m[j][i], 0) for every cell.
// The diagonal is always 0 and at most one of (i, j), (j, i) is positive.
func StrictConvolution(m Matrix) Matrix {
	n := m.Dim()
	out := NewMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out[i][j] = max(m[i][j]-m[j][i], 0)
		}
	}
	return out
}

// ParetoSet returns 1 − max over column i of strict, for every i. A value of
// 1 means no alternative strictly dominates i.
func ParetoSet(strict Matrix) Vector {
	n := strict.Dim()
	out := make(Vector, n)
	for i := 0; i < n; i++ {
		out[i] = 1 - strict.ColumnMax(i)
	}
	return out
}

// WeightedConvolution returns Σ weights[k]·matrices[k] over the criteria in
// weights, summed in ascending criterion order. The dimension comes from the
// lowest criterion id and every referenced matrix must match it.
//
// It fails with MISSING_INPUT when weights is empty or names a criterion that
// has no matrix, and with INVALID_WEIGHTS for negative or non-finite weights.
func WeightedConvolution(matrices map[int]Matrix, weights map[int]float64) (Matrix, error) {
	if len(weights) == 0 {
		return nil, perrors.New(perrors.ErrCodeMissingInput, "weighted convolution needs at least one weight")
	}

	criteria := slices.Sorted(maps.Keys(weights))
	for _, k := range criteria {
		if _, ok := matrices[k]; !ok {
			return nil, perrors.New(perrors.ErrCodeMissingInput, "no dominance matrix for criterion %d", k)
		}
		if err := perrors.ValidateWeight(k, weights[k]); err != nil {
			return nil, err
		}
	}

	n := matrices[criteria[0]].Dim()
	for _, k := range criteria {
		if err := checkSquare("dominance matrix "+strconv.Itoa(k), matrices[k], n); err != nil {
			return nil, err
		}
	}

	out := NewMatrix(n)
	for _, k := range criteria {
		w, m := weights[k], matrices[k]
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				out[i][j] += m[i][j] * w
			}
		}
	}
	return out, nil
}

// Combine returns the element-wise minimum of q1 and q2, which must have the
// same length.
func Combine(q1, q2 Vector) (Vector, error) {
	if len(q1) != len(q2) {
		return nil, perrors.New(perrors.ErrCodeDimensionMismatch,
			"Q1 has %d entries, Q2 has %d", len(q1), len(q2))
	}
	out := make(Vector, len(q1))
	for i := range q1 {
		out[i] = min(q1[i], q2[i])
	}
	return out, nil
}

// ArgMax returns the first index holding the maximum of v. Later entries
// equal to the maximum do not replace it. An empty v yields [NoAnswer].
func ArgMax(v Vector) Answer {
	if len(v) == 0 {
		return NoAnswer
	}
	best := Answer{Index: 0, Value: v[0]}
	for i := 1; i < len(v); i++ {
		if v[i] > best.Value {
			best = Answer{Index: i, Value: v[i]}
		}
	}
	return best
}
