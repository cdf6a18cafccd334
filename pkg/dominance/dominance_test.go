package dominance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/matzehuels/prefgraph/pkg/errors"
	"github.com/matzehuels/prefgraph/pkg/prefgraph"
)

func chain(t *testing.T, rels ...string) *prefgraph.Graph {
	t.Helper()
	parsed, err := prefgraph.ParseRelations(rels)
	require.NoError(t, err)
	g, err := prefgraph.FromRelations(parsed)
	require.NoError(t, err)
	return g
}

func TestDominanceMatrixBooleanRange(t *testing.T) {
	g := chain(t, "1>2", "2=3", "4>1", "5=5")

	m, err := DominanceMatrix(g, 5)
	require.NoError(t, err)
	require.Equal(t, 5, m.Dim())

	for i, row := range m {
		for j, v := range row {
			assert.True(t, v == 0 || v == 1, "cell (%d,%d) = %g", i, j, v)
		}
		assert.Equal(t, 1.0, row[i], "diagonal (%d,%d)", i, i)
	}
}

func TestDominanceMatrixNegativeCount(t *testing.T) {
	_, err := DominanceMatrix(prefgraph.New(), -1)
	require.Error(t, err)
	assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidInput))
}

func TestRelationalConvolutionUnanimity(t *testing.T) {
	a := Matrix{{1, 1, 0}, {0, 1, 1}, {1, 0, 1}}
	b := Matrix{{1, 0, 0}, {1, 1, 1}, {1, 1, 1}}
	c := Matrix{{1, 1, 1}, {0, 1, 1}, {1, 0, 1}}

	got, err := RelationalConvolution([]Matrix{a, b, c}, 3)
	require.NoError(t, err)

	for i := range 3 {
		for j := range 3 {
			all := a[i][j] == 1 && b[i][j] == 1 && c[i][j] == 1
			assert.Equal(t, all, got[i][j] == 1, "cell (%d,%d)", i, j)
		}
	}
}

func TestRelationalConvolutionNoMatrices(t *testing.T) {
	got, err := RelationalConvolution(nil, 3)
	require.NoError(t, err)
	assert.Equal(t, NewMatrix(3), got)
}

func TestRelationalConvolutionDimensionMismatch(t *testing.T) {
	_, err := RelationalConvolution([]Matrix{NewMatrix(3), NewMatrix(2)}, 3)
	require.Error(t, err)
	assert.True(t, perrors.Is(err, perrors.ErrCodeDimensionMismatch))

	ragged := Matrix{{1, 0}, {1}}
	_, err = RelationalConvolution([]Matrix{ragged}, 2)
	assert.True(t, perrors.Is(err, perrors.ErrCodeDimensionMismatch))
}

func TestStrictConvolutionAntisymmetry(t *testing.T) {
	inputs := []Matrix{
		{{1, 1, 0}, {1, 1, 1}, {0, 0, 1}},
		{{1, 0.5, 1}, {0.5, 1, 1}, {0.5, 0, 1}},
		{{0.3, 0.9, 0.2, 0.4}, {0.1, 0.7, 0.8, 0}, {0.6, 0.6, 1, 0.5}, {0.4, 1, 0.2, 0}},
	}
	for _, m := range inputs {
		s := StrictConvolution(m)
		for i := range s {
			assert.Zero(t, s[i][i], "diagonal %d", i)
			for j := range s {
				assert.GreaterOrEqual(t, s[i][j], 0.0)
				assert.False(t, s[i][j] > 0 && s[j][i] > 0, "both (%d,%d) and (%d,%d) positive", i, j, j, i)
			}
		}
	}
}

func TestParetoSetBounds(t *testing.T) {
	q1 := ParetoSet(StrictConvolution(Matrix{{1, 1, 0}, {0, 1, 0}, {1, 1, 1}}))
	for i, v := range q1 {
		assert.True(t, v == 0 || v == 1, "Q1[%d] = %g", i, v)
	}
	assert.Equal(t, Vector{0, 0, 1}, q1)

	q2 := ParetoSet(StrictConvolution(Matrix{{1, 0.3, 0.8}, {0.6, 1, 0.1}, {0.2, 0.5, 1}}))
	for i, v := range q2 {
		assert.True(t, v >= 0 && v <= 1, "Q2[%d] = %g", i, v)
	}
}

func TestWeightedConvolution(t *testing.T) {
	matrices := map[int]Matrix{
		1: {{1, 1}, {0, 1}},
		2: {{1, 0}, {1, 1}},
	}

	got, err := WeightedConvolution(matrices, map[int]float64{1: 0.25, 2: 0.75})
	require.NoError(t, err)
	assert.Equal(t, Matrix{{1, 0.25}, {0.75, 1}}, got)

	// Criteria outside the weight map do not contribute.
	got, err = WeightedConvolution(matrices, map[int]float64{2: 1})
	require.NoError(t, err)
	assert.Equal(t, matrices[2], got)
}

func TestWeightedConvolutionErrors(t *testing.T) {
	matrices := map[int]Matrix{1: NewMatrix(2), 2: NewMatrix(3)}

	tests := []struct {
		name    string
		weights map[int]float64
		code    perrors.Code
	}{
		{"empty", map[int]float64{}, perrors.ErrCodeMissingInput},
		{"nil", nil, perrors.ErrCodeMissingInput},
		{"unknown criterion", map[int]float64{1: 0.5, 7: 0.5}, perrors.ErrCodeMissingInput},
		{"negative", map[int]float64{1: -0.1}, perrors.ErrCodeInvalidWeights},
		{"nan", map[int]float64{1: math.NaN()}, perrors.ErrCodeInvalidWeights},
		{"inf", map[int]float64{1: math.Inf(1)}, perrors.ErrCodeInvalidWeights},
		{"dimension", map[int]float64{1: 0.5, 2: 0.5}, perrors.ErrCodeDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WeightedConvolution(matrices, tt.weights)
			require.Error(t, err)
			assert.Equal(t, tt.code, perrors.GetCode(err))
		})
	}
}

func TestCombine(t *testing.T) {
	q1 := Vector{1, 0, 1, 1}
	q2 := Vector{0.4, 1, 1, 0.9}

	got, err := Combine(q1, q2)
	require.NoError(t, err)
	assert.Equal(t, Vector{0.4, 0, 1, 0.9}, got)

	for i, v := range got {
		if v == 1 {
			assert.Equal(t, 1.0, q1[i])
			assert.Equal(t, 1.0, q2[i])
		}
	}

	_, err = Combine(Vector{1, 1}, Vector{1})
	assert.True(t, perrors.Is(err, perrors.ErrCodeDimensionMismatch))
}

func TestArgMax(t *testing.T) {
	tests := []struct {
		name string
		v    Vector
		want Answer
	}{
		{"tie goes to first", Vector{0.4, 0.7, 0.7, 0.2}, Answer{Index: 1, Value: 0.7}},
		{"single", Vector{0}, Answer{Index: 0, Value: 0}},
		{"last", Vector{0, 0.1, 0.2}, Answer{Index: 2, Value: 0.2}},
		{"all equal", Vector{1, 1, 1}, Answer{Index: 0, Value: 1}},
		{"empty", Vector{}, NoAnswer},
		{"nil", nil, NoAnswer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ArgMax(tt.v))
		})
	}
}

func TestAnswerAlternative(t *testing.T) {
	assert.Equal(t, 2, Answer{Index: 1, Value: 0.7}.Alternative())
	assert.True(t, Answer{Index: 0}.Found())
	assert.Equal(t, -1, NoAnswer.Alternative())
	assert.False(t, NoAnswer.Found())
}
