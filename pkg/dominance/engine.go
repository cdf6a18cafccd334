package dominance

import (
	"maps"
	"slices"

	perrors "github.com/matzehuels/prefgraph/pkg/errors"
)

// Engine runs the decision stages one call at a time and keeps every
// intermediate matrix and vector for inspection.
//
// Stages must be called in order: BuildDominanceMatrix for each criterion,
// then scheme A (BuildRelationalConvolution, BuildStrictConvolution,
// BuildQ1ParetoOptimalSet) and scheme B (BuildWeightedConvolution,
// BuildQ2StrictConvolution, BuildQ2ParetoOptimalSet) in either order, then
// BuildResult and FindAnswer. Calling a stage early computes it from
// whatever its inputs currently hold, which is empty for unbuilt stages.
//
// The zero value is not usable - use NewEngine. Engine is not safe for
// concurrent use.
type Engine struct {
	dominance map[int]Matrix

	relational Matrix
	strict     Matrix
	q1         Vector

	additive Matrix
	q2Strict Matrix
	q2       Vector

	result Vector
	answer Answer
}

// NewEngine returns an engine with no dominance matrices and the sentinel
// answer.
func NewEngine() *Engine {
	return &Engine{
		dominance: make(map[int]Matrix),
		answer:    NoAnswer,
	}
}

// BuildDominanceMatrix computes the dominance matrix of g over
// alternatives alternatives and stores it under criterion, replacing any
// earlier matrix for the same criterion.
//
// g must hold exactly this criterion's judgments.
func (e *Engine) BuildDominanceMatrix(criterion int, g Reacher, alternatives int) error {
	if err := perrors.ValidateCriterion(criterion); err != nil {
		return err
	}
	m, err := DominanceMatrix(g, alternatives)
	if err != nil {
		return err
	}
	e.dominance[criterion] = m
	return nil
}

// BuildRelationalConvolution stores the cell-wise minimum of all stored
// dominance matrices. Every stored matrix must be alternatives×alternatives.
func (e *Engine) BuildRelationalConvolution(alternatives int) error {
	m, err := RelationalConvolution(e.sortedMatrices(), alternatives)
	if err != nil {
		return err
	}
	e.relational = m
	return nil
}

// BuildStrictConvolution derives the scheme A strict convolution from the
// relational convolution.
func (e *Engine) BuildStrictConvolution() {
	e.strict = StrictConvolution(e.relational)
}

// BuildQ1ParetoOptimalSet derives Q1 from the scheme A strict convolution.
// Entries are 1 for non-dominated alternatives and 0 otherwise.
func (e *Engine) BuildQ1ParetoOptimalSet() {
	e.q1 = ParetoSet(e.strict)
}

// BuildWeightedConvolution stores the weighted sum of the dominance
// matrices of the criteria in weights. See [WeightedConvolution] for the
// failure modes.
func (e *Engine) BuildWeightedConvolution(weights map[int]float64) error {
	m, err := WeightedConvolution(e.dominance, weights)
	if err != nil {
		return err
	}
	e.additive = m
	return nil
}

// BuildQ2StrictConvolution derives the scheme B strict convolution from the
// additive convolution.
func (e *Engine) BuildQ2StrictConvolution() {
	e.q2Strict = StrictConvolution(e.additive)
}

// BuildQ2ParetoOptimalSet derives Q2 from the scheme B strict convolution.
// Entries are degrees of non-domination rather than flags.
func (e *Engine) BuildQ2ParetoOptimalSet() {
	e.q2 = ParetoSet(e.q2Strict)
}

// BuildResult stores min(Q1, Q2). Q1 and Q2 must have the same length.
func (e *Engine) BuildResult() error {
	r, err := Combine(e.q1, e.q2)
	if err != nil {
		return err
	}
	e.result = r
	return nil
}

// FindAnswer selects the first maximum of the result, stores it and returns
// it. An empty result yields [NoAnswer].
func (e *Engine) FindAnswer() Answer {
	e.answer = ArgMax(e.result)
	return e.answer
}

// Criteria returns the criteria with a stored dominance matrix, ascending.
func (e *Engine) Criteria() []int {
	return slices.Sorted(maps.Keys(e.dominance))
}

// Dominance returns the stored matrix for criterion and whether one exists.
func (e *Engine) Dominance(criterion int) (Matrix, bool) {
	m, ok := e.dominance[criterion]
	return m, ok
}

// RelationalConvolution returns the scheme A aggregate.
func (e *Engine) RelationalConvolution() Matrix { return e.relational }

// StrictConvolution returns the scheme A strict convolution.
func (e *Engine) StrictConvolution() Matrix { return e.strict }

// Q1 returns the scheme A Pareto indicator.
func (e *Engine) Q1() Vector { return e.q1 }

// AdditiveConvolution returns the scheme B aggregate.
func (e *Engine) AdditiveConvolution() Matrix { return e.additive }

// Q2StrictConvolution returns the scheme B strict convolution.
func (e *Engine) Q2StrictConvolution() Matrix { return e.q2Strict }

// Q2 returns the scheme B Pareto indicator.
func (e *Engine) Q2() Vector { return e.q2 }

// Result returns min(Q1, Q2).
func (e *Engine) Result() Vector { return e.result }

// Answer returns the last answer computed by FindAnswer.
func (e *Engine) Answer() Answer { return e.answer }

func (e *Engine) sortedMatrices() []Matrix {
	out := make([]Matrix, 0, len(e.dominance))
	for _, k := range e.Criteria() {
		out = append(out, e.dominance[k])
	}
	return out
}
