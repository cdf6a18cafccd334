package dominance

import (
	"maps"
	"slices"

	perrors "github.com/matzehuels/prefgraph/pkg/errors"
	"github.com/matzehuels/prefgraph/pkg/prefgraph"
)

// DefaultTolerance is the allowed deviation of the weight sum from 1 when
// Problem.RequireNormalized is set and Problem.Tolerance is zero. Weights
// rounded to two decimals drift by up to 0.005 each.
const DefaultTolerance = 0.011

// Problem is a complete decision input.
type Problem struct {
	// Alternatives is N. Alternatives are identified 1..N.
	Alternatives int

	// Relations holds each criterion's judgments keyed by criterion id.
	// A criterion with no relations still contributes its identity
	// dominance matrix.
	Relations map[int][]prefgraph.Relation

	// Weights feeds the additive convolution. Every key must also appear
	// in Relations.
	Weights map[int]float64

	// RequireNormalized rejects weights whose sum is not 1 within
	// Tolerance (DefaultTolerance when zero).
	RequireNormalized bool
	Tolerance         float64
}

// Decision holds every stage of a decision run. It is the unit the cache
// stores and the API returns.
type Decision struct {
	Alternatives int            `json:"alternatives"`
	Criteria     []int          `json:"criteria"`
	Dominance    map[int]Matrix `json:"dominance"`

	Relational Matrix `json:"relational"`
	Strict     Matrix `json:"strict"`
	Q1         Vector `json:"q1"`

	Additive Matrix `json:"additive"`
	Q2Strict Matrix `json:"q2_strict"`
	Q2       Vector `json:"q2"`

	Result Vector `json:"result"`
	Answer Answer `json:"answer"`
}

// Decide validates p, builds one preference graph per criterion and runs
// every stage in order.
func Decide(p Problem) (*Decision, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	e := NewEngine()
	for _, k := range slices.Sorted(maps.Keys(p.Relations)) {
		g, err := prefgraph.FromRelations(p.Relations[k])
		if err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidRelation, err, "criterion %d", k)
		}
		if err := e.BuildDominanceMatrix(k, g, p.Alternatives); err != nil {
			return nil, err
		}
	}

	if err := e.BuildRelationalConvolution(p.Alternatives); err != nil {
		return nil, err
	}
	e.BuildStrictConvolution()
	e.BuildQ1ParetoOptimalSet()

	if err := e.BuildWeightedConvolution(p.Weights); err != nil {
		return nil, err
	}
	e.BuildQ2StrictConvolution()
	e.BuildQ2ParetoOptimalSet()

	if err := e.BuildResult(); err != nil {
		return nil, err
	}
	e.FindAnswer()

	return e.Decision(p.Alternatives), nil
}

// Validate checks counts, criterion ids, relation endpoints and weights
// without running the pipeline.
func (p Problem) Validate() error {
	if err := perrors.ValidateAlternatives(p.Alternatives); err != nil {
		return err
	}
	if err := perrors.ValidateCriteria(len(p.Relations)); err != nil {
		return err
	}
	for k, rels := range p.Relations {
		if err := perrors.ValidateCriterion(k); err != nil {
			return err
		}
		for _, r := range rels {
			if err := r.Validate(p.Alternatives); err != nil {
				return perrors.Wrap(perrors.ErrCodeInvalidRelation, err, "criterion %d", k)
			}
		}
	}
	for k, w := range p.Weights {
		if err := perrors.ValidateWeight(k, w); err != nil {
			return err
		}
	}
	if p.RequireNormalized && len(p.Weights) > 0 {
		tol := p.Tolerance
		if tol <= 0 {
			tol = DefaultTolerance
		}
		if err := perrors.ValidateNormalized(p.Weights, tol); err != nil {
			return err
		}
	}
	return nil
}

// Decision snapshots the engine's stages. The returned value shares no
// memory with the engine.
func (e *Engine) Decision(alternatives int) *Decision {
	d := &Decision{
		Alternatives: alternatives,
		Criteria:     e.Criteria(),
		Dominance:    make(map[int]Matrix, len(e.dominance)),
		Relational:   e.relational.Clone(),
		Strict:       e.strict.Clone(),
		Q1:           e.q1.Clone(),
		Additive:     e.additive.Clone(),
		Q2Strict:     e.q2Strict.Clone(),
		Q2:           e.q2.Clone(),
		Result:       e.result.Clone(),
		Answer:       e.answer,
	}
	for k, m := range e.dominance {
		d.Dominance[k] = m.Clone()
	}
	return d
}

// Pareto reports whether the winning alternative is non-dominated under
// both schemes.
func (d *Decision) Pareto() bool {
	return d.Answer.Found() && d.Answer.Value == 1
}
