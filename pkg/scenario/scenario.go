// Package scenario describes a complete decision input as it is stored on
// disk and sent over the API, and generates random ones.
//
// A scenario lists the number of alternatives and, per criterion, a weight
// and the relations judged under that criterion:
//
//	alternatives = 3
//
//	[[criteria]]
//	id = 1
//	weight = 0.5
//	relations = ["1>2", "2>3"]
//
//	[[criteria]]
//	id = 2
//	weight = 0.5
//	relations = ["2>1", "1=3"]
//
// The same structure is accepted as JSON and YAML; see pkg/io.
package scenario

import (
	"cmp"
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/prefgraph/pkg/dominance"
	perrors "github.com/matzehuels/prefgraph/pkg/errors"
	"github.com/matzehuels/prefgraph/pkg/prefgraph"
)

var validate = validator.New()

// Scenario is a complete decision input.
type Scenario struct {
	Name         string      `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
	Alternatives int         `json:"alternatives" toml:"alternatives" yaml:"alternatives" validate:"min=0,max=1000"`
	Criteria     []Criterion `json:"criteria" toml:"criteria" yaml:"criteria" validate:"dive"`
}

// Criterion is one dimension of comparison.
type Criterion struct {
	ID        int                  `json:"id" toml:"id" yaml:"id" validate:"min=1"`
	Weight    float64              `json:"weight" toml:"weight" yaml:"weight" validate:"min=0"`
	Relations []prefgraph.Relation `json:"relations" toml:"relations" yaml:"relations"`
}

// Validate checks field bounds, duplicate criterion ids, weights and that
// every relation names alternatives in [1, Alternatives]. Failures carry
// INVALID_SCENARIO.
func (s *Scenario) Validate() error {
	if err := validate.Struct(s); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidScenario, err, "scenario validation failed")
	}
	if err := perrors.ValidateCriteria(len(s.Criteria)); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidScenario, err, "scenario validation failed")
	}

	seen := make(map[int]bool, len(s.Criteria))
	for _, c := range s.Criteria {
		if seen[c.ID] {
			return perrors.New(perrors.ErrCodeInvalidScenario, "duplicate criterion %d", c.ID)
		}
		seen[c.ID] = true

		if err := perrors.ValidateWeight(c.ID, c.Weight); err != nil {
			return perrors.Wrap(perrors.ErrCodeInvalidScenario, err, "criterion %d", c.ID)
		}
		for _, r := range c.Relations {
			if err := r.Validate(s.Alternatives); err != nil {
				return perrors.Wrap(perrors.ErrCodeInvalidScenario, err, "criterion %d", c.ID)
			}
		}
	}
	return nil
}

// Problem converts s into the input of [dominance.Decide]. Every criterion
// contributes its relations and its weight.
func (s *Scenario) Problem() dominance.Problem {
	p := dominance.Problem{
		Alternatives: s.Alternatives,
		Relations:    make(map[int][]prefgraph.Relation, len(s.Criteria)),
		Weights:      make(map[int]float64, len(s.Criteria)),
	}
	for _, c := range s.Criteria {
		p.Relations[c.ID] = slices.Clone(c.Relations)
		p.Weights[c.ID] = c.Weight
	}
	return p
}

// Criterion returns the criterion with the given id.
func (s *Scenario) Criterion(id int) (Criterion, bool) {
	for _, c := range s.Criteria {
		if c.ID == id {
			return c, true
		}
	}
	return Criterion{}, false
}

// Weights returns the weight of every criterion keyed by id.
func (s *Scenario) Weights() map[int]float64 {
	out := make(map[int]float64, len(s.Criteria))
	for _, c := range s.Criteria {
		out[c.ID] = c.Weight
	}
	return out
}

// Sort orders the criteria by id.
func (s *Scenario) Sort() {
	slices.SortFunc(s.Criteria, func(a, b Criterion) int { return cmp.Compare(a.ID, b.ID) })
}
