package scenario

import (
	"math"
	"math/rand/v2"

	perrors "github.com/matzehuels/prefgraph/pkg/errors"
	"github.com/matzehuels/prefgraph/pkg/prefgraph"
)

// strictThreshold is the draw above which an adjacent pair in a generated
// chain is strictly ordered rather than equivalent.
const strictThreshold = 0.3

// Source supplies the randomness used by the generator. *rand.Rand
// satisfies it; tests substitute fixed sequences.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n).
	IntN(n int) int
}

// NewSource returns a deterministic PCG source for seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// GenerateWeights draws one weight per criterion 1..criteria, normalizes by
// the sum and rounds each to two decimals. The rounded weights need not sum
// to exactly 1.
func GenerateWeights(src Source, criteria int) map[int]float64 {
	raw := make([]float64, criteria)
	var sum float64
	for i := range raw {
		raw[i] = src.Float64()
		sum += raw[i]
	}

	// All-zero draws fall back to equal weights.
	if sum == 0 {
		for i := range raw {
			raw[i] = 1
		}
		sum = float64(criteria)
	}

	out := make(map[int]float64, criteria)
	for i, v := range raw {
		out[i+1] = round2(v / sum)
	}
	return out
}

// Shuffle returns a random permutation of 1..alternatives using
// Fisher-Yates from the last index down.
func Shuffle(src Source, alternatives int) []int {
	out := make([]int, alternatives)
	for i := range out {
		out[i] = i + 1
	}
	for i := len(out) - 1; i >= 0; i-- {
		j := src.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// GenerateRelations returns, for each criterion 1..criteria, a chain of
// alternatives-1 relations over a fresh shuffle. Each adjacent pair is
// strict with probability 0.7 and equivalent otherwise.
func GenerateRelations(src Source, criteria, alternatives int) map[int][]prefgraph.Relation {
	out := make(map[int][]prefgraph.Relation, criteria)
	for k := 1; k <= criteria; k++ {
		order := Shuffle(src, alternatives)
		rels := make([]prefgraph.Relation, 0, max(len(order)-1, 0))
		for j := 0; j+1 < len(order); j++ {
			a, b := order[j], order[j+1]
			if src.Float64() > strictThreshold {
				rels = append(rels, prefgraph.Prefer(a, b))
			} else {
				rels = append(rels, prefgraph.Equal(a, b))
			}
		}
		out[k] = rels
	}
	return out
}

// Generate builds a random scenario. Weights are drawn before relations,
// so a given source and counts always produce the same scenario.
func Generate(src Source, alternatives, criteria int) (*Scenario, error) {
	if err := perrors.ValidateAlternatives(alternatives); err != nil {
		return nil, err
	}
	if err := perrors.ValidateCriteria(criteria); err != nil {
		return nil, err
	}

	weights := GenerateWeights(src, criteria)
	relations := GenerateRelations(src, criteria, alternatives)

	s := &Scenario{
		Alternatives: alternatives,
		Criteria:     make([]Criterion, 0, criteria),
	}
	for k := 1; k <= criteria; k++ {
		s.Criteria = append(s.Criteria, Criterion{
			ID:        k,
			Weight:    weights[k],
			Relations: relations[k],
		})
	}
	return s, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
