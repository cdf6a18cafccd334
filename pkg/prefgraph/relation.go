package prefgraph

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	perrors "github.com/matzehuels/prefgraph/pkg/errors"
)

var (
	// ErrUnknownOperator is returned when a relation carries an operator other
	// than [StrictlyPreferred] or [Equivalent].
	ErrUnknownOperator = errors.New("unknown relation operator")

	// ErrMalformedRelation is returned by [ParseRelation] when the text is not
	// of the form "<int><op><int>".
	ErrMalformedRelation = errors.New("malformed relation")
)

// Operator is the comparison asserted by a [Relation].
type Operator string

const (
	// StrictlyPreferred asserts that Left is better than Right.
	StrictlyPreferred Operator = ">"
	// Equivalent asserts that Left and Right are interchangeable.
	Equivalent Operator = "="
)

// Valid reports whether op is one of the two legal operators.
func (op Operator) Valid() bool {
	return op == StrictlyPreferred || op == Equivalent
}

// Relation is a single judgment (Left, Op, Right) over 1-based alternative
// identifiers.
//
// Relations encode as text ("1>2", "3=1") in JSON, TOML and YAML.
type Relation struct {
	Left  int
	Op    Operator
	Right int
}

// Prefer returns the relation "left > right".
func Prefer(left, right int) Relation {
	return Relation{Left: left, Op: StrictlyPreferred, Right: right}
}

// Equal returns the relation "left = right".
func Equal(left, right int) Relation {
	return Relation{Left: left, Op: Equivalent, Right: right}
}

// String returns the compact text form, e.g. "1>2".
func (r Relation) String() string {
	return fmt.Sprintf("%d%s%d", r.Left, r.Op, r.Right)
}

// Validate checks the operator and, when alternatives > 0, that both
// endpoints lie in [1, alternatives].
func (r Relation) Validate(alternatives int) error {
	if !r.Op.Valid() {
		return perrors.Wrap(perrors.ErrCodeInvalidRelation, ErrUnknownOperator, "relation %s", r)
	}
	if alternatives <= 0 {
		return nil
	}
	if err := perrors.ValidateAlternative(r.Left, alternatives); err != nil {
		return err
	}
	return perrors.ValidateAlternative(r.Right, alternatives)
}

// MarshalText implements encoding.TextMarshaler.
func (r Relation) MarshalText() ([]byte, error) {
	if !r.Op.Valid() {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidRelation, ErrUnknownOperator, "relation %s", r)
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Relation) UnmarshalText(text []byte) error {
	parsed, err := ParseRelation(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseRelation parses the text form of a relation. Whitespace around the
// operands is ignored: "1 > 2" and "1>2" are equivalent.
func ParseRelation(s string) (Relation, error) {
	idx := strings.IndexAny(s, "><=")
	if idx <= 0 || idx == len(s)-1 {
		return Relation{}, perrors.Wrap(perrors.ErrCodeInvalidRelation, ErrMalformedRelation, "%q", s)
	}

	op := Operator(s[idx : idx+1])
	if !op.Valid() {
		return Relation{}, perrors.Wrap(perrors.ErrCodeInvalidRelation, ErrUnknownOperator, "%q", s)
	}

	left, err := strconv.Atoi(strings.TrimSpace(s[:idx]))
	if err != nil {
		return Relation{}, perrors.Wrap(perrors.ErrCodeInvalidRelation, ErrMalformedRelation, "%q: left operand", s)
	}
	right, err := strconv.Atoi(strings.TrimSpace(s[idx+1:]))
	if err != nil {
		return Relation{}, perrors.Wrap(perrors.ErrCodeInvalidRelation, ErrMalformedRelation, "%q: right operand", s)
	}

	return Relation{Left: left, Op: op, Right: right}, nil
}

// ParseRelations parses each string with [ParseRelation], stopping at the
// first error.
func ParseRelations(ss []string) ([]Relation, error) {
	rels := make([]Relation, 0, len(ss))
	for _, s := range ss {
		r, err := ParseRelation(s)
		if err != nil {
			return nil, err
		}
		rels = append(rels, r)
	}
	return rels, nil
}
