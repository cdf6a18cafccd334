package cache

// DecisionKeyOpts holds the options that change a decision result.
type DecisionKeyOpts struct {
	RequireNormalized bool    `json:"require_normalized,omitempty"`
	Tolerance         float64 `json:"tolerance,omitempty"`
}

// RenderKeyOpts holds the options that change a rendered artifact.
type RenderKeyOpts struct {
	Criterion int    `json:"criterion,omitempty"`
	Decision  bool   `json:"decision,omitempty"`
	Format    string `json:"format"`
}

// Keyer derives cache keys from a scenario hash and options.
type Keyer interface {
	DecisionKey(scenarioHash string, opts DecisionKeyOpts) string
	RenderKey(scenarioHash string, opts RenderKeyOpts) string
}

// DefaultKeyer produces keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DecisionKey generates a key for a decision.
func (DefaultKeyer) DecisionKey(scenarioHash string, opts DecisionKeyOpts) string {
	return hashKey("decision", scenarioHash, opts)
}

// RenderKey generates a key for a rendered graph.
func (DefaultKeyer) RenderKey(scenarioHash string, opts RenderKeyOpts) string {
	return hashKey("render", scenarioHash, opts)
}

var _ Keyer = DefaultKeyer{}
