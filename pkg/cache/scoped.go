package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one Redis instance without reading each other's entries.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DecisionKey generates a prefixed decision key.
func (k *ScopedKeyer) DecisionKey(scenarioHash string, opts DecisionKeyOpts) string {
	return k.prefix + k.inner.DecisionKey(scenarioHash, opts)
}

// RenderKey generates a prefixed render key.
func (k *ScopedKeyer) RenderKey(scenarioHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(scenarioHash, opts)
}
