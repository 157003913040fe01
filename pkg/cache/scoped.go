package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments or
// tenants can share one backend without colliding.
//
// Example usage:
//
//	staging := NewScopedKeyer(NewDefaultKeyer(), "staging:")
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

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(snapshotHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(snapshotHash, opts)
}

// RecalcKey generates a prefixed key for edge recalculation caching.
func (k *ScopedKeyer) RecalcKey(snapshotHash string, nodeID string) string {
	return k.prefix + k.inner.RecalcKey(snapshotHash, nodeID)
}
