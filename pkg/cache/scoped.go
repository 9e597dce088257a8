package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// This is useful when several servers or environments share one Redis
// instance.
//
// Example usage:
//
//	// Keys for the staging server
//	stagingKeyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
//
//	// Unprefixed keys for local use
//	localKeyer := NewDefaultKeyer()
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

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(preset string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(preset, opts)
}

// GraphKey generates a prefixed key for node-link diagram caching.
func (k *ScopedKeyer) GraphKey(preset string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(preset, opts)
}
