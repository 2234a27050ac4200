package cache

// ScopedKeyer prefixes every key of an inner Keyer. It keeps censusplot's
// entries apart from other users of a shared Redis server.
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
func (k *ScopedKeyer) ArtifactKey(datasetID string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(datasetID, opts)
}
