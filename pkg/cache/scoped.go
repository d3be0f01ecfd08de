package cache

// ScopedKeyer prefixes every key of an inner [Keyer].
//
// The CLI and server scope keys by engine version so a cache shared across
// upgrades never serves a layout computed by older resolution rules:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "v1.2.0:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer falls back
// to [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed layout key.
func (k *ScopedKeyer) LayoutKey(paramsHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(paramsHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
