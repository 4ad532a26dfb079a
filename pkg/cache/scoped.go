package cache

// ScopedKeyer wraps a Keyer with a prefix so several tenants can share one
// backend. The API server scopes its keys per deployment:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
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

// SpriteKey generates a prefixed sprite key.
func (k *ScopedKeyer) SpriteKey(opts SpriteKeyOpts) string {
	return k.prefix + k.inner.SpriteKey(opts)
}

// LayoutKey generates a prefixed layout key.
func (k *ScopedKeyer) LayoutKey(wordsHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(wordsHash, opts)
}
