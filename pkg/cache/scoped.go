package cache

// ScopedKeyer prefixes every key of an inner Keyer, giving each deployment
// sharing a redis instance its own namespace.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "permrank:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ResultKey implements Keyer.
func (k *ScopedKeyer) ResultKey(op string, opts ResultKeyOpts) string {
	return k.prefix + k.inner.ResultKey(op, opts)
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(opts)
}
