package cache

// DiagramKeyOpts holds every option that changes rendered output.
type DiagramKeyOpts struct {
	Style              string `json:"style"`
	IncludeControlFlow bool   `json:"include_control_flow"`
	ModuleName         string `json:"module_name"`
	LabelWidth         int    `json:"label_width"`
}

// Keyer derives cache keys.
type Keyer interface {
	// DiagramKey returns the key of a rendered diagram for the source with
	// the given content hash.
	DiagramKey(sourceHash string, opts DiagramKeyOpts) string
}

// DefaultKeyer hashes the source hash and options together.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DiagramKey implements [Keyer].
func (DefaultKeyer) DiagramKey(sourceHash string, opts DiagramKeyOpts) string {
	return hashKey("diagram", sourceHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "v1.2.0:")
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

// DiagramKey generates a prefixed diagram key.
func (k *ScopedKeyer) DiagramKey(sourceHash string, opts DiagramKeyOpts) string {
	return k.prefix + k.inner.DiagramKey(sourceHash, opts)
}
