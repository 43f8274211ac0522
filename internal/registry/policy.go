package registry

// PolicyKey is one of the closed set of recognized config() keys.
type PolicyKey string

const (
	SupportsMultipleSecureCodecs    PolicyKey = "supports-multiple-secure-codecs"
	SupportsSecureWithNonSecureCodec PolicyKey = "supports-secure-with-non-secure-codec"
)

// Policy holds the two boolean flags consulted by the reclaim engine.
// Defaults are both true (permissive): a secure codec may coexist with
// another secure codec, and with a non-secure codec.
type Policy struct {
	SupportsMultipleSecureCodecs     bool
	SupportsSecureWithNonSecureCodec bool
}

// DefaultPolicy returns the permissive startup defaults.
func DefaultPolicy() Policy {
	return Policy{
		SupportsMultipleSecureCodecs:     true,
		SupportsSecureWithNonSecureCodec: true,
	}
}

// PolicyEntry is one (key, value) pair as accepted by config(). value is a
// 64-bit integer interpreted as a boolean: non-zero is true.
type PolicyEntry struct {
	Key   PolicyKey
	Value uint64
}

// apply folds a policy entry into p. Unknown keys are silently ignored, and
// later entries for the same key win (last-write-wins), matching config()'s
// idempotent, commutative-per-key contract.
func (p *Policy) apply(entry PolicyEntry) {
	switch entry.Key {
	case SupportsMultipleSecureCodecs:
		p.SupportsMultipleSecureCodecs = entry.Value != 0
	case SupportsSecureWithNonSecureCodec:
		p.SupportsSecureWithNonSecureCodec = entry.Value != 0
	}
}
