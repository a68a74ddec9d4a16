// SPDX-License-Identifier: MIT

package spectrum

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultPrecision is the number of decimals eigenvalues are rounded to
	// before sorting, serialising and hashing.
	DefaultPrecision = 8

	// DefaultHashLength is the number of hex characters kept from SHA-256.
	DefaultHashLength = 16

	// MaxPrecision bounds WithPrecision; float64 carries ~15-16 significant digits.
	MaxPrecision = 15

	// MinHashLength and MaxHashLength bound WithHashLength.
	MinHashLength = 8
	MaxHashLength = 64

	// ClusterTolerance is the distance within which eigenvalues of a
	// non-symmetric matrix are treated as one perturbed multiple root and
	// replaced by their mean before rounding. A defective root of multiplicity
	// k scatters by roughly eps^(1/k), so the tolerance covers k up to 3.
	ClusterTolerance = 1e-4
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicPrecisionInvalid  = "spectrum: WithPrecision: precision must be in [0,15]"
	panicHashLengthInvalid = "spectrum: WithHashLength: length must be in [8,64]"
)

// Option mutates Options. Constructors panic only on nonsensical values
// (programmer error); runtime code never panics.
type Option func(*Options)

// Options holds the fingerprint policy.
type Options struct {
	Precision  int
	HashLength int
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{Precision: DefaultPrecision, HashLength: DefaultHashLength}
}

// WithPrecision sets the rounding precision in decimals.
func WithPrecision(p int) Option {
	if p < 0 || p > MaxPrecision {
		panic(panicPrecisionInvalid)
	}

	return func(o *Options) { o.Precision = p }
}

// WithHashLength sets how many hex characters of the digest are kept.
func WithHashLength(n int) Option {
	if n < MinHashLength || n > MaxHashLength {
		panic(panicHashLengthInvalid)
	}

	return func(o *Options) { o.HashLength = n }
}

func gatherOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
