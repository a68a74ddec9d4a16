// SPDX-License-Identifier: MIT

package matrix

import "fmt"

// Kind is the closed set of matrix representations smol computes.
// The zero value is not a valid kind.
type Kind int

const (
	// Adjacency A: symmetric 0/1.
	Adjacency Kind = iota + 1
	// Kirchhoff Laplacian L = D − A.
	Kirchhoff
	// Signless Laplacian Q = D + A.
	Signless
	// NormalizedLaplacian I − D^{-1/2} A D^{-1/2}; isolated vertices contribute
	// no off-diagonal mass.
	NormalizedLaplacian
	// NonBacktracking is the Hashimoto matrix B on directed edges (2m×2m).
	NonBacktracking
	// NBLTransition is T = D_B^{-1} B, row-stochastic except for zero rows at
	// arcs entering a degree-1 vertex.
	NBLTransition
	// Distance holds shortest-path lengths; defined only for connected graphs.
	Distance
)

// kindTags are the persisted short names. Order matches the constants.
var kindTags = [...]string{
	Adjacency:           "adj",
	Kirchhoff:           "kirchhoff",
	Signless:            "signless",
	NormalizedLaplacian: "lap",
	NonBacktracking:     "nb",
	NBLTransition:       "nbl",
	Distance:            "dist",
}

// Kinds returns every kind in its stable storage order.
func Kinds() []Kind {
	return []Kind{Adjacency, Kirchhoff, Signless, NormalizedLaplacian, NonBacktracking, NBLTransition, Distance}
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= Adjacency && k <= Distance
}

// String returns the short tag ("adj", "nbl", ...).
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindTags[k]
}

// Symmetric reports whether matrices of this kind are symmetric, i.e. whether
// their spectrum is real and a symmetric eigensolver applies.
func (k Kind) Symmetric() bool {
	switch k {
	case NonBacktracking, NBLTransition:
		return false
	default:
		return true
	}
}

// ArcIndexed reports whether the kind is indexed by directed edges (2m×2m)
// rather than vertices (n×n).
func (k Kind) ArcIndexed() bool {
	return !k.Symmetric()
}

// ParseKind maps a short tag back to its Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if kindTags[k] == s {
			return k, nil
		}
	}

	return 0, matrixErrorf(opParseKind, fmt.Errorf("%q: %w", s, ErrUnknownKind))
}

// MarshalText implements encoding.TextMarshaler so kinds serialise by tag.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("Kind(%d): %w", int(k), ErrUnknownKind)
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v

	return nil
}
