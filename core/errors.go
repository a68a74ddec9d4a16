// SPDX-License-Identifier: MIT

package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph construction and derivation.
// Callers branch with errors.Is; call sites attach context with coreErrorf.
var (
	// ErrInvalidOrder indicates a vertex count n <= 0.
	ErrInvalidOrder = errors.New("core: vertex count must be positive")

	// ErrSelfLoop indicates an edge (v,v).
	ErrSelfLoop = errors.New("core: self-loop not allowed")

	// ErrMultiEdge indicates the same unordered pair was given twice.
	ErrMultiEdge = errors.New("core: multi-edge not allowed")

	// ErrVertexOutOfRange indicates an endpoint outside [0,n).
	ErrVertexOutOfRange = errors.New("core: vertex out of range")

	// ErrEdgeNotFound indicates a derivation tried to remove a missing edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrBadPermutation indicates Relabel received something that is not a
	// permutation of 0..n-1.
	ErrBadPermutation = errors.New("core: not a permutation")
)

// Operation tags used in wrapped errors.
const (
	opNew     = "New"
	opRelabel = "Relabel"
	opSwitch  = "Switch"
	opInduced = "Induced"
)

// coreErrorf attaches an operation tag and a formatted detail to a sentinel.
func coreErrorf(op string, err error, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", op, fmt.Sprintf(format, args...), err)
}
