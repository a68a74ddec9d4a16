// SPDX-License-Identifier: MIT
// Package: smol/builder
//
// errors.go: sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Constructors attach method context with builderErrorf and keep %w.
//   • Constructors never panic on bad parameters.

package builder

import (
	"errors"
	"fmt"
)

// ErrTooFewVertices indicates that a size parameter (n, k, partition size,
// blade count) is below the minimum for the requested family.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates that p lies outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates that a stochastic constructor got a nil *rand.Rand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrNoGraphs indicates DisjointUnion was called without operands.
var ErrNoGraphs = errors.New("builder: no graphs to combine")

// builderErrorf prefixes a sentinel with the constructor name and a detail:
// "<Method>: <detail>: <sentinel>".
func builderErrorf(method string, err error, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), err)
}
