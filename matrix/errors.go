// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Every algorithm in this package returns one of these sentinels, wrapped with
// an operation tag via matrixErrorf, and tests match them with errors.Is.
// Nothing here panics on user-triggered conditions.

package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned when a requested shape is negative.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates a row or column index outside valid bounds.
	// Public indexers (At/Set) return this, never panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand shapes, e.g. Mul
	// where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrGraphNil indicates a nil *core.Graph was passed to Build.
	ErrGraphNil = errors.New("matrix: graph is nil")

	// ErrUnknownKind indicates a Kind value outside the closed enumeration.
	ErrUnknownKind = errors.New("matrix: unknown matrix kind")

	// ErrNilMatrix indicates a nil *Dense receiver or argument.
	ErrNilMatrix = errors.New("matrix: nil matrix")
)

// Operation tags (no magic strings at call sites).
const (
	opNewDense      = "NewDense"
	opMul           = "Mul"
	opTrace         = "Trace"
	opBuild         = "Build"
	opParseKind     = "ParseKind"
	opFloydWarshall = "FloydWarshall"
)

// matrixErrorf prefixes err with an operation tag, preserving errors.Is.
func matrixErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// denseErrorf wraps an error with Dense method context and coordinates.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}
