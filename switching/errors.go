// SPDX-License-Identifier: MIT

package switching

import (
	"errors"
	"fmt"
)

// Sentinel errors. Structural invalidity and spectral rejection are NOT
// errors: they are candidate states.
var (
	// ErrGraphNil is returned when a required graph is nil.
	ErrGraphNil = errors.New("switching: graph is nil")

	// ErrBadConfiguration indicates a configuration whose precondition does not
	// hold on the graph it is applied to (missing edge, present non-edge,
	// repeated vertex, leaf not exclusive to its hub).
	ErrBadConfiguration = errors.New("switching: configuration precondition violated")

	// ErrInvalidTransition indicates an illegal candidate state change.
	ErrInvalidTransition = errors.New("switching: invalid state transition")

	// ErrCertificationDivergence is returned under strict certification when
	// the trace verdict and the eigenvalue verdict disagree.
	ErrCertificationDivergence = errors.New("switching: trace and spectrum verdicts diverge")

	// ErrOrderMismatch indicates a pair whose graphs differ in order or size.
	ErrOrderMismatch = errors.New("switching: pair graphs differ in order or size")

	// ErrUnknownType indicates a payload naming no known mechanism type.
	ErrUnknownType = errors.New("switching: unknown mechanism type")

	// ErrNotReproduced is returned by Reverify when the stored configuration no
	// longer maps one graph of the pair onto the other.
	ErrNotReproduced = errors.New("switching: configuration does not reproduce the mate")
)

// Operation tags for wrapped errors.
const (
	opApply    = "Apply"
	opEvaluate = "Evaluate"
	opCertify  = "Certify"
	opDetect   = "Detect"
	opReverify = "Reverify"
	opPayload  = "Payload"
)

func switchErrorf(op string, err error, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", op, fmt.Sprintf(format, args...), err)
}
