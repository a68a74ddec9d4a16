// SPDX-License-Identifier: MIT

// Package spectrum is the Spectral Engine: eigenvalues of a matrix
// representation, their canonical ordering, and the fixed-width fingerprint
// that cospectral grouping keys on.
//
// Implementation:
//
//	Stage 1 (Eigen)     symmetric kinds use gonum mat.EigenSym (real
//	                    spectrum); nb/nbl use mat.Eigen (complex spectrum).
//	Stage 2 (Canonical) complex spectra only: collapse every cluster of values
//	                    within ClusterTolerance to its mean. Then round re
//	                    and im to Precision decimals, map −0 to 0,
//	                    THEN sort by (re, im). The sort key is the rounded
//	                    value, so two runs that differ only below the rounding
//	                    tolerance produce the same sequence.
//	Stage 3 (Serialize) "%.{p}f" values joined by ","; complex values as
//	                    "(re,im)"; an empty spectrum is "empty".
//	Stage 4 (Hash)      SHA-256 over "smol/spectrum/v1/<kind>" 0x00 <text>,
//	                    hex, truncated to HashLength characters.
//
// Precision:
//
//	DefaultPrecision (8 decimals) is the single named rounding constant. Lower
//	precision merges more spectra (false positives); higher precision splits
//	true mates on floating-point noise (false negatives). Override per call
//	with WithPrecision; never scatter literals.
//
// Determinism:
//
//	Fingerprints are computed from the canonical text, never from raw float
//	bytes, so they are stable across BLAS backends and platforms. A defective
//	eigenvalue of a non-symmetric matrix comes back as a ring of roots whose
//	spread (about eps^(1/k)) exceeds the rounding precision and depends on
//	vertex order; the ring mean does not, which is what the cluster step keys on.
//
// Errors:
//
//	ErrNotApplicable  representation has Applicable=false (distance on a
//	                  disconnected graph)
//	ErrNoConvergence  the eigensolver failed or produced NaN/Inf
//
// Trace utilities:
//
//	TracePowers(M, K) returns tr(M^k) for k=1..K. For the nbl transition
//	matrix tr(T) = tr(T²) = 0 for every graph, and the first 2m traces fix
//	the characteristic polynomial; the switch certifier relies on both.
package spectrum
