// SPDX-License-Identifier: MIT

// Package switching explains NBL-cospectral pairs by local edge switches.
//
// A Configuration (TwoEdge or BipartiteSwap) is proposed on a graph, checked
// against its precondition and a registry of sufficient-condition theorems
// that read only exact combinatorial Diagnostics, and finally certified
// spectrally. Each candidate moves through a small state machine:
//
//	Proposed → StructurallyValid   → SpectrallyConfirmed
//	         ↘ StructurallyInvalid ↘ SpectrallyRejected
//
// Certification compares tr(T^k), k = 1..K, of the NBL transition matrices of
// the two graphs. The trace verdict is authoritative; a disagreeing
// eigenvalue comparison marks the certification Divergent and is logged, or
// fails under WithStrictCertification.
//
// Detect searches 2-edge switches, then bipartite swaps, from the first graph
// of a pair and then from the second. A pair nothing explains yields the
// MechanismUnknown status, never an error.
package switching
