// Package cospectral is the Cospectral Indexer. Given every fingerprint of
// one vertex count it partitions graph IDs per matrix kind by fingerprint
// equality, drops singleton classes, and emits each remaining class as all
// of its pairs.
//
// Batches are per n: entries of different orders are never compared, and a
// mixed batch is rejected with ErrMixedOrder rather than silently split.
// Results are deterministic (pairs ordered First < Second, then sorted by
// kind, first, second), so a re-run over the same batch reproduces the same
// pair set and the persistence layer can upsert it idempotently.
package cospectral
