// Package pipeline runs smol's batch stages.
//
//	ingest   Runner.Run        graph6 stream → Record per graph (parallel, resumable)
//	index    Runner.IndexBatch barrier per n: fingerprints → cospectral pairs
//	detect   Runner.DetectBatch NBL pairs → switching mechanisms or "unknown"
//	verify   Runner.VerifyBatch re-fingerprint pairs, re-certify mechanisms
//
// Per-graph and per-kind failures are collected in the summaries and never
// abort a stage. Persistence sits behind the Sink and Catalog interfaces.
package pipeline
