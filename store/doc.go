// Package store persists smol's results in SQLite.
//
// One database holds four tables:
//
//	graphs               one row per graph6 string: spectra, fingerprints
//	                     per matrix kind, metadata columns, tags
//	cospectral_pairs     (graph1 < graph2, matrix_type) plus detection status
//	switching_mechanisms confirmed mechanisms with their replayable payload
//	runs                 ingest run summaries
//
// Absent metadata (diameter of a disconnected graph, girth of a forest) is
// stored as NULL, never as a sentinel number. A fingerprint column is NULL
// when its matrix kind is not applicable to the graph.
//
// Store implements pipeline.Sink and pipeline.Catalog, so the batch stages
// run directly against it.
package store
