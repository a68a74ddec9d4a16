// Package smol fingerprints small simple graphs by the spectra of seven
// matrices and explains cospectral pairs of the non-backtracking Laplacian
// by certified local switches.
//
// Layout:
//
//	core/       simple undirected graph with integer vertices 0..n-1
//	graph6/     graph6 codec and line scanner
//	matrix/     the seven matrix representations and a dense matrix type
//	spectrum/   eigenvalues, canonical rounding and sorting, fingerprints
//	metadata/   structural metadata (distances, girth, planarity, bounds)
//	tags/       named graph families (complete, cycle, star, prism, ...)
//	iso/        exact isomorphism testing with cancellation
//	cospectral/ grouping of graphs by fingerprint into cospectral pairs
//	switching/  switch candidates, theorem predicates, trace certification
//	pipeline/   parallel ingest plus the index, detect and verify stages
//	store/      SQLite persistence
//	config/     Viper configuration and zerolog logger
//	cli/        cobra commands behind cmd/smol
//	bfs/, dfs/  traversals the metadata extractor builds on
//	builder/    generators for named graphs
//
// Fingerprints are deterministic: eigenvalues are rounded to a fixed number
// of decimals, negative zero is normalized, values are sorted (complex ones
// by real then imaginary part) and the serialization is hashed with SHA-256.
// Two graphs are reported cospectral for a matrix kind exactly when their
// fingerprints for that kind are equal.
package smol
