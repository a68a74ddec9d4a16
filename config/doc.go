// Package config loads smol's settings with Viper and turns them into the
// options of the spectrum, switching and pipeline packages.
//
// Precedence, highest first: Set (command-line flags), SMOL_* environment
// variables, the file given to LoadFile, defaults.
//
// Keys and defaults:
//
//	spectrum.precision            8      decimals kept before hashing
//	spectrum.hash_length          16     hex characters of the fingerprint
//	switching.trace_max_power     14     K in tr(T^k), k = 1..K
//	switching.trace_precision     8      trace tolerance 10^-p
//	switching.strict              false  fail on trace/spectrum divergence
//	switching.iso_timeout         5s     per isomorphism test
//	switching.max_leaves          2      largest bipartite swap leaf set
//	switching.cache_size          4096   cached trace sequences
//	switching.spectral_tolerance  1e-6   secondary eigenvalue comparison
//	pipeline.workers              NumCPU ingest workers
//	store.path                    smol.db
//	logging.level                 info
package config
