// Package cli implements the smol command line.
//
//	smol ingest [file|-]          store records for graph6 lines
//	smol index --n N              find cospectral pairs
//	smol switches --n N           explain NBL-cospectral pairs
//	smol verify --n N             re-check pairs and mechanisms
//	smol mates <graph6> --kind K  list cospectral mates
//	smol mechanisms --kind K      list stored mechanisms
//	smol config show              print the effective configuration
//
// Global flags: --config, --db, --log-level and --format (text, json or
// yaml). Logs go to stderr, results to stdout.
package cli
