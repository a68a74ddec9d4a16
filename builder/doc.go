// Package builder constructs the named graph families used as fixtures and
// as reference shapes by the tag classifier.
//
// Every constructor returns an immutable *core.Graph with a documented,
// stable labelling (see the file headers), or a wrapped sentinel:
//
//   - ErrTooFewVertices      a size parameter below the family minimum.
//   - ErrInvalidProbability  p outside [0,1] (RandomSparse).
//   - ErrNeedRandSource      nil rng for 0 < p < 1 (RandomSparse).
//   - ErrNoGraphs            DisjointUnion without operands.
//
// Families: Path, Star, Cycle, Complete, Wheel, CompleteBipartite, Prism,
// Ladder, Fan, Windmill, Petersen, DisjointUnion and RandomSparse.
//
// Determinism: equal parameters (and an equally seeded rng for
// RandomSparse) produce equal graphs.
package builder
