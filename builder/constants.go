// Package builder defines shared constants used by graph builders, ensuring
// consistent validation across all family constructors.
package builder

//-----------------------------------------------------------------------------
// Builder Method Name Constants
//   used to prefix errors with the constructor name for context.
//-----------------------------------------------------------------------------

const (
	MethodPath              = "Path"
	MethodStar              = "Star"
	MethodCycle             = "Cycle"
	MethodComplete          = "Complete"
	MethodWheel             = "Wheel"
	MethodCompleteBipartite = "CompleteBipartite"
	MethodPrism             = "Prism"
	MethodLadder            = "Ladder"
	MethodFan               = "Fan"
	MethodWindmill          = "Windmill"
	MethodDisjointUnion     = "DisjointUnion"
	MethodRandomSparse      = "RandomSparse"
)

//-----------------------------------------------------------------------------
// Minimum Sizes
//-----------------------------------------------------------------------------

// MinPathNodes is the smallest path; P1 is the single vertex.
const MinPathNodes = 1

// MinStarNodes is the smallest star: one centre plus one leaf.
const MinStarNodes = 2

// MinCycleNodes is the smallest simple cycle.
const MinCycleNodes = 3

// MinCompleteNodes is the smallest complete graph.
const MinCompleteNodes = 1

// MinWheelNodes is the smallest wheel: a triangle rim plus the hub.
const MinWheelNodes = 4

// MinPrismRungs is the smallest circular ladder C3 □ K2.
const MinPrismRungs = 3

// MinLadderRungs is the smallest ladder P2 □ K2 (the 4-cycle).
const MinLadderRungs = 2

// MinFanPath is the smallest fan rim: an edge plus the apex (a triangle).
const MinFanPath = 2

// MinWindmillClique and MinWindmillBlades bound Wd(k,b): each blade is a
// K_k through the shared centre and there are at least two blades.
const (
	MinWindmillClique = 3
	MinWindmillBlades = 2
)

// MinPartition is the smallest side of a complete bipartite graph.
const MinPartition = 1

// Probability bounds for RandomSparse, inclusive.
const (
	MinProbability = 0.0
	MaxProbability = 1.0
)
