// Package tags classifies a graph into the named families stored alongside
// its spectra: regular, eulerian, tree, forest, complete, cycle, path, star,
// wheel, complete-bipartite, petersen, cubic, triangle-free,
// complete-multipartite, prism, ladder, strongly-regular, fan, windmill and
// vertex-transitive.
//
// Most tags are decided from degrees, components and triangle counts.
// Prism and ladder compare against the builder reference graph with
// iso.Isomorphic. Vertex-transitivity is immediate for complete graphs,
// cycles and the Petersen graph; otherwise connected regular graphs with at
// most MaxTransitiveOrder vertices are tested by searching an automorphism
// from vertex 0 to every other vertex.
//
// The list is open: a new family is one more entry in the rule table.
package tags
