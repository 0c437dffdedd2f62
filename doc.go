// Package butterfly refines triangle meshes with the butterfly subdivision
// scheme and a few related variants.
//
// # Overview
//
// A Mesh is a topological store: it records vertices, edges and faces
// together with their mutual adjacency, so that traversal questions ("which
// face lies across this edge?", "which corner is opposite it?", "is it on
// the boundary?") are answered without searching. Subdivision reads one
// Mesh and builds a brand-new, finer one; the input is never modified.
//
// # Quick Start
//
//	m := butterfly.NewMesh()
//	a := m.AddVertex(0, 0, 0)
//	b := m.AddVertex(1, 0, 0)
//	c := m.AddVertex(0, 1, 0)
//	m.AddFace(m.AddEdge(a, b), m.AddEdge(b, c), m.AddEdge(c, a))
//
//	fine, err := m.LinearSubdivide()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(fine.NumVertices(), fine.NumFaces()) // 6 4
//
// # Welding
//
// Vertices are keyed by coordinate value. Inserting a vertex whose
// coordinates are already present returns the existing one, and edges and
// faces are deduplicated the same way. Subdivision relies on this: the two
// faces sharing an edge each emit the new vertex on that edge, and the
// output mesh merges them into one.
//
// # Schemes
//
//   - Butterfly: 1-to-4 split, new vertices from the 8-point butterfly
//     stencil on interior edges and the 4-point stencil on the boundary.
//   - Linear: 1-to-4 split at edge midpoints.
//   - BoundaryTriangular: refines only faces that touch the boundary.
//   - SillyPascal: drops fully interior faces, splits the rest.
//
// Only valence 6 interior vertices receive the exact butterfly weights; no
// correction is applied for other valences.
//
// # Errors
//
// A query that runs into the mesh boundary returns ErrBoundaryReached,
// which the engine uses to switch formulas. A query that fails on a
// malformed mesh returns a *TopologyError, and any TopologyError met during
// subdivision aborts the whole pass.
//
// # Concurrency
//
// Building a Mesh is single-writer. A built Mesh may be read, and
// subdivided, from any number of goroutines. WithWorkers spreads one pass
// over several goroutines without changing its output.
package butterfly
