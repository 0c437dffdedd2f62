package butterfly

import (
	"fmt"
	"slices"
)

// Face is a triangle described by its three edges.
//
// The edges are kept sorted by Edge.Compare, so a face built from the same
// three edges in any order is the same value. NewFace does not check that
// the edges close a triangle; a malformed face is only noticed when a
// traversal query runs into it.
type Face struct {
	e [3]Edge
}

// NewFace returns the face bounded by e1, e2 and e3.
func NewFace(e1, e2, e3 Edge) Face {
	f := Face{e: [3]Edge{e1, e2, e3}}
	slices.SortFunc(f.e[:], Edge.Compare)
	return f
}

// Triangle returns the face with corners a, b and c.
func Triangle(a, b, c Vertex) Face {
	return NewFace(NewEdge(a, b), NewEdge(b, c), NewEdge(c, a))
}

// E1 returns the first edge.
func (f Face) E1() Edge { return f.e[0] }

// E2 returns the second edge.
func (f Face) E2() Edge { return f.e[1] }

// E3 returns the third edge.
func (f Face) E3() Edge { return f.e[2] }

// Edges returns the three edges in canonical order.
func (f Face) Edges() [3]Edge { return f.e }

// Vertices returns the three corners of the face.
// The second result is false if the edges do not close a triangle.
func (f Face) Vertices() ([3]Vertex, bool) {
	var out [3]Vertex
	n := 0
	for _, e := range f.e {
		if e.v1.Compare(e.v2) == 0 {
			return out, false
		}
		for _, v := range [2]Vertex{e.v1, e.v2} {
			if slices.ContainsFunc(out[:n], func(w Vertex) bool { return w.Compare(v) == 0 }) {
				continue
			}
			if n == 3 {
				return out, false
			}
			out[n] = v
			n++
		}
	}
	return out, n == 3 && f.e[0].Compare(f.e[1]) != 0 && f.e[1].Compare(f.e[2]) != 0
}

// String implements fmt.Stringer.
func (f Face) String() string {
	return fmt.Sprintf("[%v, %v, %v]", f.e[0], f.e[1], f.e[2])
}
