package butterfly

import "fmt"

// Edge is an unordered pair of vertices.
//
// NewEdge(a, b) and NewEdge(b, a) produce the same value: the endpoints are
// kept sorted by Vertex.Compare, so V1 is never greater than V2 regardless
// of the order they were given in.
type Edge struct {
	v1, v2 Vertex
}

// NewEdge returns the edge joining a and b.
func NewEdge(a, b Vertex) Edge {
	a, b = a.canonical(), b.canonical()
	if a.Compare(b) > 0 {
		a, b = b, a
	}
	return Edge{v1: a, v2: b}
}

// V1 returns the lesser endpoint.
func (e Edge) V1() Vertex { return e.v1 }

// V2 returns the greater endpoint.
func (e Edge) V2() Vertex { return e.v2 }

// Has reports whether v is an endpoint of e.
func (e Edge) Has(v Vertex) bool {
	return e.v1.Compare(v) == 0 || e.v2.Compare(v) == 0
}

// Other returns the endpoint of e that is not v.
// The second result is false if v is not an endpoint of e.
func (e Edge) Other(v Vertex) (Vertex, bool) {
	switch {
	case e.v1.Compare(v) == 0:
		return e.v2, true
	case e.v2.Compare(v) == 0:
		return e.v1, true
	}
	return Vertex{}, false
}

// Midpoint returns the arithmetic mean of the endpoints.
func (e Edge) Midpoint() Vertex {
	return e.v1.Midpoint(e.v2)
}

// Compare orders edges by their first endpoint, then their second.
func (e Edge) Compare(f Edge) int {
	if c := e.v1.Compare(f.v1); c != 0 {
		return c
	}
	return e.v2.Compare(f.v2)
}

// String implements fmt.Stringer.
func (e Edge) String() string {
	return fmt.Sprintf("%v-%v", e.v1, e.v2)
}
