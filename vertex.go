package butterfly

import (
	"cmp"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vertex is a point in 3D space.
//
// Vertices are compared by coordinate value, never by identity. Two vertices
// built independently from the same coordinates are interchangeable, and a
// Mesh welds them into a single entry when both are inserted.
type Vertex struct {
	X, Y, Z float64
}

// V is a convenience function to create a Vertex.
func V(x, y, z float64) Vertex {
	return Vertex{X: x, Y: y, Z: z}
}

// FromVec converts an r3 vector to a Vertex.
func FromVec(p r3.Vec) Vertex {
	return Vertex{X: p.X, Y: p.Y, Z: p.Z}
}

// Vec returns the vertex as an r3 vector.
func (v Vertex) Vec() r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

// Add returns the sum of two vertices (vector addition).
func (v Vertex) Add(w Vertex) Vertex {
	return FromVec(r3.Add(v.Vec(), w.Vec()))
}

// Sub returns the difference of two vertices (vector subtraction).
func (v Vertex) Sub(w Vertex) Vertex {
	return FromVec(r3.Sub(v.Vec(), w.Vec()))
}

// Mul returns the vertex scaled by a scalar.
func (v Vertex) Mul(s float64) Vertex {
	return FromVec(r3.Scale(s, v.Vec()))
}

// Div returns the vertex divided by a scalar.
func (v Vertex) Div(s float64) Vertex {
	return Vertex{X: v.X / s, Y: v.Y / s, Z: v.Z / s}
}

// Midpoint returns the arithmetic mean of v and w.
func (v Vertex) Midpoint(w Vertex) Vertex {
	return v.Add(w).Div(2)
}

// Lerp performs linear interpolation between two vertices.
// t=0 returns v, t=1 returns w.
func (v Vertex) Lerp(w Vertex, t float64) Vertex {
	return FromVec(r3.Add(v.Vec(), r3.Scale(t, r3.Sub(w.Vec(), v.Vec()))))
}

// Distance returns the Euclidean distance between two vertices.
func (v Vertex) Distance(w Vertex) float64 {
	return r3.Norm(r3.Sub(v.Vec(), w.Vec()))
}

// Compare orders vertices lexicographically by X, then Y, then Z.
// NaN orders before every other value, as in cmp.Compare.
func (v Vertex) Compare(w Vertex) int {
	if c := cmp.Compare(v.X, w.X); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Y, w.Y); c != 0 {
		return c
	}
	return cmp.Compare(v.Z, w.Z)
}

// String implements fmt.Stringer.
func (v Vertex) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// vertexKey is the interning key of a vertex.
//
// Coordinates are stored as IEEE-754 bit patterns after folding -0 into +0
// and every NaN into one canonical NaN, so two vertices share a key exactly
// when Compare reports them equal.
type vertexKey [3]uint64

func canonicalBits(f float64) uint64 {
	switch {
	case f == 0:
		return 0
	case math.IsNaN(f):
		return 0x7ff8000000000001
	}
	return math.Float64bits(f)
}

func keyOf(v Vertex) vertexKey {
	return vertexKey{canonicalBits(v.X), canonicalBits(v.Y), canonicalBits(v.Z)}
}

// canonical returns v with -0 folded into +0, matching the stored form.
func (v Vertex) canonical() Vertex {
	k := keyOf(v)
	return Vertex{
		X: math.Float64frombits(k[0]),
		Y: math.Float64frombits(k[1]),
		Z: math.Float64frombits(k[2]),
	}
}
