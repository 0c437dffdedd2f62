package butterfly

import (
	"errors"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"
)

// Butterfly stencil weights for a regular (valence 6) interior edge: the
// two endpoints, the two apexes of the faces sharing the edge, and the four
// wing vertices across the remaining edges of those faces.
//
//	2*MidpointWeight + 2*ApexWeight - 4*WingWeight == 1
const (
	MidpointWeight = 1.0 / 2
	ApexWeight     = 1.0 / 8
	WingWeight     = 1.0 / 16
)

// Four-point boundary stencil weights: the two endpoints of a boundary edge
// and the next boundary vertex beyond each of them.
//
//	2*BoundaryNearWeight - 2*BoundaryFarWeight == 1
const (
	BoundaryNearWeight = 9.0 / 16
	BoundaryFarWeight  = 1.0 / 16
)

// SubdivideEdge computes the new vertex placed on edge e, seen from face f1
// whose corner opposite e is b1.
//
// In linear mode the result is the midpoint of e. Otherwise the regular
// butterfly stencil is tried: it needs the face across e and the faces
// across the two remaining edges of both. If any of them is missing the
// edge is near the boundary and the four-point boundary stencil is used
// instead.
//
// Only valence 6 interior vertices get the exact butterfly weights; other
// valences receive the same weights with no correction.
//
// f1 must contain e, and b1 must be the corner of f1 opposite e. A
// malformed face met while gathering the stencil is reported as a
// *TopologyError.
func (m *Mesh) SubdivideEdge(f1 FaceID, e EdgeID, b1 VertexID, linear bool) (Vertex, error) {
	if !m.validFace(f1) || !m.validEdge(e) || !m.validVertex(b1) {
		return Vertex{}, ErrIndexOutOfRange
	}
	ends := m.edges[e].v
	mid := m.Vertex(ends[0]).Midpoint(m.Vertex(ends[1]))
	if linear {
		return mid, nil
	}

	p, err := m.butterflyPoint(f1, e, b1, mid)
	switch {
	case err == nil:
		return p, nil
	case errors.Is(err, ErrBoundaryReached):
		return m.boundaryPoint(e), nil
	}
	return Vertex{}, err
}

func (m *Mesh) butterflyPoint(f1 FaceID, e EdgeID, b1 VertexID, mid Vertex) (Vertex, error) {
	f2, err := m.AdjacentFace(f1, e)
	if err != nil {
		return Vertex{}, err
	}
	b2, err := m.ApexVertex(f2, e)
	if err != nil {
		return Vertex{}, err
	}

	acc := mid.Vec()
	acc = r3.Add(acc, r3.Scale(ApexWeight, m.Vertex(b1).Vec()))
	acc = r3.Add(acc, r3.Scale(ApexWeight, m.Vertex(b2).Vec()))
	for _, f := range [2]FaceID{f1, f2} {
		for _, g := range m.faces[f].e {
			if g == e {
				continue
			}
			c, err := m.AdjacentFaceVertex(f, g)
			if err != nil {
				return Vertex{}, err
			}
			acc = r3.Sub(acc, r3.Scale(WingWeight, m.Vertex(c).Vec()))
		}
	}
	return FromVec(acc), nil
}

// boundaryPoint applies the four-point stencil to e. When an endpoint has
// no other boundary edge it stands in for its own missing neighbor, which
// keeps the weights summing to one.
func (m *Mesh) boundaryPoint(e EdgeID) Vertex {
	ends := m.edges[e].v
	v1, v2 := m.Vertex(ends[0]), m.Vertex(ends[1])

	v3, v4 := v1, v2
	if id, ok := m.OtherBoundaryVertex(ends[0], e); ok {
		v3 = m.Vertex(id)
	} else {
		Logger().Debug("butterfly: no boundary neighbor", slog.Int("edge", int(e)), slog.Int("vertex", int(ends[0])))
	}
	if id, ok := m.OtherBoundaryVertex(ends[1], e); ok {
		v4 = m.Vertex(id)
	} else {
		Logger().Debug("butterfly: no boundary neighbor", slog.Int("edge", int(e)), slog.Int("vertex", int(ends[1])))
	}

	acc := r3.Scale(BoundaryNearWeight, v1.Vec())
	acc = r3.Add(acc, r3.Scale(BoundaryNearWeight, v2.Vec()))
	acc = r3.Sub(acc, r3.Scale(BoundaryFarWeight, v3.Vec()))
	acc = r3.Sub(acc, r3.Scale(BoundaryFarWeight, v4.Vec()))
	return FromVec(acc)
}

// edgePoint evaluates the stencil of e from its lowest-ID face, so the two
// faces sharing an edge always agree on its new vertex bit for bit.
func (m *Mesh) edgePoint(e EdgeID, linear bool) (Vertex, error) {
	if !m.validEdge(e) {
		return Vertex{}, ErrIndexOutOfRange
	}
	faces := m.edges[e].faces
	if len(faces) == 0 {
		return Vertex{}, topologyError("edgePoint", NoFace, e, "edge has no faces")
	}
	f1 := faces[0]
	b1, err := m.ApexVertex(f1, e)
	if err != nil {
		return Vertex{}, err
	}
	return m.SubdivideEdge(f1, e, b1, linear)
}
