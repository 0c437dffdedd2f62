package butterfly

// Read-only traversal over a Mesh.
//
// A query that has no answer because the mesh ends at the edge in question
// returns ErrBoundaryReached. That is an expected outcome which callers use
// to choose a boundary formula. A query that fails because the mesh is
// malformed returns a *TopologyError.

// AdjacentFace returns the face across e from f: the incident face of e
// that is not f. It returns ErrBoundaryReached when e has no other face.
//
// On a non-manifold edge the first other face in insertion order is
// returned.
func (m *Mesh) AdjacentFace(f FaceID, e EdgeID) (FaceID, error) {
	if !m.validFace(f) || !m.validEdge(e) {
		return NoFace, ErrIndexOutOfRange
	}
	for _, g := range m.edges[e].faces {
		if g != f {
			return g, nil
		}
	}
	return NoFace, ErrBoundaryReached
}

// ApexVertex returns the corner of f opposite e, that is the vertex of f
// that is not an endpoint of e.
//
// For a well-formed triangle containing e this always succeeds. If e is not
// an edge of f, or f does not close a triangle, the result is a
// *TopologyError.
func (m *Mesh) ApexVertex(f FaceID, e EdgeID) (VertexID, error) {
	if !m.validFace(f) || !m.validEdge(e) {
		return -1, ErrIndexOutOfRange
	}
	fe := m.faces[f].e
	if fe[0] != e && fe[1] != e && fe[2] != e {
		return -1, topologyError("ApexVertex", f, e, "edge is not on face")
	}
	corners, err := m.FaceVertices(f)
	if err != nil {
		return -1, err
	}
	ends := m.edges[e].v
	for _, v := range corners {
		if v != ends[0] && v != ends[1] {
			return v, nil
		}
	}
	return -1, topologyError("ApexVertex", f, e, "no corner off the edge")
}

// AdjacentFaceVertex returns the apex of the face across e from f.
// It returns ErrBoundaryReached when e has no other face.
func (m *Mesh) AdjacentFaceVertex(f FaceID, e EdgeID) (VertexID, error) {
	g, err := m.AdjacentFace(f, e)
	if err != nil {
		return -1, err
	}
	return m.ApexVertex(g, e)
}

// NumAdjacentFaces returns the number of faces incident to e: 1 for a
// boundary edge, 2 for an interior edge. Any other count means the mesh is
// not a 2-manifold there. Out-of-range IDs report 0.
func (m *Mesh) NumAdjacentFaces(e EdgeID) int {
	if !m.validEdge(e) {
		return 0
	}
	return len(m.edges[e].faces)
}

// IsBoundary reports whether e has exactly one incident face.
func (m *Mesh) IsBoundary(e EdgeID) bool {
	return m.NumAdjacentFaces(e) == 1
}

// BoundaryCount returns how many edges of f are boundary edges.
func (m *Mesh) BoundaryCount(f FaceID) (int, error) {
	if !m.validFace(f) {
		return 0, ErrIndexOutOfRange
	}
	n := 0
	for _, e := range m.faces[f].e {
		if m.IsBoundary(e) {
			n++
		}
	}
	return n, nil
}

// OtherVertex returns the endpoint of e that is not v.
func (m *Mesh) OtherVertex(e EdgeID, v VertexID) (VertexID, error) {
	if !m.validEdge(e) || !m.validVertex(v) {
		return -1, ErrIndexOutOfRange
	}
	ends := m.edges[e].v
	switch v {
	case ends[0]:
		return ends[1], nil
	case ends[1]:
		return ends[0], nil
	}
	return -1, topologyError("OtherVertex", NoFace, e, "vertex %d is not an endpoint", v)
}

// OtherBoundaryVertex walks the star of v in insertion order and returns the
// far endpoint of the first boundary edge other than forbidden. The second
// result is false if v has no such edge.
func (m *Mesh) OtherBoundaryVertex(v VertexID, forbidden EdgeID) (VertexID, bool) {
	if !m.validVertex(v) {
		return -1, false
	}
	for _, e := range m.vertices[v].edges {
		if e == forbidden || !m.IsBoundary(e) {
			continue
		}
		if w, err := m.OtherVertex(e, v); err == nil {
			return w, true
		}
	}
	return -1, false
}
