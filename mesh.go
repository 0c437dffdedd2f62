package butterfly

import (
	"iter"
	"math"
	"slices"
)

// VertexID identifies a vertex within one Mesh.
type VertexID int32

// EdgeID identifies an edge within one Mesh.
type EdgeID int32

// FaceID identifies a face within one Mesh.
type FaceID int32

// NoFace and NoEdge mark an absent element in TopologyError.
const (
	NoFace FaceID = -1
	NoEdge EdgeID = -1
)

type vertexRecord struct {
	pos   Vertex
	edges []EdgeID // star, in insertion order
}

type edgeRecord struct {
	v     [2]VertexID // sorted by position
	faces []FaceID
}

type faceRecord struct {
	e [3]EdgeID // sorted by Edge.Compare
}

// Mesh is a topological triangle mesh store.
//
// Vertices, edges and faces live in arenas addressed by IDs handed out in
// insertion order. Adjacency is recorded as ID lists: each vertex knows its
// incident edges, each edge its two endpoints and its incident faces, each
// face its three edges. Interning tables map values back to IDs, so
// inserting an element that is already present returns the existing one.
//
// Insertion is append-only; nothing is ever removed. A Mesh is not safe for
// concurrent writers, but once construction is done any number of
// goroutines may read it, including concurrent subdivision passes.
type Mesh struct {
	vertices []vertexRecord
	edges    []edgeRecord
	faces    []faceRecord

	vertexIndex map[vertexKey]VertexID
	edgeIndex   map[[2]VertexID]EdgeID
	faceIndex   map[[3]EdgeID]FaceID
}

// NewMesh creates an empty mesh.
func NewMesh() *Mesh {
	return &Mesh{
		vertexIndex: make(map[vertexKey]VertexID),
		edgeIndex:   make(map[[2]VertexID]EdgeID),
		faceIndex:   make(map[[3]EdgeID]FaceID),
	}
}

// AddVertex returns the canonical vertex at (x, y, z), creating an entry
// with an empty star if none exists.
func (m *Mesh) AddVertex(x, y, z float64) Vertex {
	return m.vertices[m.internVertex(V(x, y, z))].pos
}

// AddEdge returns the canonical edge joining v1 and v2. Missing endpoints
// are added, and the edge is linked into both endpoints' stars.
func (m *Mesh) AddEdge(v1, v2 Vertex) Edge {
	return m.Edge(m.internEdge(m.internVertex(v1), m.internVertex(v2)))
}

// AddFace returns the canonical face bounded by e1, e2 and e3.
//
// The edges (and their endpoints) are inserted first, so a face may be added
// from edges the mesh has never seen. The face is then recorded in each
// edge's incident-face set. The edges are assumed to close a triangle; this
// is not checked here.
func (m *Mesh) AddFace(e1, e2, e3 Edge) Face {
	return m.Face(m.internFace(
		m.internEdge(m.internVertex(e1.v1), m.internVertex(e1.v2)),
		m.internEdge(m.internVertex(e2.v1), m.internVertex(e2.v2)),
		m.internEdge(m.internVertex(e3.v1), m.internVertex(e3.v2)),
	))
}

// AddTriangle adds the face with corners a, b and c.
func (m *Mesh) AddTriangle(a, b, c Vertex) Face {
	return m.AddFace(NewEdge(a, b), NewEdge(b, c), NewEdge(c, a))
}

func (m *Mesh) internVertex(v Vertex) VertexID {
	k := keyOf(v)
	if id, ok := m.vertexIndex[k]; ok {
		return id
	}
	id := VertexID(len(m.vertices))
	m.vertices = append(m.vertices, vertexRecord{pos: v.canonical()})
	m.vertexIndex[k] = id
	return id
}

func (m *Mesh) internEdge(a, b VertexID) EdgeID {
	if m.vertices[a].pos.Compare(m.vertices[b].pos) > 0 {
		a, b = b, a
	}
	k := [2]VertexID{a, b}
	if id, ok := m.edgeIndex[k]; ok {
		return id
	}
	id := EdgeID(len(m.edges))
	m.edges = append(m.edges, edgeRecord{v: k})
	m.edgeIndex[k] = id
	m.vertices[a].edges = append(m.vertices[a].edges, id)
	if b != a {
		m.vertices[b].edges = append(m.vertices[b].edges, id)
	}
	return id
}

func (m *Mesh) internFace(e1, e2, e3 EdgeID) FaceID {
	k := [3]EdgeID{e1, e2, e3}
	slices.SortFunc(k[:], func(a, b EdgeID) int {
		return m.Edge(a).Compare(m.Edge(b))
	})
	if id, ok := m.faceIndex[k]; ok {
		return id
	}
	id := FaceID(len(m.faces))
	m.faces = append(m.faces, faceRecord{e: k})
	m.faceIndex[k] = id
	for i, e := range k {
		if i > 0 && k[i-1] == e {
			continue
		}
		m.edges[e].faces = append(m.edges[e].faces, id)
	}
	return id
}

// NumVertices returns the number of distinct vertices.
func (m *Mesh) NumVertices() int { return len(m.vertices) }

// NumEdges returns the number of distinct edges.
func (m *Mesh) NumEdges() int { return len(m.edges) }

// NumFaces returns the number of distinct faces.
func (m *Mesh) NumFaces() int { return len(m.faces) }

// VertexID returns the ID of v, if v is in the mesh.
func (m *Mesh) VertexID(v Vertex) (VertexID, bool) {
	id, ok := m.vertexIndex[keyOf(v)]
	return id, ok
}

// EdgeID returns the ID of e, if e is in the mesh.
func (m *Mesh) EdgeID(e Edge) (EdgeID, bool) {
	a, ok := m.VertexID(e.v1)
	if !ok {
		return 0, false
	}
	b, ok := m.VertexID(e.v2)
	if !ok {
		return 0, false
	}
	id, ok := m.edgeIndex[[2]VertexID{a, b}]
	return id, ok
}

// FaceID returns the ID of f, if f is in the mesh.
func (m *Mesh) FaceID(f Face) (FaceID, bool) {
	var k [3]EdgeID
	for i, e := range f.e {
		id, ok := m.EdgeID(e)
		if !ok {
			return 0, false
		}
		k[i] = id
	}
	id, ok := m.faceIndex[k]
	return id, ok
}

// Vertex returns the vertex with the given ID.
// It panics if id is out of range.
func (m *Mesh) Vertex(id VertexID) Vertex {
	return m.vertices[id].pos
}

// Edge returns the edge with the given ID.
// It panics if id is out of range.
func (m *Mesh) Edge(id EdgeID) Edge {
	r := m.edges[id]
	return Edge{v1: m.vertices[r.v[0]].pos, v2: m.vertices[r.v[1]].pos}
}

// Face returns the face with the given ID.
// It panics if id is out of range.
func (m *Mesh) Face(id FaceID) Face {
	r := m.faces[id]
	return Face{e: [3]Edge{m.Edge(r.e[0]), m.Edge(r.e[1]), m.Edge(r.e[2])}}
}

// EdgeVertices returns the endpoints of an edge, lesser position first.
func (m *Mesh) EdgeVertices(id EdgeID) ([2]VertexID, error) {
	if !m.validEdge(id) {
		return [2]VertexID{}, ErrIndexOutOfRange
	}
	return m.edges[id].v, nil
}

// FaceEdges returns the three edges of a face in canonical order.
func (m *Mesh) FaceEdges(id FaceID) ([3]EdgeID, error) {
	if !m.validFace(id) {
		return [3]EdgeID{}, ErrIndexOutOfRange
	}
	return m.faces[id].e, nil
}

// FaceVertices returns the three corners of a face, ordered by first
// appearance along its canonical edges. A face whose edges do not close a
// triangle yields a *TopologyError.
func (m *Mesh) FaceVertices(id FaceID) ([3]VertexID, error) {
	var out [3]VertexID
	if !m.validFace(id) {
		return out, ErrIndexOutOfRange
	}
	es := m.faces[id].e
	if es[0] == es[1] || es[1] == es[2] {
		return out, topologyError("FaceVertices", id, NoEdge, "repeated edge")
	}
	n := 0
	for _, e := range es {
		for _, v := range m.edges[e].v {
			if slices.Contains(out[:n], v) {
				continue
			}
			if n == 3 {
				return out, topologyError("FaceVertices", id, e, "more than three corners")
			}
			out[n] = v
			n++
		}
	}
	if n != 3 {
		return out, topologyError("FaceVertices", id, NoEdge, "only %d corners", n)
	}
	return out, nil
}

// VertexEdges returns the star of a vertex in insertion order.
// The returned slice must not be modified.
func (m *Mesh) VertexEdges(id VertexID) ([]EdgeID, error) {
	if !m.validVertex(id) {
		return nil, ErrIndexOutOfRange
	}
	return m.vertices[id].edges, nil
}

// EdgeFaces returns the faces incident to an edge in insertion order.
// The returned slice must not be modified.
func (m *Mesh) EdgeFaces(id EdgeID) ([]FaceID, error) {
	if !m.validEdge(id) {
		return nil, ErrIndexOutOfRange
	}
	return m.edges[id].faces, nil
}

// Vertices iterates over all vertices in ID order.
func (m *Mesh) Vertices() iter.Seq2[VertexID, Vertex] {
	return func(yield func(VertexID, Vertex) bool) {
		for i := range m.vertices {
			if !yield(VertexID(i), m.vertices[i].pos) {
				return
			}
		}
	}
}

// Edges iterates over all edges in ID order. Renderers draw a wireframe by
// stroking each edge as a line segment.
func (m *Mesh) Edges() iter.Seq2[EdgeID, Edge] {
	return func(yield func(EdgeID, Edge) bool) {
		for i := range m.edges {
			if !yield(EdgeID(i), m.Edge(EdgeID(i))) {
				return
			}
		}
	}
}

// Faces iterates over all faces in ID order.
func (m *Mesh) Faces() iter.Seq2[FaceID, Face] {
	return func(yield func(FaceID, Face) bool) {
		for i := range m.faces {
			if !yield(FaceID(i), m.Face(FaceID(i))) {
				return
			}
		}
	}
}

// Bounds returns the axis-aligned bounding box of all vertices.
// Both corners are zero for an empty mesh.
func (m *Mesh) Bounds() (lo, hi Vertex) {
	if len(m.vertices) == 0 {
		return Vertex{}, Vertex{}
	}
	lo = V(math.Inf(1), math.Inf(1), math.Inf(1))
	hi = V(math.Inf(-1), math.Inf(-1), math.Inf(-1))
	for _, r := range m.vertices {
		p := r.pos
		lo = V(min(lo.X, p.X), min(lo.Y, p.Y), min(lo.Z, p.Z))
		hi = V(max(hi.X, p.X), max(hi.Y, p.Y), max(hi.Z, p.Z))
	}
	return lo, hi
}

func (m *Mesh) validVertex(id VertexID) bool { return id >= 0 && int(id) < len(m.vertices) }
func (m *Mesh) validEdge(id EdgeID) bool     { return id >= 0 && int(id) < len(m.edges) }
func (m *Mesh) validFace(id FaceID) bool     { return id >= 0 && int(id) < len(m.faces) }
