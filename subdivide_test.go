package butterfly

import (
	"context"
	"errors"
	"testing"
)

func checkCounts(t *testing.T, m *Mesh, v, e, f int) {
	t.Helper()
	if got := m.NumVertices(); got != v {
		t.Errorf("NumVertices() = %d, want %d", got, v)
	}
	if got := m.NumEdges(); got != e {
		t.Errorf("NumEdges() = %d, want %d", got, e)
	}
	if got := m.NumFaces(); got != f {
		t.Errorf("NumFaces() = %d, want %d", got, f)
	}
}

func hasVertex(m *Mesh, v Vertex) bool {
	_, ok := m.VertexID(v)
	return ok
}

func singleTriangle() *Mesh {
	m := NewMesh()
	m.AddTriangle(V(0, 0, 0), V(1, 0, 0), V(0, 1, 0))
	return m
}

// On a closed mesh every pass multiplies faces by four and adds one vertex
// per edge.
func TestSubdivideClosedCounts(t *testing.T) {
	tests := []struct {
		name    string
		mesh    *Mesh
		scheme  Scheme
		v, e, f int
	}{
		{"tetrahedron linear", tetrahedron(), SchemeLinear, 10, 24, 16},
		{"tetrahedron butterfly", tetrahedron(), SchemeButterfly, 10, 24, 16},
		{"octahedron linear", octahedron(), SchemeLinear, 18, 48, 32},
		{"octahedron butterfly", octahedron(), SchemeButterfly, 18, 48, 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Subdivide(context.Background(), tt.mesh, tt.scheme)
			if err != nil {
				t.Fatalf("Subdivide() error = %v", err)
			}
			checkCounts(t, out, tt.v, tt.e, tt.f)
			if chi := out.NumVertices() - out.NumEdges() + out.NumFaces(); chi != 2 {
				t.Errorf("Euler characteristic = %d, want 2", chi)
			}
		})
	}
}

func TestSubdivideLeavesInputUntouched(t *testing.T) {
	m := octahedron()
	if _, err := m.ButterflySubdivide(); err != nil {
		t.Fatalf("ButterflySubdivide() error = %v", err)
	}
	checkCounts(t, m, 6, 12, 8)
}

func TestLinearSubdivideMidpoints(t *testing.T) {
	m := tetrahedron()
	out, err := m.LinearSubdivide()
	if err != nil {
		t.Fatalf("LinearSubdivide() error = %v", err)
	}
	for _, v := range m.Vertices() {
		if !hasVertex(out, v) {
			t.Errorf("original vertex %v missing from output", v)
		}
	}
	for _, e := range m.Edges() {
		if !hasVertex(out, e.Midpoint()) {
			t.Errorf("midpoint of %v missing from output", e)
		}
	}
}

func TestLinearSubdivideSingleTriangle(t *testing.T) {
	out, err := singleTriangle().LinearSubdivide()
	if err != nil {
		t.Fatalf("LinearSubdivide() error = %v", err)
	}
	checkCounts(t, out, 6, 9, 4)

	// The center triangle is made of the three midpoints.
	center := Triangle(V(0.5, 0, 0), V(0.5, 0.5, 0), V(0, 0.5, 0))
	if _, ok := out.FaceID(center); !ok {
		t.Errorf("center face %v missing", center)
	}
}

func TestButterflySubdivideIsolatedTriangle(t *testing.T) {
	out, err := singleTriangle().ButterflySubdivide()
	if err != nil {
		t.Fatalf("ButterflySubdivide() error = %v", err)
	}
	checkCounts(t, out, 6, 9, 4)
	if want := V(0.5625, -0.125, 0); !hasVertex(out, want) {
		t.Errorf("boundary point %v missing", want)
	}
}

// A flat mesh stays flat under both stencils.
func TestButterflySubdividePlanar(t *testing.T) {
	out, err := grid(4).ButterflySubdivide()
	if err != nil {
		t.Fatalf("ButterflySubdivide() error = %v", err)
	}
	if got := out.NumFaces(); got != 128 {
		t.Errorf("NumFaces() = %d, want 128", got)
	}
	for _, v := range out.Vertices() {
		if v.Z != 0 {
			t.Errorf("vertex %v left the z=0 plane", v)
		}
	}
}

func TestBoundaryTriangularSubdivide(t *testing.T) {
	tests := []struct {
		name    string
		mesh    *Mesh
		v, e, f int
	}{
		// No boundary: faces are copied as they are.
		{"closed", tetrahedron(), 4, 6, 4},
		// One boundary edge per face: split from the apex.
		{"fan", fan(), 13, 24, 12},
		// Two boundary edges per face: three triangles each.
		{"quad", flatQuad(), 8, 13, 6},
		// Three boundary edges: ordinary 1-to-4 split.
		{"single", singleTriangle(), 6, 9, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.mesh.BoundaryTriangularSubdivide()
			if err != nil {
				t.Fatalf("BoundaryTriangularSubdivide() error = %v", err)
			}
			checkCounts(t, out, tt.v, tt.e, tt.f)
		})
	}
}

func TestBoundaryTriangularKeepsInteriorEdges(t *testing.T) {
	m := flatQuad()
	out, err := m.BoundaryTriangularSubdivide()
	if err != nil {
		t.Fatalf("BoundaryTriangularSubdivide() error = %v", err)
	}
	diag := NewEdge(V(0, 0, 0), V(1, 1, 0))
	id, ok := out.EdgeID(diag)
	if !ok {
		t.Fatalf("interior edge %v was split", diag)
	}
	if got := out.NumAdjacentFaces(id); got != 2 {
		t.Errorf("NumAdjacentFaces(diagonal) = %d, want 2", got)
	}
	if hasVertex(out, V(0.5, 0.5, 0)) {
		t.Error("interior edge received a new vertex")
	}
}

func TestSillyPascalSubdivide(t *testing.T) {
	out, err := tetrahedron().SillyPascalSubdivide()
	if err != nil {
		t.Fatalf("SillyPascalSubdivide() error = %v", err)
	}
	checkCounts(t, out, 0, 0, 0)

	out, err = flatQuad().SillyPascalSubdivide()
	if err != nil {
		t.Fatalf("SillyPascalSubdivide() error = %v", err)
	}
	if got := out.NumFaces(); got != 8 {
		t.Errorf("NumFaces() = %d, want 8", got)
	}

	// Eight of the 18 grid faces have no edge on the rim and are dropped.
	out, err = grid(3).SillyPascalSubdivide()
	if err != nil {
		t.Fatalf("SillyPascalSubdivide() error = %v", err)
	}
	if got, want := out.NumFaces(), 4*(18-8); got != want {
		t.Errorf("grid NumFaces() = %d, want %d", got, want)
	}
}

func TestSubdivideNonManifold(t *testing.T) {
	m := NewMesh()
	a, b := V(0, 0, 0), V(1, 0, 0)
	m.AddTriangle(a, b, V(0, 1, 0))
	m.AddTriangle(a, b, V(0, -1, 0))
	m.AddTriangle(a, b, V(0, 0, 1))

	for _, scheme := range []Scheme{SchemeButterfly, SchemeLinear} {
		out, err := Subdivide(context.Background(), m, scheme)
		var te *TopologyError
		if !errors.As(err, &te) {
			t.Fatalf("Subdivide(%v) error = %v, want *TopologyError", scheme, err)
		}
		if out != nil {
			t.Errorf("Subdivide(%v) returned a mesh with an error", scheme)
		}
		if te.Face != 0 {
			t.Errorf("TopologyError.Face = %d, want 0", te.Face)
		}
	}
}

func TestSubdivideMalformedFace(t *testing.T) {
	m := NewMesh()
	a, b, c, d := V(0, 0, 0), V(1, 0, 0), V(1, 1, 0), V(0, 1, 0)
	m.AddFace(NewEdge(a, b), NewEdge(b, c), NewEdge(c, d))

	for _, scheme := range []Scheme{SchemeButterfly, SchemeLinear, SchemeBoundaryTriangular, SchemeSillyPascal} {
		if _, err := Subdivide(context.Background(), m, scheme); !errors.Is(err, ErrTopology) {
			t.Errorf("Subdivide(%v) error = %v, want ErrTopology", scheme, err)
		}
	}
}

func sameMesh(t *testing.T, got, want *Mesh) {
	t.Helper()
	if got.NumFaces() != want.NumFaces() {
		t.Fatalf("NumFaces() = %d, want %d", got.NumFaces(), want.NumFaces())
	}
	for id, f := range want.Faces() {
		if g := got.Face(id); g != f {
			t.Fatalf("Face(%d) = %v, want %v", id, g, f)
		}
	}
	for id, v := range want.Vertices() {
		if g := got.Vertex(id); g != v {
			t.Fatalf("Vertex(%d) = %v, want %v", id, g, v)
		}
	}
}

func TestSubdivideDeterministic(t *testing.T) {
	m := octahedron()
	first, err := m.ButterflySubdivide()
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.ButterflySubdivide()
	if err != nil {
		t.Fatal(err)
	}
	sameMesh(t, second, first)
}

func TestSubdivideParallelMatchesSerial(t *testing.T) {
	m := grid(12)
	for _, scheme := range []Scheme{SchemeButterfly, SchemeBoundaryTriangular} {
		t.Run(scheme.String(), func(t *testing.T) {
			serial, err := Subdivide(context.Background(), m, scheme, WithWorkers(1))
			if err != nil {
				t.Fatal(err)
			}
			par, err := Subdivide(context.Background(), m, scheme, WithWorkers(4))
			if err != nil {
				t.Fatal(err)
			}
			sameMesh(t, par, serial)
		})
	}
}

func TestSubdivideIterations(t *testing.T) {
	out, err := tetrahedron().LinearSubdivide(WithIterations(2))
	if err != nil {
		t.Fatalf("LinearSubdivide() error = %v", err)
	}
	checkCounts(t, out, 34, 96, 64)

	once, err := tetrahedron().LinearSubdivide(WithIterations(0))
	if err != nil {
		t.Fatal(err)
	}
	checkCounts(t, once, 10, 24, 16)
}

func TestSubdivideCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Subdivide(ctx, tetrahedron(), SchemeLinear)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Subdivide() error = %v, want context.Canceled", err)
	}
}

func TestSubdivideUnknownScheme(t *testing.T) {
	_, err := Subdivide(context.Background(), tetrahedron(), Scheme(42))
	if !errors.Is(err, ErrUnknownScheme) {
		t.Errorf("Subdivide(Scheme(42)) error = %v, want ErrUnknownScheme", err)
	}
}

func TestSubdivideEmpty(t *testing.T) {
	out, err := NewMesh().ButterflySubdivide()
	if err != nil {
		t.Fatalf("ButterflySubdivide() error = %v", err)
	}
	checkCounts(t, out, 0, 0, 0)
}
