package butterfly

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gogpu/butterfly/internal/cache"
	"github.com/gogpu/butterfly/internal/parallel"
)

// ButterflySubdivide splits every face into four, placing each new vertex
// with the butterfly stencil. It handles boundaries and valence 6 interior
// vertices; other valences are not corrected for.
func (m *Mesh) ButterflySubdivide(opts ...Option) (*Mesh, error) {
	return Subdivide(context.Background(), m, SchemeButterfly, opts...)
}

// LinearSubdivide splits every face into four at its edge midpoints.
func (m *Mesh) LinearSubdivide(opts ...Option) (*Mesh, error) {
	return Subdivide(context.Background(), m, SchemeLinear, opts...)
}

// BoundaryTriangularSubdivide refines the faces that touch the boundary and
// copies every other face through unchanged.
func (m *Mesh) BoundaryTriangularSubdivide(opts ...Option) (*Mesh, error) {
	return Subdivide(context.Background(), m, SchemeBoundaryTriangular, opts...)
}

// SillyPascalSubdivide drops every face whose three edges are interior and
// splits the others into four.
func (m *Mesh) SillyPascalSubdivide(opts ...Option) (*Mesh, error) {
	return Subdivide(context.Background(), m, SchemeSillyPascal, opts...)
}

// Subdivide applies scheme to m and returns the refined mesh. m is only
// read, never modified.
//
// Faces are visited in ID order and the output is the same for every
// worker count. A *TopologyError from any face aborts the call and no mesh
// is returned. A cancelled ctx aborts with ctx's error.
func Subdivide(ctx context.Context, m *Mesh, scheme Scheme, opts ...Option) (*Mesh, error) {
	if !scheme.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownScheme, scheme)
	}
	o := newOptions(opts)
	pool := parallel.NewWorkerPool(o.workers)

	cur := m
	for range o.iterations {
		next, err := subdivideOnce(ctx, cur, scheme, pool)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// triangle is one output face, by corner position.
type triangle [3]Vertex

type edgeKey struct {
	e      EdgeID
	linear bool
}

func hashEdgeKey(k edgeKey) uint64 {
	h := uint64(k.e) << 1
	if k.linear {
		h |= 1
	}
	return cache.Uint64Hasher(h)
}

// pass holds the state shared by the goroutines of one subdivision pass.
type pass struct {
	src    *Mesh
	scheme Scheme
	points *cache.Sharded[edgeKey, Vertex]
}

func subdivideOnce(ctx context.Context, src *Mesh, scheme Scheme, pool *parallel.WorkerPool) (*Mesh, error) {
	p := &pass{
		src:    src,
		scheme: scheme,
		points: cache.NewSharded[edgeKey, Vertex](src.NumEdges(), hashEdgeKey),
	}

	n := src.NumFaces()
	plans := make([][]triangle, n)
	errs := make([]error, n)
	err := pool.ForEach(ctx, n, func(_ context.Context, i int) error {
		plans[i], errs[i] = p.plan(FaceID(i))
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	out := NewMesh()
	for _, tris := range plans {
		for _, t := range tris {
			out.AddTriangle(t[0], t[1], t[2])
		}
	}

	stats := p.points.Stats()
	Logger().Debug("butterfly: subdivision pass",
		slog.String("scheme", scheme.String()),
		slog.Int("workers", pool.Workers()),
		slog.Int("faces_in", n),
		slog.Int("vertices", out.NumVertices()),
		slog.Int("edges", out.NumEdges()),
		slog.Int("faces", out.NumFaces()),
		slog.Uint64("point_hits", stats.Hits),
		slog.Uint64("point_misses", stats.Misses),
	)
	return out, nil
}

// point returns the memoized new vertex of e.
func (p *pass) point(e EdgeID, linear bool) (Vertex, error) {
	return p.points.GetOrCreate(edgeKey{e: e, linear: linear}, func() (Vertex, error) {
		return p.src.edgePoint(e, linear)
	})
}

// corners returns the three edges of f and, at the same index, the corner
// opposite each of them.
func (p *pass) corners(f FaceID) (es [3]EdgeID, vs [3]Vertex, err error) {
	es = p.src.faces[f].e
	for i, e := range es {
		v, err := p.src.ApexVertex(f, e)
		if err != nil {
			return es, vs, err
		}
		vs[i] = p.src.Vertex(v)
	}
	return es, vs, nil
}

func (p *pass) plan(f FaceID) ([]triangle, error) {
	switch p.scheme {
	case SchemeButterfly:
		return p.uniform(f, false)
	case SchemeLinear:
		return p.uniform(f, true)
	case SchemeBoundaryTriangular:
		return p.boundaryTriangular(f)
	case SchemeSillyPascal:
		return p.sillyPascal(f)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownScheme, p.scheme)
}

// uniform splits f into four. Every edge must have one or two faces.
func (p *pass) uniform(f FaceID, linear bool) ([]triangle, error) {
	for _, e := range p.src.faces[f].e {
		if n := p.src.NumAdjacentFaces(e); n != 1 && n != 2 {
			return nil, topologyError("Subdivide", f, e, "edge has %d faces", n)
		}
	}
	es, vs, err := p.corners(f)
	if err != nil {
		return nil, err
	}
	var mids [3]Vertex
	for i, e := range es {
		if mids[i], err = p.point(e, linear); err != nil {
			return nil, err
		}
	}
	return splitFour(vs, mids), nil
}

// boundaryTriangular refines f according to how many of its edges lie on
// the boundary. Interior edges are never split, so faces on either side of
// one always agree and no T-junctions appear.
func (p *pass) boundaryTriangular(f FaceID) ([]triangle, error) {
	es, vs, err := p.corners(f)
	if err != nil {
		return nil, err
	}
	var boundary [3]bool
	count := 0
	for i, e := range es {
		if boundary[i] = p.src.IsBoundary(e); boundary[i] {
			count++
		}
	}

	switch count {
	case 0:
		return []triangle{{vs[0], vs[1], vs[2]}}, nil

	case 1:
		// Split from the apex to the new point on the boundary edge.
		i := indexOf(boundary, true)
		mid, err := p.point(es[i], false)
		if err != nil {
			return nil, err
		}
		apex, a, b := vs[i], vs[(i+1)%3], vs[(i+2)%3]
		return []triangle{
			{mid, apex, a},
			{mid, apex, b},
		}, nil

	case 2:
		// The boundary edges meet at the apex of the interior edge. Split
		// both, keep the interior edge whole.
		i := indexOf(boundary, false)
		j, k := (i+1)%3, (i+2)%3
		apex, cj, ck := vs[i], vs[j], vs[k]
		nk, err := p.point(es[j], false) // on apex-ck
		if err != nil {
			return nil, err
		}
		nj, err := p.point(es[k], false) // on apex-cj
		if err != nil {
			return nil, err
		}
		return []triangle{
			{apex, nk, nj},
			{ck, nk, nj},
			{cj, nj, ck},
		}, nil

	case 3:
		var mids [3]Vertex
		for i, e := range es {
			if mids[i], err = p.point(e, false); err != nil {
				return nil, err
			}
		}
		return splitFour(vs, mids), nil
	}
	return nil, topologyError("BoundaryTriangularSubdivide", f, NoEdge, "%d boundary edges", count)
}

// sillyPascal drops f when all its edges are interior and splits it into
// four otherwise.
func (p *pass) sillyPascal(f FaceID) ([]triangle, error) {
	interior := 0
	for _, e := range p.src.faces[f].e {
		if p.src.NumAdjacentFaces(e) == 2 {
			interior++
		}
	}
	if interior == 3 {
		return nil, nil
	}
	es, vs, err := p.corners(f)
	if err != nil {
		return nil, err
	}
	var mids [3]Vertex
	for i, e := range es {
		if mids[i], err = p.point(e, false); err != nil {
			return nil, err
		}
	}
	return splitFour(vs, mids), nil
}

// splitFour is the 1-to-4 refinement template. vs are the corners of a
// face and mids[i] is the new vertex on the edge opposite vs[i]. It yields
// the three corner triangles followed by the center one.
func splitFour(vs, mids [3]Vertex) []triangle {
	v1, v2, v3 := vs[0], vs[1], vs[2]
	v4, v5, v6 := mids[0], mids[1], mids[2]
	return []triangle{
		{v1, v5, v6},
		{v2, v4, v6},
		{v3, v4, v5},
		{v4, v5, v6},
	}
}

func indexOf(flags [3]bool, want bool) int {
	for i, b := range flags {
		if b == want {
			return i
		}
	}
	return -1
}
