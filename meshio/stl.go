package meshio

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/unixpickle/model3d/model3d"

	"github.com/gogpu/butterfly"
)

// ReadSTL decodes an STL stream.
//
// STL stores each triangle with its own corners in single precision, so
// shared corners weld only when they were written from the same value.
// Triangles whose corners coincide are dropped.
func ReadSTL(r io.Reader) (*butterfly.Mesh, error) {
	tris, err := model3d.ReadSTL(r)
	if err != nil {
		return nil, &ParseError{Format: FormatSTL, Err: err}
	}
	m := butterfly.NewMesh()
	dropped := 0
	for _, t := range tris {
		a, b, c := fromCoord(t[0]), fromCoord(t[1]), fromCoord(t[2])
		if a == b || b == c || c == a {
			dropped++
			continue
		}
		m.AddTriangle(a, b, c)
	}
	if dropped > 0 {
		butterfly.Logger().Debug("meshio: dropped degenerate triangles",
			slog.String("format", FormatSTL.String()),
			slog.Int("count", dropped),
		)
	}
	return m, nil
}

// WriteSTL encodes m as binary STL. Faces are written in ID order with
// their corners in Mesh.FaceVertices order.
func WriteSTL(w io.Writer, m *butterfly.Mesh) error {
	faces, err := corners(m)
	if err != nil {
		return err
	}
	tris := make([]*model3d.Triangle, len(faces))
	for i, f := range faces {
		tris[i] = &model3d.Triangle{
			toCoord(m.Vertex(f[0])),
			toCoord(m.Vertex(f[1])),
			toCoord(m.Vertex(f[2])),
		}
	}
	if err := model3d.WriteSTL(w, tris); err != nil {
		return fmt.Errorf("meshio: stl: %w", err)
	}
	return nil
}

func fromCoord(c model3d.Coord3D) butterfly.Vertex {
	return butterfly.V(c.X, c.Y, c.Z)
}

func toCoord(v butterfly.Vertex) model3d.Coord3D {
	return model3d.Coord3D{X: v.X, Y: v.Y, Z: v.Z}
}
