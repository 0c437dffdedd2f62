// Package meshio reads and writes butterfly meshes as Wavefront OBJ,
// ASCII PLY and STL files.
//
// Only positions and triangle connectivity are carried. A Mesh has no
// notion of winding, so faces are written with their corners in the order
// Mesh.FaceVertices reports them, and normals, texture coordinates and
// materials in the input are ignored.
package meshio

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/butterfly"
)

var (
	// ErrNotTriangle is returned for a face record that does not have
	// exactly three corners.
	ErrNotTriangle = errors.New("meshio: face is not a triangle")

	// ErrUnsupportedFormat is returned for a file extension or encoding this
	// package does not handle.
	ErrUnsupportedFormat = errors.New("meshio: unsupported format")
)

// ParseError reports malformed input together with where it was found.
type ParseError struct {
	Format Format
	Line   int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("meshio: %s line %d: %v", e.Format, e.Line, e.Err)
	}
	return fmt.Sprintf("meshio: %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Format is a mesh file format.
type Format int

const (
	FormatOBJ Format = iota
	FormatPLY
	FormatSTL
)

func (f Format) String() string {
	switch f {
	case FormatOBJ:
		return "obj"
	case FormatPLY:
		return "ply"
	case FormatSTL:
		return "stl"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatOf picks the format from a file name's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return FormatOBJ, nil
	case ".ply":
		return FormatPLY, nil
	case ".stl":
		return FormatSTL, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Read decodes a mesh in the given format.
func Read(r io.Reader, format Format) (*butterfly.Mesh, error) {
	switch format {
	case FormatOBJ:
		return ReadOBJ(r)
	case FormatPLY:
		return ReadPLY(r)
	case FormatSTL:
		return ReadSTL(r)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
}

// Write encodes m in the given format.
func Write(w io.Writer, m *butterfly.Mesh, format Format) error {
	switch format {
	case FormatOBJ:
		return WriteOBJ(w, m)
	case FormatPLY:
		return WritePLY(w, m)
	case FormatSTL:
		return WriteSTL(w, m)
	}
	return fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
}

// ReadFile loads a mesh, choosing the format from the extension.
func ReadFile(path string) (*butterfly.Mesh, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	butterfly.Logger().Debug("meshio: read mesh",
		slog.String("path", path),
		slog.Int("vertices", m.NumVertices()),
		slog.Int("faces", m.NumFaces()),
	)
	return m, nil
}

// WriteFile saves m, choosing the format from the extension.
func WriteFile(path string, m *butterfly.Mesh) (err error) {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := Write(f, m, format); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	butterfly.Logger().Info("meshio: wrote mesh",
		slog.String("path", path),
		slog.String("format", format.String()),
		slog.Int("vertices", m.NumVertices()),
		slog.Int("faces", m.NumFaces()),
	)
	return nil
}

// build inserts positions and index triples into a new mesh. Every
// position is added even when no face uses it.
func build(positions []butterfly.Vertex, faces [][3]int) *butterfly.Mesh {
	m := butterfly.NewMesh()
	for _, p := range positions {
		m.AddVertex(p.X, p.Y, p.Z)
	}
	for _, f := range faces {
		m.AddTriangle(positions[f[0]], positions[f[1]], positions[f[2]])
	}
	return m
}

// corners returns the vertex IDs of every face in ID order.
func corners(m *butterfly.Mesh) ([][3]butterfly.VertexID, error) {
	out := make([][3]butterfly.VertexID, 0, m.NumFaces())
	for id := range m.Faces() {
		vs, err := m.FaceVertices(id)
		if err != nil {
			return nil, err
		}
		out = append(out, vs)
	}
	return out, nil
}
