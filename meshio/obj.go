package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gogpu/butterfly"
)

// ReadOBJ decodes a Wavefront OBJ stream.
//
// Only "v" and "f" records are used. Face corners may be written as
// "i", "i/t", "i//n" or "i/t/n", and negative indices count back from the
// last vertex read so far. A face with other than three corners is
// rejected with ErrNotTriangle.
func ReadOBJ(r io.Reader) (*butterfly.Mesh, error) {
	var (
		positions []butterfly.Vertex
		faces     [][3]int
	)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, &ParseError{Format: FormatOBJ, Line: line, Err: fmt.Errorf("vertex has %d coordinates", len(fields)-1)}
			}
			var xyz [3]float64
			for i := range xyz {
				f, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, &ParseError{Format: FormatOBJ, Line: line, Err: err}
				}
				xyz[i] = f
			}
			positions = append(positions, butterfly.V(xyz[0], xyz[1], xyz[2]))

		case "f":
			if len(fields) != 4 {
				return nil, &ParseError{Format: FormatOBJ, Line: line, Err: fmt.Errorf("%w: %d corners", ErrNotTriangle, len(fields)-1)}
			}
			var f [3]int
			for i := range f {
				idx, err := objIndex(fields[i+1], len(positions))
				if err != nil {
					return nil, &ParseError{Format: FormatOBJ, Line: line, Err: err}
				}
				f[i] = idx
			}
			faces = append(faces, f)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &ParseError{Format: FormatOBJ, Line: line + 1, Err: err}
	}
	return build(positions, faces), nil
}

// objIndex resolves one face corner to a 0-based position index.
func objIndex(tok string, n int) (int, error) {
	if i := strings.IndexByte(tok, '/'); i >= 0 {
		tok = tok[:i]
	}
	idx, err := strconv.Atoi(tok)
	if err != nil {
		return 0, err
	}
	switch {
	case idx > 0 && idx <= n:
		return idx - 1, nil
	case idx < 0 && -idx <= n:
		return n + idx, nil
	}
	return 0, fmt.Errorf("vertex index %d out of range (have %d)", idx, n)
}

// WriteOBJ encodes m as Wavefront OBJ. Coordinates are written with the
// shortest representation that reads back to the same float64.
func WriteOBJ(w io.Writer, m *butterfly.Mesh) error {
	faces, err := corners(m)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# butterfly mesh: %d vertices, %d faces\n", m.NumVertices(), m.NumFaces())
	for _, v := range m.Vertices() {
		bw.WriteString("v ")
		bw.WriteString(formatFloat(v.X))
		bw.WriteByte(' ')
		bw.WriteString(formatFloat(v.Y))
		bw.WriteByte(' ')
		bw.WriteString(formatFloat(v.Z))
		bw.WriteByte('\n')
	}
	for _, f := range faces {
		fmt.Fprintf(bw, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1)
	}
	return bw.Flush()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
