package meshio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gogpu/butterfly"
)

// maxPLYList bounds a list property's entry count. Faces need three.
const maxPLYList = 1 << 10

type plyProperty struct {
	name string
	list bool
}

type plyElement struct {
	name  string
	count int
	props []plyProperty
}

// ReadPLY decodes an ASCII PLY 1.0 stream.
//
// The "vertex" element must carry x, y and z properties; any others are
// skipped. The "face" element must carry a list property named
// vertex_indices (or vertex_index) with three entries per face. Other
// elements are read past and ignored. Binary PLY is rejected with
// ErrUnsupportedFormat.
func ReadPLY(r io.Reader) (*butterfly.Mesh, error) {
	br := bufio.NewReader(r)
	elements, err := readPLYHeader(br)
	if err != nil {
		return nil, err
	}

	sc := bufio.NewScanner(br)
	sc.Split(bufio.ScanWords)
	next := func() (string, error) {
		if sc.Scan() {
			return sc.Text(), nil
		}
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	fail := func(err error) error {
		return &ParseError{Format: FormatPLY, Err: err}
	}

	var (
		positions []butterfly.Vertex
		faces     [][3]int
	)
	for _, el := range elements {
		for range el.count {
			var xyz [3]float64
			var corners []int
			for _, p := range el.props {
				if p.list {
					tok, err := next()
					if err != nil {
						return nil, fail(err)
					}
					n, err := strconv.Atoi(tok)
					if err != nil {
						return nil, fail(err)
					}
					if n < 0 || n > maxPLYList {
						return nil, fail(fmt.Errorf("list %s has %d entries (limit %d)", p.name, n, maxPLYList))
					}
					vals := make([]int, n)
					for i := range vals {
						tok, err := next()
						if err != nil {
							return nil, fail(err)
						}
						if vals[i], err = strconv.Atoi(tok); err != nil {
							return nil, fail(err)
						}
					}
					if el.name == "face" && (p.name == "vertex_indices" || p.name == "vertex_index") {
						corners = vals
					}
					continue
				}
				tok, err := next()
				if err != nil {
					return nil, fail(err)
				}
				if el.name != "vertex" {
					continue
				}
				if len(p.name) != 1 {
					continue
				}
				axis := strings.Index("xyz", p.name)
				if axis < 0 {
					continue
				}
				if xyz[axis], err = strconv.ParseFloat(tok, 64); err != nil {
					return nil, fail(err)
				}
			}

			switch el.name {
			case "vertex":
				positions = append(positions, butterfly.V(xyz[0], xyz[1], xyz[2]))
			case "face":
				if len(corners) != 3 {
					return nil, fail(fmt.Errorf("%w: %d corners", ErrNotTriangle, len(corners)))
				}
				faces = append(faces, [3]int{corners[0], corners[1], corners[2]})
			}
		}
	}

	for _, f := range faces {
		for _, idx := range f {
			if idx < 0 || idx >= len(positions) {
				return nil, fail(fmt.Errorf("vertex index %d out of range (have %d)", idx, len(positions)))
			}
		}
	}
	return build(positions, faces), nil
}

// readPLYHeader parses the header up to and including end_header and
// returns the declared elements in file order.
func readPLYHeader(br *bufio.Reader) ([]plyElement, error) {
	var elements []plyElement
	line := 0
	fail := func(err error) ([]plyElement, error) {
		return nil, &ParseError{Format: FormatPLY, Line: line, Err: err}
	}

	for {
		s, err := br.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return fail(err)
			}
			if s == "" {
				return fail(io.ErrUnexpectedEOF)
			}
		}
		line++
		fields := strings.Fields(s)

		if line == 1 {
			if len(fields) != 1 || fields[0] != "ply" {
				return fail(errors.New("missing ply magic"))
			}
			continue
		}
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "format":
			if len(fields) != 3 || fields[1] != "ascii" {
				return fail(fmt.Errorf("%w: %s", ErrUnsupportedFormat, strings.Join(fields[1:], " ")))
			}
			if fields[2] != "1.0" {
				return fail(fmt.Errorf("%w: version %s", ErrUnsupportedFormat, fields[2]))
			}
		case "comment", "obj_info":
		case "element":
			if len(fields) != 3 {
				return fail(errors.New("malformed element line"))
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil || n < 0 {
				return fail(fmt.Errorf("bad element count %q", fields[2]))
			}
			elements = append(elements, plyElement{name: fields[1], count: n})
		case "property":
			if len(elements) == 0 {
				return fail(errors.New("property before element"))
			}
			el := &elements[len(elements)-1]
			switch {
			case len(fields) == 5 && fields[1] == "list":
				el.props = append(el.props, plyProperty{name: fields[4], list: true})
			case len(fields) == 3:
				el.props = append(el.props, plyProperty{name: fields[2]})
			default:
				return fail(errors.New("malformed property line"))
			}
		case "end_header":
			return elements, nil
		default:
			return fail(fmt.Errorf("unknown header keyword %q", fields[0]))
		}
	}
}

// WritePLY encodes m as ASCII PLY 1.0.
func WritePLY(w io.Writer, m *butterfly.Mesh) error {
	faces, err := corners(m)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "ply\nformat ascii 1.0\ncomment butterfly mesh\n")
	fmt.Fprintf(bw, "element vertex %d\nproperty double x\nproperty double y\nproperty double z\n", m.NumVertices())
	fmt.Fprintf(bw, "element face %d\nproperty list uchar int vertex_indices\nend_header\n", len(faces))
	for _, v := range m.Vertices() {
		bw.WriteString(formatFloat(v.X))
		bw.WriteByte(' ')
		bw.WriteString(formatFloat(v.Y))
		bw.WriteByte(' ')
		bw.WriteString(formatFloat(v.Z))
		bw.WriteByte('\n')
	}
	for _, f := range faces {
		fmt.Fprintf(bw, "3 %d %d %d\n", f[0], f[1], f[2])
	}
	return bw.Flush()
}
