package butterfly_test

import (
	"fmt"
	"log"

	"github.com/gogpu/butterfly"
)

func ExampleMesh_LinearSubdivide() {
	m := butterfly.NewMesh()
	a := m.AddVertex(0, 0, 0)
	b := m.AddVertex(1, 0, 0)
	c := m.AddVertex(0, 1, 0)
	m.AddFace(m.AddEdge(a, b), m.AddEdge(b, c), m.AddEdge(c, a))

	fine, err := m.LinearSubdivide()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(fine.NumVertices(), fine.NumEdges(), fine.NumFaces())
	// Output: 6 9 4
}

func ExampleMesh_AdjacentFace() {
	m := butterfly.NewMesh()
	a, b := butterfly.V(0, 0, 0), butterfly.V(1, 1, 0)
	m.AddTriangle(a, butterfly.V(1, 0, 0), b)
	m.AddTriangle(a, b, butterfly.V(0, 1, 0))

	diagonal, _ := m.EdgeID(butterfly.NewEdge(a, b))
	across, err := m.AdjacentFace(0, diagonal)
	fmt.Println(across, err)

	rim, _ := m.EdgeID(butterfly.NewEdge(a, butterfly.V(1, 0, 0)))
	_, err = m.AdjacentFace(0, rim)
	fmt.Println(err)
	// Output:
	// 1 <nil>
	// butterfly: boundary reached
}

func ExampleParseScheme() {
	s, err := butterfly.ParseScheme("Pascal")
	fmt.Println(s, err)
	// Output: pascal <nil>
}
