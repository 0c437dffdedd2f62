package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/butterfly/meshio"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info [input]",
		Short: "Print element counts of a mesh",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.input(args)
			if err != nil {
				return err
			}
			m, err := meshio.ReadFile(path)
			if err != nil {
				return err
			}

			boundary, nonManifold := 0, 0
			for id := range m.Edges() {
				switch n := m.NumAdjacentFaces(id); {
				case n == 1:
					boundary++
				case n != 2:
					nonManifold++
				}
			}
			lo, hi := m.Bounds()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "vertices      %d\n", m.NumVertices())
			fmt.Fprintf(out, "edges         %d\n", m.NumEdges())
			fmt.Fprintf(out, "faces         %d\n", m.NumFaces())
			fmt.Fprintf(out, "boundary      %d\n", boundary)
			fmt.Fprintf(out, "non-manifold  %d\n", nonManifold)
			fmt.Fprintf(out, "euler         %d\n", m.NumVertices()-m.NumEdges()+m.NumFaces())
			fmt.Fprintf(out, "bounds        %v %v\n", lo, hi)
			return nil
		},
	}
}
