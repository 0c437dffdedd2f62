package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gogpu/butterfly"
	"github.com/gogpu/butterfly/meshio"
	"github.com/gogpu/butterfly/render"
)

func newSubdivideCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subdivide [input]",
		Short: "Refine a mesh and write the result",
		Long: `Reads a triangle mesh, applies the chosen scheme the requested number
of times and writes the refined mesh. The output format follows the file
extension (.obj, .ply or .stl). --wireframe additionally draws the result as a PNG.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSubdivide(cmd, args)
		},
	}

	f := cmd.Flags()
	f.String("scheme", a.cfg.Scheme, "subdivision scheme: butterfly, linear, boundary or pascal")
	f.IntP("iterations", "n", a.cfg.Iterations, "number of subdivision passes")
	f.Int("workers", a.cfg.Workers, "goroutines per pass (0 = all CPUs)")
	f.StringP("output", "o", a.cfg.Output, "output mesh file (.obj or .ply)")
	f.String("wireframe", a.cfg.Wireframe.Path, "write a wireframe PNG of the result")
	f.String("projection", a.cfg.Wireframe.Projection, "wireframe plane: xy, xz or yz")
	f.Int("width", a.cfg.Wireframe.Width, "wireframe width in pixels")
	f.Int("height", a.cfg.Wireframe.Height, "wireframe height in pixels")
	return cmd
}

func (a *app) runSubdivide(cmd *cobra.Command, args []string) error {
	path, err := a.input(args)
	if err != nil {
		return err
	}
	scheme, err := butterfly.ParseScheme(a.cfg.Scheme)
	if err != nil {
		return err
	}
	if a.cfg.Output == "" && a.cfg.Wireframe.Path == "" {
		return errors.New("nothing to write: set --output or --wireframe")
	}

	m, err := meshio.ReadFile(path)
	if err != nil {
		return err
	}
	fine, err := butterfly.Subdivide(cmd.Context(), m, scheme,
		butterfly.WithIterations(a.cfg.Iterations),
		butterfly.WithWorkers(a.cfg.Workers),
	)
	if err != nil {
		return err
	}
	butterfly.Logger().Info("subdivided",
		slog.String("input", path),
		slog.String("scheme", scheme.String()),
		slog.Int("iterations", a.cfg.Iterations),
		slog.Int("faces_in", m.NumFaces()),
		slog.Int("faces_out", fine.NumFaces()),
	)

	if a.cfg.Output != "" {
		if err := meshio.WriteFile(a.cfg.Output, fine); err != nil {
			return err
		}
	}
	if a.cfg.Wireframe.Path != "" {
		if err := a.writeWireframe(fine); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d vertices, %d edges, %d faces -> %d vertices, %d edges, %d faces\n",
		scheme, m.NumVertices(), m.NumEdges(), m.NumFaces(),
		fine.NumVertices(), fine.NumEdges(), fine.NumFaces())
	return nil
}

func (a *app) writeWireframe(m *butterfly.Mesh) error {
	wf := a.cfg.Wireframe
	proj, err := render.ParseProjection(wf.Projection)
	if err != nil {
		return err
	}
	img, err := render.Wireframe(m,
		render.WithSize(wf.Width, wf.Height),
		render.WithProjection(proj),
		render.WithLineWidth(wf.LineWidth),
		render.WithSupersample(wf.Supersample),
	)
	if err != nil {
		return err
	}
	return render.SavePNG(wf.Path, img)
}
