// Package render draws butterfly meshes as wireframe images.
//
// Every edge of the mesh is projected orthographically onto one of the
// coordinate planes and stroked with gg's software rasterizer. The image
// is drawn at a multiple of the requested size and scaled down with a
// Catmull-Rom filter, which gives smooth lines even for dense meshes whose
// edges are shorter than a pixel.
//
// # Usage
//
//	img, err := render.Wireframe(mesh,
//	    render.WithSize(1024, 1024),
//	    render.WithProjection(render.ProjectionXZ),
//	)
//	if err != nil {
//	    return err
//	}
//	return render.SavePNG("mesh.png", img)
package render
