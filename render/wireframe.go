package render

import (
	"errors"
	"image"
	"log/slog"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"github.com/gogpu/butterfly"
)

// ErrEmptyMesh is returned when there is nothing to draw.
var ErrEmptyMesh = errors.New("render: mesh has no edges")

// Wireframe draws every edge of m as a line segment.
//
// The mesh's bounding box is fitted to the canvas, keeping its aspect
// ratio and centering it inside the margin. Screen Y grows upward, so the
// second projected axis points up as in a plot.
func Wireframe(m *butterfly.Mesh, opts ...Option) (image.Image, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if m.NumEdges() == 0 {
		return nil, ErrEmptyMesh
	}

	ss := float64(o.supersample)
	w, h := o.width*o.supersample, o.height*o.supersample
	fit := newViewport(m, o.projection, float64(w), float64(h), o.margin*ss)

	dc := gg.NewContext(w, h)
	defer dc.Close()

	dc.ClearWithColor(gg.FromColor(o.background))
	dc.SetColor(o.foreground)
	dc.SetLineWidth(o.lineWidth * ss)
	dc.SetLineCap(gg.LineCapRound)
	for _, e := range m.Edges() {
		x1, y1 := fit.project(e.V1())
		x2, y2 := fit.project(e.V2())
		dc.DrawLine(x1, y1, x2, y2)
	}
	if err := dc.Stroke(); err != nil {
		return nil, err
	}

	img := dc.Image()
	butterfly.Logger().Debug("render: wireframe",
		slog.Int("edges", m.NumEdges()),
		slog.String("projection", o.projection.String()),
		slog.Int("width", o.width),
		slog.Int("height", o.height),
		slog.Int("supersample", o.supersample),
	)
	if o.supersample == 1 {
		return img, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, o.width, o.height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst, nil
}

// viewport maps projected mesh coordinates to canvas pixels.
type viewport struct {
	proj       Projection
	scale      float64
	offU, offV float64
	height     float64
}

func newViewport(m *butterfly.Mesh, proj Projection, w, h, margin float64) viewport {
	lo, hi := m.Bounds()
	lu, lv := proj.axes(lo.X, lo.Y, lo.Z)
	hu, hv := proj.axes(hi.X, hi.Y, hi.Z)
	spanU, spanV := hu-lu, hv-lv

	availU, availV := w-2*margin, h-2*margin
	scale := 1.0
	switch {
	case spanU > 0 && spanV > 0:
		scale = min(availU/spanU, availV/spanV)
	case spanU > 0:
		scale = availU / spanU
	case spanV > 0:
		scale = availV / spanV
	}
	return viewport{
		proj:   proj,
		scale:  scale,
		offU:   (w-spanU*scale)/2 - lu*scale,
		offV:   (h-spanV*scale)/2 - lv*scale,
		height: h,
	}
}

func (vp viewport) project(p butterfly.Vertex) (x, y float64) {
	u, v := vp.proj.axes(p.X, p.Y, p.Z)
	return u*vp.scale + vp.offU, vp.height - (v*vp.scale + vp.offV)
}
