package render

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// Projection selects the coordinate plane a mesh is drawn on.
type Projection int

const (
	// ProjectionXY looks down the Z axis.
	ProjectionXY Projection = iota
	// ProjectionXZ looks along the Y axis.
	ProjectionXZ
	// ProjectionYZ looks along the X axis.
	ProjectionYZ
)

var projectionNames = [...]string{
	ProjectionXY: "xy",
	ProjectionXZ: "xz",
	ProjectionYZ: "yz",
}

func (p Projection) String() string {
	if p >= 0 && int(p) < len(projectionNames) {
		return projectionNames[p]
	}
	return fmt.Sprintf("Projection(%d)", int(p))
}

// ErrUnknownProjection is returned by ParseProjection for an unknown name.
var ErrUnknownProjection = errors.New("render: unknown projection")

// ParseProjection returns the projection named "xy", "xz" or "yz".
func ParseProjection(name string) (Projection, error) {
	for i, n := range projectionNames {
		if strings.EqualFold(n, name) {
			return Projection(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownProjection, name)
}

// axes returns the two coordinates of (x, y, z) that land on screen.
func (p Projection) axes(x, y, z float64) (u, v float64) {
	switch p {
	case ProjectionXZ:
		return x, z
	case ProjectionYZ:
		return y, z
	}
	return x, y
}

// Option configures Wireframe.
type Option func(*options)

type options struct {
	width, height int
	projection    Projection
	lineWidth     float64
	supersample   int
	margin        float64
	background    color.Color
	foreground    color.Color
}

func defaultOptions() options {
	return options{
		width:       800,
		height:      800,
		projection:  ProjectionXY,
		lineWidth:   1,
		supersample: 2,
		margin:      16,
		background:  color.White,
		foreground:  color.Black,
	}
}

func (o options) validate() error {
	switch {
	case o.width <= 0 || o.height <= 0:
		return fmt.Errorf("render: invalid size %dx%d", o.width, o.height)
	case o.supersample < 1:
		return fmt.Errorf("render: invalid supersample factor %d", o.supersample)
	case o.lineWidth <= 0:
		return fmt.Errorf("render: invalid line width %g", o.lineWidth)
	case 2*o.margin >= float64(min(o.width, o.height)):
		return fmt.Errorf("render: margin %g leaves no room in %dx%d", o.margin, o.width, o.height)
	}
	return nil
}

// WithSize sets the output image size in pixels. Default 800x800.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// WithProjection sets the drawing plane. Default ProjectionXY.
func WithProjection(p Projection) Option {
	return func(o *options) {
		o.projection = p
	}
}

// WithLineWidth sets the stroke width in output pixels. Default 1.
func WithLineWidth(w float64) Option {
	return func(o *options) {
		o.lineWidth = w
	}
}

// WithSupersample sets how many times larger the canvas is drawn before
// being scaled down. 1 disables supersampling. Default 2.
func WithSupersample(n int) Option {
	return func(o *options) {
		o.supersample = n
	}
}

// WithMargin sets the blank border around the mesh in output pixels.
// Default 16.
func WithMargin(px float64) Option {
	return func(o *options) {
		o.margin = px
	}
}

// WithColors sets the background and line colors. Default black on white.
func WithColors(background, foreground color.Color) Option {
	return func(o *options) {
		o.background = background
		o.foreground = foreground
	}
}
