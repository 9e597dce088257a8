package render

import (
	"io"

	"github.com/matzehuels/zscene/pkg/scene"
)

// Viewport describes the drawing surface: its pixel size, the zoom applied
// to view-space coordinates, and whether the view-space origin sits at the
// surface center or its top-left corner.
type Viewport struct {
	Width    int
	Height   int
	Zoom     float64
	Centered bool
}

// DefaultViewport is a 240x240 surface centered on the origin at zoom 1.
var DefaultViewport = Viewport{Width: 240, Height: 240, Zoom: 1, Centered: true}

// Scale returns the zoom factor, treating non-positive values as 1.
func (v Viewport) Scale() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}

// Map converts a view-space point to surface pixels.
func (v Viewport) Map(p scene.Point) (x, y float64) {
	z := v.Scale()
	x, y = p.X*z, p.Y*z
	if v.Centered {
		x += float64(v.Width) / 2
		y += float64(v.Height) / 2
	}
	return x, y
}

// ViewBox returns the view-space rectangle visible on the surface.
func (v Viewport) ViewBox() (minX, minY, width, height float64) {
	z := v.Scale()
	width, height = float64(v.Width)/z, float64(v.Height)/z
	if v.Centered {
		minX, minY = -width/2, -height/2
	}
	return minX, minY, width, height
}

// Sink is a drawing backend that can write the finished frame.
type Sink interface {
	scene.Renderer
	Encode(w io.Writer) error
}
