// Package canvas paints scene draw calls onto a pixel surface.
//
// Drawing goes through a gogpu/gg software context. Coordinates and stroke
// widths are mapped through the [render.Viewport] before they reach the
// context, so its own transform matrix stays at identity.
package canvas

import (
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg"

	"github.com/matzehuels/zscene/pkg/render"
	"github.com/matzehuels/zscene/pkg/scene"
)

// Option configures a [Renderer].
type Option func(*Renderer)

// WithBackground clears the surface to color instead of transparent.
func WithBackground(color string) Option {
	return func(r *Renderer) {
		c, err := ParseColor(color)
		if err != nil {
			r.fail(fmt.Errorf("background: %w", err))
			return
		}
		r.background = c
	}
}

// Renderer implements [scene.Renderer] on a gg context. Drawing errors and
// unparsable colors do not stop rendering; the first one is kept and
// returned by [Renderer.Err].
type Renderer struct {
	dc         *gg.Context
	vp         render.Viewport
	background gg.RGBA
	err        error
}

// New returns a renderer with a fresh surface of the viewport size.
func New(vp render.Viewport, opts ...Option) *Renderer {
	r := &Renderer{
		dc:         gg.NewContext(vp.Width, vp.Height),
		vp:         vp,
		background: gg.Transparent,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Clear implements [scene.Renderer].
func (r *Renderer) Clear() {
	r.dc.ClearPath()
	r.dc.ClearWithColor(r.background)
}

// Draw implements [scene.Renderer].
func (r *Renderer) Draw(call scene.DrawCall) {
	if len(call.Path) == 0 {
		return
	}
	c, err := ParseColor(call.Color)
	if err != nil {
		r.fail(err)
		c = gg.Black
	}
	r.dc.SetColor(c.Color())
	zoom := r.vp.Scale()

	if call.IsDot() {
		if call.Stroke <= 0 {
			return
		}
		x, y := r.vp.Map(call.Path[0].End())
		r.dc.DrawCircle(x, y, call.Stroke*zoom/2)
		r.fail(r.dc.Fill())
		return
	}

	r.trace(call)
	if call.Fill {
		r.fail(r.dc.FillPreserve())
	}
	if call.Stroke > 0 {
		r.dc.SetLineWidth(call.Stroke * zoom)
		r.dc.SetLineJoin(gg.LineJoinRound)
		if call.Cap == scene.CapButt {
			r.dc.SetLineCap(gg.LineCapButt)
		} else {
			r.dc.SetLineCap(gg.LineCapRound)
		}
		r.fail(r.dc.StrokePreserve())
	}
	r.dc.ClearPath()
}

func (r *Renderer) trace(call scene.DrawCall) {
	for _, seg := range call.Path {
		switch seg.Op {
		case scene.OpMove:
			r.dc.MoveTo(r.vp.Map(seg.End()))
		case scene.OpLine:
			r.dc.LineTo(r.vp.Map(seg.End()))
		case scene.OpCubic:
			c1x, c1y := r.vp.Map(seg.Points[0])
			c2x, c2y := r.vp.Map(seg.Points[1])
			x, y := r.vp.Map(seg.Points[2])
			r.dc.CubicTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	if call.Closed {
		r.dc.ClosePath()
	}
}

func (r *Renderer) fail(err error) {
	if err != nil && r.err == nil {
		r.err = err
	}
}

// Err returns the first error met while drawing, if any.
func (r *Renderer) Err() error { return r.err }

// Image returns the surface.
func (r *Renderer) Image() image.Image { return r.dc.Image() }

// Encode writes the surface to w as PNG.
func (r *Renderer) Encode(w io.Writer) error {
	if r.err != nil {
		return r.err
	}
	return r.dc.EncodePNG(w)
}

// Close releases the drawing context.
func (r *Renderer) Close() error { return r.dc.Close() }
