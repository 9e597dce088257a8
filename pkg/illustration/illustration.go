// Package illustration owns a drawing surface and the scene drawn on it.
//
// An [Illustration] is the root anchor of a scene plus the surface state a
// host needs to show it: size, zoom, centering and background. It renders
// through any [scene.Renderer], turns pointer drags into rotation, and
// drives frame loops with [Illustration.Animate]. It holds no window or
// event source; hosts feed it sizes and pointer deltas.
package illustration

import (
	"github.com/matzehuels/zscene/pkg/geom"
	"github.com/matzehuels/zscene/pkg/render"
	"github.com/matzehuels/zscene/pkg/render/canvas"
	"github.com/matzehuels/zscene/pkg/render/svg"
	"github.com/matzehuels/zscene/pkg/scene"
)

// Options configures a new illustration. Zero values take the defaults of
// [render.DefaultViewport].
type Options struct {
	Translate *geom.Vector
	Rotate    *geom.Vector
	Scale     *geom.Vector

	Width, Height int
	Zoom          float64
	// Centered places the view-space origin at the surface center. Nil
	// means true.
	Centered   *bool
	Background string

	// DragRotate makes drags rotate DragTarget, or the illustration itself
	// when DragTarget is nil.
	DragRotate bool
	DragTarget scene.Node

	// OnResize is called by SetSize with the new size.
	OnResize func(width, height int)
}

// Illustration is a scene root bound to a drawing surface.
type Illustration struct {
	*scene.Anchor

	Width, Height int
	Zoom          float64
	Centered      bool
	Background    string

	DragRotate bool
	DragTarget scene.Node
	OnResize   func(width, height int)

	dragStart geom.Vector
	dragging  bool
}

// New creates an illustration with an empty scene.
func New(opts Options) *Illustration {
	vp := render.DefaultViewport
	il := &Illustration{
		Anchor: scene.NewAnchor(scene.AnchorOptions{
			Translate: opts.Translate,
			Rotate:    opts.Rotate,
			Scale:     opts.Scale,
		}),
		Width:      vp.Width,
		Height:     vp.Height,
		Zoom:       vp.Zoom,
		Centered:   true,
		Background: opts.Background,
		DragRotate: opts.DragRotate,
		DragTarget: opts.DragTarget,
		OnResize:   opts.OnResize,
	}
	if opts.Width > 0 {
		il.Width = opts.Width
	}
	if opts.Height > 0 {
		il.Height = opts.Height
	}
	if opts.Zoom > 0 {
		il.Zoom = opts.Zoom
	}
	if opts.Centered != nil {
		il.Centered = *opts.Centered
	}
	return il
}

// Viewport returns the surface geometry sinks should draw with.
func (il *Illustration) Viewport() render.Viewport {
	return render.Viewport{Width: il.Width, Height: il.Height, Zoom: il.Zoom, Centered: il.Centered}
}

// SetSize changes the surface size and reports it to OnResize.
func (il *Illustration) SetSize(width, height int) {
	il.Width, il.Height = width, height
	if il.OnResize != nil {
		il.OnResize(width, height)
	}
}

// SVG returns a vector sink for the current surface, painted with the
// illustration background.
func (il *Illustration) SVG(opts ...svg.Option) *svg.Renderer {
	if il.Background != "" {
		opts = append([]svg.Option{svg.WithBackground(il.Background)}, opts...)
	}
	return svg.New(il.Viewport(), opts...)
}

// Canvas returns a pixel sink for the current surface, cleared to the
// illustration background. The caller must Close it.
func (il *Illustration) Canvas(opts ...canvas.Option) *canvas.Renderer {
	if il.Background != "" {
		opts = append([]canvas.Option{canvas.WithBackground(il.Background)}, opts...)
	}
	return canvas.New(il.Viewport(), opts...)
}

// RenderGraph paints item, or the whole illustration when item is nil, to
// r using the data of the last update.
func (il *Illustration) RenderGraph(r scene.Renderer, item scene.Node) {
	il.root(item).RenderGraph(r)
}

// UpdateRenderGraph updates item, or the whole illustration when item is
// nil, then paints it to r.
func (il *Illustration) UpdateRenderGraph(r scene.Renderer, item scene.Node) {
	root := il.root(item)
	root.UpdateGraph()
	root.RenderGraph(r)
}

func (il *Illustration) root(item scene.Node) *scene.Anchor {
	if item == nil {
		return il.Anchor
	}
	return item.Base()
}

func (il *Illustration) dragTarget() *scene.Anchor {
	if il.DragTarget != nil {
		return il.DragTarget.Base()
	}
	return il.Anchor
}

// DragStart records the rotation a drag starts from. It is a no-op unless
// DragRotate is set.
func (il *Illustration) DragStart() {
	if !il.DragRotate {
		return
	}
	il.dragStart = il.dragTarget().Rotate
	il.dragging = true
}

// DragMove rotates the drag target by a pointer displacement in surface
// pixels, measured from where the drag started. A drag across the full
// surface width is one full turn.
func (il *Illustration) DragMove(dx, dy float64) {
	if !il.dragging || il.Width <= 0 {
		return
	}
	w := float64(il.Width)
	t := il.dragTarget()
	t.Rotate.X = il.dragStart.X - dy/w*geom.TAU
	t.Rotate.Y = il.dragStart.Y - dx/w*geom.TAU
}

// DragEnd finishes the current drag.
func (il *Illustration) DragEnd() {
	il.dragging = false
}
