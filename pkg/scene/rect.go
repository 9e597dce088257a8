package scene

import "github.com/matzehuels/zscene/pkg/geom"

// RectOptions configures a new rectangle. Width and Height default to 1.
type RectOptions struct {
	ShapeOptions
	Width, Height *float64
}

// Rect is a rectangle centered on its origin in the local xy plane.
type Rect struct {
	Shape
	Width, Height float64
}

// NewRect creates a rectangle and attaches it to opts.AddTo when set.
func NewRect(opts RectOptions) *Rect {
	r := &Rect{}
	r.initRect(DefaultShapeConfig(), opts)
	attach(r, opts.AddTo)
	return r
}

func (r *Rect) initRect(base ShapeConfig, opts RectOptions) {
	r.initShape(r, base.Apply(opts.ShapeOptions))
	r.Width = orDefault(opts.Width, 1)
	r.Height = orDefault(opts.Height, 1)
	r.UpdatePath()
}

// UpdatePath regenerates the path from Width and Height.
func (r *Rect) UpdatePath() {
	x, y := r.Width/2, r.Height/2
	r.Path = []PathElement{
		PointAt(-x, -y, 0),
		PointAt(x, -y, 0),
		PointAt(x, y, 0),
		PointAt(-x, y, 0),
	}
}

// Copy returns a new rectangle with the attributes of r, overridden by opts.
func (r *Rect) Copy(opts RectOptions) *Rect {
	if opts.Width == nil {
		opts.Width = geom.F(r.Width)
	}
	if opts.Height == nil {
		opts.Height = geom.F(r.Height)
	}
	c := &Rect{}
	c.initRect(r.shapeConfig(), opts)
	attach(c, opts.AddTo)
	return c
}

// CopyGraph is [Rect.Copy] followed by a deep copy of every descendant.
func (r *Rect) CopyGraph(opts RectOptions) *Rect {
	c := r.Copy(opts)
	copyChildren(r, c)
	return c
}

func (r *Rect) clone() Node { return r.Copy(RectOptions{}) }

// RoundedRectOptions configures a new rounded rectangle. Width and Height
// default to 1 and CornerRadius to 0.25.
type RoundedRectOptions struct {
	ShapeOptions
	Width, Height *float64
	CornerRadius  *float64
}

// RoundedRect is a rectangle whose corners are replaced by arcs. The radius
// is clamped to half the shorter side.
type RoundedRect struct {
	Shape
	Width, Height float64
	CornerRadius  float64
}

// NewRoundedRect creates a rounded rectangle and attaches it to opts.AddTo
// when set.
func NewRoundedRect(opts RoundedRectOptions) *RoundedRect {
	r := &RoundedRect{}
	base := DefaultShapeConfig()
	base.Closed = false
	r.initRoundedRect(base, opts)
	attach(r, opts.AddTo)
	return r
}

func (r *RoundedRect) initRoundedRect(base ShapeConfig, opts RoundedRectOptions) {
	r.initShape(r, base.Apply(opts.ShapeOptions))
	r.Width = orDefault(opts.Width, 1)
	r.Height = orDefault(opts.Height, 1)
	r.CornerRadius = orDefault(opts.CornerRadius, 0.25)
	r.UpdatePath()
}

// UpdatePath regenerates the path from the dimensions. The path starts and
// ends at the top edge, so it needs no closing segment.
func (r *RoundedRect) UpdatePath() {
	xA, yA := r.Width/2, r.Height/2
	radius := min(r.CornerRadius, xA, yA)
	xB, yB := xA-radius, yA-radius

	path := []PathElement{
		PointAt(xB, -yA, 0),
		Arc(geom.Vector{X: xA, Y: -yA}, geom.Vector{X: xA, Y: -yB}),
	}
	if yB != 0 {
		path = append(path, PointAt(xA, yB, 0))
	}
	path = append(path, Arc(geom.Vector{X: xA, Y: yA}, geom.Vector{X: xB, Y: yA}))
	if xB != 0 {
		path = append(path, PointAt(-xB, yA, 0))
	}
	path = append(path, Arc(geom.Vector{X: -xA, Y: yA}, geom.Vector{X: -xA, Y: yB}))
	if yB != 0 {
		path = append(path, PointAt(-xA, -yB, 0))
	}
	path = append(path, Arc(geom.Vector{X: -xA, Y: -yA}, geom.Vector{X: -xB, Y: -yA}))
	if xB != 0 {
		path = append(path, PointAt(xB, -yA, 0))
	}
	r.Path = path
}

// Copy returns a new rounded rectangle with the attributes of r, overridden
// by opts.
func (r *RoundedRect) Copy(opts RoundedRectOptions) *RoundedRect {
	if opts.Width == nil {
		opts.Width = geom.F(r.Width)
	}
	if opts.Height == nil {
		opts.Height = geom.F(r.Height)
	}
	if opts.CornerRadius == nil {
		opts.CornerRadius = geom.F(r.CornerRadius)
	}
	c := &RoundedRect{}
	c.initRoundedRect(r.shapeConfig(), opts)
	attach(c, opts.AddTo)
	return c
}

// CopyGraph is [RoundedRect.Copy] followed by a deep copy of every
// descendant.
func (r *RoundedRect) CopyGraph(opts RoundedRectOptions) *RoundedRect {
	c := r.Copy(opts)
	copyChildren(r, c)
	return c
}

func (r *RoundedRect) clone() Node { return r.Copy(RoundedRectOptions{}) }
