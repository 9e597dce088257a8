package scene

import (
	"math"

	"github.com/matzehuels/zscene/pkg/geom"
)

// EllipseOptions configures a new ellipse. Diameter defaults to 1 and
// Quarters to 4. Width and Height, when set, override Diameter per axis.
type EllipseOptions struct {
	ShapeOptions
	Diameter      *float64
	Width, Height *float64
	Quarters      *int
}

// Ellipse is an ellipse, or 1 to 3 quarters of one, in the local xy plane.
type Ellipse struct {
	Shape
	Diameter float64
	// Width and Height override Diameter when non-zero.
	Width, Height float64
	Quarters      int
}

// NewEllipse creates an ellipse and attaches it to opts.AddTo when set.
func NewEllipse(opts EllipseOptions) *Ellipse {
	e := &Ellipse{}
	e.initEllipse(e, ellipseDefaults(), opts)
	attach(e, opts.AddTo)
	return e
}

func ellipseDefaults() ShapeConfig {
	cfg := DefaultShapeConfig()
	cfg.Closed = false
	return cfg
}

func (e *Ellipse) initEllipse(self Node, base ShapeConfig, opts EllipseOptions) {
	e.initShape(self, base.Apply(opts.ShapeOptions))
	e.Diameter = orDefault(opts.Diameter, 1)
	e.Width = orDefault(opts.Width, 0)
	e.Height = orDefault(opts.Height, 0)
	e.Quarters = 4
	if opts.Quarters != nil {
		e.Quarters = *opts.Quarters
	}
	e.UpdatePath()
}

func (e *Ellipse) size() (w, h float64) {
	w, h = e.Width, e.Height
	if w == 0 {
		w = e.Diameter
	}
	if h == 0 {
		h = e.Diameter
	}
	return w, h
}

// UpdatePath regenerates the path from the dimensions. The path runs
// clockwise from the top and is made only of arcs.
func (e *Ellipse) UpdatePath() {
	w, h := e.size()
	x, y := w/2, h/2
	quarters := min(max(e.Quarters, 1), 4)

	path := []PathElement{
		PointAt(0, -y, 0),
		Arc(geom.Vector{X: x, Y: -y}, geom.Vector{X: x}),
	}
	if quarters > 1 {
		path = append(path, Arc(geom.Vector{X: x, Y: y}, geom.Vector{Y: y}))
	}
	if quarters > 2 {
		path = append(path, Arc(geom.Vector{X: -x, Y: y}, geom.Vector{X: -x}))
	}
	if quarters > 3 {
		path = append(path, Arc(geom.Vector{X: -x, Y: -y}, geom.Vector{Y: -y}))
	}
	e.Path = path
}

func (e *Ellipse) ellipseOptions(opts EllipseOptions) EllipseOptions {
	if opts.Diameter == nil {
		opts.Diameter = geom.F(e.Diameter)
	}
	if opts.Width == nil {
		opts.Width = geom.F(e.Width)
	}
	if opts.Height == nil {
		opts.Height = geom.F(e.Height)
	}
	if opts.Quarters == nil {
		q := e.Quarters
		opts.Quarters = &q
	}
	return opts
}

// Copy returns a new ellipse with the attributes of e, overridden by opts.
func (e *Ellipse) Copy(opts EllipseOptions) *Ellipse {
	c := &Ellipse{}
	c.initEllipse(c, e.shapeConfig(), e.ellipseOptions(opts))
	attach(c, opts.AddTo)
	return c
}

// CopyGraph is [Ellipse.Copy] followed by a deep copy of every descendant.
func (e *Ellipse) CopyGraph(opts EllipseOptions) *Ellipse {
	c := e.Copy(opts)
	copyChildren(e, c)
	return c
}

func (e *Ellipse) clone() Node { return e.Copy(EllipseOptions{}) }

// PolygonOptions configures a new regular polygon. Radius defaults to 0.5
// and Sides to 3.
type PolygonOptions struct {
	ShapeOptions
	Radius *float64
	Sides  *int
}

// Polygon is a regular polygon in the local xy plane with its first vertex
// straight up.
type Polygon struct {
	Shape
	Radius float64
	Sides  int
}

// NewPolygon creates a polygon and attaches it to opts.AddTo when set.
func NewPolygon(opts PolygonOptions) *Polygon {
	p := &Polygon{}
	p.initPolygon(DefaultShapeConfig(), opts)
	attach(p, opts.AddTo)
	return p
}

func (p *Polygon) initPolygon(base ShapeConfig, opts PolygonOptions) {
	p.initShape(p, base.Apply(opts.ShapeOptions))
	p.Radius = orDefault(opts.Radius, 0.5)
	p.Sides = 3
	if opts.Sides != nil {
		p.Sides = *opts.Sides
	}
	p.UpdatePath()
}

// UpdatePath regenerates the vertices from Radius and Sides. Fewer than
// three sides are drawn as a triangle.
func (p *Polygon) UpdatePath() {
	sides := max(p.Sides, 3)
	path := make([]PathElement, sides)
	for i := range path {
		theta := float64(i)/float64(sides)*geom.TAU - geom.TAU/4
		sin, cos := math.Sincos(theta)
		path[i] = PointAt(cos*p.Radius, sin*p.Radius, 0)
	}
	p.Path = path
}

// Copy returns a new polygon with the attributes of p, overridden by opts.
func (p *Polygon) Copy(opts PolygonOptions) *Polygon {
	if opts.Radius == nil {
		opts.Radius = geom.F(p.Radius)
	}
	if opts.Sides == nil {
		sides := p.Sides
		opts.Sides = &sides
	}
	c := &Polygon{}
	c.initPolygon(p.shapeConfig(), opts)
	attach(c, opts.AddTo)
	return c
}

// CopyGraph is [Polygon.Copy] followed by a deep copy of every descendant.
func (p *Polygon) CopyGraph(opts PolygonOptions) *Polygon {
	c := p.Copy(opts)
	copyChildren(p, c)
	return c
}

func (p *Polygon) clone() Node { return p.Copy(PolygonOptions{}) }
