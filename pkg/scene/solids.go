package scene

import (
	"math"

	"github.com/matzehuels/zscene/pkg/geom"
)

// HemisphereOptions configures a new hemisphere. Diameter defaults to 1.
type HemisphereOptions struct {
	ShapeOptions
	Diameter *float64
}

// Hemisphere is half a sphere: a flat circular base in the local xy plane
// and a dome bulging towards +z.
type Hemisphere struct {
	Ellipse
	apex *Anchor
}

// NewHemisphere creates a hemisphere and attaches it to opts.AddTo when
// set. It is filled unless opts says otherwise.
func NewHemisphere(opts HemisphereOptions) *Hemisphere {
	h := &Hemisphere{}
	base := ellipseDefaults()
	base.Fill = true
	h.initHemisphere(base, opts)
	attach(h, opts.AddTo)
	return h
}

func (h *Hemisphere) initHemisphere(base ShapeConfig, opts HemisphereOptions) {
	h.initEllipse(h, base, EllipseOptions{ShapeOptions: opts.ShapeOptions, Diameter: opts.Diameter})
	h.apex = ownedAnchor(h)
	h.UpdatePath()
}

// UpdatePath regenerates the base and moves the dome apex.
func (h *Hemisphere) UpdatePath() {
	h.Ellipse.UpdatePath()
	h.apex.Translate = geom.Vector{Z: h.Diameter / 2}
}

// Copy returns a new hemisphere with the attributes of h, overridden by
// opts.
func (h *Hemisphere) Copy(opts HemisphereOptions) *Hemisphere {
	if opts.Diameter == nil {
		opts.Diameter = geom.F(h.Diameter)
	}
	c := &Hemisphere{}
	c.initHemisphere(h.shapeConfig(), opts)
	attach(c, opts.AddTo)
	return c
}

// CopyGraph is [Hemisphere.Copy] followed by a deep copy of every
// descendant.
func (h *Hemisphere) CopyGraph(opts HemisphereOptions) *Hemisphere {
	c := h.Copy(opts)
	copyChildren(h, c)
	return c
}

func (h *Hemisphere) clone() Node { return h.Copy(HemisphereOptions{}) }

func (h *Hemisphere) updateDepth() {
	h.depth = h.renderOrigin.Lerp(h.apex.renderOrigin, 3.0/8).Z
}

func (h *Hemisphere) render(r Renderer) {
	if call, ok := h.domeCall(); ok {
		r.Draw(call)
	}
	h.Shape.render(r)
}

// domeCall draws the dome silhouette: a half circle on the apex side of
// the base, scaled by the projected normal.
func (h *Hemisphere) domeCall() (DrawCall, bool) {
	stroke := max(h.Stroke, 0)
	if !h.Visible || (!h.Fill && stroke == 0) {
		return DrawCall{}, false
	}
	n := h.renderNormal
	radius := h.Diameter / 2 * n.Magnitude()
	angle := math.Atan2(n.Y, n.X)
	center := Point{X: h.renderOrigin.X, Y: h.renderOrigin.Y}
	return DrawCall{
		Path:   halfCircle(center, radius, angle),
		Closed: true,
		Fill:   h.Fill,
		Stroke: stroke,
		Color:  h.Color,
	}, true
}

// halfCircle returns the arc of radius r around c that spans a quarter turn
// on either side of angle, as two cubic segments.
func halfCircle(c Point, r, angle float64) []Segment {
	at := func(a float64) (Point, Point) {
		sin, cos := math.Sincos(a)
		return Point{X: c.X + r*cos, Y: c.Y + r*sin}, Point{X: -sin, Y: cos}
	}
	// control distance of a cubic approximating a quarter circle
	k := 4.0 / 3 * math.Tan(math.Pi/8) * r

	start, _ := at(angle - math.Pi/2)
	segs := []Segment{{Op: OpMove, Points: []Point{start}}}
	for q := range 2 {
		a0 := angle - math.Pi/2 + float64(q)*math.Pi/2
		p0, t0 := at(a0)
		p1, t1 := at(a0 + math.Pi/2)
		segs = append(segs, Segment{Op: OpCubic, Points: []Point{
			{X: p0.X + k*t0.X, Y: p0.Y + k*t0.Y},
			{X: p1.X - k*t1.X, Y: p1.Y - k*t1.Y},
			p1,
		}})
	}
	return segs
}

// ConeOptions configures a new cone. Diameter and Length default to 1.
type ConeOptions struct {
	ShapeOptions
	Diameter *float64
	Length   *float64
}

// Cone is a circular base in the local xy plane with its apex at z =
// Length.
type Cone struct {
	Ellipse
	Length float64
	apex   *Anchor
}

// NewCone creates a cone and attaches it to opts.AddTo when set. It is
// filled unless opts says otherwise.
func NewCone(opts ConeOptions) *Cone {
	c := &Cone{}
	base := ellipseDefaults()
	base.Fill = true
	c.initCone(base, opts)
	attach(c, opts.AddTo)
	return c
}

func (c *Cone) initCone(base ShapeConfig, opts ConeOptions) {
	c.initEllipse(c, base, EllipseOptions{ShapeOptions: opts.ShapeOptions, Diameter: opts.Diameter})
	c.Length = orDefault(opts.Length, 1)
	c.apex = ownedAnchor(c)
	c.UpdatePath()
}

// UpdatePath regenerates the base and moves the apex.
func (c *Cone) UpdatePath() {
	c.Ellipse.UpdatePath()
	c.apex.Translate = geom.Vector{Z: c.Length}
}

// Copy returns a new cone with the attributes of c, overridden by opts.
func (c *Cone) Copy(opts ConeOptions) *Cone {
	if opts.Diameter == nil {
		opts.Diameter = geom.F(c.Diameter)
	}
	if opts.Length == nil {
		opts.Length = geom.F(c.Length)
	}
	n := &Cone{}
	n.initCone(c.shapeConfig(), opts)
	attach(n, opts.AddTo)
	return n
}

// CopyGraph is [Cone.Copy] followed by a deep copy of every descendant.
func (c *Cone) CopyGraph(opts ConeOptions) *Cone {
	n := c.Copy(opts)
	copyChildren(c, n)
	return n
}

func (c *Cone) clone() Node { return c.Copy(ConeOptions{}) }

func (c *Cone) updateDepth() {
	c.depth = c.renderOrigin.Lerp(c.apex.renderOrigin, 1.0/3).Z
}

func (c *Cone) render(r Renderer) {
	if call, ok := c.surfaceCall(); ok {
		r.Draw(call)
	}
	c.Shape.render(r)
}

// surfaceCall draws the visible side of the cone: the triangle from the
// apex to the two points where its silhouette touches the base ellipse.
// Nothing is drawn while the apex projects inside the base.
func (c *Cone) surfaceCall() (DrawCall, bool) {
	stroke := max(c.Stroke, 0)
	if !c.Visible || (!c.Fill && stroke == 0) {
		return DrawCall{}, false
	}
	n := c.renderNormal
	scale := n.Magnitude()
	if scale == 0 {
		return DrawCall{}, false
	}
	origin, apex := c.renderOrigin, c.apex.renderOrigin
	apexDistance := math.Hypot(apex.X-origin.X, apex.Y-origin.Y)
	eccen := math.Sin(math.Acos(min(n.Magnitude2D()/scale, 1)))
	radius := c.Diameter / 2 * scale
	if radius*eccen >= apexDistance {
		return DrawCall{}, false
	}

	apexAngle := math.Atan2(n.Y, n.X)
	projectAngle := math.Acos(radius * eccen / apexDistance)
	tangent := func(sign float64) Point {
		v := geom.Vector{
			X: math.Cos(projectAngle) * radius * eccen,
			Y: sign * math.Sin(projectAngle) * radius,
		}
		v.RotateZ(apexAngle)
		return Point{X: v.X + origin.X, Y: v.Y + origin.Y}
	}
	return DrawCall{
		Path: []Segment{
			{Op: OpMove, Points: []Point{tangent(1)}},
			{Op: OpLine, Points: []Point{{X: apex.X, Y: apex.Y}}},
			{Op: OpLine, Points: []Point{tangent(-1)}},
		},
		Closed: true,
		Fill:   c.Fill,
		Stroke: stroke,
		Color:  c.Color,
	}, true
}

// ownedAnchor attaches a bare anchor to parent that belongs to it: the
// anchor is regenerated rather than copied by CopyGraph.
func ownedAnchor(parent Node) *Anchor {
	a := NewAnchor(AnchorOptions{})
	a.owned = true
	parent.Base().AddChild(a)
	return a
}
