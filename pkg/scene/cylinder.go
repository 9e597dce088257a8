package scene

import (
	"github.com/matzehuels/zscene/pkg/geom"
)

// CylinderOptions configures a new cylinder. Diameter and Length default
// to 1. FrontFace colors the +z base while it faces the viewer.
type CylinderOptions struct {
	ShapeOptions
	Diameter  *float64
	Length    *float64
	FrontFace string
}

// Cylinder is a tube along the local z-axis capped by two circular bases.
// The bases and the body are drawn by an owned group that sorts them by
// depth, so the near base always lands on top of the body.
type Cylinder struct {
	Anchor
	Style
	Diameter  float64
	Length    float64
	FrontFace string

	group *cylinderGroup
}

// NewCylinder creates a cylinder and attaches it to opts.AddTo when set.
// It is filled unless opts says otherwise.
func NewCylinder(opts CylinderOptions) *Cylinder {
	c := &Cylinder{}
	base := DefaultShapeConfig()
	base.Fill = true
	c.initCylinder(base, opts)
	attach(c, opts.AddTo)
	return c
}

func (c *Cylinder) initCylinder(base ShapeConfig, opts CylinderOptions) {
	cfg := base.Apply(opts.ShapeOptions)
	c.Anchor.init(c, cfg.AnchorConfig)
	c.Style = cfg.Style
	c.Diameter = orDefault(opts.Diameter, 1)
	c.Length = orDefault(opts.Length, 1)
	c.FrontFace = opts.FrontFace
	c.UpdatePath()
}

// UpdatePath rebuilds the bases from the current attributes.
func (c *Cylinder) UpdatePath() {
	if c.group != nil {
		c.RemoveChild(c.group)
	}
	g := &cylinderGroup{}
	g.initGroup(g, DefaultAnchorConfig(), GroupOptions{Visible: Bool(c.Visible), UpdateSort: Bool(true)})
	g.Color = c.Color
	g.owned = true
	c.AddChild(g)
	c.group = g

	baseColor := c.Backface
	frontBackface := baseColor
	if c.FrontFace != "" {
		frontBackface = BackfaceColor(c.FrontFace)
	}
	stroke, fill, visible := c.Stroke, c.Fill, c.Visible
	halfLength := c.Length / 2

	g.front = NewEllipse(EllipseOptions{
		ShapeOptions: ShapeOptions{
			AnchorOptions: AnchorOptions{
				Translate: &geom.Vector{Z: halfLength},
				Rotate:    &geom.Vector{Y: geom.TAU / 2},
			},
			Color:    c.Color,
			Stroke:   &stroke,
			Fill:     &fill,
			Visible:  &visible,
			Backface: &frontBackface,
		},
		Diameter: geom.F(c.Diameter),
	})
	g.rear = g.front.Copy(EllipseOptions{
		ShapeOptions: ShapeOptions{
			AnchorOptions: AnchorOptions{
				Translate: &geom.Vector{Z: -halfLength},
				Rotate:    &geom.Vector{},
			},
			Backface: &baseColor,
		},
	})
	for _, b := range []*Ellipse{g.front, g.rear} {
		b.owned = true
		g.AddChild(b)
	}
}

// Copy returns a new cylinder with the attributes of c, overridden by opts.
func (c *Cylinder) Copy(opts CylinderOptions) *Cylinder {
	if opts.Diameter == nil {
		opts.Diameter = geom.F(c.Diameter)
	}
	if opts.Length == nil {
		opts.Length = geom.F(c.Length)
	}
	if opts.FrontFace == "" {
		opts.FrontFace = c.FrontFace
	}
	n := &Cylinder{}
	n.initCylinder(ShapeConfig{AnchorConfig: c.anchorConfig(), Style: c.Style}, opts)
	attach(n, opts.AddTo)
	return n
}

// CopyGraph is [Cylinder.Copy] followed by a deep copy of every
// descendant.
func (c *Cylinder) CopyGraph(opts CylinderOptions) *Cylinder {
	n := c.Copy(opts)
	copyChildren(c, n)
	return n
}

func (c *Cylinder) clone() Node { return c.Copy(CylinderOptions{}) }

func (c *Cylinder) updateRender() {
	c.group.Visible = c.Visible
}

// cylinderGroup draws the body as one thick line between the base centers
// beneath the depth-sorted bases.
type cylinderGroup struct {
	Group
	Color       string
	front, rear *Ellipse
}

func (g *cylinderGroup) clone() Node { return g.Group.Copy(GroupOptions{}) }

func (g *cylinderGroup) render(r Renderer) {
	if call, ok := g.bodyCall(); ok {
		r.Draw(call)
	}
	g.Group.render(r)
}

func (g *cylinderGroup) bodyCall() (DrawCall, bool) {
	if !g.Visible {
		return DrawCall{}, false
	}
	scale := g.front.renderNormal.Magnitude()
	width := g.front.Diameter*scale + max(g.front.Stroke, 0)
	if width <= 0 {
		return DrawCall{}, false
	}
	a, b := g.front.renderOrigin, g.rear.renderOrigin
	return DrawCall{
		Path: []Segment{
			{Op: OpMove, Points: []Point{{X: a.X, Y: a.Y}}},
			{Op: OpLine, Points: []Point{{X: b.X, Y: b.Y}}},
		},
		Stroke: width,
		Color:  g.Color,
		Cap:    CapButt,
	}, true
}
