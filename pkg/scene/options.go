package scene

import "github.com/matzehuels/zscene/pkg/geom"

// AnchorOptions configures a new anchor. Nil fields keep their defaults.
type AnchorOptions struct {
	AddTo     Node
	Translate *geom.Vector
	Rotate    *geom.Vector
	Scale     *geom.Vector
	Order     *float64
}

// AnchorConfig is the fully resolved set of anchor attributes.
type AnchorConfig struct {
	Translate geom.Vector
	Rotate    geom.Vector
	Scale     geom.Vector
	Order     *float64
}

// DefaultAnchorConfig returns the attributes of an anchor created with no
// options: identity transform.
func DefaultAnchorConfig() AnchorConfig {
	return AnchorConfig{Scale: geom.Splat(1)}
}

// Apply returns c with every option set in o merged over it. c is not
// modified.
func (c AnchorConfig) Apply(o AnchorOptions) AnchorConfig {
	if o.Translate != nil {
		c.Translate = *o.Translate
	}
	if o.Rotate != nil {
		c.Rotate = *o.Rotate
	}
	if o.Scale != nil {
		c.Scale = *o.Scale
	}
	if o.Order != nil {
		v := *o.Order
		c.Order = &v
	}
	return c
}

// Backface controls how a shape is drawn while its front vector points
// away from the viewer. The zero value draws it unchanged.
type Backface struct {
	Hidden bool
	Color  string
}

// HideBackface skips a shape while it faces away.
var HideBackface = Backface{Hidden: true}

// BackfaceColor draws a shape in color while it faces away.
func BackfaceColor(color string) Backface {
	return Backface{Color: color}
}

// Style is the paint state shared by shapes and the composites that forward
// it to their generated children.
type Style struct {
	Color    string
	Stroke   float64
	Fill     bool
	Closed   bool
	Visible  bool
	Backface Backface
	Front    geom.Vector
}

func (s *Style) styleRef() *Style { return s }

// StyleOf returns the paint state of n, or false when n has none, as for
// anchors and groups.
func StyleOf(n Node) (Style, bool) {
	if st, ok := n.(interface{ styleRef() *Style }); ok {
		return *st.styleRef(), true
	}
	return Style{}, false
}

// ShapeOptions configures a new shape. Nil fields keep their defaults and
// an empty Color or nil Path keeps the default color or path.
type ShapeOptions struct {
	AnchorOptions
	Path     []PathElement
	Color    string
	Stroke   *float64
	Fill     *bool
	Closed   *bool
	Visible  *bool
	Backface *Backface
	Front    *geom.Vector
}

// ShapeConfig is the fully resolved set of shape attributes.
type ShapeConfig struct {
	AnchorConfig
	Style
	Path []PathElement
}

// DefaultColor is the color of a shape created without one.
const DefaultColor = "#333"

// DefaultShapeConfig returns the attributes of a shape created with no
// options: a single point at the origin with a 1-unit round stroke.
func DefaultShapeConfig() ShapeConfig {
	return ShapeConfig{
		AnchorConfig: DefaultAnchorConfig(),
		Style: Style{
			Color:   DefaultColor,
			Stroke:  1,
			Closed:  true,
			Visible: true,
			Front:   geom.Vector{Z: 1},
		},
		Path: []PathElement{PointAt(0, 0, 0)},
	}
}

// Apply returns c with every option set in o merged over it. The path is
// deep-copied, so neither c nor o share storage with the result.
func (c ShapeConfig) Apply(o ShapeOptions) ShapeConfig {
	c.AnchorConfig = c.AnchorConfig.Apply(o.AnchorOptions)
	c.Style = c.Style.apply(o)
	if o.Path != nil {
		c.Path = o.Path
	}
	c.Path = clonePath(c.Path)
	return c
}

func (s Style) apply(o ShapeOptions) Style {
	if o.Color != "" {
		s.Color = o.Color
	}
	if o.Stroke != nil {
		s.Stroke = *o.Stroke
	}
	if o.Fill != nil {
		s.Fill = *o.Fill
	}
	if o.Closed != nil {
		s.Closed = *o.Closed
	}
	if o.Visible != nil {
		s.Visible = *o.Visible
	}
	if o.Backface != nil {
		s.Backface = *o.Backface
	}
	if o.Front != nil {
		s.Front = *o.Front
	}
	return s
}

// Bool returns a pointer to b, for building option values inline.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to i, for building option values inline.
func Int(i int) *int { return &i }

// V returns a pointer to a vector, for building option values inline.
func V(x, y, z float64) *geom.Vector {
	return &geom.Vector{X: x, Y: y, Z: z}
}

func orDefault(p *float64, def float64) float64 {
	if p != nil {
		return *p
	}
	return def
}
