package scene

import (
	"github.com/matzehuels/zscene/pkg/geom"
)

// Face configures one side of a [Box]. The zero value draws the side in the
// box color.
type Face struct {
	Hidden bool
	Color  string
}

// HiddenFace omits a side.
var HiddenFace = Face{Hidden: true}

// FaceColor draws a side in color.
func FaceColor(color string) *Face { return &Face{Color: color} }

// BoxOptions configures a new box. Width, Height and Depth default to 1.
// Unset faces are drawn in the box color.
type BoxOptions struct {
	ShapeOptions
	Width, Height, Depth *float64

	FrontFace, RearFace *Face
	LeftFace, RightFace *Face
	TopFace, BottomFace *Face
}

// Box is a cuboid centered on its origin. Each side is an owned [Rect]
// sorted on its own, so sides interleave with other shapes.
type Box struct {
	Anchor
	Style
	Width, Height, Depth float64

	FrontFace, RearFace Face
	LeftFace, RightFace Face
	TopFace, BottomFace Face

	faces []*Rect
}

// NewBox creates a box and attaches it to opts.AddTo when set. It is filled
// unless opts says otherwise.
func NewBox(opts BoxOptions) *Box {
	b := &Box{}
	base := DefaultShapeConfig()
	base.Fill = true
	b.initBox(base, opts)
	attach(b, opts.AddTo)
	return b
}

func (b *Box) initBox(base ShapeConfig, opts BoxOptions) {
	cfg := base.Apply(opts.ShapeOptions)
	b.Anchor.init(b, cfg.AnchorConfig)
	b.Style = cfg.Style
	b.Width = orDefault(opts.Width, 1)
	b.Height = orDefault(opts.Height, 1)
	b.Depth = orDefault(opts.Depth, 1)
	for _, f := range []struct {
		dst *Face
		src *Face
	}{
		{&b.FrontFace, opts.FrontFace},
		{&b.RearFace, opts.RearFace},
		{&b.LeftFace, opts.LeftFace},
		{&b.RightFace, opts.RightFace},
		{&b.TopFace, opts.TopFace},
		{&b.BottomFace, opts.BottomFace},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	b.UpdatePath()
}

// Faces returns the generated side rectangles, front, rear, left, right,
// top, bottom, omitting hidden sides.
func (b *Box) Faces() []*Rect { return b.faces }

// UpdatePath regenerates the sides from the current attributes. Each side
// faces outward, so a hidden backface hides the sides turned away.
func (b *Box) UpdatePath() {
	for _, f := range b.faces {
		b.RemoveChild(f)
	}
	b.faces = b.faces[:0]

	w, h, d := b.Width, b.Height, b.Depth
	sides := []struct {
		face          Face
		width, height float64
		translate     geom.Vector
		rotate        geom.Vector
	}{
		{b.FrontFace, w, h, geom.Vector{Z: d / 2}, geom.Vector{}},
		{b.RearFace, w, h, geom.Vector{Z: -d / 2}, geom.Vector{Y: geom.TAU / 2}},
		{b.LeftFace, d, h, geom.Vector{X: -w / 2}, geom.Vector{Y: geom.TAU / 4}},
		{b.RightFace, d, h, geom.Vector{X: w / 2}, geom.Vector{Y: -geom.TAU / 4}},
		{b.TopFace, w, d, geom.Vector{Y: -h / 2}, geom.Vector{X: geom.TAU / 4}},
		{b.BottomFace, w, d, geom.Vector{Y: h / 2}, geom.Vector{X: -geom.TAU / 4}},
	}
	for _, s := range sides {
		if s.face.Hidden {
			continue
		}
		color := b.Color
		if s.face.Color != "" {
			color = s.face.Color
		}
		stroke, fill, visible := b.Stroke, b.Fill, b.Visible
		backface, front := b.Backface, b.Front
		translate, rotate := s.translate, s.rotate
		r := NewRect(RectOptions{
			ShapeOptions: ShapeOptions{
				AnchorOptions: AnchorOptions{Translate: &translate, Rotate: &rotate},
				Color:         color,
				Stroke:        &stroke,
				Fill:          &fill,
				Visible:       &visible,
				Backface:      &backface,
				Front:         &front,
			},
			Width:  geom.F(s.width),
			Height: geom.F(s.height),
		})
		r.owned = true
		b.AddChild(r)
		b.faces = append(b.faces, r)
	}
}

// Copy returns a new box with the attributes of b, overridden by opts.
func (b *Box) Copy(opts BoxOptions) *Box {
	if opts.Width == nil {
		opts.Width = geom.F(b.Width)
	}
	if opts.Height == nil {
		opts.Height = geom.F(b.Height)
	}
	if opts.Depth == nil {
		opts.Depth = geom.F(b.Depth)
	}
	faces := [...]Face{b.FrontFace, b.RearFace, b.LeftFace, b.RightFace, b.TopFace, b.BottomFace}
	for i, p := range []**Face{&opts.FrontFace, &opts.RearFace, &opts.LeftFace, &opts.RightFace, &opts.TopFace, &opts.BottomFace} {
		if *p == nil {
			*p = &faces[i]
		}
	}
	n := &Box{}
	n.initBox(ShapeConfig{AnchorConfig: b.anchorConfig(), Style: b.Style}, opts)
	attach(n, opts.AddTo)
	return n
}

// CopyGraph is [Box.Copy] followed by a deep copy of every descendant.
func (b *Box) CopyGraph(opts BoxOptions) *Box {
	n := b.Copy(opts)
	copyChildren(b, n)
	return n
}

func (b *Box) clone() Node { return b.Copy(BoxOptions{}) }
