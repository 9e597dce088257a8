package scene

import "github.com/matzehuels/zscene/pkg/geom"

// Shape is an anchor that draws a path. The path is stored in local
// coordinates and projected on every [Anchor.UpdateGraph].
type Shape struct {
	Anchor
	Style
	Path []PathElement

	segments     []Segment
	ends         []geom.Vector
	renderFront  geom.Vector
	renderNormal geom.Vector
}

// NewShape creates a shape and attaches it to opts.AddTo when set.
func NewShape(opts ShapeOptions) *Shape {
	s := &Shape{}
	s.initShape(s, DefaultShapeConfig().Apply(opts))
	attach(s, opts.AddTo)
	return s
}

func (s *Shape) initShape(self Node, cfg ShapeConfig) {
	s.Anchor.init(self, cfg.AnchorConfig)
	s.Style = cfg.Style
	s.Path = cfg.Path
	s.renderFront = s.world.Apply(s.Front)
	s.renderNormal = s.Front
}

func (s *Shape) shapeConfig() ShapeConfig {
	return ShapeConfig{
		AnchorConfig: s.anchorConfig(),
		Style:        s.Style,
		Path:         s.Path,
	}
}

// Copy returns a new shape with the attributes of s, overridden by opts.
func (s *Shape) Copy(opts ShapeOptions) *Shape {
	c := &Shape{}
	c.initShape(c, s.shapeConfig().Apply(opts))
	attach(c, opts.AddTo)
	return c
}

// CopyGraph is [Shape.Copy] followed by a deep copy of every descendant.
func (s *Shape) CopyGraph(opts ShapeOptions) *Shape {
	c := s.Copy(opts)
	copyChildren(s, c)
	return c
}

func (s *Shape) clone() Node { return s.Copy(ShapeOptions{}) }

// RenderNormal returns the projected front direction: the world position of
// Front minus the world origin.
func (s *Shape) RenderNormal() geom.Vector { return s.renderNormal }

// FacingBack reports whether the front vector pointed away from the viewer
// at the last update.
func (s *Shape) FacingBack() bool { return s.renderNormal.Z < 0 }

// RenderPath returns the projected 2D path from the last update.
func (s *Shape) RenderPath() []Segment { return s.segments }

func (s *Shape) updateRender() {
	s.segments, s.ends = projectPath(s.Path, s.world)
	s.renderFront = s.world.Apply(s.Front)
	s.renderNormal = s.renderFront
	s.renderNormal.Subtract(s.renderOrigin)
}

func (s *Shape) updateDepth() {
	s.depth = meanDepth(s.ends, s.renderOrigin.Z)
}

func (s *Shape) collect(list *[]Node) {
	*list = append(*list, s.node())
	s.Anchor.collect(list)
}

func (s *Shape) render(r Renderer) {
	if call, ok := s.drawCall(); ok {
		r.Draw(call)
	}
}

// drawCall builds the primitive for the shape's own path. ok is false when
// there is nothing to paint. Degenerate and empty paths with paint still
// produce a call; the sink decides what to draw.
func (s *Shape) drawCall() (DrawCall, bool) {
	if !s.Visible {
		return DrawCall{}, false
	}
	stroke := max(s.Stroke, 0)
	if !s.Fill && stroke == 0 {
		return DrawCall{}, false
	}
	color := s.Color
	if s.FacingBack() {
		if s.Backface.Hidden {
			return DrawCall{}, false
		}
		if s.Backface.Color != "" {
			color = s.Backface.Color
		}
	}
	return DrawCall{
		Path:   s.segments,
		Closed: s.Closed && !s.isTwoPoints(),
		Fill:   s.Fill,
		Stroke: stroke,
		Color:  color,
	}, true
}

// isTwoPoints reports whether the path is a single line segment, which is
// never closed.
func (s *Shape) isTwoPoints() bool {
	return len(s.Path) == 2 && s.Path[1].Method == MethodLine
}
