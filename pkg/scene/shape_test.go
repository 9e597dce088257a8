package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/zscene/pkg/geom"
)

func square(parent Node) *Shape {
	return NewShape(ShapeOptions{
		AnchorOptions: AnchorOptions{AddTo: parent},
		Path: []PathElement{
			PointAt(-1, -1, 0),
			PointAt(1, -1, 0),
			PointAt(1, 1, 0),
			PointAt(-1, 1, 0),
		},
		Color: "#abc",
		Fill:  Bool(true),
	})
}

func TestShapeDefaults(t *testing.T) {
	s := NewShape(ShapeOptions{})
	assert.Equal(t, DefaultColor, s.Color)
	assert.Equal(t, 1.0, s.Stroke)
	assert.False(t, s.Fill)
	assert.True(t, s.Closed)
	assert.True(t, s.Visible)
	assert.Equal(t, geom.Vector{Z: 1}, s.Front)
	assert.Equal(t, geom.Splat(1), s.Scale)
	require.Len(t, s.Path, 1)
}

func TestDrawCallCarriesPaint(t *testing.T) {
	root := NewAnchor(AnchorOptions{})
	square(root)

	rec := render(root)
	require.Len(t, rec.Calls, 1)
	call := rec.Calls[0]
	assert.True(t, call.Closed)
	assert.True(t, call.Fill)
	assert.Equal(t, 1.0, call.Stroke)
	assert.Equal(t, "#abc", call.Color)
	assert.Equal(t, CapRound, call.Cap)
	require.Len(t, call.Path, 4)
	assert.Equal(t, OpMove, call.Path[0].Op)
	assert.Equal(t, Point{X: 1, Y: 1}, call.Path[2].End())
}

func TestVisibilityToggle(t *testing.T) {
	root := NewAnchor(AnchorOptions{})
	s := square(root)

	s.Visible = false
	assert.Empty(t, render(root).Calls)

	s.Visible = true
	rec := render(root)
	require.Len(t, rec.Calls, 1)
	assert.Equal(t, s.RenderPath(), rec.Calls[0].Path)
}

func TestBackface(t *testing.T) {
	tests := []struct {
		name     string
		backface Backface
		want     []string
	}{
		{"shown", Backface{}, []string{"#abc"}},
		{"hidden", HideBackface, []string{}},
		{"recolored", BackfaceColor("#f00"), []string{"#f00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := NewAnchor(AnchorOptions{})
			s := square(root)
			s.Rotate.Y = geom.TAU / 2
			s.Backface = tt.backface

			rec := render(root)
			assert.True(t, s.FacingBack())
			assert.Equal(t, tt.want, rec.Colors())
			assert.Equal(t, "#abc", s.Color, "own color is untouched")
		})
	}
}

func TestFrontFacingIgnoresBackface(t *testing.T) {
	root := NewAnchor(AnchorOptions{})
	s := square(root)
	s.Backface = HideBackface
	assert.Equal(t, []string{"#abc"}, render(root).Colors())
	assert.InDelta(t, 1, s.RenderNormal().Z, eps)
}

func TestPaintlessShapesAreSkipped(t *testing.T) {
	root := NewAnchor(AnchorOptions{})
	NewShape(ShapeOptions{AnchorOptions: AnchorOptions{AddTo: root}, Stroke: geom.F(0)})
	filled := NewShape(ShapeOptions{AnchorOptions: AnchorOptions{AddTo: root}, Stroke: geom.F(0), Fill: Bool(true)})

	rec := render(root)
	require.Len(t, rec.Calls, 1, "a fill alone still draws")
	assert.Equal(t, 0.0, rec.Calls[0].Stroke)
	assert.True(t, rec.Calls[0].IsDot())
	assert.Equal(t, filled.RenderPath(), rec.Calls[0].Path)
}

func TestEmptyPathWithPaintStillDraws(t *testing.T) {
	tests := []struct {
		name string
		opts ShapeOptions
	}{
		{"fill", ShapeOptions{Fill: Bool(true), Stroke: geom.F(0)}},
		{"stroke", ShapeOptions{Stroke: geom.F(2)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := NewAnchor(AnchorOptions{})
			tt.opts.AnchorOptions = AnchorOptions{AddTo: root}
			tt.opts.Path = []PathElement{}
			NewShape(tt.opts)

			rec := render(root)
			require.Len(t, rec.Calls, 1, "paint on an empty path still issues a call")
			assert.Empty(t, rec.Calls[0].Path)
		})
	}
}

func TestClonePathIsDeep(t *testing.T) {
	path := []PathElement{PointAt(1, 2, 3), Bezier(geom.Vector{X: 1}, geom.Vector{Y: 1}, geom.Vector{Z: 1})}
	got := clonePath(path)
	require.Equal(t, path, got)

	got[0].Points[0].X = 99
	got[1].Points[2].Z = 99
	assert.Equal(t, 1.0, path[0].Points[0].X)
	assert.Equal(t, 1.0, path[1].Points[2].Z)
	assert.Nil(t, clonePath(nil))
}

func TestSingleLineIsNeverClosed(t *testing.T) {
	root := NewAnchor(AnchorOptions{})
	NewShape(ShapeOptions{
		AnchorOptions: AnchorOptions{AddTo: root},
		Path:          []PathElement{PointAt(0, 0, 0), PointAt(4, 0, 0)},
	})
	rec := render(root)
	require.Len(t, rec.Calls, 1)
	assert.False(t, rec.Calls[0].Closed)
}

func TestFirstElementStartsSubpath(t *testing.T) {
	s := NewShape(ShapeOptions{
		Path: []PathElement{
			Arc(geom.Vector{X: 1}, geom.Vector{X: 1, Y: 1}),
			Line(geom.Vector{X: 2}),
		},
	})
	s.UpdateGraph()
	segs := s.RenderPath()
	require.Len(t, segs, 2)
	assert.Equal(t, Segment{Op: OpMove, Points: []Point{{X: 1}}}, segs[0])
	assert.Equal(t, OpLine, segs[1].Op)
}

func TestArcFlattensToCubic(t *testing.T) {
	s := NewShape(ShapeOptions{
		Path: []PathElement{
			PointAt(0, 0, 0),
			Arc(geom.Vector{X: 1}, geom.Vector{X: 1, Y: 1}),
		},
	})
	s.UpdateGraph()
	segs := s.RenderPath()
	require.Len(t, segs, 2)
	arc := segs[1]
	assert.Equal(t, OpCubic, arc.Op)
	require.Len(t, arc.Points, 3)
	assert.InDelta(t, 9.0/16, arc.Points[0].X, eps)
	assert.InDelta(t, 0, arc.Points[0].Y, eps)
	assert.InDelta(t, 1, arc.Points[1].X, eps)
	assert.InDelta(t, 7.0/16, arc.Points[1].Y, eps)
	assert.Equal(t, Point{X: 1, Y: 1}, arc.End())
}

func TestBezierKeepsControlPoints(t *testing.T) {
	s := NewShape(ShapeOptions{
		AnchorOptions: AnchorOptions{Translate: V(10, 0, 0)},
		Path: []PathElement{
			Move(geom.Vector{}),
			Bezier(geom.Vector{X: 1}, geom.Vector{X: 2, Y: 1}, geom.Vector{X: 3}),
		},
	})
	s.UpdateGraph()
	assert.Equal(t, []Point{{X: 11}, {X: 12, Y: 1}, {X: 13}}, s.RenderPath()[1].Points)
}

func TestRenderDepth(t *testing.T) {
	tests := []struct {
		name string
		path []PathElement
		want float64
	}{
		{"mean of points", []PathElement{PointAt(0, 0, 0), PointAt(0, 0, 2), PointAt(0, 0, 4)}, 2},
		{"repeated closing point counted once", []PathElement{
			PointAt(0, 0, 0), PointAt(1, 0, 2), PointAt(0, 1, 4), PointAt(0, 0, 0),
		}, 2},
		{"two points are both counted", []PathElement{PointAt(0, 0, 3), PointAt(0, 0, 3)}, 3},
		{"arc uses its end point", []PathElement{PointAt(0, 0, 0), Arc(geom.Vector{Z: 100}, geom.Vector{Z: 4})}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewShape(ShapeOptions{Path: tt.path, AnchorOptions: AnchorOptions{Translate: V(0, 0, 1)}})
			s.UpdateGraph()
			assert.InDelta(t, tt.want+1, s.RenderDepth(), eps)
		})
	}
}

func TestOptionsMergeIsPure(t *testing.T) {
	def := DefaultShapeConfig()
	path := []PathElement{PointAt(1, 2, 3)}
	cfg := def.Apply(ShapeOptions{Path: path, Stroke: geom.F(3)})

	assert.Equal(t, 1.0, def.Stroke)
	assert.Equal(t, 3.0, cfg.Stroke)
	path[0].Points[0].X = 99
	assert.Equal(t, 1.0, cfg.Path[0].Points[0].X, "the merged path is a copy")
}
