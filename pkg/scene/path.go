package scene

import (
	"github.com/matzehuels/zscene/pkg/geom"
)

// PathMethod is the kind of a path element.
type PathMethod uint8

const (
	MethodLine PathMethod = iota
	MethodMove
	MethodBezier
	MethodArc
)

func (m PathMethod) String() string {
	switch m {
	case MethodLine:
		return "line"
	case MethodMove:
		return "move"
	case MethodBezier:
		return "bezier"
	case MethodArc:
		return "arc"
	}
	return "unknown"
}

// PathElement is one step of a shape's local path. Line and move elements
// hold one point, arcs hold a corner and an end, and beziers hold two
// control points and an end.
type PathElement struct {
	Method PathMethod
	Points []geom.Vector
}

// PointAt is a line to (x, y, z). A path made of a single point is drawn as
// a dot.
func PointAt(x, y, z float64) PathElement {
	return Line(geom.Vector{X: x, Y: y, Z: z})
}

// Line draws a straight line to p.
func Line(p geom.Vector) PathElement {
	return PathElement{Method: MethodLine, Points: []geom.Vector{p}}
}

// Move starts a new subpath at p.
func Move(p geom.Vector) PathElement {
	return PathElement{Method: MethodMove, Points: []geom.Vector{p}}
}

// Bezier draws a cubic curve to end.
func Bezier(c0, c1, end geom.Vector) PathElement {
	return PathElement{Method: MethodBezier, Points: []geom.Vector{c0, c1, end}}
}

// Arc draws a quarter-ellipse-like curve to end, bending towards corner.
func Arc(corner, end geom.Vector) PathElement {
	return PathElement{Method: MethodArc, Points: []geom.Vector{corner, end}}
}

func clonePath(path []PathElement) []PathElement {
	if path == nil {
		return nil
	}
	out := make([]PathElement, len(path))
	for i, e := range path {
		out[i] = PathElement{Method: e.Method, Points: append([]geom.Vector(nil), e.Points...)}
	}
	return out
}

// arcHandle is the control point distance, as a fraction of the way from
// each end towards the corner, of the cubic standing in for an arc.
const arcHandle = 9.0 / 16

// projectPath maps a local path through world and flattens it into 2D
// segments. It also returns the 3D end point of every element, which the
// depth computation averages.
//
// The first element always starts a subpath, whatever its method.
func projectPath(path []PathElement, world geom.Affine) ([]Segment, []geom.Vector) {
	segs := make([]Segment, 0, len(path))
	ends := make([]geom.Vector, 0, len(path))
	var prev geom.Vector
	for _, e := range path {
		if len(e.Points) == 0 {
			continue
		}
		pts := make([]geom.Vector, len(e.Points))
		for j, p := range e.Points {
			pts[j] = world.Apply(p)
		}
		method := e.Method
		if len(segs) == 0 {
			method = MethodMove
		}
		end := pts[len(pts)-1]
		switch method {
		case MethodMove:
			end = pts[0]
			segs = append(segs, Segment{Op: OpMove, Points: flat(end)})
		case MethodBezier:
			if len(pts) < 3 {
				segs = append(segs, Segment{Op: OpLine, Points: flat(end)})
				break
			}
			segs = append(segs, Segment{Op: OpCubic, Points: flat(pts[0], pts[1], pts[2])})
		case MethodArc:
			if len(pts) < 2 {
				segs = append(segs, Segment{Op: OpLine, Points: flat(end)})
				break
			}
			corner := pts[0]
			c0 := prev.Lerp(corner, arcHandle)
			c1 := end.Lerp(corner, arcHandle)
			segs = append(segs, Segment{Op: OpCubic, Points: flat(c0, c1, end)})
		default:
			end = pts[0]
			segs = append(segs, Segment{Op: OpLine, Points: flat(end)})
		}
		prev = end
		ends = append(ends, end)
	}
	return segs, ends
}

func flat(vs ...geom.Vector) []Point {
	out := make([]Point, len(vs))
	for i, v := range vs {
		out[i] = Point{X: v.X, Y: v.Y}
	}
	return out
}

// meanDepth averages the z of the element end points. A closing point that
// repeats the first point is counted once.
func meanDepth(ends []geom.Vector, fallback float64) float64 {
	n := len(ends)
	if n == 0 {
		return fallback
	}
	if n > 2 && ends[0].IsSame(ends[n-1]) {
		n--
	}
	var sum float64
	for _, p := range ends[:n] {
		sum += p.Z
	}
	return sum / float64(n)
}
