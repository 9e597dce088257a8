package scene

// Op is the kind of a 2D path segment.
type Op uint8

const (
	OpMove Op = iota
	OpLine
	OpCubic
)

// Point is a position on the drawing surface, before viewport mapping.
type Point struct {
	X, Y float64
}

// Segment is one step of a projected path. Move and line segments carry a
// single point; cubic segments carry two control points and the end point.
type Segment struct {
	Op     Op
	Points []Point
}

// End returns the point the segment finishes at.
func (s Segment) End() Point { return s.Points[len(s.Points)-1] }

// LineCap is the stroke end style.
type LineCap uint8

const (
	CapRound LineCap = iota
	CapButt
)

// DrawCall is a single painted primitive: a projected path with its paint
// settings. A fill is applied before the stroke. Joins are always round.
type DrawCall struct {
	Path   []Segment
	Closed bool
	Fill   bool
	// Stroke is the line width; zero disables stroking.
	Stroke float64
	Color  string
	Cap    LineCap
}

// IsDot reports whether the call is a single point, which sinks draw as a
// filled circle of diameter Stroke.
func (d DrawCall) IsDot() bool {
	return len(d.Path) == 1
}

// Renderer is a drawing sink. Clear is called once per frame before the
// draw calls, which arrive in back-to-front order.
type Renderer interface {
	Clear()
	Draw(call DrawCall)
}

// Recorder is a [Renderer] that keeps every draw call in memory.
type Recorder struct {
	Calls  []DrawCall
	Clears int
}

// Clear implements [Renderer]. It drops the recorded calls.
func (r *Recorder) Clear() {
	r.Calls = r.Calls[:0]
	r.Clears++
}

// Draw implements [Renderer].
func (r *Recorder) Draw(call DrawCall) {
	r.Calls = append(r.Calls, call)
}

// Colors returns the color of each recorded call in order.
func (r *Recorder) Colors() []string {
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Color
	}
	return out
}
