// Package svg paints scene draw calls as SVG markup.
//
// The document's viewBox is the viewport's view-space rectangle, so path
// coordinates and stroke widths are written unscaled and the zoom is
// applied by the viewer.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/matzehuels/zscene/pkg/render"
	"github.com/matzehuels/zscene/pkg/scene"
)

// Option configures a [Renderer].
type Option func(*Renderer)

// WithBackground fills the whole surface with color before the first draw
// call.
func WithBackground(color string) Option { return func(r *Renderer) { r.background = color } }

// WithTitle adds a <title> element, shown as a tooltip by browsers.
func WithTitle(title string) Option { return func(r *Renderer) { r.title = title } }

// Renderer implements [scene.Renderer] by appending one element per draw
// call. It is not safe for concurrent use.
type Renderer struct {
	vp         render.Viewport
	background string
	title      string
	body       bytes.Buffer
	elements   int
}

// New returns an empty renderer for vp.
func New(vp render.Viewport, opts ...Option) *Renderer {
	r := &Renderer{vp: vp}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Clear implements [scene.Renderer]. It drops every element drawn so far.
func (r *Renderer) Clear() {
	r.body.Reset()
	r.elements = 0
}

// Len returns the number of elements drawn since the last Clear.
func (r *Renderer) Len() int { return r.elements }

// Draw implements [scene.Renderer].
func (r *Renderer) Draw(call scene.DrawCall) {
	if len(call.Path) == 0 || (call.IsDot() && call.Stroke <= 0) {
		return
	}
	r.elements++
	if call.IsDot() {
		p := call.Path[0].End()
		fmt.Fprintf(&r.body, `  <circle cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
			num(p.X), num(p.Y), num(call.Stroke/2), attr(call.Color))
		return
	}

	fill := "none"
	if call.Fill {
		fill = attr(call.Color)
	}
	fmt.Fprintf(&r.body, `  <path d="%s" fill="%s"`, pathData(call), fill)
	if call.Stroke > 0 {
		fmt.Fprintf(&r.body, ` stroke="%s" stroke-width="%s" stroke-linecap="%s" stroke-linejoin="round"`,
			attr(call.Color), num(call.Stroke), lineCap(call.Cap))
	}
	r.body.WriteString("/>\n")
}

// Bytes returns the complete document.
func (r *Renderer) Bytes() []byte {
	var buf bytes.Buffer
	minX, minY, w, h := r.vp.ViewBox()
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%d" height="%d">`+"\n",
		num(minX), num(minY), num(w), num(h), r.vp.Width, r.vp.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", attr(r.title))
	}
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
			num(minX), num(minY), num(w), num(h), attr(r.background))
	}
	buf.Write(r.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// Encode writes the complete document to w.
func (r *Renderer) Encode(w io.Writer) error {
	_, err := w.Write(r.Bytes())
	return err
}

func pathData(call scene.DrawCall) string {
	var b bytes.Buffer
	for i, seg := range call.Path {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch seg.Op {
		case scene.OpMove:
			b.WriteString("M")
		case scene.OpLine:
			b.WriteString("L")
		case scene.OpCubic:
			b.WriteString("C")
		}
		for j, p := range seg.Points {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(num(p.X))
			b.WriteByte(' ')
			b.WriteString(num(p.Y))
		}
	}
	if call.Closed {
		b.WriteString(" Z")
	}
	return b.String()
}

func lineCap(c scene.LineCap) string {
	if c == scene.CapButt {
		return "butt"
	}
	return "round"
}

// num formats v with at most three decimals and no trailing zeros.
func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// attr escapes s for use inside a double-quoted attribute or text node.
func attr(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
