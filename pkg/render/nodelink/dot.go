package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/zscene/pkg/geom"
	"github.com/matzehuels/zscene/pkg/render"
	"github.com/matzehuels/zscene/pkg/scene"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the transform, paint and last computed depth of each
	// node to its label. When false, only the node type is shown.
	Detailed bool

	// Generated includes the nodes that composite shapes create for their
	// own geometry, such as box faces and cylinder bases.
	Generated bool
}

// ToDOT converts the scene graph under root to Graphviz DOT format, one
// box per node and one edge per parent-child link. Nodes are numbered in
// pre-order, so the root is always "n0".
//
// Generated nodes are drawn with dashed outlines and grey fill.
func ToDOT(root scene.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	var edges []string
	next := 0
	var walk func(n scene.Node) string
	walk = func(n scene.Node) string {
		id := "n" + strconv.Itoa(next)
		next++
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(fmtAttrs(n, fmtLabel(n, opts.Detailed)), ", "))
		for _, c := range n.Base().Children() {
			if c.Base().Generated() && !opts.Generated {
				continue
			}
			edges = append(edges, fmt.Sprintf("  %q -> %q;\n", id, walk(c)))
		}
		return id
	}
	walk(root)

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

// TypeName returns the short type name of n, such as "Box".
func TypeName(n scene.Node) string {
	name := fmt.Sprintf("%T", n)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func fmtLabel(n scene.Node, detailed bool) string {
	if !detailed {
		return TypeName(n)
	}

	a := n.Base()
	parts := []string{"translate: " + fmtVector(a.Translate)}
	if a.Rotate != (geom.Vector{}) {
		parts = append(parts, "rotate: "+fmtVector(a.Rotate))
	}
	if a.Scale != geom.Splat(1) {
		parts = append(parts, "scale: "+fmtVector(a.Scale))
	}
	if a.Order != nil {
		parts = append(parts, fmt.Sprintf("order: %g", *a.Order))
	}
	if st, ok := scene.StyleOf(n); ok {
		parts = append(parts, "color: "+st.Color)
		if !st.Visible {
			parts = append(parts, "hidden")
		}
	}
	parts = append(parts, fmt.Sprintf("depth: %.2f", a.RenderDepth()))

	return TypeName(n) + "\n" + strings.Join(parts, "\n")
}

func fmtVector(v geom.Vector) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

func fmtAttrs(n scene.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Base().Generated() {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}
