// Package nodelink renders a scene graph as a traditional node-link diagram.
//
// # Overview
//
// This package draws the hierarchy of a scene with Graphviz: every node is
// a box labeled with its type, and arrows run from parents to children. It
// is a debugging view of how a scene is assembled, not of how it looks.
//
// # Usage
//
// Convert a scene to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(root, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: node labels include transform, color and depth
//   - Generated: include the faces, bases and apexes composite shapes build
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF conversion requires librsvg (rsvg-convert).
package nodelink
