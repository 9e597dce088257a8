// Package render turns scene draw calls into image files.
//
// # Overview
//
// A [scene.Renderer] receives the painter's-algorithm sequence of draw
// calls produced by [scene.Anchor.RenderGraph]. This package and its
// subpackages provide the concrete drawing backends:
//
//   - [svg]: vector markup, one <path> per draw call
//   - [canvas]: pixel output through gogpu/gg, encoded as PNG
//   - [nodelink]: a diagram of the scene hierarchy itself, through Graphviz
//
// Both painters share a [Viewport], which maps view-space coordinates to
// surface pixels the way the illustration does: optional centering of the
// origin, then a uniform zoom.
//
// # Format Conversion
//
// [ToPDF] converts any SVG to PDF using the external rsvg-convert tool
// (from librsvg).
//
//	s := svg.New(vp)
//	root.RenderGraph(s)
//	pdf, err := render.ToPDF(ctx, s.Bytes())
//
// [svg]: github.com/matzehuels/zscene/pkg/render/svg
// [canvas]: github.com/matzehuels/zscene/pkg/render/canvas
// [nodelink]: github.com/matzehuels/zscene/pkg/render/nodelink
package render
