// Package pkg provides the core libraries for zscene pseudo-3D rendering.
//
// # Overview
//
// zscene builds scenes from flat shapes placed in 3D, projects them
// orthographically and draws them back to front. The pkg directory is
// organized into these areas:
//
//  1. [geom] - Vectors, rotation, easing and path commands
//  2. [scene] - The scene graph: anchors, shapes and composite solids
//  3. [illustration] - A root node bound to a surface, with drag and animation
//  4. [render] - SVG, PNG and PDF painters plus node-link diagrams
//  5. [presets] - Named, time-parameterized example scenes
//  6. [pipeline] - Orchestration (build → update → render → encode) with caching
//  7. [cache], [config], [errors], [observability] - Supporting infrastructure
//
// # Architecture
//
// The data flow of one frame:
//
//	shape options
//	     ↓
//	[scene] package (graph of anchors and shapes)
//	     ↓  UpdateGraph: transforms, path projection, depth sort
//	render list (back to front)
//	     ↓  RenderGraph
//	[scene.Renderer] (svg, canvas, recorder)
//	     ↓
//	SVG/PNG/PDF output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/zscene/pkg/geom"
//	    "github.com/matzehuels/zscene/pkg/illustration"
//	    "github.com/matzehuels/zscene/pkg/scene"
//	)
//
//	il := illustration.New(illustration.Options{Zoom: 4})
//	scene.NewBox(scene.BoxOptions{
//	    ShapeOptions: scene.ShapeOptions{AnchorOptions: scene.AnchorOptions{AddTo: il}},
//	    Width:        geom.F(20),
//	    Height:       geom.F(20),
//	    Depth:        geom.F(20),
//	})
//	il.Rotate = geom.Vector{X: -0.5, Y: 0.6}
//
//	s := il.SVG()
//	il.UpdateRenderGraph(s, nil)
//	data := s.Bytes()
//
// [geom]: github.com/matzehuels/zscene/pkg/geom
// [scene]: github.com/matzehuels/zscene/pkg/scene
// [illustration]: github.com/matzehuels/zscene/pkg/illustration
// [render]: github.com/matzehuels/zscene/pkg/render
// [presets]: github.com/matzehuels/zscene/pkg/presets
// [pipeline]: github.com/matzehuels/zscene/pkg/pipeline
// [cache]: github.com/matzehuels/zscene/pkg/cache
// [config]: github.com/matzehuels/zscene/pkg/config
// [errors]: github.com/matzehuels/zscene/pkg/errors
// [observability]: github.com/matzehuels/zscene/pkg/observability
package pkg
