// Package scene holds the scene graph: anchors, shapes and the composite
// solids built from them.
//
// # Overview
//
// Every item in a scene is a [Node]. [Anchor] is the plain transform node;
// [Shape] adds a path and paint style; [Group] draws its descendants as one
// unit; and the composites ([Rect], [RoundedRect], [Ellipse], [Polygon],
// [Hemisphere], [Cone], [Cylinder], [Box]) generate their paths or owned
// children from a few dimensions.
//
// A frame has two phases. [Anchor.UpdateGraph] recomputes world transforms,
// projected paths and sort depths for the whole subtree. [Anchor.RenderGraph]
// collects the drawable nodes, sorts them back to front and sends one
// [DrawCall] per visible primitive to a [Renderer]. Rendering never
// recomputes geometry, so a caller that skips the update sees stale data.
//
// # Options
//
// Constructors take option structs whose pointer fields are "unset" when nil:
//
//	s := scene.NewShape(scene.ShapeOptions{
//		AnchorOptions: scene.AnchorOptions{AddTo: root},
//		Path:          []scene.PathElement{scene.PointAt(-20, 0, 0), scene.PointAt(20, 0, 0)},
//		Stroke:        geom.F(4),
//		Color:         "#E62",
//	})
//
// Unset options fall back to the defaults of [DefaultShapeConfig]. Copy
// methods merge new options over a snapshot of the current attributes.
//
// # Coordinates
//
// x grows to the right and y grows downward, matching screen space. Larger
// z is nearer to the viewer, so nodes are drawn in ascending depth.
package scene
