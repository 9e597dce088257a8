// Package geom provides the 3D vector math behind zscene.
//
// # Vectors
//
// [Vector] is a plain {X, Y, Z} value. Mutating methods take a pointer
// receiver and return it for chaining; [Vector.Copy] and [Vector.Lerp]
// return new values:
//
//	v := geom.Vector{X: 1}
//	v.Rotate(geom.Vector{Z: geom.TAU / 4}) // v is now {0, 1, 0}
//
// Scalars broadcast through [Splat] and sparse updates go through [Partial]:
//
//	scale := geom.Splat(2)               // {2, 2, 2}
//	v.Apply(geom.Partial{Z: geom.F(3)})  // only Z changes
//
// # Rotation Order
//
// [Vector.Rotate] applies the x-axis rotation first, then y, then z. The
// order is part of the visual contract: swapping it changes the rendered
// orientation of every rotated node.
//
// # Accumulated Transforms
//
// [Affine] holds a world transform as three basis vectors plus an origin.
// [Local] builds the transform of a single node from its translate, rotate
// and scale, and [Affine.Then] composes a child under its parent.
package geom
