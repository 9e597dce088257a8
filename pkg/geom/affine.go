package geom

// Affine is a 3D affine transform stored as the images of the three unit
// axes plus the image of the origin.
type Affine struct {
	X, Y, Z Vector
	Origin  Vector
}

// Identity returns the transform that leaves every point in place.
func Identity() Affine {
	return Affine{
		X: Vector{X: 1},
		Y: Vector{Y: 1},
		Z: Vector{Z: 1},
	}
}

// Local returns the transform of one node: scale, then rotate, then
// translate. Local(t, r, s).Apply(p) matches p.Transform(t, r, s).
func Local(translate, rotate, scale Vector) Affine {
	axis := func(v Vector) Vector {
		v.Multiply(scale)
		v.Rotate(rotate)
		return v
	}
	return Affine{
		X:      axis(Vector{X: 1}),
		Y:      axis(Vector{Y: 1}),
		Z:      axis(Vector{Z: 1}),
		Origin: translate,
	}
}

// Apply maps the point p.
func (a Affine) Apply(p Vector) Vector {
	v := a.ApplyLinear(p)
	v.Add(a.Origin)
	return v
}

// ApplyLinear maps the direction p, ignoring translation.
func (a Affine) ApplyLinear(p Vector) Vector {
	return Vector{
		X: a.X.X*p.X + a.Y.X*p.Y + a.Z.X*p.Z,
		Y: a.X.Y*p.X + a.Y.Y*p.Y + a.Z.Y*p.Z,
		Z: a.X.Z*p.X + a.Y.Z*p.Y + a.Z.Z*p.Z,
	}
}

// Then returns the transform that applies child first and a second, i.e.
// the world transform of a node whose parent's world transform is a.
func (a Affine) Then(child Affine) Affine {
	return Affine{
		X:      a.ApplyLinear(child.X),
		Y:      a.ApplyLinear(child.Y),
		Z:      a.ApplyLinear(child.Z),
		Origin: a.Apply(child.Origin),
	}
}
