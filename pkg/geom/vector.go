package geom

import "math"

// Vector is a 3D point or direction.
type Vector struct {
	X, Y, Z float64
}

// Partial describes a sparse vector: nil axes are left untouched by
// [Vector.Apply] and default to 0 in [NewVector].
type Partial struct {
	X, Y, Z *float64
}

// F returns a pointer to f, for building [Partial] values inline.
func F(f float64) *float64 { return &f }

// NewVector builds a vector from p, defaulting missing axes to 0.
func NewVector(p Partial) Vector {
	var v Vector
	v.Apply(p)
	return v
}

// Splat returns a vector with n on every axis.
func Splat(n float64) Vector {
	return Vector{X: n, Y: n, Z: n}
}

// Set copies all axes of o into v.
func (v *Vector) Set(o Vector) *Vector {
	*v = o
	return v
}

// Apply sets only the axes present in p.
func (v *Vector) Apply(p Partial) *Vector {
	if p.X != nil {
		v.X = *p.X
	}
	if p.Y != nil {
		v.Y = *p.Y
	}
	if p.Z != nil {
		v.Z = *p.Z
	}
	return v
}

// Copy returns an independent copy of v.
func (v Vector) Copy() Vector {
	return v
}

// Add adds o elementwise.
func (v *Vector) Add(o Vector) *Vector {
	v.X += o.X
	v.Y += o.Y
	v.Z += o.Z
	return v
}

// Subtract subtracts o elementwise.
func (v *Vector) Subtract(o Vector) *Vector {
	v.X -= o.X
	v.Y -= o.Y
	v.Z -= o.Z
	return v
}

// Multiply multiplies by o elementwise. Use [Splat] for a uniform factor.
func (v *Vector) Multiply(o Vector) *Vector {
	v.X *= o.X
	v.Y *= o.Y
	v.Z *= o.Z
	return v
}

// Rotate rotates v by the Euler angles in r (radians): about the x-axis by
// r.X, then about y by r.Y, then about z by r.Z.
func (v *Vector) Rotate(r Vector) *Vector {
	v.RotateX(r.X)
	v.RotateY(r.Y)
	v.RotateZ(r.Z)
	return v
}

// RotateX rotates v about the x-axis.
func (v *Vector) RotateX(angle float64) *Vector {
	v.Y, v.Z = rotatePair(v.Y, v.Z, angle)
	return v
}

// RotateY rotates v about the y-axis.
func (v *Vector) RotateY(angle float64) *Vector {
	v.X, v.Z = rotatePair(v.X, v.Z, angle)
	return v
}

// RotateZ rotates v about the z-axis.
func (v *Vector) RotateZ(angle float64) *Vector {
	v.X, v.Y = rotatePair(v.X, v.Y, angle)
	return v
}

func rotatePair(a, b, angle float64) (float64, float64) {
	if angle == 0 {
		return a, b
	}
	sin, cos := math.Sincos(angle)
	return a*cos - b*sin, a*sin + b*cos
}

// Transform scales, rotates, then translates v. This is the local transform
// of a single node applied to a point.
func (v *Vector) Transform(translate, rotate, scale Vector) *Vector {
	v.Multiply(scale)
	v.Rotate(rotate)
	v.Add(translate)
	return v
}

// Magnitude returns the Euclidean length of v.
func (v Vector) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Magnitude2D returns the length of v projected on the view plane.
func (v Vector) Magnitude2D() float64 {
	return math.Hypot(v.X, v.Y)
}

// Lerp returns a new vector interpolated from v towards p. alpha is not
// clamped, so values outside [0, 1] extrapolate.
func (v Vector) Lerp(p Vector, alpha float64) Vector {
	return Vector{
		X: Lerp(v.X, p.X, alpha),
		Y: Lerp(v.Y, p.Y, alpha),
		Z: Lerp(v.Z, p.Z, alpha),
	}
}

// IsSame reports whether v and o are equal on every axis.
func (v Vector) IsSame(o Vector) bool {
	return v.X == o.X && v.Y == o.Y && v.Z == o.Z
}

// Mod wraps every axis of v into [0, div).
func (v *Vector) Mod(div float64) *Vector {
	v.X = Modulo(v.X, div)
	v.Y = Modulo(v.Y, div)
	v.Z = Modulo(v.Z, div)
	return v
}
