// Package v3 implements 3D vector operations for float64 coordinates.
package v3

import "math"

// Vec is a 3D vector / point in Cartesian or lattice-index space.
type Vec struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Mul returns the component-wise product of v and o.
func (v Vec) Mul(o Vec) Vec {
	return Vec{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

// Div returns the component-wise quotient of v and o.
func (v Vec) Div(o Vec) Vec {
	return Vec{v.X / o.X, v.Y / o.Y, v.Z / o.Z}
}

// MulScalar scales v by s.
func (v Vec) MulScalar(s float64) Vec {
	return Vec{v.X * s, v.Y * s, v.Z * s}
}

// DivScalar divides v by s.
func (v Vec) DivScalar(s float64) Vec {
	return Vec{v.X / s, v.Y / s, v.Z / s}
}

// AddScalar adds s to every component of v.
func (v Vec) AddScalar(s float64) Vec {
	return Vec{v.X + s, v.Y + s, v.Z + s}
}

// Dot returns the dot product of v and o.
func (v Vec) Dot(o Vec) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v x o.
func (v Vec) Cross(o Vec) Vec {
	return Vec{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean norm of v.
func (v Vec) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. If v is exactly zero, it returns
// v unchanged; a very small non-zero v is still divided by its length —
// callers that need a deterministic fallback must check Length
// themselves (see render's gradient fallback, which needs a specific axis).
func (v Vec) Normalize() Vec {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.DivScalar(l)
}

// Min returns the component-wise minimum of v and o.
func (v Vec) Min(o Vec) Vec {
	return Vec{math.Min(v.X, o.X), math.Min(v.Y, o.Y), math.Min(v.Z, o.Z)}
}

// Max returns the component-wise maximum of v and o.
func (v Vec) Max(o Vec) Vec {
	return Vec{math.Max(v.X, o.X), math.Max(v.Y, o.Y), math.Max(v.Z, o.Z)}
}

// Clamp restricts v to the box [lo, hi] component-wise.
func (v Vec) Clamp(lo, hi Vec) Vec {
	return v.Max(lo).Min(hi)
}

// Lerp linearly interpolates between v and o by t in [0, 1].
func (v Vec) Lerp(o Vec, t float64) Vec {
	return v.MulScalar(1 - t).Add(o.MulScalar(t))
}
