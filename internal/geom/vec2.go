// Package geom implements the 2D vector algebra the rest of the simulator
// is built on: addition, scaling, dot and cross products, and the norm-
// capping helpers the preferred-velocity generator and ORCA constraint
// builder both lean on.
package geom

import "math"

// Vec2 is an ordered pair of double-precision scalars.
type Vec2 struct {
	X, Y float64
}

// Zero is the additive identity.
var Zero = Vec2{}

// Add returns v + w.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{v.X + w.X, v.Y + w.Y}
}

// Sub returns v - w.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{v.X - w.X, v.Y - w.Y}
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Div returns v / s.
func (v Vec2) Div(s float64) Vec2 {
	return Vec2{v.X / s, v.Y / s}
}

// Dot returns the Euclidean dot product v . w.
func (v Vec2) Dot(w Vec2) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Det returns the 2D cross product (determinant) det(v, w) = v.X*w.Y - v.Y*w.X.
// Positive iff w lies counter-clockwise of v.
func Det(v, w Vec2) float64 {
	return v.X*w.Y - v.Y*w.X
}

// SqrNorm returns the squared Euclidean norm.
func (v Vec2) SqrNorm() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Norm returns the Euclidean norm.
func (v Vec2) Norm() float64 {
	return math.Sqrt(v.SqrNorm())
}

// Normalize returns v scaled to unit norm, or the zero vector when v is zero.
func (v Vec2) Normalize() Vec2 {
	n := v.Norm()
	if n == 0 {
		return Zero
	}
	return v.Div(n)
}

// NormalizeTo rescales v to norm s (s may be zero, yielding the zero vector
// when v itself is zero).
func (v Vec2) NormalizeTo(s float64) Vec2 {
	n := v.Norm()
	if n == 0 {
		return Zero
	}
	return v.Scale(s / n)
}

// CapNorm scales v down to norm cap when its current norm exceeds cap;
// returns v unchanged otherwise. Yields the zero vector when cap <= 0.
func (v Vec2) CapNorm(cap float64) Vec2 {
	if cap <= 0 {
		return Zero
	}
	sqrNorm := v.SqrNorm()
	if cap*cap >= sqrNorm {
		return v
	}
	if sqrNorm > 0 && cap > 0 {
		return v.Scale(cap / math.Sqrt(sqrNorm))
	}
	return Zero
}
