package geom

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func vecAlmostEqual(a, b Vec2, tol float64) bool {
	return almostEqual(a.X, b.X, tol) && almostEqual(a.Y, b.Y, tol)
}

func TestAddSubNeg(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, -1}
	if got := a.Add(b); got != (Vec2{4, 1}) {
		t.Errorf("Add = %v, want {4 1}", got)
	}
	if got := a.Sub(b); got != (Vec2{-2, 3}) {
		t.Errorf("Sub = %v, want {-2 3}", got)
	}
	if got := a.Neg(); got != (Vec2{-1, -2}) {
		t.Errorf("Neg = %v, want {-1 -2}", got)
	}
}

func TestScaleDiv(t *testing.T) {
	a := Vec2{2, 4}
	if got := a.Scale(0.5); got != (Vec2{1, 2}) {
		t.Errorf("Scale = %v, want {1 2}", got)
	}
	if got := a.Div(2); got != (Vec2{1, 2}) {
		t.Errorf("Div = %v, want {1 2}", got)
	}
}

func TestDotDet(t *testing.T) {
	a := Vec2{1, 0}
	b := Vec2{0, 1}
	if got := a.Dot(b); got != 0 {
		t.Errorf("Dot = %v, want 0", got)
	}
	if got := Det(a, b); got != 1 {
		t.Errorf("Det(a,b) = %v, want 1 (b is ccw of a)", got)
	}
	if got := Det(b, a); got != -1 {
		t.Errorf("Det(b,a) = %v, want -1", got)
	}
}

func TestNormalize(t *testing.T) {
	if got := (Vec2{3, 4}).Normalize(); !vecAlmostEqual(got, Vec2{0.6, 0.8}, 1e-12) {
		t.Errorf("Normalize = %v, want {0.6 0.8}", got)
	}
	if got := Zero.Normalize(); got != Zero {
		t.Errorf("Normalize of zero = %v, want zero", got)
	}
}

func TestNormalizeTo(t *testing.T) {
	got := (Vec2{3, 4}).NormalizeTo(10)
	if !vecAlmostEqual(got, Vec2{6, 8}, 1e-12) {
		t.Errorf("NormalizeTo = %v, want {6 8}", got)
	}
	if got := Zero.NormalizeTo(5); got != Zero {
		t.Errorf("NormalizeTo of zero = %v, want zero", got)
	}
}

func TestCapNorm(t *testing.T) {
	// Under cap: identity.
	v := Vec2{1, 0}
	if got := v.CapNorm(5); got != v {
		t.Errorf("CapNorm under cap = %v, want unchanged %v", got, v)
	}
	// Over cap: scaled down to exactly cap.
	v = Vec2{3, 4}
	got := v.CapNorm(0.5)
	if !almostEqual(got.Norm(), 0.5, 1e-12) {
		t.Errorf("CapNorm(0.5).Norm() = %v, want 0.5", got.Norm())
	}
	// Zero cap always yields the zero vector, even for a nonzero input.
	if got := v.CapNorm(0); got != Zero {
		t.Errorf("CapNorm(0) = %v, want zero", got)
	}
	// Zero vector stays zero regardless of cap.
	if got := Zero.CapNorm(5); got != Zero {
		t.Errorf("CapNorm of zero = %v, want zero", got)
	}
}
