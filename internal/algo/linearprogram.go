package algo

import (
	"math"

	"github.com/elektrokombinacija/orca-pedestrians/internal/geom"
)

// parallelEpsilon is the numeric threshold below which two half-plane
// boundary lines are treated as parallel when clipping the feasible
// interval in solveStep.
const parallelEpsilon = 1e-6

// solveLinearProgram finds a velocity v near v* = objDir * objMaxNorm
// satisfying every half-plane in constraints and the ball ||v|| <= objMaxNorm,
// processing constraints in index order (Seidel-style incremental 2D LP).
// Starting from v*, each violated half-plane moves the candidate onto its
// boundary line at the parameter chosen by farthestEndpoint or
// closestPointParam; the result is not in general the feasible point
// nearest to v*. Returns ok = false when the program is infeasible.
func solveLinearProgram(objDir geom.Vec2, objMaxNorm float64, constraints []HalfPlane, maximizeNorm bool) (v geom.Vec2, ok bool) {
	v = objDir.Scale(objMaxNorm)
	for i, h := range constraints {
		if h.Contains(v) {
			continue
		}
		r, stepOK := solveStep(objDir, objMaxNorm, h, constraints[:i], maximizeNorm)
		if !stepOK {
			return geom.Vec2{}, false
		}
		v = r
	}
	return v, true
}

// solveStep enforces one violated half-plane h against the current
// candidate, intersecting h's boundary line with the ball ||v|| <= vmax
// and clipping the resulting interval by every prior constraint.
func solveStep(objDir geom.Vec2, vmax float64, h HalfPlane, prior []HalfPlane, maximizeNorm bool) (geom.Vec2, bool) {
	o, d := h.Origin, h.Direction

	// Intersect the boundary line o + t*d with the ball ||v|| <= vmax:
	// t^2 + 2*(o.d)*t + (||o||^2 - vmax^2) = 0.
	b := o.Dot(d)
	c := o.SqrNorm() - vmax*vmax
	discriminant := b*b - c
	if discriminant < 0 {
		return geom.Vec2{}, false
	}
	sqrtDisc := math.Sqrt(discriminant)
	tLeft := -b - sqrtDisc
	tRight := -b + sqrtDisc

	for _, k := range prior {
		num := geom.Det(k.Direction, k.Origin.Sub(o))
		den := geom.Det(k.Direction, d)
		if math.Abs(den) <= parallelEpsilon {
			if num > 0 {
				return geom.Vec2{}, false
			}
			continue
		}
		t := num / den
		if den < 0 {
			if t < tRight {
				tRight = t
			}
		} else {
			if t > tLeft {
				tLeft = t
			}
		}
		if tLeft > tRight {
			return geom.Vec2{}, false
		}
	}

	var t float64
	if maximizeNorm {
		t = farthestEndpoint(objDir, o, d, tLeft, tRight)
	} else {
		t = closestPointParam(objDir, o, d, tLeft, tRight)
	}
	candidate := o.Add(d.Scale(t))
	// Reject a candidate that points backward relative to the objective: it
	// would technically satisfy every half-plane but never improve on the
	// "no solution" fallback the driver already has for this case.
	if candidate.Dot(objDir) < 0 {
		return geom.Vec2{}, false
	}
	return candidate, true
}

// farthestEndpoint picks whichever of tLeft/tRight lies nearer to tObj, the
// parameter at which the objective direction's line through the origin
// crosses o + t*d. It returns tRight on a tie or when the two lines are
// parallel.
func farthestEndpoint(objDir, o, d geom.Vec2, tLeft, tRight float64) float64 {
	denom := geom.Det(objDir, d)
	if math.Abs(denom) <= parallelEpsilon {
		return tRight
	}
	tObj := geom.Det(objDir, o.Neg()) / denom
	if math.Abs(tObj-tLeft) < math.Abs(tObj-tRight) {
		return tLeft
	}
	return tRight
}

// closestPointParam returns the parameter at which the objective
// direction's line through the origin crosses o + t*d (tRight when the two
// are parallel), clamped to [tLeft, tRight]. This is the crossing point, not
// the foot of the perpendicular from v*.
func closestPointParam(objDir, o, d geom.Vec2, tLeft, tRight float64) float64 {
	denom := geom.Det(objDir, d)
	var t float64
	if math.Abs(denom) <= parallelEpsilon {
		t = tRight
	} else {
		t = geom.Det(objDir, o.Neg()) / denom
	}
	return clamp(t, tLeft, tRight)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
