package algo

import (
	"math"

	"github.com/elektrokombinacija/orca-pedestrians/internal/geom"
)

// HalfPlane is an ORCA velocity-space constraint: the closed set of
// velocities v satisfying det(Direction, v - Origin) >= 0. Direction is
// always a unit vector.
type HalfPlane struct {
	Origin    geom.Vec2
	Direction geom.Vec2
}

// Contains reports whether v lies in (or on the boundary of) the half-plane.
func (h HalfPlane) Contains(v geom.Vec2) bool {
	return geom.Det(h.Direction, v.Sub(h.Origin)) >= 0
}

// ComputeConstraint builds the single ORCA half-plane agent A (at position
// pA, radius rA, preferred velocity prefA) derives against neighbour B (at
// position pB, velocity velB, radius rB), over horizon tau with tick length
// dt.
//
// The rotation n = (w.Y, -w.X) (a -90 degree turn of the unit relative-
// velocity vector) is paired with the det(direction, v-origin) >= 0
// membership test above; the two must always be derived together, since
// swapping one rotation direction without the other flips which side of
// the half-plane is considered feasible.
func ComputeConstraint(pA, prefA geom.Vec2, rA float64, pB, velB geom.Vec2, rB, tau, dt float64) HalfPlane {
	pAB := pB.Sub(pA)
	vAB := velB.Sub(prefA)
	dSqr := pAB.SqrNorm()
	r := rA + rB
	rSqr := r * r

	if dSqr <= rSqr {
		return collisionNowConstraint(pAB, vAB, prefA, r, dt)
	}
	return noCollisionConstraint(pAB, vAB, prefA, r, rSqr, dSqr, tau)
}

func collisionNowConstraint(pAB, vAB, prefA geom.Vec2, r, dt float64) HalfPlane {
	w := pAB.Neg().Div(dt).Sub(vAB)
	wn := w.Norm()
	unitW := w.Div(wn)
	direction := geom.Vec2{X: unitW.Y, Y: -unitW.X}
	u := unitW.Scale(r/dt - wn)
	return HalfPlane{Origin: prefA.Add(u.Scale(0.5)), Direction: direction}
}

func noCollisionConstraint(pAB, vAB, prefA geom.Vec2, r, rSqr, dSqr, tau float64) HalfPlane {
	w := pAB.Neg().Div(tau).Sub(vAB)
	dotWPAB := w.Dot(pAB)

	if dotWPAB < 0 && dotWPAB*dotWPAB > rSqr*w.SqrNorm() {
		// Project on the cut-off circle.
		wn := w.Norm()
		unitW := w.Div(wn)
		direction := geom.Vec2{X: unitW.Y, Y: -unitW.X}
		u := unitW.Scale(r/tau - wn)
		return HalfPlane{Origin: prefA.Add(u.Scale(0.5)), Direction: direction}
	}

	// Project on one of the two cone legs.
	leg := math.Sqrt(dSqr - rSqr)
	var direction geom.Vec2
	if geom.Det(pAB, w) > 0 {
		// Left leg.
		direction = geom.Vec2{
			X: (pAB.X*leg - pAB.Y*r) / dSqr,
			Y: (pAB.X*r + pAB.Y*leg) / dSqr,
		}
	} else {
		// Right leg.
		direction = geom.Vec2{
			X: -(pAB.X*leg + pAB.Y*r) / dSqr,
			Y: -(-pAB.X*r + pAB.Y*leg) / dSqr,
		}
	}
	// u is vAB's rejection from the leg line: vAB minus its projection onto
	// the constraint direction.
	u := vAB.Sub(direction.Scale(vAB.Dot(direction)))
	return HalfPlane{Origin: prefA.Add(u.Scale(0.5)), Direction: direction}
}
