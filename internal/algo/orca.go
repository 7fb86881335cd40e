package algo

import (
	"github.com/elektrokombinacija/orca-pedestrians/internal/core"
	"github.com/elektrokombinacija/orca-pedestrians/internal/geom"
)

// headingEpsilon is the speed below which a velocity is considered too
// small to derive a direction from.
const headingEpsilon = 1e-9

// safetyFallbackFactor is the fraction of desired speed used when both LP
// attempts fail.
const safetyFallbackFactor = 0.9

// FallbackKind classifies which rung of the 3D-relaxation cascade an
// agent's ORCA solve landed on, for metrics purposes.
type FallbackKind int

const (
	// FallbackNone means the primary 2D LP (vmax = desired speed) solved
	// directly.
	FallbackNone FallbackKind = iota
	// FallbackRelaxed means the primary LP failed and the relaxed retry
	// (vmax = maximum speed) solved.
	FallbackRelaxed
	// FallbackSafety means both LP attempts failed and the safety
	// fallback (0.9 * desired speed along the preferred direction) was
	// used.
	FallbackSafety
)

// Result is the per-agent outcome of one ORCA solve.
type Result struct {
	Velocity geom.Vec2
	Fallback FallbackKind
}

// Solve runs the ORCA pipeline for every agent in s: builds one half-plane
// per neighbour from the already-computed neighbourhoods and preferred
// velocities, then solves the 2D LP, retrying at the relaxed (maximum-speed)
// bound and finally falling back to a damped preferred-direction velocity
// if both LP attempts are infeasible.
func Solve(s *core.AgentStore, neighborhoods []core.AgentNeighborhood, preferred []geom.Vec2, tau, dt float64) []Result {
	results := make([]Result, s.Len())
	for i := range results {
		constraints := buildConstraints(s, i, neighborhoods[i], preferred[i], tau, dt)
		results[i] = solveAgent(preferred[i], s.Directions[i], s.MaximumSpeeds[i], constraints)
	}
	return results
}

// ConstraintsForAgent exposes buildConstraints for callers that need the
// raw half-planes a single agent would face, such as a debug renderer.
func ConstraintsForAgent(s *core.AgentStore, i int, nb core.AgentNeighborhood, prefA geom.Vec2, tau, dt float64) []HalfPlane {
	return buildConstraints(s, i, nb, prefA, tau, dt)
}

func buildConstraints(s *core.AgentStore, i int, nb core.AgentNeighborhood, prefA geom.Vec2, tau, dt float64) []HalfPlane {
	constraints := make([]HalfPlane, nb.Count)
	for k := 0; k < nb.Count; k++ {
		constraints[k] = ComputeConstraint(
			s.Positions[i], prefA, s.Radii[i],
			nb.Positions[k], nb.Velocities[k], nb.Radii[k],
			tau, dt,
		)
	}
	return constraints
}

func solveAgent(prefA, currentDirection geom.Vec2, maximumSpeed float64, constraints []HalfPlane) Result {
	desiredSpeed := prefA.Norm()
	desiredDir := currentDirection
	if desiredSpeed >= headingEpsilon {
		desiredDir = prefA.Div(desiredSpeed)
	}

	if v, ok := solveLinearProgram(desiredDir, desiredSpeed, constraints, true); ok {
		return Result{Velocity: v, Fallback: FallbackNone}
	}
	if v, ok := solveLinearProgram(desiredDir, maximumSpeed, constraints, false); ok {
		return Result{Velocity: v, Fallback: FallbackRelaxed}
	}
	return Result{
		Velocity: desiredDir.Scale(safetyFallbackFactor * desiredSpeed),
		Fallback: FallbackSafety,
	}
}

// Integrate advances every agent's position by velocity * dt.
func Integrate(s *core.AgentStore, dt float64) {
	for i := range s.Positions {
		s.Positions[i] = s.Positions[i].Add(s.Velocities[i].Scale(dt))
	}
}

// UpdateHeadings sets each agent's facing direction to its velocity's
// direction, retaining the previous heading when speed is near zero.
func UpdateHeadings(s *core.AgentStore) {
	for i := range s.Directions {
		speed := s.Velocities[i].Norm()
		if speed >= headingEpsilon {
			s.Directions[i] = s.Velocities[i].Div(speed)
		}
	}
}
