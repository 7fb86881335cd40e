// Package algo implements the local collision-avoidance planner: the
// preferred-velocity generator, the ORCA half-plane constraint builder, the
// incremental 2D linear-program solver, and the driver that composes them.
// Every function here is a pure function of its arguments — no package-level
// state, no I/O — so the per-tick pipeline in internal/sim stays a plain
// (state, dt) -> state transform.
package algo

import (
	"github.com/elektrokombinacija/orca-pedestrians/internal/core"
	"github.com/elektrokombinacija/orca-pedestrians/internal/geom"
)

// ReachTargetVelocities computes, for every agent in s, a preferred
// velocity that heads toward its target at its desired speed, clamped by
// its maximum acceleration applied over dt.
func ReachTargetVelocities(s *core.AgentStore, dt float64) []geom.Vec2 {
	out := make([]geom.Vec2, s.Len())
	for i := range out {
		out[i] = reachTargetVelocity(
			s.Positions[i], s.Velocities[i], s.Targets[i],
			s.DesiredSpeeds[i], s.MaximumAccelerations[i], dt,
		)
	}
	return out
}

func reachTargetVelocity(position, velocity, target geom.Vec2, desiredSpeed, maximumAcceleration, dt float64) geom.Vec2 {
	desiredVelocity := target.Sub(position).CapNorm(desiredSpeed)
	desiredAcceleration := desiredVelocity.Sub(velocity).Div(dt)
	acceleration := desiredAcceleration.CapNorm(maximumAcceleration)
	return velocity.Add(acceleration.Scale(dt))
}
