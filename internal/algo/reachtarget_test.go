package algo

import (
	"testing"

	"github.com/elektrokombinacija/orca-pedestrians/internal/core"
	"github.com/elektrokombinacija/orca-pedestrians/internal/geom"
)

func TestReachTargetVelocitiesCruisingUnchanged(t *testing.T) {
	// An agent already cruising straight at its target, at exactly its
	// desired speed, should see its velocity pass through unchanged.
	s := core.NewAgentStore()
	s.CreateAgent(core.AgentParams{
		Position:     geom.Vec2{X: 0, Y: 0},
		Target:       geom.Vec2{X: 100, Y: 0},
		DesiredSpeed: 2,
	})
	s.Velocities[0] = geom.Vec2{X: 2, Y: 0}

	out := ReachTargetVelocities(s, 0.25)
	if !vecAlmostEqual(out[0], geom.Vec2{X: 2, Y: 0}, 1e-9) {
		t.Errorf("out[0] = %v, want {2 0} (already cruising)", out[0])
	}
}

func TestReachTargetVelocitiesAcceleratesFromRest(t *testing.T) {
	s := core.NewAgentStore()
	s.CreateAgent(core.AgentParams{
		Position:            geom.Vec2{X: 0, Y: 0},
		Target:              geom.Vec2{X: 100, Y: 0},
		DesiredSpeed:        2,
		MaximumAcceleration: 1,
	})
	dt := 0.25
	out := ReachTargetVelocities(s, dt)
	// desired velocity (2,0); desired accel (2,0)/0.25=(8,0), capped to (1,0);
	// output = (0,0) + 0.25*(1,0) = (0.25, 0).
	if !vecAlmostEqual(out[0], geom.Vec2{X: 0.25, Y: 0}, 1e-9) {
		t.Errorf("out[0] = %v, want {0.25 0}", out[0])
	}
}

func TestReachTargetVelocitiesNeverOvershootsNearbyTarget(t *testing.T) {
	s := core.NewAgentStore()
	s.CreateAgent(core.AgentParams{
		Position:     geom.Vec2{X: 0, Y: 0},
		Target:       geom.Vec2{X: 0.1, Y: 0},
		DesiredSpeed: 2,
	})
	out := ReachTargetVelocities(s, 1.0)
	if out[0].Norm() > 0.1+1e-9 {
		t.Errorf("out[0].Norm() = %v, want <= distance to target (0.1)", out[0].Norm())
	}
}

func vecAlmostEqual(a, b geom.Vec2, tol float64) bool {
	return abs(a.X-b.X) <= tol && abs(a.Y-b.Y) <= tol
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
