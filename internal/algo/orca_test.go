package algo

import (
	"testing"

	"github.com/elektrokombinacija/orca-pedestrians/internal/core"
	"github.com/elektrokombinacija/orca-pedestrians/internal/geom"
)

func twoAgentNeighborhoods(s *core.AgentStore) []core.AgentNeighborhood {
	return core.ComputeNeighborhoods(s)
}

func TestOrcaNoMovement(t *testing.T) {
	// Two stationary agents 1 unit apart: with no preferred motion, ORCA
	// should leave them at zero velocity.
	s := core.NewAgentStore()
	s.CreateAgent(core.AgentParams{Position: geom.Vec2{X: 0, Y: 0}, Target: geom.Vec2{X: 0, Y: 0}})
	s.CreateAgent(core.AgentParams{Position: geom.Vec2{X: 1, Y: 0}, Target: geom.Vec2{X: 1, Y: 0}})

	neighborhoods := twoAgentNeighborhoods(s)
	preferred := ReachTargetVelocities(s, 0.25)
	results := Solve(s, neighborhoods, preferred, 5.0, 0.25)

	for i, r := range results {
		if r.Velocity.Norm() > 1e-9 {
			t.Errorf("agent %d velocity = %v, want ~zero", i, r.Velocity)
		}
	}
}

func TestOrcaDiverging(t *testing.T) {
	// Two agents moving apart should retain their preferred velocities:
	// the constraints are already satisfied.
	s := core.NewAgentStore()
	s.CreateAgent(core.AgentParams{Position: geom.Vec2{X: 0, Y: 0}, Target: geom.Vec2{X: -100, Y: 0}, DesiredSpeed: 1})
	s.CreateAgent(core.AgentParams{Position: geom.Vec2{X: 1, Y: 0}, Target: geom.Vec2{X: 101, Y: 0}, DesiredSpeed: 1})

	neighborhoods := twoAgentNeighborhoods(s)
	preferred := ReachTargetVelocities(s, 0.25)
	results := Solve(s, neighborhoods, preferred, 5.0, 0.25)

	for i, r := range results {
		if !vecAlmostEqual(r.Velocity, preferred[i], 1e-9) {
			t.Errorf("agent %d velocity = %v, want preferred %v (diverging, unconstrained)", i, r.Velocity, preferred[i])
		}
	}
}

func TestOrcaHeadOnDeflectsSymmetrically(t *testing.T) {
	// Two agents on a collinear collision course should deflect as mirror
	// images across the line connecting them (the x-axis here).
	s := core.NewAgentStore()
	s.CreateAgent(core.AgentParams{Position: geom.Vec2{X: -5, Y: 0}, Target: geom.Vec2{X: 5, Y: 0}, DesiredSpeed: 1})
	s.CreateAgent(core.AgentParams{Position: geom.Vec2{X: 5, Y: 0}, Target: geom.Vec2{X: -5, Y: 0}, DesiredSpeed: 1})

	neighborhoods := twoAgentNeighborhoods(s)
	preferred := ReachTargetVelocities(s, 0.25)
	results := Solve(s, neighborhoods, preferred, 5.0, 0.25)

	// Mirror images across the x-axis: same X component, opposite Y.
	vA, vB := results[0].Velocity, results[1].Velocity
	if !almostEqual(vA.X, vB.X, 1e-9) {
		t.Errorf("vA.X=%v vB.X=%v, want equal (symmetric deflection)", vA.X, vB.X)
	}
	if !almostEqual(vA.Y, -vB.Y, 1e-9) {
		t.Errorf("vA.Y=%v vB.Y=%v, want opposite (symmetric deflection)", vA.Y, vB.Y)
	}
}

func almostEqual(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func TestIntegrateAdvancesPosition(t *testing.T) {
	s := core.NewAgentStore()
	s.CreateAgent(core.AgentParams{Position: geom.Vec2{X: 0, Y: 0}})
	s.Velocities[0] = geom.Vec2{X: 2, Y: 1}
	Integrate(s, 0.5)
	if !vecAlmostEqual(s.Positions[0], geom.Vec2{X: 1, Y: 0.5}, 1e-12) {
		t.Errorf("Positions[0] = %v, want {1 0.5}", s.Positions[0])
	}
}

func TestUpdateHeadingsRetainsPreviousWhenStopped(t *testing.T) {
	s := core.NewAgentStore()
	s.CreateAgent(core.AgentParams{Direction: geom.Vec2{X: 0, Y: 1}})
	s.Velocities[0] = geom.Zero
	UpdateHeadings(s)
	if s.Directions[0] != (geom.Vec2{X: 0, Y: 1}) {
		t.Errorf("Directions[0] = %v, want unchanged {0 1}", s.Directions[0])
	}
}

func TestUpdateHeadingsAlignsWithVelocity(t *testing.T) {
	s := core.NewAgentStore()
	s.CreateAgent(core.AgentParams{Direction: geom.Vec2{X: 1, Y: 0}})
	s.Velocities[0] = geom.Vec2{X: 0, Y: 3}
	UpdateHeadings(s)
	if !vecAlmostEqual(s.Directions[0], geom.Vec2{X: 0, Y: 1}, 1e-12) {
		t.Errorf("Directions[0] = %v, want {0 1}", s.Directions[0])
	}
}
