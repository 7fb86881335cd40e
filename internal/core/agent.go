// Package core holds the simulator's data model: the columnar agent store,
// the neighbourhood builder, the navmesh, and the scenario loader. None of
// these packages know about ORCA; the collision-avoidance math lives in
// internal/algo and operates purely on the slices this package exposes.
package core

import "github.com/elektrokombinacija/orca-pedestrians/internal/geom"

// Default per-agent parameters, matching the reference implementation's
// own constants.
const (
	DefaultDesiredSpeed        = 2.1
	DefaultMaximumSpeed        = 3.0
	DefaultMaximumAcceleration = 3.0
	DefaultRadius              = 0.35
)

// MaxNeighbors bounds the capacity of an AgentNeighborhood.
const MaxNeighbors = 10

// AgentStore is a columnar (struct-of-arrays) collection of agents. All
// slices share the same length, equal to the agent count; index i across
// every slice describes one agent.
type AgentStore struct {
	Positions            []geom.Vec2
	Velocities           []geom.Vec2
	Directions           []geom.Vec2
	Targets              []geom.Vec2
	DesiredSpeeds        []float64
	MaximumSpeeds        []float64
	MaximumAccelerations []float64
	Radii                []float64
}

// NewAgentStore returns an empty store.
func NewAgentStore() *AgentStore {
	return &AgentStore{}
}

// Len returns the number of agents.
func (s *AgentStore) Len() int {
	return len(s.Positions)
}

// AgentParams carries the tunable, non-kinematic fields of an agent;
// zero values are replaced by the package defaults in CreateAgent.
type AgentParams struct {
	Position            geom.Vec2
	Target              geom.Vec2
	Direction           geom.Vec2
	DesiredSpeed        float64
	MaximumSpeed        float64
	MaximumAcceleration float64
	Radius              float64
}

// CreateAgent appends one agent to the store and returns its index. A zero
// direction vector is replaced by (1, 0); zero-valued speed/acceleration/
// radius fields fall back to the package defaults.
func (s *AgentStore) CreateAgent(p AgentParams) int {
	if p.DesiredSpeed == 0 {
		p.DesiredSpeed = DefaultDesiredSpeed
	}
	if p.MaximumSpeed == 0 {
		p.MaximumSpeed = DefaultMaximumSpeed
	}
	if p.MaximumAcceleration == 0 {
		p.MaximumAcceleration = DefaultMaximumAcceleration
	}
	if p.Radius == 0 {
		p.Radius = DefaultRadius
	}
	dir := p.Direction
	if dir == geom.Zero {
		dir = geom.Vec2{X: 1, Y: 0}
	}

	s.Positions = append(s.Positions, p.Position)
	s.Velocities = append(s.Velocities, geom.Zero)
	s.Directions = append(s.Directions, dir)
	s.Targets = append(s.Targets, p.Target)
	s.DesiredSpeeds = append(s.DesiredSpeeds, p.DesiredSpeed)
	s.MaximumSpeeds = append(s.MaximumSpeeds, p.MaximumSpeed)
	s.MaximumAccelerations = append(s.MaximumAccelerations, p.MaximumAcceleration)
	s.Radii = append(s.Radii, p.Radius)

	return s.Len() - 1
}
