package core

import (
	"encoding/json"
	"math"

	"github.com/elektrokombinacija/orca-pedestrians/internal/geom"
)

// Scenario is a closed set of initial-condition generators, selected by a
// JSON "scenario" discriminator field.
type Scenario interface {
	Generate() (*AgentStore, *Navmesh)
}

// EmptyScenario yields zero agents and the default unit-square navmesh.
type EmptyScenario struct{}

// Generate implements Scenario.
func (EmptyScenario) Generate() (*AgentStore, *Navmesh) {
	return NewAgentStore(), UnitSquareNavmesh()
}

// AntipodalCircleScenario places AgentsCount agents evenly around a circle
// of Radius, each heading to its antipode.
type AntipodalCircleScenario struct {
	AgentsCount int
	Radius      float64
}

// Generate implements Scenario.
func (s AntipodalCircleScenario) Generate() (*AgentStore, *Navmesh) {
	store := NewAgentStore()
	for i := 0; i < s.AgentsCount; i++ {
		angle := float64(i) * 2 * math.Pi / float64(s.AgentsCount)
		pos := geom.Vec2{X: s.Radius * math.Cos(angle), Y: s.Radius * math.Sin(angle)}
		target := pos.Neg()
		store.CreateAgent(AgentParams{
			Position:  pos,
			Target:    target,
			Direction: target.Sub(pos).Normalize(),
		})
	}
	navmesh := RectNavmesh(geom.Zero, 3*s.Radius, 3*s.Radius)
	return store, navmesh
}

// CorridorScenario lines 2*AgentsPerSideCount agents up at both ends of a
// corridor, each heading to the opposite end.
type CorridorScenario struct {
	AgentsPerSideCount int
	Length             float64
	Width              float64
}

// Generate implements Scenario.
func (s CorridorScenario) Generate() (*AgentStore, *Navmesh) {
	store := NewAgentStore()
	halfLength := s.Length / 2
	halfWidth := s.Width / 2
	agentMargin := s.Width / float64(s.AgentsPerSideCount+1)

	for _, side := range []float64{-1, 1} {
		fromX := halfLength * side
		toX := -fromX
		for i := 0; i < s.AgentsPerSideCount; i++ {
			y := -halfWidth + float64(i+1)*agentMargin
			pos := geom.Vec2{X: fromX, Y: y}
			target := geom.Vec2{X: toX, Y: y}
			store.CreateAgent(AgentParams{
				Position:  pos,
				Target:    target,
				Direction: geom.Vec2{X: -side, Y: 0},
			})
		}
	}

	lengthMargin := agentMargin
	navmesh := RectNavmesh(geom.Zero, s.Length+2*lengthMargin, s.Width)
	return store, navmesh
}

type scenarioEnvelope struct {
	Scenario           string  `json:"scenario"`
	AgentsCount        int     `json:"agents_count"`
	Radius             float64 `json:"radius"`
	AgentsPerSideCount int     `json:"agents_per_side_count"`
	Length             float64 `json:"length"`
	Width              float64 `json:"width"`
}

// DecodeScenario decodes a scenario JSON document. Unknown discriminator
// values and malformed JSON both silently fall back to EmptyScenario, never
// returning an error to the caller; it is the caller's responsibility to
// log the fallback if it cares (see sim.Universe.LoadScenario).
func DecodeScenario(data []byte) (scenario Scenario, fellBack bool) {
	var env scenarioEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return EmptyScenario{}, true
	}
	switch env.Scenario {
	case "Empty":
		return EmptyScenario{}, false
	case "AntipodalCircle":
		return AntipodalCircleScenario{AgentsCount: env.AgentsCount, Radius: env.Radius}, false
	case "Corridor":
		return CorridorScenario{
			AgentsPerSideCount: env.AgentsPerSideCount,
			Length:             env.Length,
			Width:              env.Width,
		}, false
	default:
		return EmptyScenario{}, true
	}
}
