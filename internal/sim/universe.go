// Package sim wires the geometry, agent store and ORCA pipeline together
// into the single tick loop a host application drives: load a scenario,
// call Update once per frame, and render the result.
package sim

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/elektrokombinacija/orca-pedestrians/internal/algo"
	"github.com/elektrokombinacija/orca-pedestrians/internal/core"
	"github.com/elektrokombinacija/orca-pedestrians/internal/geom"
	"go.uber.org/zap"
)

// ErrNonPositiveDt is returned by Update when called with dt <= 0: the
// preferred-velocity computation divides by dt, so a non-positive value
// would corrupt every agent's velocity with Inf/NaN instead of failing loudly.
var ErrNonPositiveDt = errors.New("sim: dt must be positive")

// ErrAgentIndexOutOfRange is returned by RenderDebugInfo when asked about an
// agent index outside the current population.
var ErrAgentIndexOutOfRange = errors.New("sim: agent index out of range")

// debugTimeHorizon is the ORCA time horizon used when recomputing
// constraints for RenderDebugInfo. It is intentionally wider than the
// horizon Update uses, favoring a more conservative picture for inspection.
const debugTimeHorizon = 10.0

// updateTimeHorizon is the ORCA time horizon Update uses every tick.
const updateTimeHorizon = 5.0

// UniverseConfig configures a Universe. The zero value is valid: it yields
// a no-op logger.
type UniverseConfig struct {
	Logger *zap.SugaredLogger
}

// Metrics counts events across the lifetime of a Universe, independent of
// whatever scenario is currently loaded.
type Metrics struct {
	Ticks               int `json:"ticks"`
	ScenarioLoads       int `json:"scenario_loads"`
	ScenarioFallbacks   int `json:"scenario_fallbacks"`
	RelaxedFallbackHits int `json:"relaxed_fallback_hits"`
	SafetyFallbackHits  int `json:"safety_fallback_hits"`
}

// Universe holds the current agent population, navmesh and scenario, and
// runs the per-tick simulation pipeline.
type Universe struct {
	mu sync.Mutex

	logger *zap.SugaredLogger

	agents   *core.AgentStore
	navmesh  *core.Navmesh
	scenario core.Scenario
	lastDt   float64

	metrics Metrics
}

// New returns a Universe initialized to the empty scenario.
func New(cfg UniverseConfig) *Universe {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	u := &Universe{logger: logger}
	empty := core.EmptyScenario{}
	u.agents, u.navmesh = empty.Generate()
	u.scenario = empty
	return u
}

// LoadScenario decodes a scenario document and replaces the current agent
// population and navmesh with its output. Malformed or unrecognized
// documents fall back to the empty scenario; that fallback is logged, not
// returned as an error, matching the decoder's own never-fail contract.
// LoadScenario itself always returns nil: it is error-returning to match the
// host-visible interface's shape and leave room for a future validating
// decoder, not because any input currently fails it.
func (u *Universe) LoadScenario(data []byte) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	scenario, fellBack := core.DecodeScenario(data)
	if fellBack {
		u.metrics.ScenarioFallbacks++
		u.logger.Warnw("scenario decode fell back to empty scenario", "bytes", len(data))
	}
	u.scenario = scenario
	u.agents, u.navmesh = scenario.Generate()
	u.lastDt = 0
	u.metrics.ScenarioLoads++
	u.logger.Debugw("scenario loaded", "agents", u.agents.Len())
	return nil
}

// Update advances the simulation by dt seconds: computes neighborhoods,
// solves ORCA for every agent, integrates positions and updates headings.
// It returns ErrNonPositiveDt without touching any state if dt <= 0, since
// the preferred-velocity computation divides by dt.
func (u *Universe) Update(dt float64) error {
	if dt <= 0 {
		return ErrNonPositiveDt
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	neighborhoods := core.ComputeNeighborhoods(u.agents)
	preferred := algo.ReachTargetVelocities(u.agents, dt)
	results := algo.Solve(u.agents, neighborhoods, preferred, updateTimeHorizon, dt)

	for i, r := range results {
		u.agents.Velocities[i] = r.Velocity
		switch r.Fallback {
		case algo.FallbackRelaxed:
			u.metrics.RelaxedFallbackHits++
		case algo.FallbackSafety:
			u.metrics.SafetyFallbackHits++
			u.logger.Debugw("agent fell back to safety velocity", "agent", i)
		}
	}

	algo.Integrate(u.agents, dt)
	algo.UpdateHeadings(u.agents)

	u.lastDt = dt
	u.metrics.Ticks++
	return nil
}

// CountAgents returns the number of agents currently in the population.
func (u *Universe) CountAgents() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.agents.Len()
}

// RenderAgents flattens every agent's (position, direction, velocity,
// radius) into one slice, 7 floats per agent, in agent-index order.
func (u *Universe) RenderAgents() []float64 {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := make([]float64, 0, u.agents.Len()*7)
	for i := 0; i < u.agents.Len(); i++ {
		p, d, v, r := u.agents.Positions[i], u.agents.Directions[i], u.agents.Velocities[i], u.agents.Radii[i]
		out = append(out, p.X, p.Y, d.X, d.Y, v.X, v.Y, r)
	}
	return out
}

// RenderNavmesh renders the current navmesh as a Wavefront OBJ document.
func (u *Universe) RenderNavmesh() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.navmesh.RenderToOBJ()
}

// NavmeshGeometry returns the current navmesh's vertices and triangle
// vertex-index triples, for callers (such as the viewer) that need to draw
// it directly instead of parsing the OBJ text RenderNavmesh produces.
func (u *Universe) NavmeshGeometry() ([]geom.Vec2, [][3]int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.navmesh.Vertices, u.navmesh.CellsVerts
}

type vec2JSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type agentJSON struct {
	Position            vec2JSON `json:"position"`
	Velocity            vec2JSON `json:"velocity"`
	Target              vec2JSON `json:"target"`
	DesiredSpeed        float64  `json:"desired_speed"`
	MaximumSpeed        float64  `json:"maximum_speed"`
	MaximumAcceleration float64  `json:"maximum_acceleration"`
	Radius              float64  `json:"radius"`
}

type debugInfoJSON struct {
	Agent           agentJSON     `json:"agent"`
	OrcaConstraints [][2]vec2JSON `json:"orca_constraints"`
}

func toVec2JSON(v geom.Vec2) vec2JSON { return vec2JSON{X: v.X, Y: v.Y} }

// RenderDebugInfo renders the focal agent's current state plus the ORCA
// constraints it would face, recomputed at the wider debugTimeHorizon, as a
// JSON document. An out-of-range index or a marshal failure yields a JSON
// error object instead of panicking.
func (u *Universe) RenderDebugInfo(idxAgent int) string {
	u.mu.Lock()
	defer u.mu.Unlock()

	if idxAgent < 0 || idxAgent >= u.agents.Len() {
		return fmt.Sprintf(`{"error": %q}`, fmt.Errorf("%w: %d", ErrAgentIndexOutOfRange, idxAgent).Error())
	}

	info := debugInfoJSON{
		Agent: agentJSON{
			Position:            toVec2JSON(u.agents.Positions[idxAgent]),
			Velocity:            toVec2JSON(u.agents.Velocities[idxAgent]),
			Target:              toVec2JSON(u.agents.Targets[idxAgent]),
			DesiredSpeed:        u.agents.DesiredSpeeds[idxAgent],
			MaximumSpeed:        u.agents.MaximumSpeeds[idxAgent],
			MaximumAcceleration: u.agents.MaximumAccelerations[idxAgent],
			Radius:              u.agents.Radii[idxAgent],
		},
		OrcaConstraints: [][2]vec2JSON{},
	}

	if u.lastDt > 0 {
		neighborhoods := core.ComputeNeighborhoods(u.agents)
		preferred := algo.ReachTargetVelocities(u.agents, u.lastDt)
		constraints := algo.ConstraintsForAgent(u.agents, idxAgent, neighborhoods[idxAgent], preferred[idxAgent], debugTimeHorizon, u.lastDt)
		for _, c := range constraints {
			info.OrcaConstraints = append(info.OrcaConstraints, [2]vec2JSON{toVec2JSON(c.Origin), toVec2JSON(c.Direction)})
		}
	}

	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}

// Metrics returns a snapshot of the tick/fallback/scenario counters
// accumulated since the Universe was created.
func (u *Universe) Metrics() Metrics {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.metrics
}

// ExportMetrics writes the current metrics snapshot to path as JSON.
func (u *Universe) ExportMetrics(path string) error {
	metrics := u.Metrics()

	data, err := json.MarshalIndent(metrics, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}
