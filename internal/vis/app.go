// Package vis implements a Gio-based live viewer for the crowd simulator:
// it loads a scenario, steps the simulation every frame, and draws agent
// disks and the navmesh wireframe under pan/zoom.
package vis

import (
	"image/color"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/orca-pedestrians/internal/geom"
	"github.com/elektrokombinacija/orca-pedestrians/internal/sim"
	"github.com/elektrokombinacija/orca-pedestrians/internal/vis/draw"
	"github.com/elektrokombinacija/orca-pedestrians/internal/vis/interact"
)

// defaultScenario is the scenario NewApp loads.
const defaultScenario = `{"scenario": "AntipodalCircle", "agents_count": 8, "radius": 12.0}`

// defaultTimeStep is the dt passed to Universe.Update every frame when the
// app is playing.
const defaultTimeStep = 1.0 / 60.0

// App is the viewer application: a Universe, a camera, and the playing
// state needed to step and render it.
type App struct {
	universe *sim.Universe
	camera   *interact.Camera
	playing  bool
}

// NewApp creates a viewer preloaded with the default scenario.
func NewApp() *App {
	u := sim.New(sim.UniverseConfig{})
	_ = u.LoadScenario([]byte(defaultScenario)) // defaultScenario is a fixed, well-formed constant

	return &App{
		universe: u,
		camera:   interact.NewCamera(),
		playing:  true,
	}
}

// Run starts the application event loop.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops
	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKeyEvent(ke)
				}
			}
			event.Op(gtx.Ops, tag)

			for {
				ev, ok := gtx.Event(pointer.Filter{Target: tag, Kinds: pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll})
				if !ok {
					break
				}
				if pe, ok := ev.(pointer.Event); ok {
					a.camera.HandleEvent(gtx, pe)
				}
			}

			if a.playing {
				_ = a.universe.Update(defaultTimeStep) // defaultTimeStep is a fixed positive constant
			}

			a.layout(gtx)
			e.Frame(gtx.Ops)

			if a.playing {
				w.Invalidate()
			}
		}
	}
}

func (a *App) handleKeyEvent(e key.Event) {
	switch e.Name {
	case key.NameSpace:
		a.playing = !a.playing
	case "R":
		a.camera.Reset()
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, color.NRGBA{R: 20, G: 20, B: 24, A: 255})

	vertices, cellsVerts := a.universe.NavmeshGeometry()
	draw.DrawNavmeshWireframe(gtx, vertices, cellsVerts, a.camera)

	agents := a.universe.RenderAgents()
	for i := 0; i+7 <= len(agents); i += 7 {
		position := geom.Vec2{X: agents[i+0], Y: agents[i+1]}
		direction := geom.Vec2{X: agents[i+2], Y: agents[i+3]}
		velocity := geom.Vec2{X: agents[i+4], Y: agents[i+5]}
		radius := agents[i+6]
		draw.DrawAgent(gtx, position, direction, velocity, radius, a.camera)
	}

	return layout.Dimensions{Size: gtx.Constraints.Max}
}
