// Package draw holds the Gio shape primitives the viewer uses to render
// agents and the navmesh.
package draw

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/orca-pedestrians/internal/geom"
	"github.com/elektrokombinacija/orca-pedestrians/internal/vis/interact"
)

// ColorAgent is the fill color of an agent's body disk.
var ColorAgent = color.NRGBA{R: 100, G: 200, B: 255, A: 255}

// ColorHeading is the color of the line marking an agent's facing
// direction.
var ColorHeading = color.NRGBA{R: 255, G: 255, B: 255, A: 220}

// ColorVelocity is the color of the tick marking an agent's current
// velocity vector.
var ColorVelocity = color.NRGBA{R: 255, G: 210, B: 80, A: 220}

// ColorNavmesh is the color of the navmesh wireframe.
var ColorNavmesh = color.NRGBA{R: 90, G: 90, B: 100, A: 255}

// DrawAgent draws one pedestrian disk at position, with a heading line and
// a velocity tick, scaled by radius in world units.
func DrawAgent(gtx layout.Context, position, direction, velocity geom.Vec2, radius float64, camera *interact.Camera) {
	cx, cy := camera.WorldToScreen(position.X, position.Y)
	screenRadius := float32(radius) * camera.Zoom

	drawFilledCircle(gtx, cx, cy, screenRadius, ColorAgent)

	headingLen := screenRadius * 1.6
	hx := cx + float32(direction.X)*headingLen
	hy := cy + float32(direction.Y)*headingLen
	drawLine(gtx, cx, cy, hx, hy, 2, ColorHeading)

	if speed := velocity.Norm(); speed > 1e-6 {
		velLen := screenRadius * 1.2
		vx := cx + float32(velocity.X/speed)*velLen
		vy := cy + float32(velocity.Y/speed)*velLen
		drawLine(gtx, cx, cy, vx, vy, 1, ColorVelocity)
	}
}

// DrawNavmeshWireframe draws the three edges of every triangle of the
// navmesh; an edge shared by two triangles is drawn twice.
func DrawNavmeshWireframe(gtx layout.Context, vertices []geom.Vec2, cellsVerts [][3]int, camera *interact.Camera) {
	toScreen := func(v geom.Vec2) (float32, float32) {
		return camera.WorldToScreen(v.X, v.Y)
	}
	for _, tri := range cellsVerts {
		a, b, c := vertices[tri[0]], vertices[tri[1]], vertices[tri[2]]
		ax, ay := toScreen(a)
		bx, by := toScreen(b)
		cx, cy := toScreen(c)
		drawLine(gtx, ax, ay, bx, by, 1, ColorNavmesh)
		drawLine(gtx, bx, by, cx, cy, 1, ColorNavmesh)
		drawLine(gtx, cx, cy, ax, ay, 1, ColorNavmesh)
	}
}

func drawLine(gtx layout.Context, x1, y1, x2, y2, width float32, col color.NRGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 0.1 {
		return
	}

	dx /= length
	dy /= length
	px := -dy * width / 2
	py := dx * width / 2

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(x1+px, y1+py))
	path.LineTo(f32.Pt(x2+px, y2+py))
	path.LineTo(f32.Pt(x2-px, y2-py))
	path.LineTo(f32.Pt(x1-px, y1-py))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

func drawFilledCircle(gtx layout.Context, cx, cy, radius float32, col color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.Move(f32.Pt(cx+radius, cy))

	segments := 16
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := cx + radius*float32(math.Cos(angle))
		y := cy + radius*float32(math.Sin(angle))
		path.Line(f32.Pt(x-path.Pos().X, y-path.Pos().Y))
	}
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}
