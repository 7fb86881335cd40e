package core

import (
	"testing"

	"github.com/elektrokombinacija/orca-pedestrians/internal/geom"
)

func TestUnitSquareNavmeshRendersExpectedOBJ(t *testing.T) {
	m := UnitSquareNavmesh()
	want := "v -0.500 -0.500 0.0\n" +
		"v 0.500 -0.500 0.0\n" +
		"v 0.500 0.500 0.0\n" +
		"v -0.500 0.500 0.0\n" +
		"f 1 2 3\n" +
		"f 1 3 4\n"
	if got := m.RenderToOBJ(); got != want {
		t.Errorf("RenderToOBJ() = %q, want %q", got, want)
	}
}

func TestRectNavmeshMatchesAntipodalCircleConvention(t *testing.T) {
	// A radius-10 antipodal circle uses a square of side 3R = 30 centred
	// at the origin, exactly as the reference implementation's own
	// integration test expects.
	m := RectNavmesh(geom.Zero, 30, 30)
	want := "v -15.000 -15.000 0.0\n" +
		"v 15.000 -15.000 0.0\n" +
		"v 15.000 15.000 0.0\n" +
		"v -15.000 15.000 0.0\n" +
		"f 1 2 3\n" +
		"f 1 3 4\n"
	if got := m.RenderToOBJ(); got != want {
		t.Errorf("RenderToOBJ() = %q, want %q", got, want)
	}
}

func TestNavmeshLocate(t *testing.T) {
	m := UnitSquareNavmesh()
	if idx, ok := m.Locate(geom.Vec2{X: 0, Y: 0}); !ok || idx < 0 {
		t.Errorf("Locate(origin) failed, want a cell containing it")
	}
	if _, ok := m.Locate(geom.Vec2{X: 100, Y: 100}); ok {
		t.Errorf("Locate(100,100) succeeded, want no containing cell")
	}
}

func TestNavmeshBuilderDedupesVertices(t *testing.T) {
	b := &NavmeshBuilder{}
	b.AddCell(geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 1, Y: 0}, geom.Vec2{X: 1, Y: 1})
	b.AddCell(geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 1, Y: 1}, geom.Vec2{X: 0, Y: 1})
	m := b.Build()
	if len(m.Vertices) != 4 {
		t.Errorf("len(Vertices) = %d, want 4 (shared vertices deduplicated)", len(m.Vertices))
	}
	if m.CountCells() != 2 {
		t.Errorf("CountCells() = %d, want 2", m.CountCells())
	}
}

func TestNavmeshBuilderReordersClockwiseTriangles(t *testing.T) {
	b := &NavmeshBuilder{}
	// Clockwise winding.
	b.AddCell(geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 0, Y: 1}, geom.Vec2{X: 1, Y: 0})
	m := b.Build()
	verts := m.CellsVerts[0]
	a, bb, c := m.Vertices[verts[0]], m.Vertices[verts[1]], m.Vertices[verts[2]]
	if geom.Det(bb.Sub(a), c.Sub(a)) < 0 {
		t.Errorf("triangle not reordered to CCW: %v %v %v", a, bb, c)
	}
}
