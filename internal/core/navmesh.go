package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/elektrokombinacija/orca-pedestrians/internal/geom"
)

// CellEdge references, from one triangle's perspective, the cell on the
// other side of one of its edges. Direct and Indirect distinguish which of
// the two cells sharing an edge "owns" the canonical vertex order, mirroring
// the half-edge convention of the reference navmesh.
type CellEdge struct {
	Direct bool
	Cell   int
}

// Navmesh is a triangulation of walkable space. Vertices are deduplicated;
// each cell (triangle) references three vertices and, per edge, the
// neighbouring cell (if any).
type Navmesh struct {
	Vertices     []geom.Vec2
	CellsVerts   [][3]int
	CellsEdges   [][3]*CellEdge
}

// CountCells returns the number of triangles in the mesh.
func (m *Navmesh) CountCells() int {
	return len(m.CellsVerts)
}

const pointInTriangleEpsilon = 0.0

// IsInCell reports whether p lies within (or on the boundary of) the
// triangle at cellIndex. Boundary points are included: p is inside when
// the three edge determinants are all non-negative or all non-positive,
// a zero determinant counting for either sign.
func (m *Navmesh) IsInCell(p geom.Vec2, cellIndex int) bool {
	verts := m.CellsVerts[cellIndex]
	a, b, c := m.Vertices[verts[0]], m.Vertices[verts[1]], m.Vertices[verts[2]]

	det1 := geom.Det(b.Sub(a), p.Sub(a))
	det2 := geom.Det(c.Sub(b), p.Sub(b))
	det3 := geom.Det(a.Sub(c), p.Sub(c))

	allNonNeg := det1 >= -pointInTriangleEpsilon && det2 >= -pointInTriangleEpsilon && det3 >= -pointInTriangleEpsilon
	allNonPos := det1 <= pointInTriangleEpsilon && det2 <= pointInTriangleEpsilon && det3 <= pointInTriangleEpsilon
	return allNonNeg || allNonPos
}

// Locate returns the index of a cell containing p, searching every cell
// (the mesh sizes this simulator builds are small enough that a linear
// search never needs the candidate-propagation shortcuts a larger navmesh
// would want).
func (m *Navmesh) Locate(p geom.Vec2) (int, bool) {
	for i := range m.CellsVerts {
		if m.IsInCell(p, i) {
			return i, true
		}
	}
	return 0, false
}

// RenderToOBJ renders the mesh as a Wavefront-OBJ subset: one "v X.XXX
// Y.YYY 0.0" line per vertex (3-decimal fixed point), then one "f i j k"
// line per triangle, with 1-based vertex indices.
func (m *Navmesh) RenderToOBJ() string {
	var b strings.Builder
	for _, v := range m.Vertices {
		fmt.Fprintf(&b, "v %.3f %.3f 0.0\n", v.X, v.Y)
	}
	for _, f := range m.CellsVerts {
		fmt.Fprintf(&b, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1)
	}
	return b.String()
}

// NavmeshBuilder accumulates triangles (in either winding order) and
// produces a deduplicated Navmesh.
type NavmeshBuilder struct {
	cells [][3]geom.Vec2
}

// AddCell appends one triangle, reordering its vertices to counter-clockwise
// if given clockwise.
func (b *NavmeshBuilder) AddCell(v1, v2, v3 geom.Vec2) {
	if geom.Det(v2.Sub(v1), v3.Sub(v1)) < 0 {
		v2, v3 = v3, v2
	}
	b.cells = append(b.cells, [3]geom.Vec2{v1, v2, v3})
}

const vertexDedupeEpsilon = 1e-9

// Build deduplicates shared vertices across accumulated cells and wires up
// per-edge cell adjacency.
func (b *NavmeshBuilder) Build() *Navmesh {
	m := &Navmesh{}

	indexOf := func(v geom.Vec2) int {
		for i, existing := range m.Vertices {
			if math.Abs(existing.X-v.X) < vertexDedupeEpsilon && math.Abs(existing.Y-v.Y) < vertexDedupeEpsilon {
				return i
			}
		}
		m.Vertices = append(m.Vertices, v)
		return len(m.Vertices) - 1
	}

	type edgeKey struct{ a, b int }
	canonical := func(a, b int) (edgeKey, bool) {
		if a < b {
			return edgeKey{a, b}, true
		}
		return edgeKey{b, a}, false
	}
	owner := make(map[edgeKey]int) // canonical edge -> first cell index that saw it

	for _, cell := range b.cells {
		verts := [3]int{indexOf(cell[0]), indexOf(cell[1]), indexOf(cell[2])}
		cellIndex := len(m.CellsVerts)
		m.CellsVerts = append(m.CellsVerts, verts)
		m.CellsEdges = append(m.CellsEdges, [3]*CellEdge{})

		for e := 0; e < 3; e++ {
			a, bIdx := verts[e], verts[(e+1)%3]
			key, direct := canonical(a, bIdx)
			if other, ok := owner[key]; ok {
				m.CellsEdges[cellIndex][e] = &CellEdge{Direct: direct, Cell: other}
				// Wire the reciprocal reference on the first-seen cell too.
				for oe := 0; oe < 3; oe++ {
					oa, ob := m.CellsVerts[other][oe], m.CellsVerts[other][(oe+1)%3]
					if ok, _ := canonical(oa, ob); ok == key {
						m.CellsEdges[other][oe] = &CellEdge{Direct: !direct, Cell: cellIndex}
					}
				}
			} else {
				owner[key] = cellIndex
			}
		}
	}
	return m
}

// UnitSquareNavmesh returns the default axis-aligned unit-square navmesh
// (two triangles), used by New() and the Empty scenario.
func UnitSquareNavmesh() *Navmesh {
	return RectNavmesh(geom.Zero, 1, 1)
}

// RectNavmesh builds a two-triangle rectangular navmesh of the given width
// and height, centred at center.
func RectNavmesh(center geom.Vec2, width, height float64) *Navmesh {
	hw, hh := width/2, height/2
	b := &NavmeshBuilder{}
	v1 := geom.Vec2{X: center.X - hw, Y: center.Y - hh}
	v2 := geom.Vec2{X: center.X + hw, Y: center.Y - hh}
	v3 := geom.Vec2{X: center.X + hw, Y: center.Y + hh}
	v4 := geom.Vec2{X: center.X - hw, Y: center.Y + hh}
	b.AddCell(v1, v2, v3)
	b.AddCell(v1, v3, v4)
	return b.Build()
}
