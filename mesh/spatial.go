package mesh

import (
	"math"

	"github.com/kestrelmesh/trimesh/vertex"
)

// spatialIndex is a uniform hash grid over registered vertices, queried by
// duplicate-vertex detection and constraint edge lookup so they don't have
// to scan every vertex or edge in the pool.
type spatialIndex struct {
	cellSize float64
	cells    map[[2]int][]int
}

func newSpatialIndex(cellSize float64) *spatialIndex {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &spatialIndex{cellSize: cellSize, cells: make(map[[2]int][]int)}
}

func (s *spatialIndex) cellOf(x, y float64) [2]int {
	return [2]int{int(math.Floor(x / s.cellSize)), int(math.Floor(y / s.cellSize))}
}

func (s *spatialIndex) add(idx int, x, y float64) {
	cell := s.cellOf(x, y)
	s.cells[cell] = append(s.cells[cell], idx)
}

// near returns every indexed vertex whose cell overlaps a square of the
// given radius around (x, y). It is a coarse candidate filter: callers
// still need an exact distance check.
func (s *spatialIndex) near(x, y, radius float64) []int {
	if radius < s.cellSize {
		radius = s.cellSize
	}
	min := s.cellOf(x-radius, y-radius)
	max := s.cellOf(x+radius, y+radius)

	var out []int
	for cy := min[1]; cy <= max[1]; cy++ {
		for cx := min[0]; cx <= max[0]; cx++ {
			out = append(out, s.cells[[2]int{cx, cy}]...)
		}
	}
	return out
}

// NearbyVertices returns the indices of every registered vertex within
// (at least) radius of (x, y), using the mesh's spatial hash grid rather
// than scanning the full vertex list.
func (m *Mesh) NearbyVertices(x, y, radius float64) []int {
	return m.index.near(x, y, radius)
}

func (m *Mesh) indexVertex(idx int, v vertex.Vertex) {
	m.index.add(idx, v.X, v.Y)
}
