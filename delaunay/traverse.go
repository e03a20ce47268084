package delaunay

import (
	"fmt"

	"github.com/kestrelmesh/trimesh/mesh"
	"github.com/kestrelmesh/trimesh/vertex"
)

// Triangle names the three directed edges of a finite triangle in CCW
// order, ab being its canonical representative.
type Triangle struct {
	AB, BC, CA mesh.EdgeID
}

// Vertices returns the triangle's three vertex indices in CCW order.
func (t Triangle) Vertices(m *mesh.Mesh) (a, b, c int) {
	return m.Origin(t.AB), m.Origin(t.BC), m.Origin(t.CA)
}

// TriangleString renders a triangle's vertex indices, resolved against m.
func TriangleString(m *mesh.Mesh, t Triangle) string {
	a, b, c := t.Vertices(m)
	return fmt.Sprintf("Triangle{%d, %d, %d}", a, b, c)
}

// Triangles enumerates every finite (non-ghost) triangle exactly once. A
// triangle is visited through its lowest-indexed edge among its three
// directed edges, so the walk never double-counts a triangle reached from
// two different starting edges.
func (b *Builder) Triangles() []Triangle {
	m := b.Mesh
	var out []Triangle
	for _, e := range m.EdgesAndTwins() {
		if m.IsGhostEdge(e) {
			continue
		}
		e1 := m.Forward(e)
		e2 := m.Forward(e1)
		if e < e1 && e < e2 {
			out = append(out, Triangle{AB: e, BC: e1, CA: e2})
		}
	}
	return out
}

// Pinwheel returns the directed edges leaving vertex v in CCW rotation
// order. The rotation formula, twin(reverse(e)), follows edge e into its
// left triangle and back out along the edge sharing v with e's apex.
func (b *Builder) Pinwheel(v int) []mesh.EdgeID {
	m := b.Mesh
	start := findEdgeFrom(m, v)
	if start == mesh.NilEdge {
		return nil
	}
	var out []mesh.EdgeID
	e := start
	for {
		out = append(out, e)
		e = mesh.Twin(m.Reverse(e))
		if e == start || len(out) > (1<<16) {
			break
		}
	}
	return out
}

// findEdgeFrom returns some live directed edge whose origin is v.
func findEdgeFrom(m *mesh.Mesh, v int) mesh.EdgeID {
	for _, e := range m.EdgesAndTwins() {
		if m.Origin(e) == v {
			return e
		}
	}
	return mesh.NilEdge
}

// PerimeterWalk returns the hull edges in CCW order starting from an
// arbitrary one.
func (b *Builder) PerimeterWalk() []mesh.EdgeID {
	m := b.Mesh
	start := mesh.NilEdge
	for _, e := range m.EdgesAndTwins() {
		if m.IsGhostEdge(e) && !mesh.IsGhostVertex(m.Origin(e)) && !mesh.IsGhostVertex(m.Dest(e)) {
			// e is the ghost side; the walk runs on the interior side.
			start = mesh.Twin(e)
			break
		}
	}
	if start == mesh.NilEdge {
		return nil
	}
	var out []mesh.EdgeID
	e := start
	for {
		out = append(out, e)
		e = nextHullEdge(m, e)
		if e == start {
			break
		}
	}
	return out
}

// PointInPolygon performs a ray-cast test against a closed CCW vertex
// loop, returning true for points strictly inside or within tol of the
// boundary.
func PointInPolygon(loop []vertex.Vertex, p vertex.Vertex, tol float64) bool {
	n := len(loop)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, c := loop[j], loop[i]
		if pointOnSegment(a, c, p, tol) {
			return true
		}
		if (a.Y > p.Y) != (c.Y > p.Y) {
			xCross := a.X + (p.Y-a.Y)/(c.Y-a.Y)*(c.X-a.X)
			if p.X < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

func pointOnSegment(a, c, p vertex.Vertex, tol float64) bool {
	dx, dy := c.X-a.X, c.Y-a.Y
	len2 := dx*dx + dy*dy
	if len2 == 0 {
		return false
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / len2
	if t < -1e-12 || t > 1+1e-12 {
		return false
	}
	px := a.X + t*dx
	py := a.Y + t*dy
	ddx, ddy := p.X-px, p.Y-py
	return ddx*ddx+ddy*ddy <= tol*tol
}
