package delaunay

import (
	"github.com/kestrelmesh/trimesh/mesh"
	"github.com/kestrelmesh/trimesh/predicate"
	"github.com/kestrelmesh/trimesh/vertex"
)

// Location describes where a point was found relative to the mesh.
type Location struct {
	// Edge is a directed edge of the containing triangle. If OnEdge, the
	// point lies on Edge itself; if Outside, Edge is a hull edge visible
	// from the point.
	Edge    mesh.EdgeID
	OnEdge  bool
	Outside bool
}

// Locate walks the mesh, starting from the shared start-edge cache, to
// find the triangle (or hull edge) containing p. The walk rule: at each
// edge, if p is to the right, cross to its twin; otherwise advance to the
// forward edge; terminate when p is to the left of (or on) all three edges
// of a triangle.
func (b *Builder) Locate(p vertex.Vertex) (Location, error) {
	if !b.bootstrapped {
		return Location{}, ErrDegenerateInput
	}
	m := b.Mesh
	e := m.StartEdge()
	if e == mesh.NilEdge || !m.IsAlive(e) {
		e = firstLiveEdge(m)
	}

	const maxSteps = 1 << 20
	for steps := 0; steps < maxSteps; steps++ {
		if m.IsGhostEdge(e) {
			// Walked into the ghost: p is outside the hull through the
			// unique real hull edge of this wedge. That edge runs along the
			// ghost side; its twin is the interior-side hull edge p sees.
			hullEdge := realHullEdgeOf(m, e)
			return Location{Edge: mesh.Twin(hullEdge), Outside: true}, nil
		}

		a := m.Vertex(m.Origin(e))
		bb := m.Vertex(m.Dest(e))
		orient := predicate.Orient(a, bb, p)
		if orient == predicate.Clockwise {
			e = mesh.Twin(e)
			continue
		}

		next := m.Forward(e)
		na := m.Vertex(m.Origin(next))
		nb := m.Vertex(m.Dest(next))
		if !m.IsGhostEdge(next) {
			orientNext := predicate.Orient(na, nb, p)
			if orientNext == predicate.Clockwise {
				e = mesh.Twin(next)
				continue
			}
		}

		third := m.Forward(next)
		if !m.IsGhostEdge(third) {
			ta := m.Vertex(m.Origin(third))
			tb := m.Vertex(m.Dest(third))
			orientThird := predicate.Orient(ta, tb, p)
			if orientThird == predicate.Clockwise {
				e = mesh.Twin(third)
				continue
			}
			if orientThird == predicate.Colinear {
				return Location{Edge: third, OnEdge: true}, nil
			}
		}

		if orient == predicate.Colinear {
			return Location{Edge: e, OnEdge: true}, nil
		}
		return Location{Edge: e}, nil
	}
	return Location{}, &InvariantViolation{Reason: "locate exceeded step budget (mesh likely corrupted)"}
}

func firstLiveEdge(m *mesh.Mesh) mesh.EdgeID {
	for _, e := range m.Edges() {
		return e
	}
	return mesh.NilEdge
}

// realHullEdgeOf returns the one edge of ghost wedge e whose origin and
// destination are both real (non-ghost) vertices.
func realHullEdgeOf(m *mesh.Mesh, e mesh.EdgeID) mesh.EdgeID {
	cur := e
	for i := 0; i < 3; i++ {
		if !mesh.IsGhostVertex(m.Origin(cur)) && !mesh.IsGhostVertex(m.Dest(cur)) {
			return cur
		}
		cur = m.Forward(cur)
	}
	return e
}
