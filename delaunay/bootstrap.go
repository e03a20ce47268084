package delaunay

import (
	"github.com/kestrelmesh/trimesh/mesh"
	"github.com/kestrelmesh/trimesh/predicate"
	"github.com/kestrelmesh/trimesh/vertex"
)

// tryBootstrap accumulates vertices in b.bootstrap until three non-colinear
// ones are known, then builds the starting triangle and its ghost
// perimeter from that triple and replays every other buffered vertex
// through the normal insertion path. No buffered vertex is ever dropped:
// whichever triple happens to resolve the colinearity search, the rest
// still reach the mesh. Returns true once the mesh is bootstrapped
// (possibly by this call, possibly already).
func (b *Builder) tryBootstrap(v vertex.Vertex) (bootstrapped bool, err error) {
	if b.bootstrapped {
		return true, nil
	}

	b.bootstrap = append(b.bootstrap, v)
	if len(b.bootstrap) < 3 {
		return false, nil
	}

	// Look for three non-colinear points among everything buffered so far,
	// keeping the first two fixed and scanning forward for a third, then
	// sliding the window if the whole buffer is colinear.
	for i := 0; i < len(b.bootstrap)-2; i++ {
		for j := i + 1; j < len(b.bootstrap)-1; j++ {
			for k := j + 1; k < len(b.bootstrap); k++ {
				p0, p1, p2 := b.bootstrap[i], b.bootstrap[j], b.bootstrap[k]
				orient := predicate.Orient(p0, p1, p2)
				if orient == predicate.Colinear {
					continue
				}
				if orient == predicate.Clockwise {
					p1, p2 = p2, p1
				}
				b.buildInitialTriangle(p0, p1, p2)
				b.bootstrapped = true

				leftover := make([]vertex.Vertex, 0, len(b.bootstrap)-3)
				for n, p := range b.bootstrap {
					if n == i || n == j || n == k {
						continue
					}
					leftover = append(leftover, p)
				}
				b.bootstrap = nil

				for _, p := range leftover {
					if _, err := b.InsertVertex(p); err != nil {
						return true, err
					}
				}
				return true, nil
			}
		}
	}
	return false, nil
}

// buildInitialTriangle registers p0, p1, p2 (already CCW) as the mesh's
// first triangle and wraps it in a three-wedge ghost perimeter.
func (b *Builder) buildInitialTriangle(p0, p1, p2 vertex.Vertex) {
	m := b.Mesh
	v0 := m.AddVertex(p0)
	v1 := m.AddVertex(p1)
	v2 := m.AddVertex(p2)

	e0 := m.AllocateEdge(v0, v1)
	e1 := m.AllocateEdge(v1, v2)
	e2 := m.AllocateEdge(v2, v0)
	m.SetForward(e0, e1)
	m.SetForward(e1, e2)
	m.SetForward(e2, e0)

	r0 := m.AllocateEdge(mesh.Ghost, v0)
	r1 := m.AllocateEdge(mesh.Ghost, v1)
	r2 := m.AllocateEdge(mesh.Ghost, v2)

	wire := func(t, r, rNext mesh.EdgeID) {
		m.SetForward(t, mesh.Twin(r))
		m.SetForward(mesh.Twin(r), rNext)
		m.SetForward(rNext, t)
	}
	wire(mesh.Twin(e0), r0, r1)
	wire(mesh.Twin(e1), r1, r2)
	wire(mesh.Twin(e2), r2, r0)

	m.SetStartEdge(e0)
}
