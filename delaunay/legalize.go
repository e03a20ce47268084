package delaunay

import (
	"github.com/kestrelmesh/trimesh/mesh"
	"github.com/kestrelmesh/trimesh/predicate"
)

// pushFlip enqueues e as a candidate for legalization.
func (b *Builder) pushFlip(e mesh.EdgeID) {
	b.flipStack = append(b.flipStack, e)
}

// isIllegal reports whether e violates the Delaunay property: it is not a
// hull or constrained edge, and the vertex opposite e on the far triangle
// lies strictly inside the circumcircle of e's own triangle.
func (b *Builder) isIllegal(e mesh.EdgeID) bool {
	m := b.Mesh
	if !m.IsAlive(e) || m.IsGhostEdge(e) || m.HasFlag(e, mesh.FlagConstrained) {
		return false
	}
	t := mesh.Twin(e)
	if m.IsGhostEdge(t) {
		return false
	}
	apex := m.Dest(m.Forward(e))
	opp := m.Dest(m.Forward(t))

	a := m.Vertex(m.Origin(e))
	d := m.Vertex(m.Dest(e))
	apexV := m.Vertex(apex)
	oppV := m.Vertex(opp)

	return predicate.InCircle(a, d, apexV, oppV) == predicate.Inside
}

// flip swaps the diagonal of the quadrilateral formed by e's two
// triangles, replacing edge A-B with D-C (where C, D are e's and twin(e)'s
// opposite apexes) and rewiring the four untouched outer edges. Returns
// the new diagonal's base edge id.
func (b *Builder) flip(e mesh.EdgeID) mesh.EdgeID {
	m := b.Mesh
	t := mesh.Twin(e)
	e1 := m.Forward(e)  // B -> C
	e2 := m.Forward(e1) // C -> A
	f1 := m.Forward(t)  // A -> D
	f2 := m.Forward(f1) // D -> B

	c := m.Dest(e1)
	d := m.Dest(f1)

	wasStart := m.StartEdge() == e || m.StartEdge() == t
	m.FreeEdge(e)

	newDC := m.AllocateEdge(d, c)
	newCD := mesh.Twin(newDC)

	m.SetForward(f1, newDC)
	m.SetForward(newDC, e2)
	m.SetForward(e2, f1)

	m.SetForward(f2, e1)
	m.SetForward(e1, newCD)
	m.SetForward(newCD, f2)

	if wasStart {
		m.SetStartEdge(newDC)
	}

	b.pushFlip(e1)
	b.pushFlip(e2)
	b.pushFlip(f1)
	b.pushFlip(f2)
	return newDC
}

// legalizeAround runs the Lawson flip-propagation loop seeded by the given
// edges: pop an edge, test it, flip if illegal (which pushes its four new
// outer edges back on), until the stack is empty. Each popped edge is
// marked processed once so pathological repeated pushes still terminate.
func (b *Builder) legalizeAround(seeds []mesh.EdgeID) {
	b.flipStack = append(b.flipStack, seeds...)
	processed := make(map[mesh.EdgeID]bool)

	for len(b.flipStack) > 0 {
		e := b.flipStack[len(b.flipStack)-1]
		b.flipStack = b.flipStack[:len(b.flipStack)-1]

		if !b.Mesh.IsAlive(e) {
			continue
		}
		base := e &^ 1
		if processed[base] {
			continue
		}
		processed[base] = true

		if !b.isIllegal(e) {
			continue
		}
		b.flip(e)
	}
}

// IsDelaunay reports whether every non-constrained, non-ghost edge
// satisfies the in-circle test — P1 from the specification's testable
// properties.
func (b *Builder) IsDelaunay() bool {
	for _, e := range b.Mesh.Edges() {
		if b.isIllegal(e) || b.isIllegal(mesh.Twin(e)) {
			return false
		}
	}
	return true
}
