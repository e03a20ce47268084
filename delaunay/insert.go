package delaunay

import (
	"github.com/kestrelmesh/trimesh/mesh"
	"github.com/kestrelmesh/trimesh/predicate"
	"github.com/kestrelmesh/trimesh/vertex"
)

// InsertVertex is the single entry point for adding a point to the
// triangulation: it buffers the point until bootstrap, otherwise locates
// it and dispatches to the interior, on-edge, or outside-hull insertion
// path, then restores the Delaunay property by Lawson flipping.
func (b *Builder) InsertVertex(v vertex.Vertex) (InsertResult, error) {
	if !b.bootstrapped {
		ready, err := b.tryBootstrap(v)
		if err != nil {
			return InsertResult{}, err
		}
		if !ready {
			return InsertResult{Outcome: Buffered}, nil
		}
		return InsertResult{Outcome: Inserted}, nil
	}

	loc, err := b.Locate(v)
	if err != nil {
		return InsertResult{}, err
	}

	tol := b.Thresholds().SpacingTolerance()
	if dup, idx := b.duplicateNear(loc, v, tol); dup {
		return InsertResult{Outcome: Duplicate, ExistingIndex: idx}, nil
	}

	var pIdx int
	switch {
	case loc.Outside:
		pIdx = b.extendHull(v, loc.Edge)
	case loc.OnEdge:
		pIdx = b.insertOnEdge(loc.Edge, v)
	default:
		pIdx = b.insertInTriangle(loc.Edge, v)
	}

	b.legalizeAround(b.flipStack)
	b.flipStack = nil
	return InsertResult{Outcome: Inserted, VertexIndex: pIdx}, nil
}

// duplicateNear reports whether v coincides, within tol, with a vertex
// already touching the located triangle/edge. The mesh's spatial index
// narrows the candidate set before falling back to the located
// triangle's own vertices, so a duplicate far from any previously-seen
// point doesn't force a full scan.
func (b *Builder) duplicateNear(loc Location, v vertex.Vertex, tol float64) (bool, int) {
	m := b.Mesh
	candidates := m.NearbyVertices(v.X, v.Y, tol)
	candidates = append(candidates, m.Origin(loc.Edge), m.Dest(loc.Edge))
	if !loc.Outside && !loc.OnEdge {
		candidates = append(candidates, m.Dest(m.Forward(loc.Edge)))
	}
	tol2 := tol * tol
	for _, c := range candidates {
		if mesh.IsGhostVertex(c) {
			continue
		}
		if predicate.SqDist(m.Vertex(c), v) <= tol2 {
			return true, c
		}
	}
	return false, 0
}

// insertInTriangle performs the three-way split: p strictly inside the
// triangle whose base edge is e (A->B, with apex C).
func (b *Builder) insertInTriangle(e mesh.EdgeID, v vertex.Vertex) int {
	m := b.Mesh
	a := m.Origin(e)
	c1 := m.Dest(m.Forward(e))
	e1 := m.Forward(e)
	e2 := m.Forward(e1)

	pIdx := m.AddVertex(v)
	pa := m.AllocateEdge(pIdx, a)
	pb := m.AllocateEdge(pIdx, m.Dest(e))
	pc := m.AllocateEdge(pIdx, c1)

	m.SetForward(e, mesh.Twin(pb))
	m.SetForward(mesh.Twin(pb), pa)
	m.SetForward(pa, e)

	m.SetForward(e1, mesh.Twin(pc))
	m.SetForward(mesh.Twin(pc), pb)
	m.SetForward(pb, e1)

	m.SetForward(e2, mesh.Twin(pa))
	m.SetForward(mesh.Twin(pa), pc)
	m.SetForward(pc, e2)

	m.SetStartEdge(e)
	b.pushFlip(e)
	b.pushFlip(e1)
	b.pushFlip(e2)
	return pIdx
}

// insertOnEdge performs the on-edge split: p lies on edge e (A->B),
// shared by the triangle on e's side (apex C) and, unless e is a hull
// edge, the triangle on twin(e)'s side (apex D). The segment A-B is
// replaced by A-p and p-B; both flanking triangles (and the ghost
// perimeter, if this is a hull edge) are rewired accordingly.
func (b *Builder) insertOnEdge(e mesh.EdgeID, v vertex.Vertex) int {
	m := b.Mesh
	t := mesh.Twin(e)
	a := m.Origin(e)
	bVert := m.Dest(e)
	e1 := m.Forward(e)
	apex1 := m.Dest(e1)
	e2 := m.Forward(e1)

	wasGhost := m.IsGhostEdge(t)
	var f1, f2, h mesh.EdgeID
	var apex2 int
	if !wasGhost {
		f1 = m.Forward(t)
		apex2 = m.Dest(f1)
		f2 = m.Forward(f1)
	} else {
		f1 = m.Forward(t)  // A -> Ghost
		h = m.Forward(f1) // Ghost -> B
	}

	pIdx := m.AddVertex(v)
	ap := m.AllocateEdge(a, pIdx)
	pb := m.AllocateEdge(pIdx, bVert)
	pc := m.AllocateEdge(pIdx, apex1)
	ta := mesh.Twin(ap)
	tb := mesh.Twin(pb)
	cp := mesh.Twin(pc)

	m.FreeEdge(e)

	m.SetForward(ap, pc)
	m.SetForward(pc, e2)
	m.SetForward(e2, ap)

	m.SetForward(pb, e1)
	m.SetForward(e1, cp)
	m.SetForward(cp, pb)

	if !wasGhost {
		pd := m.AllocateEdge(pIdx, apex2)
		dp := mesh.Twin(pd)

		m.SetForward(tb, pd)
		m.SetForward(pd, f2)
		m.SetForward(f2, tb)

		m.SetForward(ta, f1)
		m.SetForward(f1, dp)
		m.SetForward(dp, ta)

		b.pushFlip(f1)
		b.pushFlip(f2)
	} else {
		g := f1 // A -> Ghost, reused as-is
		rp := m.AllocateEdge(mesh.Ghost, pIdx)
		pGhost := mesh.Twin(rp)

		m.SetForward(ta, g)
		m.SetForward(g, rp)
		m.SetForward(rp, ta)

		m.SetForward(tb, pGhost)
		m.SetForward(pGhost, h)
		m.SetForward(h, tb)
	}

	m.SetStartEdge(ap)
	b.pushFlip(e1)
	b.pushFlip(e2)
	return pIdx
}
