package delaunay

import (
	"github.com/kestrelmesh/trimesh/mesh"
	"github.com/kestrelmesh/trimesh/predicate"
	"github.com/kestrelmesh/trimesh/vertex"
)

// nextHullEdge returns the hull edge following e (origin A, dest B) in CCW
// hull order — the edge B->C for the next hull vertex C — navigating
// purely through the ghost ring via twin/forward composition.
func nextHullEdge(m *mesh.Mesh, e mesh.EdgeID) mesh.EdgeID {
	t := mesh.Twin(e)
	g := m.Forward(t)
	h := m.Forward(g)
	gNext := mesh.Twin(h)
	hNext := m.Forward(gNext)
	tNext := m.Forward(hNext)
	return mesh.Twin(tNext)
}

// prevHullEdge returns the hull edge preceding e in CCW hull order.
func prevHullEdge(m *mesh.Mesh, e mesh.EdgeID) mesh.EdgeID {
	tPrev := m.Forward(mesh.Twin(m.Forward(mesh.Twin(e))))
	return mesh.Twin(tPrev)
}

// visibleFromOutside reports whether p sees hull edge e "from outside":
// p lies on or to the right of the directed edge origin(e)->dest(e).
func visibleFromOutside(m *mesh.Mesh, e mesh.EdgeID, p vertex.Vertex) bool {
	a := m.Vertex(m.Origin(e))
	b := m.Vertex(m.Dest(e))
	return predicate.Orient(a, b, p) != predicate.CounterClockwise
}

// extendHull inserts p, known to lie outside the current convex hull, by
// fanning new triangles across the maximal run of hull edges visible from
// p and re-closing the ghost ring around the two new boundary edges.
// hullHint is any hull edge the caller has reason to believe is near p
// (typically the edge locate() was crossing into the ghost through).
func (b *Builder) extendHull(p vertex.Vertex, hullHint mesh.EdgeID) int {
	m := b.Mesh
	start := hullHint
	for !visibleFromOutside(m, start, p) {
		start = nextHullEdge(m, start)
	}

	// Expand backward and forward to the maximal visible run.
	lo := start
	for visibleFromOutside(m, prevHullEdge(m, lo), p) {
		lo = prevHullEdge(m, lo)
	}
	hi := start
	for visibleFromOutside(m, nextHullEdge(m, hi), p) {
		hi = nextHullEdge(m, hi)
	}

	// Collect the chain of visible hull edges lo..hi and the hull vertices
	// they span, V0..Vn.
	var chain []mesh.EdgeID
	for e := lo; ; e = nextHullEdge(m, e) {
		chain = append(chain, e)
		if e == hi {
			break
		}
	}

	type capture struct{ gSide, rNext mesh.EdgeID }
	caps := make([]capture, len(chain))
	for j, e := range chain {
		t := mesh.Twin(e)
		g := m.Forward(t) // Vj -> Ghost
		r := m.Forward(g) // Ghost -> V(j+1)
		caps[j] = capture{gSide: g, rNext: r}
	}
	rZero := mesh.Twin(caps[0].gSide) // Ghost -> V0

	vertices := make([]int, len(chain)+1)
	for j, e := range chain {
		vertices[j] = m.Origin(e)
	}
	vertices[len(chain)] = m.Dest(chain[len(chain)-1])

	pIdx := m.AddVertex(p)
	rp := m.AllocateEdge(mesh.Ghost, pIdx)
	spokes := make([]mesh.EdgeID, len(vertices))
	for i, vIdx := range vertices {
		spokes[i] = m.AllocateEdge(pIdx, vIdx)
	}

	for j, e := range chain {
		t := mesh.Twin(e)
		lj := mesh.Twin(spokes[j])
		rj := spokes[j+1]
		m.SetForward(t, lj)
		m.SetForward(lj, rj)
		m.SetForward(rj, t)
		b.pushFlip(t)
	}

	gV0 := mesh.Twin(rZero)
	m.SetForward(spokes[0], gV0)
	m.SetForward(gV0, rp)
	m.SetForward(rp, spokes[0])

	rVn := caps[len(caps)-1].rNext
	last := len(vertices) - 1
	m.SetForward(mesh.Twin(spokes[last]), mesh.Twin(rp))
	m.SetForward(mesh.Twin(rp), rVn)
	m.SetForward(rVn, mesh.Twin(spokes[last]))

	// Every interior chain vertex Vk (1 <= k < len(chain)) owns exactly one
	// ghost pool pair, the undirected "Ghost-Vk" edge: it surfaces as
	// caps[k-1].rNext (Ghost->Vk, the previous wedge's forward pointer) and
	// as Twin(caps[k-1].rNext) == caps[k].gSide (Vk->Ghost, the following
	// wedge's own g). Freeing the pair once, via rNext, frees both sides;
	// freeing gSide again on top would double-free the same pool slot.
	for j := 1; j < len(chain); j++ {
		mesh.MustHold(mesh.Twin(caps[j-1].rNext) == caps[j].gSide,
			"extendHull: ghost pair mismatch at interior vertex %d", j)
		m.FreeEdge(caps[j-1].rNext)
	}

	m.SetStartEdge(mesh.Twin(spokes[0]))
	return pIdx
}
