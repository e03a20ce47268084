package delaunay

import (
	"math"

	"github.com/kestrelmesh/trimesh/mesh"
	"github.com/kestrelmesh/trimesh/predicate"
	"github.com/kestrelmesh/trimesh/vertex"
)

// ConstraintKind distinguishes an open polyline from a closed region
// boundary.
type ConstraintKind int

const (
	Linear ConstraintKind = iota
	Polygon
)

// Constraint describes a user-supplied linear feature or polygon boundary
// to be embedded into the triangulation as a chain of constrained edges.
type Constraint struct {
	Kind     ConstraintKind
	Vertices []vertex.Vertex
	AppData  interface{}
}

// InsertConstraint inserts every vertex of c (deduplicating against
// existing ones), embeds each consecutive edge (closing the loop for a
// Polygon), and for a Polygon also flood-fills the interior, stamping
// FlagConstraintRegionInterior and the returned constraint index on every
// triangle edge inside the boundary. Returns the constraint's index into
// b.constraints.
func (b *Builder) InsertConstraint(c Constraint) (int32, error) {
	idx := int32(len(b.constraints))
	b.constraints = append(b.constraints, c)

	indices := make([]int, len(c.Vertices))
	for i, v := range c.Vertices {
		v = v.WithFlag(vertex.FlagConstraintMember)
		res, err := b.InsertVertex(v)
		if err != nil {
			return idx, err
		}
		switch res.Outcome {
		case Duplicate:
			indices[i] = res.ExistingIndex
		default:
			indices[i] = res.VertexIndex
		}
	}

	n := len(indices)
	last := n
	if c.Kind == Linear {
		last = n - 1
	}
	for i := 0; i < last; i++ {
		a := indices[i]
		bIdx := indices[(i+1)%n]
		if a == bIdx {
			continue
		}
		if err := b.insertSegment(a, bIdx, idx); err != nil {
			return idx, err
		}
	}

	if c.Kind == Polygon {
		b.floodFillRegion(indices, idx)
	}

	if b.opts.RestoreConformityOnConstraint {
		b.restoreConformity()
	}
	return idx, nil
}

// restoreConformity re-runs Lawson flip propagation over every
// non-constrained edge in the mesh. insertSegment already legalizes the
// edges it directly touches; this is the belt-and-suspenders pass the
// configuration flag asks for, catching any edge elsewhere in the mesh
// whose circumcircle a constraint's synthetic vertices or segment flips
// happened to violate.
func (b *Builder) restoreConformity() {
	m := b.Mesh
	seeds := make([]mesh.EdgeID, 0, len(m.Edges()))
	for _, e := range m.Edges() {
		if m.HasFlag(e, mesh.FlagConstrained) {
			continue
		}
		seeds = append(seeds, e)
	}
	b.legalizeAround(seeds)
	b.flipStack = nil
}

// insertSegment embeds the constrained edge a->b, recursively splitting at
// any existing constrained edge it properly crosses and flipping the
// non-constrained edges it crosses until the direct edge exists.
func (b *Builder) insertSegment(a, bIdx int, constraintIdx int32) error {
	if direct := b.findEdge(a, bIdx); direct != mesh.NilEdge {
		b.Mesh.MarkConstrained(direct)
		b.Mesh.SetConstraintIndex(direct, constraintIdx)
		b.Mesh.SetConstraintIndex(mesh.Twin(direct), constraintIdx)
		return nil
	}

	// A vertex already sitting exactly on the open segment a-b (the
	// "single-segment-through-a-row" case, a run of colinear input points)
	// is snapped onto the constraint via two zero-length sub-segments
	// rather than being crossed over: recurse on a->mid and mid->b, each of
	// which is a direct edge the instant mid is itself a mesh vertex.
	if mid, ok := b.onSegmentVertex(a, bIdx); ok {
		if err := b.insertSegment(a, mid, constraintIdx); err != nil {
			return err
		}
		return b.insertSegment(mid, bIdx, constraintIdx)
	}

	crossed, err := b.crossedEdges(a, bIdx)
	if err != nil {
		return err
	}

	for len(crossed) > 0 {
		e := crossed[0]
		crossed = crossed[1:]
		if !b.Mesh.IsAlive(e) {
			continue
		}

		if b.Mesh.HasFlag(e, mesh.FlagConstrained) {
			av := b.Mesh.Vertex(a)
			bv := b.Mesh.Vertex(bIdx)
			p, q := b.Mesh.Origin(e), b.Mesh.Dest(e)
			pv, qv := b.Mesh.Vertex(p), b.Mesh.Vertex(q)
			ix, iy, ok := segmentIntersection(av, bv, pv, qv)
			if !ok {
				return &ConstraintSelfIntersection{A: p, B: q}
			}
			synth := vertex.New(ix, iy, 0, -1).WithFlag(vertex.FlagSynthetic).WithFlag(vertex.FlagConstraintMember)
			res, err := b.InsertVertex(synth)
			if err != nil {
				return err
			}
			sIdx := res.VertexIndex
			if res.Outcome == Duplicate {
				sIdx = res.ExistingIndex
			}
			if err := b.insertSegment(p, sIdx, b.Mesh.ConstraintIndex(e)); err != nil {
				return err
			}
			if err := b.insertSegment(sIdx, q, b.Mesh.ConstraintIndex(e)); err != nil {
				return err
			}
			if err := b.insertSegment(a, sIdx, constraintIdx); err != nil {
				return err
			}
			return b.insertSegment(sIdx, bIdx, constraintIdx)
		}

		if !convexQuad(b.Mesh, e) {
			crossed = append(crossed, e)
			continue
		}
		newDiag := b.flip(e)
		if segmentCrossesEdge(b.Mesh, a, bIdx, newDiag) {
			crossed = append(crossed, newDiag)
		}
	}

	if direct := b.findEdge(a, bIdx); direct != mesh.NilEdge {
		b.Mesh.MarkConstrained(direct)
		b.Mesh.SetConstraintIndex(direct, constraintIdx)
		b.Mesh.SetConstraintIndex(mesh.Twin(direct), constraintIdx)
	}
	b.legalizeAround(b.flipStack)
	b.flipStack = nil
	return nil
}

// findEdge returns the directed edge a->b if one currently exists.
func (b *Builder) findEdge(a, bIdx int) mesh.EdgeID {
	m := b.Mesh
	for _, e := range m.EdgesAndTwins() {
		if m.Origin(e) == a && m.Dest(e) == bIdx {
			return e
		}
	}
	return mesh.NilEdge
}

// crossedEdges walks from a toward b, returning every live edge whose
// segment the open segment a-b properly crosses.
func (b *Builder) crossedEdges(a, bIdx int) ([]mesh.EdgeID, error) {
	m := b.Mesh
	av := m.Vertex(a)
	bv := m.Vertex(bIdx)

	fan := b.Pinwheel(a)
	var entry mesh.EdgeID = mesh.NilEdge
	for _, e := range fan {
		if m.IsGhostEdge(e) {
			continue
		}
		e1 := m.Forward(e)
		p1 := m.Vertex(m.Dest(e))
		p2 := m.Vertex(m.Dest(e1))
		o1 := predicate.Orient(av, p1, bv)
		o2 := predicate.Orient(av, p2, bv)
		if o1 != predicate.CounterClockwise && o2 != predicate.Clockwise {
			entry = e1
			break
		}
	}
	if entry == mesh.NilEdge {
		return nil, &InvariantViolation{Reason: "constraint insertion could not locate an entry triangle"}
	}

	var out []mesh.EdgeID
	cur := entry
	for steps := 0; steps < (1 << 16); steps++ {
		if m.Dest(cur) == bIdx || m.Origin(cur) == bIdx {
			break
		}
		p := m.Vertex(m.Origin(cur))
		q := m.Vertex(m.Dest(cur))
		if segmentsProperlyIntersect(av, bv, p, q) {
			out = append(out, cur)
			t := mesh.Twin(cur)
			apex := m.Dest(m.Forward(t))
			apexV := m.Vertex(apex)
			if predicate.Orient(av, bv, apexV) == predicate.CounterClockwise {
				cur = m.Forward(m.Forward(t))
			} else {
				cur = m.Forward(t)
			}
			continue
		}
		break
	}
	return out, nil
}

func segmentCrossesEdge(m *mesh.Mesh, a, bIdx int, e mesh.EdgeID) bool {
	av, bv := m.Vertex(a), m.Vertex(bIdx)
	p, q := m.Vertex(m.Origin(e)), m.Vertex(m.Dest(e))
	return segmentsProperlyIntersect(av, bv, p, q)
}

func segmentsProperlyIntersect(a, b, c, d vertex.Vertex) bool {
	o1 := predicate.Orient(a, b, c)
	o2 := predicate.Orient(a, b, d)
	o3 := predicate.Orient(c, d, a)
	o4 := predicate.Orient(c, d, b)
	return o1 != o2 && o3 != o4 && o1 != predicate.Colinear && o2 != predicate.Colinear
}

// convexQuad reports whether the quadrilateral formed by e's two
// triangles is strictly convex, the precondition for flipping e without
// producing an inverted triangle.
func convexQuad(m *mesh.Mesh, e mesh.EdgeID) bool {
	t := mesh.Twin(e)
	a := m.Vertex(m.Origin(e))
	c := m.Vertex(m.Dest(m.Forward(e)))
	d := m.Vertex(m.Dest(m.Forward(t)))
	bv := m.Vertex(m.Dest(e))
	return predicate.Orient(a, c, d) == predicate.CounterClockwise &&
		predicate.Orient(bv, d, c) == predicate.CounterClockwise
}

// onSegmentVertex returns the mesh vertex nearest a that lies strictly
// between a and b, exactly on the line a-b (within the mesh's colinearity
// tolerance), if any. The mesh's spatial index narrows the search to a disc
// around the segment's midpoint rather than scanning every vertex.
func (b *Builder) onSegmentVertex(a, bIdx int) (int, bool) {
	m := b.Mesh
	av, bv := m.Vertex(a), m.Vertex(bIdx)
	mx, my := (av.X+bv.X)/2, (av.Y+bv.Y)/2
	half := math.Sqrt(predicate.SqDist(av, bv)) / 2

	best := -1
	bestT := math.Inf(1)
	for _, c := range m.NearbyVertices(mx, my, half) {
		if c == a || c == bIdx || mesh.IsGhostVertex(c) {
			continue
		}
		cv := m.Vertex(c)
		if predicate.Orient(av, bv, cv) != predicate.Colinear {
			continue
		}
		t := paramAlong(av, bv, cv)
		if t <= 0 || t >= 1 {
			continue
		}
		if t < bestT {
			bestT, best = t, c
		}
	}
	return best, best >= 0
}

// paramAlong returns the parameter t such that p = a + t*(b-a), assuming p
// is already known to be colinear with a and b.
func paramAlong(a, b, p vertex.Vertex) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	if dx*dx >= dy*dy {
		return (p.X - a.X) / dx
	}
	return (p.Y - a.Y) / dy
}

// segmentIntersection returns the intersection point of segments a-b and
// p-q, assumed to properly cross.
func segmentIntersection(a, b, p, q vertex.Vertex) (x, y float64, ok bool) {
	rX, rY := b.X-a.X, b.Y-a.Y
	sX, sY := q.X-p.X, q.Y-p.Y
	denom := rX*sY - rY*sX
	if denom == 0 {
		return 0, 0, false
	}
	t := ((p.X-a.X)*sY - (p.Y-a.Y)*sX) / denom
	return a.X + t*rX, a.Y + t*rY, true
}

// floodFillRegion walks the triangulation inward from the polygon
// boundary named by loopIdx, stamping every interior edge with
// FlagConstraintRegionInterior and constraintIdx.
func (b *Builder) floodFillRegion(loopIdx []int, constraintIdx int32) {
	m := b.Mesh
	n := len(loopIdx)
	var seed mesh.EdgeID = mesh.NilEdge
	for i := 0; i < n; i++ {
		a, c := loopIdx[i], loopIdx[(i+1)%n]
		e := b.findEdge(a, c)
		if e == mesh.NilEdge {
			continue
		}
		m.SetFlag(e, mesh.FlagConstraintRegionBorder)
		m.SetConstraintIndex(e, constraintIdx)
		inward := e
		if m.IsGhostEdge(e) {
			continue
		}
		// The interior side is whichever of e's two triangles lies to the
		// left of the boundary edge as the loop was wound (CCW).
		if predicate.Orient(m.Vertex(a), m.Vertex(c), interiorProbe(m, e)) != predicate.CounterClockwise {
			inward = mesh.Twin(e)
		}
		if !m.IsGhostEdge(inward) {
			seed = inward
		}
	}
	if seed == mesh.NilEdge {
		return
	}

	visited := make(map[mesh.EdgeID]bool)
	stack := []mesh.EdgeID{seed}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		base := e &^ 1
		if visited[base] || !m.IsAlive(e) || m.IsGhostEdge(e) {
			continue
		}
		visited[base] = true
		m.SetConstraintIndex(e, constraintIdx)
		m.SetFlag(e, mesh.FlagConstraintRegionInterior)

		for _, edge := range []mesh.EdgeID{e, m.Forward(e), m.Forward(m.Forward(e))} {
			if m.HasFlag(edge, mesh.FlagConstrained) {
				continue
			}
			stack = append(stack, mesh.Twin(edge))
		}
	}
}

// interiorProbe returns a point strictly inside e's left triangle, used to
// decide which side of a boundary edge is "interior".
func interiorProbe(m *mesh.Mesh, e mesh.EdgeID) vertex.Vertex {
	a := m.Vertex(m.Origin(e))
	c := m.Vertex(m.Dest(e))
	apex := m.Vertex(m.Dest(m.Forward(e)))
	return vertex.New((a.X+c.X+apex.X)/3, (a.Y+c.Y+apex.Y)/3, 0, -1)
}
