// Package alpha extracts alpha shapes from a Delaunay triangulation: the
// triangles all of whose edges are covered by the paired alpha-circle test
// at a given radius, plus the boundary loops that bound them.
package alpha

import (
	"math"
	"sort"

	"github.com/kestrelmesh/trimesh/delaunay"
	"github.com/kestrelmesh/trimesh/mesh"
	"github.com/kestrelmesh/trimesh/predicate"
	"github.com/kestrelmesh/trimesh/vertex"
)

// Definition selects which paired-alpha-circle rule governs whether an edge
// (and, by extension, a triangle through all three of its edges) is
// "covered" at a given radius. Every edge (A, B) with |AB| <= 2*radius has
// two candidate circles of that radius through A and B, one per side; a
// side's opposite apex is tested against both.
type Definition int

const (
	// Classic requires the apex to lie inside both candidate circles.
	Classic Definition = iota
	// Modified requires the apex to lie inside either candidate circle —
	// Tinfour's more permissive definition.
	Modified
	// Either is an alias for Modified and is the default: the more
	// permissive of the two, tolerating near-degenerate input without
	// requiring the caller to pick a side.
	Either
)

// Options configures extraction.
type Options struct {
	Definition Definition
}

// DefaultOptions returns Either, the tolerant default.
func DefaultOptions() Options { return Options{Definition: Either} }

// Part is one connected piece of the alpha shape's boundary: either a
// closed polygon loop or, when its enclosed area is negligible relative
// to the mesh's nominal spacing, a degenerate open line or isolated
// point.
type Part struct {
	Loop      []int // vertex indices, CCW for a polygon
	IsPolygon bool
	Area      float64
	Parent    int // index into Shape.Parts, or -1 for an outer loop
	Children  []int
}

// Shape is the result of an alpha-shape extraction.
type Shape struct {
	Triangles []delaunay.Triangle
	Parts     []Part
}

// ExtractAlphaShape computes the alpha shape of b's triangulation at the
// given radius.
func ExtractAlphaShape(b *delaunay.Builder, radius float64, opts Options) *Shape {
	m := b.Mesh
	th := b.Thresholds()
	all := b.Triangles()

	coveredTri := make(map[mesh.EdgeID]bool, len(all))
	var shapeTris []delaunay.Triangle
	for _, tri := range all {
		if triangleCovered(m, tri, radius, opts.Definition) {
			coveredTri[tri.AB] = true
			shapeTris = append(shapeTris, tri)
		}
	}

	// A border edge is one covered (by the paired alpha-circle test) on at
	// least one side but with at least one side facing an exposed triangle
	// (a triangle that itself has some uncovered edge). The recorded
	// direction keeps the covered triangle on the edge's left, matching
	// nextBorderEdge's rotation convention.
	var border []mesh.EdgeID
	for _, e := range m.Edges() {
		if m.IsGhostEdge(e) {
			// A hull edge whose base side faces the ghost is examined from
			// its interior side.
			e = mesh.Twin(e)
			if m.IsGhostEdge(e) {
				continue
			}
		}
		av, bv := m.Vertex(m.Origin(e)), m.Vertex(m.Dest(e))
		leftApex := m.Vertex(m.Dest(m.Forward(e)))
		leftCoveredEdge := edgeSideCovered(av, bv, leftApex, radius, opts.Definition)
		leftTriCovered := coveredTri[canonicalEdgeOf(m, e)]

		t := mesh.Twin(e)
		if m.IsGhostEdge(t) {
			if leftTriCovered {
				border = append(border, e)
			}
			continue
		}

		rightApex := m.Vertex(m.Dest(m.Forward(t)))
		rightCoveredEdge := edgeSideCovered(av, bv, rightApex, radius, opts.Definition)
		rightTriCovered := coveredTri[canonicalEdgeOf(m, t)]

		coveredOnASide := leftCoveredEdge || rightCoveredEdge
		exposedOnASide := !leftTriCovered || !rightTriCovered
		if !coveredOnASide || !exposedOnASide {
			continue
		}
		if leftTriCovered {
			border = append(border, e)
		} else {
			border = append(border, t)
		}
	}

	parts := traceParts(b, border, th)
	return &Shape{Triangles: shapeTris, Parts: parts}
}

// canonicalEdgeOf returns the AB edge of the triangle tri belongs to, so a
// triangle can be keyed consistently regardless of which of its three
// directed edges produced it.
func canonicalEdgeOf(m *mesh.Mesh, e mesh.EdgeID) mesh.EdgeID {
	e1 := m.Forward(e)
	e2 := m.Forward(e1)
	lowest := e
	if e1 < lowest {
		lowest = e1
	}
	if e2 < lowest {
		lowest = e2
	}
	return lowest
}

func circumradius(a, b, c vertex.Vertex) float64 {
	ab := math.Hypot(b.X-a.X, b.Y-a.Y)
	bc := math.Hypot(c.X-b.X, c.Y-b.Y)
	ca := math.Hypot(a.X-c.X, a.Y-c.Y)
	area2 := math.Abs(predicate.SignedArea(a, b, c))
	if area2 == 0 {
		return math.Inf(1)
	}
	return (ab * bc * ca) / (2 * area2)
}

// triangleCovered reports whether every edge of tri is covered from tri's
// own side — the per-edge alpha-circle test, not a whole-triangle
// circumradius comparison. A triangle with any uncovered edge is "exposed."
func triangleCovered(m *mesh.Mesh, tri delaunay.Triangle, radius float64, def Definition) bool {
	a, bv, c := tri.Vertices(m)
	av, bpv, cv := m.Vertex(a), m.Vertex(bv), m.Vertex(c)
	return edgeSideCovered(av, bpv, cv, radius, def) &&
		edgeSideCovered(bpv, cv, av, radius, def) &&
		edgeSideCovered(cv, av, bpv, radius, def)
}

// edgeSideCovered tests the triangle whose third vertex is apex against the
// two alpha circles of radius through (a, b): covered under Modified/Either
// if apex lies inside either circle, under Classic if it lies inside both.
// An edge longer than 2*radius admits no such circle and is never covered.
func edgeSideCovered(a, b, apex vertex.Vertex, radius float64, def Definition) bool {
	if radius <= 0 {
		return false
	}
	if predicate.SqDist(a, b) > 4*radius*radius {
		return false
	}
	o1, o2, ok := alphaCircleCenters(a, b, radius)
	if !ok {
		return false
	}
	r2 := radius * radius
	in1 := predicate.SqDist(apex, o1) <= r2
	in2 := predicate.SqDist(apex, o2) <= r2
	if def == Classic {
		return in1 && in2
	}
	return in1 || in2
}

// alphaCircleCenters returns the centers of the two circles of the given
// radius passing through a and b, symmetric about the segment a-b. The
// perpendicular offset direction is normalized against whichever of dx, dy
// has the larger magnitude, avoiding a near-zero divisor; a discriminant
// that is negative only by round-off is clamped to zero rather than
// rejecting an otherwise-valid chord.
func alphaCircleCenters(a, b vertex.Vertex, radius float64) (o1, o2 vertex.Vertex, ok bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	chord2 := dx*dx + dy*dy
	if chord2 == 0 {
		return vertex.Vertex{}, vertex.Vertex{}, false
	}
	disc := radius*radius - chord2/4
	if disc < 0 {
		if disc < -1e-9*radius*radius {
			return vertex.Vertex{}, vertex.Vertex{}, false
		}
		disc = 0
	}
	d := math.Sqrt(disc)
	mx, my := (a.X+b.X)/2, (a.Y+b.Y)/2

	var nx, ny float64
	if math.Abs(dx) >= math.Abs(dy) {
		slope := dy / dx
		inv := 1 / math.Sqrt(1+slope*slope)
		nx, ny = -slope*inv, inv
	} else {
		slope := dx / dy
		inv := 1 / math.Sqrt(1+slope*slope)
		nx, ny = inv, -slope*inv
	}
	o1 = vertex.New(mx+d*nx, my+d*ny, 0, -1)
	o2 = vertex.New(mx-d*nx, my-d*ny, 0, -1)
	return o1, o2, true
}

// traceParts walks the border edges (each oriented with the covered
// region on its left) into closed loops, classifying each as a polygon or
// a degenerate line/point part by comparing its enclosed area against the
// mesh's nominal-spacing-derived area-zero tolerance, and nests parts by
// point-in-polygon containment among larger-to-smaller areas.
func traceParts(b *delaunay.Builder, border []mesh.EdgeID, th predicate.Thresholds) []Part {
	m := b.Mesh
	used := make(map[mesh.EdgeID]bool, len(border))
	onBorder := make(map[mesh.EdgeID]bool, len(border))
	for _, e := range border {
		onBorder[e] = true
	}

	var parts []Part
	for _, start := range border {
		if used[start] {
			continue
		}
		var loopEdges []mesh.EdgeID
		e := start
		for {
			used[e] = true
			loopEdges = append(loopEdges, e)
			next := nextBorderEdge(b, e, onBorder)
			if next == mesh.NilEdge || next == start {
				break
			}
			e = next
		}

		loop := make([]int, len(loopEdges))
		verts := make([]vertex.Vertex, len(loopEdges))
		for i, le := range loopEdges {
			loop[i] = m.Origin(le)
			verts[i] = m.Vertex(loop[i])
		}
		area := polygonArea(verts)
		isPolygon := len(loop) >= 3 && math.Abs(area) > th.AreaZero()
		parts = append(parts, Part{Loop: loop, IsPolygon: isPolygon, Area: math.Abs(area), Parent: -1})
	}

	nestParts(m, parts)
	return parts
}

// nextBorderEdge rotates around dest(e) starting just after twin(e),
// returning the first border edge encountered.
func nextBorderEdge(b *delaunay.Builder, e mesh.EdgeID, onBorder map[mesh.EdgeID]bool) mesh.EdgeID {
	m := b.Mesh
	cur := mesh.Twin(e)
	for steps := 0; steps < (1 << 16); steps++ {
		cur = mesh.Twin(m.Reverse(cur))
		if onBorder[cur] {
			return cur
		}
		if cur == mesh.Twin(e) {
			break
		}
	}
	return mesh.NilEdge
}

func polygonArea(loop []vertex.Vertex) float64 {
	n := len(loop)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += loop[i].X*loop[j].Y - loop[j].X*loop[i].Y
	}
	return sum / 2
}

// nestParts assigns each part's Parent to the smallest enclosing
// polygonal part, by testing its first vertex for containment against
// candidates sorted from largest area to smallest.
func nestParts(m *mesh.Mesh, parts []Part) {
	order := make([]int, len(parts))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return parts[order[i]].Area > parts[order[j]].Area })

	for _, pi := range order {
		if !parts[pi].IsPolygon || len(parts[pi].Loop) == 0 {
			continue
		}
		probe := m.Vertex(parts[pi].Loop[0])
		best := -1
		var bestArea float64
		for _, cj := range order {
			if cj == pi || !parts[cj].IsPolygon {
				continue
			}
			loopVerts := vertsOf(m, parts[cj].Loop)
			if !contains(loopVerts, probe) {
				continue
			}
			if best == -1 || parts[cj].Area < bestArea {
				best = cj
				bestArea = parts[cj].Area
			}
		}
		parts[pi].Parent = best
		if best >= 0 {
			parts[best].Children = append(parts[best].Children, pi)
		}
	}
}

func vertsOf(m *mesh.Mesh, loop []int) []vertex.Vertex {
	out := make([]vertex.Vertex, len(loop))
	for i, idx := range loop {
		out[i] = m.Vertex(idx)
	}
	return out
}

func contains(loop []vertex.Vertex, p vertex.Vertex) bool {
	return delaunay.PointInPolygon(loop, p, 0)
}
