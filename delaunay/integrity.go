package delaunay

import (
	"fmt"

	"github.com/kestrelmesh/trimesh/mesh"
	"github.com/kestrelmesh/trimesh/predicate"
)

// Check runs the post-build invariant audit: every finite triangle is CCW,
// the twin pool is involutive, line-membership flags agree across each
// twin pair, no non-constrained edge is Delaunay-illegal, and the counts of
// non-ghost edges and finite triangles satisfy Euler's formula for a
// triangulated convex hull (3V-H-3 edges, 2V-H-2 triangles, H hull edges).
// It does not check that interior edges have two finite neighbors, nor
// that constraint-index stamps agree across a triangle's edges. It never
// panics; mesh.MustHold is for the cheaper per-mutation checkpoints called
// during construction.
func (b *Builder) Check() []string {
	m := b.Mesh
	var problems []string

	problems = append(problems, m.CheckTwinInvolution()...)

	for _, tri := range b.Triangles() {
		a, bv, c := tri.Vertices(m)
		if predicate.Orient(m.Vertex(a), m.Vertex(bv), m.Vertex(c)) != predicate.CounterClockwise {
			problems = append(problems, fmt.Sprintf("triangle (%d,%d,%d) is not CCW", a, bv, c))
		}
	}

	for _, e := range m.Edges() {
		if m.IsGhostEdge(e) {
			continue
		}
		if b.isIllegal(e) {
			problems = append(problems, fmt.Sprintf("edge %d is Delaunay-illegal", e))
		}
		t := mesh.Twin(e)
		if m.HasFlag(e, mesh.FlagConstraintLineMember) != m.HasFlag(t, mesh.FlagConstraintLineMember) {
			problems = append(problems, fmt.Sprintf("edge %d constraint line-membership disagrees across twin pair", e))
		}
	}

	numV := m.NumVertices()
	numE := 0
	for _, e := range m.Edges() {
		if !mesh.IsGhostVertex(m.Origin(e)) && !mesh.IsGhostVertex(m.Dest(e)) {
			numE++
		}
	}
	numT := len(b.Triangles())
	hull := len(b.PerimeterWalk())
	if numV >= 3 {
		wantE := 3*numV - hull - 3
		wantT := 2*numV - hull - 2
		if numE != wantE {
			problems = append(problems, fmt.Sprintf("edge count %d does not satisfy Euler's formula (want %d for %d vertices, %d hull edges)", numE, wantE, numV, hull))
		}
		if numT != wantT {
			problems = append(problems, fmt.Sprintf("triangle count %d does not satisfy Euler's formula (want %d)", numT, wantT))
		}
	}

	return problems
}
