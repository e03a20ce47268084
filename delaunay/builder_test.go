package delaunay

import (
	"testing"

	"github.com/kestrelmesh/trimesh/mesh"
	"github.com/kestrelmesh/trimesh/vertex"
)

func v(x, y float64) vertex.Vertex { return vertex.New(x, y, 0, -1) }

func insertAll(t *testing.T, b *Builder, pts []vertex.Vertex) {
	t.Helper()
	for i, p := range pts {
		if _, err := b.InsertVertex(p); err != nil {
			t.Fatalf("inserting point %d %+v: %v", i, p, err)
		}
	}
}

func TestUnitSquareTriangulatesCleanly(t *testing.T) {
	b := New(DefaultOptions())
	insertAll(t, b, []vertex.Vertex{v(0, 0), v(1, 0), v(1, 1), v(0, 1)})

	if !b.IsBootstrapped() {
		t.Fatalf("expected bootstrap after 4 non-colinear points")
	}
	tris := b.Triangles()
	if len(tris) != 2 {
		t.Fatalf("expected 2 triangles for a convex quad, got %d", len(tris))
	}
	if !b.IsDelaunay() {
		t.Fatalf("expected Delaunay property to hold")
	}
	if problems := b.Check(); len(problems) != 0 {
		t.Fatalf("unexpected integrity problems: %v", problems)
	}
}

func TestUnitSquareIsOrderIndependent(t *testing.T) {
	pts := []vertex.Vertex{v(0, 0), v(1, 0), v(1, 1), v(0, 1), v(0.5, 0.5)}
	orders := [][]int{{0, 1, 2, 3, 4}, {4, 3, 2, 1, 0}, {2, 0, 4, 1, 3}}

	var triCounts []int
	for _, order := range orders {
		b := New(DefaultOptions())
		for _, i := range order {
			if _, err := b.InsertVertex(pts[i]); err != nil {
				t.Fatalf("order %v: %v", order, err)
			}
		}
		if !b.IsDelaunay() {
			t.Fatalf("order %v: expected Delaunay property", order)
		}
		triCounts = append(triCounts, len(b.Triangles()))
	}
	for _, c := range triCounts {
		if c != triCounts[0] {
			t.Fatalf("triangle count should not depend on insertion order, got %v", triCounts)
		}
	}
}

func TestSkinnySliverStillLegalizes(t *testing.T) {
	b := New(DefaultOptions())
	insertAll(t, b, []vertex.Vertex{v(0, 0), v(100, 0), v(50, 0.01), v(50, 50)})

	if !b.IsDelaunay() {
		t.Fatalf("expected Delaunay property on a near-degenerate input")
	}
	if problems := b.Check(); len(problems) != 0 {
		t.Fatalf("unexpected integrity problems: %v", problems)
	}
}

func TestOutsideHullGrowsTriangulation(t *testing.T) {
	b := New(DefaultOptions())
	insertAll(t, b, []vertex.Vertex{v(0, 0), v(1, 0), v(0, 1)})
	if len(b.Triangles()) != 1 {
		t.Fatalf("expected single bootstrap triangle")
	}

	if _, err := b.InsertVertex(v(2, 2)); err != nil {
		t.Fatalf("extending hull: %v", err)
	}
	if !b.IsDelaunay() {
		t.Fatalf("expected Delaunay property after hull extension")
	}
	if problems := b.Check(); len(problems) != 0 {
		t.Fatalf("unexpected integrity problems after hull extension: %v", problems)
	}
}

func TestDuplicateVertexIsRejected(t *testing.T) {
	b := New(DefaultOptions())
	insertAll(t, b, []vertex.Vertex{v(0, 0), v(1, 0), v(0, 1)})

	res, err := b.InsertVertex(v(0, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != Duplicate {
		t.Fatalf("expected Duplicate outcome, got %v", res.Outcome)
	}
}

func TestConstrainedSquareWithDiagonal(t *testing.T) {
	b := New(DefaultOptions())
	square := []vertex.Vertex{v(0, 0), v(1, 0), v(1, 1), v(0, 1)}
	insertAll(t, b, square)

	idx, err := b.InsertConstraint(Constraint{
		Kind:     Linear,
		Vertices: []vertex.Vertex{v(0, 0), v(1, 1)},
	})
	if err != nil {
		t.Fatalf("inserting diagonal constraint: %v", err)
	}

	found := false
	for _, e := range b.Mesh.Edges() {
		if b.Mesh.HasFlag(e, mesh.FlagConstrained) && b.Mesh.ConstraintIndex(e) == idx {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the diagonal to be embedded as a constrained edge")
	}
}

func TestPinwheelReturnsToStart(t *testing.T) {
	b := New(DefaultOptions())
	insertAll(t, b, []vertex.Vertex{v(0, 0), v(1, 0), v(1, 1), v(0, 1), v(0.5, 0.5)})

	edges := b.Pinwheel(4) // the interior vertex
	if len(edges) == 0 {
		t.Fatalf("expected a non-empty rotation around an interior vertex")
	}
	for _, e := range edges {
		if b.Mesh.Origin(e) != 4 {
			t.Fatalf("pinwheel edge %d does not originate at vertex 4", e)
		}
	}
}
