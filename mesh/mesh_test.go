package mesh

import (
	"testing"

	"github.com/kestrelmesh/trimesh/vertex"
)

// buildTriangle wires a single finite CCW triangle a->b->c->a by hand,
// exercising AllocateEdge + SetForward exactly the way the incremental
// builder does for the bootstrap triangle.
func buildTriangle(m *Mesh, a, b, c int) (ab, bc, ca EdgeID) {
	ab = m.AllocateEdge(a, b)
	bc = m.AllocateEdge(b, c)
	ca = m.AllocateEdge(c, a)
	m.SetForward(ab, bc)
	m.SetForward(bc, ca)
	m.SetForward(ca, ab)
	return
}

func TestAllocateEdgeTwinByToggle(t *testing.T) {
	m := New()
	a := m.AddVertex(vertex.New(0, 0, 0, 0))
	b := m.AddVertex(vertex.New(1, 0, 0, 1))
	e := m.AllocateEdge(a, b)

	if Twin(e) != e^1 {
		t.Fatalf("expected twin-by-toggle")
	}
	if m.Origin(e) != a || m.Dest(e) != b {
		t.Fatalf("origin/dest mismatch")
	}
	if m.Origin(Twin(e)) != b || m.Dest(Twin(e)) != a {
		t.Fatalf("twin origin/dest mismatch")
	}
}

func TestTriangleForwardCycle(t *testing.T) {
	m := New()
	a := m.AddVertex(vertex.New(0, 0, 0, 0))
	b := m.AddVertex(vertex.New(1, 0, 0, 1))
	c := m.AddVertex(vertex.New(0, 1, 0, 2))
	ab, bc, ca := buildTriangle(m, a, b, c)

	if m.Forward(ab) != bc || m.Forward(bc) != ca || m.Forward(ca) != ab {
		t.Fatalf("expected a 3-cycle of forward pointers")
	}
	if m.Forward(m.Forward(m.Forward(ab))) != ab {
		t.Fatalf("forward^3 should return to the start edge")
	}
	if m.Reverse(ab) != ca {
		t.Fatalf("expected reverse(ab) == ca, got %v", m.Reverse(ab))
	}
}

func TestNextDestDerivedFromForward(t *testing.T) {
	m := New()
	a := m.AddVertex(vertex.New(0, 0, 0, 0))
	b := m.AddVertex(vertex.New(1, 0, 0, 1))
	c := m.AddVertex(vertex.New(0, 1, 0, 2))
	ab, bc, _ := buildTriangle(m, a, b, c)

	if got := m.NextDest(ab); got != Twin(bc) {
		t.Fatalf("next_dest(ab) = %v, want twin(bc) = %v", got, Twin(bc))
	}
	// forward(e) == twin(next_dest(e))
	if m.Forward(ab) != Twin(m.NextDest(ab)) {
		t.Fatalf("forward/next_dest relation violated")
	}
}

func TestFreeEdgeThenReuse(t *testing.T) {
	m := New()
	a := m.AddVertex(vertex.New(0, 0, 0, 0))
	b := m.AddVertex(vertex.New(1, 0, 0, 1))
	c := m.AddVertex(vertex.New(0, 1, 0, 2))

	e1 := m.AllocateEdge(a, b)
	m.FreeEdge(e1)
	e2 := m.AllocateEdge(b, c)

	if e2 != e1 {
		t.Fatalf("expected freed index to be reused immediately, got e1=%v e2=%v", e1, e2)
	}
	if m.IsAlive(e1) == false {
		t.Fatalf("reused edge should be alive")
	}
}

func TestFlagsIndependentPerSide(t *testing.T) {
	m := New()
	a := m.AddVertex(vertex.New(0, 0, 0, 0))
	b := m.AddVertex(vertex.New(1, 0, 0, 1))
	e := m.AllocateEdge(a, b)

	m.SetConstraintIndex(e, 3)
	m.SetConstraintIndex(Twin(e), 7)

	if m.ConstraintIndex(e) != 3 || m.ConstraintIndex(Twin(e)) != 7 {
		t.Fatalf("expected independent constraint indices per side")
	}

	m.MarkConstrained(e)
	if !m.HasFlag(e, FlagConstrained) || !m.HasFlag(Twin(e), FlagConstrained) {
		t.Fatalf("expected MarkConstrained to set both sides")
	}
}

func TestEdgesIteratorOnlyBaseSide(t *testing.T) {
	m := New()
	a := m.AddVertex(vertex.New(0, 0, 0, 0))
	b := m.AddVertex(vertex.New(1, 0, 0, 1))
	m.AllocateEdge(a, b)

	edges := m.Edges()
	if len(edges) != 1 {
		t.Fatalf("expected 1 base edge, got %d", len(edges))
	}
	if edges[0]%2 != 0 {
		t.Fatalf("expected base edge to be even-indexed")
	}
	if len(m.EdgesAndTwins()) != 2 {
		t.Fatalf("expected 2 directed edges")
	}
}

func TestGetBoundsAndSpacing(t *testing.T) {
	m := New()
	m.AddVertex(vertex.New(0, 0, 0, 0))
	m.AddVertex(vertex.New(10, 10, 0, 1))

	minX, minY, maxX, maxY := m.GetBounds()
	if minX != 0 || minY != 0 || maxX != 10 || maxY != 10 {
		t.Fatalf("unexpected bounds: %v %v %v %v", minX, minY, maxX, maxY)
	}
	if m.GetNominalPointSpacing() <= 0 {
		t.Fatalf("expected a positive nominal spacing estimate")
	}
}

func TestCheckTwinInvolutionCleanMesh(t *testing.T) {
	m := New()
	a := m.AddVertex(vertex.New(0, 0, 0, 0))
	b := m.AddVertex(vertex.New(1, 0, 0, 1))
	c := m.AddVertex(vertex.New(0, 1, 0, 2))
	buildTriangle(m, a, b, c)

	if reasons := m.CheckTwinInvolution(); len(reasons) != 0 {
		t.Fatalf("expected no violations, got %v", reasons)
	}
}
