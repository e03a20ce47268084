package contour

import (
	"math"
	"testing"

	"github.com/kestrelmesh/trimesh/delaunay"
	"github.com/kestrelmesh/trimesh/vertex"
)

func vz(x, y, z float64) vertex.Vertex { return vertex.New(x, y, z, -1) }

func TestContourOfATentTracesAClosedLoop(t *testing.T) {
	b := delaunay.New(delaunay.DefaultOptions())
	pts := []vertex.Vertex{
		vz(0, 0, 0), vz(10, 0, 0), vz(10, 10, 0), vz(0, 10, 0), vz(5, 5, 10),
	}
	for _, p := range pts {
		if _, err := b.InsertVertex(p); err != nil {
			t.Fatalf("inserting %+v: %v", p, err)
		}
	}

	set := BuildContours(b, []float64{5}, Options{})
	if len(set.Lines) == 0 {
		t.Fatalf("expected at least one traced line at the mid-height level")
	}
	closed := 0
	for _, l := range set.Lines {
		if l.Closed {
			closed++
		}
	}
	if closed == 0 {
		t.Fatalf("expected a closed contour ring around the tent's peak")
	}
}

func TestLevelAboveEverythingProducesNoLines(t *testing.T) {
	b := delaunay.New(delaunay.DefaultOptions())
	pts := []vertex.Vertex{vz(0, 0, 0), vz(1, 0, 0), vz(0, 1, 1)}
	for _, p := range pts {
		if _, err := b.InsertVertex(p); err != nil {
			t.Fatalf("inserting %+v: %v", p, err)
		}
	}
	set := BuildContours(b, []float64{100}, Options{})
	if len(set.Lines) != 0 {
		t.Fatalf("expected no lines at a level above every vertex, got %d", len(set.Lines))
	}
}

func TestContourRegionsConserveHullArea(t *testing.T) {
	b := delaunay.New(delaunay.DefaultOptions())
	pts := []vertex.Vertex{
		vz(0, 0, 0), vz(10, 0, 0), vz(10, 10, 0), vz(0, 10, 0), vz(5, 5, 10),
	}
	for _, p := range pts {
		if _, err := b.InsertVertex(p); err != nil {
			t.Fatalf("inserting %+v: %v", p, err)
		}
	}

	set := BuildContours(b, []float64{5}, Options{})
	if len(set.Regions) == 0 {
		t.Fatalf("expected at least one region")
	}
	var total float64
	for _, r := range set.Regions {
		total += r.AdjustedArea
	}
	const hullArea = 100
	if math.Abs(total-hullArea) > 1e-6*hullArea {
		t.Fatalf("sum of adjusted region areas = %v, want %v (hull area)", total, hullArea)
	}
}

// TestFanoutThroughVertexPairsAllSixRays triangulates a regular hexagon
// around a single interior vertex sitting exactly on the contour level,
// with neighbor Z values alternating above and below it. The only valid
// triangulation is a 6-triangle fan through the center, and every one of
// the 6 wedge triangles contributes a segment from the center to a crossing
// point on its hexagon edge — the "fanout" case where more than two contour
// segments meet at a single through-vertex and stitch must pair them up
// rather than stopping at the first match.
func TestFanoutThroughVertexPairsAllSixRays(t *testing.T) {
	b := delaunay.New(delaunay.DefaultOptions())
	if _, err := b.InsertVertex(vz(0, 0, 5)); err != nil {
		t.Fatalf("inserting center: %v", err)
	}
	zs := []float64{0, 10, 0, 10, 0, 10}
	for i, z := range zs {
		angle := float64(i) * math.Pi / 3
		p := vz(math.Cos(angle), math.Sin(angle), z)
		if _, err := b.InsertVertex(p); err != nil {
			t.Fatalf("inserting ring vertex %d: %v", i, err)
		}
	}

	set := BuildContours(b, []float64{5}, Options{})
	if len(set.Lines) != 3 {
		t.Fatalf("expected 3 lines pairing the 6 rays through the fanout vertex, got %d", len(set.Lines))
	}
	for _, l := range set.Lines {
		if len(l.Points) != 3 {
			t.Fatalf("expected each fanout line to pass through the center as its middle point, got %d points", len(l.Points))
		}
		mid := l.Points[1]
		if math.Abs(mid.X) > 1e-6 || math.Abs(mid.Y) > 1e-6 {
			t.Fatalf("expected the fanout vertex at the origin as the line's middle point, got %+v", mid)
		}
	}
}

func TestShoelaceAreaOfUnitSquareIsOne(t *testing.T) {
	sq := []vertex.Vertex{vz(0, 0, 0), vz(1, 0, 0), vz(1, 1, 0), vz(0, 1, 0)}
	if area := shoelace(sq); area != 1 && area != -1 {
		t.Fatalf("expected unit area, got %v", area)
	}
}
