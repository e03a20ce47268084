package alpha

import (
	"testing"

	"github.com/kestrelmesh/trimesh/delaunay"
	"github.com/kestrelmesh/trimesh/vertex"
)

func v(x, y float64) vertex.Vertex { return vertex.New(x, y, 0, -1) }

func buildSquare(t *testing.T) *delaunay.Builder {
	t.Helper()
	b := delaunay.New(delaunay.DefaultOptions())
	for _, p := range []vertex.Vertex{v(0, 0), v(1, 0), v(1, 1), v(0, 1)} {
		if _, err := b.InsertVertex(p); err != nil {
			t.Fatalf("inserting %+v: %v", p, err)
		}
	}
	return b
}

func TestLargeRadiusCoversEverything(t *testing.T) {
	b := buildSquare(t)
	shape := ExtractAlphaShape(b, 1000, DefaultOptions())
	if len(shape.Triangles) != len(b.Triangles()) {
		t.Fatalf("expected every triangle covered at a huge radius, got %d of %d", len(shape.Triangles), len(b.Triangles()))
	}
	if len(shape.Parts) != 1 {
		t.Fatalf("expected a single boundary loop, got %d", len(shape.Parts))
	}
	if !shape.Parts[0].IsPolygon {
		t.Fatalf("expected the square's boundary to classify as a polygon")
	}
}

func TestZeroRadiusCoversNothing(t *testing.T) {
	b := buildSquare(t)
	shape := ExtractAlphaShape(b, 0, Options{Definition: Classic})
	if len(shape.Triangles) != 0 {
		t.Fatalf("expected no triangle covered at radius 0, got %d", len(shape.Triangles))
	}
}

func TestCircumradiusOfRightTriangleIsHalfHypotenuse(t *testing.T) {
	r := circumradius(v(0, 0), v(1, 0), v(0, 1))
	want := 0.5 * 1.4142135623730951 // hypotenuse / 2
	if diff := r - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("circumradius = %v, want %v", r, want)
	}
}
