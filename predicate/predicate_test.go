package predicate

import (
	"testing"

	"github.com/kestrelmesh/trimesh/vertex"
)

func v(x, y float64) vertex.Vertex { return vertex.New(x, y, 0, 0) }

func TestOrientBasic(t *testing.T) {
	cases := []struct {
		a, b, c vertex.Vertex
		want    Orientation
	}{
		{v(0, 0), v(1, 0), v(0, 1), CounterClockwise},
		{v(0, 0), v(0, 1), v(1, 0), Clockwise},
		{v(0, 0), v(1, 0), v(2, 0), Colinear},
	}
	for _, c := range cases {
		if got := Orient(c.a, c.b, c.c); got != c.want {
			t.Errorf("Orient(%v,%v,%v) = %v, want %v", c.a, c.b, c.c, got, c.want)
		}
	}
}

func TestOrientNearDegenerateFallsBackExact(t *testing.T) {
	a := v(0, 0)
	b := v(1e8, 0)
	c := v(2e8, 1e-10)
	got := Orient(a, b, c)
	if got != CounterClockwise && got != Colinear {
		t.Fatalf("expected a stable classification, got %v", got)
	}
}

func TestInCircleUnitCircle(t *testing.T) {
	a, b, c := v(1, 0), v(0, 1), v(-1, 0)
	inside := v(0, 0.5)
	outside := v(0, 5)
	onCircle := v(0, -1)

	if got := InCircle(a, b, c, inside); got != Inside {
		t.Errorf("expected inside, got %v", got)
	}
	if got := InCircle(a, b, c, outside); got != Outside {
		t.Errorf("expected outside, got %v", got)
	}
	if got := InCircle(a, b, c, onCircle); got != On {
		t.Errorf("expected on, got %v", got)
	}
}

func TestSignedAreaSign(t *testing.T) {
	ccw := SignedArea(v(0, 0), v(1, 0), v(0, 1))
	cw := SignedArea(v(0, 0), v(0, 1), v(1, 0))
	if ccw <= 0 {
		t.Errorf("expected positive area for CCW triangle, got %v", ccw)
	}
	if cw >= 0 {
		t.Errorf("expected negative area for CW triangle, got %v", cw)
	}
}

func TestThresholdsScaleWithMagnitude(t *testing.T) {
	small := NewThresholds(1e-3, 1e-4)
	large := NewThresholds(1e6, 1e3)

	if small.Colinearity() >= large.Colinearity() {
		t.Errorf("expected colinearity tolerance to grow with coordinate magnitude")
	}
	if small.AreaZero() >= large.AreaZero() {
		t.Errorf("expected area-zero tolerance to grow with spacing")
	}
}

func TestThresholdsRejectNonPositiveInputs(t *testing.T) {
	th := NewThresholds(0, -5)
	if th.NominalMagnitude <= 0 || th.NominalSpacing <= 0 {
		t.Fatalf("expected non-positive inputs to be replaced, got %+v", th)
	}
}
