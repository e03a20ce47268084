package vertex

import "testing"

func TestNewHasNoFlags(t *testing.T) {
	v := New(1, 2, 3, 7)
	if v.IsSynthetic() || v.IsConstraintMember() {
		t.Fatalf("fresh vertex should carry no flags, got %+v", v)
	}
	if v.X != 1 || v.Y != 2 || v.Z != 3 || v.Index != 7 {
		t.Fatalf("unexpected fields: %+v", v)
	}
}

func TestWithFlagIsImmutable(t *testing.T) {
	v := New(0, 0, 0, 0)
	w := v.WithFlag(FlagSynthetic)

	if v.IsSynthetic() {
		t.Fatalf("original vertex must not be mutated by WithFlag")
	}
	if !w.IsSynthetic() {
		t.Fatalf("expected copy to carry the synthetic flag")
	}
}

func TestWithFlagCombines(t *testing.T) {
	v := New(0, 0, 0, 0).WithFlag(FlagSynthetic).WithFlag(FlagConstraintMember)
	if !v.HasFlag(FlagSynthetic) || !v.HasFlag(FlagConstraintMember) {
		t.Fatalf("expected both flags set, got %+v", v)
	}
}

func TestEqual2DIgnoresZAndIndex(t *testing.T) {
	a := New(1, 2, 10, 1)
	b := New(1, 2, -99, 2)
	if !a.Equal2D(b) {
		t.Fatalf("expected Equal2D to ignore z and index")
	}
	c := New(1, 2.0001, 10, 1)
	if a.Equal2D(c) {
		t.Fatalf("expected Equal2D to be an exact comparison")
	}
}
