// Package delaunay implements the incremental Delaunay builder, constraint
// insertion, traversal utilities and integrity checker that sit on top of
// the quad-edge mesh: bootstrap, locate-by-walk, Lawson flip propagation,
// linear/polygon constraint insertion with synthetic-vertex splitting
// (crossed edges are flipped until the constrained segment is present; the
// cavity is not removed and ear-clipped), flood-fill region labeling, and
// the post-build invariant audit.
package delaunay

import (
	"errors"
	"fmt"
)

// Sentinel / structured outcomes for user-input conditions. These are
// never fatal — the mesh is left unchanged and the caller decides what to
// do next.
var (
	// ErrDegenerateInput is returned when every vertex supplied so far is
	// colinear or coincident and an operation requires a bootstrapped mesh.
	ErrDegenerateInput = errors.New("delaunay: all input vertices are colinear or coincident")
)

// DuplicateVertex describes an inserted point that coincides with an
// existing vertex within the mesh's spacing tolerance. InsertVertex does not
// return it as an error: it reports the case as an InsertResult with
// Outcome Duplicate and ExistingIndex set, leaving the mesh unchanged so the
// caller decides whether to merge z.
type DuplicateVertex struct {
	ExistingIndex int
}

func (e *DuplicateVertex) Error() string {
	return fmt.Sprintf("delaunay: duplicate vertex (existing index %d)", e.ExistingIndex)
}

// ConstraintSelfIntersection is returned when two constraints cross at a
// non-vertex point and the crossing is degenerate (a collinear overlap
// spanning infinitely many points) rather than a simple transversal
// crossing, which is instead resolved by inserting a synthetic vertex.
type ConstraintSelfIntersection struct {
	A, B int // vertex indices of the offending segment
}

func (e *ConstraintSelfIntersection) Error() string {
	return fmt.Sprintf("delaunay: constraint self-intersection at segment (%d,%d)", e.A, e.B)
}

// NumericDegeneracy records a predicate evaluation that returned a
// near-zero result with no applicable tie-break rule. Policy is to accept
// it as equality; this type exists for diagnostics, not as a rejection.
type NumericDegeneracy struct {
	Op string
}

func (e *NumericDegeneracy) Error() string {
	return fmt.Sprintf("delaunay: numeric degeneracy in %s", e.Op)
}

// InvariantViolation indicates an implementation bug: mesh integrity
// failed in a way no recoverable policy applies to. Callers should
// terminate or rebuild; see (*Builder).Check for the non-panicking audit and
// mesh.MustHold for the panicking checkpoint assertions.
type InvariantViolation struct {
	Reason string
}

func (e *InvariantViolation) Error() string {
	return "delaunay: invariant violation: " + e.Reason
}
