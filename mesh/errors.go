package mesh

import "errors"

// Sentinel errors returned by mesh operations. Structured, non-fatal
// outcomes (a duplicate vertex, a degenerate input) are returned as values
// alongside one of these; a mesh invariant failure is never one of these —
// see InvariantViolation.
var (
	// ErrNotBootstrapped is returned by any operation that requires the
	// mesh to already hold a non-degenerate starting triangle.
	ErrNotBootstrapped = errors.New("trimesh: mesh is not bootstrapped")
	// ErrDegenerateInput is returned when every vertex supplied to the
	// bootstrap buffer is colinear or coincident.
	ErrDegenerateInput = errors.New("trimesh: all input vertices are colinear or coincident")
	// ErrInvalidEdge is returned when an EdgeID outside the pool's live
	// range is dereferenced.
	ErrInvalidEdge = errors.New("trimesh: invalid edge id")
	// ErrInvalidVertex is returned when a vertex index outside the
	// registry's range is dereferenced.
	ErrInvalidVertex = errors.New("trimesh: invalid vertex id")
)

// InvariantViolation reports a failed internal consistency check: a bug in
// the engine, not a problem with caller input. It is returned (never a
// sentinel, since callers generally want the specific reason) but it is
// also safe to panic with — see MustHold in integrity.go, which delaunay's
// hull extension uses at a checkpoint that would otherwise only be caught
// by a later, harder-to-localize Check() call.
type InvariantViolation struct {
	Reason string
}

func (e *InvariantViolation) Error() string {
	return "trimesh: invariant violation: " + e.Reason
}
