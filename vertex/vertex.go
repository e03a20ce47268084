// Package vertex defines the geometric identity carried by every point the
// triangulation engine operates on.
package vertex

import "fmt"

// Flag bits record auxiliary, non-geometric state on a Vertex. They are
// packed into a single byte so a Vertex stays small and cheap to copy.
const (
	// FlagSynthetic marks a vertex the engine inserted itself (a Steiner
	// point created while resolving a constraint crossing), as opposed to
	// one supplied by the caller.
	FlagSynthetic uint8 = 1 << iota
	// FlagConstraintMember marks a vertex that is an endpoint of at least
	// one input constraint.
	FlagConstraintMember
)

// Vertex is an immutable geometric identity: a coordinate triple, a
// caller-supplied index, and a small bit of auxiliary state.
//
// Index is opaque to the engine — it need not be dense or unique across
// input sources. Color is a byte the application may use however it likes
// (e.g. to tag a classification); the engine never interprets it.
type Vertex struct {
	X, Y, Z float64
	Index   int32
	flags   uint8
	Color   uint8
}

// New constructs a Vertex with no flags set.
func New(x, y, z float64, index int32) Vertex {
	return Vertex{X: x, Y: y, Z: z, Index: index}
}

// IsSynthetic reports whether the engine created this vertex at a constraint
// intersection rather than receiving it from the caller.
func (v Vertex) IsSynthetic() bool { return v.flags&FlagSynthetic != 0 }

// IsConstraintMember reports whether this vertex is an endpoint of some
// input constraint.
func (v Vertex) IsConstraintMember() bool { return v.flags&FlagConstraintMember != 0 }

// WithFlag returns a copy of v with the given flag bit set.
func (v Vertex) WithFlag(flag uint8) Vertex {
	v.flags |= flag
	return v
}

// HasFlag reports whether the given flag bit is set.
func (v Vertex) HasFlag(flag uint8) bool {
	return v.flags&flag != 0
}

// Equal2D reports whether two vertices share the same (x, y) coordinate
// exactly. Tolerant comparison belongs to the predicate package, which
// knows the mesh's nominal spacing; this is the cheap exact check used by
// map keys and dedup fast paths.
func (v Vertex) Equal2D(o Vertex) bool {
	return v.X == o.X && v.Y == o.Y
}

// String renders a vertex's coordinates and index for debugging.
func (v Vertex) String() string {
	return fmt.Sprintf("Vertex(%.6g, %.6g, %.6g)#%d", v.X, v.Y, v.Z, v.Index)
}
