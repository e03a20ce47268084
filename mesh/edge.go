package mesh

import "fmt"

// EdgeID is an index into the edge pool. The twin of e is always e XOR 1;
// e is conventionally called the "base" side when e is even.
type EdgeID int

// String renders the raw pool index; it carries no origin/dest information
// by itself since EdgeID has no Mesh to resolve against. Use Mesh.EdgeString
// for a vertex-labeled rendering.
func (e EdgeID) String() string {
	return fmt.Sprintf("Edge#%d", int(e))
}

// NilEdge is the sentinel for "no edge".
const NilEdge EdgeID = -1

// EdgeFlag bits record per-directed-edge constraint state. Flags on the two
// sides of a twin pair are independent slots (each directed edge has its
// own edgeRecord), matching the specification's requirement that border
// index differs per side while line-membership is conventionally mirrored
// by the caller that sets it (MarkConstrained does this).
type EdgeFlag uint8

const (
	FlagConstrained EdgeFlag = 1 << iota
	FlagConstraintLineMember
	FlagConstraintRegionBorder
	FlagConstraintRegionInterior
)

// NoConstraint is the constraint-index value meaning "not part of any
// constraint".
const NoConstraint int32 = -1

type edgeRecord struct {
	origin          int
	next            EdgeID // Forward(e): next edge CCW around the same (left) triangle
	flags           EdgeFlag
	constraintIndex int32
	alive           bool
}

// AllocateEdge allocates a fresh directed-edge pair (e, twin(e)) with
// origin A on the base side and origin B on the twin side, reusing the
// most recently freed pair (LIFO) if one is available. Forward pointers are left
// pointing at the twin pair itself (a self-contained 2-cycle) until the
// caller wires them into a real triangle with SetForward.
func (m *Mesh) AllocateEdge(a, b int) EdgeID {
	var e EdgeID
	if n := len(m.freeList); n > 0 {
		e = m.freeList[n-1]
		m.freeList = m.freeList[:n-1]
	} else {
		e = EdgeID(len(m.edges))
		m.edges = append(m.edges, edgeRecord{}, edgeRecord{})
	}

	base := &m.edges[e]
	twin := &m.edges[e+1]
	*base = edgeRecord{origin: a, alive: true, constraintIndex: NoConstraint}
	*twin = edgeRecord{origin: b, alive: true, constraintIndex: NoConstraint}
	base.next = e + 1
	twin.next = e

	if m.cfg.debugAddEdge != nil {
		m.cfg.debugAddEdge(e)
	}
	return e
}

// FreeEdge releases a directed-edge pair back to the pool. e may name either
// side of the pair; the pair is freed as a whole. No iterator may hold a
// reference to e or Twin(e) across this call; the index may be handed back out by the very
// next AllocateEdge.
func (m *Mesh) FreeEdge(e EdgeID) {
	e = baseOf(e)
	m.edges[e] = edgeRecord{}
	m.edges[e+1] = edgeRecord{}
	m.freeList = append(m.freeList, e)
}

func baseOf(e EdgeID) EdgeID {
	return e &^ 1
}

// Twin returns the oppositely directed edge of the same undirected edge.
func Twin(e EdgeID) EdgeID { return e ^ 1 }

// Origin returns the vertex index (possibly Ghost) at the tail of e.
func (m *Mesh) Origin(e EdgeID) int { return m.edges[e].origin }

// Dest returns the vertex index (possibly Ghost) at the head of e.
func (m *Mesh) Dest(e EdgeID) int { return m.edges[Twin(e)].origin }

// Forward returns the next edge, CCW, around the triangle to the left of
// e: the "forward edge" in the specification's vocabulary.
func (m *Mesh) Forward(e EdgeID) EdgeID { return m.edges[e].next }

// SetForward wires e's forward pointer directly.
func (m *Mesh) SetForward(e, f EdgeID) { m.edges[e].next = f }

// NextDest returns the next edge, CCW, around dest(e) — the edge whose
// origin is dest(e) that immediately follows e in the rotation order
// around that vertex. It is derived from Forward: next_dest(e) =
// twin(forward(e)).
func (m *Mesh) NextDest(e EdgeID) EdgeID { return Twin(m.Forward(e)) }

// EdgeString renders e as its origin and destination vertex indices.
func (m *Mesh) EdgeString(e EdgeID) string {
	return fmt.Sprintf("Edge{%d, %d}", m.Origin(e), m.Dest(e))
}

// SetNextDest wires e's next-around-destination pointer, expressed in
// terms of the stored Forward field via forward(e) = twin(next_dest(e)).
func (m *Mesh) SetNextDest(e, n EdgeID) { m.SetForward(e, Twin(n)) }

// Reverse is the edge before e in the same triangle's CCW cycle
// (equivalently, forward applied twice more for a 3-edge triangle).
func (m *Mesh) Reverse(e EdgeID) EdgeID { return m.Forward(m.Forward(e)) }

// ForwardFromTwin is forward(twin(e)): the next edge around the triangle on
// e's other side.
func (m *Mesh) ForwardFromTwin(e EdgeID) EdgeID { return m.Forward(Twin(e)) }

// IsAlive reports whether e refers to a currently-allocated edge.
func (m *Mesh) IsAlive(e EdgeID) bool {
	return e >= 0 && int(e) < len(m.edges) && m.edges[e].alive
}

// Flags returns e's constraint flag bits.
func (m *Mesh) Flags(e EdgeID) EdgeFlag { return m.edges[e].flags }

// SetFlag sets the given flag bits on e (only e's side, not its twin).
func (m *Mesh) SetFlag(e EdgeID, flag EdgeFlag) { m.edges[e].flags |= flag }

// ClearFlag clears the given flag bits on e.
func (m *Mesh) ClearFlag(e EdgeID, flag EdgeFlag) { m.edges[e].flags &^= flag }

// HasFlag reports whether all bits in flag are set on e.
func (m *Mesh) HasFlag(e EdgeID, flag EdgeFlag) bool { return m.edges[e].flags&flag == flag }

// ConstraintIndex returns the constraint index stamped on e, or
// NoConstraint if e is not part of any constraint's interior/border.
func (m *Mesh) ConstraintIndex(e EdgeID) int32 { return m.edges[e].constraintIndex }

// SetConstraintIndex stamps e with the given constraint index.
func (m *Mesh) SetConstraintIndex(e EdgeID, idx int32) { m.edges[e].constraintIndex = idx }

// MarkConstrained sets FlagConstrained and FlagConstraintLineMember on both
// e and its twin, mirroring the specification's note that line-membership
// is shared across a twin pair even though border/interior stamps are not.
func (m *Mesh) MarkConstrained(e EdgeID) {
	m.SetFlag(e, FlagConstrained|FlagConstraintLineMember)
	m.SetFlag(Twin(e), FlagConstrained|FlagConstraintLineMember)
}

// IsGhostEdge reports whether e's triangle is a ghost triangle: either its
// origin, destination, or apex (dest of forward(e)) is the Ghost sentinel.
func (m *Mesh) IsGhostEdge(e EdgeID) bool {
	if IsGhostVertex(m.Origin(e)) || IsGhostVertex(m.Dest(e)) {
		return true
	}
	return IsGhostVertex(m.Dest(m.Forward(e)))
}
