// Package mesh implements the quad-edge half-edge pool the triangulation
// engine mutates: a paired directed-edge store with O(1) twin/forward/
// reverse access, an allocator with index reuse, and the per-mesh shared
// state (the locate start-edge cache) the engine's upper layers read and
// write.
//
// Edges are allocated in pairs; the twin of edge e is always e XOR 1
// ("twin-by-toggle"). Forward(e) is the next edge CCW around the same
// triangle, so a finite triangle is the 3-cycle e, Forward(e),
// Forward(Forward(e)). The convex hull's outside is represented by ghost
// triangles whose third vertex is the sentinel Ghost vertex, so boundary
// code never needs to special-case "no neighbor".
package mesh

import (
	"math"

	"github.com/kestrelmesh/trimesh/vertex"
)

// Ghost is the sentinel vertex index used as the third vertex of a ghost
// (perimeter) triangle. It is never a valid index into Mesh.vertices.
const Ghost = -1

// DefaultEpsilon mirrors the conservative tolerance used when no nominal
// spacing has been observed yet.
const DefaultEpsilon = 1e-9

type config struct {
	epsilon         float64
	nominalSpacing  float64
	debugAddVertex  func(int, vertex.Vertex)
	debugAddEdge    func(EdgeID)
}

func newDefaultConfig() config {
	return config{epsilon: DefaultEpsilon}
}

// Mesh is the mutable quad-edge pool. The zero value is not usable; build
// one with New.
type Mesh struct {
	edges    []edgeRecord
	freeList []EdgeID

	vertices []vertex.Vertex
	index    *spatialIndex

	cfg config

	// startEdge is the single process-wide locate hint described by the
	// concurrency model: read by every locate call, written only by the
	// mutator after each successful insertion.
	startEdge EdgeID
}

// New constructs an empty Mesh.
func New(opts ...Option) *Mesh {
	m := &Mesh{
		cfg:       newDefaultConfig(),
		startEdge: NilEdge,
	}
	for _, opt := range opts {
		opt(&m.cfg)
	}
	m.index = newSpatialIndex(m.cfg.nominalSpacing)
	return m
}

// Epsilon returns the mesh's configured absolute tolerance.
func (m *Mesh) Epsilon() float64 { return m.cfg.epsilon }

// NominalSpacingHint returns a caller-supplied nominal spacing override, or
// zero if none was configured (in which case GetNominalPointSpacing
// estimates one from the vertex set).
func (m *Mesh) NominalSpacingHint() float64 { return m.cfg.nominalSpacing }

// AddVertex registers a vertex and returns its stable index.
func (m *Mesh) AddVertex(v vertex.Vertex) int {
	idx := len(m.vertices)
	m.vertices = append(m.vertices, v)
	m.indexVertex(idx, v)
	if m.cfg.debugAddVertex != nil {
		m.cfg.debugAddVertex(idx, v)
	}
	return idx
}

// Vertex returns the vertex at the given index. Panics on any out-of-range
// index, the Ghost sentinel included; callers that may be handed a ghost
// vertex should check IsGhostVertex first.
func (m *Mesh) Vertex(idx int) vertex.Vertex {
	return m.vertices[idx]
}

// NumVertices returns the number of real (non-ghost) vertices registered.
func (m *Mesh) NumVertices() int { return len(m.vertices) }

// IsGhostVertex reports whether idx is the point-at-infinity sentinel.
func IsGhostVertex(idx int) bool { return idx == Ghost }

// StartEdge returns the current locate hint.
func (m *Mesh) StartEdge() EdgeID { return m.startEdge }

// SetStartEdge updates the locate hint. Only the mutator (the incremental
// builder) should call this; it is not safe to call concurrently with a
// reader that assumes a frozen snapshot.
func (m *Mesh) SetStartEdge(e EdgeID) { m.startEdge = e }

// GetBounds returns the axis-aligned bounding box of the registered
// vertices as (minX, minY, maxX, maxY). Returns all zeros if no vertices
// are registered.
func (m *Mesh) GetBounds() (minX, minY, maxX, maxY float64) {
	if len(m.vertices) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, v := range m.vertices {
		minX = math.Min(minX, v.X)
		minY = math.Min(minY, v.Y)
		maxX = math.Max(maxX, v.X)
		maxY = math.Max(maxY, v.Y)
	}
	return
}

// GetNominalPointSpacing returns the caller-configured spacing override if
// one was set, otherwise estimates a characteristic spacing from the
// bounding box diagonal and vertex count: diagonal / sqrt(N). This mirrors
// the heuristic nominal-spacing estimators used by triangulation libraries
// that do not maintain a spatial index: a coarse but stable scale-adaptive
// value, good enough to drive the Thresholds bundle.
func (m *Mesh) GetNominalPointSpacing() float64 {
	if m.cfg.nominalSpacing > 0 {
		return m.cfg.nominalSpacing
	}
	n := len(m.vertices)
	if n < 2 {
		return 1
	}
	minX, minY, maxX, maxY := m.GetBounds()
	diag := math.Hypot(maxX-minX, maxY-minY)
	if diag == 0 {
		return 1
	}
	return diag / math.Sqrt(float64(n))
}

// GetMaxEdgeIndex returns one past the highest edge index ever allocated;
// it grows monotonically even as indices below it are freed and reused.
func (m *Mesh) GetMaxEdgeIndex() int { return len(m.edges) }
