package delaunay

import (
	"github.com/kestrelmesh/trimesh/mesh"
	"github.com/kestrelmesh/trimesh/predicate"
	"github.com/kestrelmesh/trimesh/vertex"
)

// Options configures an incremental builder, mirroring the specification's
// enumerated Delaunay-builder configuration: an optional nominal-spacing
// override and whether constraint insertion restores Delaunay conformity
// afterward.
type Options struct {
	NominalSpacing                float64
	RestoreConformityOnConstraint bool
}

// DefaultOptions returns the builder's default configuration.
func DefaultOptions() Options {
	return Options{RestoreConformityOnConstraint: false}
}

// Outcome classifies the result of inserting a vertex.
type Outcome int

const (
	// Inserted means a new vertex was added to the mesh.
	Inserted Outcome = iota
	// Duplicate means the point coincided with an existing vertex within
	// tolerance; no mesh change was made.
	Duplicate
	// Buffered means the mesh is not yet bootstrapped and the point was
	// held in the bootstrap buffer.
	Buffered
)

// InsertResult reports what InsertVertex did.
type InsertResult struct {
	Outcome       Outcome
	VertexIndex   int // valid when Outcome == Inserted
	ExistingIndex int // valid when Outcome == Duplicate
}

// Builder owns a Mesh and drives the incremental Delaunay construction
// algorithm over it: bootstrap, locate, insert, Lawson flip propagation.
type Builder struct {
	Mesh *mesh.Mesh
	opts Options

	// bootstrap buffers vertices until three non-colinear ones are known.
	bootstrap    []vertex.Vertex
	bootstrapped bool

	flipStack []mesh.EdgeID

	// constraints records every embedded Constraint in insertion order; its
	// index is the constraintIndex stamped on mesh edges.
	constraints []Constraint
}

// Constraints returns the constraints embedded so far, in insertion order.
func (b *Builder) Constraints() []Constraint { return b.constraints }

// New constructs an empty Builder backed by a fresh Mesh.
func New(opts Options) *Builder {
	var meshOpts []mesh.Option
	if opts.NominalSpacing > 0 {
		meshOpts = append(meshOpts, mesh.WithNominalSpacing(opts.NominalSpacing))
	}
	return &Builder{
		Mesh: mesh.New(meshOpts...),
		opts: opts,
	}
}

// Thresholds returns the predicate tolerance bundle derived from the
// mesh's current bounds and nominal spacing.
func (b *Builder) Thresholds() predicate.Thresholds {
	minX, minY, maxX, maxY := b.Mesh.GetBounds()
	mag := maxAbsCoord(minX, minY, maxX, maxY)
	return predicate.NewThresholds(mag, b.Mesh.GetNominalPointSpacing())
}

func maxAbsCoord(vals ...float64) float64 {
	max := 0.0
	for _, v := range vals {
		if v < 0 {
			v = -v
		}
		if v > max {
			max = v
		}
	}
	return max
}

// IsBootstrapped reports whether the mesh has a starting triangle yet.
func (b *Builder) IsBootstrapped() bool { return b.bootstrapped }
