package mesh

import "github.com/kestrelmesh/trimesh/vertex"

// Option configures a Mesh during construction, in the functional-options
// style. The packages above the mesh take plain Options structs instead
// (delaunay.Options, alpha.Options, contour.Options).
type Option func(*config)

// WithEpsilon sets the mesh's base absolute tolerance. Negative values are
// replaced with DefaultEpsilon.
func WithEpsilon(epsilon float64) Option {
	return func(c *config) {
		if epsilon < 0 {
			epsilon = DefaultEpsilon
		}
		c.epsilon = epsilon
	}
}

// WithNominalSpacing overrides the estimated nominal point spacing used to
// derive the predicate Thresholds bundle. Ignored if spacing <= 0.
func WithNominalSpacing(spacing float64) Option {
	return func(c *config) {
		if spacing > 0 {
			c.nominalSpacing = spacing
		}
	}
}

// WithDebugAddVertex installs a hook invoked after every AddVertex call.
func WithDebugAddVertex(hook func(int, vertex.Vertex)) Option {
	return func(c *config) { c.debugAddVertex = hook }
}

// WithDebugAddEdge installs a hook invoked after every AllocateEdge call.
func WithDebugAddEdge(hook func(EdgeID)) Option {
	return func(c *config) { c.debugAddEdge = hook }
}
