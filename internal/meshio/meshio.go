// Package meshio reads the JSON input files trimeshdemo's subcommands
// consume: a flat point list plus an optional set of linear/polygon
// constraints expressed as indices into that list.
package meshio

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kestrelmesh/trimesh/delaunay"
	"github.com/kestrelmesh/trimesh/vertex"
)

// ConstraintSpec is one constraint's wire representation: a kind tag and
// the indices, into the enclosing Input's Points, that form its chain.
type ConstraintSpec struct {
	Kind    string `json:"kind"` // "linear" or "polygon"
	Indices []int  `json:"indices"`
}

// Input is the on-disk JSON shape trimeshdemo reads.
type Input struct {
	// Points is a flat list of [x, y] or [x, y, z] triples.
	Points          [][]float64      `json:"points"`
	ConstraintSpecs []ConstraintSpec `json:"constraints,omitempty"`
}

// Load reads and parses path.
func Load(path string) (*Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("meshio: reading %s: %w", path, err)
	}
	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("meshio: parsing %s: %w", path, err)
	}
	return &in, nil
}

// Vertices converts every point to a vertex.Vertex, indexed by its
// position in Points.
func (in *Input) Vertices() ([]vertex.Vertex, error) {
	out := make([]vertex.Vertex, len(in.Points))
	for i, p := range in.Points {
		if len(p) < 2 {
			return nil, fmt.Errorf("meshio: point %d has fewer than 2 coordinates", i)
		}
		z := 0.0
		if len(p) >= 3 {
			z = p[2]
		}
		out[i] = vertex.New(p[0], p[1], z, int32(i))
	}
	return out, nil
}

// Constraints resolves the wire ConstraintSpecs against the already
// materialized vertex slice.
func (in *Input) Constraints(verts []vertex.Vertex) ([]delaunay.Constraint, error) {
	out := make([]delaunay.Constraint, 0, len(in.ConstraintSpecs))
	for _, spec := range in.ConstraintSpecs {
		kind := delaunay.Linear
		switch spec.Kind {
		case "linear", "":
			kind = delaunay.Linear
		case "polygon":
			kind = delaunay.Polygon
		default:
			return nil, fmt.Errorf("meshio: unknown constraint kind %q", spec.Kind)
		}
		pts := make([]vertex.Vertex, len(spec.Indices))
		for i, idx := range spec.Indices {
			if idx < 0 || idx >= len(verts) {
				return nil, fmt.Errorf("meshio: constraint index %d out of range", idx)
			}
			pts[i] = verts[idx]
		}
		out = append(out, delaunay.Constraint{Kind: kind, Vertices: pts})
	}
	return out, nil
}
