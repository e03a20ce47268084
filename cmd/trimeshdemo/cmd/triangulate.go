package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kestrelmesh/trimesh/delaunay"
	"github.com/kestrelmesh/trimesh/internal/meshio"
)

var triangulateOut string

var triangulateCmd = &cobra.Command{
	Use:   "triangulate INPUT.json",
	Short: "build a constrained Delaunay triangulation from a point set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		in, err := meshio.Load(args[0])
		if err != nil {
			return err
		}
		verts, err := in.Vertices()
		if err != nil {
			return err
		}
		constraints, err := in.Constraints(verts)
		if err != nil {
			return err
		}

		b := delaunay.New(settings.BuilderOptions())
		for _, v := range verts {
			if _, err := b.InsertVertex(v); err != nil {
				return fmt.Errorf("inserting vertex %d: %w", v.Index, err)
			}
		}
		for _, c := range constraints {
			if _, err := b.InsertConstraint(c); err != nil {
				return fmt.Errorf("inserting constraint: %w", err)
			}
		}

		tris := b.Triangles()
		fmt.Printf("%d vertices, %d triangles, %d constraints\n", b.Mesh.NumVertices(), len(tris), len(constraints))
		if problems := b.Check(); len(problems) > 0 {
			fmt.Println("integrity check found issues:")
			for _, p := range problems {
				fmt.Println(" -", p)
			}
		}

		if triangulateOut != "" {
			return writeSVG(triangulateOut, b, nil, nil)
		}
		return nil
	},
}

func init() {
	triangulateCmd.Flags().StringVar(&triangulateOut, "svg", "", "write an SVG rendering of the result to this path")
	RootCmd.AddCommand(triangulateCmd)
}
