package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kestrelmesh/trimesh/alpha"
	"github.com/kestrelmesh/trimesh/delaunay"
	"github.com/kestrelmesh/trimesh/internal/meshio"
)

var (
	alphaRadius float64
	alphaOut    string
)

var alphaCmd = &cobra.Command{
	Use:   "alpha INPUT.json",
	Short: "extract an alpha shape from a point set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		radius := alphaRadius
		if radius == 0 {
			radius = settings.AlphaRadius
		}

		in, err := meshio.Load(args[0])
		if err != nil {
			return err
		}
		verts, err := in.Vertices()
		if err != nil {
			return err
		}

		b := delaunay.New(settings.BuilderOptions())
		for _, v := range verts {
			if _, err := b.InsertVertex(v); err != nil {
				return fmt.Errorf("inserting vertex %d: %w", v.Index, err)
			}
		}

		shape := alpha.ExtractAlphaShape(b, radius, alpha.DefaultOptions())
		fmt.Printf("alpha=%.6g: %d covered triangles, %d boundary parts\n", radius, len(shape.Triangles), len(shape.Parts))
		for i, part := range shape.Parts {
			kind := "line/point"
			if part.IsPolygon {
				kind = "polygon"
			}
			fmt.Printf("  part %d: %s, %d vertices, area %.6g, parent %d\n", i, kind, len(part.Loop), part.Area, part.Parent)
		}

		if alphaOut != "" {
			return writeSVG(alphaOut, b, shape, nil)
		}
		return nil
	},
}

func init() {
	alphaCmd.Flags().Float64Var(&alphaRadius, "radius", 0, "alpha radius (overrides settings file)")
	alphaCmd.Flags().StringVar(&alphaOut, "svg", "", "write an SVG rendering of the result to this path")
	RootCmd.AddCommand(alphaCmd)
}
