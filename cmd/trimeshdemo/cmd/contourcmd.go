package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kestrelmesh/trimesh/contour"
	"github.com/kestrelmesh/trimesh/delaunay"
	"github.com/kestrelmesh/trimesh/internal/meshio"
)

var (
	contourLevels string
	contourOut    string
)

var contourCmd = &cobra.Command{
	Use:   "contour INPUT.json",
	Short: "trace elevation contours across a Z-valued point set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		levels, err := parseLevels(contourLevels)
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

		b := delaunay.New(settings.BuilderOptions())
		for _, v := range verts {
			if _, err := b.InsertVertex(v); err != nil {
				return fmt.Errorf("inserting vertex %d: %w", v.Index, err)
			}
		}

		set := contour.BuildContours(b, levels, contour.Options{})
		fmt.Printf("%d levels: %d lines (%d closed regions)\n", len(levels), len(set.Lines), len(set.Regions))
		for i, r := range set.Regions {
			fmt.Printf("  region %d: level %.6g, area %.6g (adjusted %.6g), parent %d\n",
				i, r.Line.Level, r.AbsoluteArea, r.AdjustedArea, r.Parent)
		}

		if contourOut != "" {
			return writeSVG(contourOut, b, nil, set)
		}
		return nil
	},
}

func parseLevels(s string) ([]float64, error) {
	if s == "" {
		return nil, fmt.Errorf("--levels is required")
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("parsing level %q: %w", p, err)
		}
		out[i] = v
	}
	return out, nil
}

func init() {
	contourCmd.Flags().StringVar(&contourLevels, "levels", "", "comma-separated Z levels to trace")
	contourCmd.Flags().StringVar(&contourOut, "svg", "", "write an SVG rendering of the result to this path")
	RootCmd.AddCommand(contourCmd)
}
