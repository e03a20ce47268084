package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "trimeshdemo",
	Short: "build and inspect constrained Delaunay triangulations",
	Long: `trimeshdemo drives the trimesh engine from the command line:
	- triangulate a point set, optionally embedding linear/polygon constraints,
	- extract an alpha shape at a given radius,
	- trace elevation contours across a Z-valued triangulation,
	- render any of the above to SVG.`,
}

// Execute runs the root command, printing any error and exiting non-zero.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "settings", "", "settings YAML file (default: built-in defaults)")
}
