package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kestrelmesh/trimesh/delaunay"
)

// Settings is the YAML-configurable subset of delaunay.Options exposed to
// the CLI, plus the alpha radius the alpha subcommand falls back to when
// its flag is not given explicitly.
type Settings struct {
	NominalSpacing                float64 `yaml:"nominal_spacing"`
	RestoreConformityOnConstraint bool    `yaml:"restore_conformity_on_constraint"`
	AlphaRadius                   float64 `yaml:"alpha_radius"`
}

// DefaultSettings mirrors delaunay.DefaultOptions with the CLI-only
// fields left at their zero value.
func DefaultSettings() Settings {
	opts := delaunay.DefaultOptions()
	return Settings{
		NominalSpacing:                opts.NominalSpacing,
		RestoreConformityOnConstraint: opts.RestoreConformityOnConstraint,
		AlphaRadius:                   0,
	}
}

// BuilderOptions converts s into delaunay.Options.
func (s Settings) BuilderOptions() delaunay.Options {
	return delaunay.Options{
		NominalSpacing:                s.NominalSpacing,
		RestoreConformityOnConstraint: s.RestoreConformityOnConstraint,
	}
}

// loadSettings reads cfgFile if set, otherwise returns DefaultSettings.
func loadSettings() (Settings, error) {
	if cfgFile == "" {
		return DefaultSettings(), nil
	}
	data, err := os.ReadFile(cfgFile)
	if err != nil {
		return Settings{}, fmt.Errorf("reading settings file: %w", err)
	}
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parsing settings file: %w", err)
	}
	return s, nil
}

var configCmd = &cobra.Command{
	Use:   "config FILE",
	Short: "write a settings file prefilled with default values",
	Long: `Write a settings file in YAML format, prefilled with defaults.

If FILE is not provided, 'trimesh.yml' is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "trimesh.yml"
		if len(args) >= 1 {
			path = args[0]
		}
		data, err := yaml.Marshal(DefaultSettings())
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Printf("settings written to %s\n", path)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
}
