package main

import (
	"fmt"

	"github.com/san-kum/clothsim/internal/config"
	"github.com/spf13/cobra"
)

// resolveConfig starts from the named preset (cube by default), or from
// --config when given, and applies every flag the user set explicitly.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configFile != "" {
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		name := "cube"
		if len(args) > 0 {
			name = args[0]
		}
		cfg, err = config.GetPreset(name)
		if err != nil {
			return nil, err
		}
	}

	f := cmd.Flags()
	if f.Changed("ticks") {
		cfg.Run.Ticks = ticks
	}
	if f.Changed("sample-every") {
		cfg.Run.SampleEvery = sampleEvery
	}
	if f.Changed("iterations") {
		cfg.Solver.Iterations = iterations
	}
	if f.Changed("workers") {
		cfg.Solver.Workers = workers
	}
	if f.Changed("timestep") {
		cfg.Physics.Timestep = timestep
	}
	if f.Changed("damping") {
		cfg.Physics.Damping = damping
	}
	if f.Changed("gravity") {
		cfg.Physics.Gravity = gravity
	}
	if f.Changed("wind") {
		cfg.Wind.Mode = windMode
	}
	if f.Changed("wind-strength") {
		cfg.Wind.Strength = windStrength
	}
	if f.Changed("seed") {
		cfg.Wind.Seed = seed
	}
	if f.Changed("shape") {
		cfg.Generator.Shape = shape
	}
	if f.Changed("width") {
		cfg.Lattice.Width = width
	}
	if f.Changed("height") {
		cfg.Lattice.Height = height
	}
	if f.Changed("depth") {
		cfg.Lattice.Depth = depth
	}
	if f.Changed("no-floor") {
		cfg.Floor.Enabled = !noFloor
	}
	if f.Changed("pin") {
		cfg.PinRows = pinRows
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
