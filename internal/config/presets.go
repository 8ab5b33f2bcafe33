package config

import (
	"fmt"
	"sort"
)

func preset(name string, edit func(c *Config)) *Config {
	c := DefaultConfig()
	c.Name = name
	edit(c)
	return c
}

// Presets are ready-made scenes. GetPreset hands out copies.
var Presets = map[string]*Config{
	"cube": preset("cube", func(c *Config) {}),
	"curtain": preset("curtain", func(c *Config) {
		c.Lattice = LatticeConfig{Width: 12, Height: 10, Depth: 1, RestDistance: 25}
		c.Generator.Shape = "plane"
		c.PinRows = []string{"top"}
		c.Wind = WindConfig{Mode: "oscillating", Strength: 40}
		c.Solver.Iterations = 8
	}),
	"drop": preset("drop", func(c *Config) {
		c.Lattice = LatticeConfig{Width: 10, Height: 10, Depth: 1, RestDistance: 25}
		c.Generator.Shape = "plane"
		c.Wind.Mode = "none"
		c.Run.Ticks = 300
	}),
	"stiff": preset("stiff", func(c *Config) {
		c.Lattice = LatticeConfig{Width: 6, Height: 6, Depth: 6, RestDistance: 25}
		c.PinRows = []string{"top-corners"}
		c.Solver.Iterations = 20
	}),
	"sphere": preset("sphere", func(c *Config) {
		c.Lattice = LatticeConfig{Width: 16, Height: 8, Depth: 1, RestDistance: 10}
		c.Generator.Shape = "sphere"
		c.Wind = WindConfig{Mode: "noise", Strength: 5, Seed: 7}
		c.Solver.Iterations = 10
	}),
}

// GetPreset returns a copy of the named preset.
func GetPreset(name string) (*Config, error) {
	cfg, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	return cfg.Clone(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
