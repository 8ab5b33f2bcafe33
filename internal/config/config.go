package config

import (
	"fmt"
	"os"

	"github.com/san-kum/clothsim/internal/cloth"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTicks       = 500
	DefaultSampleEvery = 10
	DefaultWindMode    = "oscillating"
	DefaultWindForce   = 2.0
)

type Config struct {
	Name      string          `yaml:"name,omitempty"`
	Lattice   LatticeConfig   `yaml:"lattice"`
	Generator GeneratorConfig `yaml:"generator"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Wind      WindConfig      `yaml:"wind"`
	Floor     FloorConfig     `yaml:"floor"`
	Solver    SolverConfig    `yaml:"solver"`
	Pins      []int           `yaml:"pins"`
	PinRows   []string        `yaml:"pin_rows"`
	Run       RunConfig       `yaml:"run"`
}

type LatticeConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	Depth        int     `yaml:"depth"`
	RestDistance float64 `yaml:"rest_distance"`
}

type GeneratorConfig struct {
	Shape string `yaml:"shape"`
}

type PhysicsConfig struct {
	Mass     float64 `yaml:"mass"`
	Damping  float64 `yaml:"damping"`
	Gravity  float64 `yaml:"gravity"`
	Timestep float64 `yaml:"timestep"`
}

type WindConfig struct {
	Mode     string     `yaml:"mode"`
	Strength float64    `yaml:"strength"`
	Vector   [3]float64 `yaml:"vector,flow"`
	Seed     int64      `yaml:"seed"`
}

type FloorConfig struct {
	Enabled bool    `yaml:"enabled"`
	Y       float64 `yaml:"y"`
	Clamp   float64 `yaml:"clamp"`
}

type SolverConfig struct {
	Iterations int `yaml:"iterations"`
	Workers    int `yaml:"workers"`
}

type RunConfig struct {
	Ticks       int `yaml:"ticks"`
	SampleEvery int `yaml:"sample_every"`
}

func DefaultConfig() *Config {
	return &Config{
		Lattice: LatticeConfig{
			Width:        cloth.DefaultSegments,
			Height:       cloth.DefaultSegments,
			Depth:        cloth.DefaultSegments,
			RestDistance: cloth.DefaultRestDistance,
		},
		Generator: GeneratorConfig{Shape: "cube"},
		Physics: PhysicsConfig{
			Mass:     cloth.DefaultMass,
			Damping:  cloth.DefaultDamping,
			Gravity:  cloth.DefaultGravity,
			Timestep: cloth.DefaultTimestep,
		},
		Wind:   WindConfig{Mode: DefaultWindMode, Strength: DefaultWindForce},
		Floor:  FloorConfig{Enabled: true, Y: cloth.DefaultFloorY, Clamp: cloth.DefaultClampY},
		Solver: SolverConfig{Iterations: cloth.DefaultIterations, Workers: 1},
		Run:    RunConfig{Ticks: DefaultTicks, SampleEvery: DefaultSampleEvery},
	}
}

// Load reads a YAML file on top of DefaultConfig and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy, so presets can be edited safely.
func (c *Config) Clone() *Config {
	out := *c
	out.Pins = append([]int(nil), c.Pins...)
	out.PinRows = append([]string(nil), c.PinRows...)
	return &out
}

func (c *Config) ClothLattice() cloth.Lattice {
	return cloth.Lattice{
		Width:        c.Lattice.Width,
		Height:       c.Lattice.Height,
		Depth:        c.Lattice.Depth,
		RestDistance: c.Lattice.RestDistance,
		Mass:         c.Physics.Mass,
	}
}

// WindField builds the configured wind, or nil when disabled.
func (c *Config) WindField() (cloth.Wind, error) {
	switch c.Wind.Mode {
	case "", "none":
		return nil, nil
	case "constant":
		return cloth.ConstantWind(c.Wind.Vector), nil
	case "oscillating":
		return cloth.OscillatingWind{Strength: c.Wind.Strength}, nil
	case "noise":
		return cloth.NewNoiseWind(c.Wind.Strength, c.Wind.Seed), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownWind, c.Wind.Mode)
}

func (c *Config) Params() (cloth.Params, error) {
	wind, err := c.WindField()
	if err != nil {
		return cloth.Params{}, err
	}
	return cloth.Params{
		Timestep: c.Physics.Timestep,
		Damping:  c.Physics.Damping,
		Gravity:  c.Physics.Gravity,
		Wind:     wind,
		Floor: cloth.Floor{
			Enabled: c.Floor.Enabled,
			Y:       c.Floor.Y,
			Clamp:   c.Floor.Clamp,
		},
		Iterations: c.Solver.Iterations,
		Workers:    c.Solver.Workers,
	}, nil
}

// Validate checks every field that the core would reject, plus the run
// settings.
func (c *Config) Validate() error {
	if err := c.ClothLattice().Validate(); err != nil {
		return err
	}
	if _, err := cloth.GeneratorFor(c.Generator.Shape, c.ClothLattice()); err != nil {
		return err
	}
	if c.Generator.Shape == "plane" && c.Lattice.Depth != 1 {
		return fmt.Errorf("%w: plane generator needs depth 1, got %d", ErrInvalid, c.Lattice.Depth)
	}
	p, err := c.Params()
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	n := c.ClothLattice().Len()
	for _, i := range c.Pins {
		if i < 0 || i >= n {
			return fmt.Errorf("%w: pin %d (lattice has %d particles)", cloth.ErrPinOutOfRange, i, n)
		}
	}
	known := make(map[string]bool)
	for _, s := range cloth.Selectors() {
		known[s] = true
	}
	for _, row := range c.PinRows {
		if !known[row] {
			return fmt.Errorf("%w: %q", cloth.ErrUnknownSelector, row)
		}
	}
	if c.Run.Ticks < 1 {
		return fmt.Errorf("%w: run.ticks must be positive, got %d", ErrInvalid, c.Run.Ticks)
	}
	if c.Run.SampleEvery < 1 {
		return fmt.Errorf("%w: run.sample_every must be positive, got %d", ErrInvalid, c.Run.SampleEvery)
	}
	return nil
}

// Build validates the config and constructs the pinned cloth and its stepper.
func (c *Config) Build() (*cloth.Cloth, *cloth.Stepper, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	gen, err := cloth.GeneratorFor(c.Generator.Shape, c.ClothLattice())
	if err != nil {
		return nil, nil, err
	}
	cl, err := cloth.New(c.ClothLattice(), gen)
	if err != nil {
		return nil, nil, err
	}
	if err := cl.Pin(c.Pins...); err != nil {
		return nil, nil, err
	}
	for _, row := range c.PinRows {
		if err := cl.PinSelection(row); err != nil {
			return nil, nil, err
		}
	}
	p, err := c.Params()
	if err != nil {
		return nil, nil, err
	}
	st, err := cloth.NewStepper(cl, p)
	if err != nil {
		return nil, nil, err
	}
	return cl, st, nil
}
