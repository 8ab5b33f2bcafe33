package automation

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"

	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/sim"
	"github.com/san-kum/clothsim/internal/storage"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset (or a config file) and overlays the
// overrides mapping, which uses the config file schema.
type ScenarioStep struct {
	Preset    string    `yaml:"preset"`
	Config    string    `yaml:"config"`
	Overrides yaml.Node `yaml:"overrides"`
	Save      bool      `yaml:"save"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// Resolve builds the validated configuration for the step.
func (s *ScenarioStep) Resolve() (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case s.Config != "":
		cfg, err = config.Load(s.Config)
	case s.Preset != "":
		cfg, err = config.GetPreset(s.Preset)
	default:
		cfg = config.DefaultConfig()
	}
	if err != nil {
		return nil, err
	}
	if s.Overrides.Kind != 0 {
		if err := s.Overrides.Decode(cfg); err != nil {
			return nil, fmt.Errorf("overrides: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type StepResult struct {
	Config *config.Config
	Result *sim.Result
	RunID  string
}

// RunScenario executes the steps in order. Steps marked save are stored in st
// when it is non-nil. Progress lines go to log.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store, log io.Writer) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i := range scenario.Steps {
		step := &scenario.Steps[i]
		cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		fmt.Fprintf(log, "running step %d/%d: %s\n", i+1, len(scenario.Steps), cfg.Name)

		r, opts, err := sim.FromConfig(cfg)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		res, err := r.Run(ctx, opts)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		sr := StepResult{Config: cfg, Result: res}
		if step.Save && st != nil {
			if sr.RunID, err = st.Save(cfg, res); err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}

// MonteCarloConfig reruns Base with a fresh noise seed per run and the wind
// strength scaled by a uniform factor in [1-Jitter, 1+Jitter].
type MonteCarloConfig struct {
	Base   *config.Config
	Runs   int
	Seed   int64
	Jitter float64
}

type MonteCarloResult struct {
	Seed         int64
	WindStrength float64
	Metrics      map[string]float64
}

func RunMonteCarlo(ctx context.Context, mc *MonteCarloConfig) ([]MonteCarloResult, error) {
	if mc.Runs < 1 {
		return nil, fmt.Errorf("runs must be positive, got %d", mc.Runs)
	}
	rng := rand.New(rand.NewSource(mc.Seed))

	cfgs := make([]*config.Config, mc.Runs)
	out := make([]MonteCarloResult, mc.Runs)
	for i := range cfgs {
		cfg := mc.Base.Clone()
		cfg.Wind.Seed = rng.Int63()
		cfg.Wind.Strength *= 1 + mc.Jitter*(2*rng.Float64()-1)
		cfgs[i] = cfg
		out[i] = MonteCarloResult{Seed: cfg.Wind.Seed, WindStrength: cfg.Wind.Strength}
	}

	results, err := sim.NewEnsemble(cfgs, 0).Run(ctx)
	if err != nil {
		return nil, err
	}
	for i, res := range results {
		out[i].Metrics = res.Metrics
	}
	return out, nil
}

// MonteCarloStats returns the mean and standard deviation of metric over the
// results, and how many runs stayed fully stable.
func MonteCarloStats(results []MonteCarloResult, metric string) (mean, std float64, stable int) {
	if len(results) == 0 {
		return 0, 0, 0
	}
	for _, r := range results {
		mean += r.Metrics[metric]
		if r.Metrics["stability"] == 1 {
			stable++
		}
	}
	mean /= float64(len(results))
	for _, r := range results {
		d := r.Metrics[metric] - mean
		std += d * d
	}
	std = math.Sqrt(std / float64(len(results)))
	return mean, std, stable
}
