package sim

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/metrics"
)

// sampler is implemented by metrics that expose an instantaneous reading
// alongside their aggregate Value.
type sampler interface {
	Last() float64
}

type Runner struct {
	stepper   *cloth.Stepper
	metrics   []metrics.Metric
	observers []Observer
}

func New(s *cloth.Stepper) *Runner {
	return &Runner{
		stepper:   s,
		metrics:   make([]metrics.Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m metrics.Metric) { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer)     { r.observers = append(r.observers, o) }

func (r *Runner) Stepper() *cloth.Stepper { return r.stepper }

// Run resets the stepper and drives it for opts.Ticks physics steps using
// synthetic timestamps k*Timestep. The first call only establishes the
// reference time, so Ticks+1 calls are made. On cancellation the partial
// result is returned with the context error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	r.stepper.Reset()
	for _, m := range r.metrics {
		m.Reset()
	}

	dt := r.stepper.Params().Timestep
	c := r.stepper.Cloth()
	result := &Result{
		Frames:  make([][]mgl64.Vec3, 0),
		Metrics: make(map[string]float64),
		History: make(map[string][]float64),
	}

	for k := 0; k <= opts.Ticks; k++ {
		select {
		case <-ctx.Done():
			r.finish(result)
			return result, ctx.Err()
		default:
		}

		t := float64(k) * dt
		r.stepper.Step(t)

		for _, m := range r.metrics {
			m.Observe(c, t)
		}
		for _, o := range r.observers {
			o.OnStep(c, t)
		}

		if k == opts.Ticks || (opts.SampleEvery > 0 && k%opts.SampleEvery == 0) {
			r.sample(result, c, t)
		}
	}

	r.finish(result)
	return result, nil
}

func (r *Runner) sample(result *Result, c *cloth.Cloth, t float64) {
	result.Frames = append(result.Frames, c.Positions())
	result.Times = append(result.Times, t)
	for _, m := range r.metrics {
		v := m.Value()
		if s, ok := m.(sampler); ok {
			v = s.Last()
		}
		result.History[m.Name()] = append(result.History[m.Name()], v)
	}
}

func (r *Runner) finish(result *Result) {
	result.Ticks = r.stepper.Ticks()
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validateOptions(opts Options) error {
	if opts.Ticks < 0 {
		return fmt.Errorf("ticks must be non-negative, got %d", opts.Ticks)
	}
	if opts.SampleEvery < 0 {
		return fmt.Errorf("sample interval must be non-negative, got %d", opts.SampleEvery)
	}
	return nil
}
