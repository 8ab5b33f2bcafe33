package sim

import (
	"context"
	"runtime"
	"sync"

	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/metrics"
)

// FromConfig builds the cloth described by cfg and returns a runner with the
// default metrics attached, plus the run options from cfg.
func FromConfig(cfg *config.Config) (*Runner, Options, error) {
	_, stepper, err := cfg.Build()
	if err != nil {
		return nil, Options{}, err
	}
	r := New(stepper)
	for _, m := range metrics.Defaults(stepper.Params()) {
		r.AddMetric(m)
	}
	return r, Options{Ticks: cfg.Run.Ticks, SampleEvery: cfg.Run.SampleEvery}, nil
}

// Ensemble runs independent configurations concurrently, one cloth per
// goroutine.
type Ensemble struct {
	configs []*config.Config
	limit   int
}

// NewEnsemble runs at most limit configurations at once; limit <= 0 means
// GOMAXPROCS.
func NewEnsemble(configs []*config.Config, limit int) *Ensemble {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	return &Ensemble{configs: configs, limit: limit}
}

// Run returns results in the order of the configurations. The first error
// encountered, in that order, is returned with a nil slice.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, len(e.configs))
	errs := make([]error, len(e.configs))
	sem := make(chan struct{}, e.limit)

	var wg sync.WaitGroup
	for i, cfg := range e.configs {
		wg.Add(1)
		go func(idx int, cfg *config.Config) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			r, opts, err := FromConfig(cfg)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = r.Run(ctx, opts)
		}(i, cfg)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
