package sim

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/clothsim/internal/cloth"
)

// Observer is called after every tick, including the initial one that only
// records the reference timestamp.
type Observer interface {
	OnStep(c *cloth.Cloth, t float64)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(c *cloth.Cloth, t float64)

func (f ObserverFunc) OnStep(c *cloth.Cloth, t float64) { f(c, t) }

// Options controls a single run.
type Options struct {
	Ticks       int
	SampleEvery int
}

// Result holds the sampled trajectory of a run. Frames[i] is a copy of the
// particle positions at Times[i]. History holds one entry per sample for each
// metric.
type Result struct {
	Frames  [][]mgl64.Vec3
	Times   []float64
	Metrics map[string]float64
	History map[string][]float64
	Ticks   int
}

// Final returns the last sampled frame, or nil for an empty result.
func (r *Result) Final() []mgl64.Vec3 {
	if len(r.Frames) == 0 {
		return nil
	}
	return r.Frames[len(r.Frames)-1]
}
