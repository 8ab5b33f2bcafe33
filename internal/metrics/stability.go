package metrics

import (
	"math"

	"github.com/san-kum/clothsim/internal/cloth"
)

// Stability is the fraction of observations in which every coordinate is
// finite and within the threshold. The stepper never checks for NaN itself.
type Stability struct {
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{threshold: threshold}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) Observe(c *cloth.Cloth, _ float64) {
	s.samples++
	for i := range c.Particles {
		for _, v := range c.Particles[i].Position {
			if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > s.threshold {
				s.violations++
				return
			}
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
