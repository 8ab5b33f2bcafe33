package metrics

import "github.com/san-kum/clothsim/internal/cloth"

// Stretch tracks the worst relative constraint violation seen so far. It is
// the stiffness gauge for the relaxation iteration count.
type Stretch struct {
	max  float64
	last float64
}

func NewStretch() *Stretch { return &Stretch{} }

func (s *Stretch) Name() string { return "max_stretch" }

func (s *Stretch) Observe(c *cloth.Cloth, _ float64) {
	s.last = c.MaxStretch()
	if s.last > s.max {
		s.max = s.last
	}
}

func (s *Stretch) Value() float64 { return s.max }

// Last is the stretch at the most recent observation.
func (s *Stretch) Last() float64 { return s.last }

func (s *Stretch) Reset() {
	s.max = 0
	s.last = 0
}
