package cloth

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultDamping    = 0.03
	DefaultGravity    = 981 * 1.4
	DefaultTimestep   = 10.0 / 1000
	DefaultIterations = 5
	DefaultFloorY     = -20.0
	DefaultClampY     = -19.0

	minIntegrateChunk = 256
	minRelaxChunk     = 128
)

// Floor is a horizontal plane below which particles are lifted to Clamp.
type Floor struct {
	Enabled bool
	Y       float64
	Clamp   float64
}

// Apply lifts p to the clamp height if it is below the floor and reports
// whether it did. Previous is left alone.
func (f Floor) Apply(p *Particle) bool {
	if !f.Enabled || p.Position[1] >= f.Y {
		return false
	}
	p.Position[1] = f.Clamp
	return true
}

// Params holds every tunable of a simulation step.
type Params struct {
	// Timestep is the fixed integration step in seconds.
	Timestep float64
	// Damping is the fraction of the previous displacement lost per step.
	Damping float64
	// Gravity is the downward acceleration magnitude.
	Gravity float64
	// Wind is optional.
	Wind  Wind
	Floor Floor
	// Iterations is the number of full constraint passes per step.
	Iterations int
	// Workers > 1 integrates in parallel and relaxes in colour batches.
	Workers int
}

func DefaultParams() Params {
	return Params{
		Timestep:   DefaultTimestep,
		Damping:    DefaultDamping,
		Gravity:    DefaultGravity,
		Floor:      Floor{Enabled: true, Y: DefaultFloorY, Clamp: DefaultClampY},
		Iterations: DefaultIterations,
		Workers:    1,
	}
}

func (p Params) Validate() error {
	switch {
	case !(p.Timestep > 0) || math.IsInf(p.Timestep, 0):
		return invalid("timestep", p.Timestep, "must be positive and finite")
	case !(p.Damping >= 0 && p.Damping < 1):
		return invalid("damping", p.Damping, "must be in [0, 1)")
	case math.IsNaN(p.Gravity) || math.IsInf(p.Gravity, 0):
		return invalid("gravity", p.Gravity, "must be finite")
	case p.Iterations < 1:
		return invalid("iterations", p.Iterations, "must be at least 1")
	case p.Floor.Enabled && !(p.Floor.Clamp > p.Floor.Y):
		return invalid("floor.clamp", p.Floor.Clamp, "must be above floor.y")
	}
	return nil
}

// Stepper advances a cloth once per external tick.
//
// The first call to Step only records its timestamp. Every later call runs a
// fixed Timestep of physics; the timestamp never scales integration.
type Stepper struct {
	cloth   *Cloth
	params  Params
	drag    float64
	timesq  float64
	batches [][]Constraint

	started  bool
	lastTime float64
	ticks    int
}

func NewStepper(c *Cloth, p Params) (*Stepper, error) {
	if c == nil {
		return nil, invalid("cloth", nil, "must not be nil")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	s := &Stepper{cloth: c}
	s.setParams(p)
	return s, nil
}

func (s *Stepper) setParams(p Params) {
	s.params = p
	s.drag = 1 - p.Damping
	s.timesq = p.Timestep * p.Timestep
	s.batches = nil
	if p.Workers > 1 {
		s.batches = ColorBatches(s.cloth)
	}
}

// SetParams replaces the step parameters without touching the tick state.
func (s *Stepper) SetParams(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.setParams(p)
	return nil
}

func (s *Stepper) Params() Params { return s.params }
func (s *Stepper) Cloth() *Cloth  { return s.cloth }

// Started reports whether the reference timestamp has been recorded.
func (s *Stepper) Started() bool { return s.started }

// Ticks is the number of physics steps taken.
func (s *Stepper) Ticks() int { return s.ticks }

// SimTime is the simulated time in seconds, Ticks*Timestep.
func (s *Stepper) SimTime() float64 { return float64(s.ticks) * s.params.Timestep }

// LastTime is the most recent timestamp passed to Step.
func (s *Stepper) LastTime() float64 { return s.lastTime }

// Reset puts the stepper back in the uninitialized state and the cloth in
// its rest pose.
func (s *Stepper) Reset() {
	s.started = false
	s.lastTime = 0
	s.ticks = 0
	s.cloth.Reset()
}

// Step is the tick entry point, called with a monotonically increasing
// timestamp.
func (s *Stepper) Step(now float64) {
	if !s.started {
		s.started = true
		s.lastTime = now
		return
	}
	s.lastTime = now
	s.advance()
}

func (s *Stepper) advance() {
	c := s.cloth
	p := s.params

	var wind mgl64.Vec3
	if p.Wind != nil {
		wind = p.Wind.At(s.SimTime())
	}

	parallelFor(len(c.Particles), p.Workers, minIntegrateChunk, func(start, end int) {
		for i := start; i < end; i++ {
			pt := &c.Particles[i]
			pt.AddForce(mgl64.Vec3{0, -p.Gravity * pt.Mass, 0})
			if p.Wind != nil {
				pt.AddForce(wind)
			}
			pt.Integrate(s.timesq, s.drag)
		}
	})

	if s.batches != nil {
		c.RelaxBatches(s.batches, p.Iterations, p.Workers)
	} else {
		c.Relax(p.Iterations)
	}

	if p.Floor.Enabled {
		for i := range c.Particles {
			p.Floor.Apply(&c.Particles[i])
		}
	}

	c.EnforcePins()
	s.ticks++
}
