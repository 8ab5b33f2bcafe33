package metrics

import "github.com/san-kum/clothsim/internal/cloth"

// Energy averages the total mechanical energy of the cloth. Kinetic energy
// uses the Verlet velocity estimate (Position-Previous)/dt; potential energy
// is measured from y = 0.
type Energy struct {
	gravity   float64
	dt        float64
	total     float64
	samples   int
	last      float64
	kinetic   float64
	potential float64
}

func NewEnergy(gravity, dt float64) *Energy {
	return &Energy{gravity: gravity, dt: dt}
}

func (e *Energy) Name() string { return "energy" }

func (e *Energy) Observe(c *cloth.Cloth, _ float64) {
	var ke, pe float64
	for i := range c.Particles {
		p := &c.Particles[i]
		v := p.Velocity(e.dt)
		ke += 0.5 * p.Mass * v.Dot(v)
		pe += p.Mass * e.gravity * p.Position.Y()
	}
	e.kinetic, e.potential = ke, pe
	e.last = ke + pe
	e.total += e.last
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

// Last is the total energy at the most recent observation.
func (e *Energy) Last() float64 { return e.last }

// Split returns the kinetic and potential parts of the last observation.
func (e *Energy) Split() (kinetic, potential float64) {
	return e.kinetic, e.potential
}

func (e *Energy) Reset() {
	e.total = 0
	e.samples = 0
	e.last = 0
	e.kinetic = 0
	e.potential = 0
}
