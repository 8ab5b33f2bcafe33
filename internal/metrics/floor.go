package metrics

import "github.com/san-kum/clothsim/internal/cloth"

// FloorContacts averages the number of particles resting on the clamp plane.
type FloorContacts struct {
	floor   cloth.Floor
	total   int
	samples int
}

func NewFloorContacts(f cloth.Floor) *FloorContacts {
	return &FloorContacts{floor: f}
}

func (f *FloorContacts) Name() string { return "floor_contacts" }

func (f *FloorContacts) Observe(c *cloth.Cloth, _ float64) {
	f.samples++
	if !f.floor.Enabled {
		return
	}
	for i := range c.Particles {
		if c.Particles[i].Position.Y() <= f.floor.Clamp {
			f.total++
		}
	}
}

func (f *FloorContacts) Value() float64 {
	if f.samples == 0 {
		return 0
	}
	return float64(f.total) / float64(f.samples)
}

func (f *FloorContacts) Reset() {
	f.total = 0
	f.samples = 0
}
