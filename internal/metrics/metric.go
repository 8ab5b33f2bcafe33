package metrics

import "github.com/san-kum/clothsim/internal/cloth"

// Metric summarises a cloth over the ticks it observes.
type Metric interface {
	Name() string
	Observe(c *cloth.Cloth, t float64)
	Value() float64
	Reset()
}

// Defaults returns the metrics recorded for every run.
func Defaults(p cloth.Params) []Metric {
	return []Metric{
		NewStretch(),
		NewEnergy(p.Gravity, p.Timestep),
		NewFloorContacts(p.Floor),
		NewStability(1e6),
	}
}
