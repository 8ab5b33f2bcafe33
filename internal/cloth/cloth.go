package cloth

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultSegments     = 3
	DefaultRestDistance = 25.0
	DefaultMass         = 0.1
)

// Lattice describes the particle grid: counts per axis, spacing and the
// mass of every particle.
type Lattice struct {
	Width        int
	Height       int
	Depth        int
	RestDistance float64
	Mass         float64
}

func DefaultLattice() Lattice {
	return Lattice{
		Width:        DefaultSegments,
		Height:       DefaultSegments,
		Depth:        DefaultSegments,
		RestDistance: DefaultRestDistance,
		Mass:         DefaultMass,
	}
}

func (l Lattice) Len() int { return l.Width * l.Height * l.Depth }

// Validate reports the first lattice value that cannot produce a cloth.
func (l Lattice) Validate() error {
	switch {
	case l.Width < 1:
		return invalid("width", l.Width, "must be at least 1")
	case l.Height < 1:
		return invalid("height", l.Height, "must be at least 1")
	case l.Depth < 1:
		return invalid("depth", l.Depth, "must be at least 1")
	case l.Len() < 2:
		return invalid("lattice", l.Len(), "needs at least two particles")
	case !(l.RestDistance > 0) || math.IsInf(l.RestDistance, 0):
		return invalid("rest_distance", l.RestDistance, "must be positive and finite")
	case !(l.Mass > 0) || math.IsInf(l.Mass, 0):
		return invalid("mass", l.Mass, "must be positive and finite")
	}
	return nil
}

// Cloth owns the particles and structural constraints of one lattice.
type Cloth struct {
	W, H, D     int
	Particles   []Particle
	Constraints []Constraint

	pinned []bool
	pins   []int
}

// New builds a cloth by evaluating gen at (x/W, y/H, z/D) for every lattice
// slot and linking each particle to its +x, +y and +z neighbours.
func New(l Lattice, gen Generator) (*Cloth, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if gen == nil {
		return nil, invalid("generator", nil, "must not be nil")
	}

	w, h, d := l.Width, l.Height, l.Depth
	c := &Cloth{
		W:         w,
		H:         h,
		D:         d,
		Particles: make([]Particle, 0, l.Len()),
		pinned:    make([]bool, l.Len()),
	}

	for z := 0; z < d; z++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				pos := gen(float64(x)/float64(w), float64(y)/float64(h), float64(z)/float64(d))
				c.Particles = append(c.Particles, NewParticle(pos, l.Mass))
			}
		}
	}

	links := (w-1)*h*d + w*(h-1)*d + w*h*(d-1)
	c.Constraints = make([]Constraint, 0, links)
	for z := 0; z < d; z++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				i := c.Index(x, y, z)
				if x < w-1 {
					c.Constraints = append(c.Constraints, Constraint{A: i, B: c.Index(x+1, y, z), Rest: l.RestDistance})
				}
				if y < h-1 {
					c.Constraints = append(c.Constraints, Constraint{A: i, B: c.Index(x, y+1, z), Rest: l.RestDistance})
				}
				if z < d-1 {
					c.Constraints = append(c.Constraints, Constraint{A: i, B: c.Index(x, y, z+1), Rest: l.RestDistance})
				}
			}
		}
	}

	return c, nil
}

// Index maps a lattice coordinate to its particle slot. x varies fastest,
// then y, then z, matching the construction order.
func (c *Cloth) Index(x, y, z int) int {
	return x + (y+c.H*z)*c.W
}

// Coord is the inverse of Index.
func (c *Cloth) Coord(i int) (x, y, z int) {
	x = i % c.W
	y = (i / c.W) % c.H
	z = i / (c.W * c.H)
	return
}

func (c *Cloth) Len() int { return len(c.Particles) }

// Positions returns a copy of every particle position, in slot order.
func (c *Cloth) Positions() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(c.Particles))
	for i := range c.Particles {
		out[i] = c.Particles[i].Position
	}
	return out
}

// Relax runs the full constraint pass iterations times, in construction order.
func (c *Cloth) Relax(iterations int) {
	for n := 0; n < iterations; n++ {
		for _, con := range c.Constraints {
			con.satisfy(c.Particles)
		}
	}
}

// Pin anchors the given slots to their rest pose. Nothing is pinned if any
// index is out of range.
func (c *Cloth) Pin(indices ...int) error {
	for _, i := range indices {
		if i < 0 || i >= len(c.Particles) {
			return &ConfigError{Field: "pins", Value: i, Reason: "no such particle", Wrapped: ErrPinOutOfRange}
		}
	}
	for _, i := range indices {
		if !c.pinned[i] {
			c.pinned[i] = true
			c.pins = append(c.pins, i)
		}
	}
	sort.Ints(c.pins)
	return nil
}

func (c *Cloth) Unpin(indices ...int) {
	for _, i := range indices {
		if i >= 0 && i < len(c.pinned) {
			c.pinned[i] = false
		}
	}
	kept := c.pins[:0]
	for _, i := range c.pins {
		if c.pinned[i] {
			kept = append(kept, i)
		}
	}
	c.pins = kept
}

func (c *Cloth) ClearPins() { c.Unpin(c.pins...) }

func (c *Cloth) IsPinned(i int) bool {
	return i >= 0 && i < len(c.pinned) && c.pinned[i]
}

// Pins returns the pinned slots in ascending order.
func (c *Cloth) Pins() []int {
	out := make([]int, len(c.pins))
	copy(out, c.pins)
	return out
}

// EnforcePins overwrites Position and Previous of every pinned particle with
// its rest pose.
func (c *Cloth) EnforcePins() {
	for _, i := range c.pins {
		p := &c.Particles[i]
		p.Position = p.Original
		p.Previous = p.Original
	}
}

// Reset returns every particle to its rest pose. Pins are kept.
func (c *Cloth) Reset() {
	for i := range c.Particles {
		c.Particles[i].Restore()
	}
}

// MaxStretch is the largest relative deviation |d-rest|/rest over all
// constraints.
func (c *Cloth) MaxStretch() float64 {
	max := 0.0
	for _, con := range c.Constraints {
		if e := con.Error(c.Particles) / con.Rest; e > max {
			max = e
		}
	}
	return max
}

func (c *Cloth) MeanStretch() float64 {
	if len(c.Constraints) == 0 {
		return 0
	}
	sum := 0.0
	for _, con := range c.Constraints {
		sum += con.Error(c.Particles) / con.Rest
	}
	return sum / float64(len(c.Constraints))
}
