package cloth

// Constraint links two particles of a cloth, by slot, at a fixed rest length.
type Constraint struct {
	A, B int
	Rest float64
}

// Satisfy performs one relaxation of the distance between p1 and p2 towards
// rest. Both particles move by half the error regardless of mass, so the sum
// of their displacements is zero. Coincident particles are left untouched.
func Satisfy(p1, p2 *Particle, rest float64) {
	delta := p2.Position.Sub(p1.Position)
	dist := delta.Len()
	if dist == 0 {
		return
	}

	half := delta.Mul((1 - rest/dist) * 0.5)
	p1.Position = p1.Position.Add(half)
	p2.Position = p2.Position.Sub(half)
}

// Error returns the absolute deviation of the constraint from its rest length.
func (c Constraint) Error(particles []Particle) float64 {
	d := particles[c.B].Position.Sub(particles[c.A].Position).Len() - c.Rest
	if d < 0 {
		return -d
	}
	return d
}

func (c Constraint) satisfy(particles []Particle) {
	Satisfy(&particles[c.A], &particles[c.B], c.Rest)
}
