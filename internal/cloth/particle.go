package cloth

import "github.com/go-gl/mathgl/mgl64"

// Particle is a point mass integrated with position Verlet.
type Particle struct {
	Position mgl64.Vec3
	Previous mgl64.Vec3
	// Original is the rest pose used for pins and resets. It never changes.
	Original mgl64.Vec3
	// Acceleration accumulates force*InvMass until the next Integrate.
	Acceleration mgl64.Vec3
	Mass         float64
	InvMass      float64
}

func NewParticle(pos mgl64.Vec3, mass float64) Particle {
	return Particle{
		Position: pos,
		Previous: pos,
		Original: pos,
		Mass:     mass,
		InvMass:  1 / mass,
	}
}

// AddForce converts a force into acceleration and adds it to the accumulator.
func (p *Particle) AddForce(force mgl64.Vec3) {
	p.Acceleration = p.Acceleration.Add(force.Mul(p.InvMass))
}

// Integrate advances the particle by one Verlet step:
//
//	next = pos + (pos - prev)*drag + acc*timesq
//
// and clears the accumulator.
func (p *Particle) Integrate(timesq, drag float64) {
	next := p.Position.Sub(p.Previous).Mul(drag).Add(p.Position)
	next = next.Add(p.Acceleration.Mul(timesq))

	p.Previous = p.Position
	p.Position = next
	p.Acceleration = mgl64.Vec3{}
}

// Velocity estimates the velocity implied by the last step of length dt.
func (p *Particle) Velocity(dt float64) mgl64.Vec3 {
	return p.Position.Sub(p.Previous).Mul(1 / dt)
}

// Restore snaps the particle back to its rest pose with zero velocity.
func (p *Particle) Restore() {
	p.Position = p.Original
	p.Previous = p.Original
	p.Acceleration = mgl64.Vec3{}
}
