package cloth

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewParticle_InvMass(t *testing.T) {
	for _, mass := range []float64{0.1, 1, 3, 1e-3, 250} {
		p := NewParticle(mgl64.Vec3{1, 2, 3}, mass)
		if math.Abs(p.Mass*p.InvMass-1) > 1e-12 {
			t.Errorf("mass %v: mass*invMass = %v, want 1", mass, p.Mass*p.InvMass)
		}
		if p.Position != p.Previous || p.Position != p.Original {
			t.Errorf("mass %v: position history not seeded identically", mass)
		}
	}
}

func TestParticle_AddForceAccumulates(t *testing.T) {
	p := NewParticle(mgl64.Vec3{}, 0.5)
	p.AddForce(mgl64.Vec3{1, 0, 0})
	p.AddForce(mgl64.Vec3{0, -2, 0})
	p.AddForce(mgl64.Vec3{0, 0, 0.5})

	want := mgl64.Vec3{2, -4, 1}
	if !p.Acceleration.ApproxEqual(want) {
		t.Errorf("acceleration = %v, want %v", p.Acceleration, want)
	}
	if p.Position != (mgl64.Vec3{}) {
		t.Errorf("AddForce moved the particle to %v", p.Position)
	}
}

func TestParticle_IntegrateClearsAcceleration(t *testing.T) {
	p := NewParticle(mgl64.Vec3{0, 10, 0}, 1)
	p.AddForce(mgl64.Vec3{0, -9.81, 0})
	p.Integrate(0.01, 1)

	if p.Acceleration != (mgl64.Vec3{}) {
		t.Errorf("acceleration not reset: %v", p.Acceleration)
	}
	if p.Previous != (mgl64.Vec3{0, 10, 0}) {
		t.Errorf("previous = %v, want old position", p.Previous)
	}

	// No force on the next step: the particle coasts on its implied velocity.
	before := p.Position.Sub(p.Previous)
	p.Integrate(0.01, 1)
	after := p.Position.Sub(p.Previous)
	if !before.ApproxEqual(after) {
		t.Errorf("coasting displacement changed: %v -> %v", before, after)
	}
}

// freeFall is the closed form of the Verlet recurrence for a particle
// starting at rest under constant acceleration a.
func freeFall(y0, a, dt, damping float64, n int) float64 {
	drag := 1 - damping
	y := y0
	for k := 1; k <= n; k++ {
		var v float64
		if damping == 0 {
			v = float64(k) * a * dt * dt
		} else {
			v = a * dt * dt * (1 - math.Pow(drag, float64(k))) / damping
		}
		y += v
	}
	return y
}

func TestParticle_IntegrateMatchesClosedForm(t *testing.T) {
	tests := []struct {
		name    string
		damping float64
		steps   int
	}{
		{"undamped", 0, 100},
		{"default damping", DefaultDamping, 100},
		{"heavy damping", 0.5, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const mass, g, dt = 0.1, DefaultGravity, DefaultTimestep
			p := NewParticle(mgl64.Vec3{0, 100, 0}, mass)
			for i := 0; i < tt.steps; i++ {
				p.AddForce(mgl64.Vec3{0, -g * mass, 0})
				p.Integrate(dt*dt, 1-tt.damping)
			}

			want := freeFall(100, -g, dt, tt.damping, tt.steps)
			if math.Abs(p.Position.Y()-want) > 1e-8*math.Max(1, math.Abs(want)) {
				t.Errorf("y after %d steps = %.12f, want %.12f", tt.steps, p.Position.Y(), want)
			}
			if p.Position.X() != 0 || p.Position.Z() != 0 {
				t.Errorf("drift off the y axis: %v", p.Position)
			}
		})
	}
}

func TestParticle_Velocity(t *testing.T) {
	p := NewParticle(mgl64.Vec3{}, 1)
	p.Position = mgl64.Vec3{0.1, 0, -0.2}
	v := p.Velocity(0.01)
	if !v.ApproxEqual(mgl64.Vec3{10, 0, -20}) {
		t.Errorf("Velocity = %v", v)
	}
}
