package cloth

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func BenchmarkIntegrate(b *testing.B) {
	p := NewParticle(mgl64.Vec3{0, 100, 0}, DefaultMass)
	gravity := mgl64.Vec3{0, -DefaultGravity * DefaultMass, 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.AddForce(gravity)
		p.Integrate(DefaultTimestep*DefaultTimestep, 1-DefaultDamping)
	}
}

func BenchmarkRelax_Cube10(b *testing.B) {
	c := cube(b, 10, 10, 10)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Relax(1)
	}
}

func BenchmarkStep_Sheet32(b *testing.B) {
	c := cube(b, 32, 32, 1)
	if err := c.PinSelection("top"); err != nil {
		b.Fatal(err)
	}
	s, err := NewStepper(c, DefaultParams())
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Step(float64(i))
	}
}

func BenchmarkStep_Sheet32_Parallel(b *testing.B) {
	c := cube(b, 32, 32, 1)
	if err := c.PinSelection("top"); err != nil {
		b.Fatal(err)
	}
	p := DefaultParams()
	p.Workers = 4
	s, err := NewStepper(c, p)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Step(float64(i))
	}
}
