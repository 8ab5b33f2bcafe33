package cloth_test

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/clothsim/internal/cloth"
)

func newCube(w, h, d int) *cloth.Cloth {
	l := cloth.Lattice{Width: w, Height: h, Depth: d, RestDistance: cloth.DefaultRestDistance, Mass: cloth.DefaultMass}
	gen, err := cloth.GeneratorFor("cube", l)
	Expect(err).NotTo(HaveOccurred())
	c, err := cloth.New(l, gen)
	Expect(err).NotTo(HaveOccurred())
	return c
}

var _ = Describe("Stepper", func() {
	var (
		c      *cloth.Cloth
		params cloth.Params
	)

	BeforeEach(func() {
		c = newCube(3, 3, 3)
		params = cloth.DefaultParams()
	})

	Describe("construction", func() {
		It("rejects invalid parameters before any tick", func() {
			bad := []func(*cloth.Params){
				func(p *cloth.Params) { p.Timestep = 0 },
				func(p *cloth.Params) { p.Damping = 1 },
				func(p *cloth.Params) { p.Damping = -0.1 },
				func(p *cloth.Params) { p.Iterations = 0 },
				func(p *cloth.Params) { p.Gravity = math.NaN() },
				func(p *cloth.Params) { p.Floor.Clamp = p.Floor.Y - 1 },
			}
			for _, mutate := range bad {
				p := cloth.DefaultParams()
				mutate(&p)
				s, err := cloth.NewStepper(c, p)
				Expect(s).To(BeNil())
				Expect(errors.Is(err, cloth.ErrInvalidConfig)).To(BeTrue(), "params %+v", p)
			}
		})

		It("rejects a nil cloth", func() {
			_, err := cloth.NewStepper(nil, params)
			Expect(err).To(MatchError(cloth.ErrInvalidConfig))
		})
	})

	Describe("first tick", func() {
		It("records the timestamp without moving anything", func() {
			s, err := cloth.NewStepper(c, params)
			Expect(err).NotTo(HaveOccurred())
			before := c.Positions()

			s.Step(1234.5)

			Expect(s.Started()).To(BeTrue())
			Expect(s.Ticks()).To(Equal(0))
			Expect(s.LastTime()).To(Equal(1234.5))
			Expect(c.Positions()).To(Equal(before))
		})

		It("treats a zero timestamp as a real first tick", func() {
			s, _ := cloth.NewStepper(c, params)
			s.Step(0)
			s.Step(0)
			Expect(s.Ticks()).To(Equal(1))
		})
	})

	Describe("fixed timestep", func() {
		It("ignores the spacing of timestamps", func() {
			a := newCube(3, 3, 3)
			b := newCube(3, 3, 3)
			sa, _ := cloth.NewStepper(a, params)
			sb, _ := cloth.NewStepper(b, params)

			for i := 0; i < 20; i++ {
				sa.Step(float64(i) * 0.016)
				sb.Step(float64(i*i) * 3)
			}
			Expect(a.Positions()).To(Equal(b.Positions()))
			Expect(sa.SimTime()).To(BeNumerically("~", 19*params.Timestep, 1e-12))
		})

		It("follows the closed-form Verlet fall for a rigid pair", func() {
			pairCloth, err := cloth.New(cloth.Lattice{Width: 2, Height: 1, Depth: 1, RestDistance: 25, Mass: 0.1}, cloth.Cube(50, 1, 1))
			Expect(err).NotTo(HaveOccurred())
			params.Floor.Enabled = false
			s, _ := cloth.NewStepper(pairCloth, params)

			y0 := pairCloth.Particles[0].Position.Y()
			s.Step(0)
			for i := 1; i <= 60; i++ {
				s.Step(float64(i))
			}

			want := verletFall(y0, -params.Gravity, params.Timestep, params.Damping, 60)
			for _, p := range pairCloth.Particles {
				Expect(p.Position.Y()).To(BeNumerically("~", want, 1e-8*math.Abs(want)))
			}
		})
	})

	Describe("floor", func() {
		It("clamps exactly once", func() {
			f := cloth.Floor{Enabled: true, Y: cloth.DefaultFloorY, Clamp: cloth.DefaultClampY}
			p := cloth.NewParticle(mgl64.Vec3{3, -25, 1}, 1)

			Expect(f.Apply(&p)).To(BeTrue())
			Expect(p.Position.Y()).To(Equal(cloth.DefaultClampY))
			Expect(p.Previous.Y()).To(Equal(-25.0))

			Expect(f.Apply(&p)).To(BeFalse())
			Expect(p.Position).To(Equal(mgl64.Vec3{3, cloth.DefaultClampY, 1}))
		})

		It("keeps a falling cloth above the floor after every tick", func() {
			s, _ := cloth.NewStepper(c, params)
			for i := 0; i < 400; i++ {
				s.Step(float64(i))
				for _, p := range c.Particles {
					Expect(p.Position.Y()).To(BeNumerically(">=", params.Floor.Y))
				}
			}
		})
	})

	Describe("pins", func() {
		It("hold pinned particles at their rest pose under any load", func() {
			Expect(c.PinSelection("top")).To(Succeed())
			params.Wind = cloth.ConstantWind{40, 0, -15}
			s, _ := cloth.NewStepper(c, params)

			for i := 0; i < 300; i++ {
				s.Step(float64(i))
				for _, idx := range c.Pins() {
					p := c.Particles[idx]
					Expect(p.Position).To(Equal(p.Original))
					Expect(p.Previous).To(Equal(p.Original))
				}
			}
		})

		It("win over the floor clamp", func() {
			low := newCube(2, 2, 1)
			for i := range low.Particles {
				low.Particles[i].Original[1] = -50
				low.Particles[i].Restore()
			}
			Expect(low.Pin(0)).To(Succeed())
			s, _ := cloth.NewStepper(low, params)
			s.Step(0)
			s.Step(1)
			Expect(low.Particles[0].Position.Y()).To(Equal(-50.0))
			Expect(low.Particles[1].Position.Y()).To(Equal(cloth.DefaultClampY))
		})
	})

	Describe("relaxation", func() {
		It("keeps a hanging cloth stiffer with more iterations", func() {
			stretchAfter := func(iterations int) float64 {
				cl := newCube(8, 8, 1)
				Expect(cl.PinSelection("top")).To(Succeed())
				p := cloth.DefaultParams()
				p.Floor.Enabled = false
				p.Iterations = iterations
				s, _ := cloth.NewStepper(cl, p)
				for i := 0; i < 50; i++ {
					s.Step(float64(i))
				}
				return cl.MaxStretch()
			}
			Expect(stretchAfter(15)).To(BeNumerically("<", stretchAfter(1)))
		})

		It("matches a serial batched pass when run on several workers", func() {
			a := newCube(12, 12, 3)
			b := newCube(12, 12, 3)
			pa := params
			pa.Workers = 6
			sa, _ := cloth.NewStepper(a, pa)

			s, _ := cloth.NewStepper(b, params)
			batches := cloth.ColorBatches(b)
			for i := 0; i < 25; i++ {
				sa.Step(float64(i))
			}
			// Reproduce the same schedule by hand on b.
			s.Step(0)
			for i := 1; i < 25; i++ {
				for j := range b.Particles {
					pt := &b.Particles[j]
					pt.AddForce(mgl64.Vec3{0, -params.Gravity * pt.Mass, 0})
					pt.Integrate(params.Timestep*params.Timestep, 1-params.Damping)
				}
				b.RelaxBatches(batches, params.Iterations, 1)
				for j := range b.Particles {
					params.Floor.Apply(&b.Particles[j])
				}
				b.EnforcePins()
			}
			Expect(a.Positions()).To(Equal(b.Positions()))
		})
	})

	Describe("Reset", func() {
		It("returns to the uninitialized state and rest pose", func() {
			s, _ := cloth.NewStepper(c, params)
			for i := 0; i < 10; i++ {
				s.Step(float64(i))
			}
			s.Reset()
			Expect(s.Started()).To(BeFalse())
			Expect(s.Ticks()).To(Equal(0))
			for _, p := range c.Particles {
				Expect(p.Position).To(Equal(p.Original))
			}
		})
	})

	Describe("wind", func() {
		It("pushes an unpinned cloth downwind", func() {
			still := newCube(3, 3, 3)
			windy := newCube(3, 3, 3)
			p := params
			p.Wind = cloth.ConstantWind{50, 0, 0}
			s1, _ := cloth.NewStepper(still, params)
			s2, _ := cloth.NewStepper(windy, p)
			for i := 0; i < 30; i++ {
				s1.Step(float64(i))
				s2.Step(float64(i))
			}
			Expect(windy.Particles[13].Position.X()).To(BeNumerically(">", still.Particles[13].Position.X()))
		})

		It("samples time-varying wind at simulated time", func() {
			w := cloth.OscillatingWind{Strength: 2}
			Expect(w.At(0).Len()).To(BeNumerically("~", 2, 1e-12))
			Expect(w.At(3.7).Len()).To(BeNumerically("~", 2, 1e-12))

			n := cloth.NewNoiseWind(2, 42)
			Expect(n.At(1.25)).To(Equal(cloth.NewNoiseWind(2, 42).At(1.25)))
		})
	})
})

// verletFall sums the per-step displacements of a particle falling from rest
// under acceleration a with the given damping.
func verletFall(y0, a, dt, damping float64, n int) float64 {
	drag := 1 - damping
	y := y0
	for k := 1; k <= n; k++ {
		y += a * dt * dt * (1 - math.Pow(drag, float64(k))) / damping
	}
	return y
}
