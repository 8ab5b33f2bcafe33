// Package cloth provides the numerical core of the mass-spring cloth
// simulator.
//
// A cloth is a regular 3D lattice of point masses joined by structural
// distance constraints:
//
//   - [Particle]: position history, force accumulator and Verlet step
//   - [Constraint]: fixed rest length between two axis-adjacent particles
//   - [Cloth]: particle array, constraint list and pin set
//   - [Stepper]: per-tick orchestration (forces, integration, relaxation,
//     floor clamp, pins)
//
// # Example
//
//	c, _ := cloth.New(cloth.DefaultLattice(), cloth.Cube(75, 75, 75))
//	s, _ := cloth.NewStepper(c, cloth.DefaultParams())
//	for frame := 0; frame < 100; frame++ {
//	    s.Step(float64(frame) / 60)
//	}
//	positions := c.Positions()
//
// # Velocity
//
// Velocity is never stored. It is implied by Position - Previous, which is
// why the constraint solver can move positions directly without any
// velocity correction.
//
// # Thread Safety
//
// A Cloth and its Stepper are NOT thread-safe. Independent cloths share no
// state and can be stepped from separate goroutines.
package cloth
