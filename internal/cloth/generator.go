package cloth

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Generator maps a normalised lattice coordinate to an initial position.
// It must be deterministic.
type Generator func(u, v, w float64) mgl64.Vec3

// Cube spans a box of the given size, centred on x and z and resting on
// y = height/2.
func Cube(width, height, depth float64) Generator {
	return func(u, v, w float64) mgl64.Vec3 {
		return mgl64.Vec3{
			(u - 0.5) * width,
			(v + 0.5) * height,
			(w - 0.5) * depth,
		}
	}
}

// Plane spans a vertical sheet in the z = 0 plane. w is ignored.
func Plane(width, height float64) Generator {
	return func(u, v, _ float64) mgl64.Vec3 {
		return mgl64.Vec3{(u - 0.5) * width, (v + 0.5) * height, 0}
	}
}

// Sphere wraps u around the equator and v from pole to pole. w scales the
// shell radius from radius to 2*radius. The centre sits 2*radius above the
// origin.
func Sphere(radius float64) Generator {
	return func(u, v, w float64) mgl64.Vec3 {
		r := radius * (1 + w)
		theta := 2 * math.Pi * u
		phi := math.Pi * v
		return mgl64.Vec3{
			r * math.Sin(phi) * math.Cos(theta),
			2*radius - r*math.Cos(phi),
			r * math.Sin(phi) * math.Sin(theta),
		}
	}
}

// Shapes lists the names accepted by GeneratorFor.
var Shapes = []string{"cube", "plane", "sphere"}

// GeneratorFor returns the named shape sized so that neighbouring particles
// start roughly RestDistance apart.
func GeneratorFor(shape string, l Lattice) (Generator, error) {
	s := l.RestDistance
	switch shape {
	case "", "cube":
		return Cube(s*float64(l.Width), s*float64(l.Height), s*float64(l.Depth)), nil
	case "plane":
		return Plane(s*float64(l.Width), s*float64(l.Height)), nil
	case "sphere":
		return Sphere(s * float64(l.Width) / (2 * math.Pi)), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownShape, shape)
}
