package export

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/viz"
)

// RenderFrame rebuilds the lattice topology, places its particles at the
// stored positions and draws it onto a new canvas of w x h cells.
func RenderFrame(l cloth.Lattice, shape string, frame []mgl64.Vec3, floor cloth.Floor, w, h int) (*viz.Canvas, error) {
	gen, err := cloth.GeneratorFor(shape, l)
	if err != nil {
		return nil, err
	}
	c, err := cloth.New(l, gen)
	if err != nil {
		return nil, err
	}
	if len(frame) != c.Len() {
		return nil, fmt.Errorf("frame has %d particles, lattice needs %d", len(frame), c.Len())
	}

	cam := viz.NewCamera()
	cam.Frame(c.Positions())
	for i := range frame {
		c.Particles[i].Position = frame[i]
	}

	canvas := viz.NewCanvas(w, h)
	viz.DrawCloth(canvas, cam, c, floor)
	return canvas, nil
}
