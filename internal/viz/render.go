package viz

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/clothsim/internal/cloth"
)

// clipMargin bounds how far off-canvas a line endpoint may be before the
// segment is dropped, which keeps Bresenham loops short.
const clipMargin = 4

type screenPoint struct {
	x, y int
	ok   bool
}

// DrawCloth renders the constraints of c as lines, pinned particles as dots
// and, when enabled, the outline of the floor under the cloth.
func DrawCloth(cv *Canvas, cam *Camera, c *cloth.Cloth, floor cloth.Floor) {
	sw, sh := cv.Size()
	view := cam.View()

	pts := make([]screenPoint, len(c.Particles))
	for i := range c.Particles {
		x, y, _, ok := cam.Project(view, c.Particles[i].Position, sw, sh)
		pts[i] = screenPoint{x, y, ok && inReach(x, y, sw, sh)}
	}

	if floor.Enabled {
		drawFloor(cv, cam, view, c, floor.Y)
	}

	for _, con := range c.Constraints {
		a, b := pts[con.A], pts[con.B]
		if a.ok && b.ok {
			cv.DrawLine(a.x, a.y, b.x, b.y)
		}
	}

	for _, i := range c.Pins() {
		if p := pts[i]; p.ok {
			cv.Dot(p.x, p.y)
		}
	}
}

func drawFloor(cv *Canvas, cam *Camera, view mgl64.Mat4, c *cloth.Cloth, y float64) {
	if len(c.Particles) == 0 {
		return
	}
	lo, hi := c.Particles[0].Original, c.Particles[0].Original
	for i := range c.Particles {
		p := c.Particles[i].Original
		lo[0], hi[0] = min(lo[0], p[0]), max(hi[0], p[0])
		lo[2], hi[2] = min(lo[2], p[2]), max(hi[2], p[2])
	}
	pad := 0.25 * max(hi[0]-lo[0], hi[2]-lo[2], 1)
	corners := []mgl64.Vec3{
		{lo[0] - pad, y, lo[2] - pad},
		{hi[0] + pad, y, lo[2] - pad},
		{hi[0] + pad, y, hi[2] + pad},
		{lo[0] - pad, y, hi[2] + pad},
	}

	sw, sh := cv.Size()
	for i := range corners {
		x0, y0, _, ok0 := cam.Project(view, corners[i], sw, sh)
		x1, y1, _, ok1 := cam.Project(view, corners[(i+1)%len(corners)], sw, sh)
		if ok0 && ok1 && inReach(x0, y0, sw, sh) && inReach(x1, y1, sw, sh) {
			cv.DrawLine(x0, y0, x1, y1)
		}
	}
}

func inReach(x, y, sw, sh int) bool {
	return x > -clipMargin*sw && x < (clipMargin+1)*sw &&
		y > -clipMargin*sh && y < (clipMargin+1)*sh
}
