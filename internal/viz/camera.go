package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	minZoom   = 0.1
	maxZoom   = 10
	maxPitch  = 1.5
	nearPlane = 0.1
)

// Camera orbits Target at Distance, looking at it from the yaw/pitch
// direction, with a perspective projection.
type Camera struct {
	Target   mgl64.Vec3
	Yaw      float64
	Pitch    float64
	Distance float64
	Zoom     float64
	FOV      float64
}

func NewCamera() *Camera {
	return &Camera{Yaw: 0.6, Pitch: 0.35, Distance: 200, Zoom: 1, FOV: math.Pi / 4}
}

func (c *Camera) Rotate(yaw, pitch float64) {
	c.Yaw += yaw
	c.Pitch = mgl64.Clamp(c.Pitch+pitch, -maxPitch, maxPitch)
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(maxZoom, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(minZoom, c.Zoom/1.2) }

// Frame aims the camera at the centre of the points' bounding box, far enough
// back to keep them all in view.
func (c *Camera) Frame(points []mgl64.Vec3) {
	if len(points) == 0 {
		return
	}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = math.Min(lo[k], p[k])
			hi[k] = math.Max(hi[k], p[k])
		}
	}
	c.Target = lo.Add(hi).Mul(0.5)
	radius := hi.Sub(lo).Len() / 2
	if radius < 1 {
		radius = 1
	}
	c.Distance = 1.2 * radius / math.Tan(c.FOV/2)
}

// Eye is the camera position in world space.
func (c *Camera) Eye() mgl64.Vec3 {
	dir := mgl64.Vec3{
		math.Cos(c.Pitch) * math.Sin(c.Yaw),
		math.Sin(c.Pitch),
		math.Cos(c.Pitch) * math.Cos(c.Yaw),
	}
	return c.Target.Add(dir.Mul(c.Distance))
}

func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye(), c.Target, mgl64.Vec3{0, 1, 0})
}

// Project maps a world point to sub-pixel coordinates on a sw x sh surface.
// ok is false for points behind the near plane.
func (c *Camera) Project(view mgl64.Mat4, p mgl64.Vec3, sw, sh int) (x, y int, depth float64, ok bool) {
	v := view.Mul4x1(p.Vec4(1))
	depth = -v.Z()
	if depth < nearPlane {
		return 0, 0, depth, false
	}
	scale := float64(min(sw, sh)) / 2 / math.Tan(c.FOV/2) * c.Zoom
	x = sw/2 + int(math.Round(v.X()/depth*scale))
	y = sh/2 - int(math.Round(v.Y()/depth*scale))
	return x, y, depth, true
}
