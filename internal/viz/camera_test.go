package viz

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestCameraProjectsTargetToCentre(t *testing.T) {
	cam := NewCamera()
	cam.Frame([]mgl64.Vec3{{-10, 0, -10}, {10, 40, 10}})
	assert.True(t, cam.Target.ApproxEqual(mgl64.Vec3{0, 20, 0}))

	x, y, depth, ok := cam.Project(cam.View(), cam.Target, 120, 80)
	assert.True(t, ok)
	assert.Equal(t, 60, x)
	assert.Equal(t, 40, y)
	assert.InDelta(t, cam.Distance, depth, 1e-9)
}

func TestCameraBehind(t *testing.T) {
	cam := NewCamera()
	behind := cam.Eye().Add(cam.Eye().Sub(cam.Target))
	_, _, _, ok := cam.Project(cam.View(), behind, 100, 100)
	assert.False(t, ok)
}

func TestCameraUpIsUp(t *testing.T) {
	cam := NewCamera()
	cam.Pitch = 0
	view := cam.View()
	_, yLow, _, _ := cam.Project(view, cam.Target, 100, 100)
	_, yHigh, _, _ := cam.Project(view, cam.Target.Add(mgl64.Vec3{0, 10, 0}), 100, 100)
	assert.Less(t, yHigh, yLow, "screen y grows downward")
}

func TestCameraLimits(t *testing.T) {
	cam := NewCamera()
	cam.Rotate(0, 10)
	assert.Equal(t, maxPitch, cam.Pitch)

	for i := 0; i < 50; i++ {
		cam.ZoomIn()
	}
	assert.Equal(t, float64(maxZoom), cam.Zoom)
	for i := 0; i < 100; i++ {
		cam.ZoomOut()
	}
	assert.Equal(t, minZoom, cam.Zoom)
}
