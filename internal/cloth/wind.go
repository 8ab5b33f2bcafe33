package cloth

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"
)

// Wind yields the wind force acting on every particle at simulated time t
// (seconds).
type Wind interface {
	At(t float64) mgl64.Vec3
}

// ConstantWind blows with the same force at all times.
type ConstantWind mgl64.Vec3

func (w ConstantWind) At(float64) mgl64.Vec3 { return mgl64.Vec3(w) }

// OscillatingWind sweeps its direction along (sin t/2, cos t/3, sin t) with a
// fixed strength.
type OscillatingWind struct {
	Strength float64
}

func (w OscillatingWind) At(t float64) mgl64.Vec3 {
	dir := mgl64.Vec3{math.Sin(t / 2), math.Cos(t / 3), math.Sin(t)}
	if dir.Len() == 0 {
		return mgl64.Vec3{}
	}
	return dir.Normalize().Mul(w.Strength)
}

// NoiseWind drives each axis with an independent 1D Perlin noise track.
type NoiseWind struct {
	Strength float64
	// Scale converts seconds to noise-space distance.
	Scale float64
	axes  [3]*perlin.Perlin
}

func NewNoiseWind(strength float64, seed int64) *NoiseWind {
	w := &NoiseWind{Strength: strength, Scale: 0.5}
	for i := range w.axes {
		w.axes[i] = perlin.NewPerlin(2, 2, 3, seed+int64(i)*7919)
	}
	return w
}

func (w *NoiseWind) At(t float64) mgl64.Vec3 {
	x := t * w.Scale
	return mgl64.Vec3{
		w.axes[0].Noise1D(x),
		w.axes[1].Noise1D(x),
		w.axes[2].Noise1D(x),
	}.Mul(w.Strength)
}
