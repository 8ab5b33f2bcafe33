package analysis

import (
	"errors"
	"math/cmplx"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mjibson/go-dsp/fft"
)

var ErrTooShort = errors.New("signal too short")

// Centroid returns the mean coordinate of each frame along axis (0, 1 or 2).
func Centroid(frames [][]mgl64.Vec3, axis int) []float64 {
	out := make([]float64, len(frames))
	for i, frame := range frames {
		if len(frame) == 0 {
			continue
		}
		sum := 0.0
		for _, p := range frame {
			sum += p[axis]
		}
		out[i] = sum / float64(len(frame))
	}
	return out
}

// Spectrum returns the one-sided amplitude spectrum of samples taken every dt
// seconds. The mean is removed first so bin 0 only carries numerical noise.
func Spectrum(samples []float64, dt float64) (freqs, amps []float64, err error) {
	n := len(samples)
	if n < 4 {
		return nil, nil, ErrTooShort
	}
	if !(dt > 0) {
		return nil, nil, errors.New("sample interval must be positive")
	}

	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(n)

	centred := make([]float64, n)
	for i, v := range samples {
		centred[i] = v - mean
	}

	coeffs := fft.FFTReal(centred)
	bins := n/2 + 1
	freqs = make([]float64, bins)
	amps = make([]float64, bins)
	for k := 0; k < bins; k++ {
		freqs[k] = float64(k) / (float64(n) * dt)
		amps[k] = 2 * cmplx.Abs(coeffs[k]) / float64(n)
	}
	amps[0] /= 2
	if n%2 == 0 {
		amps[bins-1] /= 2
	}
	return freqs, amps, nil
}

// Dominant returns the frequency and amplitude of the strongest bin above DC.
func Dominant(samples []float64, dt float64) (freq, amp float64, err error) {
	freqs, amps, err := Spectrum(samples, dt)
	if err != nil {
		return 0, 0, err
	}
	best := 1
	for k := 2; k < len(amps); k++ {
		if amps[k] > amps[best] {
			best = k
		}
	}
	return freqs[best], amps[best], nil
}

// SettleTime returns the earliest time after which every sample stays within
// tol of the final sample, and false if the signal never settles before its
// last sample.
func SettleTime(times, samples []float64, tol float64) (float64, bool) {
	if len(samples) == 0 || len(times) != len(samples) {
		return 0, false
	}
	final := samples[len(samples)-1]
	last := len(samples) - 1
	for i := len(samples) - 1; i >= 0; i-- {
		d := samples[i] - final
		if d > tol || d < -tol {
			break
		}
		last = i
	}
	if last == len(samples)-1 && len(samples) > 1 {
		return 0, false
	}
	return times[last], true
}
