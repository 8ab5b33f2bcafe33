package sim

import (
	"context"
	"testing"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig(ticks, every int) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Run.Ticks = ticks
	cfg.Run.SampleEvery = every
	return cfg
}

func TestRunnerTicksAndSamples(t *testing.T) {
	r, _, err := FromConfig(smallConfig(1, 1))
	require.NoError(t, err)

	result, err := r.Run(context.Background(), Options{Ticks: 10, SampleEvery: 5})
	require.NoError(t, err)

	dt := r.Stepper().Params().Timestep
	assert.Equal(t, 10, result.Ticks)
	assert.Equal(t, 10, r.Stepper().Ticks())
	require.Len(t, result.Frames, 3)
	assert.InDeltaSlice(t, []float64{0, 5 * dt, 10 * dt}, result.Times, 1e-12)
	for name, h := range result.History {
		assert.Len(t, h, 3, name)
	}
	assert.Contains(t, result.Metrics, "max_stretch")
}

func TestRunnerFinalSampleAlwaysTaken(t *testing.T) {
	r, _, err := FromConfig(smallConfig(1, 1))
	require.NoError(t, err)

	result, err := r.Run(context.Background(), Options{Ticks: 7, SampleEvery: 5})
	require.NoError(t, err)
	assert.Len(t, result.Frames, 3)

	result, err = r.Run(context.Background(), Options{Ticks: 7})
	require.NoError(t, err)
	assert.Len(t, result.Frames, 1)
}

func TestRunnerFirstFrameIsRestPose(t *testing.T) {
	r, _, err := FromConfig(smallConfig(1, 1))
	require.NoError(t, err)

	result, err := r.Run(context.Background(), Options{Ticks: 20, SampleEvery: 1})
	require.NoError(t, err)

	c := r.Stepper().Cloth()
	for i, p := range result.Frames[0] {
		assert.Equal(t, c.Particles[i].Original, p)
	}
	assert.NotEqual(t, result.Frames[0], result.Final(), "frames must be copies")
}

func TestRunnerObservers(t *testing.T) {
	r, _, err := FromConfig(smallConfig(1, 1))
	require.NoError(t, err)

	var calls int
	var last float64
	r.AddObserver(ObserverFunc(func(_ *cloth.Cloth, t float64) {
		calls++
		last = t
	}))

	_, err = r.Run(context.Background(), Options{Ticks: 12, SampleEvery: 4})
	require.NoError(t, err)
	assert.Equal(t, 13, calls)
	assert.InDelta(t, 12*r.Stepper().Params().Timestep, last, 1e-12)
}

func TestRunnerDeterministic(t *testing.T) {
	run := func() *Result {
		r, opts, err := FromConfig(smallConfig(60, 20))
		require.NoError(t, err)
		result, err := r.Run(context.Background(), opts)
		require.NoError(t, err)
		return result
	}

	a, b := run(), run()
	assert.Equal(t, a.Final(), b.Final())

	r, opts, err := FromConfig(smallConfig(60, 20))
	require.NoError(t, err)
	first, err := r.Run(context.Background(), opts)
	require.NoError(t, err)
	second, err := r.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, first.Final(), second.Final(), "Run resets the stepper")
}

func TestRunnerCancelled(t *testing.T) {
	r, opts, err := FromConfig(smallConfig(100, 10))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := r.Run(ctx, opts)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.Zero(t, result.Ticks)
	assert.Empty(t, result.Frames)
}

func TestRunnerInvalidOptions(t *testing.T) {
	r, _, err := FromConfig(smallConfig(1, 1))
	require.NoError(t, err)

	tests := []struct {
		name string
		opts Options
	}{
		{"negative ticks", Options{Ticks: -1}},
		{"negative interval", Options{Ticks: 1, SampleEvery: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Run(context.Background(), tt.opts)
			assert.Error(t, err)
		})
	}
}

func TestResultFinalEmpty(t *testing.T) {
	assert.Nil(t, (&Result{}).Final())
}
