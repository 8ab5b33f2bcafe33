package sim

import (
	"context"
	"testing"

	"github.com/san-kum/clothsim/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsembleMatchesSerialRuns(t *testing.T) {
	var cfgs []*config.Config
	for _, iters := range []int{1, 3, 8} {
		cfg := smallConfig(40, 10)
		cfg.Solver.Iterations = iters
		cfgs = append(cfgs, cfg)
	}

	results, err := NewEnsemble(cfgs, 2).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, len(cfgs))

	for i, cfg := range cfgs {
		r, opts, err := FromConfig(cfg)
		require.NoError(t, err)
		want, err := r.Run(context.Background(), opts)
		require.NoError(t, err)
		assert.Equal(t, want.Final(), results[i].Final(), "config %d", i)
		assert.Equal(t, want.Metrics, results[i].Metrics, "config %d", i)
	}
}

func TestEnsembleError(t *testing.T) {
	bad := smallConfig(0, 1)
	_, err := NewEnsemble([]*config.Config{smallConfig(5, 1), bad}, 0).Run(context.Background())
	assert.ErrorIs(t, err, config.ErrInvalid)
}
