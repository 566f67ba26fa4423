package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"circuitlab/maths"
	"circuitlab/types"
)

func TestThresholdsValidate(t *testing.T) {
	require.NoError(t, types.DefaultThresholds().Validate())

	tests := []struct {
		name   string
		modify func(th *types.Thresholds)
	}{
		{"zero epsilon", func(th *types.Thresholds) { th.Epsilon = 0 }},
		{"open above magnitude", func(th *types.Thresholds) { th.OpenThreshold = 2 * th.OpenMagnitude }},
		{"epsilon above open", func(th *types.Thresholds) { th.Epsilon = th.OpenThreshold }},
		{"ratio order", func(th *types.Thresholds) { th.LitRatio = th.BurntRatio }},
		{"weak above lit", func(th *types.Thresholds) { th.WeakRatio = 0.9 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := types.DefaultThresholds()
			tt.modify(&th)
			assert.ErrorIs(t, th.Validate(), types.ErrInvalidParameter)
		})
	}
}

func TestThresholdsClassifyMagnitude(t *testing.T) {
	th := types.DefaultThresholds()
	assert.True(t, th.IsOpen(th.Open().Abs()))
	assert.False(t, th.IsOpen(1e6))
	assert.True(t, th.IsShort(0))
	assert.False(t, th.IsShort(1e-3))

	r := maths.NewComplex(100, 0)
	assert.Equal(t, r, th.Parallel(r, th.Open()))
	assert.Equal(t, r, th.Parallel(th.Open(), r))
	assert.True(t, th.Parallel(r, r).Equal(maths.NewComplex(50, 0), 1e-12))
}

func TestThresholdsFromEnv(t *testing.T) {
	t.Setenv(types.EnvWeakRatio, "0.1")
	t.Setenv(types.EnvBurntRatio, "2")
	t.Setenv(types.EnvLatchBurnt, "false")
	th, err := types.ThresholdsFromEnv(types.DefaultThresholds())
	require.NoError(t, err)
	assert.Equal(t, 0.1, th.WeakRatio)
	assert.Equal(t, 0.8, th.LitRatio)
	assert.Equal(t, 2.0, th.BurntRatio)
	assert.False(t, th.LatchBurnt)
	assert.True(t, th.StrictFrequency)

	t.Setenv(types.EnvLitRatio, "abc")
	_, err = types.ThresholdsFromEnv(types.DefaultThresholds())
	assert.ErrorIs(t, err, types.ErrInvalidParameter)

	t.Setenv(types.EnvLitRatio, "3")
	_, err = types.ThresholdsFromEnv(types.DefaultThresholds())
	assert.ErrorIs(t, err, types.ErrInvalidParameter)
}
