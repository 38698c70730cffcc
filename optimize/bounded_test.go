//go:build unit
// +build unit

package optimize

import (
	"math"
	"testing"

	"github.com/oqtopus-team/oqtopus-engine/noiseapp/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinimizeBounded(t *testing.T) {
	tests := []struct {
		name  string
		f     func(float64) float64
		lower float64
		upper float64
		wantX float64
	}{
		{
			name:  "parabola",
			f:     func(x float64) float64 { return (x - 0.3) * (x - 0.3) },
			lower: 0, upper: 1, wantX: 0.3,
		},
		{
			name:  "cosine",
			f:     math.Cos,
			lower: 2, upper: 4, wantX: math.Pi,
		},
		{
			name:  "minimum at lower bound",
			f:     func(x float64) float64 { return x },
			lower: -1, upper: 1, wantX: -1,
		},
		{
			name:  "minimum at upper bound",
			f:     func(x float64) float64 { return -x },
			lower: 0, upper: 2, wantX: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := MinimizeBounded(tt.f, tt.lower, tt.upper)
			require.NoError(t, err)
			assert.True(t, res.Converged)
			assert.InDelta(t, tt.wantX, res.X, 1e-4)
			assert.Equal(t, tt.f(res.X), res.F)
			assert.GreaterOrEqual(t, res.X, tt.lower)
			assert.LessOrEqual(t, res.X, tt.upper)
		})
	}
}

func TestMinimizeBoundedMaxIter(t *testing.T) {
	res, err := MinimizeBounded(math.Cos, 2, 4, WithMaxIter(2))
	require.NoError(t, err)
	assert.False(t, res.Converged)
	assert.Equal(t, 2, res.Evaluations)
}

func TestMinimizeBoundedTolerance(t *testing.T) {
	f := func(x float64) float64 { return (x - 0.123456789) * (x - 0.123456789) }
	res, err := MinimizeBounded(f, 0, 1, WithXATol(1e-10))
	require.NoError(t, err)
	assert.InDelta(t, 0.123456789, res.X, 1e-8)
}

func TestMinimizeBoundedInvalid(t *testing.T) {
	f := func(x float64) float64 { return x }
	tests := []struct {
		name  string
		lower float64
		upper float64
		opts  []Option
	}{
		{name: "inverted", lower: 1, upper: 0},
		{name: "nan", lower: math.NaN(), upper: 1},
		{name: "inf", lower: 0, upper: math.Inf(1)},
		{name: "zero tolerance", lower: 0, upper: 1, opts: []Option{WithXATol(0)}},
		{name: "zero iterations", lower: 0, upper: 1, opts: []Option{WithMaxIter(0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MinimizeBounded(f, tt.lower, tt.upper, tt.opts...)
			assert.True(t, core.IsInvalidParameter(err))
		})
	}
}
