//go:build unit
// +build unit

package core

import (
	"math"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorHelpers(t *testing.T) {
	err := InvalidParameterf("p=%v", 2)
	assert.True(t, IsInvalidParameter(err))
	assert.False(t, IsNumericDomain(err))
	assert.Contains(t, err.Error(), "p=2")

	err = NumericDomainf("c=%v", 1.5)
	assert.True(t, IsNumericDomain(err))
	assert.True(t, errors.Is(errors.Wrap(err, "solve"), ErrNumericDomain))
}

type testParams struct {
	R float64 `validate:"finite,gte=0"`
	T float64 `validate:"finite"`
}

func TestValidateParams(t *testing.T) {
	tests := []struct {
		name    string
		params  *testParams
		wantErr bool
	}{
		{name: "valid", params: &testParams{R: 0.5, T: -1}},
		{name: "negative", params: &testParams{R: -0.5}, wantErr: true},
		{name: "nan", params: &testParams{R: math.NaN()}, wantErr: true},
		{name: "inf", params: &testParams{T: math.Inf(-1)}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateParams(tt.params)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.True(t, IsInvalidParameter(err))
		})
	}

	err := ValidateParams(&testParams{R: -1, T: math.NaN()})
	assert.Contains(t, err.Error(), "R=-1 violates gte=0")
	assert.Contains(t, err.Error(), "violates finite")
}

func TestValidateProbability(t *testing.T) {
	assert.NoError(t, ValidateProbability("p", 0))
	assert.NoError(t, ValidateProbability("p", 1))
	for _, p := range []float64{-1e-12, 1.0000001, math.NaN(), math.Inf(1)} {
		assert.True(t, IsInvalidParameter(ValidateProbability("p", p)), "p=%v", p)
	}
}
