//go:build unit
// +build unit

package circuit

import (
	"math"
	"testing"

	"github.com/oqtopus-team/oqtopus-engine/noiseapp/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	c, err := NewBuilder(3, 1).
		H(0).
		CRY(0.5, 0, 1).
		CX(1, 0).
		Barrier().
		Measure(0, 0).
		Build()
	require.NoError(t, err)

	assert.Equal(t, 3, c.NumQubits())
	assert.Equal(t, 1, c.NumClbits())
	assert.Equal(t, 5, c.Len())
	assert.False(t, c.IsEmpty())

	ops := c.Operations()
	assert.Equal(t, Operation{Gate: H, Qubits: []int{0}, Clbit: -1}, ops[0])
	assert.Equal(t, Operation{Gate: CRY, Qubits: []int{0, 1}, Params: []float64{0.5}, Clbit: -1}, ops[1])
	assert.Equal(t, 0, ops[1].Control())
	assert.Equal(t, 1, ops[1].Target())
	assert.Equal(t, -1, ops[0].Control())
	assert.Equal(t, []int{0, 1, 2}, ops[3].Qubits)
	assert.True(t, ops[4].IsMeasurement())
	assert.Equal(t, 0, ops[4].Clbit)
	assert.Equal(t, map[GateName]int{H: 1, CRY: 1, CX: 1, Barrier: 1, Measure: 1}, c.GateCounts())
}

func TestBuilderErrors(t *testing.T) {
	tests := []struct {
		name    string
		build   func() (*Circuit, error)
		checkFn func(error) bool
	}{
		{
			name:    "no qubits",
			build:   func() (*Circuit, error) { return NewBuilder(0, 0).Build() },
			checkFn: core.IsInvalidParameter,
		},
		{
			name:    "negative clbits",
			build:   func() (*Circuit, error) { return NewBuilder(1, -1).Build() },
			checkFn: core.IsInvalidParameter,
		},
		{
			name:    "qubit out of range",
			build:   func() (*Circuit, error) { return NewBuilder(2, 0).H(2).Build() },
			checkFn: core.IsInvalidParameter,
		},
		{
			name:    "same control and target",
			build:   func() (*Circuit, error) { return NewBuilder(2, 0).CX(1, 1).Build() },
			checkFn: core.IsInvalidParameter,
		},
		{
			name:    "clbit out of range",
			build:   func() (*Circuit, error) { return NewBuilder(2, 1).Measure(0, 1).Build() },
			checkFn: core.IsInvalidParameter,
		},
		{
			name:    "nan angle",
			build:   func() (*Circuit, error) { return NewBuilder(1, 0).RY(math.NaN(), 0).Build() },
			checkFn: core.IsNumericDomain,
		},
		{
			name: "first error sticks",
			build: func() (*Circuit, error) {
				return NewBuilder(1, 0).H(5).RZ(math.Inf(1), 0).X(0).Build()
			},
			checkFn: core.IsInvalidParameter,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.build()
			assert.Nil(t, c)
			assert.True(t, tt.checkFn(err), "unexpected error: %v", err)
		})
	}
}

func TestCircuitIsImmutable(t *testing.T) {
	b := NewBuilder(2, 0).RY(1, 0)
	c, err := b.Build()
	require.NoError(t, err)

	b.X(1)
	assert.Equal(t, 1, c.Len())

	ops := c.Operations()
	ops[0].Params[0] = 42
	ops[0].Qubits[0] = 1
	assert.Equal(t, []float64{1}, c.Operation(0).Params)
	assert.Equal(t, []int{0}, c.Operation(0).Qubits)
}

func TestCompose(t *testing.T) {
	a, err := NewBuilder(2, 0).X(0).Build()
	require.NoError(t, err)
	b, err := NewBuilder(2, 2).CX(0, 1).Measure(1, 1).Build()
	require.NoError(t, err)

	c, err := Compose(a, b)
	require.NoError(t, err)
	assert.Equal(t, 2, c.NumClbits())
	assert.Equal(t, []GateName{X, CX, Measure}, gates(c))

	other, err := NewBuilder(3, 0).Build()
	require.NoError(t, err)
	_, err = Compose(a, other)
	assert.True(t, core.IsInvalidParameter(err))

	_, err = Compose()
	assert.True(t, core.IsInvalidParameter(err))

	assert.NotPanics(t, func() {
		_, err = Compose(nil, a)
	})
	assert.True(t, core.IsInvalidParameter(err))
	_, err = Compose(a, nil)
	assert.True(t, core.IsInvalidParameter(err))
}

func TestEmpty(t *testing.T) {
	c, err := Empty(3, 0)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, []Operation{}, c.Operations())
}

func gates(c *Circuit) []GateName {
	out := []GateName{}
	for _, op := range c.Operations() {
		out = append(out, op.Gate)
	}
	return out
}
