//go:build unit
// +build unit

package damping

import (
	"math"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/oqtopus-team/oqtopus-engine/noiseapp/circuit"
	"github.com/oqtopus-team/oqtopus-engine/noiseapp/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAngle(t *testing.T) {
	theta, err := Angle(0.3, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, theta)

	c1, err := Coherence(2, 3)
	require.NoError(t, err)
	theta, err = Angle(2, 3)
	require.NoError(t, err)
	assert.InDelta(t, c1, math.Cos(theta/2), 1e-12)
	assert.Greater(t, theta, math.Pi)
}

func TestInitialStates(t *testing.T) {
	ic, err := InitialState(2, 1)
	require.NoError(t, err)
	assert.Equal(t, heredoc.Doc(`
		OPENQASM 3;
		include "stdgates.inc";
		qubit[2] q;

		x q[1];
	`), ic.QASM())

	icw, err := InitialStateWitness(3, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, heredoc.Doc(`
		OPENQASM 3;
		include "stdgates.inc";
		qubit[3] q;

		h q[0];
		cx q[0], q[2];
	`), icw.QASM())
}

func TestChannel(t *testing.T) {
	c, err := Channel(2, 0, 1, 0.2, 0)
	require.NoError(t, err)
	assert.Equal(t, heredoc.Doc(`
		OPENQASM 3;
		include "stdgates.inc";
		qubit[2] q;
		bit[1] c;

		cry(0) q[0], q[1];
		cx q[1], q[0];
		c[0] = measure q[0];
	`), c.QASM())

	c, err = Channel(2, 0, 1, 2, 1)
	require.NoError(t, err)
	theta, err := Angle(2, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{theta}, c.Operation(0).Params)

	_, err = Channel(2, 0, 1, -1, 1)
	assert.True(t, core.IsInvalidParameter(err))
	_, err = Channel(2, 0, 2, 0.1, 1)
	assert.True(t, core.IsInvalidParameter(err))
}

func TestChannelWitness(t *testing.T) {
	tests := []struct {
		name       string
		observable Observable
		basis      []circuit.GateName
	}{
		{name: "xx", observable: ObservableXX, basis: []circuit.GateName{circuit.H, circuit.H}},
		{name: "yy", observable: ObservableYY, basis: []circuit.GateName{circuit.SDG, circuit.H, circuit.SDG, circuit.H}},
		{name: "zz", observable: ObservableZZ, basis: []circuit.GateName{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ChannelWitness(3, 0, 1, 2, tt.observable, 0.2, 1)
			require.NoError(t, err)
			assert.Equal(t, 2, c.NumClbits())

			ops := c.Operations()
			require.Len(t, ops, 4+len(tt.basis))
			assert.Equal(t, circuit.CRY, ops[0].Gate)
			assert.Equal(t, circuit.CX, ops[1].Gate)
			for i, g := range tt.basis {
				assert.Equal(t, g, ops[2+i].Gate)
			}
			last := ops[len(ops)-2:]
			assert.Equal(t, []int{0}, last[0].Qubits)
			assert.Equal(t, 0, last[0].Clbit)
			assert.Equal(t, []int{2}, last[1].Qubits)
			assert.Equal(t, 1, last[1].Clbit)
		})
	}

	_, err := ChannelWitness(3, 0, 1, 2, Observable("xy"), 0.2, 1)
	assert.True(t, core.IsInvalidParameter(err))
}

func TestParseObservable(t *testing.T) {
	o, err := ParseObservable("yy")
	require.NoError(t, err)
	assert.Equal(t, ObservableYY, o)
	_, err = ParseObservable("XX")
	assert.True(t, core.IsInvalidParameter(err))
}

func TestCorrelationFromCounts(t *testing.T) {
	got, err := CorrelationFromCounts(core.Counts{"00": 45, "11": 45, "01": 5, "10": 5})
	require.NoError(t, err)
	assert.InDelta(t, 0.8, got, 1e-12)

	got, err = CorrelationFromCounts(core.Counts{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	_, err = CorrelationFromCounts(core.Counts{"1": 3})
	assert.True(t, core.IsInvalidParameter(err))
}
