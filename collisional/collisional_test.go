//go:build unit
// +build unit

package collisional

import (
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/oqtopus-team/oqtopus-engine/noiseapp/circuit"
	"github.com/oqtopus-team/oqtopus-engine/noiseapp/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollisionAngle(t *testing.T) {
	assert.Equal(t, 0.5, CollisionAngle(1, 0.5))
	assert.Equal(t, 0.0, CollisionAngle(0, 3))
}

func TestModel(t *testing.T) {
	opts := DefaultOptions()
	opts.G = 0.25
	opts.Measure = true
	c, err := Model(3, 0, []int{1, 2}, opts)
	require.NoError(t, err)
	assert.Equal(t, heredoc.Doc(`
		OPENQASM 3;
		include "stdgates.inc";
		qubit[3] q;
		bit[1] c;

		h q[0];
		h q[1];
		cx q[1], q[2];
		barrier q[0], q[1], q[2];
		rz(0.5) q[0];
		crz(-1) q[1], q[0];
		rz(0.5) q[0];
		crz(-1) q[2], q[0];
		barrier q[0], q[1], q[2];
		h q[0];
		c[0] = measure q[0];
	`), c.QASM())
}

func TestModelCollisionsCycle(t *testing.T) {
	opts := DefaultOptions()
	opts.CollisionNumber = 5
	opts.EnvironmentQubits = 2
	opts.EnvironmentState = EnvironmentGround
	c, err := Model(4, 0, []int{1, 2, 3}, opts)
	require.NoError(t, err)
	assert.Equal(t, 0, c.NumClbits())

	envs := []int{}
	for _, op := range c.Operations() {
		if op.Gate == circuit.CRZ {
			envs = append(envs, op.Control())
		}
	}
	assert.Equal(t, []int{1, 2, 1, 2, 1}, envs)
}

func TestModelNoCollisions(t *testing.T) {
	opts := DefaultOptions()
	opts.CollisionNumber = 0
	opts.EnvironmentState = EnvironmentPlus
	c, err := Model(3, 2, []int{0, 1}, opts)
	require.NoError(t, err)
	gates := []circuit.GateName{}
	for _, op := range c.Operations() {
		gates = append(gates, op.Gate)
	}
	assert.Equal(t, []circuit.GateName{circuit.H, circuit.H, circuit.H, circuit.Barrier}, gates)
}

func TestModelFewerCollisionsThanEnvironment(t *testing.T) {
	opts := DefaultOptions()
	opts.CollisionNumber = 1
	opts.EnvironmentState = EnvironmentGround
	c, err := Model(3, 0, []int{1}, opts)
	require.NoError(t, err)

	envs := []int{}
	for _, op := range c.Operations() {
		if op.Gate == circuit.CRZ {
			envs = append(envs, op.Control())
		}
	}
	assert.Equal(t, []int{1}, envs)

	opts.CollisionNumber = 2
	_, err = Model(3, 0, []int{1}, opts)
	assert.True(t, core.IsInvalidParameter(err))
}

func TestModelErrors(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*Options)
		ancillae []int
	}{
		{name: "too many environment qubits", modify: func(o *Options) { o.EnvironmentQubits = 3 }, ancillae: []int{1, 2}},
		{name: "unknown environment", modify: func(o *Options) { o.EnvironmentState = "thermal" }, ancillae: []int{1, 2}},
		{name: "negative collisions", modify: func(o *Options) { o.CollisionNumber = -2 }, ancillae: []int{1, 2}},
		{name: "missing ancillae", modify: func(o *Options) {}, ancillae: []int{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			_, err := Model(3, 0, tt.ancillae, opts)
			assert.True(t, core.IsInvalidParameter(err), "unexpected error: %v", err)
		})
	}
}

func TestPrepareEnvironment(t *testing.T) {
	b := circuit.NewBuilder(3, 0)
	require.NoError(t, PrepareEnvironment(b, []int{0, 1, 2}, EnvironmentGHZ))
	c, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	b = circuit.NewBuilder(3, 0)
	require.NoError(t, PrepareEnvironment(b, []int{0, 1}, EnvironmentGround))
	c, err = b.Build()
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	assert.True(t, core.IsInvalidParameter(PrepareEnvironment(b, []int{0}, "mixed")))
}

func TestCoherenceFromCounts(t *testing.T) {
	tests := []struct {
		name   string
		counts core.Counts
		want   float64
	}{
		{name: "only zeros", counts: core.Counts{"0": 10}, want: 0.5},
		{name: "balanced", counts: core.Counts{"0": 5, "1": 5}, want: 0},
		{name: "empty", counts: core.Counts{}, want: 0.5},
		{name: "nil", counts: nil, want: 0.5},
		{name: "only ones", counts: core.Counts{"1": 4}, want: -0.5},
		{name: "skewed", counts: core.Counts{"0": 3, "1": 1}, want: 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoherenceFromCounts(tt.counts))
		})
	}
}
