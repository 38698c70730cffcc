package damping

import (
	"fmt"
	"math"

	"github.com/oqtopus-team/oqtopus-engine/noiseapp/circuit"
	"github.com/oqtopus-team/oqtopus-engine/noiseapp/core"
	"go.uber.org/zap"
)

// Observable selects the two-qubit Pauli correlation read out by the
// non-Markovianity witness.
type Observable string

const (
	ObservableXX Observable = "xx"
	ObservableYY Observable = "yy"
	ObservableZZ Observable = "zz"
)

func ParseObservable(s string) (Observable, error) {
	switch o := Observable(s); o {
	case ObservableXX, ObservableYY, ObservableZZ:
		return o, nil
	default:
		return "", core.InvalidParameterf("unknown observable %q", s)
	}
}

// Angle is the dilation angle 2 arccos(c1(R, t)).
func Angle(R, t float64) (float64, error) {
	c1, err := Coherence(R, t)
	if err != nil {
		return 0, err
	}
	// c1 is within [-1, 1] up to rounding
	return 2 * math.Acos(math.Max(-1, math.Min(1, c1))), nil
}

// InitialState prepares the system qubit in |1>.
func InitialState(numQubits, sys int) (*circuit.Circuit, error) {
	return circuit.NewBuilder(numQubits, 0).
		X(sys).
		Build()
}

// InitialStateWitness prepares system and ancilla in |psi+>.
func InitialStateWitness(numQubits, sys, anc int) (*circuit.Circuit, error) {
	return circuit.NewBuilder(numQubits, 0).
		H(sys).
		CX(sys, anc).
		Build()
}

// Channel applies the amplitude damping channel to sys through the
// environment qubit env and measures sys into c[0].
func Channel(numQubits, sys, env int, R, t float64) (*circuit.Circuit, error) {
	theta, err := Angle(R, t)
	if err != nil {
		return nil, err
	}
	zap.L().Debug(fmt.Sprintf("amplitude damping R=%v t=%v theta=%v", R, t, theta))
	b := circuit.NewBuilder(numQubits, 1)
	applyChannel(b, theta, sys, env)
	return b.Measure(sys, 0).Build()
}

// ChannelWitness applies the channel and measures the chosen correlation
// of sys and anc into c[0] and c[1].
func ChannelWitness(numQubits, sys, env, anc int, observable Observable, R, t float64) (*circuit.Circuit, error) {
	if _, err := ParseObservable(string(observable)); err != nil {
		return nil, err
	}
	theta, err := Angle(R, t)
	if err != nil {
		return nil, err
	}
	b := circuit.NewBuilder(numQubits, 2)
	applyChannel(b, theta, sys, env)
	switch observable {
	case ObservableXX:
		b.H(sys).H(anc)
	case ObservableYY:
		b.Sdg(sys).H(sys).Sdg(anc).H(anc)
	}
	return b.
		Measure(sys, 0).
		Measure(anc, 1).
		Build()
}

func applyChannel(b *circuit.Builder, theta float64, sys, env int) {
	b.CRY(theta, sys, env).
		CX(env, sys)
}

// CorrelationFromCounts returns the two-qubit correlation <PP> read from
// the counts of ChannelWitness, with sys on c[0] and anc on c[1].
func CorrelationFromCounts(counts core.Counts) (float64, error) {
	m, err := counts.Marginal(0, 1)
	if err != nil {
		return 0, err
	}
	return m.Parity(), nil
}
