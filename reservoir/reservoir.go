// Package reservoir builds the Markovian reservoir engineering pumps that
// drive two system qubits towards Bell states.
package reservoir

import (
	"fmt"
	"math"

	"github.com/oqtopus-team/oqtopus-engine/noiseapp/circuit"
	"github.com/oqtopus-team/oqtopus-engine/noiseapp/core"
	"go.uber.org/zap"
)

// StateLabels are the computational basis states prepared by InitialConditions.
var StateLabels = []string{"00", "01", "10", "11"}

const numClbits = 2

// PumpAngle is the conditional rotation angle for pump efficiency p.
func PumpAngle(p float64) (float64, error) {
	if err := core.ValidateProbability("p", p); err != nil {
		return 0, err
	}
	return 2 * math.Asin(math.Sqrt(p)), nil
}

// InitialConditions returns one preparation circuit per label in StateLabels.
// Label "ab" sets system[0] to b and system[1] to a.
func InitialConditions(numQubits int, system [2]int) (map[string]*circuit.Circuit, []string, error) {
	flips := map[string][]int{
		"00": {},
		"01": {system[0]},
		"10": {system[1]},
		"11": {system[0], system[1]},
	}
	ic := make(map[string]*circuit.Circuit, len(StateLabels))
	for _, label := range StateLabels {
		b := circuit.NewBuilder(numQubits, 0)
		for _, q := range flips[label] {
			b.X(q)
		}
		c, err := b.Build()
		if err != nil {
			return nil, nil, err
		}
		ic[label] = c
	}
	labels := make([]string, len(StateLabels))
	copy(labels, StateLabels)
	return ic, labels, nil
}

// ZZPump pumps the system towards the +1 eigenspace of ZZ.
func ZZPump(numQubits int, p float64, system [2]int, ancilla int) (*circuit.Circuit, error) {
	theta, err := PumpAngle(p)
	if err != nil {
		return nil, err
	}
	zap.L().Debug(fmt.Sprintf("zz pump p=%v theta=%v", p, theta))
	b := circuit.NewBuilder(numQubits, numClbits)
	b.CX(system[0], system[1])
	zzStage(b, theta, system, ancilla)
	b.H(system[0])
	measureSystem(b, system)
	return b.Build()
}

// XXPump pumps the system towards the +1 eigenspace of XX.
func XXPump(numQubits int, p float64, system [2]int, ancilla int) (*circuit.Circuit, error) {
	theta, err := PumpAngle(p)
	if err != nil {
		return nil, err
	}
	zap.L().Debug(fmt.Sprintf("xx pump p=%v theta=%v", p, theta))
	b := circuit.NewBuilder(numQubits, numClbits)
	b.CX(system[0], system[1])
	xxStage(b, theta, system, ancilla)
	measureSystem(b, system)
	return b.Build()
}

// ZZXXPump applies the ZZ pump followed by the XX pump with the same
// efficiency, each with its own ancilla.
func ZZXXPump(numQubits int, p float64, system [2]int, ancillae [2]int) (*circuit.Circuit, error) {
	theta, err := PumpAngle(p)
	if err != nil {
		return nil, err
	}
	zap.L().Debug(fmt.Sprintf("zz+xx pump p=%v theta=%v", p, theta))
	b := circuit.NewBuilder(numQubits, numClbits)
	b.CX(system[0], system[1])
	zzStage(b, theta, system, ancillae[0])
	xxStage(b, theta, system, ancillae[1])
	measureSystem(b, system)
	return b.Build()
}

// zzStage maps the parity onto ancilla, rotates system[1] conditioned on it
// and undoes the mapping.
func zzStage(b *circuit.Builder, theta float64, system [2]int, ancilla int) {
	b.X(ancilla).
		CX(system[1], ancilla).
		CRY(theta, ancilla, system[1]).
		CX(system[1], ancilla)
}

func xxStage(b *circuit.Builder, theta float64, system [2]int, ancilla int) {
	b.H(system[0]).
		X(ancilla).
		CX(system[0], ancilla).
		CRY(theta, ancilla, system[0]).
		CX(system[0], ancilla)
}

func measureSystem(b *circuit.Builder, system [2]int) {
	b.Measure(system[0], 0).
		Measure(system[1], 1)
}
