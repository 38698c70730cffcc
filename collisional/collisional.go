// Package collisional builds the collisional model of a qubit dephasing
// through repeated collisions with an environment register.
package collisional

import (
	"fmt"

	"github.com/oqtopus-team/oqtopus-engine/noiseapp/circuit"
	"github.com/oqtopus-team/oqtopus-engine/noiseapp/core"
	"go.uber.org/zap"
)

type EnvironmentState string

const (
	EnvironmentGHZ    EnvironmentState = "ghz"
	EnvironmentPlus   EnvironmentState = "plus"
	EnvironmentGround EnvironmentState = "ground"
)

func ParseEnvironmentState(s string) (EnvironmentState, error) {
	switch st := EnvironmentState(s); st {
	case EnvironmentGHZ, EnvironmentPlus, EnvironmentGround:
		return st, nil
	default:
		return "", core.InvalidParameterf("environment state can be 'ghz', 'plus' or 'ground', got %q", s)
	}
}

// AllEnvironment makes Model collide once with every environment qubit.
const AllEnvironment = -1

type Options struct {
	// CollisionNumber is the number of collisions, or AllEnvironment.
	CollisionNumber int     `validate:"gte=-1"`
	G               float64 `validate:"finite"`
	Tau             float64 `validate:"finite"`
	// Measure appends an X measurement of the system into c[0].
	Measure bool
	// EnvironmentQubits is how many ancillae take part in collisions.
	// Zero means every qubit but the system.
	EnvironmentQubits int              `validate:"gte=0"`
	EnvironmentState  EnvironmentState `validate:"oneof=ghz plus ground"`
}

func DefaultOptions() Options {
	return Options{
		CollisionNumber:  AllEnvironment,
		G:                1,
		Tau:              1,
		EnvironmentState: EnvironmentGHZ,
	}
}

func CollisionAngle(g, tau float64) float64 {
	return g * tau
}

// Collision appends a single system-environment collision.
func Collision(b *circuit.Builder, angle float64, system, env int) *circuit.Builder {
	return b.RZ(2*angle, system).
		CRZ(-4*angle, env, system)
}

// PrepareEnvironment appends the preparation of state on env.
func PrepareEnvironment(b *circuit.Builder, env []int, state EnvironmentState) error {
	switch state {
	case EnvironmentGround:
	case EnvironmentGHZ:
		if len(env) == 0 {
			return nil
		}
		b.H(env[0])
		for i := 0; i < len(env)-1; i++ {
			b.CX(env[i], env[i+1])
		}
	case EnvironmentPlus:
		for _, e := range env {
			b.H(e)
		}
	default:
		_, err := ParseEnvironmentState(string(state))
		return err
	}
	return nil
}

// Model prepares the system in |+>, the environment in opts.EnvironmentState,
// and applies opts.CollisionNumber collisions cycling through the
// environment qubits.
func Model(numQubits, system int, ancillae []int, opts Options) (*circuit.Circuit, error) {
	if err := core.ValidateParams(&opts); err != nil {
		return nil, err
	}
	envQubits := opts.EnvironmentQubits
	if envQubits == 0 {
		envQubits = numQubits - 1
	} else if envQubits > numQubits-1 {
		return nil, core.InvalidParameterf("not enough qubits in the register: %d environment qubits, %d qubits",
			envQubits, numQubits)
	}
	collisions := opts.CollisionNumber
	if collisions == AllEnvironment {
		collisions = envQubits
	}
	if collisions > 0 && envQubits == 0 {
		return nil, core.InvalidParameterf("collisions need at least one environment qubit")
	}
	// collision i uses ancillae[i%envQubits]
	if used := min(collisions, envQubits); used > len(ancillae) {
		return nil, core.InvalidParameterf("%d collisions over %d environment qubits need %d ancillae, got %d",
			collisions, envQubits, used, len(ancillae))
	}

	numClbits := 0
	if opts.Measure {
		numClbits = 1
	}
	b := circuit.NewBuilder(numQubits, numClbits)
	b.H(system)
	if err := PrepareEnvironment(b, ancillae, opts.EnvironmentState); err != nil {
		return nil, err
	}
	b.Barrier()

	angle := CollisionAngle(opts.G, opts.Tau)
	zap.L().Debug(fmt.Sprintf("collisional model: %d collisions, %d environment qubits, angle:%v",
		collisions, envQubits, angle))
	for i := 0; i < collisions; i++ {
		Collision(b, angle, system, ancillae[i%envQubits])
	}

	if opts.Measure {
		b.Barrier().
			H(system).
			Measure(system, 0)
	}
	return b.Build()
}

// CoherenceFromCounts estimates the coherence from the counts of an X
// measurement. Without any "1" outcome it is 0.5.
func CoherenceFromCounts(counts core.Counts) float64 {
	shots := counts.Shots()
	ones := counts.Count("1")
	if ones == 0 || shots == 0 {
		return 0.5
	}
	return 0.5 - float64(ones)/float64(shots)
}
