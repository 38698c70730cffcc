package experiment

import (
	"github.com/oqtopus-team/oqtopus-engine/noiseapp/circuit"
	"github.com/oqtopus-team/oqtopus-engine/noiseapp/collisional"
	"github.com/oqtopus-team/oqtopus-engine/noiseapp/core"
	"github.com/oqtopus-team/oqtopus-engine/noiseapp/damping"
	"github.com/oqtopus-team/oqtopus-engine/noiseapp/depolarizing"
	"github.com/oqtopus-team/oqtopus-engine/noiseapp/pauli"
	"github.com/oqtopus-team/oqtopus-engine/noiseapp/reservoir"
)

const (
	KindAmplitudeDamping        Kind = "amplitude_damping"
	KindAmplitudeDampingWitness Kind = "amplitude_damping_witness"
	KindPauliTanh               Kind = "pauli_tanh"
	KindPauliTan                Kind = "pauli_tan"
	KindDepolarizing            Kind = "depolarizing"
	KindCollisional             Kind = "collisional"
	KindReservoirZZ             Kind = "reservoir_zz"
	KindReservoirXX             Kind = "reservoir_xx"
	KindReservoirZZXX           Kind = "reservoir_zz_xx"
)

func builtinKinds() map[Kind]BuildFunc {
	return map[Kind]BuildFunc{
		KindAmplitudeDamping:        buildAmplitudeDamping,
		KindAmplitudeDampingWitness: buildAmplitudeDampingWitness,
		KindPauliTanh:               buildPauli(pauli.ChannelTanh, pauli.TanhProbabilities),
		KindPauliTan:                buildPauli(pauli.ChannelTan, pauli.TanProbabilities),
		KindDepolarizing:            buildDepolarizing,
		KindCollisional:             buildCollisional,
		KindReservoirZZ:             buildReservoirSingle(reservoir.ZZPump),
		KindReservoirXX:             buildReservoirSingle(reservoir.XXPump),
		KindReservoirZZXX:           buildReservoirZZXX,
	}
}

func checkQubits(e *Experiment, system, ancillae int) error {
	if len(e.System) != system || len(e.Ancillae) != ancillae {
		return core.InvalidParameterf("%s needs %d system qubits and %d ancillae, got %d and %d",
			e.Kind, system, ancillae, len(e.System), len(e.Ancillae))
	}
	return nil
}

func requireAll(p Params, names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, n := range names {
		v, err := p.Require(n)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func dampingObservables(R, t float64) (map[string]float64, error) {
	c1, err := damping.Coherence(R, t)
	if err != nil {
		return nil, err
	}
	capacity, err := damping.CapacityAt(R, t)
	if err != nil {
		return nil, err
	}
	return map[string]float64{"coherence": c1, "capacity": capacity}, nil
}

func buildAmplitudeDamping(e *Experiment, p Params) (*circuit.Circuit, map[string]float64, error) {
	if err := checkQubits(e, 1, 1); err != nil {
		return nil, nil, err
	}
	v, err := requireAll(p, "R", "t")
	if err != nil {
		return nil, nil, err
	}
	sys, env := e.System[0], e.Ancillae[0]
	ic, err := damping.InitialState(e.NumQubits, sys)
	if err != nil {
		return nil, nil, err
	}
	ch, err := damping.Channel(e.NumQubits, sys, env, v[0], v[1])
	if err != nil {
		return nil, nil, err
	}
	c, err := circuit.Compose(ic, ch)
	if err != nil {
		return nil, nil, err
	}
	obs, err := dampingObservables(v[0], v[1])
	return c, obs, err
}

func buildAmplitudeDampingWitness(e *Experiment, p Params) (*circuit.Circuit, map[string]float64, error) {
	if err := checkQubits(e, 1, 2); err != nil {
		return nil, nil, err
	}
	v, err := requireAll(p, "R", "t")
	if err != nil {
		return nil, nil, err
	}
	observable, err := damping.ParseObservable(e.Observable)
	if err != nil {
		return nil, nil, err
	}
	sys, env, anc := e.System[0], e.Ancillae[0], e.Ancillae[1]
	ic, err := damping.InitialStateWitness(e.NumQubits, sys, anc)
	if err != nil {
		return nil, nil, err
	}
	ch, err := damping.ChannelWitness(e.NumQubits, sys, env, anc, observable, v[0], v[1])
	if err != nil {
		return nil, nil, err
	}
	c, err := circuit.Compose(ic, ch)
	if err != nil {
		return nil, nil, err
	}
	obs, err := dampingObservables(v[0], v[1])
	return c, obs, err
}

type pauliChannelFunc func(numQubits int, t float64, system int, ancillae [2]int, eta, omega float64) (*circuit.Circuit, error)

func buildPauli(channel pauliChannelFunc, probs func(t, eta, omega float64) pauli.Probabilities) BuildFunc {
	return func(e *Experiment, p Params) (*circuit.Circuit, map[string]float64, error) {
		if err := checkQubits(e, 1, 2); err != nil {
			return nil, nil, err
		}
		v, err := requireAll(p, "t", "eta", "omega")
		if err != nil {
			return nil, nil, err
		}
		c, err := channel(e.NumQubits, v[0], e.System[0], [2]int{e.Ancillae[0], e.Ancillae[1]}, v[1], v[2])
		if err != nil {
			return nil, nil, err
		}
		pr := probs(v[0], v[1], v[2]).Real()
		return c, map[string]float64{"p_x": pr[0], "p_y": pr[1], "p_z": pr[2]}, nil
	}
}

func buildDepolarizing(e *Experiment, p Params) (*circuit.Circuit, map[string]float64, error) {
	mode := depolarizing.TwoAncilla
	if e.Mode != "" {
		m, err := depolarizing.ParseMode(e.Mode)
		if err != nil {
			return nil, nil, err
		}
		mode = m
	}
	if err := checkQubits(e, 1, mode.NumAncillae()); err != nil {
		return nil, nil, err
	}
	prob, err := p.Require("p")
	if err != nil {
		return nil, nil, err
	}
	c, err := depolarizing.Build(mode, e.NumQubits, prob, e.System[0], e.Ancillae)
	if err != nil {
		return nil, nil, err
	}
	return c, map[string]float64{"p": prob}, nil
}

func buildCollisional(e *Experiment, p Params) (*circuit.Circuit, map[string]float64, error) {
	if len(e.System) != 1 || len(e.Ancillae) == 0 {
		return nil, nil, core.InvalidParameterf("%s needs 1 system qubit and at least 1 ancilla", e.Kind)
	}
	opts := collisional.DefaultOptions()
	opts.G = p.Get("g", opts.G)
	opts.Tau = p.Get("tau", opts.Tau)
	opts.Measure = e.Measure
	opts.EnvironmentQubits = len(e.Ancillae)
	if e.CollisionNumber != nil {
		opts.CollisionNumber = *e.CollisionNumber
	}
	if e.EnvironmentState != "" {
		st, err := collisional.ParseEnvironmentState(e.EnvironmentState)
		if err != nil {
			return nil, nil, err
		}
		opts.EnvironmentState = st
	}
	c, err := collisional.Model(e.NumQubits, e.System[0], e.Ancillae, opts)
	if err != nil {
		return nil, nil, err
	}
	return c, map[string]float64{"collision_angle": collisional.CollisionAngle(opts.G, opts.Tau)}, nil
}

type pumpFunc func(numQubits int, p float64, system [2]int, ancilla int) (*circuit.Circuit, error)

func buildReservoirSingle(pump pumpFunc) BuildFunc {
	return func(e *Experiment, p Params) (*circuit.Circuit, map[string]float64, error) {
		if err := checkQubits(e, 2, 1); err != nil {
			return nil, nil, err
		}
		prob, err := p.Require("p")
		if err != nil {
			return nil, nil, err
		}
		c, err := pump(e.NumQubits, prob, [2]int{e.System[0], e.System[1]}, e.Ancillae[0])
		if err != nil {
			return nil, nil, err
		}
		return pumpObservables(c, prob)
	}
}

func buildReservoirZZXX(e *Experiment, p Params) (*circuit.Circuit, map[string]float64, error) {
	if err := checkQubits(e, 2, 2); err != nil {
		return nil, nil, err
	}
	prob, err := p.Require("p")
	if err != nil {
		return nil, nil, err
	}
	c, err := reservoir.ZZXXPump(e.NumQubits, prob,
		[2]int{e.System[0], e.System[1]}, [2]int{e.Ancillae[0], e.Ancillae[1]})
	if err != nil {
		return nil, nil, err
	}
	return pumpObservables(c, prob)
}

func pumpObservables(c *circuit.Circuit, p float64) (*circuit.Circuit, map[string]float64, error) {
	theta, err := reservoir.PumpAngle(p)
	if err != nil {
		return nil, nil, err
	}
	return c, map[string]float64{"pump_angle": theta}, nil
}
