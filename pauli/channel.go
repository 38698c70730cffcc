package pauli

import (
	"fmt"
	"math/cmplx"

	"github.com/oqtopus-team/oqtopus-engine/noiseapp/circuit"
	"github.com/oqtopus-team/oqtopus-engine/noiseapp/common"
	"github.com/oqtopus-team/oqtopus-engine/noiseapp/core"
	"go.uber.org/zap"
)

type rateParams struct {
	T     float64 `validate:"finite,gte=0"`
	Eta   float64 `validate:"finite"`
	Omega float64 `validate:"finite"`
}

// TanhProbabilities are the probabilities generated by the rates
// gamma1 = gamma2 = eta/2, gamma3 = -omega tanh(omega t)/2.
func TanhProbabilities(t, eta, omega float64) Probabilities {
	return rateProbabilities(t, eta, cmplx.Cosh(complex(t*omega, 0)))
}

// TanProbabilities are the probabilities generated by the rates
// gamma1 = gamma2 = eta/2, gamma3 = omega tan(omega t)/2.
func TanProbabilities(t, eta, omega float64) Probabilities {
	return rateProbabilities(t, eta, cmplx.Cos(complex(t*omega, 0)))
}

func rateProbabilities(t, eta float64, osc complex128) Probabilities {
	e1 := cmplx.Exp(complex(-t*eta, 0))
	e2 := cmplx.Exp(complex(-2*t*eta, 0))
	pxy := 0.25 * (1 - e2)
	return Probabilities{
		pxy,
		pxy,
		0.25 * (1 + e2 - 2*e1*osc),
	}
}

// Channel applies the Pauli channel with probabilities p to system.
func Channel(numQubits, system int, ancillae [2]int, p Probabilities) (*circuit.Circuit, error) {
	theta, err := Solve(p)
	if err != nil {
		return nil, err
	}
	zap.L().Debug(fmt.Sprintf("pauli channel p=%v theta=%v", p.Real(), theta))
	b := circuit.NewBuilder(numQubits, 0)
	ApplyDilation(b, theta, system, ancillae)
	return b.Build()
}

// ApplyDilation appends the two-ancilla dilation with angles theta.
func ApplyDilation(b *circuit.Builder, theta Angles, system int, ancillae [2]int) {
	a0, a1 := ancillae[0], ancillae[1]
	b.RY(theta[0], a0).
		CX(a0, a1).
		RY(theta[1], a0).
		RY(theta[2], a1).
		CX(a0, system).
		CY(a1, system)
}

// ChannelTanh is Channel with TanhProbabilities. At t = 0 the channel is
// the identity and the circuit is empty.
func ChannelTanh(numQubits int, t float64, system int, ancillae [2]int, eta, omega float64) (*circuit.Circuit, error) {
	return rateChannel(numQubits, t, system, ancillae, eta, omega, TanhProbabilities)
}

// ChannelTan is Channel with TanProbabilities. At t = 0 the circuit is empty.
func ChannelTan(numQubits int, t float64, system int, ancillae [2]int, eta, omega float64) (*circuit.Circuit, error) {
	return rateChannel(numQubits, t, system, ancillae, eta, omega, TanProbabilities)
}

func rateChannel(numQubits int, t float64, system int, ancillae [2]int, eta, omega float64,
	probs func(t, eta, omega float64) Probabilities) (*circuit.Circuit, error) {
	if err := core.ValidateParams(&rateParams{T: t, Eta: eta, Omega: omega}); err != nil {
		return nil, err
	}
	if common.IsClose(t, 0) {
		zap.L().Debug(fmt.Sprintf("t=%v: %s, returning the identity", t, core.ErrDegenerateInput))
		return circuit.Empty(numQubits, 0)
	}
	return Channel(numQubits, system, ancillae, probs(t, eta, omega))
}
