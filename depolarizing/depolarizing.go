// Package depolarizing builds depolarizing-type channels from ancilla
// dilations.
package depolarizing

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/go-faster/errors"
	"github.com/oqtopus-team/oqtopus-engine/noiseapp/circuit"
	"github.com/oqtopus-team/oqtopus-engine/noiseapp/common"
	"github.com/oqtopus-team/oqtopus-engine/noiseapp/core"
	"github.com/oqtopus-team/oqtopus-engine/noiseapp/pauli"
	"go.uber.org/zap"
)

type Mode int

const (
	// TwoAncilla shares the dilation of the pauli package and contracts the
	// transverse Bloch components by 1-p.
	TwoAncilla Mode = iota
	// ThreeAncilla drives three independent ancillas controlling X, Y and Z.
	ThreeAncilla
	// Uniform realizes rho -> (1-p) rho + p I/2 with the two-ancilla dilation.
	Uniform
)

func (m Mode) String() string {
	switch m {
	case TwoAncilla:
		return "two_ancilla"
	case ThreeAncilla:
		return "three_ancilla"
	case Uniform:
		return "uniform"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func (m Mode) NumAncillae() int {
	if m == ThreeAncilla {
		return 3
	}
	return 2
}

func ParseMode(s string) (Mode, error) {
	for _, m := range []Mode{TwoAncilla, ThreeAncilla, Uniform} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, core.InvalidParameterf("unknown depolarizing mode %q", s)
}

// Within fullyMixedTol of p = 1 the radical loses more precision to the
// 1/sqrt(p-1) cancellation than the fixed constants are off by.
const fullyMixedTol = 1e-8

var fullyMixedCoefficients = [3]complex128{
	complex(1/math.Sqrt2, 0),
	complex(math.Sqrt(2+math.Sqrt2)/2, 0),
	complex(math.Sqrt(2+math.Sqrt2)/2, 0),
}

// Coefficients returns the two-ancilla coefficients for probability p.
// p = 0 has no coefficients (the channel is the identity) and is reported
// as core.ErrDegenerateInput; p = 1 uses fixed constants because the
// general formula divides by sqrt(p-1).
func Coefficients(p float64) ([3]complex128, error) {
	if err := core.ValidateProbability("p", p); err != nil {
		return [3]complex128{}, err
	}
	if common.IsClose(p, 0) {
		return [3]complex128{}, errors.Wrapf(core.ErrDegenerateInput, "p=%v is the identity channel", p)
	}
	if common.IsCloseTol(p, 1, 0, fullyMixedTol) {
		return fullyMixedCoefficients, nil
	}

	sqrt := cmplx.Sqrt
	sqrt2 := complex(math.Sqrt2, 0)
	z := complex(p, 0)
	s := sqrt((4 - 3*z) * z * z * z)
	r := sqrt((2 + (-2+z)*z + s) / (1 + z*z))

	c0 := sqrt(-4-2*sqrt2*r-sqrt2*z*z*r+sqrt2*s*r+2*z*(2+sqrt2*r)) /
		(2 * sqrt2 * sqrt(-1+z))
	c12 := -sqrt(2+sqrt2*r) / 2
	return [3]complex128{c0, c12, c12}, nil
}

// Angles returns the rotation angles of mode for probability p.
// The returned slice is empty when p is (numerically) zero.
func Angles(mode Mode, p float64) ([]float64, error) {
	if err := core.ValidateProbability("p", p); err != nil {
		return nil, err
	}
	if common.IsClose(p, 0) {
		zap.L().Debug(fmt.Sprintf("p=%v: %s, returning the identity", p, core.ErrDegenerateInput))
		return []float64{}, nil
	}
	switch mode {
	case TwoAncilla:
		c, err := Coefficients(p)
		if err != nil {
			return nil, err
		}
		theta, err := pauli.AnglesFromCoefficients(c)
		if err != nil {
			return nil, err
		}
		return theta[:], nil
	case ThreeAncilla:
		theta := ThreeAncillaAngle(p)
		return []float64{theta, theta, theta}, nil
	case Uniform:
		q := complex(p/4, 0)
		theta, err := pauli.Solve(pauli.Probabilities{q, q, q})
		if err != nil {
			return nil, err
		}
		return theta[:], nil
	default:
		return nil, core.InvalidParameterf("unknown depolarizing mode %d", int(mode))
	}
}

// ThreeAncillaAngle is the RY angle arccos(1-2p)/2 of each ancilla.
func ThreeAncillaAngle(p float64) float64 {
	return 0.5 * math.Acos(1-2*p)
}

// RecoverProbability inverts the two-ancilla template: the transverse
// Bloch components shrink by p_I - p_Z = 1 - p.
func RecoverProbability(theta pauli.Angles) float64 {
	probs := pauli.ImpliedProbabilities(theta)
	return 1 - (probs[0] - probs[3])
}

// RecoverThreeAncillaProbability inverts ThreeAncillaAngle.
func RecoverThreeAncillaProbability(theta float64) float64 {
	return (1 - math.Cos(2*theta)) / 2
}

// Build returns the depolarizing circuit of mode acting on system.
// ancillae must hold mode.NumAncillae() indices.
func Build(mode Mode, numQubits int, p float64, system int, ancillae []int) (*circuit.Circuit, error) {
	if len(ancillae) != mode.NumAncillae() {
		return nil, core.InvalidParameterf("%s needs %d ancillae, got %d", mode, mode.NumAncillae(), len(ancillae))
	}
	theta, err := Angles(mode, p)
	if err != nil {
		return nil, err
	}
	b := circuit.NewBuilder(numQubits, 0)
	if len(theta) == 0 {
		return b.Build()
	}
	zap.L().Debug(fmt.Sprintf("depolarizing %s p=%v theta=%v", mode, p, theta))
	if mode == ThreeAncilla {
		for _, a := range ancillae {
			b.RY(theta[0], a)
		}
		b.CX(ancillae[0], system).
			CY(ancillae[1], system).
			CZ(ancillae[2], system)
		return b.Build()
	}
	pauli.ApplyDilation(b, pauli.Angles{theta[0], theta[1], theta[2]}, system, [2]int{ancillae[0], ancillae[1]})
	return b.Build()
}

// Channel is Build in TwoAncilla mode.
func Channel(numQubits int, p float64, system int, ancillae [2]int) (*circuit.Circuit, error) {
	return Build(TwoAncilla, numQubits, p, system, ancillae[:])
}

// ChannelThreeAncilla is Build in ThreeAncilla mode.
func ChannelThreeAncilla(numQubits int, p float64, system int, ancillae [3]int) (*circuit.Circuit, error) {
	return Build(ThreeAncilla, numQubits, p, system, ancillae[:])
}
