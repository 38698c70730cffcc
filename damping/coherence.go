// Package damping builds the amplitude damping channel: the coherence
// factor c1(t) of a qubit coupled to a Lorentzian reservoir, the quantum
// capacity it allows, and the two-qubit dilation circuits.
package damping

import (
	"fmt"
	"math"

	"github.com/oqtopus-team/oqtopus-engine/noiseapp/core"
	"github.com/oqtopus-team/oqtopus-engine/noiseapp/entropy"
	"github.com/oqtopus-team/oqtopus-engine/noiseapp/optimize"
	"go.uber.org/zap"
)

// CriticalRatio separates the weak (R < 1/2) and strong (R > 1/2) coupling regimes.
const CriticalRatio = 0.5

const (
	// Below this |t^2 (1-2R) / 4| the coherence is evaluated by its power
	// series, which covers R = 1/2 where 1/sqrt(1-2R) is singular.
	seriesThreshold = 1e-2
	seriesTerms     = 12
)

type coherenceParams struct {
	R float64 `validate:"finite,gte=0"`
	T float64 `validate:"finite,gte=0"`
}

// Coherence returns c1(t) for R = gamma0/lambda and t in units of 1/lambda:
//
//	c1 = e^{-t/2} [cosh(t d/2) + sinh(t d/2)/d],  d = sqrt(1-2R), R < 1/2
//	c1 = e^{-t/2} [cos(t d/2)  + sin(t d/2)/d],   d = sqrt(2R-1), R > 1/2
//
// Both branches are the same entire function of (1-2R), so they meet
// continuously at R = 1/2 where c1 = e^{-t/2}(1 + t/2).
func Coherence(R, t float64) (float64, error) {
	if err := core.ValidateParams(&coherenceParams{R: R, T: t}); err != nil {
		return 0, err
	}
	h := t / 2
	x := 1 - 2*R
	y := h * h * x
	decay := math.Exp(-h)

	if math.Abs(y) < seriesThreshold {
		return decay * (evenSeries(y) + h*oddSeries(y)), nil
	}
	if x > 0 {
		d := math.Sqrt(x)
		return decay * (math.Cosh(h*d) + math.Sinh(h*d)/d), nil
	}
	d := math.Sqrt(-x)
	return decay * (math.Cos(h*d) + math.Sin(h*d)/d), nil
}

// evenSeries is sum y^k/(2k)!, i.e. cosh(sqrt(y)).
func evenSeries(y float64) float64 {
	sum, term := 1.0, 1.0
	for k := 1; k < seriesTerms; k++ {
		term *= y / float64((2*k-1)*(2*k))
		sum += term
	}
	return sum
}

// oddSeries is sum y^k/(2k+1)!, i.e. sinh(sqrt(y))/sqrt(y).
func oddSeries(y float64) float64 {
	sum, term := 1.0, 1.0
	for k := 1; k < seriesTerms; k++ {
		term *= y / float64((2*k)*(2*k+1))
		sum += term
	}
	return sum
}

// Capacity returns the quantum capacity of the amplitude damping channel
// with |c1|^2 = c:
//
//	Q = max_{p in [0,1]} H2(c p) - H2((1-c) p)  for c > 1/2, else 0.
func Capacity(c float64) (float64, error) {
	if err := core.ValidateProbability("c", c); err != nil {
		return 0, err
	}
	if c <= 0.5 {
		return 0, nil
	}
	f := func(p float64) float64 {
		return -entropy.Binary(c*p) + entropy.Binary((1-c)*p)
	}
	res, err := optimize.MinimizeBounded(f, 0, 1)
	if err != nil {
		return 0, err
	}
	zap.L().Debug(fmt.Sprintf("capacity c=%v maximized at p=%v after %d evaluations", c, res.X, res.Evaluations))
	return -res.F, nil
}

// CapacityAt is Capacity(c1(R, t)^2).
func CapacityAt(R, t float64) (float64, error) {
	c1, err := Coherence(R, t)
	if err != nil {
		return 0, err
	}
	return Capacity(math.Min(c1*c1, 1))
}
