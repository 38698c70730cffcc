// Package pauli builds the Pauli channel rho -> sum_i p_i s_i rho s_i with
// p_X = p_Y through a two-ancilla dilation.
//
// The dilation prepares the ancillas with RY(theta0) on a0, CX a0->a1,
// RY(theta1) on a0 and RY(theta2) on a1, then applies CX a0->sys and
// CY a1->sys. Tracing out the ancillas leaves X with probability
// P(a0a1=10), Y with P(01) and Z (as XY) with P(11).
package pauli

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/oqtopus-team/oqtopus-engine/noiseapp/core"
	"go.uber.org/zap"
)

const (
	// domainTol absorbs rounding in probabilities computed from rates.
	domainTol = 1e-9
	// imagTol bounds the imaginary residue of the complex-promoted solution.
	imagTol = 1e-8
	// RoundTripTol is the accepted distance between requested and realized probabilities.
	RoundTripTol = 1e-7
)

// Probabilities are (p_X, p_Y, p_Z), complex-promoted for the solver.
type Probabilities [3]complex128

// Angles are the three RY angles of the dilation.
type Angles [3]float64

// Real returns the real parts.
func (p Probabilities) Real() [3]float64 {
	return [3]float64{real(p[0]), real(p[1]), real(p[2])}
}

// Coefficients evaluates the nested-radical solution of the matching
// equations in complex arithmetic. Only p[0] and p[2] enter; p[1] is
// assumed equal to p[0].
func Coefficients(p Probabilities) [3]complex128 {
	sqrt := cmplx.Sqrt
	sqrt2 := complex(math.Sqrt2, 0)
	p0, p2 := p[0], p[2]
	one := complex(1, 0)
	q := one - 2*p2

	a := sqrt(-(p2 * (-1 + 2*p0 + p2)))
	b := sqrt(-4*p0*p0 + q*q + 8*p0*(p2+a))
	num := 8*p0*p0*p0 -
		4*p0*p0*(-1-6*p2+b) +
		q*q*(-1+2*p2+b) -
		2*p0*(1+4*(p2-3*p2*p2-p2*b+a*b))
	den := 4*p0*p0 + q*q + p0*(4+8*p2)

	return [3]complex128{
		sqrt(one-b) / sqrt2,
		sqrt(num) / (sqrt2 * sqrt((-1+2*p0+2*p2)*den)),
		sqrt(num/den) / sqrt(-2+4*p0+4*p2),
	}
}

// AnglesFromCoefficients maps c to theta = 2 arccos(Re c), discarding the
// imaginary parts after checking they vanish.
func AnglesFromCoefficients(c [3]complex128) (Angles, error) {
	var theta Angles
	for i, ci := range c {
		if cmplx.IsNaN(ci) || cmplx.IsInf(ci) {
			return Angles{}, core.NumericDomainf("coefficient c%d=%v is not finite", i, ci)
		}
		if math.Abs(imag(ci)) > imagTol {
			return Angles{}, core.NumericDomainf("coefficient c%d=%v is not real", i, ci)
		}
		re := real(ci)
		if math.Abs(re) > 1+domainTol {
			return Angles{}, core.NumericDomainf("coefficient c%d=%v is outside [-1, 1]", i, ci)
		}
		theta[i] = 2 * math.Acos(math.Max(-1, math.Min(1, re)))
	}
	return theta, nil
}

// Validate checks that p is a Pauli channel this dilation can realize.
func Validate(p Probabilities) error {
	sum := 0.0
	for i, pi := range p {
		if math.Abs(imag(pi)) > imagTol {
			return core.InvalidParameterf("p%d=%v is not real", i, pi)
		}
		re := real(pi)
		if math.IsNaN(re) || re < -domainTol || re > 1+domainTol {
			return core.InvalidParameterf("p%d=%v must be within [0, 1]", i, re)
		}
		sum += re
	}
	if sum > 1+domainTol {
		return core.InvalidParameterf("probabilities sum to %v > 1", sum)
	}
	if math.Abs(real(p[0])-real(p[1])) > domainTol {
		return core.InvalidParameterf("p_X=%v and p_Y=%v must be equal", real(p[0]), real(p[1]))
	}
	return nil
}

// Solve returns dilation angles realizing p. The nested-radical solution is
// tried first; when its root choice does not reproduce p, the closed form
// of ClosedFormAngles is used instead.
func Solve(p Probabilities) (Angles, error) {
	if err := Validate(p); err != nil {
		return Angles{}, err
	}
	pr := p.Real()
	theta, err := AnglesFromCoefficients(Coefficients(p))
	if err != nil {
		zap.L().Warn(fmt.Sprintf("radical solution failed for p=%v/reason:%s, using closed form", pr, err))
		return ClosedFormAngles(pr[0], pr[2])
	}
	if dist := roundTripDistance(theta, pr); dist > RoundTripTol {
		zap.L().Warn(fmt.Sprintf("radical solution misses p=%v by %v, using closed form", pr, dist))
		return ClosedFormAngles(pr[0], pr[2])
	}
	return theta, nil
}

// ClosedFormAngles solves the matching equations directly.
//
// With theta1 = theta2 = u the realized probabilities are
// p_X = p_Y = M^2 sin^2(u)/2 and p_I - p_Z = 2 P M cos(u), where
// M = cos(theta0/2 + pi/4) and P = cos(theta0/2 - pi/4). Eliminating u
// gives M^2 = (1 + 2 p_X)/2 - sqrt(p_I p_Z).
func ClosedFormAngles(px, pz float64) (Angles, error) {
	if math.IsNaN(px) || math.IsNaN(pz) || px < -domainTol || pz < -domainTol || 2*px+pz > 1+domainTol {
		return Angles{}, core.InvalidParameterf("(p_X, p_Z)=(%v, %v) is not a Pauli channel", px, pz)
	}
	px = clamp01(px)
	pz = clamp01(pz)
	pI := math.Max(0, 1-2*px-pz)

	m2 := clamp01((1+2*px)/2 - math.Sqrt(pI*pz))
	k := 1.0
	if m2 > 0 {
		k = math.Sqrt(clamp01((m2 - 2*px) / m2))
	}
	// M <= 0 and P >= 0 below, so cos(u) takes the sign opposite to p_I - p_Z
	if pI > pz {
		k = -k
	}
	alpha := math.Acos(-math.Sqrt(m2)) - math.Pi/4
	u := math.Acos(k)
	return Angles{2 * alpha, u, u}, nil
}

// ImpliedProbabilities returns (p_I, p_X, p_Y, p_Z) realized by theta.
func ImpliedProbabilities(theta Angles) [4]float64 {
	a, b := math.Cos(theta[0]/2), math.Sin(theta[0]/2)
	c1, s1 := math.Cos(theta[1]/2), math.Sin(theta[1]/2)
	c2, s2 := math.Cos(theta[2]/2), math.Sin(theta[2]/2)

	amp00 := a*c1*c2 + b*s1*s2
	amp10 := a*s1*c2 - b*c1*s2
	amp01 := a*c1*s2 - b*s1*c2
	amp11 := a*s1*s2 + b*c1*c2
	return [4]float64{amp00 * amp00, amp10 * amp10, amp01 * amp01, amp11 * amp11}
}

func roundTripDistance(theta Angles, p [3]float64) float64 {
	got := ImpliedProbabilities(theta)
	d := 0.0
	for i := range p {
		d = math.Max(d, math.Abs(got[i+1]-p[i]))
	}
	return d
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
