// Package optimize holds the derivative-free scalar minimizer used by the
// channel capacity bound.
package optimize

import (
	"fmt"
	"math"

	"github.com/oqtopus-team/oqtopus-engine/noiseapp/core"
	"go.uber.org/zap"
)

const (
	DefaultXATol   = 1e-5
	DefaultMaxIter = 500
)

var (
	sqrtEps    = math.Sqrt(2.220446049250313e-16)
	goldenMean = 0.5 * (3.0 - math.Sqrt(5.0))
)

type Result struct {
	X           float64
	F           float64
	Evaluations int
	Converged   bool
}

type options struct {
	xatol   float64
	maxIter int
}

type Option func(*options)

// WithXATol sets the absolute tolerance on the minimizer location.
func WithXATol(tol float64) Option {
	return func(o *options) { o.xatol = tol }
}

// WithMaxIter bounds the number of function evaluations.
func WithMaxIter(n int) Option {
	return func(o *options) { o.maxIter = n }
}

// MinimizeBounded finds a local minimum of f on [lower, upper] with Brent's
// method: golden-section steps combined with parabolic interpolation. It is
// the same procedure as the classic fminbound and returns the global minimum
// for unimodal f.
func MinimizeBounded(f func(float64) float64, lower, upper float64, opts ...Option) (Result, error) {
	o := options{xatol: DefaultXATol, maxIter: DefaultMaxIter}
	for _, opt := range opts {
		opt(&o)
	}
	if math.IsNaN(lower) || math.IsNaN(upper) || math.IsInf(lower, 0) || math.IsInf(upper, 0) {
		return Result{}, core.InvalidParameterf("bounds (%v, %v) must be finite", lower, upper)
	}
	if lower > upper {
		return Result{}, core.InvalidParameterf("lower bound %v is greater than upper bound %v", lower, upper)
	}
	if o.xatol <= 0 || o.maxIter < 1 {
		return Result{}, core.InvalidParameterf("xatol=%v and maxIter=%d must be positive", o.xatol, o.maxIter)
	}

	a, b := lower, upper
	fulc := a + goldenMean*(b-a)
	nfc, xf := fulc, fulc
	var rat, e float64
	fx := f(xf)
	num := 1
	ffulc, fnfc := fx, fx
	xm := 0.5 * (a + b)
	tol1 := sqrtEps*math.Abs(xf) + o.xatol/3.0
	tol2 := 2.0 * tol1

	converged := true
	for math.Abs(xf-xm) > tol2-0.5*(b-a) {
		golden := true
		if math.Abs(e) > tol1 {
			golden = false
			r := (xf - nfc) * (fx - ffulc)
			q := (xf - fulc) * (fx - fnfc)
			p := (xf-fulc)*q - (xf-nfc)*r
			q = 2.0 * (q - r)
			if q > 0.0 {
				p = -p
			}
			q = math.Abs(q)
			r = e
			e = rat
			if math.Abs(p) < math.Abs(0.5*q*r) && p > q*(a-xf) && p < q*(b-xf) {
				rat = p / q
				x := xf + rat
				if x-a < tol2 || b-x < tol2 {
					rat = tol1 * sign(xm-xf)
				}
			} else {
				golden = true
			}
		}
		if golden {
			if xf >= xm {
				e = a - xf
			} else {
				e = b - xf
			}
			rat = goldenMean * e
		}

		x := xf + sign(rat)*math.Max(math.Abs(rat), tol1)
		fu := f(x)
		num++

		if fu <= fx {
			if x >= xf {
				a = xf
			} else {
				b = xf
			}
			fulc, ffulc = nfc, fnfc
			nfc, fnfc = xf, fx
			xf, fx = x, fu
		} else {
			if x < xf {
				a = x
			} else {
				b = x
			}
			if fu <= fnfc || nfc == xf {
				fulc, ffulc = nfc, fnfc
				nfc, fnfc = x, fu
			} else if fu <= ffulc || fulc == xf || fulc == nfc {
				fulc, ffulc = x, fu
			}
		}

		xm = 0.5 * (a + b)
		tol1 = sqrtEps*math.Abs(xf) + o.xatol/3.0
		tol2 = 2.0 * tol1

		if num >= o.maxIter {
			converged = false
			break
		}
	}
	if !converged {
		zap.L().Warn(fmt.Sprintf("bounded minimization stopped after %d evaluations at x=%v", num, xf))
	}
	return Result{X: xf, F: fx, Evaluations: num, Converged: converged}, nil
}

// sign treats zero as positive.
func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
