// Package entropy provides the Shannon and von Neumann entropies used by the
// capacity and extractable-work quantities.
package entropy

import (
	"math"

	"github.com/oqtopus-team/oqtopus-engine/noiseapp/core"
)

// xlogy is x*log(y) with the convention 0*log(0) = 0.
func xlogy(x, y float64) float64 {
	if x == 0 {
		return 0
	}
	return x * math.Log(y)
}

// Binary returns the binary Shannon entropy H2(p) in bits.
// Arguments are clamped into [0, 1] so rounding noise from callers never
// produces NaN.
func Binary(p float64) float64 {
	if p <= 0 || p >= 1 {
		return 0
	}
	return -(xlogy(p, p) + xlogy(1-p, 1-p)) / math.Ln2
}

// BinaryChecked is Binary for callers that want out-of-range input rejected.
func BinaryChecked(p float64) (float64, error) {
	if err := core.ValidateProbability("p", p); err != nil {
		return 0, err
	}
	return Binary(p), nil
}

// Shannon returns -sum(p log p) in nats for a probability vector.
func Shannon(probs []float64) float64 {
	s := 0.0
	for _, p := range probs {
		if p > 0 {
			s -= xlogy(p, p)
		}
	}
	return s
}
