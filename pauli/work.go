package pauli

import (
	"math"

	"github.com/oqtopus-team/oqtopus-engine/noiseapp/entropy"
)

// ExtractableWork is the work, in units of kT ln2, extractable from n
// copies of the system-memory state rho:
//
//	W = n - S(S|M)/ln2,  S(S|M) = S(SM) - S(M)
//
// (Bylicka et al., Sci. Rep. 6, 27989 (2016), Eqs. 3-4).
func ExtractableWork(rho *entropy.DensityMatrix, system, memory int, n float64) (float64, error) {
	s, err := entropy.Conditional(rho, system, memory)
	if err != nil {
		return 0, err
	}
	return n - s/math.Ln2, nil
}
