package entropy

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/go-faster/errors"
	"github.com/katalvlaran/lvlath/matrix"
	"github.com/oqtopus-team/oqtopus-engine/noiseapp/core"
	"go.uber.org/zap"
)

const (
	hermitianTol   = 1e-9
	eigenTol       = 1e-12
	eigenMaxIter   = 10000
	eigenvalueZero = 1e-12
)

// DensityMatrix is a row-major density operator on numQubits qubits.
// Qubit k is bit k of the basis index.
type DensityMatrix struct {
	numQubits int
	data      []complex128
}

func NewDensityMatrix(numQubits int, data []complex128) (*DensityMatrix, error) {
	if numQubits < 1 {
		return nil, core.InvalidParameterf("density matrix needs at least one qubit, got %d", numQubits)
	}
	dim := 1 << numQubits
	if len(data) != dim*dim {
		return nil, core.InvalidParameterf("density matrix on %d qubits needs %d entries, got %d", numQubits, dim*dim, len(data))
	}
	d := make([]complex128, len(data))
	copy(d, data)
	rho := &DensityMatrix{numQubits: numQubits, data: d}
	if err := rho.checkHermitian(); err != nil {
		return nil, err
	}
	return rho, nil
}

// FromStateVector returns |psi><psi|.
func FromStateVector(amplitudes []complex128) (*DensityMatrix, error) {
	dim := len(amplitudes)
	if dim < 2 || dim&(dim-1) != 0 {
		return nil, core.InvalidParameterf("state vector length %d is not a power of two", dim)
	}
	numQubits := 0
	for 1<<numQubits < dim {
		numQubits++
	}
	data := make([]complex128, dim*dim)
	for i, a := range amplitudes {
		for j, b := range amplitudes {
			data[i*dim+j] = a * cmplx.Conj(b)
		}
	}
	return &DensityMatrix{numQubits: numQubits, data: data}, nil
}

func (r *DensityMatrix) NumQubits() int {
	return r.numQubits
}

func (r *DensityMatrix) Dim() int {
	return 1 << r.numQubits
}

func (r *DensityMatrix) At(i, j int) complex128 {
	return r.data[i*r.Dim()+j]
}

func (r *DensityMatrix) Trace() complex128 {
	var t complex128
	for i := 0; i < r.Dim(); i++ {
		t += r.At(i, i)
	}
	return t
}

func (r *DensityMatrix) checkHermitian() error {
	dim := r.Dim()
	for i := 0; i < dim; i++ {
		for j := i; j < dim; j++ {
			if cmplx.Abs(r.At(i, j)-cmplx.Conj(r.At(j, i))) > hermitianTol {
				return core.InvalidParameterf("density matrix is not hermitian at (%d, %d)", i, j)
			}
		}
	}
	return nil
}

// PartialTrace keeps the listed qubits, in the given order, and traces out
// the rest. keep[k] becomes qubit k of the result.
func (r *DensityMatrix) PartialTrace(keep ...int) (*DensityMatrix, error) {
	if len(keep) == 0 {
		return nil, core.InvalidParameterf("partial trace must keep at least one qubit")
	}
	kept := make(map[int]bool, len(keep))
	for _, q := range keep {
		if q < 0 || q >= r.numQubits {
			return nil, core.InvalidParameterf("qubit %d out of range [0, %d)", q, r.numQubits)
		}
		if kept[q] {
			return nil, core.InvalidParameterf("qubit %d kept twice", q)
		}
		kept[q] = true
	}
	traced := make([]int, 0, r.numQubits-len(keep))
	for q := 0; q < r.numQubits; q++ {
		if !kept[q] {
			traced = append(traced, q)
		}
	}

	subDim := 1 << len(keep)
	envDim := 1 << len(traced)
	full := func(sub, env int) int {
		idx := 0
		for k, q := range keep {
			if sub&(1<<k) != 0 {
				idx |= 1 << q
			}
		}
		for k, q := range traced {
			if env&(1<<k) != 0 {
				idx |= 1 << q
			}
		}
		return idx
	}

	data := make([]complex128, subDim*subDim)
	dim := r.Dim()
	for i := 0; i < subDim; i++ {
		for j := 0; j < subDim; j++ {
			var s complex128
			for e := 0; e < envDim; e++ {
				s += r.data[full(i, e)*dim+full(j, e)]
			}
			data[i*subDim+j] = s
		}
	}
	return &DensityMatrix{numQubits: len(keep), data: data}, nil
}

// Eigenvalues returns the spectrum in ascending order.
// The hermitian matrix A+iB is diagonalized through its real symmetric
// embedding [[A, -B], [B, A]], whose spectrum is that of A+iB with every
// eigenvalue doubled.
func (r *DensityMatrix) Eigenvalues() ([]float64, error) {
	dim := r.Dim()
	m, err := matrix.NewDense(2*dim, 2*dim)
	if err != nil {
		return nil, errors.Wrap(err, "allocate embedding")
	}
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			// hermitian part, so the embedding is exactly symmetric
			re := 0.5 * (real(r.At(i, j)) + real(r.At(j, i)))
			im := 0.5 * (imag(r.At(i, j)) - imag(r.At(j, i)))
			set := []struct {
				row, col int
				val      float64
			}{
				{i, j, re},
				{i + dim, j + dim, re},
				{i, j + dim, -im},
				{i + dim, j, im},
			}
			for _, s := range set {
				if err := m.Set(s.row, s.col, s.val); err != nil {
					return nil, errors.Wrap(err, "fill embedding")
				}
			}
		}
	}
	vals, _, err := matrix.EigenSym(m, eigenTol, eigenMaxIter)
	if err != nil {
		zap.L().Info(fmt.Sprintf("eigen decomposition failed/reason:%s", err))
		return nil, errors.Wrap(core.ErrNumericDomain, err.Error())
	}
	sort.Float64s(vals)
	out := make([]float64, dim)
	for k := range out {
		out[k] = 0.5 * (vals[2*k] + vals[2*k+1])
	}
	return out, nil
}

// VonNeumann returns -Tr(rho log rho) in nats.
func VonNeumann(rho *DensityMatrix) (float64, error) {
	vals, err := rho.Eigenvalues()
	if err != nil {
		return 0, err
	}
	s := 0.0
	for _, v := range vals {
		if v > eigenvalueZero {
			s -= v * math.Log(v)
		}
	}
	return s, nil
}

// Conditional returns S(A|B) = S(AB) - S(B) in nats for qubits a and b of rho.
func Conditional(rho *DensityMatrix, a, b int) (float64, error) {
	ab, err := rho.PartialTrace(a, b)
	if err != nil {
		return 0, err
	}
	rb, err := rho.PartialTrace(b)
	if err != nil {
		return 0, err
	}
	sab, err := VonNeumann(ab)
	if err != nil {
		return 0, err
	}
	sb, err := VonNeumann(rb)
	if err != nil {
		return 0, err
	}
	return sab - sb, nil
}
