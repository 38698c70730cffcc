package circuit

type GateName string

const (
	H       GateName = "h"
	X       GateName = "x"
	SDG     GateName = "sdg"
	RY      GateName = "ry"
	RZ      GateName = "rz"
	CX      GateName = "cx"
	CY      GateName = "cy"
	CZ      GateName = "cz"
	CRY     GateName = "cry"
	CRZ     GateName = "crz"
	Barrier GateName = "barrier"
	Measure GateName = "measure"
)

func (g GateName) String() string {
	return string(g)
}

// Arity is the number of qubit operands, or -1 for barriers which take any number.
func (g GateName) Arity() int {
	switch g {
	case H, X, SDG, RY, RZ, Measure:
		return 1
	case CX, CY, CZ, CRY, CRZ:
		return 2
	default:
		return -1
	}
}

func (g GateName) NumParams() int {
	switch g {
	case RY, RZ, CRY, CRZ:
		return 1
	default:
		return 0
	}
}

// Operation is a single instruction of a circuit.
// For controlled gates Qubits is {control, target}.
type Operation struct {
	Gate   GateName
	Qubits []int
	Params []float64
	Clbit  int // -1 unless Gate is Measure
}

func (o Operation) Target() int {
	return o.Qubits[len(o.Qubits)-1]
}

// Control returns -1 for uncontrolled operations.
func (o Operation) Control() int {
	if o.Gate.Arity() == 2 {
		return o.Qubits[0]
	}
	return -1
}

func (o Operation) IsMeasurement() bool {
	return o.Gate == Measure
}
