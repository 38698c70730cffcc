package circuit

import (
	"fmt"
	"math"

	"github.com/mohae/deepcopy"
	"github.com/oqtopus-team/oqtopus-engine/noiseapp/core"
	"go.uber.org/zap"
)

// Circuit is an ordered, immutable list of operations on a register of
// numQubits qubits and numClbits classical bits.
type Circuit struct {
	numQubits int
	numClbits int
	ops       []Operation
}

func (c *Circuit) NumQubits() int {
	return c.numQubits
}

func (c *Circuit) NumClbits() int {
	return c.numClbits
}

func (c *Circuit) Len() int {
	return len(c.ops)
}

func (c *Circuit) IsEmpty() bool {
	return len(c.ops) == 0
}

// Operations returns a copy; the circuit itself never changes after Build.
func (c *Circuit) Operations() []Operation {
	if len(c.ops) == 0 {
		return []Operation{}
	}
	return deepcopy.Copy(c.ops).([]Operation)
}

func (c *Circuit) Operation(i int) Operation {
	return deepcopy.Copy(c.ops[i]).(Operation)
}

func (c *Circuit) GateCounts() map[GateName]int {
	counts := make(map[GateName]int)
	for _, op := range c.ops {
		counts[op.Gate]++
	}
	return counts
}

// Empty returns a circuit without operations.
func Empty(numQubits, numClbits int) (*Circuit, error) {
	return NewBuilder(numQubits, numClbits).Build()
}

// Compose concatenates circuits acting on the same qubit register. The
// classical register of the result is the largest one among the inputs.
func Compose(circs ...*Circuit) (*Circuit, error) {
	if len(circs) == 0 {
		return nil, core.InvalidParameterf("nothing to compose")
	}
	for i, c := range circs {
		if c == nil {
			return nil, core.InvalidParameterf("circuit %d is nil", i)
		}
	}
	numQubits := circs[0].numQubits
	numClbits := 0
	for i, c := range circs {
		if c.numQubits != numQubits {
			msg := fmt.Sprintf("circuit %d has %d qubits, want %d", i, c.numQubits, numQubits)
			zap.L().Info(msg)
			return nil, core.InvalidParameterf("%s", msg)
		}
		if c.numClbits > numClbits {
			numClbits = c.numClbits
		}
	}
	b := NewBuilder(numQubits, numClbits)
	for _, c := range circs {
		b.ops = append(b.ops, c.Operations()...)
	}
	return b.Build()
}

// Builder accumulates operations. The first invalid call is remembered and
// returned by Build; later calls are ignored.
type Builder struct {
	numQubits int
	numClbits int
	ops       []Operation
	err       error
}

func NewBuilder(numQubits, numClbits int) *Builder {
	b := &Builder{
		numQubits: numQubits,
		numClbits: numClbits,
	}
	if numQubits < 1 {
		b.err = core.InvalidParameterf("register needs at least one qubit, got %d", numQubits)
	} else if numClbits < 0 {
		b.err = core.InvalidParameterf("negative classical register size %d", numClbits)
	}
	return b
}

func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) NumQubits() int {
	return b.numQubits
}

func (b *Builder) Build() (*Circuit, error) {
	if b.err != nil {
		return nil, b.err
	}
	ops := make([]Operation, len(b.ops))
	copy(ops, b.ops)
	return &Circuit{
		numQubits: b.numQubits,
		numClbits: b.numClbits,
		ops:       ops,
	}, nil
}

func (b *Builder) H(q int) *Builder { return b.add(H, nil, q) }
func (b *Builder) X(q int) *Builder { return b.add(X, nil, q) }
func (b *Builder) Sdg(q int) *Builder { return b.add(SDG, nil, q) }
func (b *Builder) RY(theta float64, q int) *Builder { return b.add(RY, []float64{theta}, q) }
func (b *Builder) RZ(theta float64, q int) *Builder { return b.add(RZ, []float64{theta}, q) }
func (b *Builder) CX(control, target int) *Builder { return b.add(CX, nil, control, target) }
func (b *Builder) CY(control, target int) *Builder { return b.add(CY, nil, control, target) }
func (b *Builder) CZ(control, target int) *Builder { return b.add(CZ, nil, control, target) }

func (b *Builder) CRY(theta float64, control, target int) *Builder {
	return b.add(CRY, []float64{theta}, control, target)
}

func (b *Builder) CRZ(theta float64, control, target int) *Builder {
	return b.add(CRZ, []float64{theta}, control, target)
}

// Barrier spans the whole register when no qubit is given.
func (b *Builder) Barrier(qubits ...int) *Builder {
	if len(qubits) == 0 {
		qubits = make([]int, b.numQubits)
		for i := range qubits {
			qubits[i] = i
		}
	}
	return b.add(Barrier, nil, qubits...)
}

func (b *Builder) Measure(q, clbit int) *Builder {
	if b.err != nil {
		return b
	}
	if clbit < 0 || clbit >= b.numClbits {
		b.fail(core.InvalidParameterf("classical bit %d out of range [0, %d)", clbit, b.numClbits))
		return b
	}
	if err := b.checkQubits(Measure, []int{q}); err != nil {
		b.fail(err)
		return b
	}
	b.ops = append(b.ops, Operation{Gate: Measure, Qubits: []int{q}, Clbit: clbit})
	return b
}

func (b *Builder) add(g GateName, params []float64, qubits ...int) *Builder {
	if b.err != nil {
		return b
	}
	if err := b.checkQubits(g, qubits); err != nil {
		b.fail(err)
		return b
	}
	for _, p := range params {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			b.fail(core.NumericDomainf("%s angle %v is not finite", g, p))
			return b
		}
	}
	qs := make([]int, len(qubits))
	copy(qs, qubits)
	b.ops = append(b.ops, Operation{Gate: g, Qubits: qs, Params: params, Clbit: -1})
	return b
}

func (b *Builder) checkQubits(g GateName, qubits []int) error {
	if n := g.Arity(); n >= 0 && len(qubits) != n {
		return core.InvalidParameterf("%s takes %d qubits, got %d", g, n, len(qubits))
	}
	seen := make(map[int]bool, len(qubits))
	for _, q := range qubits {
		if q < 0 || q >= b.numQubits {
			return core.InvalidParameterf("%s on qubit %d out of range [0, %d)", g, q, b.numQubits)
		}
		if seen[q] {
			return core.InvalidParameterf("%s uses qubit %d twice", g, q)
		}
		seen[q] = true
	}
	return nil
}

func (b *Builder) fail(err error) {
	zap.L().Debug(fmt.Sprintf("circuit builder error:%s", err))
	b.err = err
}
