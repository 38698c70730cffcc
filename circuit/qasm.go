package circuit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-faster/jx"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"
)

const (
	qubitRegisterName = "q"
	bitRegisterName   = "c"
)

// QASM renders the circuit as an OpenQASM 3 program using stdgates.inc names.
func (c *Circuit) QASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 3;\n")
	sb.WriteString("include \"stdgates.inc\";\n")
	fmt.Fprintf(&sb, "qubit[%d] %s;\n", c.numQubits, qubitRegisterName)
	if c.numClbits > 0 {
		fmt.Fprintf(&sb, "bit[%d] %s;\n", c.numClbits, bitRegisterName)
	}
	if len(c.ops) > 0 {
		sb.WriteString("\n")
	}
	for _, op := range c.ops {
		sb.WriteString(qasmStatement(op))
		sb.WriteString("\n")
	}
	return sb.String()
}

func qasmStatement(op Operation) string {
	if op.IsMeasurement() {
		return fmt.Sprintf("%s[%d] = measure %s;", bitRegisterName, op.Clbit, qubitOperand(op.Qubits[0]))
	}
	operands := make([]string, len(op.Qubits))
	for i, q := range op.Qubits {
		operands[i] = qubitOperand(q)
	}
	name := op.Gate.String()
	if len(op.Params) > 0 {
		params := make([]string, len(op.Params))
		for i, p := range op.Params {
			params[i] = formatAngle(p)
		}
		name = fmt.Sprintf("%s(%s)", name, strings.Join(params, ", "))
	}
	return fmt.Sprintf("%s %s;", name, strings.Join(operands, ", "))
}

func qubitOperand(q int) string {
	return fmt.Sprintf("%s[%d]", qubitRegisterName, q)
}

func formatAngle(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// MarshalJSON encodes the circuit as
// {"num_qubits":n,"num_clbits":m,"operations":[{"gate":..,"qubits":[..],"params":[..],"clbit":k}]}.
func (c *Circuit) MarshalJSON() ([]byte, error) {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("num_qubits", func(e *jx.Encoder) { e.Int(c.numQubits) })
		e.Field("num_clbits", func(e *jx.Encoder) { e.Int(c.numClbits) })
		e.Field("operations", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, op := range c.ops {
					encodeOperation(e, op)
				}
			})
		})
	})
	return e.Bytes(), nil
}

func encodeOperation(e *jx.Encoder, op Operation) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("gate", func(e *jx.Encoder) { e.Str(op.Gate.String()) })
		e.Field("qubits", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, q := range op.Qubits {
					e.Int(q)
				}
			})
		})
		if len(op.Params) > 0 {
			e.Field("params", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, p := range op.Params {
						e.Float64(p)
					}
				})
			})
		}
		if op.IsMeasurement() {
			e.Field("clbit", func(e *jx.Encoder) { e.Int(op.Clbit) })
		}
	})
}

// PrettyString is the indented JSON form, meant for logs.
func (c *Circuit) PrettyString() string {
	b, err := c.MarshalJSON()
	if err != nil {
		zap.L().Error("Failed to marshal circuit.Circuit")
		return ""
	}
	return string(pretty.Pretty(b))
}
