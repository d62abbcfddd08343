package qsim

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Pre-compiled regexps for QASM parsing.
var (
	singleGateRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	singleGateParamRegex = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+q\[(\d+)\];?$`)
	twoQubitRegex        = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	threeQubitRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\],\s*q\[(\d+)\];?$`)
	measureRegex         = regexp.MustCompile(`^measure\s+q\[(\d+)\]\s*->\s*c\[(\d+)\];?$`)
	ifRegex              = regexp.MustCompile(`^if\s*\(\s*c\[(\d+)\]\s*==\s*1\s*\)\s+(\w+)\s+q\[(\d+)\];?$`)
	ifParamRegex         = regexp.MustCompile(`^if\s*\(\s*c\[(\d+)\]\s*==\s*1\s*\)\s+(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+q\[(\d+)\];?$`)
	qregRegex            = regexp.MustCompile(`qreg\s+\w+\[(\d+)\]`)
	cregRegex            = regexp.MustCompile(`creg\s+\w+\[(\d+)\]`)
)

// OpMeasure is the Name of a measurement op.
const OpMeasure = "measure"

// Op is one placement in a circuit's timeline: a library gate, a
// measurement into a classical bit, or a gate guarded by one.
type Op struct {
	Name   string // gate name resolvable by Lookup, or OpMeasure
	Qubits []int  // targets in applicator order (controls first)
	Params []float64
	Step   int // position in the circuit timeline
	CBit   int // classical bit written by a measure op, -1 otherwise
	IfBit  int // classical bit guarding the op, -1 if unconditional
}

// Circuit is a step-ordered sequence of operations over a fixed number
// of qubits and classical bits. It is a plain description: nothing is
// simulated until Run, RunShots or Simulate.
type Circuit struct {
	Qubits   int
	Cbits    int
	Ops      []Op
	MaxSteps int
}

func (c *Circuit) bumpSteps(step int) {
	if step >= c.MaxSteps {
		c.MaxSteps = step + 1
	}
}

func (c *Circuit) bumpCbits(cbit int) {
	if cbit >= c.Cbits {
		c.Cbits = cbit + 1
	}
}

// AddGate appends a gate at the given step.
func (c *Circuit) AddGate(name string, step int, qubits ...int) {
	c.Ops = append(c.Ops, Op{Name: name, Qubits: qubits, Step: step, CBit: -1, IfBit: -1})
	c.bumpSteps(step)
}

// AddParamGate appends a parameterized gate at the given step.
func (c *Circuit) AddParamGate(name string, step int, params []float64, qubits ...int) {
	c.Ops = append(c.Ops, Op{Name: name, Qubits: qubits, Params: params, Step: step, CBit: -1, IfBit: -1})
	c.bumpSteps(step)
}

// AddMeasure appends a measurement of one qubit into a classical bit.
func (c *Circuit) AddMeasure(qubit, cbit, step int) {
	c.Ops = append(c.Ops, Op{Name: OpMeasure, Qubits: []int{qubit}, Step: step, CBit: cbit, IfBit: -1})
	c.bumpSteps(step)
	c.bumpCbits(cbit)
}

// AddConditional appends a gate that is applied only when the given
// classical bit measured 1.
func (c *Circuit) AddConditional(name string, step, ifBit int, qubits ...int) {
	c.Ops = append(c.Ops, Op{Name: name, Qubits: qubits, Step: step, CBit: -1, IfBit: ifBit})
	c.bumpSteps(step)
	c.bumpCbits(ifBit)
}

// NumCbits returns the size of the classical register: the declared
// size or the highest referenced bit + 1, whichever is larger.
func (c *Circuit) NumCbits() int {
	n := c.Cbits
	for _, op := range c.Ops {
		if op.CBit >= n {
			n = op.CBit + 1
		}
		if op.IfBit >= n {
			n = op.IfBit + 1
		}
	}
	return n
}

// sortedOps returns the ops in timeline order, stable within a step.
func (c *Circuit) sortedOps() []Op {
	ops := make([]Op, len(c.Ops))
	copy(ops, c.Ops)
	sort.SliceStable(ops, func(i, j int) bool { return ops[i].Step < ops[j].Step })
	return ops
}

// Simulate applies the circuit's gates up to and including upToStep
// (all steps when upToStep < 0) to a fresh ground state and returns
// the resulting state vector. Measurements and classically-controlled
// ops are skipped: this is the live, pre-measurement view of the
// circuit.
func (c *Circuit) Simulate(upToStep int) (*StateVector, error) {
	qubits := c.Qubits
	if qubits == 0 {
		qubits = 1
	}
	state, err := NewStateVector(qubits)
	if err != nil {
		return nil, err
	}
	for _, op := range c.sortedOps() {
		if upToStep >= 0 && op.Step > upToStep {
			continue
		}
		if op.Name == OpMeasure || op.IfBit >= 0 {
			continue
		}
		g, err := Lookup(op.Name, op.Params...)
		if err != nil {
			return nil, err
		}
		if err := Apply(state, g, op.Qubits); err != nil {
			return nil, err
		}
	}
	return state, nil
}

// Run executes one shot on the given register, which must be in its
// initial state. Measurement ops collapse the register and record
// their bit; conditional ops consult the bits recorded so far. The
// classical register is returned.
func (c *Circuit) Run(reg *Register) ([]bool, error) {
	if reg.QubitCount() < c.Qubits {
		return nil, fmt.Errorf("%w: circuit needs %d qubits, register has %d", ErrInvalidQubitIndex, c.Qubits, reg.QubitCount())
	}
	cbits := make([]bool, c.NumCbits())
	for _, op := range c.sortedOps() {
		if op.IfBit >= 0 && !cbits[op.IfBit] {
			continue
		}
		if op.Name == OpMeasure {
			out, err := reg.Measure(op.Qubits[0])
			if err != nil {
				return nil, err
			}
			cbits[op.CBit] = out.Bits[0]
			continue
		}
		if err := reg.Apply(op.Name, op.Qubits, op.Params...); err != nil {
			return nil, err
		}
	}
	return cbits, nil
}

// RunShots executes the circuit the given number of shots on one
// seeded register, resetting it between shots, and tallies the
// classical results. Equal seeds reproduce the tally exactly.
func (c *Circuit) RunShots(shots int, seed int64) (*Tally, error) {
	qubits := c.Qubits
	if qubits == 0 {
		qubits = 1
	}
	reg, err := New(qubits, seed)
	if err != nil {
		return nil, err
	}
	tally := NewTally(c.NumCbits())
	for i := 0; i < shots; i++ {
		reg.Reset()
		bits, err := c.Run(reg)
		if err != nil {
			return nil, err
		}
		tally.Add(bits)
	}
	return tally, nil
}

// ToQASM generates QASM 2.0 output from the circuit.
func (c *Circuit) ToQASM() string {
	numQubits := c.Qubits
	for _, op := range c.Ops {
		for _, q := range op.Qubits {
			if q >= numQubits {
				numQubits = q + 1
			}
		}
	}
	if numQubits < 1 {
		numQubits = 1
	}
	numCbits := c.NumCbits()
	if numCbits < 1 {
		numCbits = 1
	}

	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", numQubits)
	fmt.Fprintf(&sb, "creg c[%d];\n\n", numCbits)

	for _, op := range c.sortedOps() {
		if op.Name == OpMeasure {
			fmt.Fprintf(&sb, "measure q[%d] -> c[%d];\n", op.Qubits[0], op.CBit)
			continue
		}
		if op.IfBit >= 0 {
			fmt.Fprintf(&sb, "if (c[%d]==1) ", op.IfBit)
		}
		name := qasmName(op.Name)
		if len(op.Params) > 0 {
			fmt.Fprintf(&sb, "%s(%s)", name, formatParam(op.Params[0]))
		} else {
			sb.WriteString(name)
		}
		sb.WriteByte(' ')
		for i, q := range op.Qubits {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "q[%d]", q)
		}
		sb.WriteString(";\n")
	}
	return sb.String()
}

// qasmName maps a library gate name to its QASM spelling.
func qasmName(name string) string {
	switch strings.ToUpper(name) {
	case "CNOT":
		return "cx"
	case "TOFFOLI":
		return "ccx"
	}
	return strings.ToLower(name)
}

// ParseQASM parses the QASM 2.0 subset emitted by ToQASM and rebuilds
// the circuit from it. Each statement occupies its own step. Gate
// names are resolved through the library, so an unknown gate fails
// with ErrUnknownGate.
func (c *Circuit) ParseQASM(qasm string) error {
	c.Ops = nil
	c.MaxSteps = 0
	c.Qubits = 0
	c.Cbits = 0
	step := 0

	for _, line := range strings.Split(qasm, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "", strings.HasPrefix(line, "//"),
			strings.HasPrefix(line, "OPENQASM"), strings.HasPrefix(line, "include"):
			continue
		case strings.HasPrefix(line, "qreg"):
			if m := qregRegex.FindStringSubmatch(line); m != nil {
				c.Qubits, _ = strconv.Atoi(m[1])
			}
			continue
		case strings.HasPrefix(line, "creg"):
			if m := cregRegex.FindStringSubmatch(line); m != nil {
				c.Cbits, _ = strconv.Atoi(m[1])
			}
			continue
		}

		if m := measureRegex.FindStringSubmatch(line); m != nil {
			qubit, _ := strconv.Atoi(m[1])
			cbit, _ := strconv.Atoi(m[2])
			c.AddMeasure(qubit, cbit, step)
			step++
			continue
		}

		if m := ifParamRegex.FindStringSubmatch(line); m != nil {
			cbit, _ := strconv.Atoi(m[1])
			param, ok := parseParamExpr(m[3])
			if !ok {
				return fmt.Errorf("%w: bad parameter in %q", ErrUnknownGate, line)
			}
			if _, err := Lookup(m[2], param); err != nil {
				return err
			}
			target, _ := strconv.Atoi(m[4])
			c.Ops = append(c.Ops, Op{Name: m[2], Qubits: []int{target}, Params: []float64{param}, Step: step, CBit: -1, IfBit: cbit})
			c.bumpSteps(step)
			c.bumpCbits(cbit)
			step++
			continue
		}

		if m := ifRegex.FindStringSubmatch(line); m != nil {
			cbit, _ := strconv.Atoi(m[1])
			if _, err := Lookup(m[2]); err != nil {
				return err
			}
			target, _ := strconv.Atoi(m[3])
			c.AddConditional(m[2], step, cbit, target)
			step++
			continue
		}

		if m := threeQubitRegex.FindStringSubmatch(line); m != nil {
			if _, err := Lookup(m[1]); err != nil {
				return err
			}
			q0, _ := strconv.Atoi(m[2])
			q1, _ := strconv.Atoi(m[3])
			q2, _ := strconv.Atoi(m[4])
			c.AddGate(m[1], step, q0, q1, q2)
			step++
			continue
		}

		if m := twoQubitRegex.FindStringSubmatch(line); m != nil {
			if _, err := Lookup(m[1]); err != nil {
				return err
			}
			q0, _ := strconv.Atoi(m[2])
			q1, _ := strconv.Atoi(m[3])
			c.AddGate(m[1], step, q0, q1)
			step++
			continue
		}

		if m := singleGateParamRegex.FindStringSubmatch(line); m != nil {
			param, ok := parseParamExpr(m[2])
			if !ok {
				return fmt.Errorf("%w: bad parameter in %q", ErrUnknownGate, line)
			}
			if _, err := Lookup(m[1], param); err != nil {
				return err
			}
			target, _ := strconv.Atoi(m[3])
			c.AddParamGate(m[1], step, []float64{param}, target)
			step++
			continue
		}

		if m := singleGateRegex.FindStringSubmatch(line); m != nil {
			if _, err := Lookup(m[1]); err != nil {
				return err
			}
			q, _ := strconv.Atoi(m[2])
			c.AddGate(m[1], step, q)
			step++
			continue
		}

		return fmt.Errorf("%w: unparsable statement %q", ErrUnknownGate, line)
	}
	return nil
}
