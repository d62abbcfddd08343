package qsim

import (
	"math/rand"
)

// Register is the programmatic surface of the simulator: it owns one
// state vector and one seeded random source, and routes every mutation
// through the gate applicator and the measurement engine.
//
// A register is not safe for concurrent use; gate application and
// measurement are ordinary synchronous calls.
type Register struct {
	state *StateVector
	rng   *rand.Rand
}

// New creates an n-qubit register in the ground state |0...0>. The
// seed fixes the measurement random source, so equal seeds replay
// identical measurement sequences. It fails with ErrInvalidDimension
// unless 0 < qubits <= MaxQubits.
func New(qubits int, seed int64) (*Register, error) {
	state, err := NewStateVector(qubits)
	if err != nil {
		return nil, err
	}
	return &Register{
		state: state,
		rng:   rand.New(rand.NewSource(seed)),
	}, nil
}

// QubitCount returns the number of qubits.
func (r *Register) QubitCount() int {
	return r.state.QubitCount()
}

// Reset returns the register to the ground state. The random source
// keeps its position; use Reseed to replay a run exactly.
func (r *Register) Reset() {
	r.state.Reset()
}

// Reseed restarts the measurement random source from the given seed.
func (r *Register) Reseed(seed int64) {
	r.rng = rand.New(rand.NewSource(seed))
}

// Amplitudes returns a copy of the state vector's amplitudes in
// basis-state order, for inspection and tests.
func (r *Register) Amplitudes() []complex128 {
	return r.state.Amplitudes()
}

// State returns a read-only snapshot of the state vector.
func (r *Register) State() *StateVector {
	return r.state.Clone()
}

// Apply looks the gate up by name and applies it to the target qubits.
// Rotation gates take their angle from params. The state vector is
// unchanged when an error is returned.
func (r *Register) Apply(name string, targets []int, params ...float64) error {
	g, err := Lookup(name, params...)
	if err != nil {
		return err
	}
	return Apply(r.state, g, targets)
}

// ApplyGate applies an already-constructed gate, e.g. an oracle from
// OracleGate or a Custom matrix.
func (r *Register) ApplyGate(g *Gate, targets ...int) error {
	return Apply(r.state, g, targets)
}

// Measure performs a projective measurement of the given qubits,
// collapsing the state vector. The outcome bits align with the qubit
// arguments. Measurement is destructive; see Measure on the engine.
func (r *Register) Measure(qubits ...int) (Outcome, error) {
	return Measure(r.state, qubits, r.rng)
}

// MeasureAll measures every qubit; outcome bit i is qubit i.
func (r *Register) MeasureAll() (Outcome, error) {
	qubits := make([]int, r.state.QubitCount())
	for i := range qubits {
		qubits[i] = i
	}
	return Measure(r.state, qubits, r.rng)
}

// Single-qubit gate helpers.

// H applies a Hadamard gate to qubit q.
func (r *Register) H(q int) error { return Apply(r.state, GateH, []int{q}) }

// X applies a Pauli-X (NOT) gate to qubit q.
func (r *Register) X(q int) error { return Apply(r.state, GateX, []int{q}) }

// Y applies a Pauli-Y gate to qubit q.
func (r *Register) Y(q int) error { return Apply(r.state, GateY, []int{q}) }

// Z applies a Pauli-Z gate to qubit q.
func (r *Register) Z(q int) error { return Apply(r.state, GateZ, []int{q}) }

// SGate applies the phase gate S to qubit q.
func (r *Register) SGate(q int) error { return Apply(r.state, GateS, []int{q}) }

// SDagger applies the inverse phase gate S† to qubit q.
func (r *Register) SDagger(q int) error { return Apply(r.state, GateSdg, []int{q}) }

// T applies the T gate to qubit q.
func (r *Register) T(q int) error { return Apply(r.state, GateT, []int{q}) }

// TDagger applies the inverse T gate to qubit q.
func (r *Register) TDagger(q int) error { return Apply(r.state, GateTdg, []int{q}) }

// RotateX rotates qubit q around the X axis by theta.
func (r *Register) RotateX(q int, theta float64) error { return Apply(r.state, RX(theta), []int{q}) }

// RotateY rotates qubit q around the Y axis by theta.
func (r *Register) RotateY(q int, theta float64) error { return Apply(r.state, RY(theta), []int{q}) }

// RotateZ rotates qubit q around the Z axis by theta.
func (r *Register) RotateZ(q int, theta float64) error { return Apply(r.state, RZ(theta), []int{q}) }

// Multi-qubit gate helpers.

// CNOT applies a controlled-NOT with the given control and target.
func (r *Register) CNOT(control, target int) error {
	return Apply(r.state, GateCNOT, []int{control, target})
}

// CZ applies a controlled-Z between the two qubits.
func (r *Register) CZ(control, target int) error {
	return Apply(r.state, GateCZ, []int{control, target})
}

// Swap exchanges the states of two qubits.
func (r *Register) Swap(q0, q1 int) error {
	return Apply(r.state, GateSwap, []int{q0, q1})
}

// Toffoli applies a controlled-controlled-NOT.
func (r *Register) Toffoli(control0, control1, target int) error {
	return Apply(r.state, GateToffoli, []int{control0, control1, target})
}
