package qsim

import "fmt"

// maxOracleQubits caps the combined oracle size; the matrix is dense
// and grows as 4^(inputs+outputs).
const maxOracleQubits = 9

// OracleGate builds the unitary U_f for a boolean function f over the
// given number of input qubits and a single answer qubit. Deutsch-style
// algorithms query f in superposition through this gate.
func OracleGate(f func(x uint64) bool, inputs int) (*Gate, error) {
	return OracleGateN(func(x uint64) uint64 {
		if f(x) {
			return 1
		}
		return 0
	}, inputs, 1)
}

// OracleGateN builds the unitary U_f for a function with several answer
// qubits: U_f maps (x, y) to (x, y XOR f(x)), where x spans the input
// qubits and y the output qubits. The argument to f is the input bits
// packed with input qubit 0 as bit 0, and bit j of its result lands on
// output qubit j. Simon's algorithm queries its 2-to-1 function through
// this form.
//
// The result is an ordinary validated gate of arity inputs+outputs;
// apply it with the input qubits first and the output qubits last.
func OracleGateN(f func(x uint64) uint64, inputs, outputs int) (*Gate, error) {
	if inputs <= 0 || outputs <= 0 || inputs+outputs > maxOracleQubits {
		return nil, fmt.Errorf("%w: oracle over %d input and %d output qubits", ErrInvalidDimension, inputs, outputs)
	}
	arity := inputs + outputs
	dim := 1 << arity
	outMask := uint64(1)<<outputs - 1
	matrix := make([]complex128, dim*dim)
	for col := 0; col < dim; col++ {
		x := uint64(col) & (1<<inputs - 1)
		y := uint64(col) >> inputs
		y ^= f(x) & outMask
		row := int(x | y<<inputs)
		matrix[row*dim+col] = 1
	}
	return newGate(fmt.Sprintf("U_f[%d:%d]", inputs, outputs), KindCustom, arity, matrix)
}
