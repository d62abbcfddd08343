package qsim

import (
	"fmt"
	"math"
	"math/cmplx"
)

const (
	// MaxQubits bounds the register size; the state vector grows as 2^n.
	MaxQubits = 32

	// Epsilon is the tolerance for all normalization and unitarity checks.
	Epsilon = 1e-9
)

// StateVector holds the 2^n complex amplitudes of an n-qubit register.
//
// Qubit index 0 is the least-significant bit of the basis-state index:
// basis state 6 = 0b110 has qubit 0 in |0>, qubits 1 and 2 in |1>. The
// same convention is used by the gate applicator, the measurement
// engine and all printed bitstrings (qubit 0 rightmost).
//
// Amplitudes are mutated in place by gate application and measurement
// only; everything else reads through copies.
type StateVector struct {
	amps   []complex128
	qubits int
}

// NewStateVector returns the all-zero ground state |0...0> of the given
// number of qubits. It fails with ErrInvalidDimension unless
// 0 < qubits <= MaxQubits.
func NewStateVector(qubits int) (*StateVector, error) {
	if qubits <= 0 || qubits > MaxQubits {
		return nil, fmt.Errorf("%w: qubit count %d not in [1, %d]", ErrInvalidDimension, qubits, MaxQubits)
	}
	s := &StateVector{
		amps:   make([]complex128, 1<<qubits),
		qubits: qubits,
	}
	s.amps[0] = 1
	return s, nil
}

// QubitCount returns the number of qubits n.
func (s *StateVector) QubitCount() int {
	return s.qubits
}

// Size returns the number of amplitudes, 2^n.
func (s *StateVector) Size() int {
	return len(s.amps)
}

// Reset returns the register to the ground state |0...0>.
func (s *StateVector) Reset() {
	clear(s.amps)
	s.amps[0] = 1
}

// Amplitude returns the amplitude of the given basis state.
func (s *StateVector) Amplitude(basis int) complex128 {
	return s.amps[basis]
}

// Amplitudes returns a copy of all amplitudes in basis-state order.
func (s *StateVector) Amplitudes() []complex128 {
	out := make([]complex128, len(s.amps))
	copy(out, s.amps)
	return out
}

// Clone returns an independent copy of the state vector.
func (s *StateVector) Clone() *StateVector {
	amps := make([]complex128, len(s.amps))
	copy(amps, s.amps)
	return &StateVector{amps: amps, qubits: s.qubits}
}

// Probability returns |amplitude|^2 for the given basis state.
func (s *StateVector) Probability(basis int) float64 {
	a := s.amps[basis]
	return real(a)*real(a) + imag(a)*imag(a)
}

// Norm returns the total probability mass, the sum of |amplitude|^2
// over all basis states. It is 1 for any valid quantum state.
func (s *StateVector) Norm() float64 {
	total := 0.0
	for _, a := range s.amps {
		total += real(a)*real(a) + imag(a)*imag(a)
	}
	return total
}

// Normalized reports whether the norm is 1 within Epsilon.
func (s *StateVector) Normalized() bool {
	return math.Abs(s.Norm()-1) <= Epsilon
}

// Renormalize divides every amplitude by the square root of the total
// probability mass. It fails with ErrDegenerateState when the mass is
// too close to zero to renormalize.
func (s *StateVector) Renormalize() error {
	norm := s.Norm()
	if norm <= Epsilon {
		return fmt.Errorf("%w: total probability %g", ErrDegenerateState, norm)
	}
	inv := complex(1/math.Sqrt(norm), 0)
	for i := range s.amps {
		s.amps[i] *= inv
	}
	return nil
}

// QubitProbability holds the marginal probabilities of one qubit.
type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// QubitProbabilities returns the marginal |0>/|1> probabilities of
// every qubit.
func (s *StateVector) QubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.qubits)
	for i, a := range s.amps {
		p := real(a)*real(a) + imag(a)*imag(a)
		for q := 0; q < s.qubits; q++ {
			if i&(1<<q) != 0 {
				probs[q].Prob1 += p
			} else {
				probs[q].Prob0 += p
			}
		}
	}
	return probs
}

// Phase returns the phase angle of the given basis state's amplitude.
func (s *StateVector) Phase(basis int) float64 {
	return cmplx.Phase(s.amps[basis])
}
