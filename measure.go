package qsim

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Outcome is the result of a projective measurement: one bit per
// measured qubit, aligned with the qubit list passed to Measure, plus
// the Born-rule probability of the outcome that was sampled.
type Outcome struct {
	Bits        []bool
	Probability float64
}

// String renders the outcome as a ket with the first measured qubit
// rightmost, e.g. |01> for Bits [true, false].
func (o Outcome) String() string {
	var sb strings.Builder
	sb.WriteByte('|')
	for i := len(o.Bits) - 1; i >= 0; i-- {
		if o.Bits[i] {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	sb.WriteByte('>')
	return sb.String()
}

// Measure performs a projective Z-basis measurement of the given qubits
// and collapses the state vector to the sampled outcome.
//
// Basis states are partitioned into outcome classes by the values of
// the measured bits; each class's probability is the sum of
// |amplitude|^2 over its members. One class is sampled from rng by a
// uniform draw against the cumulative distribution, every amplitude
// outside it is zeroed, and the survivors are divided by the square
// root of the class probability.
//
// The collapse is irreversible: unlike gate application there is no
// inverse operation that restores the prior state.
func Measure(s *StateVector, qubits []int, rng *rand.Rand) (Outcome, error) {
	if len(qubits) == 0 {
		return Outcome{}, fmt.Errorf("%w: empty measurement set", ErrInvalidQubitIndex)
	}
	for i, q := range qubits {
		if q < 0 || q >= s.qubits {
			return Outcome{}, fmt.Errorf("%w: qubit %d of %d-qubit register", ErrInvalidQubitIndex, q, s.qubits)
		}
		for _, p := range qubits[:i] {
			if q == p {
				return Outcome{}, fmt.Errorf("%w: duplicate qubit %d", ErrInvalidQubitIndex, q)
			}
		}
	}

	// classOf compresses a basis state to its outcome class: bit j of
	// the class is the value of measured qubit j.
	classOf := func(basis int) int {
		class := 0
		for j, q := range qubits {
			if basis&(1<<q) != 0 {
				class |= 1 << j
			}
		}
		return class
	}

	probs := make([]float64, 1<<len(qubits))
	total := 0.0
	for i, a := range s.amps {
		p := real(a)*real(a) + imag(a)*imag(a)
		probs[classOf(i)] += p
		total += p
	}
	if total <= Epsilon {
		return Outcome{}, fmt.Errorf("%w: total probability %g", ErrDegenerateState, total)
	}
	if math.Abs(total-1) > Epsilon {
		return Outcome{}, fmt.Errorf("%w: total probability %g", ErrUnnormalizedState, total)
	}

	// Sample one class against the cumulative distribution.
	draw := rng.Float64()
	chosen := -1
	accumulated := 0.0
	for class, p := range probs {
		accumulated += p
		if p > 0 && draw <= accumulated {
			chosen = class
			break
		}
	}
	if chosen < 0 {
		// Rounding left the cumulative sum a hair under the draw; fall
		// back to the last class that carries any probability.
		for class := len(probs) - 1; class >= 0; class-- {
			if probs[class] > 0 {
				chosen = class
				break
			}
		}
	}

	// Collapse: zero every basis state outside the chosen class and
	// renormalize the rest.
	inv := complex(1/math.Sqrt(probs[chosen]), 0)
	for i := range s.amps {
		if classOf(i) != chosen {
			s.amps[i] = 0
		} else {
			s.amps[i] *= inv
		}
	}

	bits := make([]bool, len(qubits))
	for j := range qubits {
		bits[j] = chosen&(1<<j) != 0
	}
	return Outcome{Bits: bits, Probability: probs[chosen]}, nil
}
