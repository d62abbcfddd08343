package qsim

import (
	"fmt"
	"runtime"
	"slices"
	"sync"
)

// parallelClasses is the number of amplitude classes above which a gate
// application is split across workers.
const parallelClasses = 1 << 14

// Apply contracts the gate's matrix into the state vector at the given
// target qubits, leaving all other qubits untouched. The 2^n x 2^n
// operator is never materialized: each class of basis states that
// agree on the non-target bits is visited exactly once and its 2^k
// amplitude tuple is multiplied by the matrix in place.
//
// Targets are validated before anything is written, so a failed call
// leaves the state vector unchanged.
func Apply(s *StateVector, g *Gate, targets []int) error {
	k := g.Arity()
	if len(targets) != k {
		return fmt.Errorf("%w: %s acts on %d qubits, got %d targets", ErrGateArityMismatch, g.Name(), k, len(targets))
	}
	for i, t := range targets {
		if t < 0 || t >= s.qubits {
			return fmt.Errorf("%w: target %d of %d-qubit register", ErrInvalidQubitIndex, t, s.qubits)
		}
		for _, u := range targets[:i] {
			if t == u {
				return fmt.Errorf("%w: duplicate target %d", ErrInvalidQubitIndex, t)
			}
		}
	}

	// Local index bit b corresponds to target qubit b: offsets[j] picks
	// the basis state of a class whose target bits spell out j.
	dim := 1 << k
	offsets := make([]int, dim)
	for j := 1; j < dim; j++ {
		for b := 0; b < k; b++ {
			if j&(1<<b) != 0 {
				offsets[j] |= 1 << targets[b]
			}
		}
	}

	// Bit positions at which a compressed class index is expanded back
	// into a full basis-state index, ascending.
	positions := slices.Clone(targets)
	slices.Sort(positions)

	classes := 1 << (s.qubits - k)
	if classes >= parallelClasses {
		applyParallel(s, g, offsets, positions, classes)
	} else {
		applyRange(s, g, offsets, positions, 0, classes)
	}
	return nil
}

// applyRange applies the matrix to the classes in [from, to). Classes
// never share amplitudes, so disjoint ranges are race-free.
func applyRange(s *StateVector, g *Gate, offsets, positions []int, from, to int) {
	dim := len(offsets)
	matrix := g.matrix
	in := make([]complex128, dim)
	for c := from; c < to; c++ {
		// Scatter the compressed index around the target bit positions;
		// the result is the class's basis state with all target bits 0.
		base := c
		for _, p := range positions {
			low := base & (1<<p - 1)
			base = (base>>p)<<(p+1) | low
		}

		for j := 0; j < dim; j++ {
			in[j] = s.amps[base|offsets[j]]
		}
		for row := 0; row < dim; row++ {
			var out complex128
			for col := 0; col < dim; col++ {
				out += matrix[row*dim+col] * in[col]
			}
			s.amps[base|offsets[row]] = out
		}
	}
}

// applyParallel splits the class range across workers. Partitioning by
// compressed index keeps every read-modify-write tuple inside a single
// worker; the call returns only once the whole gate is applied.
func applyParallel(s *StateVector, g *Gate, offsets, positions []int, classes int) {
	workers := runtime.NumCPU()
	if workers > classes {
		workers = classes
	}
	chunk := (classes + workers - 1) / workers

	var wg sync.WaitGroup
	for from := 0; from < classes; from += chunk {
		to := from + chunk
		if to > classes {
			to = classes
		}
		wg.Add(1)
		go func(from, to int) {
			defer wg.Done()
			applyRange(s, g, offsets, positions, from, to)
		}(from, to)
	}
	wg.Wait()
}
