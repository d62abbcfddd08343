package qsim

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
)

// deutschJozsa runs the n-input Deutsch-Jozsa circuit for f and reports
// whether the algorithm declares f constant.
func deutschJozsa(t *testing.T, f func(uint64) bool, inputs int) bool {
	t.Helper()
	oracle, err := OracleGate(f, inputs)
	assert.NoError(t, err)

	reg, err := New(inputs+1, 0)
	assert.NoError(t, err)
	assert.NoError(t, reg.X(inputs))
	for q := 0; q <= inputs; q++ {
		assert.NoError(t, reg.H(q))
	}
	targets := make([]int, inputs+1)
	for i := range targets {
		targets[i] = i
	}
	assert.NoError(t, reg.ApplyGate(oracle, targets...))
	for q := 0; q < inputs; q++ {
		assert.NoError(t, reg.H(q))
	}

	out, err := reg.Measure(targets[:inputs]...)
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, out.Probability, Epsilon)

	// All input qubits read 0 exactly when f is constant.
	for _, b := range out.Bits {
		if b {
			return false
		}
	}
	return true
}

func TestDeutschJozsaConstant(t *testing.T) {
	assert.True(t, deutschJozsa(t, func(uint64) bool { return false }, 1))
	assert.True(t, deutschJozsa(t, func(uint64) bool { return true }, 1))
	assert.True(t, deutschJozsa(t, func(uint64) bool { return true }, 3))
}

func TestDeutschJozsaBalanced(t *testing.T) {
	assert.False(t, deutschJozsa(t, func(x uint64) bool { return x&1 == 1 }, 1))
	assert.False(t, deutschJozsa(t, func(x uint64) bool { return bits.OnesCount64(x)%2 == 1 }, 3))
}

func TestBernsteinVazirani(t *testing.T) {
	const secret = uint64(0b1101)
	const inputs = 4
	f := func(x uint64) bool { return bits.OnesCount64(x&secret)%2 == 1 }

	oracle, err := OracleGate(f, inputs)
	assert.NoError(t, err)

	reg, err := New(inputs+1, 0)
	assert.NoError(t, err)
	assert.NoError(t, reg.X(inputs))
	for q := 0; q <= inputs; q++ {
		assert.NoError(t, reg.H(q))
	}
	assert.NoError(t, reg.ApplyGate(oracle, 0, 1, 2, 3, 4))
	for q := 0; q < inputs; q++ {
		assert.NoError(t, reg.H(q))
	}

	out, err := reg.Measure(0, 1, 2, 3)
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, out.Probability, Epsilon)

	// One query recovers the whole secret.
	recovered := uint64(0)
	for i, b := range out.Bits {
		if b {
			recovered |= 1 << i
		}
	}
	assert.Equal(t, secret, recovered)
}

func TestOracleGateIsPermutation(t *testing.T) {
	g, err := OracleGate(func(x uint64) bool { return x == 2 }, 2)
	assert.NoError(t, err)
	assert.Equal(t, 3, g.Arity())

	// Exactly one 1 per column, and f only ever flips the answer bit.
	m := g.Matrix()
	dim := g.Dim()
	for col := 0; col < dim; col++ {
		ones := 0
		for row := 0; row < dim; row++ {
			if m[row*dim+col] != 0 {
				ones++
				assert.Equal(t, col&0b011, row&0b011, "input bits must pass through")
			}
		}
		assert.Equal(t, 1, ones, "column %d", col)
	}
}

func TestOracleGateInvalidInputs(t *testing.T) {
	for _, inputs := range []int{0, -3, maxOracleQubits} {
		g, err := OracleGate(func(uint64) bool { return false }, inputs)
		assert.ErrorIs(t, err, ErrInvalidDimension)
		assert.Nil(t, g)
	}

	identity := func(x uint64) uint64 { return x }
	_, err := OracleGateN(identity, 2, 0)
	assert.ErrorIs(t, err, ErrInvalidDimension)
	_, err = OracleGateN(identity, 5, 5)
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestOracleGateNMultiOutput(t *testing.T) {
	// f(x) = x over 2 inputs and 2 outputs XORs the inputs into the
	// output register.
	g, err := OracleGateN(func(x uint64) uint64 { return x }, 2, 2)
	assert.NoError(t, err)
	assert.Equal(t, 4, g.Arity())

	m := g.Matrix()
	dim := g.Dim()
	for col := 0; col < dim; col++ {
		x := col & 0b0011
		y := col >> 2
		row := x | (y^x)<<2
		assert.Equal(t, complex128(1), m[row*dim+col], "column %d", col)
	}
}

func TestSimonOrthogonality(t *testing.T) {
	// Simon's algorithm over a 2-to-1 function with hidden period s:
	// every measured input register y satisfies y.s = 0 mod 2.
	const secret = uint64(0b110)
	const n = 3
	f := func(x uint64) uint64 {
		if p := x ^ secret; p < x {
			return p
		}
		return x
	}
	oracle, err := OracleGateN(f, n, n)
	assert.NoError(t, err)

	reg, err := New(2*n, 21)
	assert.NoError(t, err)
	targets := make([]int, 2*n)
	for i := range targets {
		targets[i] = i
	}

	seen := map[uint64]bool{}
	for shot := 0; shot < 100; shot++ {
		reg.Reset()
		for q := 0; q < n; q++ {
			assert.NoError(t, reg.H(q))
		}
		assert.NoError(t, reg.ApplyGate(oracle, targets...))
		for q := 0; q < n; q++ {
			assert.NoError(t, reg.H(q))
		}

		out, err := reg.Measure(targets[:n]...)
		assert.NoError(t, err)

		y := uint64(0)
		for i, b := range out.Bits {
			if b {
				y |= 1 << i
			}
		}
		assert.Zero(t, bits.OnesCount64(y&secret)%2, "y = %03b", y)
		seen[y] = true
	}

	// The orthogonal complement of the secret has more than one
	// element, and 100 draws must not all land on the same one.
	assert.Greater(t, len(seen), 1)
}
