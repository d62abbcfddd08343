package qsim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeasureBasisStateIsDeterministic(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		reg, err := New(2, seed)
		assert.NoError(t, err)
		assert.NoError(t, reg.X(0))

		out, err := reg.MeasureAll()
		assert.NoError(t, err)
		assert.Equal(t, []bool{true, false}, out.Bits)
		assert.InDelta(t, 1.0, out.Probability, Epsilon)
		assert.Equal(t, "|01>", out.String())
	}
}

func TestMeasureIsIdempotentAfterCollapse(t *testing.T) {
	reg, err := New(2, 42)
	assert.NoError(t, err)
	assert.NoError(t, reg.H(0))
	assert.NoError(t, reg.CNOT(0, 1))

	first, err := reg.MeasureAll()
	assert.NoError(t, err)
	assert.InDelta(t, 0.5, first.Probability, Epsilon)

	// The register is collapsed; every further measurement must repeat
	// the outcome with probability 1.
	for i := 0; i < 5; i++ {
		again, err := reg.MeasureAll()
		assert.NoError(t, err)
		assert.Equal(t, first.Bits, again.Bits)
		assert.InDelta(t, 1.0, again.Probability, Epsilon)
	}
}

func TestMeasureCollapsesState(t *testing.T) {
	reg, err := New(2, 7)
	assert.NoError(t, err)
	assert.NoError(t, reg.H(0))
	assert.NoError(t, reg.CNOT(0, 1))

	out, err := reg.Measure(0)
	assert.NoError(t, err)

	// Measuring one half of a Bell pair decides the other half too.
	amps := reg.Amplitudes()
	if out.Bits[0] {
		assert.InDelta(t, 1.0, real(amps[3]), Epsilon)
	} else {
		assert.InDelta(t, 1.0, real(amps[0]), Epsilon)
	}
}

func TestBellStateStatistics(t *testing.T) {
	const shots = 2000
	reg, err := New(2, 1)
	assert.NoError(t, err)

	count11 := 0
	for i := 0; i < shots; i++ {
		reg.Reset()
		assert.NoError(t, reg.H(0))
		assert.NoError(t, reg.CNOT(0, 1))

		out, err := reg.MeasureAll()
		assert.NoError(t, err)
		assert.InDelta(t, 0.5, out.Probability, Epsilon)

		// Entanglement forbids mixed outcomes entirely.
		assert.Equal(t, out.Bits[0], out.Bits[1])
		if out.Bits[0] {
			count11++
		}
	}
	frequency := float64(count11) / shots
	assert.InDelta(t, 0.5, frequency, 0.05)
}

func TestMeasureIsReproducible(t *testing.T) {
	program := func(reg *Register) {
		assert.NoError(t, reg.X(0))
		assert.NoError(t, reg.Y(1))
		assert.NoError(t, reg.Z(2))
		assert.NoError(t, reg.CZ(0, 1))
		assert.NoError(t, reg.Toffoli(0, 1, 2))
		assert.NoError(t, reg.SGate(0))
		assert.NoError(t, reg.Swap(1, 2))
		assert.NoError(t, reg.T(1))
		assert.NoError(t, reg.CNOT(0, 1))
		assert.NoError(t, reg.H(1))
	}

	a, err := New(3, 99)
	assert.NoError(t, err)
	b, err := New(3, 99)
	assert.NoError(t, err)

	for run := 0; run < 50; run++ {
		a.Reset()
		b.Reset()
		program(a)
		program(b)

		outA, err := a.MeasureAll()
		assert.NoError(t, err)
		outB, err := b.MeasureAll()
		assert.NoError(t, err)
		assert.Equal(t, outA.Bits, outB.Bits)
	}
}

func TestMeasureSubsetBitsAlignWithArguments(t *testing.T) {
	reg, err := New(3, 0)
	assert.NoError(t, err)
	assert.NoError(t, reg.X(2))

	out, err := reg.Measure(2, 0)
	assert.NoError(t, err)
	assert.Equal(t, []bool{true, false}, out.Bits)
	assert.InDelta(t, 1.0, out.Probability, Epsilon)
}

func TestMeasureInvalidQubits(t *testing.T) {
	reg, err := New(2, 0)
	assert.NoError(t, err)
	assert.NoError(t, reg.H(0))
	before := reg.Amplitudes()

	_, err = reg.Measure()
	assert.ErrorIs(t, err, ErrInvalidQubitIndex)

	_, err = reg.Measure(2)
	assert.ErrorIs(t, err, ErrInvalidQubitIndex)

	_, err = reg.Measure(0, 0)
	assert.ErrorIs(t, err, ErrInvalidQubitIndex)

	assert.Equal(t, before, reg.Amplitudes())
}

func TestMeasureDegenerateState(t *testing.T) {
	s, err := NewStateVector(2)
	assert.NoError(t, err)
	s.amps[0] = 0

	_, err = Measure(s, []int{0}, rand.New(rand.NewSource(0)))
	assert.ErrorIs(t, err, ErrDegenerateState)
}

func TestMeasureUnnormalizedState(t *testing.T) {
	s, err := NewStateVector(2)
	assert.NoError(t, err)
	s.amps[0] = 2

	_, err = Measure(s, []int{0}, rand.New(rand.NewSource(0)))
	assert.ErrorIs(t, err, ErrUnnormalizedState)
}
