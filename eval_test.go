package qsim

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTallyCounts(t *testing.T) {
	tally := NewTally(2)
	tally.Add([]bool{false, false})
	tally.Add([]bool{true, true})
	tally.Add([]bool{true, true})
	tally.Add([]bool{true, false})

	assert.Equal(t, 4, tally.Shots())
	assert.Equal(t, 1, tally.Count(0b00))
	assert.Equal(t, 2, tally.Count(0b11))
	assert.Equal(t, 1, tally.Count(0b01))
	assert.Zero(t, tally.Count(0b10))

	assert.InDelta(t, 0.25, tally.Frequency(0b00), Epsilon)
	assert.InDelta(t, 0.5, tally.Frequency(0b11), Epsilon)

	assert.InDelta(t, 0.75, tally.OneFrequency(0), Epsilon)
	assert.InDelta(t, 0.5, tally.OneFrequency(1), Epsilon)
}

func TestTallyAddIgnoresExtraBits(t *testing.T) {
	tally := NewTally(2)
	tally.Add([]bool{true, false, true, true})

	assert.Equal(t, 1, tally.Shots())
	assert.Equal(t, 1, tally.Count(0b01))
	assert.InDelta(t, 1.0, tally.OneFrequency(0), Epsilon)
	assert.InDelta(t, 0.0, tally.OneFrequency(1), Epsilon)
}

func TestTallyEmpty(t *testing.T) {
	tally := NewTally(3)
	assert.Zero(t, tally.Shots())
	assert.Zero(t, tally.Frequency(0))
	assert.Zero(t, tally.OneFrequency(2))
}

func TestTallyRender(t *testing.T) {
	tally := NewTally(2)
	tally.Add([]bool{true, true})
	tally.Add([]bool{true, true})
	tally.Add([]bool{false, false})

	out := tally.Render()
	assert.Contains(t, out, "3 shots, 2 bits")
	assert.Contains(t, out, "|11>")
	assert.Contains(t, out, "|00>")
	assert.Contains(t, out, "66.67%")

	// Most frequent outcome first.
	assert.Less(t, strings.Index(out, "|11>"), strings.Index(out, "|00>"))
}
