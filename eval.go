package qsim

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	tallyTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	tallyKetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#73daca"))

	tallyDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))
)

// Tally aggregates the results of repeated measurement runs: how often
// each outcome bitstring occurred, and how often each individual bit
// came out 1.
type Tally struct {
	bits      int
	shots     int
	counts    map[uint64]int
	oneCounts []int
}

// NewTally returns an empty tally over the given number of bits.
func NewTally(bits int) *Tally {
	return &Tally{
		bits:      bits,
		counts:    make(map[uint64]int),
		oneCounts: make([]int, bits),
	}
}

// Add records one run's outcome bits. Bit i of the slice is bit i of
// the tallied bitstring; bits beyond the tally's width are ignored.
func (t *Tally) Add(bits []bool) {
	if len(bits) > t.bits {
		bits = bits[:t.bits]
	}
	key := uint64(0)
	for i, b := range bits {
		if b {
			key |= 1 << i
			t.oneCounts[i]++
		}
	}
	t.counts[key]++
	t.shots++
}

// Shots returns the number of recorded runs.
func (t *Tally) Shots() int {
	return t.shots
}

// Count returns how often the given outcome occurred. Bit i of the key
// is bit i of the outcome.
func (t *Tally) Count(key uint64) int {
	return t.counts[key]
}

// Frequency returns the empirical frequency of the given outcome.
func (t *Tally) Frequency(key uint64) float64 {
	if t.shots == 0 {
		return 0
	}
	return float64(t.counts[key]) / float64(t.shots)
}

// OneFrequency returns the empirical frequency of bit i being 1.
func (t *Tally) OneFrequency(i int) float64 {
	if t.shots == 0 {
		return 0
	}
	return float64(t.oneCounts[i]) / float64(t.shots)
}

func (t *Tally) ket(key uint64) string {
	var sb strings.Builder
	sb.WriteByte('|')
	for i := t.bits - 1; i >= 0; i-- {
		if key&(1<<i) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	sb.WriteByte('>')
	return sb.String()
}

func (t *Tally) wildcard(bit int) string {
	var sb strings.Builder
	sb.WriteByte('|')
	for i := t.bits - 1; i >= 0; i-- {
		if i == bit {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('*')
		}
	}
	sb.WriteByte('>')
	return sb.String()
}

// Render formats the tally as a styled report: every observed outcome
// with its frequency, most frequent first, followed by the per-bit
// one-frequencies.
func (t *Tally) Render() string {
	type pair struct {
		key   uint64
		count int
	}
	pairs := make([]pair, 0, len(t.counts))
	for key, count := range t.counts {
		pairs = append(pairs, pair{key, count})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].key < pairs[j].key
	})

	var sb strings.Builder
	sb.WriteString(tallyTitleStyle.Render(fmt.Sprintf("%d shots, %d bits", t.shots, t.bits)))
	sb.WriteByte('\n')
	for _, p := range pairs {
		pct := 100 * float64(p.count) / float64(t.shots)
		sb.WriteString(fmt.Sprintf("%s  %6.2f%%  %s\n",
			tallyKetStyle.Render(t.ket(p.key)), pct,
			tallyDimStyle.Render(fmt.Sprintf("(%d)", p.count))))
	}
	for i := 0; i < t.bits; i++ {
		pct := 100 * t.OneFrequency(i)
		sb.WriteString(tallyDimStyle.Render(fmt.Sprintf("%d. %s  %6.2f%%", i, t.wildcard(i), pct)))
		sb.WriteByte('\n')
	}
	return sb.String()
}
