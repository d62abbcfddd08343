package main

import (
	"fmt"
	"math/cmplx"
	"strings"

	"qsim"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// probBar renders a probability in [0, 1] as a fixed-width bar.
func probBar(p float64) string {
	filled := int(p*barWidth + 0.5)
	if filled > barWidth {
		filled = barWidth
	}
	return barStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", barWidth-filled))
}

// ket formats a basis state index as a ket with qubit 0 rightmost.
func ket(basis, qubits int) string {
	var sb strings.Builder
	sb.WriteByte('|')
	for q := qubits - 1; q >= 0; q-- {
		if basis&(1<<q) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	sb.WriteByte('>')
	return sb.String()
}

// renderState lists the non-negligible basis states with amplitude,
// probability and phase.
func renderState(state *qsim.StateVector) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("State vector"))
	sb.WriteByte('\n')

	qubits := state.QubitCount()
	rows := 0
	for i := 0; i < state.Size(); i++ {
		p := state.Probability(i)
		if p <= 1e-10 {
			continue
		}
		if rows >= stateRows {
			sb.WriteString(dimStyle.Render("..."))
			sb.WriteByte('\n')
			break
		}
		a := state.Amplitude(i)
		sb.WriteString(fmt.Sprintf("%s %s %6.2f%%  %s\n",
			ketStyle.Render(ket(i, qubits)),
			probBar(p),
			100*p,
			dimStyle.Render(fmt.Sprintf("%.4f%+.4fi  phase %+.3f", real(a), imag(a), cmplx.Phase(a)))))
		rows++
	}
	return sb.String()
}

// renderQubitProbs shows the marginal |1> probability of every qubit.
func renderQubitProbs(state *qsim.StateVector) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Qubits"))
	sb.WriteByte('\n')
	for q, p := range state.QubitProbabilities() {
		sb.WriteString(fmt.Sprintf("q[%d] %s P(1)=%6.2f%%\n", q, probBar(p.Prob1), 100*p.Prob1))
	}
	return sb.String()
}
