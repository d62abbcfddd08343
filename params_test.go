package qsim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseParamExpr(t *testing.T) {
	cases := map[string]float64{
		"pi":      math.Pi,
		"pi/2":    math.Pi / 2,
		"3*pi/4":  3 * math.Pi / 4,
		"-pi/2":   -math.Pi / 2,
		"2*pi":    2 * math.Pi,
		"2pi":     2 * math.Pi,
		"1.5707":  1.5707,
		"3.14e-2": 3.14e-2,
		"-0.5":    -0.5,
	}
	for expr, want := range cases {
		got, ok := parseParamExpr(expr)
		assert.True(t, ok, expr)
		assert.InDelta(t, want, got, 1e-12, expr)
	}

	for _, expr := range []string{"", "tau", "pi/0", "two*pi"} {
		_, ok := parseParamExpr(expr)
		assert.False(t, ok, expr)
	}
}

func TestFormatParam(t *testing.T) {
	cases := map[float64]string{
		math.Pi:         "pi",
		math.Pi / 2:     "pi/2",
		math.Pi / 8:     "pi/8",
		3 * math.Pi / 4: "3*pi/4",
		3 * math.Pi / 2: "3*pi/2",
		2 * math.Pi:     "2*pi",
		-math.Pi / 4:    "-pi/4",
		0.123:           "0.123",
	}
	for val, want := range cases {
		assert.Equal(t, want, formatParam(val), want)
	}
}

func TestParamRoundTrip(t *testing.T) {
	for _, val := range []float64{math.Pi / 3, -2 * math.Pi / 3, 5 * math.Pi / 8, 0.7071, -1.25} {
		got, ok := parseParamExpr(formatParam(val))
		assert.True(t, ok)
		assert.InDelta(t, val, got, 1e-9)
	}
}
