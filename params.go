package qsim

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// paramPattern matches one gate parameter: a number ("1.5707",
// "3.14e-2") or a pi fraction ("pi", "pi/2", "3*pi/4", "-2*pi/3").
const paramPattern = `-?(?:\d*\.?\d*\*?pi(?:/\d+\.?\d*)?|\d+\.?\d*(?:[eE][+\-]?\d+)?)`

var piExprRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// parseParamExpr evaluates a parameter expression. The second result is
// false when the expression is neither a number nor a pi fraction.
func parseParamExpr(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if val, err := strconv.ParseFloat(s, 64); err == nil {
		return val, true
	}

	m := piExprRegex.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return 0, false
	}
	val := math.Pi
	if m[2] != "" {
		coeff, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return 0, false
		}
		val *= coeff
	}
	if m[3] != "" {
		denom, err := strconv.ParseFloat(m[3], 64)
		if err != nil || denom == 0 {
			return 0, false
		}
		val /= denom
	}
	if m[1] == "-" {
		val = -val
	}
	return val, true
}

// formatParam renders a parameter for generated QASM, preferring the
// pi fractions parseParamExpr reads back over a bare float. Fractions
// num*pi/den up to den 8 within one turn are recognized; denominators
// ascend, so a reducible fraction never wins over its reduced form.
func formatParam(val float64) string {
	abs := math.Abs(val)
	for den := 1; den <= 8; den++ {
		for num := 1; num <= 2*den; num++ {
			if math.Abs(abs-float64(num)*math.Pi/float64(den)) > 1e-10 {
				continue
			}
			expr := piFraction(num, den)
			if val < 0 {
				expr = "-" + expr
			}
			return expr
		}
	}
	return strconv.FormatFloat(val, 'g', -1, 64)
}

func piFraction(num, den int) string {
	switch {
	case num == 1 && den == 1:
		return "pi"
	case den == 1:
		return fmt.Sprintf("%d*pi", num)
	case num == 1:
		return fmt.Sprintf("pi/%d", den)
	}
	return fmt.Sprintf("%d*pi/%d", num, den)
}
