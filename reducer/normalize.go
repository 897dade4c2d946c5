package reducer

import (
	"math"
	"strconv"
	"strings"

	"github.com/rmoseley/steptools/parser"
)

// normalize.go canonicalizes real-number lexemes for comparison. STEP
// writers disagree wildly on formatting: 1.0, 1., 0.1E1, and 10.0E-1 all
// denote the same value. Comparison uses a canonical decimal expansion;
// emitted output always keeps the original lexeme.

// isRealLexeme reports whether the lexeme is a real (as opposed to integer)
// literal. Integers compare verbatim: 2 and 2. are distinct STEP types.
func isRealLexeme(s string) bool {
	return strings.ContainsAny(s, ".eE")
}

// normalizeNumber canonicalizes a real-number lexeme: the exponent is
// expanded into the mantissa, leading zeros on the integer part and trailing
// zeros on the fractional part are stripped, and the result always carries a
// decimal point. Negative zero collapses to "0.".
//
//	1.0    -> 1.
//	.5     -> 0.5
//	1.0E-3 -> 0.001
//	2.5e+2 -> 250.
//	-0.0   -> 0.
func normalizeNumber(s string) string {
	mantissa := s
	exp := 0
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa = s[:i]
		if v, err := strconv.Atoi(strings.TrimPrefix(s[i+1:], "+")); err == nil {
			exp = v
		}
	}

	negative := strings.HasPrefix(mantissa, "-")
	mantissa = strings.TrimPrefix(strings.TrimPrefix(mantissa, "-"), "+")

	intPart, fracPart, _ := strings.Cut(mantissa, ".")
	if intPart == "" {
		intPart = "0"
	}

	// Apply the exponent by shifting the decimal point.
	switch {
	case exp > 0:
		if exp < len(fracPart) {
			intPart += fracPart[:exp]
			fracPart = fracPart[exp:]
		} else {
			intPart += fracPart + strings.Repeat("0", exp-len(fracPart))
			fracPart = ""
		}
	case exp < 0:
		shift := -exp
		if shift < len(intPart) {
			split := len(intPart) - shift
			fracPart = intPart[split:] + fracPart
			intPart = intPart[:split]
		} else {
			fracPart = strings.Repeat("0", shift-len(intPart)) + intPart + fracPart
			intPart = "0"
		}
	}

	intPart = strings.TrimLeft(intPart, "0")
	if intPart == "" {
		intPart = "0"
	}
	fracPart = strings.TrimRight(fracPart, "0")

	if intPart == "0" && fracPart == "" {
		return "0." // covers negative zero
	}
	if negative {
		return "-" + intPart + "." + fracPart
	}
	return intPart + "." + fracPart
}

// truncateNumber normalizes a real lexeme and truncates its fraction to at
// most maxDecimals digits, re-stripping trailing zeros afterwards.
func truncateNumber(s string, maxDecimals int) string {
	normalized := normalizeNumber(s)

	negative := strings.HasPrefix(normalized, "-")
	body := strings.TrimPrefix(normalized, "-")

	intPart, fracPart, _ := strings.Cut(body, ".")
	if len(fracPart) > maxDecimals {
		fracPart = fracPart[:maxDecimals]
	}
	fracPart = strings.TrimRight(fracPart, "0")

	if intPart == "0" && fracPart == "" {
		return "0."
	}
	if negative {
		return "-" + intPart + "." + fracPart
	}
	return intPart + "." + fracPart
}

// extractUncertainty derives a decimal-place count from the file's
// UNCERTAINTY_MEASURE_WITH_UNIT(LENGTH_MEASURE(v)) declaration: numbers that
// agree within the model's own stated uncertainty are interchangeable.
// Returns ceil(-log10(v))+1 and true when a positive uncertainty is found.
func extractUncertainty(file *parser.StepFile) (int, bool) {
	for _, e := range file.Data.Entities {
		if e.IsComplex() {
			for _, rec := range e.Complex {
				if rec.Type == "UNCERTAINTY_MEASURE_WITH_UNIT" {
					if n, ok := uncertaintyFromParams(rec.Params); ok {
						return n, true
					}
				}
			}
			continue
		}
		if e.Type == "UNCERTAINTY_MEASURE_WITH_UNIT" {
			if n, ok := uncertaintyFromParams(e.Params); ok {
				return n, true
			}
		}
	}
	return 0, false
}

// uncertaintyFromParams finds a LENGTH_MEASURE(number) typed parameter and
// converts its value to a decimal-place count.
func uncertaintyFromParams(params []parser.Value) (int, bool) {
	for _, p := range params {
		if p.Kind == parser.KindTyped && p.Raw == "LENGTH_MEASURE" && len(p.List) == 1 {
			inner := p.List[0]
			if inner.Kind != parser.KindNumber {
				continue
			}
			v, err := strconv.ParseFloat(inner.Raw, 64)
			if err != nil || v <= 0 {
				continue
			}
			return int(math.Ceil(-math.Log10(v))) + 1, true
		}
	}
	return 0, false
}
