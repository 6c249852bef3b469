// Package scaling resizes recipes: ingredient quantities follow the serving
// ratio and the pan diameter follows its square root.
package scaling

import (
	"math"
	"strconv"
	"strings"
)

// Quantity is a parsed ingredient quantity. It is either numeric or a literal
// ("q.b.", "un pizzico", "2-3") that must be carried through unchanged.
type Quantity struct {
	raw      string
	value    float64
	numeric  bool
	integral bool
	comma    bool
}

// ParseQuantity classifies an ingredient quantity. The whole trimmed string
// must be a finite number; a single decimal comma is accepted.
func ParseQuantity(s string) Quantity {
	q := Quantity{raw: s}

	text := strings.TrimSpace(s)
	if text == "" {
		return q
	}

	if strings.Count(text, ",") == 1 && !strings.Contains(text, ".") {
		text = strings.Replace(text, ",", ".", 1)
		q.comma = true
	}

	// Plain decimal notation only: no exponents, hex, underscores, NaN or Inf.
	if strings.IndexFunc(text, notDecimal) >= 0 {
		q.comma = false
		return q
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(v, 0) {
		q.comma = false
		return q
	}

	q.value = v
	q.numeric = true
	q.integral = v == math.Trunc(v)
	return q
}

// Numeric returns the value and true when the quantity is a number.
func (q Quantity) Numeric() (float64, bool) {
	return q.value, q.numeric
}

// IsIntegral reports whether a numeric quantity has no fractional part.
func (q Quantity) IsIntegral() bool {
	return q.numeric && q.integral
}

// String returns the original text.
func (q Quantity) String() string {
	return q.raw
}

// Scale multiplies a numeric quantity by ratio and renders it, rounding to
// whole units for integral inputs and to one decimal otherwise. Literals are
// returned as written.
func (q Quantity) Scale(ratio float64) string {
	if !q.numeric || ratio == 1 {
		return q.raw
	}

	decimals := 1
	if q.integral {
		decimals = 0
	}
	scaled := roundTo(q.value*ratio, decimals)

	out := strconv.FormatFloat(scaled, 'f', -1, 64)
	if q.comma {
		out = strings.Replace(out, ".", ",", 1)
	}
	return out
}

func notDecimal(r rune) bool {
	return (r < '0' || r > '9') && r != '.' && r != '-' && r != '+'
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	r := math.Round(v*p) / p
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}
