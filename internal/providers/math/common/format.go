package common

import (
	"math"
	"strconv"
	"strings"
)

// Exponent form kicks in outside this window, matching the float repr the
// templates were written against.
const (
	expUpper = 1e16
	expLower = 1e-4
)

// FormatNumber renders a float in shortest round-trip form, keeping ".0" on
// integral values.
func FormatNumber(x float64) string {
	switch {
	case math.IsNaN(x):
		return "nan"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}

	abs := math.Abs(x)
	if abs != 0 && (abs >= expUpper || abs < expLower) {
		return strconv.FormatFloat(x, 'e', -1, 64)
	}

	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// FormatFixed renders x with a fixed number of decimal places.
func FormatFixed(x float64, places int) string {
	return strconv.FormatFloat(x, 'f', places, 64)
}

// JoinNumbers formats each number and joins them with sep.
func JoinNumbers(nums []float64, sep string) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = FormatNumber(n)
	}
	return strings.Join(parts, sep)
}

// Plural returns "s" when count is not one.
func Plural(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
