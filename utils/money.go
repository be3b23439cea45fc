package utils

import (
	"math"
	"strconv"
	"strings"
)

// DecimalPlaces counts the digits after the decimal point in the shortest
// representation of x.
func DecimalPlaces(x float64) int {
	s := strconv.FormatFloat(math.Abs(x), 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

// IntegerDigits counts the digits before the decimal point of x.
func IntegerDigits(x float64) int {
	s := strconv.FormatFloat(math.Trunc(math.Abs(x)), 'f', 0, 64)
	return len(s)
}

// FormatAmount renders x without trailing zeros ("500", "12.5").
func FormatAmount(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
