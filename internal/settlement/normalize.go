// Package settlement computes paddy purchase settlements from raw form input.
package settlement

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// leadingNumber matches the longest numeric prefix, the way form fields are
// read: "1,020kg" is 1020 and ".5" is 0.5.
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Normalize coerces entered text to a number. Grouping commas are ignored.
// Empty, non-numeric and non-finite input yields 0; it never fails.
func Normalize(raw string) float64 {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if s == "" {
		return 0
	}

	match := leadingNumber.FindString(s)
	if match == "" {
		return 0
	}

	n, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// FloorCount floors a normalized count; fractional bags are dropped.
func FloorCount(raw string) float64 {
	return math.Floor(Normalize(raw))
}
