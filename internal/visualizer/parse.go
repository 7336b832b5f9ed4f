package visualizer

import (
	"math"
	"strconv"
	"strings"
)

// ParseFloatSafe parses a form value, treating anything non-numeric or
// non-finite as 0. A decimal comma is accepted; Go digit separators are not.
func ParseFloatSafe(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsRune(s, '_') {
		return 0
	}
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func formatSize(v float64) string   { return strconv.FormatFloat(v, 'f', 1, 64) }
func formatOffset(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) }
func formatRatio(v float64) string  { return strconv.FormatFloat(v, 'f', 3, 64) }
