package visualizer

import "math"

// MmToPx converts a tablet-space length to screen pixels.
// A non-finite or negative scale yields 0.
func MmToPx(valueMm, scale float64) float64 {
	if !usableScale(scale) {
		return 0
	}
	return valueMm * scale
}

// PxToMm converts a screen-space length back to millimeters.
// A zero, negative or non-finite scale yields 0.
func PxToMm(valuePx, scale float64) float64 {
	if !usableScale(scale) || scale == 0 {
		return 0
	}
	return valuePx / scale
}

func usableScale(scale float64) bool {
	return !math.IsNaN(scale) && !math.IsInf(scale, 0) && scale >= 0
}
