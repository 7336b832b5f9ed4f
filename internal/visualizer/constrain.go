package visualizer

import "math"

// ConstrainOffset clamps a center offset so the area's bounding box stays
// inside the tablet. When the area is larger than the tablet on an axis the
// bounds invert and that axis collapses to the tablet midpoint.
func ConstrainOffset(offsetX, offsetY, areaW, areaH, tabletW, tabletH float64) AreaOffset {
	halfW := areaW / 2
	halfH := areaH / 2
	return AreaOffset{
		X: clamp(offsetX, halfW, tabletW-halfW),
		Y: clamp(offsetY, halfH, tabletH-halfH),
	}
}

// clamp restricts v to [lo, hi]. Inverted bounds return their midpoint.
func clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	return math.Min(math.Max(v, lo), hi)
}
