package visualizer

import "math"

// ContainerPadding is subtracted from each container axis before fitting the
// tablet boundary (20px on every side).
const ContainerPadding = 40.0

// ComputeScale fits the tablet boundary inside the container while keeping
// the tablet's aspect ratio, and returns the resulting px/mm scale.
func ComputeScale(tabletW, tabletH, containerW, containerH float64) ScaleState {
	if !(tabletW > 0) || math.IsInf(tabletW, 0) {
		tabletW = 1
	}
	if !(tabletH > 0) || math.IsInf(tabletH, 0) {
		tabletH = 1
	}

	tabletRatio := tabletW / tabletH

	var boundaryW, boundaryH float64
	if containerW/tabletRatio <= containerH {
		// Width-constrained
		boundaryW = containerW
		boundaryH = boundaryW / tabletRatio
	} else {
		// Height-constrained
		boundaryH = containerH
		boundaryW = boundaryH * tabletRatio
	}

	scale := boundaryW / tabletW
	if !(scale > 0) || math.IsInf(scale, 0) {
		scale = 1
		boundaryW = tabletW
		boundaryH = tabletH
	}

	return ScaleState{
		Scale:            scale,
		BoundaryWidthPx:  boundaryW,
		BoundaryHeightPx: boundaryH,
	}
}
