package visualizer

import (
	"log/slog"
	"math"
	"strings"
)

// Sync is the single recompute entry point. It reads the form, normalizes
// the area, recomputes the scale and writes geometry back. It returns false
// when the pass was skipped or aborted; an aborted pass writes nothing.
func (v *Visualizer) Sync() bool {
	if !v.usable() || v.busy() {
		return false
	}
	v.syncing = true
	defer func() { v.syncing = false }()

	return v.syncLocked()
}

func (v *Visualizer) syncLocked() bool {
	tabletW := v.field(FieldTabletWidth)
	tabletH := v.field(FieldTabletHeight)
	if tabletW < MinTabletDimension || tabletH < MinTabletDimension {
		slog.Warn("invalid tablet dimensions, skipping sync",
			"width", tabletW, "height", tabletH, "min", MinTabletDimension)
		return false
	}

	areaW, areaWChanged := clampDimension(v.field(FieldAreaWidth), tabletW)
	areaH, areaHChanged := clampDimension(v.field(FieldAreaHeight), tabletH)
	if areaWChanged {
		v.form.SetValue(FieldAreaWidth, formatSize(areaW))
	}
	if areaHChanged {
		v.form.SetValue(FieldAreaHeight, formatSize(areaH))
	}

	focused := v.form.Focused()
	rawX := v.form.Value(FieldOffsetX)
	rawY := v.form.Value(FieldOffsetY)
	x := offsetValue(rawX, focused == FieldOffsetX, tabletW/2)
	y := offsetValue(rawY, focused == FieldOffsetY, tabletH/2)

	constrained := ConstrainOffset(x, y, areaW, areaH, tabletW, tabletH)
	if focused != FieldOffsetX {
		if math.Abs(constrained.X-ParseFloatSafe(rawX)) > offsetEpsilon || strings.TrimSpace(rawX) == "" {
			v.form.SetValue(FieldOffsetX, formatOffset(constrained.X))
		}
		x = constrained.X
	}
	if focused != FieldOffsetY {
		if math.Abs(constrained.Y-ParseFloatSafe(rawY)) > offsetEpsilon || strings.TrimSpace(rawY) == "" {
			v.form.SetValue(FieldOffsetY, formatOffset(constrained.Y))
		}
		y = constrained.Y
	}

	if !v.measured {
		v.measureContainer()
	}
	v.scale = ComputeScale(tabletW, tabletH, v.containerW, v.containerH)

	widthPx := MmToPx(areaW, v.scale.Scale)
	heightPx := MmToPx(areaH, v.scale.Scale)
	radiusPct := clamp(v.field(FieldRadius), 0, 100)

	v.geometry = Geometry{
		Left:           MmToPx(x, v.scale.Scale) - widthPx/2,
		Top:            MmToPx(y, v.scale.Scale) - heightPx/2,
		Width:          widthPx,
		Height:         heightPx,
		BorderRadius:   BorderRadius(radiusPct, widthPx, heightPx),
		BoundaryWidth:  v.scale.BoundaryWidthPx,
		BoundaryHeight: v.scale.BoundaryHeightPx,
	}
	v.surface.SetGeometry(v.geometry)

	v.tablet = TabletDimensions{Width: tabletW, Height: tabletH}
	v.area = AreaDimensions{Width: areaW, Height: areaH}
	v.offset = AreaOffset{X: x, Y: y}

	if v.ratio.Locked() {
		if !v.ratio.Defined() {
			v.ratio.Observe(areaW, areaH)
		}
		if focused != FieldRatio && areaH > 0 {
			v.form.SetValue(FieldRatio, formatRatio(areaW/areaH))
		}
	} else {
		v.ratio.Observe(areaW, areaH)
	}
	v.info.ShowInfo(computeInfo(v.tablet, v.area))

	if !v.rendered {
		v.rendered = true
		v.surface.Reveal()
	} else {
		v.schedulePersist()
	}
	return true
}

// clampDimension restricts an area side to [0, tabletSide].
func clampDimension(value, tabletSide float64) (float64, bool) {
	c := clamp(value, 0, tabletSide)
	return c, c != value
}

// offsetValue resolves an offset field. A focused empty field shows the
// tablet center as a placeholder without being overwritten.
func offsetValue(raw string, focused bool, center float64) float64 {
	if focused && strings.TrimSpace(raw) == "" {
		return center
	}
	return ParseFloatSafe(raw)
}
