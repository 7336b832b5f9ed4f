package visualizer

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
)

// Align moves the area to one of the nine anchors. Unknown anchors are
// logged and leave the offset unchanged. Invalid dimensions are reported to
// the user.
func (v *Visualizer) Align(anchor Anchor) (AreaOffset, error) {
	if !v.usable() || v.busy() {
		return v.offset, nil
	}

	tabletW := v.field(FieldTabletWidth)
	tabletH := v.field(FieldTabletHeight)
	areaW := v.field(FieldAreaWidth)
	areaH := v.field(FieldAreaHeight)
	if tabletW < MinTabletDimension || tabletH < MinTabletDimension || areaW <= 0 || areaH <= 0 {
		v.notify.Error("Invalid dimensions for alignment")
		return v.offset, fmt.Errorf("align %s: %w", anchor, ErrInvalidDimensions)
	}
	areaW = min(areaW, tabletW)
	areaH = min(areaH, tabletH)

	pos, err := ComputePosition(anchor, tabletW, tabletH, areaW, areaH)
	if err != nil {
		slog.Error("align active area", "anchor", string(anchor), "error", err)
		return v.offset, err
	}

	v.write(FieldOffsetX, formatOffset(pos.X))
	v.write(FieldOffsetY, formatOffset(pos.Y))
	v.Sync()

	if anchor == AnchorCenter {
		v.notify.Success("Area centered")
		v.emit(EventCentered, "")
	} else {
		v.notify.Success("Area moved to " + string(anchor))
		v.emit(EventPositioned, anchor)
	}
	return v.offset, nil
}

// Center is Align(AnchorCenter).
func (v *Visualizer) Center() (AreaOffset, error) {
	return v.Align(AnchorCenter)
}

// SwapDimensions exchanges area width and height around the same center.
func (v *Visualizer) SwapDimensions() {
	if !v.usable() || v.busy() {
		return
	}
	w := v.form.Value(FieldAreaWidth)
	h := v.form.Value(FieldAreaHeight)
	v.write(FieldAreaWidth, h)
	v.write(FieldAreaHeight, w)
	v.ratio.Invert()
	v.Sync()
}

// SetTablet applies a tablet model. The area is clamped and re-constrained
// by the sync that follows.
func (v *Visualizer) SetTablet(id string, widthMM, heightMM float64) error {
	if !v.usable() || v.busy() {
		return nil
	}
	if widthMM < MinTabletDimension || heightMM < MinTabletDimension {
		v.notify.Warning("Tablet dimensions are too small")
		return fmt.Errorf("set tablet %q: %w", id, ErrInvalidTablet)
	}
	v.tabletID = id
	v.write(FieldTabletWidth, formatSize(widthMM))
	v.write(FieldTabletHeight, formatSize(heightMM))
	if !v.Sync() {
		return errors.New("set tablet: sync aborted")
	}
	return nil
}

func strconvRadius(pct float64) string {
	return strconv.Itoa(int(math.Round(pct)))
}
