package visualizer

import (
	"errors"
	"fmt"
)

// ErrInvalidTablet is returned when a snapshot's tablet is below
// MinTabletDimension on either side.
var ErrInvalidTablet = errors.New("invalid tablet dimensions")

// Snapshot is the persisted form state.
type Snapshot struct {
	TabletID     string  `json:"tabletId,omitempty"`
	TabletWidth  float64 `json:"tabletWidth"`
	TabletHeight float64 `json:"tabletHeight"`
	AreaWidth    float64 `json:"areaWidth"`
	AreaHeight   float64 `json:"areaHeight"`
	OffsetX      float64 `json:"offsetX"`
	OffsetY      float64 `json:"offsetY"`
	Ratio        float64 `json:"ratio"`
	Radius       float64 `json:"radius"`
	RatioLocked  bool    `json:"ratioLocked"`
}

// Normalize applies the same rules a sync does: area sides clamped to the
// tablet, center offset constrained, radius limited to 0–100. A ratio that
// is not a positive number is re-derived from the area.
func Normalize(s Snapshot) (Snapshot, error) {
	if !(s.TabletWidth >= MinTabletDimension) || !(s.TabletHeight >= MinTabletDimension) {
		return s, fmt.Errorf("%w: %gx%g", ErrInvalidTablet, s.TabletWidth, s.TabletHeight)
	}
	s.AreaWidth, _ = clampDimension(s.AreaWidth, s.TabletWidth)
	s.AreaHeight, _ = clampDimension(s.AreaHeight, s.TabletHeight)

	o := ConstrainOffset(s.OffsetX, s.OffsetY, s.AreaWidth, s.AreaHeight, s.TabletWidth, s.TabletHeight)
	s.OffsetX, s.OffsetY = o.X, o.Y

	s.Radius = clamp(s.Radius, 0, 100)
	if !validRatio(s.Ratio) {
		s.Ratio = 0
		if s.AreaHeight > 0 {
			s.Ratio = s.AreaWidth / s.AreaHeight
		}
	}
	return s, nil
}

// Snapshot captures the state of the last successful sync.
func (v *Visualizer) Snapshot() Snapshot {
	s := Snapshot{
		TabletID:     v.tabletID,
		TabletWidth:  v.tablet.Width,
		TabletHeight: v.tablet.Height,
		AreaWidth:    v.area.Width,
		AreaHeight:   v.area.Height,
		OffsetX:      v.offset.X,
		OffsetY:      v.offset.Y,
		RatioLocked:  v.ratio.Locked(),
	}
	if v.ratio.Defined() {
		s.Ratio = v.ratio.Value()
	}
	if v.usable() {
		s.Radius = clamp(v.field(FieldRadius), 0, 100)
	}
	return s
}

// Apply restores a snapshot into the form and renders it.
func (v *Visualizer) Apply(s Snapshot) error {
	if !v.usable() {
		return nil
	}
	n, err := Normalize(s)
	if err != nil {
		return fmt.Errorf("apply snapshot: %w", err)
	}

	v.tabletID = n.TabletID
	v.write(FieldTabletWidth, formatSize(n.TabletWidth))
	v.write(FieldTabletHeight, formatSize(n.TabletHeight))
	v.write(FieldAreaWidth, formatSize(n.AreaWidth))
	v.write(FieldAreaHeight, formatSize(n.AreaHeight))
	v.write(FieldOffsetX, formatOffset(n.OffsetX))
	v.write(FieldOffsetY, formatOffset(n.OffsetY))
	v.write(FieldRadius, strconvRadius(n.Radius))
	if n.Ratio > 0 {
		v.write(FieldRatio, formatRatio(n.Ratio))
	}

	v.writing = true
	v.form.SetPressed(FieldLockRatio, n.RatioLocked)
	v.writing = false
	v.ratio.OnLockToggled(n.RatioLocked, n.AreaWidth, n.AreaHeight, n.Ratio)

	v.Sync()
	return nil
}
