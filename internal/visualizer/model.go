package visualizer

// TabletDimensions is the physical tablet surface in millimeters.
type TabletDimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// AreaDimensions is the active area size in millimeters.
type AreaDimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// AreaOffset is the center of the active area in tablet space (mm).
type AreaOffset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ScaleState is the derived display scale. Scale is always > 0 and finite.
type ScaleState struct {
	Scale            float64 `json:"scale"`
	BoundaryWidthPx  float64 `json:"boundaryWidth"`
	BoundaryHeightPx float64 `json:"boundaryHeight"`
}

// Point is a screen-space pointer position in client pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Geometry is what gets written to the rectangle and boundary elements.
type Geometry struct {
	Left           float64 `json:"left"`
	Top            float64 `json:"top"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	BorderRadius   float64 `json:"borderRadius"`
	BoundaryWidth  float64 `json:"boundaryWidth"`
	BoundaryHeight float64 `json:"boundaryHeight"`
}

// DragSession exists only while a pointer or single touch drags the area.
type DragSession struct {
	Active         bool
	StartPointerPx Point
	StartOffsetMm  AreaOffset

	last    Point // latest pointer position
	pending bool  // last not yet applied by a frame callback
	moved   bool
}

// BorderRadius maps a 0–100 radius percentage onto the rectangle's pixel size.
func BorderRadius(radiusPct, widthPx, heightPx float64) float64 {
	switch {
	case radiusPct <= 0:
		return 0
	case radiusPct >= 100:
		return min(widthPx, heightPx) / 2
	default:
		return min(widthPx, heightPx) / 2 * radiusPct / 100
	}
}
