package visualizer

// Event names broadcast to other collaborators.
const (
	EventMoved      = "activearea:moved"
	EventCentered   = "activearea:centered"
	EventPositioned = "activearea:positioned"
)

// Event is a fire-and-forget notification about the active area.
type Event struct {
	Name     string  `json:"type"`
	OffsetX  float64 `json:"offsetX"`
	OffsetY  float64 `json:"offsetY"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Position Anchor  `json:"position,omitempty"`
}

func (v *Visualizer) emit(name string, position Anchor) {
	v.events.Emit(Event{
		Name:     name,
		OffsetX:  v.offset.X,
		OffsetY:  v.offset.Y,
		Width:    v.area.Width,
		Height:   v.area.Height,
		Position: position,
	})
}
