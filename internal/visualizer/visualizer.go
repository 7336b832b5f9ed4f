// Package visualizer is the active area engine: it converts between tablet
// millimeters and screen pixels, keeps the area inside the tablet, maintains
// the aspect-ratio lock and drives pointer drags at animation-frame cadence.
//
// A Visualizer is not safe for concurrent use. Every method and every
// Scheduler callback must run on the goroutine that owns the page.
package visualizer

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	// MinTabletDimension is the smallest tablet side (mm) a sync accepts.
	MinTabletDimension = 10.0

	// offsetEpsilon is the drift (mm) below which a constrained offset is
	// not written back.
	offsetEpsilon = 1e-4

	// PersistDelay debounces preference writes during rapid interaction.
	PersistDelay = 1000 * time.Millisecond
)

var (
	// ErrMissingPort is returned by New when a required collaborator is nil.
	ErrMissingPort = errors.New("missing required port")

	// ErrInvalidDimensions is returned by Align when the tablet is below
	// MinTabletDimension or the area has no positive size.
	ErrInvalidDimensions = errors.New("invalid dimensions")
)

// Visualizer owns all state for one active area on one page.
type Visualizer struct {
	form      Form
	surface   Surface
	container Container
	sched     Scheduler
	prefs     Preferences
	notify    Notifier
	events    EventSink
	info      InfoDisplay

	disabled bool
	active   bool

	tablet   TabletDimensions
	area     AreaDimensions
	offset   AreaOffset
	scale    ScaleState
	geometry Geometry
	ratio    *RatioLock
	tabletID string

	containerW, containerH float64
	measured               bool

	rendered bool
	syncing  bool
	writing  bool

	drag    DragSession
	frame   taskSlot
	persist taskSlot
}

// New wires a Visualizer to its collaborators. When a required port is
// missing the returned Visualizer is disabled: it logs, never panics, and
// every operation becomes a no-op.
func New(p Ports) (*Visualizer, error) {
	v := &Visualizer{
		ratio: NewRatioLock(),
		scale: ScaleState{Scale: 1},
	}

	var missing []string
	if p.Form == nil {
		missing = append(missing, "form")
	}
	if p.Surface == nil {
		missing = append(missing, "surface")
	}
	if p.Container == nil {
		missing = append(missing, "container")
	}
	if p.Scheduler == nil {
		missing = append(missing, "scheduler")
	}
	if len(missing) > 0 {
		err := fmt.Errorf("%w: %s", ErrMissingPort, strings.Join(missing, ", "))
		slog.Error("active area visualizer disabled", "error", err)
		v.disabled = true
		return v, err
	}

	v.form = p.Form
	v.surface = p.Surface
	v.container = p.Container
	v.sched = p.Scheduler

	v.prefs = p.Preferences
	if v.prefs == nil {
		v.prefs = nopPreferences{}
	}
	v.notify = p.Notifier
	if v.notify == nil {
		v.notify = nopNotifier{}
	}
	v.events = p.Events
	if v.events == nil {
		v.events = nopEvents{}
	}
	v.info = p.Info
	if v.info == nil {
		v.info = nopInfo{}
	}

	v.active = true
	return v, nil
}

// Init captures the initial lock state, measures the container and renders.
func (v *Visualizer) Init() {
	if !v.usable() {
		return
	}
	v.ratio.OnLockToggled(
		v.form.Pressed(FieldLockRatio),
		v.field(FieldAreaWidth),
		v.field(FieldAreaHeight),
		v.field(FieldRatio),
	)
	v.Resize()
}

// Destroy cancels pending frame and persistence work. Callbacks that were
// already queued by the host check the active flag and do nothing.
func (v *Visualizer) Destroy() {
	if !v.active {
		return
	}
	v.active = false
	v.frame.cancel()
	v.persist.cancel()
	if v.drag.Active {
		v.drag = DragSession{}
		v.surface.SetDragging(false)
	}
}

// Resize remeasures the container and recomputes the scale.
func (v *Visualizer) Resize() {
	if !v.usable() || v.busy() {
		return
	}
	v.measureContainer()
	v.Sync()
}

// OnInput reacts to a user edit of one field, applying the ratio lock before
// running a sync.
func (v *Visualizer) OnInput(id FieldID) {
	if !v.usable() || v.busy() {
		return
	}

	w := v.field(FieldAreaWidth)
	h := v.field(FieldAreaHeight)

	switch id {
	case FieldAreaWidth:
		if v.ratio.Locked() {
			v.write(FieldAreaHeight, formatSize(v.ratio.OnWidthChanged(w, h)))
		}
	case FieldAreaHeight:
		if v.ratio.Locked() {
			v.write(FieldAreaWidth, formatSize(v.ratio.OnHeightChanged(h, w)))
		}
	case FieldRatio:
		if nh, ok := v.ratio.OnRatioInputChanged(v.field(FieldRatio), w, h); ok {
			v.write(FieldAreaHeight, formatSize(nh))
		}
	case FieldLockRatio:
		v.ratio.OnLockToggled(v.form.Pressed(FieldLockRatio), w, h, v.field(FieldRatio))
	}

	v.Sync()
}

// Tablet returns the tablet dimensions of the last successful sync.
func (v *Visualizer) Tablet() TabletDimensions { return v.tablet }

// Area returns the area dimensions of the last successful sync.
func (v *Visualizer) Area() AreaDimensions { return v.area }

// Offset returns the area center of the last successful sync.
func (v *Visualizer) Offset() AreaOffset { return v.offset }

// Scale returns the current display scale.
func (v *Visualizer) Scale() ScaleState { return v.scale }

// Geometry returns the last pixel geometry written to the surface.
func (v *Visualizer) Geometry() Geometry { return v.geometry }

// Ratio exposes the ratio lock state.
func (v *Visualizer) Ratio() *RatioLock { return v.ratio }

// Dragging reports whether a drag session is active.
func (v *Visualizer) Dragging() bool { return v.drag.Active }

// Enabled reports whether the visualizer has its required ports and has not
// been destroyed.
func (v *Visualizer) Enabled() bool { return v.usable() }

func (v *Visualizer) usable() bool {
	return !v.disabled && v.active
}

func (v *Visualizer) busy() bool {
	return v.syncing || v.writing
}

func (v *Visualizer) field(id FieldID) float64 {
	return ParseFloatSafe(v.form.Value(id))
}

// write sets a field while holding the re-entrancy guard, so a change event
// fired by the write does not recurse into the engine.
func (v *Visualizer) write(id FieldID, value string) {
	v.writing = true
	defer func() { v.writing = false }()
	v.form.SetValue(id, value)
}

func (v *Visualizer) measureContainer() {
	w, h := v.container.Size()
	v.containerW = max(w-ContainerPadding, 0)
	v.containerH = max(h-ContainerPadding, 0)
	v.measured = true
}

func (v *Visualizer) schedulePersist() {
	v.persist.schedule(func(fn func()) Task {
		return v.sched.AfterDelay(PersistDelay, fn)
	}, func() {
		if v.active {
			v.prefs.SaveCurrentState()
		}
	})
}
