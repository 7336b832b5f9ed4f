package visualizer

import "time"

// FieldID is the stable identifier of a form field the engine reads or writes.
type FieldID string

const (
	FieldTabletWidth  FieldID = "tabletWidth"
	FieldTabletHeight FieldID = "tabletHeight"
	FieldAreaWidth    FieldID = "areaWidth"
	FieldAreaHeight   FieldID = "areaHeight"
	FieldOffsetX      FieldID = "areaOffsetX"
	FieldOffsetY      FieldID = "areaOffsetY"
	FieldRatio        FieldID = "customRatio"
	FieldRadius       FieldID = "areaRadius"
	FieldLockRatio    FieldID = "lockRatio"
)

// Form is the page's input fields. Focused returns "" when no engine field
// has focus.
type Form interface {
	Value(id FieldID) string
	SetValue(id FieldID, value string)
	Pressed(id FieldID) bool
	SetPressed(id FieldID, pressed bool)
	Focused() FieldID
}

// Surface is the rectangle and tablet boundary elements.
type Surface interface {
	SetGeometry(g Geometry)
	// Reveal removes the loading state after the first render.
	Reveal()
	// SetDragging toggles CSS transitions off and the compositing hint on
	// while a drag is active.
	SetDragging(dragging bool)
}

// Container reports the bounding size of the element hosting the boundary.
type Container interface {
	Size() (width, height float64)
}

// Task is a scheduled callback that has not fired yet.
type Task interface {
	Cancel()
}

// Scheduler defers work to the next animation frame or after a delay.
// Callbacks must run on the same goroutine that drives the Visualizer.
type Scheduler interface {
	RequestFrame(fn func()) Task
	AfterDelay(d time.Duration, fn func()) Task
}

// Preferences persists the current form state.
type Preferences interface {
	SaveCurrentState()
}

// Notifier surfaces user-facing feedback.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Warning(msg string)
}

// EventSink receives activearea:* broadcasts.
type EventSink interface {
	Emit(e Event)
}

// InfoDisplay shows read-only derived values next to the form.
type InfoDisplay interface {
	ShowInfo(info Info)
}

// Ports bundles the collaborators. Form, Surface, Container and Scheduler
// are required; the rest may be nil.
type Ports struct {
	Form        Form
	Surface     Surface
	Container   Container
	Scheduler   Scheduler
	Preferences Preferences
	Notifier    Notifier
	Events      EventSink
	Info        InfoDisplay
}

type nopPreferences struct{}

func (nopPreferences) SaveCurrentState() {}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}
func (nopNotifier) Warning(string) {}

type nopEvents struct{}

func (nopEvents) Emit(Event) {}

type nopInfo struct{}

func (nopInfo) ShowInfo(Info) {}
