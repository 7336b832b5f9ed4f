package visualizer

import "time"

type fakeForm struct {
	values  map[FieldID]string
	pressed map[FieldID]bool
	focused FieldID
	writes  []FieldID
	onSet   func(id FieldID)
}

func newFakeForm(values map[FieldID]string) *fakeForm {
	if values == nil {
		values = map[FieldID]string{}
	}
	return &fakeForm{values: values, pressed: map[FieldID]bool{}}
}

func (f *fakeForm) Value(id FieldID) string { return f.values[id] }

func (f *fakeForm) SetValue(id FieldID, value string) {
	f.values[id] = value
	f.writes = append(f.writes, id)
	if f.onSet != nil {
		f.onSet(id)
	}
}

func (f *fakeForm) Pressed(id FieldID) bool { return f.pressed[id] }

func (f *fakeForm) SetPressed(id FieldID, pressed bool) { f.pressed[id] = pressed }

func (f *fakeForm) Focused() FieldID { return f.focused }

type fakeSurface struct {
	geometries []Geometry
	reveals    int
	dragging   []bool
}

func (s *fakeSurface) SetGeometry(g Geometry)    { s.geometries = append(s.geometries, g) }
func (s *fakeSurface) Reveal()                   { s.reveals++ }
func (s *fakeSurface) SetDragging(dragging bool) { s.dragging = append(s.dragging, dragging) }

func (s *fakeSurface) last() Geometry {
	if len(s.geometries) == 0 {
		return Geometry{}
	}
	return s.geometries[len(s.geometries)-1]
}

type fakeContainer struct{ w, h float64 }

func (c *fakeContainer) Size() (float64, float64) { return c.w, c.h }

type fakeTask struct {
	fn        func()
	delay     time.Duration
	cancelled bool
	fired     bool
}

func (t *fakeTask) Cancel() { t.cancelled = true }

type fakeScheduler struct {
	frames []*fakeTask
	timers []*fakeTask
}

func (s *fakeScheduler) RequestFrame(fn func()) Task {
	t := &fakeTask{fn: fn}
	s.frames = append(s.frames, t)
	return t
}

func (s *fakeScheduler) AfterDelay(d time.Duration, fn func()) Task {
	t := &fakeTask{fn: fn, delay: d}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) flushFrames() { s.frames = flush(s.frames) }
func (s *fakeScheduler) flushTimers() { s.timers = flush(s.timers) }

func (s *fakeScheduler) pendingFrames() int { return countPending(s.frames) }
func (s *fakeScheduler) pendingTimers() int { return countPending(s.timers) }

func flush(tasks []*fakeTask) []*fakeTask {
	for _, t := range tasks {
		if !t.cancelled && !t.fired {
			t.fired = true
			t.fn()
		}
	}
	return nil
}

func countPending(tasks []*fakeTask) int {
	n := 0
	for _, t := range tasks {
		if !t.cancelled && !t.fired {
			n++
		}
	}
	return n
}

type fakePrefs struct{ saves int }

func (p *fakePrefs) SaveCurrentState() { p.saves++ }

type fakeNotifier struct{ success, errors, warnings []string }

func (n *fakeNotifier) Success(msg string) { n.success = append(n.success, msg) }
func (n *fakeNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }
func (n *fakeNotifier) Warning(msg string) { n.warnings = append(n.warnings, msg) }

type fakeEvents struct{ events []Event }

func (e *fakeEvents) Emit(ev Event) { e.events = append(e.events, ev) }

type harness struct {
	v         *Visualizer
	form      *fakeForm
	surface   *fakeSurface
	container *fakeContainer
	sched     *fakeScheduler
	prefs     *fakePrefs
	notify    *fakeNotifier
	events    *fakeEvents
}

// newHarness builds a visualizer over a 200x200mm tablet with a 50x50mm
// area centered at (100, 100) and a container that yields 2px/mm.
func newHarness(overrides map[FieldID]string) *harness {
	values := map[FieldID]string{
		FieldTabletWidth:  "200",
		FieldTabletHeight: "200",
		FieldAreaWidth:    "50",
		FieldAreaHeight:   "50",
		FieldOffsetX:      "100.000",
		FieldOffsetY:      "100.000",
		FieldRatio:        "1.000",
		FieldRadius:       "0",
	}
	for k, val := range overrides {
		values[k] = val
	}
	h := &harness{
		form:      newFakeForm(values),
		surface:   &fakeSurface{},
		container: &fakeContainer{w: 440, h: 440},
		sched:     &fakeScheduler{},
		prefs:     &fakePrefs{},
		notify:    &fakeNotifier{},
		events:    &fakeEvents{},
	}
	v, err := New(Ports{
		Form:        h.form,
		Surface:     h.surface,
		Container:   h.container,
		Scheduler:   h.sched,
		Preferences: h.prefs,
		Notifier:    h.notify,
		Events:      h.events,
	})
	if err != nil {
		panic(err)
	}
	h.v = v
	return h
}
