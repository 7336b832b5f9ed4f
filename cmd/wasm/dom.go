//go:build js && wasm

package main

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"syscall/js"
	"time"

	"github.com/areaviz/areaviz/backend-go/internal/visualizer"
)

const storageKey = "areaviz:state"

// elementIDs names the page elements the engine binds to.
type elementIDs struct {
	Area        string `json:"area"`
	Boundary    string `json:"boundary"`
	Container   string `json:"container"`
	InfoRatio   string `json:"infoRatio"`
	InfoSurface string `json:"infoSurface"`
	InfoUsage   string `json:"infoUsage"`
}

var defaultIDs = elementIDs{
	Area:        "activeArea",
	Boundary:    "tabletBoundary",
	Container:   "visualContainer",
	InfoRatio:   "infoRatio",
	InfoSurface: "infoSurface",
	InfoUsage:   "infoUsage",
}

func document() js.Value { return js.Global().Get("document") }

func element(id string) js.Value {
	if id == "" {
		return js.Null()
	}
	return document().Call("getElementById", id)
}

func present(v js.Value) bool { return !v.IsNull() && !v.IsUndefined() }

// toJS converts a Go value to a plain JS object through JSON.
func toJS(v any) js.Value {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("marshal for js", "error", err)
		return js.Null()
	}
	return js.Global().Get("JSON").Call("parse", string(data))
}

func px(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) + "px" }

// domForm reads and writes the form inputs by element id.
type domForm struct{}

var engineFields = map[string]visualizer.FieldID{
	string(visualizer.FieldTabletWidth):  visualizer.FieldTabletWidth,
	string(visualizer.FieldTabletHeight): visualizer.FieldTabletHeight,
	string(visualizer.FieldAreaWidth):    visualizer.FieldAreaWidth,
	string(visualizer.FieldAreaHeight):   visualizer.FieldAreaHeight,
	string(visualizer.FieldOffsetX):      visualizer.FieldOffsetX,
	string(visualizer.FieldOffsetY):      visualizer.FieldOffsetY,
	string(visualizer.FieldRatio):        visualizer.FieldRatio,
	string(visualizer.FieldRadius):       visualizer.FieldRadius,
	string(visualizer.FieldLockRatio):    visualizer.FieldLockRatio,
}

func (domForm) Value(id visualizer.FieldID) string {
	el := element(string(id))
	if !present(el) {
		return ""
	}
	return el.Get("value").String()
}

func (domForm) SetValue(id visualizer.FieldID, value string) {
	if el := element(string(id)); present(el) {
		el.Set("value", value)
	}
}

func (domForm) Pressed(id visualizer.FieldID) bool {
	el := element(string(id))
	if !present(el) {
		return false
	}
	return el.Call("getAttribute", "aria-pressed").String() == "true"
}

func (domForm) SetPressed(id visualizer.FieldID, pressed bool) {
	el := element(string(id))
	if !present(el) {
		return
	}
	el.Call("setAttribute", "aria-pressed", strconv.FormatBool(pressed))
	el.Get("classList").Call("toggle", "active", pressed)
}

func (domForm) Focused() visualizer.FieldID {
	active := document().Get("activeElement")
	if !present(active) {
		return ""
	}
	return engineFields[active.Get("id").String()]
}

// domSurface positions the area rectangle inside the tablet boundary.
type domSurface struct {
	area, boundary js.Value
}

func (s domSurface) SetGeometry(g visualizer.Geometry) {
	style := s.area.Get("style")
	style.Set("left", px(g.Left))
	style.Set("top", px(g.Top))
	style.Set("width", px(g.Width))
	style.Set("height", px(g.Height))
	style.Set("borderRadius", px(g.BorderRadius))

	bs := s.boundary.Get("style")
	bs.Set("width", px(g.BoundaryWidth))
	bs.Set("height", px(g.BoundaryHeight))
}

func (s domSurface) Reveal() {
	s.area.Get("classList").Call("remove", "loading")
	s.boundary.Get("classList").Call("remove", "loading")
}

func (s domSurface) SetDragging(dragging bool) {
	s.area.Get("classList").Call("toggle", "dragging", dragging)
	style := s.area.Get("style")
	if dragging {
		style.Set("transition", "none")
		style.Set("willChange", "left, top")
		return
	}
	style.Set("transition", "")
	style.Set("willChange", "auto")
}

type domContainer struct {
	el js.Value
}

func (c domContainer) Size() (float64, float64) {
	rect := c.el.Call("getBoundingClientRect")
	return rect.Get("width").Float(), rect.Get("height").Float()
}

// jsTask wraps a pending requestAnimationFrame or setTimeout callback.
type jsTask struct {
	id     js.Value
	cancel string
	fn     js.Func
	done   bool
}

func (t *jsTask) Cancel() {
	if t.done {
		return
	}
	t.done = true
	js.Global().Call(t.cancel, t.id)
	t.fn.Release()
}

type jsScheduler struct{}

func (jsScheduler) schedule(start, cancel string, fn func(), args ...any) visualizer.Task {
	t := &jsTask{cancel: cancel}
	t.fn = js.FuncOf(func(this js.Value, _ []js.Value) interface{} {
		if t.done {
			return nil
		}
		t.done = true
		t.fn.Release()
		fn()
		return nil
	})
	t.id = js.Global().Call(start, append([]any{t.fn}, args...)...)
	return t
}

func (s jsScheduler) RequestFrame(fn func()) visualizer.Task {
	return s.schedule("requestAnimationFrame", "cancelAnimationFrame", fn)
}

func (s jsScheduler) AfterDelay(d time.Duration, fn func()) visualizer.Task {
	return s.schedule("setTimeout", "clearTimeout", fn, d.Milliseconds())
}

// storagePrefs writes the snapshot to localStorage and hands it to an
// optional page hook, areaVisualizerHooks.save, for server sync.
type storagePrefs struct {
	vis *visualizer.Visualizer
}

func (p *storagePrefs) SaveCurrentState() {
	if p.vis == nil {
		return
	}
	data, err := json.Marshal(p.vis.Snapshot())
	if err != nil {
		slog.Error("marshal preferences", "error", err)
		return
	}
	if storage := js.Global().Get("localStorage"); present(storage) {
		storage.Call("setItem", storageKey, string(data))
	}
	if hook := pageHook("save"); present(hook) {
		hook.Invoke(string(data))
	}
}

func loadStoredState() (visualizer.Snapshot, bool) {
	var s visualizer.Snapshot
	storage := js.Global().Get("localStorage")
	if !present(storage) {
		return s, false
	}
	raw := storage.Call("getItem", storageKey)
	if !present(raw) {
		return s, false
	}
	if err := json.Unmarshal([]byte(raw.String()), &s); err != nil {
		slog.Warn("discarding stored state", "error", err)
		return s, false
	}
	return s, true
}

func pageHook(name string) js.Value {
	hooks := js.Global().Get("areaVisualizerHooks")
	if !present(hooks) {
		return js.Undefined()
	}
	fn := hooks.Get(name)
	if fn.Type() != js.TypeFunction {
		return js.Undefined()
	}
	return fn
}

// pageNotifier forwards to areaVisualizerHooks.notify(level, message), or
// the console when the page has no hook.
type pageNotifier struct{}

func (pageNotifier) notify(level, msg string) {
	if hook := pageHook("notify"); present(hook) {
		hook.Invoke(level, msg)
		return
	}
	slog.Info("notification", "level", level, "message", msg)
}

func (n pageNotifier) Success(msg string) { n.notify("success", msg) }
func (n pageNotifier) Error(msg string)   { n.notify("error", msg) }
func (n pageNotifier) Warning(msg string) { n.notify("warning", msg) }

// domEvents dispatches CustomEvents on document and forwards them to the
// live relay hook when one is installed.
type domEvents struct{}

func (domEvents) Emit(e visualizer.Event) {
	detail := toJS(e)
	opts := js.Global().Get("Object").New()
	opts.Set("detail", detail)
	document().Call("dispatchEvent", js.Global().Get("CustomEvent").New(e.Name, opts))

	if hook := pageHook("event"); present(hook) {
		hook.Invoke(e.Name, detail)
	}
}

type domInfo struct {
	ratio, surface, usage js.Value
}

func (d domInfo) ShowInfo(info visualizer.Info) {
	setText(d.ratio, info.RatioText)
	setText(d.surface, info.SurfaceText)
	setText(d.usage, info.UsageText)
}

func setText(el js.Value, text string) {
	if present(el) {
		el.Set("textContent", text)
	}
}
