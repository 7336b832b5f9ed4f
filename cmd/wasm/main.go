//go:build js && wasm

package main

import (
	"encoding/json"
	"log/slog"
	"os"
	"syscall/js"

	"github.com/areaviz/areaviz/backend-go/internal/tablet"
	"github.com/areaviz/areaviz/backend-go/internal/visualizer"
)

var (
	vis      *visualizer.Visualizer
	catalog  = tablet.Default()
	observer js.Value
	onResize js.Func
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	api := js.Global().Get("Object").New()

	// --- Lifecycle ---
	api.Set("init", js.FuncOf(initVisualizer))
	api.Set("destroy", js.FuncOf(destroy))
	api.Set("resize", js.FuncOf(resize))

	// --- Form and drag input ---
	api.Set("onInput", js.FuncOf(onInput))
	api.Set("pointerDown", js.FuncOf(pointerDown))
	api.Set("pointerMove", js.FuncOf(pointerMove))
	api.Set("pointerUp", js.FuncOf(pointerUp))
	api.Set("touchStart", js.FuncOf(touchStart))
	api.Set("touchMove", js.FuncOf(touchMove))
	api.Set("touchEnd", js.FuncOf(touchEnd))
	api.Set("touchCancel", js.FuncOf(touchEnd))

	// --- Actions ---
	api.Set("align", js.FuncOf(align))
	api.Set("center", js.FuncOf(center))
	api.Set("swap", js.FuncOf(swap))
	api.Set("searchTablets", js.FuncOf(searchTablets))
	api.Set("selectTablet", js.FuncOf(selectTablet))

	// --- Queries ---
	api.Set("getState", js.FuncOf(getState))
	api.Set("applyState", js.FuncOf(applyState))
	api.Set("getInfo", js.FuncOf(getInfo))

	js.Global().Set("areaVisualizer", api)
	js.Global().Set("areaVisualizerReady", js.ValueOf(true))

	select {}
}

func errorResult(msg string) interface{} {
	return js.ValueOf(map[string]interface{}{"error": msg})
}

func okResult() interface{} {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// initVisualizer binds to the page. An optional argument is a JSON object
// overriding element ids.
func initVisualizer(this js.Value, args []js.Value) interface{} {
	if vis != nil {
		vis.Destroy()
		disconnectObserver()
	}

	ids := defaultIDs
	if len(args) > 0 && args[0].Type() == js.TypeString {
		if err := json.Unmarshal([]byte(args[0].String()), &ids); err != nil {
			return errorResult("invalid options: " + err.Error())
		}
	}

	ports := visualizer.Ports{
		Form:      domForm{},
		Scheduler: jsScheduler{},
		Notifier:  pageNotifier{},
		Events:    domEvents{},
		Info: domInfo{
			ratio:   element(ids.InfoRatio),
			surface: element(ids.InfoSurface),
			usage:   element(ids.InfoUsage),
		},
	}
	area, boundary, container := element(ids.Area), element(ids.Boundary), element(ids.Container)
	if present(area) && present(boundary) {
		ports.Surface = domSurface{area: area, boundary: boundary}
	}
	if present(container) {
		ports.Container = domContainer{el: container}
	}
	prefs := &storagePrefs{}
	ports.Preferences = prefs

	v, err := visualizer.New(ports)
	vis = v
	if err != nil {
		return errorResult(err.Error())
	}
	prefs.vis = v

	v.Init()
	if s, ok := loadStoredState(); ok {
		if err := v.Apply(s); err != nil {
			slog.Warn("stored state rejected", "error", err)
		}
	}

	observeContainer(container)
	return okResult()
}

func observeContainer(container js.Value) {
	ctor := js.Global().Get("ResizeObserver")
	if ctor.Type() != js.TypeFunction {
		return
	}
	onResize = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if vis != nil {
			vis.Resize()
		}
		return nil
	})
	observer = ctor.New(onResize)
	observer.Call("observe", container)
}

func disconnectObserver() {
	if present(observer) && observer.Truthy() {
		observer.Call("disconnect")
		onResize.Release()
		observer = js.Undefined()
	}
}

func destroy(this js.Value, args []js.Value) interface{} {
	if vis != nil {
		vis.Destroy()
	}
	disconnectObserver()
	return nil
}

func resize(this js.Value, args []js.Value) interface{} {
	if vis != nil {
		vis.Resize()
	}
	return nil
}

func onInput(this js.Value, args []js.Value) interface{} {
	if vis == nil || len(args) < 1 {
		return nil
	}
	vis.OnInput(visualizer.FieldID(args[0].String()))
	return nil
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	if vis == nil || len(args) < 2 {
		return nil
	}
	vis.PointerDown(args[0].Float(), args[1].Float())
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	if vis == nil || len(args) < 2 {
		return nil
	}
	vis.PointerMove(args[0].Float(), args[1].Float())
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	if vis != nil {
		vis.PointerUp()
	}
	return nil
}

// touchPoints reads a TouchList (or any array of {clientX, clientY}).
func touchPoints(args []js.Value) []visualizer.Point {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		return nil
	}
	list := args[0]
	n := list.Length()
	points := make([]visualizer.Point, 0, n)
	for i := 0; i < n; i++ {
		t := list.Index(i)
		points = append(points, visualizer.Point{X: t.Get("clientX").Float(), Y: t.Get("clientY").Float()})
	}
	return points
}

func touchStart(this js.Value, args []js.Value) interface{} {
	if vis != nil {
		vis.TouchStart(touchPoints(args))
	}
	return nil
}

func touchMove(this js.Value, args []js.Value) interface{} {
	if vis != nil {
		vis.TouchMove(touchPoints(args))
	}
	return nil
}

func touchEnd(this js.Value, args []js.Value) interface{} {
	if vis != nil {
		vis.TouchEnd()
	}
	return nil
}

func align(this js.Value, args []js.Value) interface{} {
	if vis == nil {
		return errorResult("not initialized")
	}
	if len(args) < 1 {
		return errorResult("missing anchor")
	}
	pos, err := vis.Align(visualizer.Anchor(args[0].String()))
	if err != nil {
		return errorResult(err.Error())
	}
	return toJS(pos)
}

func center(this js.Value, args []js.Value) interface{} {
	if vis == nil {
		return errorResult("not initialized")
	}
	pos, err := vis.Center()
	if err != nil {
		return errorResult(err.Error())
	}
	return toJS(pos)
}

func swap(this js.Value, args []js.Value) interface{} {
	if vis != nil {
		vis.SwapDimensions()
	}
	return nil
}

func searchTablets(this js.Value, args []js.Value) interface{} {
	query := ""
	if len(args) > 0 && args[0].Type() == js.TypeString {
		query = args[0].String()
	}
	limit := 0
	if len(args) > 1 && args[1].Type() == js.TypeNumber {
		limit = args[1].Int()
	}
	return toJS(catalog.Search(query, limit))
}

func selectTablet(this js.Value, args []js.Value) interface{} {
	if vis == nil {
		return errorResult("not initialized")
	}
	if len(args) < 1 {
		return errorResult("missing tablet id")
	}
	m, err := catalog.Get(args[0].String())
	if err != nil {
		return errorResult(err.Error())
	}
	if err := vis.SetTablet(m.ID, m.WidthMM, m.HeightMM); err != nil {
		return errorResult(err.Error())
	}
	return toJS(m)
}

func getState(this js.Value, args []js.Value) interface{} {
	if vis == nil {
		return js.Null()
	}
	return toJS(vis.Snapshot())
}

// applyState restores a state given as a JSON string, e.g. a favorite
// fetched from the server.
func applyState(this js.Value, args []js.Value) interface{} {
	if vis == nil {
		return errorResult("not initialized")
	}
	if len(args) < 1 {
		return errorResult("missing state JSON")
	}
	var s visualizer.Snapshot
	if err := json.Unmarshal([]byte(args[0].String()), &s); err != nil {
		return errorResult("invalid state: " + err.Error())
	}
	if err := vis.Apply(s); err != nil {
		return errorResult(err.Error())
	}
	return okResult()
}

func getInfo(this js.Value, args []js.Value) interface{} {
	if vis == nil {
		return js.Null()
	}
	return toJS(vis.Info())
}
