package visualizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMissingPortsDisables(t *testing.T) {
	v, err := New(Ports{Form: newFakeForm(nil)})
	require.ErrorIs(t, err, ErrMissingPort)
	require.NotNil(t, v)
	assert.False(t, v.Enabled())

	// Every operation is a no-op on a disabled visualizer.
	v.Init()
	v.PointerDown(1, 1)
	v.PointerMove(5, 5)
	v.PointerUp()
	v.OnInput(FieldAreaWidth)
	assert.False(t, v.Sync())
	_, err = v.Align(AnchorCenter)
	assert.NoError(t, err)
	v.Destroy()
}

func TestInitRendersAndReveals(t *testing.T) {
	h := newHarness(nil)
	h.v.Init()

	require.Len(t, h.surface.geometries, 1)
	assert.Equal(t, 1, h.surface.reveals)
	assert.Equal(t, 0, h.sched.pendingTimers(), "first render must not persist")

	g := h.surface.last()
	assert.InDelta(t, 2.0, h.v.Scale().Scale, 1e-12)
	assert.InDelta(t, 150, g.Left, 1e-9)
	assert.InDelta(t, 150, g.Top, 1e-9)
	assert.InDelta(t, 100, g.Width, 1e-9)
	assert.InDelta(t, 100, g.Height, 1e-9)
	assert.InDelta(t, 400, g.BoundaryWidth, 1e-9)
}

func TestSyncAbortsOnInvalidTablet(t *testing.T) {
	h := newHarness(nil)
	h.v.Init()

	writes := len(h.form.writes)
	renders := len(h.surface.geometries)
	before := h.v.Geometry()

	h.form.values[FieldTabletWidth] = "5"
	assert.False(t, h.v.Sync())

	assert.Len(t, h.form.writes, writes, "aborted sync must not write fields")
	assert.Len(t, h.surface.geometries, renders, "aborted sync must not touch the surface")
	assert.Equal(t, before, h.v.Geometry())
	assert.Equal(t, 0, h.sched.pendingTimers())
}

func TestSyncClampsAreaToTablet(t *testing.T) {
	h := newHarness(map[FieldID]string{FieldAreaWidth: "250", FieldAreaHeight: "-3"})
	h.v.Init()

	assert.Equal(t, "200.0", h.form.values[FieldAreaWidth])
	assert.Equal(t, "0.0", h.form.values[FieldAreaHeight])
	assert.Equal(t, AreaOffset{X: 100, Y: 100}, h.v.Offset())
}

func TestSyncConstrainsUnfocusedOffsets(t *testing.T) {
	h := newHarness(map[FieldID]string{FieldOffsetX: "5", FieldOffsetY: "abc"})
	h.v.Init()

	assert.Equal(t, "25.000", h.form.values[FieldOffsetX])
	assert.Equal(t, "25.000", h.form.values[FieldOffsetY])
}

func TestSyncLeavesFocusedOffsetAlone(t *testing.T) {
	h := newHarness(map[FieldID]string{FieldOffsetX: "500"})
	h.form.focused = FieldOffsetX
	h.v.Init()

	assert.Equal(t, "500", h.form.values[FieldOffsetX])
	assert.NotContains(t, h.form.writes, FieldOffsetX)
}

func TestSyncFocusedEmptyOffsetUsesCenterPlaceholder(t *testing.T) {
	h := newHarness(map[FieldID]string{FieldOffsetX: ""})
	h.form.focused = FieldOffsetX
	h.v.Init()

	assert.Equal(t, "", h.form.values[FieldOffsetX])
	assert.InDelta(t, 100, h.v.Offset().X, 1e-12)
	assert.InDelta(t, 150, h.surface.last().Left, 1e-9)
}

func TestSyncBorderRadius(t *testing.T) {
	tests := []struct {
		radius string
		want   float64
	}{
		{"0", 0},
		{"50", 25},
		{"100", 50},
		{"250", 50},
		{"", 0},
	}
	for _, tt := range tests {
		h := newHarness(map[FieldID]string{FieldRadius: tt.radius})
		h.v.Init()
		assert.InDelta(t, tt.want, h.surface.last().BorderRadius, 1e-9, "radius %q", tt.radius)
	}
}

func TestSyncDebouncesPersistence(t *testing.T) {
	h := newHarness(nil)
	h.v.Init()

	h.form.values[FieldAreaWidth] = "60"
	h.v.OnInput(FieldAreaWidth)
	h.form.values[FieldAreaWidth] = "70"
	h.v.OnInput(FieldAreaWidth)

	assert.Equal(t, 1, h.sched.pendingTimers())
	for _, tm := range h.sched.timers {
		assert.Equal(t, PersistDelay, tm.delay)
	}
	h.sched.flushTimers()
	assert.Equal(t, 1, h.prefs.saves)
}

func TestSyncIgnoresReentrantCalls(t *testing.T) {
	h := newHarness(map[FieldID]string{FieldOffsetX: "1"})
	var nested []bool
	h.form.onSet = func(FieldID) {
		nested = append(nested, h.v.Sync())
		h.v.OnInput(FieldAreaWidth)
	}
	h.v.Init()

	require.NotEmpty(t, nested)
	for _, ok := range nested {
		assert.False(t, ok)
	}
	assert.Len(t, h.surface.geometries, 1)
}

func TestRatioLockThroughForm(t *testing.T) {
	h := newHarness(map[FieldID]string{
		FieldTabletWidth:  "300",
		FieldTabletHeight: "200",
		FieldAreaWidth:    "160",
		FieldAreaHeight:   "90",
		FieldOffsetX:      "150",
		FieldOffsetY:      "100",
	})
	h.v.Init()

	h.form.pressed[FieldLockRatio] = true
	h.v.OnInput(FieldLockRatio)
	assert.InDelta(t, 16.0/9.0, h.v.Ratio().Value(), 1e-9)
	assert.Equal(t, "1.778", h.form.values[FieldRatio])

	h.form.values[FieldAreaWidth] = "128"
	h.v.OnInput(FieldAreaWidth)
	assert.Equal(t, "72.0", h.form.values[FieldAreaHeight])
	assert.InDelta(t, 72, h.v.Area().Height, 1e-9)
}

func TestRatioFieldNotOverwrittenWhileFocused(t *testing.T) {
	h := newHarness(nil)
	h.form.pressed[FieldLockRatio] = true
	h.v.Init()

	h.form.focused = FieldRatio
	h.form.values[FieldRatio] = "2"
	h.v.OnInput(FieldRatio)

	assert.Equal(t, "2", h.form.values[FieldRatio])
	assert.Equal(t, "25.0", h.form.values[FieldAreaHeight])
}

func TestLockedRatioRecoversFromInvalidInput(t *testing.T) {
	h := newHarness(map[FieldID]string{
		FieldAreaWidth:  "100",
		FieldAreaHeight: "50",
		FieldRatio:      "2.000",
	})
	h.form.pressed[FieldLockRatio] = true
	h.v.Init()
	require.InDelta(t, 2.0, h.v.Ratio().Value(), 1e-9)

	h.form.focused = FieldRatio
	h.form.values[FieldRatio] = "abc"
	h.v.OnInput(FieldRatio)
	assert.Equal(t, "abc", h.form.values[FieldRatio])
	assert.Equal(t, "50", h.form.values[FieldAreaHeight])

	h.form.focused = ""
	require.True(t, h.v.Sync())
	assert.Equal(t, "2.000", h.form.values[FieldRatio])
	assert.True(t, h.v.Ratio().Locked())
	assert.InDelta(t, 2.0, h.v.Ratio().Value(), 1e-9)

	h.form.values[FieldAreaWidth] = "120"
	h.v.OnInput(FieldAreaWidth)
	assert.Equal(t, "60.0", h.form.values[FieldAreaHeight])
	assert.InDelta(t, 60, h.v.Area().Height, 1e-9)
}

func TestResizeRecomputesScale(t *testing.T) {
	h := newHarness(nil)
	h.v.Init()

	h.container.w, h.container.h = 840, 840
	h.v.Resize()
	assert.InDelta(t, 4.0, h.v.Scale().Scale, 1e-12)
	assert.InDelta(t, 200, h.surface.last().Width, 1e-9)
}

func TestDestroyCancelsPendingPersistence(t *testing.T) {
	h := newHarness(nil)
	h.v.Init()
	h.v.OnInput(FieldAreaWidth)
	require.Equal(t, 1, h.sched.pendingTimers())

	h.v.Destroy()
	assert.Equal(t, 0, h.sched.pendingTimers())
	assert.False(t, h.v.Enabled())
	assert.False(t, h.v.Sync())
}

func TestAlignWritesOffsetAndEmits(t *testing.T) {
	h := newHarness(map[FieldID]string{
		FieldTabletWidth:  "300",
		FieldTabletHeight: "200",
		FieldAreaWidth:    "60",
		FieldAreaHeight:   "40",
	})
	h.v.Init()

	got, err := h.v.Align(AnchorTopRight)
	require.NoError(t, err)
	assert.Equal(t, AreaOffset{X: 270, Y: 20}, got)
	assert.Equal(t, "270.000", h.form.values[FieldOffsetX])
	assert.Equal(t, "20.000", h.form.values[FieldOffsetY])

	require.Len(t, h.events.events, 1)
	ev := h.events.events[0]
	assert.Equal(t, EventPositioned, ev.Name)
	assert.Equal(t, AnchorTopRight, ev.Position)
	assert.Equal(t, 60.0, ev.Width)
	assert.NotEmpty(t, h.notify.success)

	_, err = h.v.Center()
	require.NoError(t, err)
	assert.Equal(t, EventCentered, h.events.events[1].Name)
	assert.Equal(t, AreaOffset{X: 150, Y: 100}, h.v.Offset())
}

func TestAlignUnknownAnchorLeavesOffset(t *testing.T) {
	h := newHarness(nil)
	h.v.Init()

	_, err := h.v.Align("nowhere")
	assert.ErrorIs(t, err, ErrUnknownAnchor)
	assert.Equal(t, AreaOffset{X: 100, Y: 100}, h.v.Offset())
	assert.Empty(t, h.events.events)
}

func TestAlignInvalidDimensionsNotifies(t *testing.T) {
	h := newHarness(map[FieldID]string{FieldAreaWidth: "0"})
	h.v.Init()

	_, err := h.v.Align(AnchorLeft)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
	assert.Len(t, h.notify.errors, 1)
	assert.Empty(t, h.events.events)
}

func TestSwapDimensions(t *testing.T) {
	h := newHarness(map[FieldID]string{FieldAreaWidth: "80", FieldAreaHeight: "40"})
	h.v.Init()

	h.v.SwapDimensions()
	assert.Equal(t, AreaDimensions{Width: 40, Height: 80}, h.v.Area())
	assert.Equal(t, AreaOffset{X: 100, Y: 100}, h.v.Offset())
}

func TestSetTablet(t *testing.T) {
	h := newHarness(map[FieldID]string{FieldAreaWidth: "180", FieldOffsetX: "110"})
	h.v.Init()

	require.NoError(t, h.v.SetTablet("wacom-ctl-472", 152, 95))
	assert.Equal(t, TabletDimensions{Width: 152, Height: 95}, h.v.Tablet())
	assert.Equal(t, 152.0, h.v.Area().Width)
	assert.Equal(t, 76.0, h.v.Offset().X)
	assert.Equal(t, "wacom-ctl-472", h.v.Snapshot().TabletID)

	assert.ErrorIs(t, h.v.SetTablet("tiny", 5, 5), ErrInvalidTablet)
	assert.Len(t, h.notify.warnings, 1)
}

func TestInfo(t *testing.T) {
	h := newHarness(map[FieldID]string{FieldAreaWidth: "100", FieldAreaHeight: "50"})
	h.v.Init()

	info := h.v.Info()
	assert.Equal(t, "2.000", info.RatioText)
	assert.InDelta(t, 5000, info.SurfaceArea, 1e-9)
	assert.Contains(t, info.SurfaceText, "5,000")
	assert.Equal(t, "12.5%", info.UsageText)
}
