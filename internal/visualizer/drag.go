package visualizer

// PointerDown starts a drag at client position (x, y). The start offset is
// read from the offset fields so external edits are respected.
func (v *Visualizer) PointerDown(x, y float64) {
	if !v.usable() || v.drag.Active {
		return
	}
	v.drag = DragSession{
		Active:         true,
		StartPointerPx: Point{X: x, Y: y},
		StartOffsetMm: AreaOffset{
			X: v.field(FieldOffsetX),
			Y: v.field(FieldOffsetY),
		},
	}
	v.surface.SetDragging(true)
}

// PointerMove records the latest pointer position and schedules one frame.
// Moves arriving before that frame fires replace the pending position.
func (v *Visualizer) PointerMove(x, y float64) {
	if !v.usable() || !v.drag.Active {
		return
	}
	v.drag.last = Point{X: x, Y: y}
	v.drag.pending = true
	v.drag.moved = true
	v.frame.schedule(v.sched.RequestFrame, v.onDragFrame)
}

// PointerUp ends the drag. Any pending frame is cancelled and replaced by one
// unthrottled sync so the settled position honors every constraint. Calling
// it while idle is a no-op.
func (v *Visualizer) PointerUp() {
	if !v.drag.Active {
		return
	}
	v.frame.cancel()
	session := v.drag
	v.drag = DragSession{}
	v.surface.SetDragging(false)

	if !v.usable() {
		return
	}
	if session.pending {
		v.applyDrag(session, session.last)
	}
	if !v.Sync() {
		return
	}
	if session.moved {
		v.emit(EventMoved, "")
	}
	v.schedulePersist()
}

// TouchStart begins a drag only for a single touch point.
func (v *Visualizer) TouchStart(touches []Point) {
	if len(touches) != 1 {
		return
	}
	v.PointerDown(touches[0].X, touches[0].Y)
}

// TouchMove is ignored for the frame whenever more than one touch is down;
// the session stays active.
func (v *Visualizer) TouchMove(touches []Point) {
	if len(touches) != 1 {
		return
	}
	v.PointerMove(touches[0].X, touches[0].Y)
}

// TouchEnd ends the drag like PointerUp.
func (v *Visualizer) TouchEnd() { v.PointerUp() }

// TouchCancel ends the drag like PointerUp.
func (v *Visualizer) TouchCancel() { v.PointerUp() }

func (v *Visualizer) onDragFrame() {
	if !v.active || !v.drag.Active {
		return
	}
	v.applyDrag(v.drag, v.drag.last)
	v.drag.pending = false
	v.Sync()
}

// applyDrag converts the pointer delta using the latest scale, constrains the
// candidate offset and writes it to the offset fields that are not focused.
func (v *Visualizer) applyDrag(s DragSession, p Point) {
	if !v.rendered {
		return
	}
	scale := v.scale.Scale
	candidate := AreaOffset{
		X: s.StartOffsetMm.X + PxToMm(p.X-s.StartPointerPx.X, scale),
		Y: s.StartOffsetMm.Y + PxToMm(p.Y-s.StartPointerPx.Y, scale),
	}
	o := ConstrainOffset(candidate.X, candidate.Y, v.area.Width, v.area.Height, v.tablet.Width, v.tablet.Height)

	focused := v.form.Focused()
	if focused != FieldOffsetX {
		v.write(FieldOffsetX, formatOffset(o.X))
	}
	if focused != FieldOffsetY {
		v.write(FieldOffsetY, formatOffset(o.Y))
	}
}
