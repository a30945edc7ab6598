package interact

import (
	"fmt"
	"time"

	"xarxa/internal/catalog"
	"xarxa/internal/frame"
	"xarxa/internal/geom"
	"xarxa/internal/hittest"
)

// PointerDown arms a pending click, which becomes a pan once the pointer
// travels past DragThreshold.
func (e *Engine) PointerDown(now time.Time, p geom.Point) {
	if e.busy() {
		return
	}
	e.pointerDown = true
	e.dragging = false
	e.downAt = p
	e.lastAt = p
	e.panAtDown = e.tr.Pan
}

// PointerMove pans while a drag is active and otherwise refreshes the hover
// target, at most once per frame.
func (e *Engine) PointerMove(now time.Time, p geom.Point) {
	if !e.pointerDown {
		e.scheduleHover(p)
		return
	}
	e.lastAt = p
	if e.busy() || e.selected != catalog.NoNode {
		return
	}
	if !e.dragging {
		if p.Dist(e.downAt) <= DragThreshold {
			return
		}
		e.dragging = true
		e.log.Debug("drag started", "x", p.X, "y", p.Y)
	}
	target := e.dragTarget(p)
	e.loop.Request(frame.SlotPan, func(time.Time) {
		if !e.dragging {
			return
		}
		e.tr.Pan = geom.ClampPan(target, e.size, e.tr.Scale)
		e.changed()
	})
}

func (e *Engine) PointerUp(now time.Time, p geom.Point) {
	if !e.pointerDown {
		return
	}
	e.pointerDown = false
	if e.dragging {
		e.finishDrag(p)
		return
	}
	e.click(now, p)
}

// PointerLeave ends any drag at the last seen position and clears hover.
func (e *Engine) PointerLeave(now time.Time) {
	if e.pointerDown {
		e.pointerDown = false
		if e.dragging {
			e.finishDrag(e.lastAt)
		}
	}
	e.loop.Cancel(frame.SlotHover)
	if e.hovered != catalog.NoNode {
		e.hovered = catalog.NoNode
		e.changed()
	}
}

func (e *Engine) dragTarget(p geom.Point) geom.Offset {
	return geom.Offset{
		X: e.panAtDown.X + (p.X - e.downAt.X),
		Y: e.panAtDown.Y + (p.Y - e.downAt.Y),
	}
}

func (e *Engine) finishDrag(p geom.Point) {
	e.loop.Cancel(frame.SlotPan)
	e.dragging = false
	e.tr.Pan = geom.ClampPan(e.dragTarget(p), e.size, e.tr.Scale)
	e.log.Debug("drag finished", "pan_x", e.tr.Pan.X, "pan_y", e.tr.Pan.Y)
	e.changed()
}

func (e *Engine) scheduleHover(p geom.Point) {
	e.loop.Request(frame.SlotHover, func(time.Time) {
		id, _ := e.HitAt(p)
		if id == e.hovered {
			return
		}
		e.hovered = id
		e.changed()
	})
}

// TouchStart mirrors PointerDown for a single finger. Multi-touch is not a
// gesture here and is ignored.
func (e *Engine) TouchStart(now time.Time, touches []geom.Point) {
	if len(touches) != 1 {
		return
	}
	e.PointerDown(now, touches[0])
}

func (e *Engine) TouchMove(now time.Time, touches []geom.Point) {
	if len(touches) != 1 || !e.pointerDown {
		return
	}
	e.PointerMove(now, touches[0])
}

// TouchEnd takes the changed touches of the end event.
func (e *Engine) TouchEnd(now time.Time, touches []geom.Point) {
	if len(touches) != 1 {
		return
	}
	e.PointerUp(now, touches[0])
}

// Wheel zooms about the cursor. It reports whether the event was accepted;
// events are dropped while a focus transition runs, while a node is
// focused, or when they arrive inside the throttle interval. Accepted
// events are applied on the next frame, the latest one winning.
func (e *Engine) Wheel(now time.Time, cursor geom.Point, deltaY float64) bool {
	if e.busy() || e.selected != catalog.NoNode || e.size.Empty() {
		return false
	}
	if !e.wheelGate.Allow(now) {
		return false
	}
	e.loop.Request(frame.SlotWheel, func(time.Time) {
		if e.busy() || e.selected != catalog.NoNode {
			return
		}
		delta := -deltaY * e.opts.WheelSensitivity
		e.zoomTo(cursor, e.tr.Scale+delta*e.tr.Scale)
	})
	return true
}

// ZoomBy multiplies the scale, keeping the viewport centre fixed.
func (e *Engine) ZoomBy(now time.Time, factor float64) bool {
	if e.busy() || e.selected != catalog.NoNode || e.size.Empty() {
		return false
	}
	e.zoomTo(e.size.Center(), e.tr.Scale*factor)
	return true
}

func (e *Engine) zoomTo(cursor geom.Point, scale float64) {
	scale = geom.ClampScale(scale)
	if scale != e.tr.Scale {
		e.tr = e.tr.ZoomAbout(cursor, scale)
	}
	if scale > NearestThreshold && e.selected == catalog.NoNode {
		e.nearest, _ = hittest.Nearest(e.tr.ToWorld(cursor), e.scene(), e.inCategory)
	} else {
		e.nearest = catalog.NoNode
	}
	e.changed()
}

func (e *Engine) inCategory(n catalog.Node) bool {
	return e.category == "" || n.Category == e.category
}

// PanBy moves the view by a screen delta.
func (e *Engine) PanBy(now time.Time, dx, dy float64) bool {
	if e.busy() || e.selected != catalog.NoNode {
		return false
	}
	e.tr.Pan = geom.ClampPan(geom.Offset{X: e.tr.Pan.X + dx, Y: e.tr.Pan.Y + dy}, e.size, e.tr.Scale)
	e.changed()
	return true
}

// ResetView returns to the baseline scale with no pan.
func (e *Engine) ResetView(now time.Time) {
	if e.busy() {
		return
	}
	if e.selected != catalog.NoNode {
		e.exitFocus(now)
		return
	}
	e.tr = geom.Transform{Scale: e.opts.Baseline}
	e.nearest = catalog.NoNode
	e.changed()
}

// Restore jumps to a saved transform without a transition. The scale is
// clamped, the pan is kept as given. It is ignored while a node is focused
// or a transition runs.
func (e *Engine) Restore(now time.Time, tr geom.Transform) bool {
	if e.busy() || e.selected != catalog.NoNode {
		return false
	}
	e.tr = geom.Transform{Pan: tr.Pan, Scale: geom.ClampScale(tr.Scale)}
	e.nearest = catalog.NoNode
	e.changed()
	return true
}

// Click is a full press and release without motion.
func (e *Engine) Click(now time.Time, p geom.Point) {
	e.click(now, p)
}

func (e *Engine) click(now time.Time, p geom.Point) {
	if e.busy() {
		e.log.Debug("click dropped during transition")
		return
	}
	id, hit := e.HitAt(p)
	switch {
	case e.selected != catalog.NoNode && (!hit || id == e.selected):
		e.exitFocus(now)
	case hit:
		e.enterFocus(now, id)
	}
}

// FocusNode focuses id directly.
func (e *Engine) FocusNode(now time.Time, id catalog.NodeID) error {
	if _, ok := e.cat.Position(e.layout, id); !ok {
		return fmt.Errorf("focus %d: %w", id, catalog.ErrUnknownNode)
	}
	if e.busy() {
		return nil
	}
	e.enterFocus(now, id)
	return nil
}

// FocusNearest focuses the hovered node, else the zoom preview node, else
// the node nearest the viewport centre. When a node is already focused it
// zooms back out instead.
func (e *Engine) FocusNearest(now time.Time) {
	if e.busy() || e.size.Empty() {
		return
	}
	if e.selected != catalog.NoNode {
		e.exitFocus(now)
		return
	}
	id := e.hovered
	if id == catalog.NoNode {
		id = e.nearest
	}
	if id == catalog.NoNode {
		id, _ = hittest.Nearest(e.tr.ToWorld(e.size.Center()), e.scene(), e.inCategory)
	}
	if id != catalog.NoNode {
		e.enterFocus(now, id)
	}
}

// ExitFocus zooms back out of a focused node.
func (e *Engine) ExitFocus(now time.Time) {
	if e.busy() || e.selected == catalog.NoNode {
		return
	}
	e.exitFocus(now)
}

func (e *Engine) enterFocus(now time.Time, id catalog.NodeID) {
	pos, ok := e.cat.Position(e.layout, id)
	if !ok || e.size.Empty() {
		return
	}
	e.beginTransition(now, false)
	e.tr = geom.CenterOn(geom.NodePixel(pos, e.size), e.size, geom.FocusedScale)
	e.selected = id
	e.nearest = catalog.NoNode
	e.dragging = false
	e.pointerDown = false
	e.log.Info("focus", "node_id", int(id))
	e.changed()
}

func (e *Engine) exitFocus(now time.Time) {
	e.beginTransition(now, true)
	e.log.Info("unfocus", "node_id", int(e.selected))
	e.tr = geom.Transform{Scale: e.opts.Baseline}
	e.selected = catalog.NoNode
	e.nearest = catalog.NoNode
	e.changed()
}

func (e *Engine) beginTransition(now time.Time, exiting bool) {
	e.animFrom = e.displayed(now)
	e.animStart = now
	e.zooming = true
	e.transition = true
	e.exiting = exiting
	e.settleAt = now.Add(SettleDelay)
	e.loop.Cancel(frame.SlotWheel)
	e.loop.Cancel(frame.SlotPan)
}

// SetCategory applies a category filter; "" clears it. A focused node is
// released first.
func (e *Engine) SetCategory(now time.Time, category string) error {
	if category != "" {
		if _, ok := e.cat.Category(category); !ok {
			return fmt.Errorf("%w %q", catalog.ErrUnknownCategory, category)
		}
	}
	if e.selected != catalog.NoNode {
		e.exitFocus(now)
	}
	e.category = category
	e.changed()
	return nil
}

// ToggleCategory activates category, or clears it when already active.
func (e *Engine) ToggleCategory(now time.Time, category string) error {
	if e.category == category {
		category = ""
	}
	return e.SetCategory(now, category)
}
