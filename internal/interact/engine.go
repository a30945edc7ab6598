// Package interact owns the transient pan/zoom/selection state of the
// network view and turns raw pointer, wheel, touch, keyboard and resize
// input into state transitions.
//
// The engine is single threaded: every method must be called from the
// host's event loop. Work that the browser would defer to an animation
// frame is parked in a frame.Loop slot and runs on the next Flush.
package interact

import (
	"fmt"
	"log/slog"
	"time"

	"xarxa/internal/catalog"
	"xarxa/internal/frame"
	"xarxa/internal/geom"
	"xarxa/internal/hittest"
)

const (
	DragThreshold    = 5.0
	SettleDelay      = 500 * time.Millisecond
	WheelInterval    = 8 * time.Millisecond
	ResizeInterval   = 100 * time.Millisecond
	NearestThreshold = 1.5

	DefaultBaseline         = 1.0
	DefaultWheelSensitivity = 0.002
)

type Phase int

const (
	Idle Phase = iota
	Panning
	EnteringFocus
	Focused
	ExitingFocus
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Panning:
		return "panning"
	case EnteringFocus:
		return "entering-focus"
	case Focused:
		return "focused"
	case ExitingFocus:
		return "exiting-focus"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

type Options struct {
	// Baseline is the unfocused resting scale.
	Baseline         float64
	WheelSensitivity float64
	Logger           *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Baseline <= 0 {
		o.Baseline = DefaultBaseline
	}
	o.Baseline = geom.ClampScale(o.Baseline)
	if o.WheelSensitivity <= 0 {
		o.WheelSensitivity = DefaultWheelSensitivity
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

type Engine struct {
	cat    *catalog.Catalog
	layout catalog.Layout
	loop   *frame.Loop
	opts   Options
	log    *slog.Logger

	size        geom.Size
	pendingSize geom.Size
	sizePending bool
	lastResize  time.Time

	tr       geom.Transform
	selected catalog.NodeID
	hovered  catalog.NodeID
	nearest  catalog.NodeID
	category string

	pointerDown bool
	downAt      geom.Point
	lastAt      geom.Point
	panAtDown   geom.Offset
	dragging    bool

	zooming    bool
	transition bool
	exiting    bool
	settleAt   time.Time
	animFrom   geom.Transform
	animStart  time.Time

	wheelGate *frame.Throttle

	onChange func()
	onLayout func(catalog.Layout)
}

func New(cat *catalog.Catalog, layout catalog.Layout, loop *frame.Loop, opts Options) *Engine {
	opts = opts.withDefaults()
	return &Engine{
		cat:       cat,
		layout:    layout.Clone(),
		loop:      loop,
		opts:      opts,
		log:       opts.Logger.With("component", "interact"),
		tr:        geom.Transform{Scale: opts.Baseline},
		wheelGate: frame.NewThrottle(WheelInterval),
	}
}

// OnChange registers the hook run after every visible state change.
func (e *Engine) OnChange(fn func()) { e.onChange = fn }

// OnLayoutChange registers the hook run after the layout is edited.
func (e *Engine) OnLayoutChange(fn func(catalog.Layout)) { e.onLayout = fn }

func (e *Engine) changed() {
	if e.onChange != nil {
		e.onChange()
	}
}

func (e *Engine) Catalog() *catalog.Catalog { return e.cat }
func (e *Engine) Transform() geom.Transform { return e.tr }
func (e *Engine) Scale() float64            { return e.tr.Scale }
func (e *Engine) Pan() geom.Offset          { return e.tr.Pan }
func (e *Engine) Size() geom.Size           { return e.size }
func (e *Engine) Selected() catalog.NodeID  { return e.selected }
func (e *Engine) Hovered() catalog.NodeID   { return e.hovered }
func (e *Engine) Nearest() catalog.NodeID   { return e.nearest }
func (e *Engine) ActiveCategory() string    { return e.category }
func (e *Engine) Dragging() bool            { return e.dragging }
func (e *Engine) Transitioning() bool       { return e.zooming || e.transition }
func (e *Engine) Baseline() float64         { return e.opts.Baseline }
func (e *Engine) Layout() catalog.Layout    { return e.layout.Clone() }

func (e *Engine) Phase() Phase {
	switch {
	case e.transition && e.exiting:
		return ExitingFocus
	case e.transition:
		return EnteringFocus
	case e.selected != catalog.NoNode:
		return Focused
	case e.dragging:
		return Panning
	}
	return Idle
}

// busy reports whether zoom, pan and click input must be dropped.
func (e *Engine) busy() bool {
	return e.zooming || e.transition
}

func (e *Engine) scene() hittest.Scene {
	return hittest.Scene{Catalog: e.cat, Layout: e.layout, Size: e.size}
}

// HitAt resolves a screen point to a node under the current transform.
func (e *Engine) HitAt(screen geom.Point) (catalog.NodeID, bool) {
	if e.size.Empty() {
		return catalog.NoNode, false
	}
	return hittest.HitTest(e.tr.ToWorld(screen), e.scene(), geom.NodeRadius(e.size))
}

// Tick advances timers: the focus settle delay and trailing resizes.
func (e *Engine) Tick(now time.Time) {
	if e.transition && !now.Before(e.settleAt) {
		e.zooming = false
		e.transition = false
		e.exiting = false
		e.log.Debug("transition settled", "selected", int(e.selected), "scale", e.tr.Scale)
		e.changed()
	}
	if e.sizePending && now.Sub(e.lastResize) >= ResizeInterval {
		e.applySize(now, e.pendingSize)
	}
}

// Deadline is the next time Tick has work to do, if any.
func (e *Engine) Deadline() (time.Time, bool) {
	switch {
	case e.transition:
		return e.settleAt, true
	case e.sizePending:
		return e.lastResize.Add(ResizeInterval), true
	}
	return time.Time{}, false
}

// Resize applies the first viewport size at once and later ones at most
// every ResizeInterval, trailing edge.
func (e *Engine) Resize(now time.Time, s geom.Size) {
	if s.Empty() {
		return
	}
	if e.size.Empty() || now.Sub(e.lastResize) >= ResizeInterval {
		e.applySize(now, s)
		return
	}
	e.pendingSize = s
	e.sizePending = true
}

func (e *Engine) applySize(now time.Time, s geom.Size) {
	e.size = s
	e.sizePending = false
	e.lastResize = now
	if e.selected != catalog.NoNode {
		if pos, ok := e.cat.Position(e.layout, e.selected); ok {
			e.tr = geom.CenterOn(geom.NodePixel(pos, s), s, geom.FocusedScale)
		}
	} else {
		e.tr.Pan = geom.ClampPan(e.tr.Pan, s, e.tr.Scale)
	}
	e.changed()
}
