package interact

import (
	"fmt"
	"math"
	"time"

	"xarxa/internal/catalog"
	"xarxa/internal/geom"
)

// View is a read-only snapshot of the engine for the render loop.
type View struct {
	Catalog        *catalog.Catalog
	Layout         catalog.Layout
	Size           geom.Size
	Transform      geom.Transform
	Baseline       float64
	Selected       catalog.NodeID
	Hovered        catalog.NodeID
	Nearest        catalog.NodeID
	ActiveCategory string
	Dragging       bool
	Zooming        bool
	Transition     bool
	Phase          Phase

	animFrom  geom.Transform
	animStart time.Time
}

func (e *Engine) View() View {
	return View{
		Catalog:        e.cat,
		Layout:         e.layout,
		Size:           e.size,
		Transform:      e.tr,
		Baseline:       e.opts.Baseline,
		Selected:       e.selected,
		Hovered:        e.hovered,
		Nearest:        e.nearest,
		ActiveCategory: e.category,
		Dragging:       e.dragging,
		Zooming:        e.zooming,
		Transition:     e.transition,
		Phase:          e.Phase(),
		animFrom:       e.animFrom,
		animStart:      e.animStart,
	}
}

// Displayed is the transform to paint at now. During a focus transition it
// eases from the transform the transition started at towards the target.
func (v View) Displayed(now time.Time) geom.Transform {
	if !v.Transition {
		return v.Transform
	}
	t := float64(now.Sub(v.animStart)) / float64(SettleDelay)
	if t >= 1 {
		return v.Transform
	}
	if t < 0 {
		t = 0
	}
	k := ease(t)
	from, to := v.animFrom, v.Transform
	return geom.Transform{
		Pan: geom.Offset{
			X: from.Pan.X + (to.Pan.X-from.Pan.X)*k,
			Y: from.Pan.Y + (to.Pan.Y-from.Pan.Y)*k,
		},
		Scale: from.Scale + (to.Scale-from.Scale)*k,
	}
}

// NearestActive reports whether the zoom preview highlight applies to id.
func (v View) NearestActive(id catalog.NodeID) bool {
	return id != catalog.NoNode && id == v.Nearest && v.Transform.Scale > NearestThreshold
}

// Floating reports whether the idle float animation runs.
func (v View) Floating() bool {
	return v.Transform.Scale <= 1.0 && !v.Transition
}

// ShowZoom reports whether a host should display the zoom percentage.
func (v View) ShowZoom() bool {
	return !v.Transition && v.Selected == catalog.NoNode && math.Abs(v.Transform.Scale-v.Baseline) > 1e-9
}

func (v View) ZoomLabel() string {
	return fmt.Sprintf("%d%%", int(math.Round(v.Transform.Scale*100)))
}

func (e *Engine) displayed(now time.Time) geom.Transform {
	return e.View().Displayed(now)
}

// ease approximates cubic-bezier(0.4, 0, 0.2, 1).
func ease(t float64) float64 {
	const (
		x1, y1 = 0.4, 0.0
		x2, y2 = 0.2, 1.0
	)
	bez := func(a, b, s float64) float64 {
		u := 1 - s
		return 3*u*u*s*a + 3*u*s*s*b + s*s*s
	}
	dbez := func(a, b, s float64) float64 {
		u := 1 - s
		return 3*u*u*a + 6*u*s*(b-a) + 3*s*s*(1-b)
	}
	s := t
	for i := 0; i < 8; i++ {
		d := dbez(x1, x2, s)
		if math.Abs(d) < 1e-6 {
			break
		}
		s -= (bez(x1, x2, s) - t) / d
		if s < 0 {
			s = 0
		} else if s > 1 {
			s = 1
		}
	}
	return bez(y1, y2, s)
}
