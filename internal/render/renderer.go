package render

import (
	"image/color"
	"log/slog"
	"math"
	"time"

	"xarxa/internal/catalog"
	"xarxa/internal/frame"
	"xarxa/internal/geom"
	"xarxa/internal/interact"
)

const (
	highlightGrowth = 1.15
	floatAmplitude  = 25.0
)

var (
	connectionGray = color.RGBA{0x9c, 0xa3, 0xaf, 0xff}
	labelColor     = color.RGBA{0xff, 0xff, 0xff, 0xcc}
)

type Options struct {
	// Float enables the idle drift while zoomed out.
	Float bool
	// ZoomLabel paints the zoom percentage in the bottom right corner.
	ZoomLabel  bool
	PixelRatio float64
	Logger     *slog.Logger
}

// Renderer paints engine snapshots. Draw requests go through the frame loop
// so at most one paint happens per frame.
type Renderer struct {
	surface Surface
	images  *ImageCache
	loop    *frame.Loop
	view    func() interact.View
	opts    Options
	log     *slog.Logger
	epoch   time.Time
	painted uint64
}

func NewRenderer(s Surface, images *ImageCache, loop *frame.Loop, view func() interact.View, opts Options) *Renderer {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.PixelRatio <= 0 {
		opts.PixelRatio = 1
	}
	r := &Renderer{
		surface: s,
		images:  images,
		loop:    loop,
		view:    view,
		opts:    opts,
		log:     opts.Logger.With("component", "render"),
	}
	images.OnLoad(func(catalog.NodeID) { r.Invalidate() })
	return r
}

// Invalidate schedules a paint on the next frame, replacing any pending one.
func (r *Renderer) Invalidate() {
	r.loop.Request(frame.SlotDraw, r.frame)
}

// Painted is the number of frames drawn so far.
func (r *Renderer) Painted() uint64 { return r.painted }

func (r *Renderer) frame(now time.Time) {
	v := r.view()
	r.Paint(now, v)
	if v.Transition || (r.opts.Float && v.Floating()) {
		r.loop.Request(frame.SlotDraw, r.frame)
	}
}

// Paint draws v immediately.
func (r *Renderer) Paint(now time.Time, v interact.View) {
	if r.epoch.IsZero() {
		r.epoch = now
	}
	r.painted++
	if v.Size.Empty() {
		return
	}
	s := r.surface
	if s.Size() != v.Size {
		s.Resize(int(v.Size.Width), int(v.Size.Height), r.opts.PixelRatio)
	}
	s.Clear()
	s.SetTransform(v.Displayed(now))

	positions := r.positions(now, v)
	r.paintConnections(v, positions)
	r.paintNodes(v, positions)

	if r.opts.ZoomLabel && v.ShowZoom() {
		sz := s.Size()
		s.DrawLabel(v.ZoomLabel(), geom.Point{X: sz.Width - 40, Y: sz.Height - 24}, labelColor)
	}
}

// positions are the world coordinates of every node, drift included. Nodes
// without a layout entry are absent.
func (r *Renderer) positions(now time.Time, v interact.View) map[catalog.NodeID]geom.Point {
	float := r.opts.Float && v.Floating()
	t := now.Sub(r.epoch).Seconds()
	out := make(map[catalog.NodeID]geom.Point, v.Catalog.Len())
	for _, n := range v.Catalog.Nodes() {
		pos, ok := v.Catalog.Position(v.Layout, n.ID)
		if !ok {
			continue
		}
		p := geom.NodePixel(pos, v.Size)
		if float {
			d := FloatOffset(n.ID, t)
			p.X += d.X
			p.Y += d.Y
		}
		out[n.ID] = p
	}
	return out
}

// ConnectionStroke picks the style of a connection for the current view.
func ConnectionStroke(v interact.View, c catalog.Connection) Stroke {
	col := ParseHex(categoryColor(v.Catalog, c.Category))
	switch {
	case v.Selected != catalog.NoNode && c.Touches(v.Selected),
		v.Hovered != catalog.NoNode && c.Touches(v.Hovered):
		return Stroke{Color: col, Width: 2, Alpha: 0.9}
	case v.ActiveCategory != "" && c.Category == v.ActiveCategory:
		return Stroke{Color: col, Width: 2, Alpha: 0.6}
	}
	return Stroke{Color: connectionGray, Width: 1, Alpha: 0.3}
}

func categoryColor(cat *catalog.Catalog, id string) string {
	if c, ok := cat.Category(id); ok {
		return c.Color
	}
	return ""
}

func (r *Renderer) paintConnections(v interact.View, positions map[catalog.NodeID]geom.Point) {
	for _, c := range v.Catalog.Connections() {
		a, okA := positions[c.A]
		b, okB := positions[c.B]
		if !okA || !okB {
			continue
		}
		r.surface.StrokeLine(a, b, ConnectionStroke(v, c))
	}
}

// NodeLook is how a single thumbnail is drawn.
type NodeLook struct {
	Size   float64
	Alpha  float64
	Shadow Shadow
}

func Look(v interact.View, n catalog.Node) NodeLook {
	base := geom.NodeSize(v.Size)
	selected := v.Selected == n.ID
	nearest := v.NearestActive(n.ID)
	hovered := v.Hovered == n.ID

	l := NodeLook{Size: base, Alpha: 1}
	if v.ActiveCategory != "" && n.Category != v.ActiveCategory && !selected {
		l.Alpha = 0.5
	}
	switch {
	case selected || nearest:
		l.Size = base * highlightGrowth
		l.Shadow = Shadow{Drop: true, Ring: true, Blur: 8}
	case hovered:
		l.Size = base * highlightGrowth
		l.Shadow = Shadow{Drop: true, Blur: 4}
	}
	return l
}

func (r *Renderer) paintNodes(v interact.View, positions map[catalog.NodeID]geom.Point) {
	var top []catalog.Node
	for _, n := range v.Catalog.Nodes() {
		if _, ok := positions[n.ID]; !ok {
			continue
		}
		if Look(v, n).Shadow.Drop {
			top = append(top, n)
			continue
		}
		r.paintNode(v, n, positions[n.ID])
	}
	// highlighted nodes go last so their rings are not covered
	for _, n := range top {
		r.paintNode(v, n, positions[n.ID])
	}
}

func (r *Renderer) paintNode(v interact.View, n catalog.Node, p geom.Point) {
	img, ok := r.images.Get(n.ID)
	if !ok {
		return
	}
	l := Look(v, n)
	r.surface.DrawClippedImage(img, p, l.Size, l.Alpha, l.Shadow)
}

// FloatOffset is the idle drift of node id at t seconds. Each node gets its
// own phase so neighbours do not move in lockstep.
func FloatOffset(id catalog.NodeID, t float64) geom.Offset {
	phase := float64(id) * 2.399963
	x := 0.6*math.Sin(0.7*t+phase) + 0.4*math.Sin(1.3*t+1.7*phase)
	y := 0.6*math.Cos(0.5*t+1.3*phase) + 0.4*math.Sin(1.1*t+0.7*phase)
	return geom.Offset{X: floatAmplitude * x, Y: floatAmplitude * y}
}
