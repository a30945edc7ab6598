// Package geom maps between layout percentages, viewport pixels and the
// panned/zoomed screen space.
package geom

import "math"

const (
	SpreadFactor = 1.4

	MinScale     = 0.5
	MaxScale     = 5.0
	FocusedScale = 4.0

	minNodeSize = 50.0
	maxNodeSize = 140.0
)

// Percent is a layout coordinate in percentage-of-viewport space.
type Percent struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Point is a pixel coordinate, either in world or in screen space.
type Point struct {
	X, Y float64
}

// Offset is a pixel translation.
type Offset struct {
	X, Y float64
}

type Size struct {
	Width, Height float64
}

func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

func (s Size) Center() Point {
	return Point{X: s.Width / 2, Y: s.Height / 2}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Spread pushes p away from the 50/50 centre by SpreadFactor.
func Spread(p Percent) Percent {
	return Percent{
		X: 50 + (p.X-50)*SpreadFactor,
		Y: 50 + (p.Y-50)*SpreadFactor,
	}
}

func ToPixels(p Percent, s Size) Point {
	return Point{
		X: p.X / 100 * s.Width,
		Y: p.Y / 100 * s.Height,
	}
}

// NodePixel is where a layout position lands in world space once spread.
func NodePixel(p Percent, s Size) Point {
	return ToPixels(Spread(p), s)
}

// Transform is the affine map screen = pan + world*scale.
type Transform struct {
	Pan   Offset
	Scale float64
}

func Identity() Transform {
	return Transform{Scale: 1}
}

func (t Transform) ToScreen(world Point) Point {
	return Point{
		X: t.Pan.X + world.X*t.Scale,
		Y: t.Pan.Y + world.Y*t.Scale,
	}
}

// ToWorld inverts ToScreen. Scale is never below MinScale, so the division is safe.
func (t Transform) ToWorld(screen Point) Point {
	return Point{
		X: (screen.X - t.Pan.X) / t.Scale,
		Y: (screen.Y - t.Pan.Y) / t.Scale,
	}
}

// ZoomAbout returns the transform at newScale that keeps the world point
// currently under cursor in place.
func (t Transform) ZoomAbout(cursor Point, newScale float64) Transform {
	world := t.ToWorld(cursor)
	return Transform{
		Pan: Offset{
			X: cursor.X - world.X*newScale,
			Y: cursor.Y - world.Y*newScale,
		},
		Scale: newScale,
	}
}

// CenterOn returns the transform at scale that puts world in the middle of the viewport.
func CenterOn(world Point, s Size, scale float64) Transform {
	c := s.Center()
	return Transform{
		Pan:   Offset{X: c.X - world.X*scale, Y: c.Y - world.Y*scale},
		Scale: scale,
	}
}

func ClampScale(s float64) float64 {
	if math.IsNaN(s) {
		return MinScale
	}
	return clamp(s, MinScale, MaxScale)
}

// ClampPan keeps the content within bounds once zoomed in. Below or at
// scale 1 the whole layout is visible and panning stays free.
func ClampPan(pan Offset, s Size, scale float64) Offset {
	if scale <= 1 {
		return pan
	}
	extraW := s.Width * (scale - 1) / 2
	extraH := s.Height * (scale - 1) / 2
	return Offset{
		X: clamp(pan.X, -extraW, extraW),
		Y: clamp(pan.Y, -extraH, extraH),
	}
}

// NodeSize is the thumbnail diameter for a viewport. It does not depend on
// the zoom scale; zoom is carried by the Transform.
func NodeSize(s Size) float64 {
	return clamp(math.Min(s.Width, s.Height)*0.1, minNodeSize, maxNodeSize)
}

func NodeRadius(s Size) float64 {
	return NodeSize(s) / 2
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
