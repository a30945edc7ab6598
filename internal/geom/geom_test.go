package geom

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-6

func near(a, b float64) bool {
	return math.Abs(a-b) <= eps*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestSpread(t *testing.T) {
	assert.Equal(t, Percent{X: 50, Y: 50}, Spread(Percent{X: 50, Y: 50}))
	got := Spread(Percent{X: 60, Y: 40})
	assert.InDelta(t, 64, got.X, eps)
	assert.InDelta(t, 36, got.Y, eps)
}

func TestToPixels(t *testing.T) {
	got := ToPixels(Percent{X: 25, Y: 50}, Size{Width: 800, Height: 600})
	assert.Equal(t, Point{X: 200, Y: 300}, got)
}

func TestNodeSize(t *testing.T) {
	tests := []struct {
		name string
		size Size
		want float64
	}{
		{"small viewport clamps up", Size{Width: 300, Height: 200}, 50},
		{"mid viewport", Size{Width: 1200, Height: 900}, 90},
		{"large viewport clamps down", Size{Width: 3000, Height: 2000}, 140},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NodeSize(tt.size), eps)
			assert.InDelta(t, tt.want/2, NodeRadius(tt.size), eps)
		})
	}
}

func TestClampScale(t *testing.T) {
	assert.Equal(t, MinScale, ClampScale(0))
	assert.Equal(t, MinScale, ClampScale(math.NaN()))
	assert.Equal(t, MaxScale, ClampScale(12))
	assert.Equal(t, 2.5, ClampScale(2.5))
}

func TestClampPan(t *testing.T) {
	s := Size{Width: 1000, Height: 800}

	free := Offset{X: 5000, Y: -5000}
	assert.Equal(t, free, ClampPan(free, s, 1), "pan is free at scale 1")
	assert.Equal(t, free, ClampPan(free, s, 0.6))

	got := ClampPan(Offset{X: 5000, Y: -5000}, s, 2)
	assert.Equal(t, Offset{X: 500, Y: -400}, got)
}

func TestCenterOn(t *testing.T) {
	s := Size{Width: 1000, Height: 800}
	world := Point{X: 120, Y: 640}
	tr := CenterOn(world, s, FocusedScale)
	screen := tr.ToScreen(world)
	assert.InDelta(t, 500, screen.X, eps)
	assert.InDelta(t, 400, screen.Y, eps)
}

func TestTransformLaws(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	coord := gen.Float64Range(-5000, 5000)
	scale := gen.Float64Range(MinScale, MaxScale)

	properties.Property("ToScreen inverts ToWorld", prop.ForAll(
		func(px, py, ox, oy, s float64) bool {
			tr := Transform{Pan: Offset{X: ox, Y: oy}, Scale: s}
			p := Point{X: px, Y: py}
			back := tr.ToScreen(tr.ToWorld(p))
			return near(back.X, p.X) && near(back.Y, p.Y)
		},
		coord, coord, coord, coord, scale,
	))

	properties.Property("zoom about cursor keeps the world point under the cursor", prop.ForAll(
		func(cx, cy, ox, oy, s, s2 float64) bool {
			tr := Transform{Pan: Offset{X: ox, Y: oy}, Scale: s}
			cursor := Point{X: cx, Y: cy}
			before := tr.ToWorld(cursor)
			after := tr.ZoomAbout(cursor, s2).ToWorld(cursor)
			return near(before.X, after.X) && near(before.Y, after.Y)
		},
		coord, coord, coord, coord, scale, scale,
	))

	properties.Property("ClampPan is idempotent", prop.ForAll(
		func(ox, oy, w, h, s float64) bool {
			size := Size{Width: w, Height: h}
			once := ClampPan(Offset{X: ox, Y: oy}, size, s)
			twice := ClampPan(once, size, s)
			return once == twice
		},
		coord, coord, gen.Float64Range(1, 4000), gen.Float64Range(1, 4000), scale,
	))

	properties.TestingRun(t)
}
