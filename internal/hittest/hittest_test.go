package hittest

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xarxa/internal/catalog"
	"xarxa/internal/geom"
)

func defaultScene() Scene {
	c := catalog.Default()
	return Scene{Catalog: c, Layout: c.DefaultLayout(), Size: geom.Size{Width: 1440, Height: 900}}
}

func TestHitAtEveryNodeCentre(t *testing.T) {
	sc := defaultScene()
	radius := geom.NodeRadius(sc.Size)
	tr := geom.Identity()

	for i, n := range sc.Catalog.Nodes() {
		screen := tr.ToScreen(geom.NodePixel(sc.Layout[i], sc.Size))
		got, ok := HitTest(tr.ToWorld(screen), sc, radius)
		require.True(t, ok, "node %d", n.ID)
		assert.Equal(t, n.ID, got)
	}
}

func TestHitUnderZoomAndPan(t *testing.T) {
	sc := defaultScene()
	radius := geom.NodeRadius(sc.Size)
	tr := geom.Transform{Pan: geom.Offset{X: -830, Y: 212}, Scale: 3.3}

	idx, _ := sc.Catalog.Index(27)
	screen := tr.ToScreen(geom.NodePixel(sc.Layout[idx], sc.Size))
	got, ok := HitTest(tr.ToWorld(screen), sc, radius)
	require.True(t, ok)
	assert.Equal(t, catalog.NodeID(27), got)
}

func TestHitToleranceBoundary(t *testing.T) {
	cats := []catalog.Category{{ID: "a", Label: "A", Color: "#ffffff"}}
	c, err := catalog.New([]catalog.Node{{ID: 1, Category: "a"}}, cats, catalog.Layout{{X: 50, Y: 50}})
	require.NoError(t, err)
	sc := Scene{Catalog: c, Layout: c.DefaultLayout(), Size: geom.Size{Width: 1000, Height: 1000}}

	_, ok := HitTest(geom.Point{X: 500 + 59.9, Y: 500}, sc, 50)
	assert.True(t, ok, "inside 1.2 × radius")
	_, ok = HitTest(geom.Point{X: 500 + 60.1, Y: 500}, sc, 50)
	assert.False(t, ok, "outside 1.2 × radius")
	_, ok = HitTest(geom.Point{X: 500 + 45, Y: 500 + 45}, sc, 50)
	assert.False(t, ok, "inside the bounding box but outside the circle")
}

func TestHitTieKeepsEarlierIndex(t *testing.T) {
	cats := []catalog.Category{{ID: "a", Label: "A", Color: "#ffffff"}}
	nodes := []catalog.Node{{ID: 5, Category: "a"}, {ID: 3, Category: "a"}}
	c, err := catalog.New(nodes, cats, catalog.Layout{{X: 40, Y: 50}, {X: 60, Y: 50}})
	require.NoError(t, err)
	sc := Scene{Catalog: c, Layout: c.DefaultLayout(), Size: geom.Size{Width: 100, Height: 100}}

	got, ok := HitTest(geom.Point{X: 50, Y: 50}, sc, 50)
	require.True(t, ok)
	assert.Equal(t, catalog.NodeID(5), got)
}

func TestHitSkipsMissingPositions(t *testing.T) {
	sc := defaultScene()
	sc.Layout = sc.Layout[:10]
	idx, _ := sc.Catalog.Index(27)
	full := defaultScene()
	_, ok := HitTest(geom.NodePixel(full.Layout[idx], sc.Size), sc, 1)
	assert.False(t, ok)
}

func TestNearestFilters(t *testing.T) {
	sc := defaultScene()
	idx, _ := sc.Catalog.Index(27)
	at := geom.NodePixel(sc.Layout[idx], sc.Size)

	got, ok := Nearest(at, sc, nil)
	require.True(t, ok)
	assert.Equal(t, catalog.NodeID(27), got)

	got, ok = Nearest(at, sc, func(n catalog.Node) bool { return n.Category == "ia" })
	require.True(t, ok)
	assert.Equal(t, "ia", sc.Catalog.CategoryOf(got))
}

func TestHitExclusivity(t *testing.T) {
	cats := []catalog.Category{{ID: "a", Label: "A", Color: "#ffffff"}}
	size := geom.Size{Width: 1000, Height: 1000}
	radius := 50.0

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("separated nodes never share a hit point", prop.ForAll(
		func(ax, ay, bx, by, px, py float64) bool {
			layout := catalog.Layout{{X: ax, Y: ay}, {X: bx, Y: by}}
			a := geom.NodePixel(layout[0], size)
			b := geom.NodePixel(layout[1], size)
			if a.Dist(b) <= 2*radius*Tolerance {
				return true
			}
			p := geom.Point{X: px, Y: py}
			inA := p.Dist(a) <= radius*Tolerance
			inB := p.Dist(b) <= radius*Tolerance
			if inA && inB {
				return false
			}

			c, err := catalog.New([]catalog.Node{{ID: 1, Category: "a"}, {ID: 2, Category: "a"}}, cats, layout)
			if err != nil {
				return false
			}
			got, ok := HitTest(p, Scene{Catalog: c, Layout: layout, Size: size}, radius)
			switch {
			case inA:
				return ok && got == 1
			case inB:
				return ok && got == 2
			default:
				return !ok
			}
		},
		gen.Float64Range(0, 100), gen.Float64Range(0, 100),
		gen.Float64Range(0, 100), gen.Float64Range(0, 100),
		gen.Float64Range(-200, 1200), gen.Float64Range(-200, 1200),
	))

	properties.TestingRun(t)
}
