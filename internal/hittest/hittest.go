// Package hittest resolves world-space points to catalog nodes.
package hittest

import (
	"math"

	"xarxa/internal/catalog"
	"xarxa/internal/geom"
)

// Tolerance widens the hit circle by 20% for easier targeting.
const Tolerance = 1.2

// Scene is what hit-testing needs to know about the current layout.
type Scene struct {
	Catalog *catalog.Catalog
	Layout  catalog.Layout
	Size    geom.Size
}

// HitTest returns the node whose centre is nearest to world and within
// radius*Tolerance. Ties keep the earlier catalog index.
func HitTest(world geom.Point, sc Scene, radius float64) (catalog.NodeID, bool) {
	reach := radius * Tolerance
	best := catalog.NoNode
	bestDist := math.Inf(1)

	for i, n := range sc.Catalog.Nodes() {
		pos, ok := sc.Layout.At(i)
		if !ok {
			continue
		}
		center := geom.NodePixel(pos, sc.Size)
		dx := world.X - center.X
		dy := world.Y - center.Y
		if math.Abs(dx) > reach || math.Abs(dy) > reach {
			continue
		}
		d := math.Sqrt(dx*dx + dy*dy)
		if d <= reach && d < bestDist {
			best, bestDist = n.ID, d
		}
	}
	return best, best != catalog.NoNode
}

// Nearest returns the node closest to world with no distance limit, used
// for the zoom preview. Only nodes accepted by keep are considered; a nil
// keep accepts all.
func Nearest(world geom.Point, sc Scene, keep func(catalog.Node) bool) (catalog.NodeID, bool) {
	best := catalog.NoNode
	bestDist := math.Inf(1)

	for i, n := range sc.Catalog.Nodes() {
		if keep != nil && !keep(n) {
			continue
		}
		pos, ok := sc.Layout.At(i)
		if !ok {
			continue
		}
		d := world.Dist(geom.NodePixel(pos, sc.Size))
		if d < bestDist {
			best, bestDist = n.ID, d
		}
	}
	return best, best != catalog.NoNode
}
