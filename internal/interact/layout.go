package interact

import (
	"errors"
	"fmt"

	"xarxa/internal/catalog"
	"xarxa/internal/geom"
)

// ErrLayoutLength is returned when a layout does not cover every node.
var ErrLayoutLength = errors.New("layout length mismatch")

// MoveNode shifts a node by d percentage points, clamped to the [0, 100]
// square. A focused node keeps the camera centred on it.
func (e *Engine) MoveNode(id catalog.NodeID, d geom.Percent) error {
	i, ok := e.cat.Index(id)
	if !ok || i >= len(e.layout) {
		return fmt.Errorf("move %d: %w", id, catalog.ErrUnknownNode)
	}
	p := e.layout[i]
	p.X = min(max(p.X+d.X, 0), 100)
	p.Y = min(max(p.Y+d.Y, 0), 100)
	if p == e.layout[i] {
		return nil
	}
	e.layout[i] = p
	e.layoutChanged()
	return nil
}

// SetLayout replaces every node position.
func (e *Engine) SetLayout(l catalog.Layout) error {
	if len(l) != e.cat.Len() {
		return fmt.Errorf("%w: got %d positions for %d nodes", ErrLayoutLength, len(l), e.cat.Len())
	}
	e.layout = l.Clone()
	e.layoutChanged()
	return nil
}

func (e *Engine) layoutChanged() {
	if e.selected != catalog.NoNode && !e.size.Empty() {
		if pos, ok := e.cat.Position(e.layout, e.selected); ok {
			e.tr = geom.CenterOn(geom.NodePixel(pos, e.size), e.size, geom.FocusedScale)
		}
	}
	if e.onLayout != nil {
		e.onLayout(e.layout.Clone())
	}
	e.changed()
}
