// Package render paints the network onto a Surface, one frame at a time.
package render

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"xarxa/internal/geom"
)

// Stroke styles a line. Width is in world units and
// scales with the view.
type Stroke struct {
	Color color.Color
	Width float64
	Alpha float64
}

// Shadow decorates a highlighted thumbnail.
type Shadow struct {
	// Drop paints a soft shadow below the node.
	Drop bool
	// Ring outlines the node with a white glow ring of Blur size.
	Ring bool
	Blur float64
}

// Surface is a drawing target. Coordinates passed to the Stroke and Draw
// methods are world coordinates and go through the transform set with
// SetTransform; DrawLabel takes screen coordinates.
type Surface interface {
	Resize(width, height int, dpr float64)
	Size() geom.Size
	Clear()
	SetTransform(tr geom.Transform)
	StrokeLine(a, b geom.Point, st Stroke)
	DrawClippedImage(img image.Image, c geom.Point, size, alpha float64, sh Shadow)
	DrawLabel(text string, at geom.Point, col color.Color)
}

// ParseHex reads a #rrggbb or #rgb colour. Malformed input yields mid gray.
func ParseHex(s string) color.RGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{0x80, 0x80, 0x80, 0xff}
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 0xff}
}

func withAlpha(c color.Color, a float64) color.NRGBA {
	r, g, b, _ := c.RGBA()
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return color.NRGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a*255 + 0.5)}
}
