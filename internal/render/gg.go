package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"xarxa/internal/geom"
)

const labelSize = 14.0

type scaledKey struct {
	img  image.Image
	side int
}

var _ Surface = (*GGSurface)(nil)

// GGSurface rasterises into an in-memory RGBA image. The backing store is
// the logical size times the device pixel ratio.
type GGSurface struct {
	dc     *gg.Context
	size   geom.Size
	dpr    float64
	tr     geom.Transform
	bg     color.Color
	font   *truetype.Font
	face   font.Face
	scaled map[scaledKey]image.Image
}

// NewGGSurface parses the label font once; Resize only rebuilds the face
// at the new pixel ratio.
func NewGGSurface(width, height int, dpr float64) (*GGSurface, error) {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	s := &GGSurface{bg: color.RGBA{0x0a, 0x0a, 0x0a, 0xff}, tr: geom.Identity(), font: ttf}
	s.Resize(width, height, dpr)
	return s, nil
}

func (s *GGSurface) setFace() {
	s.face = truetype.NewFace(s.font, &truetype.Options{
		Size:    labelSize * s.dpr,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Resize reallocates the backing store when the size or ratio changes.
func (s *GGSurface) Resize(width, height int, dpr float64) {
	width, height = max(width, 1), max(height, 1)
	if dpr <= 0 {
		dpr = 1
	}
	size := geom.Size{Width: float64(width), Height: float64(height)}
	if s.dc != nil && size == s.size && dpr == s.dpr {
		return
	}
	faceStale := dpr != s.dpr
	s.size, s.dpr = size, dpr
	s.dc = gg.NewContext(int(math.Round(size.Width*dpr)), int(math.Round(size.Height*dpr)))
	s.scaled = make(map[scaledKey]image.Image)
	if faceStale || s.face == nil {
		s.setFace()
	}
	s.dc.SetFontFace(s.face)
}

func (s *GGSurface) Size() geom.Size { return s.size }

func (s *GGSurface) PixelRatio() float64 { return s.dpr }

func (s *GGSurface) Clear() {
	s.dc.SetColor(s.bg)
	s.dc.Clear()
}

func (s *GGSurface) SetTransform(tr geom.Transform) { s.tr = tr }

// device maps a world point to backing store pixels.
func (s *GGSurface) device(p geom.Point) (float64, float64) {
	q := s.tr.ToScreen(p)
	return q.X * s.dpr, q.Y * s.dpr
}

func (s *GGSurface) length(v float64) float64 {
	return v * s.tr.Scale * s.dpr
}

func (s *GGSurface) StrokeLine(a, b geom.Point, st Stroke) {
	x1, y1 := s.device(a)
	x2, y2 := s.device(b)
	s.dc.SetColor(withAlpha(st.Color, st.Alpha))
	s.dc.SetLineWidth(s.length(st.Width))
	s.dc.SetLineCap(gg.LineCapRound)
	s.dc.DrawLine(x1, y1, x2, y2)
	s.dc.Stroke()
}

func (s *GGSurface) DrawClippedImage(img image.Image, c geom.Point, size, alpha float64, sh Shadow) {
	x, y := s.device(c)
	r := s.length(size / 2)
	if r < 0.5 {
		return
	}
	if sh.Ring {
		s.glowRing(x, y, r+s.length(4), sh.Blur)
	}
	if sh.Drop {
		s.dropShadow(x, y, r)
	}

	side := int(math.Ceil(2 * r))
	scaled := s.scaledImage(img, side)

	s.dc.Push()
	s.dc.DrawCircle(x, y, r)
	s.dc.Clip()
	if alpha >= 1 {
		s.dc.DrawImageAnchored(scaled, int(math.Round(x)), int(math.Round(y)), 0.5, 0.5)
	} else {
		s.dc.DrawImageAnchored(fade(scaled, alpha), int(math.Round(x)), int(math.Round(y)), 0.5, 0.5)
	}
	s.dc.Pop()
}

// glowRing strokes the ring twice: a wide faint pass for the glow and the
// ring itself on top.
func (s *GGSurface) glowRing(x, y, r, blur float64) {
	if blur > 0 {
		s.dc.SetColor(color.NRGBA{0xff, 0xff, 0xff, 0x40})
		s.dc.SetLineWidth(s.length(2.5 + blur))
		s.dc.DrawCircle(x, y, r)
		s.dc.Stroke()
	}
	s.dc.SetColor(color.NRGBA{0xff, 0xff, 0xff, 0xe6})
	s.dc.SetLineWidth(s.length(2.5))
	s.dc.DrawCircle(x, y, r)
	s.dc.Stroke()
}

// dropShadow fakes a 12px blur offset 4px down with stacked translucent discs.
func (s *GGSurface) dropShadow(x, y, r float64) {
	dy := s.length(4)
	blur := s.length(12)
	const steps = 4
	for i := steps; i >= 1; i-- {
		s.dc.SetColor(color.NRGBA{0, 0, 0, 0x12})
		s.dc.DrawCircle(x, y+dy, r+blur*float64(i)/steps)
		s.dc.Fill()
	}
}

func (s *GGSurface) scaledImage(img image.Image, side int) image.Image {
	key := scaledKey{img, side}
	if out, ok := s.scaled[key]; ok {
		return out
	}
	out := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.ApproxBiLinear.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	s.scaled[key] = out
	return out
}

func fade(img image.Image, alpha float64) image.Image {
	out := image.NewRGBA(img.Bounds())
	mask := image.NewUniform(color.Alpha{uint8(alpha*255 + 0.5)})
	draw.DrawMask(out, out.Bounds(), img, img.Bounds().Min, mask, image.Point{}, draw.Over)
	return out
}

func (s *GGSurface) DrawLabel(text string, at geom.Point, col color.Color) {
	s.dc.SetColor(col)
	s.dc.DrawStringAnchored(text, at.X*s.dpr, at.Y*s.dpr, 0.5, 0.5)
}

func (s *GGSurface) Image() image.Image { return s.dc.Image() }

func (s *GGSurface) EncodePNG(w io.Writer) error { return s.dc.EncodePNG(w) }

func (s *GGSurface) SavePNG(path string) error { return s.dc.SavePNG(path) }
