package tui

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"xarxa/internal/geom"
	"xarxa/internal/render"
)

// Terminal cells are treated as charWidth x charHeight pixels.
const (
	charWidth  = 8.0
	charHeight = 16.0
)

type cell struct {
	ch    rune
	color string // "" = default
}

var _ render.Surface = (*Grid)(nil)

// Grid is a render.Surface made of terminal cells.
type Grid struct {
	cols, rows int
	cells      [][]cell
	tr         geom.Transform
	swatches   map[image.Image]string
}

func NewGrid(cols, rows int) *Grid {
	g := &Grid{swatches: make(map[image.Image]string)}
	g.resizeCells(cols, rows)
	return g
}

func (g *Grid) resizeCells(cols, rows int) {
	g.cols, g.rows = max(cols, 1), max(rows, 1)
	g.cells = make([][]cell, g.rows)
	for i := range g.cells {
		g.cells[i] = make([]cell, g.cols)
	}
	g.Clear()
}

// Resize takes the viewport in pixels. The pixel ratio does not apply to
// terminal cells.
func (g *Grid) Resize(width, height int, _ float64) {
	cols := int(math.Round(float64(width) / charWidth))
	rows := int(math.Round(float64(height) / charHeight))
	if cols == g.cols && rows == g.rows {
		return
	}
	g.resizeCells(cols, rows)
}

func (g *Grid) Size() geom.Size {
	return geom.Size{Width: float64(g.cols) * charWidth, Height: float64(g.rows) * charHeight}
}

func (g *Grid) Clear() {
	for _, row := range g.cells {
		for j := range row {
			row[j] = cell{ch: ' '}
		}
	}
}

func (g *Grid) SetTransform(tr geom.Transform) { g.tr = tr }

// cellAt maps a world point to the cell under it.
func (g *Grid) cellAt(p geom.Point) (int, int) {
	q := g.tr.ToScreen(p)
	return int(math.Floor(q.X / charWidth)), int(math.Floor(q.Y / charHeight))
}

func (g *Grid) set(x, y int, ch rune, col string) {
	if y < 0 || y >= g.rows || x < 0 || x >= g.cols {
		return
	}
	g.cells[y][x] = cell{ch: ch, color: col}
}

func (g *Grid) get(x, y int) cell {
	if y < 0 || y >= g.rows || x < 0 || x >= g.cols {
		return cell{}
	}
	return g.cells[y][x]
}

// hexOf formats c as #rrggbb, ignoring alpha.
func hexOf(c color.Color) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "#000000"
	}
	return cf.Hex()
}

// StrokeLine plots a Bresenham line. Faint strokes use a dot so nodes stay
// readable over the web of connections.
func (g *Grid) StrokeLine(a, b geom.Point, st render.Stroke) {
	x0, y0 := g.cellAt(a)
	x1, y1 := g.cellAt(b)
	ch, col := '·', "#4b5563"
	if st.Alpha >= 0.5 {
		ch, col = '•', hexOf(st.Color)
	}

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for steps := 0; steps < 4*(g.cols+g.rows)+dx-dy; steps++ {
		if cur := g.get(x0, y0); cur.ch == ' ' || cur.ch == '·' || ch == '•' {
			g.set(x0, y0, ch, col)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (g *Grid) ring(c geom.Point, r float64, ch rune, col string) {
	rpx := r * g.tr.Scale
	steps := max(int(2*math.Pi*rpx/charWidth), 8)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x, y := g.cellAt(geom.Point{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)})
		g.set(x, y, ch, col)
	}
}

// DrawClippedImage fills the cells inside the node circle with the average
// colour of img.
func (g *Grid) DrawClippedImage(img image.Image, c geom.Point, size, alpha float64, sh render.Shadow) {
	col := g.swatch(img)
	ch := '█'
	if alpha < 1 {
		ch = '▒'
	}
	r := size / 2
	centre := g.tr.ToScreen(c)
	rpx := r * g.tr.Scale

	x0 := int(math.Floor((centre.X - rpx) / charWidth))
	x1 := int(math.Ceil((centre.X + rpx) / charWidth))
	y0 := int(math.Floor((centre.Y - rpx) / charHeight))
	y1 := int(math.Ceil((centre.Y + rpx) / charHeight))
	drawn := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			px := (float64(x) + 0.5) * charWidth
			py := (float64(y) + 0.5) * charHeight
			if math.Hypot(px-centre.X, py-centre.Y) <= rpx {
				g.set(x, y, ch, col)
				drawn = true
			}
		}
	}
	if !drawn {
		// smaller than a cell
		x, y := g.cellAt(c)
		g.set(x, y, '●', col)
	}
	if sh.Ring {
		g.ring(c, r+4, '○', "#ffffff")
	}
}

func (g *Grid) swatch(img image.Image) string {
	if s, ok := g.swatches[img]; ok {
		return s
	}
	b := img.Bounds()
	var r, gr, bl, n uint64
	stepX := max(b.Dx()/16, 1)
	stepY := max(b.Dy()/16, 1)
	for y := b.Min.Y; y < b.Max.Y; y += stepY {
		for x := b.Min.X; x < b.Max.X; x += stepX {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			r, gr, bl = r+uint64(cr>>8), gr+uint64(cg>>8), bl+uint64(cb>>8)
			n++
		}
	}
	s := "#333333"
	if n > 0 {
		s = hexOf(color.RGBA{uint8(r / n), uint8(gr / n), uint8(bl / n), 0xff})
	}
	g.swatches[img] = s
	return s
}

// DrawLabel writes text centred on a screen point.
func (g *Grid) DrawLabel(text string, at geom.Point, col color.Color) {
	x := int(at.X/charWidth) - len([]rune(text))/2
	y := int(at.Y / charHeight)
	for i, ch := range []rune(text) {
		g.set(x+i, y, ch, hexOf(col))
	}
}

// Lines renders the grid, one styled string per row.
func (g *Grid) Lines() []string {
	out := make([]string, g.rows)
	for i, row := range g.cells {
		var line strings.Builder
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && row[j].color == row[start].color {
				continue
			}
			run := make([]rune, 0, j-start)
			for _, c := range row[start:j] {
				run = append(run, c.ch)
			}
			if col := row[start].color; col != "" {
				line.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(col)).Render(string(run)))
			} else {
				line.WriteString(string(run))
			}
			start = j
		}
		out[i] = line.String()
	}
	return out
}

// Plain renders the grid without colour.
func (g *Grid) Plain() []string {
	out := make([]string, g.rows)
	for i, row := range g.cells {
		run := make([]rune, len(row))
		for j, c := range row {
			run[j] = c.ch
		}
		out[i] = string(run)
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
