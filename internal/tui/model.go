// Package tui is the interactive terminal gallery: a bubbletea program that
// feeds mouse and keyboard input to the interaction engine and shows the
// rendered cell grid.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"xarxa/internal/app"
	"xarxa/internal/catalog"
	"xarxa/internal/frame"
	"xarxa/internal/geom"
	"xarxa/internal/interact"
	"xarxa/internal/render"
	"xarxa/internal/store"
)

type Mode int

const (
	ModeBrowse Mode = iota
	ModeMove
)

func (m Mode) String() string {
	if m == ModeMove {
		return "MOVE"
	}
	return "BROWSE"
}

const (
	// wheelStep is the deltaY reported for one wheel notch.
	wheelStep = 100.0
	zoomStep  = 1.25
	moveStep  = 1.0
)

type tickMsg time.Time

type imageMsg render.Result

type exportDoneMsg struct {
	path string
	err  error
}

type Model struct {
	app      *app.App
	eng      *interact.Engine
	loop     *frame.Loop
	grid     *Grid
	images   *render.ImageCache
	renderer *render.Renderer
	layouts  *store.LayoutStore
	log      *slog.Logger
	now      func() time.Time

	width      int
	height     int
	mode       Mode
	help       bool
	helpModel  help.Model
	history    history
	moveID     catalog.NodeID
	moveBefore catalog.Layout
	ticking    bool

	errorMessage   string
	successMessage string
}

func New(a *app.App) Model {
	loop := frame.NewLoop()
	eng := a.Engine(loop)
	grid := NewGrid(1, 1)
	images := a.Images()
	r := render.NewRenderer(grid, images, loop, eng.View, render.Options{
		Float:  a.Config.View.Float,
		Logger: a.Log,
	})
	eng.OnChange(r.Invalidate)
	images.RequestAll()

	return Model{
		app:       a,
		eng:       eng,
		loop:      loop,
		grid:      grid,
		images:    images,
		renderer:  r,
		layouts:   a.Layouts,
		log:       a.Log.With("component", "tui"),
		now:       time.Now,
		helpModel: help.New(),
	}
}

// Run starts the gallery and blocks until the user quits.
func Run(ctx context.Context, a *app.App) error {
	p := tea.NewProgram(
		New(a),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("xarxa"), waitImage(m.images))
}

func waitImage(c *render.ImageCache) tea.Cmd {
	return func() tea.Msg {
		return imageMsg(<-c.Results())
	}
}

// schedule starts the frame ticker when there is frame or timer work.
func (m *Model) schedule() tea.Cmd {
	if m.ticking {
		return nil
	}
	_, timer := m.eng.Deadline()
	if !m.loop.Pending() && !timer && !m.layouts.Pending() {
		return nil
	}
	m.ticking = true
	return tea.Tick(frame.Interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.helpModel.Width = msg.Width
		m.eng.Resize(m.now(), m.viewport())

	case tickMsg:
		m.ticking = false
		now := time.Time(msg)
		m.eng.Tick(now)
		m.layouts.Tick(context.Background(), now)
		m.loop.Flush(now)

	case imageMsg:
		m.images.Deliver(render.Result(msg))
		cmd = waitImage(m.images)

	case exportDoneMsg:
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
		} else {
			m.successMessage = "exported " + msg.path
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.KeyMsg:
		var quit bool
		cmd, quit = m.handleKey(msg)
		if quit {
			m.layouts.Flush(context.Background())
			return m, tea.Quit
		}
	}
	return m, tea.Batch(cmd, m.schedule())
}

// viewport is the drawable area in pixels; the last row is the status line.
func (m *Model) viewport() geom.Size {
	rows := max(m.height-1, 1)
	return geom.Size{Width: float64(max(m.width, 1)) * charWidth, Height: float64(rows) * charHeight}
}

func cellCentre(x, y int) geom.Point {
	return geom.Point{X: (float64(x) + 0.5) * charWidth, Y: (float64(y) + 0.5) * charHeight}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	now := m.now()
	if msg.Y >= m.height-1 {
		m.eng.PointerLeave(now)
		return
	}
	p := cellCentre(msg.X, msg.Y)
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.eng.Wheel(now, p, -wheelStep)
	case msg.Button == tea.MouseButtonWheelDown:
		m.eng.Wheel(now, p, wheelStep)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.clearMessages()
		m.eng.PointerDown(now, p)
	case msg.Action == tea.MouseActionMotion:
		m.eng.PointerMove(now, p)
	case msg.Action == tea.MouseActionRelease:
		m.eng.PointerUp(now, p)
	}
}

func (m *Model) clearMessages() {
	m.errorMessage = ""
	m.successMessage = ""
}

// target is the node keyboard commands act on.
func (m *Model) target() catalog.NodeID {
	if id := m.eng.Selected(); id != catalog.NoNode {
		return id
	}
	return m.eng.Hovered()
}

func (m *Model) toggleCategory(digit string) {
	var i int
	fmt.Sscanf(digit, "%d", &i)
	cats := m.eng.Catalog().Categories()
	if i < 1 || i > len(cats) {
		return
	}
	if err := m.eng.ToggleCategory(m.now(), cats[i-1].ID); err != nil {
		m.errorMessage = err.Error()
	}
}

func (m *Model) startMove() {
	id := m.target()
	if id == catalog.NoNode {
		m.errorMessage = "hover or focus a node first"
		return
	}
	m.mode = ModeMove
	m.moveID = id
	m.moveBefore = m.eng.Layout()
}

func (m *Model) finishMove() {
	after := m.eng.Layout()
	m.history.record(ActionMoveNode, LayoutData{Layout: after}, LayoutData{Layout: m.moveBefore})
	m.mode = ModeBrowse
	m.moveID = catalog.NoNode
	m.moveBefore = nil
}

func (m *Model) cancelMove() {
	if m.moveBefore != nil {
		if err := m.eng.SetLayout(m.moveBefore); err != nil {
			m.errorMessage = err.Error()
		}
	}
	m.mode = ModeBrowse
	m.moveID = catalog.NoNode
	m.moveBefore = nil
}
