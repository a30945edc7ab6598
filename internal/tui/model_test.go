package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xarxa/internal/app"
	"xarxa/internal/catalog"
	"xarxa/internal/config"
	"xarxa/internal/geom"
	"xarxa/internal/interact"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	m     Model
	clock time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg := config.Default()
	cfg.Cache.Enabled = false
	cfg.Images.Root = t.TempDir()
	cfg.Export.Directory = t.TempDir()
	cfg.View.Float = false

	a, err := app.Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	h := &harness{clock: t0}
	h.m = New(a)
	h.m.now = func() time.Time { return h.clock }
	h.send(tea.WindowSizeMsg{Width: 120, Height: 41})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

// frame advances the clock and delivers a tick.
func (h *harness) frame(d time.Duration) {
	h.clock = h.clock.Add(d)
	h.send(tickMsg(h.clock))
}

func (h *harness) key(s string) {
	var msg tea.KeyMsg
	switch s {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEscape}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+r":
		msg = tea.KeyMsg{Type: tea.KeyCtrlR}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	h.send(msg)
}

// cellOf is the terminal cell showing node id.
func (h *harness) cellOf(t *testing.T, id catalog.NodeID) (int, int) {
	t.Helper()
	eng := h.m.eng
	pos, ok := eng.Catalog().Position(eng.Layout(), id)
	require.True(t, ok)
	p := eng.Transform().ToScreen(geom.NodePixel(pos, eng.Size()))
	return int(p.X / charWidth), int(p.Y / charHeight)
}

func (h *harness) click(x, y int) {
	h.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	h.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
}

func TestWindowSizeSetsViewport(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, geom.Size{Width: 960, Height: 640}, h.m.eng.Size())
}

func TestClickFocusesNode(t *testing.T) {
	h := newHarness(t)
	x, y := h.cellOf(t, 27)
	h.click(x, y)

	assert.Equal(t, catalog.NodeID(27), h.m.eng.Selected())
	assert.Equal(t, geom.FocusedScale, h.m.eng.Scale())
	assert.Contains(t, h.m.View(), "#27")

	h.frame(interact.SettleDelay)
	assert.Equal(t, interact.Focused, h.m.eng.Phase())

	h.key("esc")
	assert.Equal(t, catalog.NoNode, h.m.eng.Selected())
}

func TestDragPans(t *testing.T) {
	h := newHarness(t)
	h.send(tea.MouseMsg{X: 60, Y: 20, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	h.send(tea.MouseMsg{X: 65, Y: 20, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	h.send(tea.MouseMsg{X: 65, Y: 20, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
	assert.Equal(t, geom.Offset{X: 40}, h.m.eng.Pan())
	assert.Equal(t, catalog.NoNode, h.m.eng.Selected())
}

func TestWheelZooms(t *testing.T) {
	h := newHarness(t)
	h.send(tea.MouseMsg{X: 60, Y: 20, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	h.frame(16 * time.Millisecond)
	assert.InDelta(t, 1.2, h.m.eng.Scale(), 1e-9)
	assert.Contains(t, h.m.View(), "120%")
}

func TestTickOnlyWhileBusy(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.m.ticking, "resize queues a draw")
	for i := 0; h.m.ticking && i < 10; i++ {
		h.frame(16 * time.Millisecond)
	}
	assert.False(t, h.m.ticking)
	assert.Nil(t, h.m.schedule(), "idle model does not tick")

	cmd := h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+")})
	assert.NotNil(t, cmd)
	assert.True(t, h.m.ticking)
}

func TestKeyboardPanAndZoom(t *testing.T) {
	h := newHarness(t)
	h.key("right")
	assert.Equal(t, geom.Offset{X: -50}, h.m.eng.Pan())
	h.key("L")
	assert.Equal(t, geom.Offset{X: -150}, h.m.eng.Pan())

	h.key("+")
	assert.InDelta(t, 1.25, h.m.eng.Scale(), 1e-9)
	h.key("0")
	assert.Equal(t, 1.0, h.m.eng.Scale())
	assert.Equal(t, geom.Offset{}, h.m.eng.Pan())
}

func TestCategoryKeys(t *testing.T) {
	h := newHarness(t)
	h.key("2")
	assert.Equal(t, "ia", h.m.eng.ActiveCategory())
	h.key("2")
	assert.Equal(t, "", h.m.eng.ActiveCategory())
	h.key("9")
	assert.Equal(t, "", h.m.eng.ActiveCategory())
}

func TestMoveNodeWithUndo(t *testing.T) {
	h := newHarness(t)
	before := h.m.eng.Layout()

	h.key("m")
	assert.NotEmpty(t, h.m.errorMessage, "nothing hovered")
	assert.Equal(t, ModeBrowse, h.m.mode)

	x, y := h.cellOf(t, 27)
	h.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	h.frame(16 * time.Millisecond)
	require.Equal(t, catalog.NodeID(27), h.m.eng.Hovered())

	h.key("m")
	require.Equal(t, ModeMove, h.m.mode)
	h.key("right")
	h.key("right")
	h.key("enter")
	assert.Equal(t, ModeBrowse, h.m.mode)

	moved, _ := h.m.eng.Catalog().Position(h.m.eng.Layout(), 27)
	orig, _ := h.m.eng.Catalog().Position(before, 27)
	assert.InDelta(t, orig.X+2, moved.X, 1e-9)
	assert.True(t, h.m.layouts.Pending(), "edit is queued for saving")

	h.key("u")
	assert.Equal(t, before, h.m.eng.Layout())
	h.key("ctrl+r")
	again, _ := h.m.eng.Catalog().Position(h.m.eng.Layout(), 27)
	assert.Equal(t, moved, again)
}

func TestMoveCancel(t *testing.T) {
	h := newHarness(t)
	before := h.m.eng.Layout()
	x, y := h.cellOf(t, 27)
	h.click(x, y)

	h.key("m")
	h.key("right")
	h.key("esc")
	assert.Equal(t, before, h.m.eng.Layout())
	assert.Empty(t, h.m.history.undoStack)
}

func TestHelpToggle(t *testing.T) {
	h := newHarness(t)
	h.key("?")
	assert.True(t, h.m.help)
	assert.Contains(t, h.m.View(), "xarxa help")
	assert.Contains(t, h.m.View(), "Contraimatges")
	h.key("?")
	assert.False(t, h.m.help)
}

func TestExportVisualTXT(t *testing.T) {
	h := newHarness(t)
	h.frame(16 * time.Millisecond)
	h.key("S")
	require.Empty(t, h.m.errorMessage)

	path := strings.TrimPrefix(h.m.successMessage, "exported ")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, h.m.app.Config.Export.Directory, filepath.Dir(path))
	assert.Len(t, strings.Split(strings.TrimRight(string(data), "\n"), "\n"), 40)
}

func TestQuitFlushesLayout(t *testing.T) {
	h := newHarness(t)
	x, y := h.cellOf(t, 27)
	h.click(x, y)
	h.key("m")
	h.key("right")
	h.key("enter")
	require.True(t, h.m.layouts.Pending())

	cmd := h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.False(t, h.m.layouts.Pending())
	saved, err := h.m.layouts.Saved(context.Background())
	require.NoError(t, err)
	assert.Equal(t, h.m.eng.Layout(), saved)
}

func TestExportOptionsFollowView(t *testing.T) {
	h := newHarness(t)
	h.key("right")
	h.key("+")

	opts := h.m.exportOptions()
	require.NotNil(t, opts.View)
	assert.Equal(t, h.m.eng.Transform(), *opts.View)
	assert.Equal(t, geom.Size{Width: 960, Height: 640}, opts.ViewSize)
	assert.Equal(t, catalog.NoNode, opts.Focus)

	h.key("0")
	x, y := h.cellOf(t, 27)
	h.click(x, y)
	opts = h.m.exportOptions()
	assert.Nil(t, opts.View)
	assert.Equal(t, catalog.NodeID(27), opts.Focus)
}
