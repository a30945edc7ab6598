package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"xarxa/internal/catalog"
	"xarxa/internal/geom"
)

// handleKey reports whether the program should quit.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if m.help {
		switch {
		case key.Matches(msg, keys.Help), key.Matches(msg, keys.Back), msg.String() == "q":
			m.help = false
		}
		return nil, false
	}
	if key.Matches(msg, keys.Quit) && msg.String() == "ctrl+c" {
		return nil, true
	}
	if m.mode == ModeMove {
		return m.handleMoveKey(msg), false
	}
	m.clearMessages()

	now := m.now()
	switch {
	case key.Matches(msg, keys.Quit):
		return nil, true
	case key.Matches(msg, keys.Help):
		m.help = true
	case key.Matches(msg, keys.Up, keys.Down, keys.Left, keys.Right):
		m.handlePan(msg.String())
	case key.Matches(msg, keys.ZoomIn):
		m.eng.ZoomBy(now, zoomStep)
	case key.Matches(msg, keys.ZoomOut):
		m.eng.ZoomBy(now, 1/zoomStep)
	case key.Matches(msg, keys.Reset):
		m.eng.ResetView(now)
	case key.Matches(msg, keys.Focus):
		m.eng.FocusNearest(now)
	case key.Matches(msg, keys.Back):
		if m.eng.Selected() != catalog.NoNode {
			m.eng.ExitFocus(now)
		} else if m.eng.ActiveCategory() != "" {
			m.eng.SetCategory(now, "")
		}
	case key.Matches(msg, keys.Category):
		m.toggleCategory(msg.String())
	case key.Matches(msg, keys.Move):
		m.startMove()
	case key.Matches(msg, keys.Undo):
		m.undo()
	case key.Matches(msg, keys.Redo):
		m.redo()
	case key.Matches(msg, keys.Copy):
		m.copyImagePath()
	case key.Matches(msg, keys.Export):
		return m.exportPNG(), false
	case key.Matches(msg, keys.Dump):
		m.exportVisualTXT()
	}
	return nil, false
}

// handlePan moves the view so content scrolls against the key direction.
func (m *Model) handlePan(k string) {
	step := m.app.Config.View.PanStep * panSpeed(k)
	var dx, dy float64
	switch {
	case key.Matches(keyMsg(k), keys.Left):
		dx = step
	case key.Matches(keyMsg(k), keys.Right):
		dx = -step
	case key.Matches(keyMsg(k), keys.Up):
		dy = step
	case key.Matches(keyMsg(k), keys.Down):
		dy = -step
	}
	m.eng.PanBy(m.now(), dx, dy)
}

func (m *Model) handleMoveKey(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()
	step := moveStep * panSpeed(k)
	var d geom.Percent
	switch {
	case k == "enter":
		m.finishMove()
		m.successMessage = "node moved"
		return nil
	case key.Matches(msg, keys.Back):
		m.cancelMove()
		return nil
	case key.Matches(msg, keys.Left):
		d.X = -step
	case key.Matches(msg, keys.Right):
		d.X = step
	case key.Matches(msg, keys.Up):
		d.Y = -step
	case key.Matches(msg, keys.Down):
		d.Y = step
	default:
		return nil
	}
	if err := m.eng.MoveNode(m.moveID, d); err != nil {
		m.errorMessage = err.Error()
	}
	return nil
}

// keyMsg is a stand-in key press for matching a key name against bindings.
type keyMsg string

func (k keyMsg) String() string { return string(k) }
