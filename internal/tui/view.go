package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"xarxa/internal/catalog"
	"xarxa/internal/interact"
)

func (m Model) View() string {
	if m.help {
		return m.helpView()
	}
	lines := m.grid.Lines()
	rows := max(m.height-1, 1)
	if len(lines) > rows {
		lines = lines[:rows]
	}
	return strings.Join(lines, "\n") + "\n" + m.statusLine()
}

func (m Model) statusLine() string {
	v := m.eng.View()
	parts := []string{modeStyle.Render(m.modeString(v))}

	if id := m.focusLabelNode(v); id != catalog.NoNode {
		n, _ := v.Catalog.Lookup(id)
		c, _ := v.Catalog.Category(n.Category)
		parts = append(parts, statusStyle.Render("#"+n.Title), categoryStyle(c.Color).Render(c.Label))
	}
	if v.ActiveCategory != "" {
		c, _ := v.Catalog.Category(v.ActiveCategory)
		parts = append(parts, categoryStyle(c.Color).Render("["+c.Label+"]"))
	}
	if v.ShowZoom() {
		parts = append(parts, zoomStyle.Render(v.ZoomLabel()))
	}

	switch {
	case m.errorMessage != "":
		parts = append(parts, errorStyle.Render(m.errorMessage))
	case m.successMessage != "":
		parts = append(parts, successStyle.Render(m.successMessage))
	default:
		parts = append(parts, helpStyle.Render(m.helpModel.View(keys)))
	}
	return lipgloss.NewStyle().MaxWidth(max(m.width, 1)).Render(strings.Join(parts, " "))
}

func (m Model) modeString(v interact.View) string {
	if m.mode == ModeMove {
		return fmt.Sprintf("MOVE #%d", m.moveID)
	}
	switch v.Phase {
	case interact.Idle:
		return m.mode.String()
	default:
		return strings.ToUpper(v.Phase.String())
	}
}

// focusLabelNode is the node named in the status line.
func (m Model) focusLabelNode(v interact.View) catalog.NodeID {
	switch {
	case v.Selected != catalog.NoNode:
		return v.Selected
	case v.Hovered != catalog.NoNode:
		return v.Hovered
	case v.NearestActive(v.Nearest):
		return v.Nearest
	}
	return catalog.NoNode
}

func (m Model) helpView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("xarxa help"))
	b.WriteString("\n")
	b.WriteString("Click a thumbnail to zoom in on it, click again or press esc to zoom out.\n")
	b.WriteString("Drag to pan, scroll to zoom about the pointer.\n\n")

	hm := m.helpModel
	hm.ShowAll = true
	b.WriteString(hm.View(keys))
	b.WriteString("\n\nCategories:\n")
	for i, c := range m.eng.Catalog().Categories() {
		fmt.Fprintf(&b, "  %d  %s\n", i+1, categoryStyle(c.Color).Render(c.Label))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("press ? or esc to close"))
	return b.String()
}
