package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"xarxa/internal/app"
	"xarxa/internal/catalog"
)

const exportTimeout = 30 * time.Second

func exportName(ext string, now time.Time) string {
	return "xarxa-" + now.Format("20060102-150405") + ext
}

// exportOptions describes the frame on screen: the focused node, or else
// the current pan and zoom.
func (m *Model) exportOptions() app.ExportOptions {
	opts := app.ExportOptions{
		PixelRatio: m.app.Config.View.PixelRatio,
		Focus:      m.eng.Selected(),
		Category:   m.eng.ActiveCategory(),
		Layout:     m.eng.Layout(),
	}
	if m.eng.Selected() == catalog.NoNode {
		tr := m.eng.Transform()
		opts.View = &tr
		opts.ViewSize = m.eng.Size()
	}
	return opts
}

// exportPNG renders the frame on screen off the event loop.
func (m *Model) exportPNG() tea.Cmd {
	path := m.app.Config.ExportPath(exportName(".png", m.now()))
	opts := m.exportOptions()
	a := m.app
	m.successMessage = "exporting..."
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()
		return exportDoneMsg{path: path, err: a.Export(ctx, path, opts)}
	}
}

// exportVisualTXT writes the grid exactly as it appears, without colour.
func (m *Model) exportVisualTXT() {
	filename := m.app.Config.ExportPath(exportName(".txt", m.now()))
	file, err := os.Create(filename)
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	defer file.Close()

	for _, line := range m.grid.Plain() {
		fmt.Fprintln(file, line)
	}
	m.successMessage = "exported " + filename
}

func (m *Model) copyImagePath() {
	id := m.target()
	n, ok := m.eng.Catalog().Lookup(id)
	if !ok {
		m.errorMessage = "hover or focus a node first"
		return
	}
	path := m.app.Config.ImagePath(n.ImageRef)
	if err := clipboard.WriteAll(path); err != nil {
		m.errorMessage = "clipboard: " + err.Error()
		return
	}
	m.successMessage = "copied " + path
}
