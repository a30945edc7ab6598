package app

import (
	"context"
	"fmt"
	"time"

	"xarxa/internal/catalog"
	"xarxa/internal/frame"
	"xarxa/internal/geom"
	"xarxa/internal/interact"
	"xarxa/internal/render"
)

// ExportOptions selects what a still frame shows.
type ExportOptions struct {
	Width, Height int
	PixelRatio    float64
	Focus         catalog.NodeID
	Category      string
	Scale         float64
	// View is a framing taken at viewport ViewSize. Its pan is rescaled to
	// the export size. It takes precedence over Scale and is ignored when
	// Focus is set.
	View     *geom.Transform
	ViewSize geom.Size
	// Layout overrides the app layout when set.
	Layout catalog.Layout
}

// Export renders one settled frame as PNG to path.
func (a *App) Export(ctx context.Context, path string, opts ExportOptions) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = a.Config.Export.Width, a.Config.Export.Height
	}
	if opts.PixelRatio <= 0 {
		opts.PixelRatio = a.Config.View.PixelRatio
	}

	images := a.Images()
	if err := images.LoadAll(ctx); err != nil {
		return fmt.Errorf("loading thumbnails: %w", err)
	}

	layout := opts.Layout
	if layout == nil {
		layout = a.layout
	}
	now := time.Now()
	loop := frame.NewLoop()
	eng := interact.New(a.Catalog, layout, loop, interact.Options{
		Baseline:         a.Config.View.Baseline,
		WheelSensitivity: a.Config.View.WheelSensitivity,
		Logger:           a.Log,
	})
	eng.Resize(now, geom.Size{Width: float64(opts.Width), Height: float64(opts.Height)})

	if opts.Category != "" {
		if err := eng.SetCategory(now, opts.Category); err != nil {
			return err
		}
	}
	switch {
	case opts.View != nil:
		eng.Restore(now, rescaleView(*opts.View, opts.ViewSize, eng.Size()))
	case opts.Scale > 0:
		eng.ZoomBy(now, opts.Scale/eng.Scale())
	}
	if opts.Focus != catalog.NoNode {
		if err := eng.FocusNode(now, opts.Focus); err != nil {
			return err
		}
	}
	// settle any transition so the frame shows the final framing
	now = now.Add(interact.SettleDelay)
	eng.Tick(now)
	loop.Flush(now)

	surface, err := render.NewGGSurface(opts.Width, opts.Height, opts.PixelRatio)
	if err != nil {
		return err
	}
	r := render.NewRenderer(surface, images, loop, eng.View, render.Options{
		ZoomLabel:  true,
		PixelRatio: opts.PixelRatio,
		Logger:     a.Log,
	})
	r.Paint(now, eng.View())

	if err := surface.SavePNG(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	a.Log.Info("frame exported", "path", path, "width", opts.Width, "height", opts.Height)
	return nil
}

// rescaleView maps a transform taken at viewport from onto viewport to.
// World coordinates are proportional to the viewport, so only the pan
// changes.
func rescaleView(tr geom.Transform, from, to geom.Size) geom.Transform {
	if from.Empty() || to.Empty() {
		return tr
	}
	return geom.Transform{
		Pan: geom.Offset{
			X: tr.Pan.X * to.Width / from.Width,
			Y: tr.Pan.Y * to.Height / from.Height,
		},
		Scale: tr.Scale,
	}
}
