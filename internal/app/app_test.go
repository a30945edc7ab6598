package app

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xarxa/internal/catalog"
	"xarxa/internal/config"
	"xarxa/internal/frame"
	"xarxa/internal/geom"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg := config.Default()
	dir := t.TempDir()
	cfg.Cache.Path = filepath.Join(dir, "cache.db")
	cfg.Images.Root = filepath.Join(dir, "images")
	cfg.Export.Directory = dir
	return cfg
}

func TestOpenUsesDefaultLayout(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Enabled = false
	a, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, 45, a.Catalog.Len())
	assert.Equal(t, a.Catalog.DefaultLayout(), a.Layout())
}

func TestOpenRandomizedIsSeeded(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Enabled = false
	cfg.Layout.Randomize = true
	cfg.Layout.Seed = 7

	a, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	b, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, a.Layout(), b.Layout())
	assert.NotEqual(t, a.Catalog.DefaultLayout(), a.Layout())
}

func TestOpenBadCatalog(t *testing.T) {
	cfg := testConfig(t)
	cfg.Catalog.File = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := Open(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestLayoutEditsPersist(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	a, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	eng := a.Engine(frame.NewLoop())
	require.NoError(t, eng.MoveNode(27, geom.Percent{X: 5, Y: -5}))
	assert.True(t, a.Layouts.Pending())
	require.NoError(t, a.Close())

	b, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	defer b.Close()
	pos, ok := b.Catalog.Position(b.Layout(), 27)
	require.True(t, ok)
	assert.Equal(t, geom.Percent{X: 20, Y: 21}, pos)

	require.NoError(t, b.ResetLayout(ctx))
	assert.Equal(t, b.Catalog.DefaultLayout(), b.Layout())
	_, err = b.Layouts.Saved(ctx)
	assert.Error(t, err)
}

func TestShuffleLayout(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Cache.Enabled = false
	a, err := Open(ctx, cfg, nil)
	require.NoError(t, err)

	l, err := a.ShuffleLayout(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, l, a.Catalog.Len())
	assert.Equal(t, l, a.Layout())

	saved, err := a.Layouts.Saved(ctx)
	require.NoError(t, err)
	assert.Equal(t, l, saved)
}

func TestExportWritesPNG(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Cache.Enabled = false
	a, err := Open(ctx, cfg, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "frame.png")
	err = a.Export(ctx, path, ExportOptions{
		Width:      320,
		Height:     200,
		PixelRatio: 2,
		Focus:      27,
	})
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())
}

func TestExportRejectsUnknownFocus(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Enabled = false
	a, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)

	err = a.Export(context.Background(), filepath.Join(t.TempDir(), "x.png"), ExportOptions{Focus: 999})
	assert.ErrorIs(t, err, catalog.ErrUnknownNode)

	err = a.Export(context.Background(), filepath.Join(t.TempDir(), "x.png"), ExportOptions{Category: "nope"})
	assert.ErrorIs(t, err, catalog.ErrUnknownCategory)
}

func TestRescaleView(t *testing.T) {
	tr := geom.Transform{Pan: geom.Offset{X: -120, Y: 64}, Scale: 1.25}
	got := rescaleView(tr, geom.Size{Width: 960, Height: 640}, geom.Size{Width: 320, Height: 200})
	assert.Equal(t, geom.Transform{Pan: geom.Offset{X: -40, Y: 20}, Scale: 1.25}, got)
	assert.Equal(t, tr, rescaleView(tr, geom.Size{}, geom.Size{Width: 320, Height: 200}))
}

func TestExportKeepsViewFraming(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Cache.Enabled = false
	a, err := Open(ctx, cfg, nil)
	require.NoError(t, err)

	dir := t.TempDir()
	export := func(name string, opts ExportOptions) []byte {
		t.Helper()
		opts.Width, opts.Height, opts.PixelRatio = 320, 200, 1
		path := filepath.Join(dir, name)
		require.NoError(t, a.Export(ctx, path, opts))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		return data
	}

	// a 1.25 zoom about the centre of a 960x640 viewport
	viewSize := geom.Size{Width: 960, Height: 640}
	centred := export("centred.png", ExportOptions{
		View:     &geom.Transform{Pan: geom.Offset{X: -120, Y: -80}, Scale: 1.25},
		ViewSize: viewSize,
	})
	zoomed := export("zoomed.png", ExportOptions{Scale: 1.25})
	assert.Equal(t, zoomed, centred)

	panned := export("panned.png", ExportOptions{
		View:     &geom.Transform{Pan: geom.Offset{X: 200, Y: 0}, Scale: 1.25},
		ViewSize: viewSize,
	})
	assert.NotEqual(t, centred, panned)
}
