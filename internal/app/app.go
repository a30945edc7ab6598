// Package app wires configuration, catalog, layout cache and engine
// together for the interactive gallery and the CLI commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"xarxa/internal/catalog"
	"xarxa/internal/config"
	"xarxa/internal/frame"
	"xarxa/internal/interact"
	"xarxa/internal/render"
	"xarxa/internal/store"
)

type App struct {
	Config  *config.Config
	Catalog *catalog.Catalog
	Layouts *store.LayoutStore
	Log     *slog.Logger

	layout catalog.Layout
	db     *store.DB
}

// Open loads the catalog and the saved layout described by cfg.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	a := &App{Config: cfg, Log: log}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	a.Catalog = cat

	var kv store.KV = store.NewMemory()
	if cfg.Cache.Enabled {
		db, err := store.Open(cfg.Cache.Path)
		if err != nil {
			log.Warn("layout cache unavailable, edits will not persist", "path", cfg.Cache.Path, "err", err)
		} else {
			a.db = db
			kv = db
		}
	}
	a.Layouts = store.NewLayoutStore(kv, log)

	if cfg.Layout.Randomize {
		seed := cfg.Layout.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		a.layout = catalog.RandomLayout(cat.Len(), rand.New(rand.NewSource(seed)))
		log.Info("layout randomized", "seed", seed)
	} else {
		a.layout = a.Layouts.Load(ctx, cat.DefaultLayout())
	}
	return a, nil
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.File == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(cfg.Catalog.File)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", cfg.Catalog.File, err)
	}
	return cat, nil
}

// Layout is the starting layout for new engines.
func (a *App) Layout() catalog.Layout { return a.layout.Clone() }

// Engine builds an interaction engine over the app's catalog and layout.
// Layout edits are saved through the layout cache.
func (a *App) Engine(loop *frame.Loop) *interact.Engine {
	eng := interact.New(a.Catalog, a.layout, loop, interact.Options{
		Baseline:         a.Config.View.Baseline,
		WheelSensitivity: a.Config.View.WheelSensitivity,
		Logger:           a.Log,
	})
	eng.OnLayoutChange(func(l catalog.Layout) {
		a.layout = l.Clone()
		a.Layouts.Schedule(time.Now(), l)
	})
	return eng
}

func (a *App) Images() *render.ImageCache {
	return render.NewImageCache(a.Catalog, a.Config.ImagePath, a.Log)
}

// Close writes any pending layout and releases the cache.
func (a *App) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	a.Layouts.Flush(ctx)
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// ResetLayout forgets the saved layout.
func (a *App) ResetLayout(ctx context.Context) error {
	a.layout = a.Catalog.DefaultLayout()
	if err := a.Layouts.Reset(ctx); err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	return nil
}

// ShuffleLayout saves a random layout.
func (a *App) ShuffleLayout(ctx context.Context, seed int64) (catalog.Layout, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	l := catalog.RandomLayout(a.Catalog.Len(), rand.New(rand.NewSource(seed)))
	if err := a.Layouts.Save(ctx, l); err != nil {
		return nil, err
	}
	a.layout = l
	return l.Clone(), nil
}
