package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds xarxa settings.
type Config struct {
	Images  ImagesConfig  `toml:"images"`
	Catalog CatalogConfig `toml:"catalog"`
	Cache   CacheConfig   `toml:"cache"`
	View    ViewConfig    `toml:"view"`
	Layout  LayoutConfig  `toml:"layout"`
	Export  ExportConfig  `toml:"export"`
	Log     LogConfig     `toml:"log"`
}

type ImagesConfig struct {
	// Root is prepended to every node image reference.
	Root string `toml:"root"`
}

type CatalogConfig struct {
	// File is an optional YAML catalog replacing the built-in one.
	File string `toml:"file"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

type ViewConfig struct {
	Baseline         float64 `toml:"baseline"`
	WheelSensitivity float64 `toml:"wheel_sensitivity"`
	PixelRatio       float64 `toml:"pixel_ratio"`
	Float            bool    `toml:"float"`
	// PanStep is the keyboard pan distance in pixels.
	PanStep float64 `toml:"pan_step"`
}

type LayoutConfig struct {
	Randomize bool  `toml:"randomize"`
	Seed      int64 `toml:"seed"` // 0 picks a seed from the clock
}

type ExportConfig struct {
	Directory string `toml:"directory"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
}

type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

func Default() *Config {
	return &Config{
		Cache: CacheConfig{Enabled: true, Path: filepath.Join(ConfigDir(), "cache.db")},
		View: ViewConfig{
			Baseline:         1.0,
			WheelSensitivity: 0.002,
			PixelRatio:       1,
			Float:            true,
			PanStep:          50,
		},
		Export: ExportConfig{Width: 1280, Height: 800},
		Log:    LogConfig{File: filepath.Join(ConfigDir(), "xarxa.log"), Level: "info"},
	}
}

// ConfigDir returns the xarxa config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "xarxa")
}

func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads path, or the default location when path is empty. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = Path()
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.expand()
	return cfg, nil
}

func Save(cfg *Config, path string) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

func (c *Config) expand() {
	c.Images.Root = expandPath(c.Images.Root)
	c.Catalog.File = expandPath(c.Catalog.File)
	c.Cache.Path = expandPath(c.Cache.Path)
	c.Export.Directory = expandPath(c.Export.Directory)
	c.Log.File = expandPath(c.Log.File)
}

func expandPath(p string) string {
	if p == "" {
		return p
	}
	if strings.HasPrefix(p, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if !filepath.IsAbs(p) {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
	}
	return p
}

// ExportPath places filename in the export directory, creating it.
func (c *Config) ExportPath(filename string) string {
	if c.Export.Directory == "" {
		return filename
	}
	os.MkdirAll(c.Export.Directory, 0o755)
	return filepath.Join(c.Export.Directory, filename)
}

// ImagePath resolves a node image reference against the image root.
func (c *Config) ImagePath(ref string) string {
	return filepath.Join(c.Images.Root, filepath.FromSlash(strings.TrimPrefix(ref, "/")))
}
