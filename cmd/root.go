// Package cmd is the xarxa command line: the interactive gallery plus
// export, layout and catalog maintenance commands.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"xarxa/internal/app"
	"xarxa/internal/config"
	"xarxa/internal/logging"
	"xarxa/internal/tui"
)

var version = "0.3.0"

// options are the persistent flags shared by every command.
type options struct {
	configPath  string
	noCache     bool
	imagesDir   string
	catalogFile string
	randomize   bool
	seed        int64
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "xarxa",
		Short: "xarxa, a zoomable network of images",
		Long: Brand.Sprint("xarxa") + " shows a catalog of images as a radial network\n" +
			Subtle.Sprint("Drag to pan, scroll to zoom, click a thumbnail to focus it"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			logFile, err := openLogFile(cfg.Log.File)
			if err != nil {
				return err
			}
			defer logFile.Close()
			log := logging.New(logFile, opts.level(cfg))

			a, err := app.Open(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()
			log.Info("gallery started", "nodes", a.Catalog.Len(), "images", cfg.Images.Root)
			return tui.Run(cmd.Context(), a)
		},
	}
	cmd.SetVersionTemplate("xarxa {{ .Version }}\n")

	f := cmd.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "config file (default "+config.Path()+")")
	f.BoolVar(&opts.noCache, "no-cache", false, "do not read or write the layout cache")
	f.StringVar(&opts.imagesDir, "images", "", "directory holding the thumbnails")
	f.StringVar(&opts.catalogFile, "catalog", "", "YAML catalog to use instead of the built-in one")
	f.BoolVar(&opts.randomize, "randomize", false, "start from a random layout")
	f.Int64Var(&opts.seed, "seed", 0, "seed for --randomize (0 uses the clock)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(
		exportCmd(opts),
		layoutCmd(opts),
		catalogCmd(opts),
		configCmd(opts),
	)
	return cmd
}

// load reads the config file and applies flag overrides.
func (o *options) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if o.noCache {
		cfg.Cache.Enabled = false
	}
	if flags.Changed("images") {
		cfg.Images.Root = o.imagesDir
	}
	if flags.Changed("catalog") {
		cfg.Catalog.File = o.catalogFile
	}
	if o.randomize {
		cfg.Layout.Randomize = true
	}
	if flags.Changed("seed") {
		cfg.Layout.Seed = o.seed
	}
	return cfg, nil
}

func (o *options) level(cfg *config.Config) string {
	if o.verbose {
		return "debug"
	}
	return cfg.Log.Level
}

// logger is the stderr logger of the one-shot commands.
func (o *options) logger() *slog.Logger {
	if o.verbose {
		return logging.New(os.Stderr, "debug")
	}
	return logging.New(os.Stderr, "warn")
}

// openApp loads config and app for a one-shot command.
func (o *options) openApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := o.load(cmd)
	if err != nil {
		return nil, err
	}
	return app.Open(cmd.Context(), cfg, o.logger())
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := tea.LogToFile(path, "xarxa")
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

// Execute runs the command line until ctx is cancelled or the command
// returns.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	err := root.ExecuteContext(ctx)
	if err != nil {
		Bad.Fprintf(root.ErrOrStderr(), "xarxa: %v\n", err)
	}
	return err
}
