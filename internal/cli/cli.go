// Package cli implements the mindgeo command-line interface.
//
// Commands read and write snapshots as JSON files ("-" selects stdin and
// stdout) and run them through a [pipeline.Runner]:
//   - layout: arrange a tree
//   - drop: resolve a drag-and-drop
//   - place: find a free spot for a new node
//   - edges: re-resolve edge sides
//   - import: turn a bulleted outline into nodes
//   - serve: run the HTTP API
//   - cache, config: housekeeping
//
// Settings come from the TOML file described in package config; flags
// override it. Loggers travel through context.Context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindgeo/pkg/buildinfo"
	"github.com/matzehuels/mindgeo/pkg/cache"
	"github.com/matzehuels/mindgeo/pkg/config"
	"github.com/matzehuels/mindgeo/pkg/graph"
	"github.com/matzehuels/mindgeo/pkg/layout"
	"github.com/matzehuels/mindgeo/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "mindgeo"

	// stdio is the path that selects stdin or stdout.
	stdio = "-"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and built-in
// settings. The config file is read when a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "mindgeo computes mind-map geometry",
		Long:         `mindgeo is the geometry engine behind a mind-map canvas: it lays out trees, resolves drag-and-drop containment, finds free space for new nodes and keeps edge anchors facing the right way.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/mindgeo/config.toml)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.dropCommand())
	root.AddCommand(c.placeCommand())
	root.AddCommand(c.edgesCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the file named by --config, or the default location.
func (c *CLI) loadConfig() error {
	var (
		cfg  config.Config
		path string
		err  error
	)
	if c.configPath != "" {
		path = c.configPath
		cfg, err = config.Load(path)
	} else {
		cfg, path, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", path, "cache", cfg.Cache.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(store, nil, c.Logger)
	if ttl := c.Config.Cache.TTL.Duration; ttl > 0 {
		r.LayoutTTL = ttl
	}
	return r, nil
}

// newCache opens the configured backend. A file cache whose directory
// cannot be determined falls back to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.Config.Cache
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case config.BackendMongo:
		return cache.NewMongoCache(ctx, cache.MongoConfig{
			URI:      cfg.MongoURI,
			Database: cfg.MongoDatabase,
		})
	default:
		dir, err := c.cacheDir()
		if err != nil {
			c.Logger.Warn("cache disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// cacheDir returns the file cache directory.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return config.CacheDir()
}

// =============================================================================
// Snapshot I/O
// =============================================================================

// readSnapshot loads a snapshot from path, or stdin for "-".
func readSnapshot(path string) (graph.Snapshot, error) {
	if path == stdio {
		return graph.ReadSnapshot(os.Stdin)
	}
	return graph.ReadSnapshotFile(path)
}

// writeSnapshot stores snap at path, or prints it for "-".
func writeSnapshot(snap graph.Snapshot, path string) error {
	if path == stdio {
		return graph.WriteSnapshot(snap, os.Stdout)
	}
	return graph.WriteSnapshotFile(snap, path)
}

// outputPath returns the explicit output or <input>.<suffix>.json.
// Reading from stdin writes to stdout unless told otherwise.
func outputPath(input, output, suffix string) string {
	if output != "" {
		return output
	}
	if input == stdio {
		return stdio
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "." + suffix + ".json"
}

// prepareOutput routes status lines to stderr when the result goes to stdout.
func prepareOutput(path string) {
	if path == stdio {
		uiOut = os.Stderr
	}
}

// reportWarnings prints engine warnings.
func reportWarnings(ws []pipeline.Warning) {
	for _, w := range ws {
		printWarning("%s", w.String())
	}
}

// =============================================================================
// Options Helpers
// =============================================================================

// baseOptions returns pipeline options seeded from the config file.
func (c *CLI) baseOptions() pipeline.Options {
	return pipeline.Options{
		Layout:    c.Config.Layout,
		Spacing:   c.Config.Placement.Spacing,
		MaxProbes: c.Config.Placement.MaxProbes,
		Logger:    c.Logger,
	}
}

// layoutFlags holds flags that override [layout.Options] from the config.
type layoutFlags struct {
	mode             string
	horizontalOffset float64
	rootSpacing      float64
	childSpacing     float64
	verticalGap      float64
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "", "layout mode: horizontal (default), vertical, radial")
	cmd.Flags().Float64Var(&f.horizontalOffset, "horizontal-offset", 0, "distance between a node and its side children")
	cmd.Flags().Float64Var(&f.rootSpacing, "root-spacing", 0, "spacing of the root's children")
	cmd.Flags().Float64Var(&f.childSpacing, "child-spacing", 0, "spacing of deeper children")
	cmd.Flags().Float64Var(&f.verticalGap, "vertical-gap", 0, "gap between stacked rows")
	_ = cmd.RegisterFlagCompletionFunc("mode", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"horizontal", "vertical", "radial"}, cobra.ShellCompDirectiveNoFileComp
	})
}

// apply overrides opts with every flag the user set.
func (f *layoutFlags) apply(cmd *cobra.Command, opts *pipeline.Options) error {
	flags := cmd.Flags()
	if flags.Changed("mode") {
		mode, err := layout.ParseMode(f.mode)
		if err != nil {
			return err
		}
		opts.Layout.Mode = mode
	}
	if flags.Changed("horizontal-offset") {
		opts.Layout.HorizontalOffset = f.horizontalOffset
	}
	if flags.Changed("root-spacing") {
		opts.Layout.RootSpacing = f.rootSpacing
	}
	if flags.Changed("child-spacing") {
		opts.Layout.ChildSpacing = f.childSpacing
	}
	if flags.Changed("vertical-gap") {
		opts.Layout.VerticalGap = f.verticalGap
	}
	return nil
}

// formatPoint renders a point for status output.
func formatPoint(x, y float64) string {
	return fmt.Sprintf("(%g, %g)", x, y)
}
