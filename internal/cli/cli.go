// Package cli implements the frame command-line interface.
//
// The CLI reads YAML netlists, derives their weighted graphs and exports
// them. It is built with cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - check: validate netlists and print their sizes
//   - graph: print the derived graph of one netlist
//   - export: write graph artifacts for one or more netlists
//   - squares: add default squares to modules without rectangles
//   - inspect: browse the nodes of a derived graph interactively
//   - watch: re-export a netlist whenever it changes
//   - serve: run the HTTP API
//   - cache: manage the export cache
//
// # Configuration
//
// Settings are read from frame.toml and FRAME_* environment variables (see
// package config); --config selects another file. Flags override both.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs pipeline and cache events.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/frame/pkg/buildinfo"
	"github.com/matzehuels/frame/pkg/cache"
	"github.com/matzehuels/frame/pkg/config"
	"github.com/matzehuels/frame/pkg/observability"
	"github.com/matzehuels/frame/pkg/pipeline"
	"github.com/matzehuels/frame/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "frame"

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
	Config *config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and configuration.
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
		Use:   appName,
		Short: "frame derives layout graphs from floorplanning netlists",
		Long: `frame reads YAML netlists of rectilinear modules and multi-pin nets,
star-expands the nets into a weighted graph and exports it for graph-based
floorplanning.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if c.verbose {
				observability.Install(observability.NewLogHooks(c.Logger))
			}
			cmd.SetContext(withLogger(ctx, c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ./frame.toml or the user config dir)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.checkCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.squaresCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration and applies its log level; --verbose
// wins over the configured level.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	level := cfg.Log.ParsedLevel()
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, nil, c.Logger), nil
}

// openCache creates the configured cache backend. An unusable cache
// directory degrades to no caching.
func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Type {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		r := c.Config.Cache.Redis
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     r.Addr,
			Password: r.Password,
			DB:       r.DB,
			Prefix:   r.Prefix,
		})
	default:
		dir, err := c.Config.CacheDir()
		if err != nil {
			c.Logger.Warn("cache disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// openStore creates the configured netlist store.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	switch c.Config.Store.Type {
	case config.StoreFile:
		return store.NewFileStore(c.Config.Store.Dir)
	case config.StoreMongo:
		m := c.Config.Store.Mongo
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        m.URI,
			Database:   m.Database,
			Collection: m.Collection,
		})
	default:
		return store.NewMemoryStore(), nil
	}
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}
