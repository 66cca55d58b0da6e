// Package cli implements the vgraph command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/vgraph/pkg/buildinfo"
	"github.com/matzehuels/vgraph/pkg/cache"
	"github.com/matzehuels/vgraph/pkg/config"
	"github.com/matzehuels/vgraph/pkg/registry"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "vgraph"
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
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "vgraph renders node-graph documents",
		Long:         `vgraph renders node-graph editor documents to SVG, PNG, PDF or DOT using per-flavor node and line types, and checks their connections against the flavor's line filter.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.newCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.typesCommand())
	root.AddCommand(c.routeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Registry Factory
// =============================================================================

// newRegistry returns a seeded registry with the flavor file applied.
// An empty path loads the default flavor file, which may be absent.
// The raw file bytes are returned for cache keying.
func (c *CLI) newRegistry(configPath string) (*registry.Registry, []byte, error) {
	reg := registry.NewDefault(registry.WithLogger(c.Logger))

	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return reg, nil, nil
		}
		if _, err := os.Stat(p); err != nil {
			c.Logger.Debug("no flavor file", "path", p)
			return reg, nil, nil
		}
		path = p
	}

	raw, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Apply(reg); err != nil {
		return nil, nil, err
	}
	c.Logger.Debug("loaded flavor file", "path", path, "flavors", len(cfg.Flavors))
	return reg, raw, nil
}

// =============================================================================
// Cache Factory
// =============================================================================

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/vgraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
