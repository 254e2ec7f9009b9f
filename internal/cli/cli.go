// Package cli implements the portmaint command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/portmaint/portmaint/internal/config"
	"github.com/portmaint/portmaint/pkg/buildinfo"
	"github.com/portmaint/portmaint/pkg/cache"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "portmaint"

	// scanTTL is how long a cached full-tree scan stays valid.
	scanTTL = time.Hour
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
	Config *config.Config
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		configPath string
		noColour   bool
	)

	root := &cobra.Command{
		Use:          "portmaint",
		Short:        "Portmaint tracks who maintains Gentoo packages",
		Long:         `Portmaint is a maintainer's toolbox for a Portage tree: it classifies packages as officially maintained, proxy-maintained or orphaned, reports on proxy maintainers and their packages, suggests assignees for unassigned bugs, audits FILESDIR references in ebuilds, and probes TCP services on remote hosts.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if noColour {
				lipgloss.SetColorProfile(termenv.Ascii)
			}
			return c.loadConfig(configPath)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: XDG config directory)")
	root.PersistentFlags().BoolVar(&noColour, "nocolour", false, "disable coloured output")

	// Register all subcommands
	root.AddCommand(c.bugsCommand())
	root.AddCommand(c.filesCommand())
	root.AddCommand(c.proxyCommand())
	root.AddCommand(c.portCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration file, falling back to the XDG default
// location when no explicit path was given.
func (c *CLI) loadConfig(path string) error {
	if path == "" {
		p, err := config.Path(appName)
		if err != nil {
			return err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache builds the scan cache selected by configuration. When the file
// cache directory cannot be determined the null cache is used silently;
// a configured redis backend that cannot be reached is an error.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Backend == "none" {
		return cache.NewNullCache(), nil
	}
	if c.Config.Cache.Backend == "redis" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Config.Cache.Redis.Addr,
			Password: c.Config.Cache.Redis.Password,
			DB:       c.Config.Cache.Redis.DB,
		})
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

// cacheDir returns the cache directory using XDG standard (~/.cache/portmaint/).
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

// portDir resolves the tree root: an explicit flag wins over the config
// file, the config file over the built-in default.
func (c *CLI) portDir(flag string) string {
	if flag != "" {
		return flag
	}
	return c.Config.PortDir
}
