// Package cli implements the pardot command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pardot/pkg/buildinfo"
	"github.com/matzehuels/pardot/pkg/cache"
	"github.com/matzehuels/pardot/pkg/config"
	"github.com/matzehuels/pardot/pkg/httputil"
	"github.com/matzehuels/pardot/pkg/integrations/pardot"
	"github.com/matzehuels/pardot/pkg/observability"
	"github.com/matzehuels/pardot/pkg/settings"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Connection retries for shared cache backends.
const (
	cacheConnectAttempts = 3
	cacheConnectDelay    = 250 * time.Millisecond
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

	configPath string
	backend    string
	noCache    bool
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
		Use:   "pardot",
		Short: "Pardot fetches and caches marketing embeds",
		Long: `Pardot is a CLI for the Pardot marketing API. It fetches campaigns, form
embed code, dynamic content and tracking code, caches them, and serves them
as HTML fragments.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/pardot/config.toml)")
	flags.StringVar(&c.backend, "cache", "", "cache backend: file, memory, redis, mongo or none")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable caching")

	root.AddCommand(c.loginCommand())
	root.AddCommand(c.campaignsCommand())
	root.AddCommand(c.formCommand())
	root.AddCommand(c.dynamicContentCommand())
	root.AddCommand(c.trackingCodeCommand())
	root.AddCommand(c.settingsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Client Factory
// =============================================================================

// loadConfig reads the config file and applies command-line overrides.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	switch {
	case c.noCache:
		cfg.Cache.Backend = cache.BackendNone
	case c.backend != "":
		cfg.Cache.Backend = c.backend
	}
	if cfg.Cache.Backend == cache.BackendFile && cfg.Cache.Dir == "" {
		dir, err := cacheDir()
		if err != nil {
			return nil, fmt.Errorf("get cache dir: %w", err)
		}
		cfg.Cache.Dir = dir
	}
	return cfg, cfg.Validate()
}

// session bundles what a command needs to talk to the API.
type session struct {
	cfg    *config.Config
	cache  cache.Cache
	client *pardot.Client
}

func (s *session) Close() error {
	return s.cache.Close()
}

// newSession loads config, opens the cache and builds a client.
func (c *CLI) newSession(ctx context.Context) (*session, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return c.sessionFor(ctx, cfg)
}

// sessionFor opens the cache configured in cfg and builds a client.
// An unreachable cache backend falls back to no caching.
func (c *CLI) sessionFor(ctx context.Context, cfg *config.Config) (*session, error) {
	backend, err := openCache(ctx, cfg.CacheOptions())
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without it", "backend", cfg.Cache.Backend, "err", err)
		backend = cache.NewNullCache()
	}

	client := pardot.NewClient(cfg.Credentials(), backend,
		pardot.WithBaseURL(cfg.API.BaseURL),
		pardot.WithTimeout(cfg.API.Timeout.Duration),
		pardot.WithKeyer(cfg.Keyer()),
		pardot.WithLogger(c.Logger),
		pardot.WithHooks(observability.NewLogHooks(c.Logger)),
	)
	if !client.Enabled() {
		c.Logger.Debug("credentials incomplete, only cached values are available")
	}
	return &session{cfg: cfg, cache: backend, client: client}, nil
}

// openCache opens the backend, retrying briefly while a shared store is
// unreachable.
func openCache(ctx context.Context, opts cache.Options) (cache.Cache, error) {
	var backend cache.Cache
	err := httputil.Retry(ctx, cacheConnectAttempts, cacheConnectDelay, func() error {
		var err error
		backend, err = cache.Open(ctx, opts)
		if errors.Is(err, cache.ErrUnavailable) {
			return httputil.Retryable(err)
		}
		return err
	})
	return backend, err
}

// settingsStore opens the settings file beside the config file.
func (c *CLI) settingsStore() (*settings.FileStore, error) {
	dir, err := c.configDir()
	if err != nil {
		return nil, err
	}
	return settings.NewFileStore(dir)
}

func (c *CLI) configDir() (string, error) {
	if c.configPath != "" {
		return filepath.Dir(c.configPath), nil
	}
	return config.Dir()
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/pardot/).
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
