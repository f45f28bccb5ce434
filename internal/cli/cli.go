// Package cli implements the factoryfloor command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/factoryfloor/pkg/buildinfo"
	"github.com/matzehuels/factoryfloor/pkg/cache"
	"github.com/matzehuels/factoryfloor/pkg/config"
	"github.com/matzehuels/factoryfloor/pkg/observability"
	"github.com/matzehuels/factoryfloor/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = config.AppName

	// redisDialTimeout bounds the initial Redis connection.
	redisDialTimeout = 2 * time.Second
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

	configPath string
}

// New creates a new CLI instance with a default logger and built-in config.
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
//
// Its PersistentPreRunE loads the config file and applies its log level, so
// callers that adjust the level further must run after it.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Factoryfloor moves stacks of blocks between floor positions",
		Long:         `Factoryfloor runs block-moving scripts against a floor of numbered positions and prints where every block ends up.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			hooks := newLogHooks(c.Logger)
			observability.SetRunHooks(hooks)
			observability.SetCacheHooks(hooks)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/factoryfloor/config.toml)")

	// Register all subcommands
	root.AddCommand(c.runCommand())
	root.AddCommand(c.execCommand())
	root.AddCommand(c.stepCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and applies its log level.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		c.SetLogLevel(level)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	cc, keyer := c.newCache(ctx, noCache)
	return pipeline.NewRunner(cc, keyer, loggerFromContext(ctx))
}

// newCache opens the configured cache backend. A backend that cannot be
// opened is logged and replaced by a NullCache; caching never fails a run.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, cache.Keyer) {
	cfg := c.Config.Cache
	if noCache || cfg.Backend == config.BackendNone {
		return cache.NewNullCache(), nil
	}

	switch cfg.Backend {
	case config.BackendRedis:
		s := newSpinnerWithContext(ctx, os.Stderr, fmt.Sprintf("Connecting to Redis at %s...", cfg.Redis.Addr))
		s.Start()
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:        cfg.Redis.Addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			DialTimeout: redisDialTimeout,
		})
		s.Stop()
		if err != nil {
			c.Logger.Warn("caching disabled", "backend", cfg.Backend, "err", err)
			return cache.NewNullCache(), nil
		}
		return rc, cache.NewScopedKeyer(nil, cfg.Redis.Prefix)

	default:
		fc, err := c.fileCache()
		if err != nil {
			c.Logger.Warn("caching disabled", "backend", cfg.Backend, "err", err)
			return cache.NewNullCache(), nil
		}
		return fc, nil
	}
}

// fileCache opens the file cache in the configured directory.
func (c *CLI) fileCache() (*cache.FileCache, error) {
	dir, err := c.Config.CacheDir()
	if err != nil {
		return nil, fmt.Errorf("get cache dir: %w", err)
	}
	return cache.NewFileCache(dir)
}
