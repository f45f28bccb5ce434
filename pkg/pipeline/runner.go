package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/factoryfloor/pkg/cache"
	"github.com/matzehuels/factoryfloor/pkg/command"
	"github.com/matzehuels/factoryfloor/pkg/floor"
	"github.com/matzehuels/factoryfloor/pkg/observability"
)

const keyTypeRun = "run"

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → run → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	script, err := command.ParseString(opts.Script)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return r.ExecuteScript(ctx, script, opts)
}

// ExecuteScript is Execute for an already parsed script.
func (r *Runner) ExecuteScript(ctx context.Context, script *command.Script, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{ID: uuid.NewString()}
	size := opts.ResolveSize(script)
	logger := opts.Logger.With("run", result.ID[:8])

	start := time.Now()
	f, stats, hit, err := r.RunWithCacheInfo(ctx, size, script, opts)
	result.Stats = Stats{
		Size:     size,
		Commands: len(script.Commands),
		Applied:  stats.Applied,
		Ignored:  stats.Ignored,
		Duration: time.Since(start),
	}
	if err != nil {
		logger.Debug("run failed", "size", size, "applied", stats.Applied, "err", err)
		return nil, fmt.Errorf("run: %w", err)
	}
	result.Floor = f
	result.CacheHit = hit
	result.Output = Render(f, opts)

	logger.Info("ran script",
		"size", size,
		"commands", result.Stats.Commands,
		"applied", result.Stats.Applied,
		"ignored", result.Stats.Ignored,
		"cached", hit,
		"duration", result.Stats.Duration)

	return result, nil
}

// RunWithCacheInfo returns the floor produced by running script on a floor
// of the given size, from the cache when possible.
func (r *Runner) RunWithCacheInfo(ctx context.Context, size int, script *command.Script, opts Options) (*floor.Floor, command.RunStats, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, command.RunStats{}, false, err
	}
	cacheHooks := observability.Cache()
	cacheKey := r.Keyer.RunKey(size, canonical(script))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, cacheKey)
		if err != nil {
			opts.Logger.Warn("cache lookup failed", "err", err)
		}
		if err == nil && hit {
			f, stats, err := unmarshalEntry(data)
			if err == nil {
				cacheHooks.OnCacheHit(ctx, keyTypeRun)
				return f, stats, true, nil
			}
			// A corrupt entry is recomputed and overwritten.
			opts.Logger.Debug("discarding cached run", "key", cacheKey, "err", err)
		}
		cacheHooks.OnCacheMiss(ctx, keyTypeRun)
	}

	runHooks := observability.Run()
	runHooks.OnRunStart(ctx, size, len(script.Commands))
	start := time.Now()
	f, stats, err := Run(ctx, size, script)
	runHooks.OnRunComplete(ctx, stats.Applied, stats.Ignored, time.Since(start), err)
	if err != nil {
		return nil, stats, false, err
	}

	if data, err := marshalEntry(f, stats); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, opts.TTL); err != nil {
			opts.Logger.Warn("cache store failed", "err", err)
		} else {
			cacheHooks.OnCacheSet(ctx, keyTypeRun, len(data))
		}
	}

	return f, stats, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
