// Package pipeline runs block-moving scripts against a fresh floor with
// result caching.
//
// This package implements the parse → run → render pipeline used by every
// CLI command that executes a script. Centralizing it keeps cache keys,
// size resolution and logging identical no matter how a script arrives
// (file, stdin or inline arguments).
//
// # Architecture
//
// A run has three stages:
//
//  1. Parse: read the script text into a [command.Script]
//  2. Run: build a floor of the resolved size and apply every command
//  3. Render: format the final floor as text
//
// The outcome of stage 2 is cached under a key derived from the floor size
// and the canonical command list, so comments and blank lines do not
// fragment the cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Script: "4\nmove 1 onto 2\npile 3 over 2\n",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Output)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/factoryfloor/pkg/cache"
	"github.com/matzehuels/factoryfloor/pkg/command"
	ferrors "github.com/matzehuels/factoryfloor/pkg/errors"
	"github.com/matzehuels/factoryfloor/pkg/floor"
	"github.com/matzehuels/factoryfloor/pkg/render"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultSize is the floor size for scripts without a size line when
	// neither Options.Size nor Options.DefaultSize is set.
	DefaultSize = 10

	// DefaultDivider separates positions in Result.Output.
	DefaultDivider = render.DividerLines

	// DefaultTTL is how long a run result stays cached.
	DefaultTTL = cache.DefaultTTL
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a single run.
type Options struct {
	// Script is the script text, optionally starting with a size line.
	Script string

	// Size forces the floor size, overriding the script's size line.
	// Zero means "not set".
	Size int

	// DefaultSize is used when neither Size nor the script gives one.
	DefaultSize int

	// Divider separates positions in the rendered output.
	Divider string

	// Refresh skips the cache lookup but still stores the new result.
	Refresh bool

	// TTL is the cache lifetime of the result.
	TTL time.Duration

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger

	validated bool
}

// ValidateAndSetDefaults checks ranges and fills in defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := ferrors.ValidateCount("floor size", o.Size); err != nil {
		return err
	}
	if err := ferrors.ValidateCount("default floor size", o.DefaultSize); err != nil {
		return err
	}
	if o.TTL < 0 {
		return ferrors.New(ferrors.ErrCodeInvalidArgument, "ttl must not be negative, got %s", o.TTL)
	}
	if o.DefaultSize == 0 {
		o.DefaultSize = DefaultSize
	}
	if o.Divider == "" {
		o.Divider = DefaultDivider
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ResolveSize picks the floor size for script: an explicit Size wins, then
// the script's size line, then DefaultSize.
func (o *Options) ResolveSize(script *command.Script) int {
	switch {
	case o.Size > 0:
		return o.Size
	case script.Size != command.NoSize:
		return script.Size
	default:
		return o.DefaultSize
	}
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies this run in logs.
	ID string

	// Floor is the final floor state.
	Floor *floor.Floor

	// Output is Floor rendered with Options.Divider.
	Output string

	// Stats contains counts and timing.
	Stats Stats

	// CacheHit reports whether Floor came from the cache.
	CacheHit bool
}

// Stats contains run statistics.
type Stats struct {
	Size     int
	Commands int
	Applied  int
	Ignored  int
	Duration time.Duration
}
