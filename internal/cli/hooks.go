package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/factoryfloor/pkg/observability"
)

// logHooks reports run and cache events at debug level, so they only show
// up with --verbose.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.RunHooks   = (*logHooks)(nil)
	_ observability.CacheHooks = (*logHooks)(nil)
)

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l}
}

func (h *logHooks) OnRunStart(_ context.Context, size, commands int) {
	h.logger.Debug("run started", "size", size, "commands", commands)
}

func (h *logHooks) OnCommand(_ context.Context, command string, moved bool) {
	if moved {
		h.logger.Debug("applied", "command", command)
		return
	}
	h.logger.Debug("ignored", "command", command)
}

func (h *logHooks) OnRunComplete(_ context.Context, applied, ignored int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("run failed", "applied", applied, "err", err)
		return
	}
	h.logger.Debug("run complete", "applied", applied, "ignored", ignored, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
