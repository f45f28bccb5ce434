package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestLogHooksOnlyAtDebug(t *testing.T) {
	ctx := context.Background()
	fire := func(h *logHooks) {
		h.OnRunStart(ctx, 4, 2)
		h.OnCommand(ctx, "move 1 onto 2", true)
		h.OnCommand(ctx, "move 2 onto 2", false)
		h.OnRunComplete(ctx, 1, 1, time.Millisecond, nil)
		h.OnRunComplete(ctx, 0, 0, 0, errors.New("boom"))
		h.OnCacheHit(ctx, "run")
		h.OnCacheMiss(ctx, "run")
		h.OnCacheSet(ctx, "run", 42)
	}

	var quiet bytes.Buffer
	fire(newLogHooks(newLogger(&quiet, log.InfoLevel)))
	if quiet.Len() != 0 {
		t.Errorf("hooks should be silent at info level, got %q", quiet.String())
	}

	var loud bytes.Buffer
	fire(newLogHooks(newLogger(&loud, log.DebugLevel)))
	for _, want := range []string{"run started", "applied", "ignored", "run complete", "run failed", "cache hit", "cache miss", "cache set"} {
		if !strings.Contains(loud.String(), want) {
			t.Errorf("debug output missing %q", want)
		}
	}
}
