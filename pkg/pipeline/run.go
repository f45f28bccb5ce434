package pipeline

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/factoryfloor/pkg/command"
	"github.com/matzehuels/factoryfloor/pkg/floor"
	ffio "github.com/matzehuels/factoryfloor/pkg/io"
	"github.com/matzehuels/factoryfloor/pkg/observability"
)

// Run builds a floor of the given size and applies every command of
// script to it. It does not touch the cache.
func Run(ctx context.Context, size int, script *command.Script) (*floor.Floor, command.RunStats, error) {
	f, err := floor.New(size)
	if err != nil {
		return nil, command.RunStats{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, command.RunStats{}, err
	}
	hooks := observability.Run()
	stats, err := command.RunEach(f, script.Commands, func(c command.Command, moved bool) {
		hooks.OnCommand(ctx, c.String(), moved)
	})
	if err != nil {
		return nil, stats, err
	}
	return f, stats, nil
}

// entry is the cached form of a run.
type entry struct {
	Floor   json.RawMessage `json:"floor"`
	Applied int             `json:"applied"`
	Ignored int             `json:"ignored"`
}

func marshalEntry(f *floor.Floor, stats command.RunStats) ([]byte, error) {
	snap, err := ffio.MarshalJSON(f)
	if err != nil {
		return nil, err
	}
	return json.Marshal(entry{Floor: snap, Applied: stats.Applied, Ignored: stats.Ignored})
}

func unmarshalEntry(data []byte) (*floor.Floor, command.RunStats, error) {
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, command.RunStats{}, err
	}
	f, err := ffio.UnmarshalJSON(e.Floor)
	if err != nil {
		return nil, command.RunStats{}, err
	}
	return f, command.RunStats{Applied: e.Applied, Ignored: e.Ignored}, nil
}

// canonical is the script text used for cache keys: one normalized command
// per line, without comments, size line or trailing "quit".
func canonical(script *command.Script) string {
	b := make([]byte, 0, len(script.Commands)*16)
	for _, c := range script.Commands {
		b = append(b, c.String()...)
		b = append(b, '\n')
	}
	return string(b)
}
