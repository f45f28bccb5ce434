// Package command parses and runs block-moving scripts.
//
// A script is plain text with one command per line:
//
//	4
//	move 1 onto 2
//	move 3 over 2
//	pile 1 onto 0
//	quit
//
// The optional first line gives the floor size. Keywords are
// case-insensitive, blank lines and lines starting with '#' are skipped,
// and parsing stops at "quit".
package command

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	ferrors "github.com/matzehuels/factoryfloor/pkg/errors"
	"github.com/matzehuels/factoryfloor/pkg/floor"
)

// NoSize marks a script without a size line.
const NoSize = -1

// Command is one parsed move.
type Command struct {
	Line int // 1-based source line, 0 when not parsed from a script
	Op   floor.Op
	From floor.Block
	To   floor.Block
}

// String formats c the way it is written in a script.
func (c Command) String() string {
	verb, prep, _ := strings.Cut(c.Op.String(), " ")
	return fmt.Sprintf("%s %d %s %d", verb, c.From, prep, c.To)
}

// Script is a parsed command file.
type Script struct {
	Size     int // floor size from the header line, or NoSize
	Commands []Command
}

// RunStats counts the outcome of running a script.
type RunStats struct {
	Applied int // commands that moved at least one block
	Ignored int // no-op commands (same block or same position)
}

var ops = map[[2]string]floor.Op{
	{"move", "onto"}: floor.OpMoveOnto,
	{"move", "over"}: floor.OpMoveOver,
	{"pile", "onto"}: floor.OpPileOnto,
	{"pile", "over"}: floor.OpPileOver,
}

// ParseLine parses a single command such as "pile 3 over 1".
func ParseLine(s string) (Command, error) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) != 4 {
		return Command{}, ferrors.New(ferrors.ErrCodeInvalidInput, "want \"<move|pile> a <onto|over> b\", got %q", strings.TrimSpace(s))
	}
	op, ok := ops[[2]string{fields[0], fields[2]}]
	if !ok {
		return Command{}, ferrors.New(ferrors.ErrCodeInvalidInput, "unknown command %q", fields[0]+" "+fields[2])
	}
	from, err := strconv.Atoi(fields[1])
	if err != nil {
		return Command{}, ferrors.Wrap(ferrors.ErrCodeInvalidInput, err, "bad block %q", fields[1])
	}
	to, err := strconv.Atoi(fields[3])
	if err != nil {
		return Command{}, ferrors.Wrap(ferrors.ErrCodeInvalidInput, err, "bad block %q", fields[3])
	}
	return Command{Op: op, From: floor.Block(from), To: floor.Block(to)}, nil
}

// Parse reads a script from r. Errors carry the offending line number.
func Parse(r io.Reader) (*Script, error) {
	s := &Script{Size: NoSize}
	sc := bufio.NewScanner(r)
	line := 0
	first := true
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if strings.EqualFold(text, "quit") {
			break
		}
		if first {
			first = false
			if n, err := strconv.Atoi(text); err == nil {
				if err := ferrors.ValidateCount("floor size", n); err != nil {
					return nil, ferrors.Wrap(ferrors.ErrCodeInvalidInput, err, "line %d", line)
				}
				s.Size = n
				continue
			}
		}
		cmd, err := ParseLine(text)
		if err != nil {
			return nil, ferrors.Wrap(ferrors.ErrCodeInvalidInput, err, "line %d", line)
		}
		cmd.Line = line
		s.Commands = append(s.Commands, cmd)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return s, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Script, error) {
	return Parse(strings.NewReader(s))
}

// Mover applies a single move. Both *floor.Floor and *floor.Synced satisfy it.
type Mover interface {
	Apply(op floor.Op, blockFrom, blockTo floor.Block) (bool, error)
}

// Run applies every command to f in order and stops at the first error.
// Commands before the failing one stay applied.
func (s *Script) Run(f Mover) (RunStats, error) {
	return RunEach(f, s.Commands, nil)
}

// RunEach applies cmds to f, calling visit (if non-nil) after each one with
// whether it moved anything.
func RunEach(f Mover, cmds []Command, visit func(Command, bool)) (RunStats, error) {
	var stats RunStats
	for _, c := range cmds {
		moved, err := f.Apply(c.Op, c.From, c.To)
		if err != nil {
			if c.Line > 0 {
				return stats, ferrors.Wrap(ferrors.ErrCodeInvalidInput, err, "line %d: %s", c.Line, c)
			}
			return stats, fmt.Errorf("%s: %w", c, err)
		}
		if moved {
			stats.Applied++
		} else {
			stats.Ignored++
		}
		if visit != nil {
			visit(c, moved)
		}
	}
	return stats, nil
}
