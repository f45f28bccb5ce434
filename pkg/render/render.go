// Package render formats floor state as text.
//
// The output lists every position followed by its blocks, bottom to top:
//
//	0: 0 | 1: | 2: 2 1 | 3: 3
//
// Positions are joined by a caller-chosen divider, so the same floor can be
// printed on one line or one position per line. The renderer only reads the
// floor through [Reader], so it works with both [floor.Floor] and
// [floor.Synced].
package render

import (
	"fmt"
	"strings"

	"github.com/matzehuels/factoryfloor/pkg/floor"
)

// Common dividers.
const (
	DividerInline = " | "
	DividerLines  = "\n"
)

// Reader is the read-only view of a floor the renderer needs.
type Reader interface {
	Size() int
	BlocksAt(position floor.Position) ([]floor.Block, error)
}

// Text renders every position of f, joined by divider.
func Text(f Reader, divider string) string {
	var sb strings.Builder
	for p := 0; p < f.Size(); p++ {
		if p > 0 {
			sb.WriteString(divider)
		}
		sb.WriteString(Position(f, floor.Position(p)))
	}
	return sb.String()
}

// Lines renders f with one position per line.
func Lines(f Reader) string {
	return Text(f, DividerLines)
}

// Position renders a single position as "p: b0 b1 ...". A position outside
// the floor renders as "p: ?".
func Position(f Reader, p floor.Position) string {
	blocks, err := f.BlocksAt(p)
	if err != nil {
		return fmt.Sprintf("%d: ?", p)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d:", p)
	for _, b := range blocks {
		fmt.Fprintf(&sb, " %d", b)
	}
	return sb.String()
}
