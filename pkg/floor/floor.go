package floor

import (
	"fmt"
	"strings"

	ferrors "github.com/matzehuels/factoryfloor/pkg/errors"
)

// Block identifies a block. Valid blocks lie in [0, Size()).
type Block int

// Position identifies a floor position. Valid positions lie in [0, Size()).
type Position int

// Floor holds the piles of blocks on each position.
//
// The zero value is an empty floor with no positions; use New to create a
// populated one.
type Floor struct {
	stacks [][]Block  // position -> blocks, bottom to top
	where  []Position // block -> current position
	home   []Position // block -> home position
}

// New creates a floor with positionCount positions, each holding the block
// with the same number. It returns an INVALID_ARGUMENT error when
// positionCount is negative.
func New(positionCount int) (*Floor, error) {
	if err := ferrors.ValidateCount("positionCount", positionCount); err != nil {
		return nil, err
	}
	f := &Floor{
		stacks: make([][]Block, positionCount),
		where:  make([]Position, positionCount),
		home:   make([]Position, positionCount),
	}
	for i := 0; i < positionCount; i++ {
		f.home[i] = Position(i)
		f.put(Position(i), Block(i))
	}
	return f, nil
}

// FromStacks rebuilds a floor from the piles in stacks, indexed by position.
// Every block in [0, len(stacks)) must appear exactly once; blocks keep the
// position matching their number as home. The input is copied.
func FromStacks(stacks [][]Block) (*Floor, error) {
	n := len(stacks)
	f := &Floor{
		stacks: make([][]Block, n),
		where:  make([]Position, n),
		home:   make([]Position, n),
	}
	seen := make([]bool, n)
	for p, pile := range stacks {
		f.stacks[p] = make([]Block, 0, len(pile))
		for _, b := range pile {
			if b < 0 || int(b) >= n {
				return nil, ferrors.New(ferrors.ErrCodeInvalidArgument, "position %d: block %d out of range", p, b)
			}
			if seen[b] {
				return nil, ferrors.New(ferrors.ErrCodeInvalidArgument, "position %d: duplicate block %d", p, b)
			}
			seen[b] = true
			f.put(Position(p), b)
		}
	}
	for b, ok := range seen {
		if !ok {
			return nil, ferrors.New(ferrors.ErrCodeInvalidArgument, "block %d missing", b)
		}
		f.home[b] = Position(b)
	}
	return f, nil
}

// Size returns the number of positions, which equals the number of blocks.
func (f *Floor) Size() int { return len(f.stacks) }

// BlocksAt returns the blocks on position, bottom to top. The returned slice
// is a copy and is not affected by later moves.
func (f *Floor) BlocksAt(position Position) ([]Block, error) {
	if err := ferrors.ValidateID(int(position), len(f.stacks)); err != nil {
		return nil, err
	}
	return append([]Block(nil), f.stacks[position]...), nil
}

// BlockPosition returns the position currently holding block.
func (f *Floor) BlockPosition(block Block) (Position, error) {
	if err := ferrors.ValidateID(int(block), len(f.where)); err != nil {
		return 0, err
	}
	return f.where[block], nil
}

// Home returns the position block is sent back to when a pile above it is
// cleared.
func (f *Floor) Home(block Block) (Position, error) {
	if err := ferrors.ValidateID(int(block), len(f.home)); err != nil {
		return 0, err
	}
	return f.home[block], nil
}

// Stacks returns a copy of every pile, indexed by position.
func (f *Floor) Stacks() [][]Block {
	out := make([][]Block, len(f.stacks))
	for p, pile := range f.stacks {
		out[p] = append([]Block{}, pile...)
	}
	return out
}

// Validate checks that every block sits in exactly one pile and that the
// block index agrees with pile membership.
func (f *Floor) Validate() error {
	n := len(f.stacks)
	if len(f.where) != n || len(f.home) != n {
		return ferrors.New(ferrors.ErrCodeInternal, "index sizes %d/%d do not match %d positions", len(f.where), len(f.home), n)
	}
	seen := make([]bool, n)
	for p, pile := range f.stacks {
		for _, b := range pile {
			if b < 0 || int(b) >= n {
				return ferrors.New(ferrors.ErrCodeInternal, "position %d holds unknown block %d", p, b)
			}
			if seen[b] {
				return ferrors.New(ferrors.ErrCodeInternal, "block %d appears twice", b)
			}
			seen[b] = true
			if f.where[b] != Position(p) {
				return ferrors.New(ferrors.ErrCodeInternal, "block %d indexed at %d but found at %d", b, f.where[b], p)
			}
		}
	}
	for b, ok := range seen {
		if !ok {
			return ferrors.New(ferrors.ErrCodeInternal, "block %d is on no position", b)
		}
	}
	return nil
}

// String renders the floor on one line, positions divided by " | ".
func (f *Floor) String() string {
	var sb strings.Builder
	for p, pile := range f.stacks {
		if p > 0 {
			sb.WriteString(" | ")
		}
		fmt.Fprintf(&sb, "%d:", p)
		for _, b := range pile {
			fmt.Fprintf(&sb, " %d", b)
		}
	}
	return sb.String()
}
