package floor

import (
	"fmt"

	ferrors "github.com/matzehuels/factoryfloor/pkg/errors"
)

// Op names one of the four move operations.
type Op int

const (
	// OpMoveOnto clears both piles above the blocks, then moves one block.
	OpMoveOnto Op = iota
	// OpMoveOver clears the pile above the source block, then moves it.
	OpMoveOver
	// OpPileOnto clears the pile above the target block, then moves the source pile.
	OpPileOnto
	// OpPileOver moves the source pile without clearing anything.
	OpPileOver
)

var opNames = map[Op]string{
	OpMoveOnto: "move onto",
	OpMoveOver: "move over",
	OpPileOnto: "pile onto",
	OpPileOver: "pile over",
}

// String returns the command form of op, e.g. "pile over".
func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// resets reports which sides op clears before transferring.
func (op Op) resets() (from, to bool, ok bool) {
	switch op {
	case OpMoveOnto:
		return true, true, true
	case OpMoveOver:
		return true, false, true
	case OpPileOnto:
		return false, true, true
	case OpPileOver:
		return false, false, true
	}
	return false, false, false
}

// MoveOnto puts blockFrom directly on blockTo. Blocks stacked above either of
// them are first returned to their homes.
func (f *Floor) MoveOnto(blockFrom, blockTo Block) (bool, error) {
	return f.move(blockFrom, blockTo, true, true)
}

// MoveOver puts blockFrom on top of the pile containing blockTo. Blocks
// stacked above blockFrom are first returned to their homes.
func (f *Floor) MoveOver(blockFrom, blockTo Block) (bool, error) {
	return f.move(blockFrom, blockTo, true, false)
}

// PileOnto puts blockFrom, together with everything above it, directly on
// blockTo. Blocks stacked above blockTo are first returned to their homes.
func (f *Floor) PileOnto(blockFrom, blockTo Block) (bool, error) {
	return f.move(blockFrom, blockTo, false, true)
}

// PileOver puts blockFrom, together with everything above it, on top of the
// pile containing blockTo.
func (f *Floor) PileOver(blockFrom, blockTo Block) (bool, error) {
	return f.move(blockFrom, blockTo, false, false)
}

// Apply runs the move named by op.
func (f *Floor) Apply(op Op, blockFrom, blockTo Block) (bool, error) {
	resetFrom, resetTo, ok := op.resets()
	if !ok {
		return false, ferrors.New(ferrors.ErrCodeUnsupported, "unknown operation %s", op)
	}
	return f.move(blockFrom, blockTo, resetFrom, resetTo)
}

// move is the policy shared by the four operations. It reports false without
// touching the floor when both blocks are the same or already share a
// position. All lookups happen before the first mutation.
func (f *Floor) move(blockFrom, blockTo Block, resetFrom, resetTo bool) (bool, error) {
	if blockFrom == blockTo {
		return false, nil
	}
	positionFrom, err := f.BlockPosition(blockFrom)
	if err != nil {
		return false, err
	}
	positionTo, err := f.BlockPosition(blockTo)
	if err != nil {
		return false, err
	}
	if positionFrom == positionTo {
		return false, nil
	}

	if resetFrom {
		f.resetPosition(positionFrom, blockFrom)
	}
	if resetTo {
		f.resetPosition(positionTo, blockTo)
	}
	f.transfer(positionFrom, positionTo, blockFrom)
	return true, nil
}

// resetPosition sends every block above stop back to its home. stop itself
// stays where it is.
func (f *Floor) resetPosition(position Position, stop Block) {
	for {
		pile := f.stacks[position]
		if len(pile) == 0 {
			return
		}
		top := pile[len(pile)-1]
		if top == stop {
			return
		}
		f.transfer(position, f.home[top], top)
	}
}

// transfer lifts blocks off from down to and including through, then sets
// them on to in their original order.
func (f *Floor) transfer(from, to Position, through Block) {
	var lifted []Block
	for len(f.stacks[from]) > 0 {
		b := f.take(from)
		lifted = append(lifted, b)
		if b == through {
			break
		}
	}
	for i := len(lifted) - 1; i >= 0; i-- {
		f.put(to, lifted[i])
	}
}

// take pops the top block off position. The block has no position until it
// is put somewhere.
func (f *Floor) take(position Position) Block {
	pile := f.stacks[position]
	if len(pile) == 0 {
		panic(fmt.Sprintf("floor: take from empty position %d", position))
	}
	b := pile[len(pile)-1]
	f.stacks[position] = pile[:len(pile)-1]
	f.where[b] = -1
	return b
}

// put pushes block onto position and records where it now sits.
func (f *Floor) put(position Position, block Block) {
	f.stacks[position] = append(f.stacks[position], block)
	f.where[block] = position
}
