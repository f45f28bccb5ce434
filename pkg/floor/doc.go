// Package floor implements a blocks world: a factory floor with a fixed
// number of positions, each of which holds an ordered pile of numbered blocks.
//
// # Model
//
// A floor of size N has positions 0..N-1 and blocks 0..N-1. Position i starts
// out holding exactly block i, and block i keeps position i as its home for
// the lifetime of the floor. Blocks are never created or destroyed, only
// relocated, so at every quiescent point each block sits in exactly one pile.
//
// # Moves
//
// Four operations relocate blocks. They differ only in whether the blocks
// stacked above the source block and above the target block are first sent
// back to their homes:
//
//	MoveOnto(a, b)  clear above a, clear above b, put a on b
//	MoveOver(a, b)  clear above a, put a on top of b's pile
//	PileOnto(a, b)  clear above b, put a and everything above it on b
//	PileOver(a, b)  put a and everything above it on top of b's pile
//
// A move whose blocks are equal, or already share a position, is a no-op and
// reports false. Unknown block IDs fail with a NOT_FOUND error before any
// state is touched.
//
// # Example
//
//	f, _ := floor.New(4)
//	f.MoveOnto(1, 2)
//	f.MoveOver(3, 2)
//	f.PileOnto(1, 0)
//	fmt.Println(f) // 0: 0 1 3 | 1: | 2: 2 | 3:
//
// A Floor is not safe for concurrent use; wrap it with [NewSynced] when it is
// shared between goroutines.
package floor
