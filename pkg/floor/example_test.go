package floor_test

import (
	"fmt"

	"github.com/matzehuels/factoryfloor/pkg/floor"
)

func ExampleFloor_MoveOnto() {
	f, _ := floor.New(4)
	f.MoveOnto(1, 2)
	fmt.Println(f)

	// Clearing block 2 sends block 1 home before 2 moves.
	f.MoveOnto(2, 3)
	fmt.Println(f)
	// Output:
	// 0: 0 | 1: | 2: 2 1 | 3: 3
	// 0: 0 | 1: 1 | 2: | 3: 3 2
}

func ExampleFloor_PileOver() {
	f, _ := floor.New(4)
	f.MoveOnto(1, 2)
	f.MoveOnto(3, 0)
	moved, _ := f.PileOver(2, 0)
	fmt.Println(moved, f)
	// Output:
	// true 0: 0 3 2 1 | 1: | 2: | 3:
}

func ExampleFloor_BlockPosition() {
	f, _ := floor.New(4)
	f.PileOnto(3, 1)
	pos, _ := f.BlockPosition(3)
	_, err := f.BlockPosition(9)
	fmt.Println("Block 3 at:", pos)
	fmt.Println("Error:", err)
	// Output:
	// Block 3 at: 1
	// Error: NOT_FOUND: no element at 9
}
