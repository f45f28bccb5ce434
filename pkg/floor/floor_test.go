package floor

import (
	"slices"
	"sync"
	"testing"

	ferrors "github.com/matzehuels/factoryfloor/pkg/errors"
)

// assertFloor checks every pile against want and that the floor is consistent.
func assertFloor(t *testing.T, f *Floor, want [][]Block) {
	t.Helper()
	if f.Size() != len(want) {
		t.Fatalf("Size() = %d, want %d", f.Size(), len(want))
	}
	for p, w := range want {
		got, err := f.BlocksAt(Position(p))
		if err != nil {
			t.Fatalf("BlocksAt(%d): %v", p, err)
		}
		if !slices.Equal(got, w) {
			t.Errorf("BlocksAt(%d) = %v, want %v (floor: %s)", p, got, w, f)
		}
		for _, b := range w {
			if pos, _ := f.BlockPosition(b); pos != Position(p) {
				t.Errorf("BlockPosition(%d) = %d, want %d", b, pos, p)
			}
		}
	}
	if err := f.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func mustNew(t *testing.T, n int) *Floor {
	t.Helper()
	f, err := New(n)
	if err != nil {
		t.Fatalf("New(%d): %v", n, err)
	}
	return f
}

func TestNew(t *testing.T) {
	f := mustNew(t, 8)
	for p := 0; p < 8; p++ {
		blocks, err := f.BlocksAt(Position(p))
		if err != nil {
			t.Fatalf("BlocksAt(%d): %v", p, err)
		}
		if !slices.Equal(blocks, []Block{Block(p)}) {
			t.Errorf("BlocksAt(%d) = %v, want [%d]", p, blocks, p)
		}
		pos, err := f.BlockPosition(Block(p))
		if err != nil {
			t.Fatalf("BlockPosition(%d): %v", p, err)
		}
		if pos != Position(p) {
			t.Errorf("BlockPosition(%d) = %d, want %d", p, pos, p)
		}
		home, _ := f.Home(Block(p))
		if home != Position(p) {
			t.Errorf("Home(%d) = %d, want %d", p, home, p)
		}
	}
}

func TestNewEmpty(t *testing.T) {
	f := mustNew(t, 0)
	if f.Size() != 0 {
		t.Errorf("Size() = %d, want 0", f.Size())
	}
	if _, err := f.BlocksAt(0); !ferrors.Is(err, ferrors.ErrCodeNotFound) {
		t.Errorf("BlocksAt(0) on empty floor = %v, want NOT_FOUND", err)
	}
	if f.String() != "" {
		t.Errorf("String() = %q, want empty", f.String())
	}
}

func TestNewNegative(t *testing.T) {
	f, err := New(-1)
	if f != nil {
		t.Error("New(-1) returned a floor")
	}
	if !ferrors.Is(err, ferrors.ErrCodeInvalidArgument) {
		t.Errorf("New(-1) error = %v, want INVALID_ARGUMENT", err)
	}
}

func TestQueriesOutOfRange(t *testing.T) {
	f := mustNew(t, 4)
	for _, id := range []int{-1, 4} {
		if _, err := f.BlocksAt(Position(id)); !ferrors.Is(err, ferrors.ErrCodeNotFound) {
			t.Errorf("BlocksAt(%d) error = %v, want NOT_FOUND", id, err)
		}
		if _, err := f.BlockPosition(Block(id)); !ferrors.Is(err, ferrors.ErrCodeNotFound) {
			t.Errorf("BlockPosition(%d) error = %v, want NOT_FOUND", id, err)
		}
		if _, err := f.Home(Block(id)); !ferrors.Is(err, ferrors.ErrCodeNotFound) {
			t.Errorf("Home(%d) error = %v, want NOT_FOUND", id, err)
		}
	}
}

func TestBlocksAtIsSnapshot(t *testing.T) {
	f := mustNew(t, 4)
	before, _ := f.BlocksAt(2)
	before[0] = 99

	if _, err := f.MoveOnto(1, 2); err != nil {
		t.Fatal(err)
	}
	assertFloor(t, f, [][]Block{{0}, {}, {2, 1}, {3}})
}

type step struct {
	op       Op
	from, to Block
	want     bool
}

func TestMoves(t *testing.T) {
	tests := []struct {
		name  string
		steps []step
		want  [][]Block
	}{
		// move onto
		{
			name:  "move onto basic",
			steps: []step{{OpMoveOnto, 1, 2, true}},
			want:  [][]Block{{0}, {}, {2, 1}, {3}},
		},
		{
			name:  "move onto resets from",
			steps: []step{{OpMoveOnto, 1, 2, true}, {OpMoveOnto, 2, 3, true}},
			want:  [][]Block{{0}, {1}, {}, {3, 2}},
		},
		{
			name:  "move onto resets to",
			steps: []step{{OpMoveOnto, 1, 2, true}, {OpMoveOnto, 3, 2, true}},
			want:  [][]Block{{0}, {1}, {2, 3}, {}},
		},
		{
			name:  "move onto same block",
			steps: []step{{OpMoveOnto, 1, 2, true}, {OpMoveOnto, 2, 2, false}},
			want:  [][]Block{{0}, {}, {2, 1}, {3}},
		},
		{
			name:  "move onto same position",
			steps: []step{{OpMoveOnto, 1, 2, true}, {OpMoveOnto, 2, 1, false}},
			want:  [][]Block{{0}, {}, {2, 1}, {3}},
		},

		// move over
		{
			name:  "move over basic",
			steps: []step{{OpMoveOver, 1, 2, true}},
			want:  [][]Block{{0}, {}, {2, 1}, {3}},
		},
		{
			name:  "move over resets from",
			steps: []step{{OpMoveOnto, 1, 2, true}, {OpMoveOver, 2, 3, true}},
			want:  [][]Block{{0}, {1}, {}, {3, 2}},
		},
		{
			name:  "move over keeps target pile",
			steps: []step{{OpMoveOnto, 1, 2, true}, {OpMoveOver, 3, 2, true}},
			want:  [][]Block{{0}, {}, {2, 1, 3}, {}},
		},
		{
			name:  "move over same block",
			steps: []step{{OpMoveOnto, 1, 2, true}, {OpMoveOver, 2, 2, false}},
			want:  [][]Block{{0}, {}, {2, 1}, {3}},
		},
		{
			name:  "move over same position",
			steps: []step{{OpMoveOnto, 1, 2, true}, {OpMoveOver, 2, 1, false}},
			want:  [][]Block{{0}, {}, {2, 1}, {3}},
		},

		// pile onto
		{
			name:  "pile onto basic",
			steps: []step{{OpPileOnto, 1, 2, true}},
			want:  [][]Block{{0}, {}, {2, 1}, {3}},
		},
		{
			name:  "pile onto carries pile",
			steps: []step{{OpMoveOnto, 1, 2, true}, {OpMoveOver, 3, 2, true}, {OpPileOnto, 1, 0, true}},
			want:  [][]Block{{0, 1, 3}, {}, {2}, {}},
		},
		{
			name:  "pile onto resets to",
			steps: []step{{OpMoveOnto, 1, 2, true}, {OpMoveOnto, 3, 0, true}, {OpPileOnto, 2, 0, true}},
			want:  [][]Block{{0, 2, 1}, {}, {}, {3}},
		},
		{
			name:  "pile onto same block",
			steps: []step{{OpMoveOnto, 1, 2, true}, {OpPileOnto, 2, 2, false}},
			want:  [][]Block{{0}, {}, {2, 1}, {3}},
		},
		{
			name:  "pile onto same position",
			steps: []step{{OpMoveOnto, 1, 2, true}, {OpPileOnto, 2, 1, false}},
			want:  [][]Block{{0}, {}, {2, 1}, {3}},
		},

		// pile over
		{
			name:  "pile over basic",
			steps: []step{{OpPileOver, 1, 2, true}},
			want:  [][]Block{{0}, {}, {2, 1}, {3}},
		},
		{
			name:  "pile over carries pile",
			steps: []step{{OpMoveOnto, 1, 2, true}, {OpMoveOver, 3, 2, true}, {OpPileOver, 1, 0, true}},
			want:  [][]Block{{0, 1, 3}, {}, {2}, {}},
		},
		{
			name:  "pile over combines piles",
			steps: []step{{OpMoveOnto, 1, 2, true}, {OpMoveOnto, 3, 0, true}, {OpPileOver, 2, 0, true}},
			want:  [][]Block{{0, 3, 2, 1}, {}, {}, {}},
		},
		{
			name:  "pile over same block",
			steps: []step{{OpMoveOnto, 1, 2, true}, {OpPileOver, 2, 2, false}},
			want:  [][]Block{{0}, {}, {2, 1}, {3}},
		},
		{
			name:  "pile over same position",
			steps: []step{{OpMoveOnto, 1, 2, true}, {OpPileOver, 2, 1, false}},
			want:  [][]Block{{0}, {}, {2, 1}, {3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mustNew(t, 4)
			for i, s := range tt.steps {
				got, err := f.Apply(s.op, s.from, s.to)
				if err != nil {
					t.Fatalf("step %d %s %d %d: %v", i, s.op, s.from, s.to, err)
				}
				if got != s.want {
					t.Errorf("step %d %s %d %d = %v, want %v", i, s.op, s.from, s.to, got, s.want)
				}
			}
			assertFloor(t, f, tt.want)
		})
	}
}

func TestNamedMovesMatchApply(t *testing.T) {
	named := map[Op]func(*Floor, Block, Block) (bool, error){
		OpMoveOnto: (*Floor).MoveOnto,
		OpMoveOver: (*Floor).MoveOver,
		OpPileOnto: (*Floor).PileOnto,
		OpPileOver: (*Floor).PileOver,
	}
	for op, fn := range named {
		t.Run(op.String(), func(t *testing.T) {
			a, b := mustNew(t, 5), mustNew(t, 5)
			for _, s := range [][2]Block{{1, 2}, {3, 2}, {4, 1}, {2, 0}} {
				fn(a, s[0], s[1])
				b.Apply(op, s[0], s[1])
			}
			if a.String() != b.String() {
				t.Errorf("named = %s, Apply = %s", a, b)
			}
		})
	}
}

func TestMovesOutOfRange(t *testing.T) {
	for _, op := range []Op{OpMoveOnto, OpMoveOver, OpPileOnto, OpPileOver} {
		t.Run(op.String(), func(t *testing.T) {
			f := mustNew(t, 4)
			for _, s := range [][2]Block{{-1, 0}, {4, 0}, {0, -1}, {0, 4}} {
				moved, err := f.Apply(op, s[0], s[1])
				if !ferrors.Is(err, ferrors.ErrCodeNotFound) {
					t.Errorf("%s %d %d error = %v, want NOT_FOUND", op, s[0], s[1], err)
				}
				if moved {
					t.Errorf("%s %d %d reported a move", op, s[0], s[1])
				}
			}
			assertFloor(t, f, [][]Block{{0}, {1}, {2}, {3}})
		})
	}
}

func TestApplyUnknownOp(t *testing.T) {
	f := mustNew(t, 2)
	if _, err := f.Apply(Op(42), 0, 1); !ferrors.Is(err, ferrors.ErrCodeUnsupported) {
		t.Errorf("Apply(Op(42)) error = %v, want UNSUPPORTED", err)
	}
	if Op(42).String() != "Op(42)" {
		t.Errorf("String() = %q", Op(42).String())
	}
}

func TestExercise(t *testing.T) {
	f := mustNew(t, 8)
	for _, s := range [][2]Block{{7, 1}, {5, 1}, {1, 6}, {4, 3}, {1, 4}, {3, 1}, {5, 2}, {7, 5}, {4, 5}} {
		if _, err := f.MoveOnto(s[0], s[1]); err != nil {
			t.Fatal(err)
		}
	}
	assertFloor(t, f, [][]Block{{0}, {1}, {2, 5, 4}, {3}, {}, {}, {6}, {7}})
}

func TestResetPileFollowsHome(t *testing.T) {
	// Block 3's home is position 3 even when its pile sits elsewhere.
	f := mustNew(t, 5)
	f.MoveOnto(3, 1)
	f.PileOver(1, 4)
	f.MoveOnto(0, 4)
	assertFloor(t, f, [][]Block{{}, {1}, {2}, {3}, {4, 0}})
}

func TestInvariantsHoldUnderRandomMoves(t *testing.T) {
	const n = 10
	f := mustNew(t, n)
	ops := []Op{OpMoveOnto, OpMoveOver, OpPileOnto, OpPileOver}
	// Deterministic pseudo-random walk.
	x := uint32(2463534242)
	next := func() int {
		x ^= x << 13
		x ^= x >> 17
		x ^= x << 5
		return int(x % 1000)
	}
	for i := 0; i < 2000; i++ {
		op := ops[next()%len(ops)]
		from, to := Block(next()%n), Block(next()%n)
		if _, err := f.Apply(op, from, to); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if err := f.Validate(); err != nil {
			t.Fatalf("step %d %s %d %d: %v", i, op, from, to, err)
		}
	}
}

func TestFromStacks(t *testing.T) {
	stacks := [][]Block{{0, 3}, {}, {2, 1}, {}}
	f, err := FromStacks(stacks)
	if err != nil {
		t.Fatalf("FromStacks: %v", err)
	}
	assertFloor(t, f, stacks)

	stacks[0][0] = 3
	if got, _ := f.BlocksAt(0); got[0] != 0 {
		t.Error("FromStacks should copy its input")
	}

	// Homes are the block numbers, so clearing 2 sends 1 back to position 1.
	if moved, err := f.MoveOnto(3, 2); err != nil || !moved {
		t.Fatalf("MoveOnto(3, 2) = %v, %v", moved, err)
	}
	assertFloor(t, f, [][]Block{{0}, {1}, {2, 3}, {}})
}

func TestFromStacksInvalid(t *testing.T) {
	tests := []struct {
		name   string
		stacks [][]Block
	}{
		{"out of range", [][]Block{{0}, {2}}},
		{"negative", [][]Block{{0}, {-1}}},
		{"duplicate", [][]Block{{0, 0}, {}}},
		{"missing", [][]Block{{0}, {}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromStacks(tt.stacks); !ferrors.Is(err, ferrors.ErrCodeInvalidArgument) {
				t.Errorf("FromStacks(%v) error = %v, want INVALID_ARGUMENT", tt.stacks, err)
			}
		})
	}
}

func TestValidateDetectsCorruption(t *testing.T) {
	f := mustNew(t, 3)
	f.where[1] = 2
	if err := f.Validate(); !ferrors.Is(err, ferrors.ErrCodeInternal) {
		t.Errorf("Validate() = %v, want INTERNAL_ERROR", err)
	}

	g := mustNew(t, 3)
	g.stacks[0] = append(g.stacks[0], 1)
	if err := g.Validate(); !ferrors.Is(err, ferrors.ErrCodeInternal) {
		t.Errorf("Validate() = %v, want INTERNAL_ERROR", err)
	}
}

func TestTakeEmptyPanics(t *testing.T) {
	f := mustNew(t, 2)
	f.MoveOnto(1, 0)
	defer func() {
		if recover() == nil {
			t.Error("take on an empty position should panic")
		}
	}()
	f.take(1)
}

func TestStacksIsCopy(t *testing.T) {
	f := mustNew(t, 3)
	s := f.Stacks()
	s[0] = append(s[0], 2)
	assertFloor(t, f, [][]Block{{0}, {1}, {2}})
}

func TestString(t *testing.T) {
	f := mustNew(t, 4)
	f.MoveOnto(1, 2)
	want := "0: 0 | 1: | 2: 2 1 | 3: 3"
	if f.String() != want {
		t.Errorf("String() = %q, want %q", f.String(), want)
	}
}

func TestSyncedConcurrentMoves(t *testing.T) {
	const n = 6
	s := NewSynced(mustNew(t, n))

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				from := Block((w + i) % n)
				to := Block((w*3 + i*7 + 1) % n)
				if _, err := s.Apply(Op(i%4), from, to); err != nil {
					t.Errorf("worker %d: %v", w, err)
					return
				}
				if _, err := s.BlockPosition(from); err != nil {
					t.Errorf("worker %d: %v", w, err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	snap := s.Snapshot()
	if err := snap.Validate(); err != nil {
		t.Errorf("Validate() after concurrent moves = %v", err)
	}
	if s.Size() != n {
		t.Errorf("Size() = %d, want %d", s.Size(), n)
	}
	if _, err := s.BlocksAt(0); err != nil {
		t.Errorf("BlocksAt(0): %v", err)
	}
}
