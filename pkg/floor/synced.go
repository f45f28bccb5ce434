package floor

import "sync"

// Synced guards a Floor with a single mutex so it can be shared between
// goroutines. A move may touch an unbounded prefix of several piles, so the
// whole floor is locked for every call.
type Synced struct {
	mu sync.Mutex
	f  *Floor
}

// NewSynced wraps f. f must not be used directly afterwards.
func NewSynced(f *Floor) *Synced {
	return &Synced{f: f}
}

func (s *Synced) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Size()
}

func (s *Synced) BlocksAt(position Position) ([]Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.BlocksAt(position)
}

func (s *Synced) BlockPosition(block Block) (Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.BlockPosition(block)
}

func (s *Synced) Apply(op Op, blockFrom, blockTo Block) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Apply(op, blockFrom, blockTo)
}

// Snapshot returns a copy of the wrapped floor.
func (s *Synced) Snapshot() *Floor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &Floor{
		stacks: s.f.Stacks(),
		where:  append([]Position(nil), s.f.where...),
		home:   append([]Position(nil), s.f.home...),
	}
}
