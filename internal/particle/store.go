package particle

import (
	"errors"
	"fmt"
	"iter"
)

// ErrIndexOutOfRange is wrapped by the panic value raised when a store is
// accessed with an index it never handed out.
var ErrIndexOutOfRange = errors.New("particle: index out of range")

// Store holds particle positions addressed by a stable index.
type Store struct {
	positions []Vec2
}

func NewStore(capacity int) *Store {
	return &Store{positions: make([]Vec2, 0, capacity)}
}

// Add appends p and returns its index, which equals the length before the
// append.
func (s *Store) Add(p Vec2) int {
	idx := len(s.positions)
	s.positions = append(s.positions, p)
	return idx
}

func (s *Store) Get(i int) Vec2 {
	s.check(i)
	return s.positions[i]
}

func (s *Store) Set(i int, p Vec2) {
	s.check(i)
	s.positions[i] = p
}

func (s *Store) Len() int { return len(s.positions) }

// All yields (index, position) pairs in index order. The sequence reads the
// store live, so it can be ranged over again after positions change.
func (s *Store) All() iter.Seq2[int, Vec2] {
	return func(yield func(int, Vec2) bool) {
		for i, p := range s.positions {
			if !yield(i, p) {
				return
			}
		}
	}
}

// Positions returns a copy of every position in index order.
func (s *Store) Positions() []Vec2 {
	out := make([]Vec2, len(s.positions))
	copy(out, s.positions)
	return out
}

func (s *Store) check(i int) {
	if i < 0 || i >= len(s.positions) {
		panic(fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, len(s.positions)))
	}
}
