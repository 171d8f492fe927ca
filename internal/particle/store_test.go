package particle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAddReturnsPreviousLength(t *testing.T) {
	s := NewStore(0)
	for i := 0; i < 5; i++ {
		idx := s.Add(V(float64(i), 0))
		assert.Equal(t, i, idx, "index of particle %d", i)
	}
	assert.Equal(t, 5, s.Len())
}

func TestStoreGetSet(t *testing.T) {
	s := NewStore(2)
	a := s.Add(V(1, 2))
	b := s.Add(V(3, 4))

	s.Set(a, V(-1, -2))
	assert.Equal(t, V(-1, -2), s.Get(a))
	assert.Equal(t, V(3, 4), s.Get(b), "untouched particle")
}

func TestStoreOutOfRangePanics(t *testing.T) {
	s := NewStore(0)
	s.Add(V(0, 0))

	for _, idx := range []int{-1, 1, 100} {
		func() {
			defer func() {
				r := recover()
				require.NotNil(t, r, "index %d", idx)
				err, ok := r.(error)
				require.True(t, ok, "panic value is an error")
				assert.True(t, errors.Is(err, ErrIndexOutOfRange))
			}()
			s.Get(idx)
		}()
	}

	assert.Panics(t, func() { s.Set(1, V(0, 0)) })
}

func TestStoreAllIsRestartable(t *testing.T) {
	s := NewStore(0)
	s.Add(V(1, 1))
	s.Add(V(2, 2))
	s.Add(V(3, 3))

	collect := func() []Vec2 {
		var out []Vec2
		for i, p := range s.All() {
			assert.Equal(t, len(out), i)
			out = append(out, p)
		}
		return out
	}

	first := collect()
	s.Set(1, V(9, 9))
	second := collect()

	assert.Equal(t, []Vec2{V(1, 1), V(2, 2), V(3, 3)}, first)
	assert.Equal(t, []Vec2{V(1, 1), V(9, 9), V(3, 3)}, second)

	n := 0
	for range s.All() {
		n++
		break
	}
	assert.Equal(t, 1, n, "early break stops iteration")
}

func TestStorePositionsIsCopy(t *testing.T) {
	s := NewStore(0)
	s.Add(V(1, 1))
	ps := s.Positions()
	ps[0] = V(5, 5)
	assert.Equal(t, V(1, 1), s.Get(0))
}

func TestVec2(t *testing.T) {
	a, b := V(0, 0), V(3, 4)
	assert.Equal(t, 5.0, a.Distance(b))
	assert.Equal(t, V(1.5, 2), a.Lerp(b, 0.5))
	assert.Equal(t, V(6, 8), b.Scale(2))
	assert.True(t, b.IsValid())
}
