package persist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListEmpty(t *testing.T) {
	var l List[int]
	assert.Equal(t, 0, l.Len())
	assert.True(t, l.IsEmpty())
	_, err := l.Get(0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestListAddGet(t *testing.T) {
	var l List[int]
	for i := 1; i <= 33; i++ {
		l = l.Add(i)
	}
	require.Equal(t, 33, l.Len())

	v, err := l.Get(31)
	require.NoError(t, err)
	assert.Equal(t, 32, v)

	v, err = l.Get(32)
	require.NoError(t, err)
	assert.Equal(t, 33, v)
}

func TestListSet(t *testing.T) {
	var l List[int]
	for i := 1; i <= 64; i++ {
		l = l.Add(i)
	}

	l2, err := l.Set(60, 100)
	require.NoError(t, err)

	v, _ := l2.Get(60)
	assert.Equal(t, 100, v)

	orig, _ := l.Get(60)
	assert.Equal(t, 61, orig)
}

func TestListSetOutOfRange(t *testing.T) {
	l := NewList(1, 2, 3)
	_, err := l.Set(3, 99)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
}

func TestListFromSlice(t *testing.T) {
	l := FromSlice([]string{"a", "b", "c"})
	assert.Equal(t, 3, l.Len())
	v, _ := l.Get(2)
	assert.Equal(t, "c", v)
}

func TestListFromSeq(t *testing.T) {
	seq := func(yield func(int) bool) {
		for i := 0; i < 5; i++ {
			if !yield(i * i) {
				return
			}
		}
	}
	l := FromSeq[int](seq)
	assert.Equal(t, 5, l.Len())
	v, _ := l.Get(4)
	assert.Equal(t, 16, v)
}

func TestListContains(t *testing.T) {
	l := NewList("a", "b", "c")
	assert.True(t, l.Contains("b"))
	assert.False(t, l.Contains("z"))
	assert.True(t, l.ContainsAll("a", "c"))
	assert.False(t, l.ContainsAll("a", "z"))
}

func TestListIterationOrder(t *testing.T) {
	l := NewList(1, 2, 3, 4, 5)
	var got []int
	for v := range l.All() {
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
}

func TestListAppendGetInvariant(t *testing.T) {
	var l List[int]
	for i := 0; i < 200; i++ {
		before := l.Len()
		l = l.Add(i)
		assert.Equal(t, before+1, l.Len())
		v, err := l.Get(before)
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}
}

func TestListPersistenceAcrossAdd(t *testing.T) {
	l1 := NewList(1, 2, 3)
	l2 := l1.Add(4)

	assert.Equal(t, 3, l1.Len())
	assert.Equal(t, 4, l2.Len())
	_, err := l1.Get(3)
	assert.Error(t, err)
}

func TestListStringAndLongString(t *testing.T) {
	l := NewList(1, 2, 3)
	assert.Contains(t, l.String(), "size:3")
	assert.Contains(t, l.LongString(), "Vector{size:3")
}
