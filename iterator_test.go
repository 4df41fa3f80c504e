package persist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIteratorPullsInOrder(t *testing.T) {
	l := NewList(1, 2, 3)
	it := l.Iterator()

	for _, want := range []int{1, 2, 3} {
		v, err := it.Next()
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}

	_, err := it.Next()
	assert.ErrorIs(t, err, ErrIteratorExhausted)
}

func TestIteratorExhaustedIsSticky(t *testing.T) {
	l := NewList[int]()
	it := l.Iterator()

	_, err := it.Next()
	assert.ErrorIs(t, err, ErrIteratorExhausted)
	_, err = it.Next()
	assert.ErrorIs(t, err, ErrIteratorExhausted)
}

func TestMapEntryIterator(t *testing.T) {
	m := NewMap(KV[string, int]{Key: "a", Val: 1})
	it := m.EntryIterator()

	e, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, Entry[string, int]{Key: "a", Val: 1}, e)

	_, err = it.Next()
	assert.ErrorIs(t, err, ErrIteratorExhausted)
}

func TestIteratorClose(t *testing.T) {
	l := NewList(1, 2, 3)
	it := l.Iterator()
	_, _ = it.Next()
	it.Close()
	it.Close() // safe to call twice
}
