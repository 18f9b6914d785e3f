package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUGetDoesNotBumpRecency(t *testing.T) {
	l, err := NewLRU(2)
	require.NoError(t, err)

	l.Put("a", 1)
	l.Put("b", 2)
	l.Get("a") // reads must not change eviction order
	l.Put("c", 3)

	_, ok := l.Get("a")
	assert.False(t, ok, "a should have been evicted as least recently used")
	_, ok = l.Get("b")
	assert.True(t, ok)
	_, ok = l.Get("c")
	assert.True(t, ok)
}

func TestLRUHitBumpsRecency(t *testing.T) {
	l, err := NewLRU(2)
	require.NoError(t, err)

	l.Put("a", 1)
	l.Put("b", 2)
	l.Hit("a")
	l.Put("c", 3)

	_, ok := l.Get("a")
	assert.True(t, ok, "a was hit and should survive")
	_, ok = l.Get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUHitMissIsNoop(t *testing.T) {
	l, err := NewLRU(2)
	require.NoError(t, err)

	l.Hit("missing")
	assert.Equal(t, 0, l.Len())

	l.Put("a", 1)
	v, ok := l.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	l.Purge()
	assert.Equal(t, 0, l.Len())
}
