package ordered

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapPreservesInsertionOrder(t *testing.T) {
	m := New[string, int]()
	m.Set("b", 2)
	m.Set("a", 1)
	m.Set("c", 3)

	assert.Equal(t, []string{"b", "a", "c"}, m.Keys())
	assert.Equal(t, 3, m.Len())
}

func TestMapUpdateKeepsPosition(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 100)

	assert.Equal(t, []string{"a", "b"}, m.Keys())

	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 100, v)
}

func TestMapHasAndMissingGet(t *testing.T) {
	m := New[string, int]()
	m.Set("x", 1)

	assert.True(t, m.Has("x"))
	assert.False(t, m.Has("y"))

	_, ok := m.Get("y")
	assert.False(t, ok)
}

func TestMapRangeStopsEarly(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	var seen []string
	m.Range(func(k string, v int) bool {
		seen = append(seen, k)
		return k != "b"
	})

	assert.Equal(t, []string{"a", "b"}, seen)
}
