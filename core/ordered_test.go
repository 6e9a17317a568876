package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedMap(t *testing.T) {
	m := NewOrderedMap[string, []int]()

	assert.Nil(t, m.GetOrInsert("b", nil))
	m.Set("a", []int{1})
	m.Set("b", append(m.GetOrInsert("b", nil), 2))
	m.Set("a", append(m.GetOrInsert("a", nil), 3))

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	assert.Equal(t, 2, m.Len())

	a, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, []int{1, 3}, a)

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestOrderedMapCounter(t *testing.T) {
	m := NewOrderedMap[string, int]()
	for _, k := range []string{"Mar", "Feb", "Mar", "Mar"} {
		m.Set(k, m.GetOrInsert(k, 0)+1)
	}

	feb, _ := m.Get("Feb")
	mar, _ := m.Get("Mar")
	assert.Equal(t, []string{"Mar", "Feb"}, m.Keys())
	assert.Equal(t, 1, feb)
	assert.Equal(t, 3, mar)
}
