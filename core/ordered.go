package core

// OrderedMap is a map that remembers the order in which keys were first inserted.
// Iteration through Keys follows that order, which the day view relies on to keep
// questions in query order.
type OrderedMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{values: make(map[K]V)}
}

// GetOrInsert returns the value for key, inserting def first when the key is absent.
func (m *OrderedMap[K, V]) GetOrInsert(key K, def V) V {
	if v, ok := m.values[key]; ok {
		return v
	}
	m.keys = append(m.keys, key)
	m.values[key] = def
	return def
}

// Set stores value under key. A new key is appended to the iteration order.
func (m *OrderedMap[K, V]) Set(key K, value V) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key and whether it was present.
func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *OrderedMap[K, V]) Keys() []K {
	return m.keys
}

// Len returns the number of keys.
func (m *OrderedMap[K, V]) Len() int {
	return len(m.keys)
}
