package img2ascii

import (
	"sync"
)

// orderedMap is a map that remembers insertion order.
type orderedMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
	mu     sync.RWMutex
}

func newOrderedMap[K comparable, V any]() *orderedMap[K, V] {
	return &orderedMap[K, V]{
		keys:   make([]K, 0),
		values: make(map[K]V),
	}
}

// Set adds a key-value pair. Existing keys keep their position.
func (om *orderedMap[K, V]) Set(key K, value V) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if _, exists := om.values[key]; !exists {
		om.keys = append(om.keys, key)
	}
	om.values[key] = value
}

// SetIfAbsent adds the pair only when key is new and reports whether it
// did.
func (om *orderedMap[K, V]) SetIfAbsent(key K, value V) bool {
	om.mu.Lock()
	defer om.mu.Unlock()

	if _, exists := om.values[key]; exists {
		return false
	}
	om.keys = append(om.keys, key)
	om.values[key] = value
	return true
}

// Get retrieves a value by key.
func (om *orderedMap[K, V]) Get(key K) (V, bool) {
	om.mu.RLock()
	defer om.mu.RUnlock()

	val, exists := om.values[key]
	return val, exists
}

// Keys returns the keys in insertion order.
func (om *orderedMap[K, V]) Keys() []K {
	om.mu.RLock()
	defer om.mu.RUnlock()

	return append([]K{}, om.keys...)
}

// Values returns the values in insertion order.
func (om *orderedMap[K, V]) Values() []V {
	om.mu.RLock()
	defer om.mu.RUnlock()

	out := make([]V, len(om.keys))
	for i, k := range om.keys {
		out[i] = om.values[k]
	}
	return out
}

// Iterate calls f for each pair in order.
func (om *orderedMap[K, V]) Iterate(f func(key K, value V)) {
	om.mu.RLock()
	defer om.mu.RUnlock()

	for _, k := range om.keys {
		f(k, om.values[k])
	}
}

// Len returns the number of elements in the map
func (om *orderedMap[K, V]) Len() int {
	om.mu.RLock()
	defer om.mu.RUnlock()

	return len(om.keys)
}
