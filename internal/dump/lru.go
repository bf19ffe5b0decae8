package dump

import "container/list"

type lruEntry[K comparable, V any] struct {
	key   K
	value V
}

// lru is a fixed-capacity least-recently-used map. The front of order is the
// most recently used entry.
type lru[K comparable, V any] struct {
	capacity int
	order    *list.List
	items    map[K]*list.Element
}

func newLRU[K comparable, V any](capacity int) *lru[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &lru[K, V]{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[K]*list.Element, capacity),
	}
}

// get returns the value for key and promotes it to most recently used.
func (c *lru[K, V]) get(key K) (V, bool) {
	if el, ok := c.items[key]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*lruEntry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// put stores value under key. When a new key would exceed capacity, entries
// are evicted from the tail first.
func (c *lru[K, V]) put(key K, value V) {
	if el, ok := c.items[key]; ok {
		el.Value.(*lruEntry[K, V]).value = value
		c.order.MoveToFront(el)
		return
	}
	for c.order.Len() >= c.capacity {
		tail := c.order.Back()
		delete(c.items, tail.Value.(*lruEntry[K, V]).key)
		c.order.Remove(tail)
	}
	c.items[key] = c.order.PushFront(&lruEntry[K, V]{key: key, value: value})
}

func (c *lru[K, V]) contains(key K) bool {
	_, ok := c.items[key]
	return ok
}

func (c *lru[K, V]) len() int {
	return c.order.Len()
}

func (c *lru[K, V]) clear() {
	c.order.Init()
	c.items = make(map[K]*list.Element, c.capacity)
}
