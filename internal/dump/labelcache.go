package dump

// DefaultCacheCapacity is used when no capacity is configured. It covers a
// 64-row window with room to spare.
const DefaultCacheCapacity = 1024

// CacheStats counts label cache lookups.
type CacheStats struct {
	Hits   uint64
	Misses uint64
}

// LabelCache memoizes LabelSet.Covering per offset with LRU eviction.
type LabelCache struct {
	labels  *LabelSet
	entries *lru[int, []int]
	stats   CacheStats
}

// NewLabelCache creates a cache in front of labels. A non-positive capacity
// selects DefaultCacheCapacity.
func NewLabelCache(labels *LabelSet, capacity int) *LabelCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &LabelCache{
		labels:  labels,
		entries: newLRU[int, []int](capacity),
	}
}

// LabelsForByte returns the indices of the labels covering offset.
func (c *LabelCache) LabelsForByte(offset int) []int {
	if covering, ok := c.entries.get(offset); ok {
		c.stats.Hits++
		return covering
	}
	c.stats.Misses++
	covering := c.labels.Covering(offset)
	c.entries.put(offset, covering)
	return covering
}

// contains reports whether offset is cached, without promoting it.
func (c *LabelCache) contains(offset int) bool {
	return c.entries.contains(offset)
}

// Len returns the number of cached offsets.
func (c *LabelCache) Len() int {
	return c.entries.len()
}

// Capacity returns the maximum number of cached offsets.
func (c *LabelCache) Capacity() int {
	return c.entries.capacity
}

// Stats returns hit and miss counters since creation.
func (c *LabelCache) Stats() CacheStats {
	return c.stats
}

// Clear drops every cached offset.
func (c *LabelCache) Clear() {
	c.entries.clear()
}
