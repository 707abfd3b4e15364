package edit

// HeightCache holds host-measured pixel heights per block index. The values
// are opaque; the cache only keeps indices valid across block insertions and
// removals.
type HeightCache struct {
	heights map[int]float64
}

func NewHeightCache() *HeightCache {
	return &HeightCache{heights: make(map[int]float64)}
}

// Set records the measured height for a block index.
func (c *HeightCache) Set(index int, height float64) {
	c.heights[index] = height
}

// Get returns the cached height for a block index.
func (c *HeightCache) Get(index int) (float64, bool) {
	h, ok := c.heights[index]
	return h, ok
}

// ShiftInsert shifts every key at or above the insertion index up by one.
func (c *HeightCache) ShiftInsert(at int) {
	shifted := make(map[int]float64, len(c.heights))
	for i, h := range c.heights {
		if i >= at {
			shifted[i+1] = h
		} else {
			shifted[i] = h
		}
	}
	c.heights = shifted
}

// ShiftRemove drops the removed index and shifts every higher key down by
// one.
func (c *HeightCache) ShiftRemove(at int) {
	shifted := make(map[int]float64, len(c.heights))
	for i, h := range c.heights {
		switch {
		case i == at:
		case i > at:
			shifted[i-1] = h
		default:
			shifted[i] = h
		}
	}
	c.heights = shifted
}

// Len returns the number of cached entries.
func (c *HeightCache) Len() int {
	return len(c.heights)
}
