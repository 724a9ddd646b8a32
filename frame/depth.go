package frame

import "dasa.cc/minxr/set"

// DepthCache pairs swapchain color textures with depth textures created on
// first use. Entries are never evicted; the cache grows by one for each
// distinct color texture it sees.
type DepthCache struct {
	colors set.Slice[uint32]
	depths set.Simple[uint32]
}

// Lookup returns the depth texture paired with color, calling create to
// make one if color has not been seen. A failed create leaves the cache
// unchanged.
func (c *DepthCache) Lookup(color uint32, create func(color uint32) (uint32, error)) (uint32, error) {
	i, found := c.colors.Search(color)
	if found {
		return c.depths[i], nil
	}
	depth, err := create(color)
	if err != nil {
		return 0, err
	}
	c.colors.Insert(color)
	c.depths.Upsert(depth, i, true)
	return depth, nil
}

// Len returns the number of pairs.
func (c *DepthCache) Len() int { return len(c.colors) }

// Depths returns every cached depth texture ordered by color texture.
func (c *DepthCache) Depths() []uint32 { return append([]uint32(nil), c.depths...) }

// Reset forgets all pairs without deleting textures.
func (c *DepthCache) Reset() {
	c.colors = c.colors[:0]
	c.depths = c.depths[:0]
}
