package fuzzdex

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"golang.org/x/sync/singleflight"
)

// CacheStats holds must-token cache counters. Size is sampled on request.
type CacheStats struct {
	Hits    int64
	Misses  int64
	Inserts int64
	Size    int
}

// heatmapCache memoizes Stage-1 heatmaps keyed by the normalized must
// token. Should tokens, constraints and limits are deliberately not part of
// the key: they are applied after the cached stage, so a cached entry can
// never leak into a hit list it does not belong to. Concurrent misses for
// the same token are coalesced so the heatmap is built once.
type heatmapCache struct {
	entries *lru.Cache[string, *heatmap]
	group   singleflight.Group

	hits    atomic.Int64
	misses  atomic.Int64
	inserts atomic.Int64
}

// newHeatmapCache returns a cache bounded to size entries, or a pass-through
// cache when size <= 0.
func newHeatmapCache(size int) *heatmapCache {
	c := &heatmapCache{}
	if size > 0 {
		// NewLRU only errors on a non-positive size.
		c.entries, _ = lru.New[string, *heatmap](size)
	}
	return c
}

// getOrBuild returns the heatmap for token, building it at most once per
// concurrent burst of identical misses.
func (c *heatmapCache) getOrBuild(token string, build func(string) *heatmap) *heatmap {
	if c.entries == nil {
		c.misses.Add(1)
		return build(token)
	}

	if hm, ok := c.entries.Get(token); ok {
		c.hits.Add(1)
		return hm
	}
	c.misses.Add(1)

	v, _, _ := c.group.Do(token, func() (any, error) {
		if hm, ok := c.entries.Get(token); ok {
			return hm, nil
		}
		hm := build(token)
		c.entries.Add(token, hm)
		c.inserts.Add(1)
		return hm, nil
	})
	return v.(*heatmap)
}

func (c *heatmapCache) stats() CacheStats {
	s := CacheStats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Inserts: c.inserts.Load(),
	}
	if c.entries != nil {
		s.Size = c.entries.Len()
	}
	return s
}
