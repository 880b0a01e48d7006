// Package region caches standalone Cube snapshots keyed by the CubeCoord
// they were extracted at, sitting in front of a single authoritative Cube
// root that writers replace via compare-and-swap.
package region

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/voxelcore/cube/internal/cube"
)

// Config holds tunables for a Cache.
type Config struct {
	// MaxCachedSubtrees bounds the number of GetSubtree results the cache
	// keeps.
	MaxCachedSubtrees int
}

// DefaultConfig returns default cache tunables.
func DefaultConfig() Config {
	return Config{MaxCachedSubtrees: 64}
}

// Cache serves GetSubtree/SetSubtree requests against a single *cube.Cube
// root, keeping an LRU of recently extracted subtrees so repeated reads of
// the same region skip re-walking the root.
type Cache struct {
	root atomic.Pointer[cube.Cube]

	mu        sync.Mutex
	subtrees  map[cube.CubeCoord]*cube.Cube
	lruOrder  []cube.CubeCoord
	maxCached int
	log       *zap.SugaredLogger
}

// New builds a Cache over root. log may be nil, in which case eviction,
// write retries and cache invalidation are not logged.
func New(root *cube.Cube, cfg Config, log *zap.SugaredLogger) *Cache {
	c := &Cache{
		subtrees:  make(map[cube.CubeCoord]*cube.Cube),
		maxCached: cfg.MaxCachedSubtrees,
		log:       log,
	}
	c.root.Store(root)
	return c
}

// Root returns the cache's current authoritative root.
func (c *Cache) Root() *cube.Cube {
	return c.root.Load()
}

// GetSubtree returns the Cube rooted at coord, consulting the subtree LRU
// before falling back to a fresh walk of the current root.
func (c *Cache) GetSubtree(coord cube.CubeCoord) (*cube.Cube, error) {
	c.mu.Lock()
	if sub, ok := c.subtrees[coord]; ok {
		c.touch(coord)
		c.mu.Unlock()
		return sub, nil
	}
	c.mu.Unlock()

	sub, err := cube.GetSubtree(c.root.Load(), coord)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.insert(coord, sub)
	c.mu.Unlock()
	return sub, nil
}

// SetSubtree replaces the subtree at coord with sub, retrying against the
// current root if a concurrent writer updates it first, then drops the
// subtree LRU since any cached entry may now be stale.
func (c *Cache) SetSubtree(coord cube.CubeCoord, sub *cube.Cube) error {
	for {
		old := c.root.Load()
		next, err := cube.SetSubtree(old, coord, sub)
		if err != nil {
			return err
		}
		if c.root.CompareAndSwap(old, next) {
			break
		}
		if c.log != nil {
			c.log.Debugw("region: retrying SetSubtree after concurrent root swap", "coord", coord)
		}
	}

	c.mu.Lock()
	if c.log != nil && len(c.subtrees) > 0 {
		c.log.Debugw("region: invalidating subtree cache after write", "entries", len(c.subtrees))
	}
	c.subtrees = make(map[cube.CubeCoord]*cube.Cube)
	c.lruOrder = c.lruOrder[:0]
	c.mu.Unlock()
	return nil
}

// insert must be called with mu held.
func (c *Cache) insert(coord cube.CubeCoord, sub *cube.Cube) {
	if _, exists := c.subtrees[coord]; exists {
		c.touch(coord)
		return
	}
	for len(c.subtrees) >= c.maxCached && len(c.lruOrder) > 0 {
		oldest := c.lruOrder[0]
		c.lruOrder = c.lruOrder[1:]
		delete(c.subtrees, oldest)
		if c.log != nil {
			c.log.Debugw("region: evicted cached subtree", "coord", oldest)
		}
	}
	c.subtrees[coord] = sub
	c.lruOrder = append(c.lruOrder, coord)
}

// touch must be called with mu held; it moves coord to the back of the LRU.
func (c *Cache) touch(coord cube.CubeCoord) {
	for i, cur := range c.lruOrder {
		if cur == coord {
			c.lruOrder = append(c.lruOrder[:i], c.lruOrder[i+1:]...)
			break
		}
	}
	c.lruOrder = append(c.lruOrder, coord)
}

// CachedCount returns the number of subtrees currently held in the LRU.
func (c *Cache) CachedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subtrees)
}
