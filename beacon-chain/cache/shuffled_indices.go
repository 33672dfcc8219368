package cache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// maxShuffledListSize defines the max number of shuffled list can cache.
	maxShuffledListSize = 4

	// Metrics.
	shuffledIndicesCacheMiss = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shuffled_validators_cache_miss",
		Help: "The number of shuffled validators requests that aren't present in the cache.",
	})
	shuffledIndicesCacheHit = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shuffled_validators_cache_hit",
		Help: "The number of shuffled validators requests that are present in the cache.",
	})
)

// ShuffleKey identifies a shuffling permutation. The permutation of positions
// depends only on the seed, the list length and the number of rounds, so it
// can be shared by any registry with the same active count.
type ShuffleKey struct {
	Seed   [32]byte
	Count  uint64
	Rounds uint64
}

// ShuffledIndicesCache is a LRU cache of shuffled positions keyed by ShuffleKey.
type ShuffledIndicesCache struct {
	cache *lru.Cache[ShuffleKey, []uint64]
	lock  sync.Mutex
}

// NewShuffledIndicesCache creates a new shuffled validators cache for storing/accessing shuffled positions.
func NewShuffledIndicesCache(size int) *ShuffledIndicesCache {
	if size <= 0 {
		size = maxShuffledListSize
	}
	c, err := lru.New[ShuffleKey, []uint64](size)
	if err != nil {
		// lru.New only fails on a non-positive size.
		panic(err)
	}
	return &ShuffledIndicesCache{cache: c}
}

// ShuffledPositions fetches the permutation for the key. The returned slice
// must not be mutated. Returns nil when the key is not cached.
func (c *ShuffledIndicesCache) ShuffledPositions(key ShuffleKey) []uint64 {
	c.lock.Lock()
	defer c.lock.Unlock()
	positions, ok := c.cache.Get(key)
	if !ok {
		shuffledIndicesCacheMiss.Inc()
		return nil
	}
	shuffledIndicesCacheHit.Inc()
	return positions
}

// AddShuffledPositions adds a permutation to the cache, evicting the least
// recently used entry once the cache is full.
func (c *ShuffledIndicesCache) AddShuffledPositions(key ShuffleKey, positions []uint64) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.cache.Add(key, positions)
}

// Len returns the number of cached permutations.
func (c *ShuffledIndicesCache) Len() int {
	return c.cache.Len()
}
