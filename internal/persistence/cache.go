package persistence

import (
	"fmt"
	"math/big"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachePolicy selects how divide-and-conquer subproducts are memoized.
type CachePolicy string

const (
	// PolicyUnbounded keeps every subproduct for the whole run.
	PolicyUnbounded CachePolicy = "unbounded"
	// PolicyLRU keeps at most Capacity subproducts, evicting the least recently used.
	PolicyLRU CachePolicy = "lru"
	// PolicyPerCandidate keeps every subproduct but is purged between search candidates.
	PolicyPerCandidate CachePolicy = "per-candidate"
	// PolicyNone disables memoization.
	PolicyNone CachePolicy = "none"
)

// DefaultCacheCapacity is the LRU capacity used when none is configured.
const DefaultCacheCapacity = 102048

// Cache stores digit-sequence products keyed by Digits.Key.
// Values handed to Add must not be mutated afterwards.
type Cache interface {
	Get(key string) (*big.Int, bool)
	Add(key string, product *big.Int)
	Len() int
	Purge()
}

// ParseCachePolicy maps a configuration string to a CachePolicy.
func ParseCachePolicy(s string) (CachePolicy, error) {
	switch p := CachePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyUnbounded, PolicyLRU, PolicyPerCandidate, PolicyNone:
		return p, nil
	case "":
		return PolicyLRU, nil
	default:
		return "", fmt.Errorf("unknown cache policy %q", s)
	}
}

// PurgeBetweenCandidates reports whether searches should drop the cache after
// each candidate.
func (p CachePolicy) PurgeBetweenCandidates() bool {
	return p == PolicyPerCandidate
}

// NewCache builds the cache for a policy. capacity only applies to PolicyLRU;
// values <= 0 fall back to DefaultCacheCapacity.
func NewCache(policy CachePolicy, capacity int) (Cache, error) {
	switch policy {
	case PolicyUnbounded, PolicyPerCandidate:
		return newMapCache(), nil
	case PolicyLRU:
		if capacity <= 0 {
			capacity = DefaultCacheCapacity
		}
		c, err := lru.New[string, *big.Int](capacity)
		if err != nil {
			return nil, fmt.Errorf("failed to create lru cache: %w", err)
		}
		return &lruCache{c: c}, nil
	case PolicyNone:
		return noCache{}, nil
	default:
		return nil, fmt.Errorf("unknown cache policy %q", policy)
	}
}

type mapCache struct {
	m map[string]*big.Int
}

func newMapCache() *mapCache {
	return &mapCache{m: make(map[string]*big.Int)}
}

func (c *mapCache) Get(key string) (*big.Int, bool) {
	v, ok := c.m[key]
	return v, ok
}

func (c *mapCache) Add(key string, product *big.Int) { c.m[key] = product }
func (c *mapCache) Len() int                         { return len(c.m) }

func (c *mapCache) Purge() {
	clear(c.m)
}

type lruCache struct {
	c *lru.Cache[string, *big.Int]
}

func (c *lruCache) Get(key string) (*big.Int, bool)  { return c.c.Get(key) }
func (c *lruCache) Add(key string, product *big.Int) { c.c.Add(key, product) }
func (c *lruCache) Len() int                         { return c.c.Len() }
func (c *lruCache) Purge()                           { c.c.Purge() }

type noCache struct{}

func (noCache) Get(string) (*big.Int, bool) { return nil, false }
func (noCache) Add(string, *big.Int)        {}
func (noCache) Len() int                    { return 0 }
func (noCache) Purge()                      {}
