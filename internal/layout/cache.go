package layout

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	lru "github.com/hashicorp/golang-lru/v2"

	"epicgraph/internal/debug"
	"epicgraph/internal/graph"
	"epicgraph/internal/overrides"
)

// DefaultCacheSize is used when a non-positive size is requested.
const DefaultCacheSize = 64

// Cache memoizes layouts by a fingerprint of their inputs. It is safe for
// concurrent use.
type Cache struct {
	entries *lru.Cache[string, Layout]
}

// NewCache returns a cache holding up to size layouts.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[string, Layout](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// Get returns a copy of the cached layout for key.
func (c *Cache) Get(key string) (Layout, bool) {
	l, ok := c.entries.Get(key)
	if !ok {
		return Layout{}, false
	}
	return l.clone(), true
}

// Add stores l under key.
func (c *Cache) Add(key string, l Layout) {
	c.entries.Add(key, l.clone())
}

// Len returns the number of cached layouts.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge drops every cached layout.
func (c *Cache) Purge() {
	c.entries.Purge()
}

// Fingerprint identifies the inputs of Compute.
func Fingerprint(g graph.Graph, s Settings, ov overrides.Map) string {
	if ov == nil {
		ov = overrides.Map{}
	}
	payload := struct {
		Graph     graph.Graph   `json:"g"`
		Settings  Settings      `json:"s"`
		Overrides overrides.Map `json:"o"`
	}{g, s.normalized(), ov}
	data, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Engine computes layouts, reusing cached results when a Cache is set.
type Engine struct {
	cache *Cache
}

// NewEngine returns an Engine. cache may be nil.
func NewEngine(cache *Cache) *Engine {
	return &Engine{cache: cache}
}

// Compute is the cached form of the package-level Compute.
func (e *Engine) Compute(g graph.Graph, s Settings, ov overrides.Map) (Layout, error) {
	if e == nil || e.cache == nil {
		return Compute(g, s, ov)
	}
	key := Fingerprint(g, s, ov)
	if key != "" {
		if l, ok := e.cache.Get(key); ok {
			debug.Logf("layout: cache hit %s", key)
			return l, nil
		}
	}
	l, err := Compute(g, s, ov)
	if err != nil {
		return Layout{}, err
	}
	if key != "" {
		e.cache.Add(key, l)
	}
	return l, nil
}
