package mcpserver

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/erraggy/restoas/parser"
)

// parseCache keeps parsed specifications for the life of the process in
// least recently used order. Concurrent loads of one key share a single
// parse.
type parseCache struct {
	mu      sync.Mutex
	order   *list.List // front is most recently used
	entries map[string]*list.Element
	maxSize int

	flights  singleflight.Group
	sweeping atomic.Bool
}

type cached struct {
	key       string
	result    *parser.ParseResult
	expiresAt time.Time
}

var specCache = newParseCache(cfg.CacheMaxSize)

func newParseCache(maxSize int) *parseCache {
	return &parseCache{
		order:   list.New(),
		entries: make(map[string]*list.Element),
		maxSize: maxSize,
	}
}

// load returns the cached result for key or stores what parse returns.
// Failures are not cached.
func (c *parseCache) load(key string, ttl time.Duration, parse func() (*parser.ParseResult, error)) (*parser.ParseResult, error) {
	if res := c.get(key); res != nil {
		return res, nil
	}
	v, err, _ := c.flights.Do(key, func() (any, error) {
		res, err := parse()
		if err != nil {
			return nil, err
		}
		c.put(key, res, ttl)
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*parser.ParseResult), nil
}

// get returns the live entry for key and marks it used.
func (c *parseCache) get(key string) *parser.ParseResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[key]
	if !ok {
		return nil
	}
	e := el.Value.(*cached)
	if time.Now().After(e.expiresAt) {
		c.remove(el)
		return nil
	}
	c.order.MoveToFront(el)
	return e.result
}

func (c *parseCache) put(key string, res *parser.ParseResult, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := &cached{key: key, result: res, expiresAt: time.Now().Add(ttl)}
	if el, ok := c.entries[key]; ok {
		el.Value = e
		c.order.MoveToFront(el)
		return
	}
	for c.order.Len() >= c.maxSize && c.order.Len() > 0 {
		c.remove(c.order.Back())
	}
	c.entries[key] = c.order.PushFront(e)
}

// remove must be called with mu held.
func (c *parseCache) remove(el *list.Element) {
	c.order.Remove(el)
	delete(c.entries, el.Value.(*cached).key)
}

// sweep drops expired entries.
func (c *parseCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		if now.After(el.Value.(*cached).expiresAt) {
			c.remove(el)
		}
		el = next
	}
}

// startSweeper sweeps every interval until ctx is done. Only one sweeper
// runs at a time.
func (c *parseCache) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.sweeping.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeping.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

func (c *parseCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.entries = make(map[string]*list.Element)
}

func (c *parseCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
