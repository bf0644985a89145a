package services

import (
	"context"
	"sync"
	"time"

	"github.com/architecture-survey/survey-api/internal/logging"
	"github.com/architecture-survey/survey-api/internal/observability"
	"github.com/architecture-survey/survey-api/internal/utils"
	"go.uber.org/zap"
)

// CheckEmailCachePrefix namespaces uniqueness verdicts in the cache
const CheckEmailCachePrefix = "check_email"

// VerdictCache stores email uniqueness verdicts with a TTL. A miss, an expired
// entry and a backend failure all report found=false so callers fall back to the store.
type VerdictCache interface {
	Get(ctx context.Context, key string) (verdict bool, found bool)
	Set(ctx context.Context, key string, verdict bool, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Flush(ctx context.Context)
	Name() string
}

type verdictEntry struct {
	verdict   bool
	expiresAt time.Time
}

// MemoryVerdictCache is a process-local VerdictCache with a background sweep of
// expired entries
type MemoryVerdictCache struct {
	entries         map[string]verdictEntry
	mu              sync.RWMutex
	logger          *logging.SafeLogger
	now             func() time.Time
	cleanupInterval time.Duration
	stopCh          chan struct{}
	stopOnce        sync.Once
}

// NewMemoryVerdictCache creates a memory cache. A positive cleanupInterval starts
// the sweep goroutine, which runs until Stop.
func NewMemoryVerdictCache(logger *logging.SafeLogger, cleanupInterval time.Duration) *MemoryVerdictCache {
	c := &MemoryVerdictCache{
		entries:         make(map[string]verdictEntry),
		logger:          logger,
		now:             time.Now,
		cleanupInterval: cleanupInterval,
		stopCh:          make(chan struct{}),
	}

	if cleanupInterval > 0 {
		go c.startCleanupTask()
	}

	return c
}

// SetClock replaces the time source used for expiry
func (c *MemoryVerdictCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *MemoryVerdictCache) Name() string {
	return "memory"
}

func (c *MemoryVerdictCache) Get(ctx context.Context, key string) (bool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || !c.now().Before(entry.expiresAt) {
		return false, false
	}
	return entry.verdict, true
}

func (c *MemoryVerdictCache) Set(ctx context.Context, key string, verdict bool, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = verdictEntry{
		verdict:   verdict,
		expiresAt: c.now().Add(ttl),
	}
}

func (c *MemoryVerdictCache) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *MemoryVerdictCache) Flush(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]verdictEntry)
}

// Len returns the number of stored entries, expired ones included
func (c *MemoryVerdictCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Cleanup removes expired entries
func (c *MemoryVerdictCache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	expired := 0
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
			expired++
		}
	}
	return expired
}

func (c *MemoryVerdictCache) startCleanupTask() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := c.Cleanup(); n > 0 {
				c.logger.Debug("cleaned up expired verdicts", zap.Int("expired_count", n))
			}
			observability.VerdictCacheEntries.Set(float64(c.Len()))
		case <-c.stopCh:
			return
		}
	}
}

// Stop ends the background sweep. Safe to call more than once.
func (c *MemoryVerdictCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

// NoopVerdictCache disables caching: every lookup misses
type NoopVerdictCache struct{}

func (NoopVerdictCache) Get(context.Context, string) (bool, bool)         { return false, false }
func (NoopVerdictCache) Set(context.Context, string, bool, time.Duration) {}
func (NoopVerdictCache) Delete(context.Context, string)                   {}
func (NoopVerdictCache) Flush(context.Context)                            {}
func (NoopVerdictCache) Name() string                                     { return "none" }

// tracedVerdictCache opens a cache span around every call of the wrapped cache.
// Keys are never attached to spans.
type tracedVerdictCache struct {
	VerdictCache
}

// withTracing wraps cache in a tracedVerdictCache; nil becomes NoopVerdictCache
func withTracing(cache VerdictCache) VerdictCache {
	switch cache.(type) {
	case nil:
		return tracedVerdictCache{VerdictCache: NoopVerdictCache{}}
	case tracedVerdictCache:
		return cache
	}
	return tracedVerdictCache{VerdictCache: cache}
}

func (c tracedVerdictCache) Get(ctx context.Context, key string) (bool, bool) {
	ctx, span, done := utils.TraceCacheOperation(ctx, c.Name(), "get")
	defer done()

	verdict, found := c.VerdictCache.Get(ctx, key)
	utils.AddSpanAttribute(span, "cache.hit", found)
	return verdict, found
}

func (c tracedVerdictCache) Set(ctx context.Context, key string, verdict bool, ttl time.Duration) {
	ctx, span, done := utils.TraceCacheOperation(ctx, c.Name(), "set")
	defer done()

	utils.AddSpanAttribute(span, "cache.ttl", ttl)
	c.VerdictCache.Set(ctx, key, verdict, ttl)
}

func (c tracedVerdictCache) Delete(ctx context.Context, key string) {
	ctx, _, done := utils.TraceCacheOperation(ctx, c.Name(), "delete")
	defer done()
	c.VerdictCache.Delete(ctx, key)
}

func (c tracedVerdictCache) Flush(ctx context.Context) {
	ctx, _, done := utils.TraceCacheOperation(ctx, c.Name(), "flush")
	defer done()
	c.VerdictCache.Flush(ctx)
}
