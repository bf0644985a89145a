package services

import (
	"context"
	"sync"
	"time"

	"github.com/architecture-survey/survey-api/internal/logging"
	"go.uber.org/zap"
)

// RateLimiter implements a token bucket rate limiter
type RateLimiter struct {
	tokens     int
	maxTokens  int
	refillRate time.Duration
	lastRefill time.Time
	mutex      sync.Mutex
	logger     *logging.SafeLogger
	now        func() time.Time
}

// newRateLimiterAt creates a token bucket that starts full and reads time from now
func newRateLimiterAt(maxTokens int, refillRate time.Duration, logger *logging.SafeLogger, now func() time.Time) *RateLimiter {
	return &RateLimiter{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastRefill: now(),
		logger:     logger,
		now:        now,
	}
}

// Allow checks if a request should be allowed based on rate limiting
func (rl *RateLimiter) Allow(ctx context.Context, operation string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	// Refill tokens based on time elapsed
	now := rl.now()
	elapsed := now.Sub(rl.lastRefill)

	tokensToAdd := int(elapsed / rl.refillRate)
	if tokensToAdd > 0 {
		rl.tokens += tokensToAdd
		if rl.tokens > rl.maxTokens {
			rl.tokens = rl.maxTokens
		}
		rl.lastRefill = rl.lastRefill.Add(time.Duration(tokensToAdd) * rl.refillRate)
	}

	if rl.tokens > 0 {
		rl.tokens--
		return true
	}

	rl.logger.Debug("rate limiter rejected request",
		zap.String("operation", operation),
		zap.Int("max_tokens", rl.maxTokens))
	return false
}

type clientBucket struct {
	limiter  *RateLimiter
	lastSeen time.Time
}

// ClientRateLimiter keeps one token bucket per client key (the caller IP) and
// operation, so each endpoint has its own budget
type ClientRateLimiter struct {
	mu                   sync.Mutex
	buckets              map[string]*clientBucket
	maxRequestsPerMinute int
	logger               *logging.SafeLogger
	now                  func() time.Time
}

// NewClientRateLimiter allows maxRequestsPerMinute requests per client, with
// bursts up to the same number
func NewClientRateLimiter(maxRequestsPerMinute int, logger *logging.SafeLogger) *ClientRateLimiter {
	return &ClientRateLimiter{
		buckets:              make(map[string]*clientBucket),
		maxRequestsPerMinute: maxRequestsPerMinute,
		logger:               logger,
		now:                  time.Now,
	}
}

// SetClock overrides the time source; used by tests
func (m *ClientRateLimiter) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Allow consumes a token from the client's bucket for operation
func (m *ClientRateLimiter) Allow(ctx context.Context, key, operation string) bool {
	bucketKey := operation + "|" + key

	m.mu.Lock()
	bucket, ok := m.buckets[bucketKey]
	if !ok {
		refillRate := time.Minute / time.Duration(m.maxRequestsPerMinute)
		bucket = &clientBucket{limiter: newRateLimiterAt(m.maxRequestsPerMinute, refillRate, m.logger, m.now)}
		m.buckets[bucketKey] = bucket
	}
	bucket.lastSeen = m.now()
	m.mu.Unlock()

	return bucket.limiter.Allow(ctx, operation)
}

// CleanupOldEntries drops buckets of clients idle for longer than olderThan
func (m *ClientRateLimiter) CleanupOldEntries(olderThan time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-olderThan)
	removed := 0
	for key, bucket := range m.buckets {
		if bucket.lastSeen.Before(cutoff) {
			delete(m.buckets, key)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Debug("cleaned up idle rate limit buckets", zap.Int("removed", removed))
	}
	return removed
}

// GetCacheSize returns the number of tracked client buckets
func (m *ClientRateLimiter) GetCacheSize() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buckets)
}

// StartCleanup removes idle buckets every interval until ctx is done
func (m *ClientRateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				removed := m.CleanupOldEntries(interval)
				m.logger.Debug("rate limiter sweep",
					zap.Int("removed", removed),
					zap.Int("tracked_buckets", m.GetCacheSize()))
			case <-ctx.Done():
				return
			}
		}
	}()
}
