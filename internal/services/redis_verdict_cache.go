package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/architecture-survey/survey-api/internal/logging"
	"github.com/architecture-survey/survey-api/internal/redisclient"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	redisVerdictPrefix = "survey:verdict:"
	redisScanBatch     = 200
)

// RedisVerdictCache shares verdicts across replicas. Keys are digested so
// participant emails never reach Redis in plaintext.
type RedisVerdictCache struct {
	client *redisclient.Client
	logger *logging.SafeLogger
}

// NewRedisVerdictCache creates a verdict cache over a traced Redis client
func NewRedisVerdictCache(client *redisclient.Client, logger *logging.SafeLogger) *RedisVerdictCache {
	return &RedisVerdictCache{client: client, logger: logger}
}

func (c *RedisVerdictCache) Name() string {
	return "redis"
}

func (c *RedisVerdictCache) redisKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return redisVerdictPrefix + hex.EncodeToString(sum[:])
}

func (c *RedisVerdictCache) Get(ctx context.Context, key string) (bool, bool) {
	val, err := c.client.Get(ctx, c.redisKey(key)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("verdict cache read failed, falling back to store", zap.Error(err))
		}
		return false, false
	}
	return val == "1", true
}

func (c *RedisVerdictCache) Set(ctx context.Context, key string, verdict bool, ttl time.Duration) {
	val := "0"
	if verdict {
		val = "1"
	}
	if err := c.client.Set(ctx, c.redisKey(key), val, ttl).Err(); err != nil {
		c.logger.Warn("verdict cache write failed", zap.Error(err))
	}
}

func (c *RedisVerdictCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, c.redisKey(key)).Err(); err != nil {
		c.logger.Warn("verdict cache delete failed", zap.Error(err))
	}
}

// Flush removes every verdict under the cache prefix
func (c *RedisVerdictCache) Flush(ctx context.Context) {
	keys, err := c.client.ScanKeys(ctx, redisVerdictPrefix+"*", redisScanBatch)
	if err != nil {
		c.logger.Error("verdict cache flush scan failed", zap.Error(err))
		return
	}

	for start := 0; start < len(keys); start += redisScanBatch {
		end := start + redisScanBatch
		if end > len(keys) {
			end = len(keys)
		}
		if err := c.client.Del(ctx, keys[start:end]...).Err(); err != nil {
			c.logger.Error("verdict cache flush delete failed", zap.Error(err))
			return
		}
	}

	c.logger.Info("verdict cache flushed", zap.Int("keys", len(keys)))
}

// Ping checks the Redis connection for health reporting
func (c *RedisVerdictCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
