// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/ports"
)

// RedisCache is a redis-backed ports.FrameCache. Cached frame data
// itself is owned by the decoder; this adapter only tracks and erases
// cache membership by MediaKey, per §4.4's cache-key service contract.
type RedisCache struct {
	client *redis.Client
	logger zerolog.Logger
	prefix string
}

// RedisConfig configures the connection, mirroring config.RedisConfig.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisCache dials addr and verifies connectivity before returning.
func NewRedisCache(cfg RedisConfig, logger zerolog.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: redis connection failed: %w", err)
	}
	logger.Info().Str("addr", cfg.Addr).Int("db", cfg.DB).Msg("connected to redis frame cache")
	return &RedisCache{client: client, logger: logger, prefix: "framekey:"}, nil
}

func (c *RedisCache) redisKey(k model.MediaKey) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s|%s|%d|%s", k.KeyFormat, k.URI, k.FileFrame, k.StreamName)))
	return c.prefix + hex.EncodeToString(sum[:])
}

// Put marks key as cached, used when a decoder reports a fresh decode.
func (c *RedisCache) Put(ctx context.Context, key model.MediaKey) error {
	if err := c.client.Set(ctx, c.redisKey(key), []byte{1}, 24*time.Hour).Err(); err != nil {
		return model.WrapCache(err)
	}
	return nil
}

func (c *RedisCache) Erase(ctx context.Context, keys []model.MediaKey) (int, error) {
	var redisKeys []string
	for _, k := range keys {
		if k.IsZero() {
			continue
		}
		redisKeys = append(redisKeys, c.redisKey(k))
	}
	if len(redisKeys) == 0 {
		return 0, nil
	}
	n, err := c.client.Del(ctx, redisKeys...).Result()
	if err != nil {
		c.logger.Warn().Err(err).Int("keys", len(redisKeys)).Msg("redis erase failed")
		return 0, model.WrapCache(err)
	}
	return int(n), nil
}

func (c *RedisCache) Contains(ctx context.Context, key model.MediaKey) bool {
	n, err := c.client.Exists(ctx, c.redisKey(key)).Result()
	if err != nil {
		return false
	}
	return n > 0
}

var _ ports.FrameCache = (*RedisCache)(nil)
