// SPDX-License-Identifier: Apache-2.0

// Package cache provides ports.FrameCache adapters: an in-memory set
// for tests and a redis-backed cache for production, grounded on the
// teacher's internal/cache RedisCache.
package cache

import (
	"context"
	"sync"

	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/ports"
)

// Memory is an in-process ports.FrameCache backed by a set of keys.
type Memory struct {
	mu      sync.Mutex
	entries map[model.MediaKey]struct{}
}

// NewMemory builds an empty Memory cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[model.MediaKey]struct{})}
}

// Put marks key as cached, used by tests to seed cache state before
// exercising invalidation.
func (c *Memory) Put(key model.MediaKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = struct{}{}
}

func (c *Memory) Erase(ctx context.Context, keys []model.MediaKey) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	erased := 0
	for _, k := range keys {
		if k.IsZero() {
			continue
		}
		if _, ok := c.entries[k]; ok {
			delete(c.entries, k)
			erased++
		}
	}
	return erased, nil
}

func (c *Memory) Contains(ctx context.Context, key model.MediaKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

var _ ports.FrameCache = (*Memory)(nil)
