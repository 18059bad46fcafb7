package cache

import (
	"context"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// LocalCache 进程内缓存，带容量上限和统一过期时间
type LocalCache struct {
	store *lru.LRU[string, interface{}]
}

// NewLocalCache 创建本地缓存
// 过期时间由 DefaultExpiration 统一控制，Set 传入的 expiration 仅作兼容参数
func NewLocalCache(config LocalConfig) *LocalCache {
	maxSize := config.MaxSize
	if maxSize <= 0 {
		maxSize = 1000
	}
	ttl := config.DefaultExpiration
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &LocalCache{
		store: lru.NewLRU[string, interface{}](maxSize, nil, ttl),
	}
}

func (c *LocalCache) Get(_ context.Context, key string) (interface{}, bool) {
	return c.store.Get(key)
}

func (c *LocalCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.store.Add(key, value)
	return nil
}

func (c *LocalCache) Delete(_ context.Context, key string) error {
	c.store.Remove(key)
	return nil
}

func (c *LocalCache) DeletePrefix(_ context.Context, prefix string) error {
	for _, key := range c.store.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.store.Remove(key)
		}
	}
	return nil
}

func (c *LocalCache) Exists(_ context.Context, key string) bool {
	_, ok := c.store.Get(key)
	return ok
}

func (c *LocalCache) Clear(_ context.Context) error {
	c.store.Purge()
	return nil
}

func (c *LocalCache) Close() error {
	c.store.Purge()
	return nil
}
