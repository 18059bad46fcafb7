package cache

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"golang.org/x/sync/singleflight"

	"github.com/code-100-precent/EchoPBX/pkg/metrics"
)

// QueryCache 查询缓存层
// 负责：读请求的缓存命中、相同键并发请求的去重、读请求的一次重试、
// 变更后按资源族整体失效。值经 JSON 序列化存储，后端可换（本地/Redis）
type QueryCache struct {
	store   Cache
	group   singleflight.Group
	ttl     time.Duration
	retryIf func(error) bool
}

// NewQueryCache 创建查询缓存层
// retryIf 判断读请求失败后是否重试一次（通常只对传输层错误重试），可为 nil
func NewQueryCache(store Cache, ttl time.Duration, retryIf func(error) bool) *QueryCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &QueryCache{store: store, ttl: ttl, retryIf: retryIf}
}

// Fetch 取查询结果：命中直接反序列化到 out，未命中则执行 fn 并回填缓存
// 相同键的并发 Fetch 只触发一次 fn
func (q *QueryCache) Fetch(ctx context.Context, key QueryKey, out interface{}, fn func(ctx context.Context) (interface{}, error)) error {
	k := key.String()

	if raw, ok := q.store.Get(ctx, k); ok {
		if data, isBytes := raw.([]byte); isBytes {
			if err := sonic.Unmarshal(data, out); err == nil {
				metrics.CacheHits.Inc()
				return nil
			}
		}
	}
	metrics.CacheMisses.Inc()

	v, err, _ := q.group.Do(k, func() (interface{}, error) {
		res, err := fn(ctx)
		if err != nil && q.retryIf != nil && q.retryIf(err) {
			res, err = fn(ctx)
		}
		if err != nil {
			return nil, err
		}
		data, err := sonic.Marshal(res)
		if err != nil {
			return nil, err
		}
		_ = q.store.Set(ctx, k, data, q.ttl)
		return data, nil
	})
	if err != nil {
		return err
	}
	return sonic.Unmarshal(v.([]byte), out)
}

// Invalidate 使资源族的全部缓存条目失效
func (q *QueryCache) Invalidate(ctx context.Context, resource string) {
	_ = q.store.DeletePrefix(ctx, FamilyPrefix(resource))
}

// Peek 检查某个键是否已有新鲜缓存
func (q *QueryCache) Peek(ctx context.Context, key QueryKey) bool {
	return q.store.Exists(ctx, key.String())
}
