package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryKeyString(t *testing.T) {
	key := QueryKey{
		Resource: "conference_rooms",
		Params: map[string]string{
			"search":   "Board",
			"page":     "1",
			"per_page": "25",
			"status":   "active",
		},
	}
	// 参数按名称排序，键串确定
	assert.Equal(t, "conference_rooms|page=1&per_page=25&search=Board&status=active", key.String())
	assert.Equal(t, "conference_rooms|", FamilyPrefix("conference_rooms"))
}

func TestQueryKeyEmptyParams(t *testing.T) {
	key := QueryKey{Resource: "users"}
	assert.Equal(t, "users|", key.String())
}

type payload struct {
	Value string `json:"value"`
}

func newTestQueryCache(retryIf func(error) bool) *QueryCache {
	store := NewLocalCache(LocalConfig{MaxSize: 100, DefaultExpiration: time.Minute})
	return NewQueryCache(store, 30*time.Second, retryIf)
}

func TestFetchCachesResult(t *testing.T) {
	q := newTestQueryCache(nil)
	key := QueryKey{Resource: "dids", Params: map[string]string{"page": "1"}}

	var calls int32
	fn := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return &payload{Value: "first"}, nil
	}

	var out payload
	require.NoError(t, q.Fetch(context.Background(), key, &out, fn))
	assert.Equal(t, "first", out.Value)

	var again payload
	require.NoError(t, q.Fetch(context.Background(), key, &again, fn))
	assert.Equal(t, "first", again.Value)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second fetch should hit the cache")
}

func TestInvalidateDropsWholeFamilyOnly(t *testing.T) {
	q := newTestQueryCache(nil)
	didKey := QueryKey{Resource: "dids", Params: map[string]string{"page": "1"}}
	userKey := QueryKey{Resource: "users", Params: map[string]string{"page": "1"}}

	var didCalls, userCalls int32
	fetchDID := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&didCalls, 1)
		return &payload{Value: "did"}, nil
	}
	fetchUser := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&userCalls, 1)
		return &payload{Value: "user"}, nil
	}

	var out payload
	require.NoError(t, q.Fetch(context.Background(), didKey, &out, fetchDID))
	require.NoError(t, q.Fetch(context.Background(), userKey, &out, fetchUser))

	q.Invalidate(context.Background(), "dids")

	require.NoError(t, q.Fetch(context.Background(), didKey, &out, fetchDID))
	require.NoError(t, q.Fetch(context.Background(), userKey, &out, fetchUser))

	assert.Equal(t, int32(2), atomic.LoadInt32(&didCalls), "invalidated family refetches")
	assert.Equal(t, int32(1), atomic.LoadInt32(&userCalls), "other families keep their cache")
}

func TestFetchDeduplicatesConcurrent(t *testing.T) {
	q := newTestQueryCache(nil)
	key := QueryKey{Resource: "recordings", Params: map[string]string{"page": "1"}}

	var calls int32
	release := make(chan struct{})
	fn := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return &payload{Value: "shared"}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var out payload
			assert.NoError(t, q.Fetch(context.Background(), key, &out, fn))
			assert.Equal(t, "shared", out.Value)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "concurrent fetches share one upstream call")
}

func TestFetchRetriesOnce(t *testing.T) {
	transient := errors.New("connection reset")
	q := newTestQueryCache(func(err error) bool { return errors.Is(err, transient) })
	key := QueryKey{Resource: "ivr_menus", Params: map[string]string{"page": "1"}}

	var calls int32
	fn := func(ctx context.Context) (interface{}, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, transient
		}
		return &payload{Value: "recovered"}, nil
	}

	var out payload
	require.NoError(t, q.Fetch(context.Background(), key, &out, fn))
	assert.Equal(t, "recovered", out.Value)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetchNoRetryWithoutPredicate(t *testing.T) {
	q := newTestQueryCache(nil)
	key := QueryKey{Resource: "users", Params: map[string]string{"page": "2"}}

	var calls int32
	boom := errors.New("server said no")
	fn := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return nil, boom
	}

	var out payload
	err := q.Fetch(context.Background(), key, &out, fn)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestPeek(t *testing.T) {
	q := newTestQueryCache(nil)
	key := QueryKey{Resource: "dids", Params: map[string]string{"page": "9"}}
	assert.False(t, q.Peek(context.Background(), key))

	var out payload
	require.NoError(t, q.Fetch(context.Background(), key, &out, func(ctx context.Context) (interface{}, error) {
		return &payload{Value: "x"}, nil
	}))
	assert.True(t, q.Peek(context.Background(), key))
}
