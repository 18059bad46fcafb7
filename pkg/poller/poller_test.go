package poller

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartTicksImmediately(t *testing.T) {
	var ticks int32
	p := New(time.Hour, func(ctx context.Context) {
		atomic.AddInt32(&ticks, 1)
	})
	p.Start(context.Background())
	defer p.Stop()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&ticks) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestPeriodicTicks(t *testing.T) {
	var ticks int32
	p := New(20*time.Millisecond, func(ctx context.Context) {
		atomic.AddInt32(&ticks, 1)
	})
	p.Start(context.Background())
	defer p.Stop()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&ticks) >= 3
	}, time.Second, 5*time.Millisecond)
}

func TestRefreshTriggersExtraTick(t *testing.T) {
	var ticks int32
	p := New(time.Hour, func(ctx context.Context) {
		atomic.AddInt32(&ticks, 1)
	})
	p.Start(context.Background())
	defer p.Stop()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&ticks) == 1
	}, time.Second, 5*time.Millisecond)

	p.Refresh()
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&ticks) == 2
	}, time.Second, 5*time.Millisecond)
}

func TestStopHaltsTicksAndWaits(t *testing.T) {
	var ticks int32
	p := New(10*time.Millisecond, func(ctx context.Context) {
		atomic.AddInt32(&ticks, 1)
	})
	p.Start(context.Background())

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&ticks) >= 2
	}, time.Second, 5*time.Millisecond)

	p.Stop()
	after := atomic.LoadInt32(&ticks)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt32(&ticks), "no ticks after Stop")

	// 重复 Stop 不应 panic 或阻塞
	p.Stop()
}

func TestStartIsIdempotent(t *testing.T) {
	var ticks int32
	p := New(time.Hour, func(ctx context.Context) {
		atomic.AddInt32(&ticks, 1)
	})
	p.Start(context.Background())
	p.Start(context.Background())
	defer p.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&ticks))
}

func TestContextCancelStopsLoop(t *testing.T) {
	var ticks int32
	ctx, cancel := context.WithCancel(context.Background())
	p := New(10*time.Millisecond, func(ctx context.Context) {
		atomic.AddInt32(&ticks, 1)
	})
	p.Start(ctx)
	defer p.Stop()

	cancel()
	time.Sleep(30 * time.Millisecond)
	after := atomic.LoadInt32(&ticks)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt32(&ticks))
}
