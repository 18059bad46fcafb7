package poller

import (
	"context"
	"sync"
	"time"
)

// Poller 固定间隔轮询器，页面持有并在卸载时 Stop
// Start 后立即触发一次，随后按间隔触发；Refresh 可插队立即再拉一次
type Poller struct {
	interval time.Duration
	tick     func(ctx context.Context)

	mu      sync.Mutex
	cancel  context.CancelFunc
	kick    chan struct{}
	done    chan struct{}
	running bool
}

// New 创建轮询器，tick 为每次触发执行的拉取动作
func New(interval time.Duration, tick func(ctx context.Context)) *Poller {
	return &Poller{
		interval: interval,
		tick:     tick,
		kick:     make(chan struct{}, 1),
	}
}

// Start 启动轮询，重复调用无效果
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true
	done := p.done
	p.mu.Unlock()

	go func() {
		defer close(done)
		p.tick(ctx)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.tick(ctx)
			case <-p.kick:
				p.tick(ctx)
			}
		}
	}()
}

// Refresh 立即触发一次拉取，轮询未启动或已有待处理触发时静默丢弃
func (p *Poller) Refresh() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

// Stop 停止轮询并等当前一次拉取结束
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	cancel := p.cancel
	done := p.done
	p.running = false
	p.cancel = nil
	p.mu.Unlock()

	cancel()
	<-done
}
