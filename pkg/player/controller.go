package player

import (
	"context"
	"sync"

	"github.com/code-100-precent/EchoPBX/pkg/logger"
	"go.uber.org/zap"
)

// Playback 一次进行中的播放
type Playback interface {
	// Done 播放自然结束时关闭
	Done() <-chan struct{}
	// Stop 立即停止并释放设备
	Stop()
}

// Factory 按需创建一次播放（拉取音频字节并开声卡）
type Factory func(ctx context.Context) (Playback, error)

// Controller 播放控制器，同一时刻最多一条播放
// 对同一 key 再次触发是暂停，对不同 key 触发则先停旧的再放新的
type Controller struct {
	mu      sync.Mutex
	current Playback
	key     string
	gen     uint64
}

// NewController 创建播放控制器
func NewController() *Controller {
	return &Controller{}
}

// CurrentKey 正在播放的 key，空串表示静默
func (c *Controller) CurrentKey() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.key
}

// Toggle 切换播放状态
// 返回 true 表示现在正在播放 key，false 表示现在静默
func (c *Controller) Toggle(ctx context.Context, key string, factory Factory) (bool, error) {
	c.mu.Lock()
	if c.current != nil {
		playing := c.key
		c.current.Stop()
		c.current = nil
		c.key = ""
		c.gen++
		if playing == key {
			// 再次点击同一条就是停止
			c.mu.Unlock()
			return false, nil
		}
	}
	c.mu.Unlock()

	pb, err := factory(ctx)
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	if c.current != nil {
		// Toggle 期间有并发播放抢先，让位给它
		c.mu.Unlock()
		pb.Stop()
		return false, nil
	}
	c.current = pb
	c.key = key
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	go c.watch(pb, gen, key)
	return true, nil
}

// watch 等播放自然结束后清掉当前状态
func (c *Controller) watch(pb Playback, gen uint64, key string) {
	<-pb.Done()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return
	}
	c.current = nil
	c.key = ""
	logger.Debug("playback finished", zap.String("key", key))
}

// Close 停掉进行中的播放
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil {
		c.current.Stop()
		c.current = nil
		c.key = ""
		c.gen++
	}
}
