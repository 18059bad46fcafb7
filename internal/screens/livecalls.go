package screens

import (
	"context"
	"sync"
	"time"

	"github.com/code-100-precent/EchoPBX/internal/api"
	"github.com/code-100-precent/EchoPBX/internal/models"
	"github.com/code-100-precent/EchoPBX/pkg/logger"
	"github.com/code-100-precent/EchoPBX/pkg/poller"
	"go.uber.org/zap"
)

// LiveCallsScreen 实时通话页面，默认 5 秒整表刷新
// 每次拉取都是全量快照替换，不做增量合并
type LiveCallsScreen struct {
	client *api.Client
	poll   *poller.Poller

	mu        sync.Mutex
	Calls     []models.LiveCall
	UpdatedAt time.Time
	Err       error
	onUpdate  func()
}

// NewLiveCallsScreen 创建实时通话页面
func NewLiveCallsScreen(client *api.Client, interval time.Duration) *LiveCallsScreen {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	s := &LiveCallsScreen{client: client}
	s.poll = poller.New(interval, s.tick)
	return s
}

// OnUpdate 注册快照更新回调（交互式浏览时重绘）
func (s *LiveCallsScreen) OnUpdate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = fn
}

// Start 启动轮询
func (s *LiveCallsScreen) Start(ctx context.Context) {
	s.poll.Start(ctx)
}

// Refresh 立即再拉一次
func (s *LiveCallsScreen) Refresh() {
	s.poll.Refresh()
}

// Stop 页面卸载，停止轮询
func (s *LiveCallsScreen) Stop() {
	s.poll.Stop()
}

// Snapshot 当前快照的副本
func (s *LiveCallsScreen) Snapshot() ([]models.LiveCall, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	calls := make([]models.LiveCall, len(s.Calls))
	copy(calls, s.Calls)
	return calls, s.UpdatedAt
}

func (s *LiveCallsScreen) tick(ctx context.Context) {
	calls, err := s.client.LiveCalls(ctx)
	// 页面已经停了就丢弃迟到的响应
	if ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	if err != nil {
		// 拉取失败保留上一份快照，只记错误
		s.Err = err
		cb := s.onUpdate
		s.mu.Unlock()
		logger.Warn("live calls poll failed", zap.Error(err))
		if cb != nil {
			cb()
		}
		return
	}
	s.Err = nil
	s.Calls = calls
	s.UpdatedAt = time.Now()
	cb := s.onUpdate
	s.mu.Unlock()
	if cb != nil {
		cb()
	}
}
