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

// DashboardScreen 仪表盘页面，默认 30 秒刷新合并统计
type DashboardScreen struct {
	client *api.Client
	poll   *poller.Poller

	mu        sync.Mutex
	Stats     models.DashboardStats
	UpdatedAt time.Time
	Err       error
	onUpdate  func()
}

// NewDashboardScreen 创建仪表盘页面
func NewDashboardScreen(client *api.Client, interval time.Duration) *DashboardScreen {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	s := &DashboardScreen{client: client}
	s.poll = poller.New(interval, s.tick)
	return s
}

// OnUpdate 注册统计更新回调
func (s *DashboardScreen) OnUpdate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = fn
}

// Start 启动轮询
func (s *DashboardScreen) Start(ctx context.Context) {
	s.poll.Start(ctx)
}

// Refresh 立即刷新
func (s *DashboardScreen) Refresh() {
	s.poll.Refresh()
}

// Stop 页面卸载，停止轮询
func (s *DashboardScreen) Stop() {
	s.poll.Stop()
}

// Current 当前统计和拉取时间
func (s *DashboardScreen) Current() (models.DashboardStats, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Stats, s.UpdatedAt
}

func (s *DashboardScreen) tick(ctx context.Context) {
	stats, err := s.client.DashboardStats(ctx)
	if ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	if err != nil {
		s.Err = err
		cb := s.onUpdate
		s.mu.Unlock()
		logger.Warn("dashboard poll failed", zap.Error(err))
		if cb != nil {
			cb()
		}
		return
	}
	s.Err = nil
	s.Stats = *stats
	s.UpdatedAt = time.Now()
	cb := s.onUpdate
	s.mu.Unlock()
	if cb != nil {
		cb()
	}
}
