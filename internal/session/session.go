package session

import (
	"sync"

	"github.com/code-100-precent/EchoPBX/internal/models"
)

// Session 当前登录态：bearer token、当前用户、所属 profile
// 所有页面通过它判断增删改入口是否可见
type Session struct {
	mu      sync.RWMutex
	token   string
	user    *models.User
	profile string
}

// New 创建空会话
func New() *Session {
	return &Session{}
}

// SetToken 设置 bearer token
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Token 返回当前 token，未登录为空串
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetUser 设置当前用户
func (s *Session) SetUser(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

// CurrentUser 返回当前用户，未登录为 nil
func (s *Session) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Role 当前用户角色，未登录为空串
func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.Role
}

// CanManage 只有 owner / pbx_admin 可以增删改
func (s *Session) CanManage() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.CanManage()
}

// SignedIn 是否已登录
func (s *Session) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// SetProfile 记录会话来自哪个环境 profile
func (s *Session) SetProfile(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = name
}

// Profile 当前环境 profile 名
func (s *Session) Profile() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Clear 退出登录
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
}
