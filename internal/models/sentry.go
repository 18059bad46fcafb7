package models

import "time"

// SentryBlacklist 黑名单（sentry 列表）
type SentryBlacklist struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	ItemCount   int       `json:"item_count,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SentryBlacklistInput 创建/更新黑名单的表单载荷
type SentryBlacklistInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

// BlacklistItem 黑名单中的号码
type BlacklistItem struct {
	ID        uint       `json:"id"`
	Number    string     `json:"number"`
	Reason    string     `json:"reason,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// BlacklistItemInput 添加号码的表单载荷
type BlacklistItemInput struct {
	Number    string     `json:"number"`
	Reason    string     `json:"reason,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}
