package models

import "time"

// OutboundWhitelistEntry 外呼白名单条目
type OutboundWhitelistEntry struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	CountryCode string    `json:"country_code"`
	Prefix      string    `json:"prefix,omitempty"`
	TrunkName   string    `json:"trunk_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WhitelistInput 创建/更新白名单条目的表单载荷
type WhitelistInput struct {
	Name        string `json:"name"`
	CountryCode string `json:"country_code"`
	Prefix      string `json:"prefix,omitempty"`
	TrunkName   string `json:"trunk_name"`
}
