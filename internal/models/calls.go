package models

import "time"

// LiveCall 实时通话快照中的一路通话
type LiveCall struct {
	Channel   string    `json:"channel"`
	Caller    string    `json:"caller"`
	Callee    string    `json:"callee"`
	Direction string    `json:"direction"`
	State     string    `json:"state"`
	Duration  int64     `json:"duration"`
	StartedAt time.Time `json:"started_at"`
}

// DashboardStats 仪表盘合并统计（单一接口变体）
type DashboardStats struct {
	ActiveCalls          int `json:"active_calls"`
	RegisteredExtensions int `json:"registered_extensions"`
	TotalDIDs            int `json:"total_dids"`
	TotalRecordings      int `json:"total_recordings"`
}
