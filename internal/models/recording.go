package models

import "time"

// 录音类型
const (
	RecordingTypeUpload = "upload"
	RecordingTypeRemote = "remote"
)

// Recording 录音
type Recording struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	ObjectKey string    `json:"object_key,omitempty"`
	RemoteURL string    `json:"remote_url,omitempty"`
	MimeType  string    `json:"mime_type,omitempty"`
	Status    string    `json:"status"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecordingInput 创建/更新录音的表单载荷
type RecordingInput struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	ObjectKey string `json:"object_key,omitempty"`
	RemoteURL string `json:"remote_url,omitempty"`
	MimeType  string `json:"mime_type,omitempty"`
	Status    string `json:"status,omitempty"`
}

// DownloadTicket 下载凭证：短时效签名 URL 加原始文件名
type DownloadTicket struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}
