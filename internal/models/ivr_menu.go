package models

import "time"

// IvrMenuOption 菜单按键选项
type IvrMenuOption struct {
	Digit           string `json:"digit"`
	Description     string `json:"description,omitempty"`
	DestinationType string `json:"destination_type"`
	DestinationID   uint   `json:"destination_id"`
}

// IvrMenu IVR 语音菜单
// 音频来源三选一：已有录音、远程 URL、TTS 文本
type IvrMenu struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	RecordingID uint   `json:"recording_id,omitempty"`
	AudioURL    string `json:"audio_url,omitempty"`
	TTSText     string `json:"tts_text,omitempty"`
	TTSVoice    string `json:"tts_voice,omitempty"`

	Options    []IvrMenuOption `json:"options"`
	MaxReplays int             `json:"max_replays"`

	FailoverType string `json:"failover_type,omitempty"`
	FailoverID   uint   `json:"failover_id,omitempty"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IvrMenuInput 创建/更新 IVR 菜单的表单载荷
type IvrMenuInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	RecordingID uint   `json:"recording_id,omitempty"`
	AudioURL    string `json:"audio_url,omitempty"`
	TTSText     string `json:"tts_text,omitempty"`
	TTSVoice    string `json:"tts_voice,omitempty"`

	Options    []IvrMenuOption `json:"options"`
	MaxReplays int             `json:"max_replays"`

	FailoverType string `json:"failover_type,omitempty"`
	FailoverID   uint   `json:"failover_id,omitempty"`

	Status string `json:"status,omitempty"`
}
