package models

import "time"

// ConferenceRoom 会议室
type ConferenceRoom struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MaxMembers  int    `json:"max_members"`
	Status      string `json:"status"`

	// PIN 保护
	PinRequired    bool   `json:"pin_required"`
	ParticipantPin string `json:"participant_pin,omitempty"`
	HostPin        string `json:"host_pin,omitempty"`

	// 呼叫处理
	WaitForHost       bool `json:"wait_for_host"`
	MuteOnEntry       bool `json:"mute_on_entry"`
	AnnounceJoinLeave bool `json:"announce_join_leave"`
	MusicOnHold       bool `json:"music_on_hold"`

	// 录音
	RecordingEnabled     bool   `json:"recording_enabled"`
	RecordingAutoStart   bool   `json:"recording_auto_start"`
	RecordingWebhookURL  string `json:"recording_webhook_url,omitempty"`
	TalkDetectionEnabled bool   `json:"talk_detection_enabled"`
	TalkDetectionWebhook string `json:"talk_detection_webhook_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ConferenceRoomInput 创建会议室的表单载荷
type ConferenceRoomInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MaxMembers  int    `json:"max_members"`
	Status      string `json:"status,omitempty"`

	PinRequired    bool   `json:"pin_required"`
	ParticipantPin string `json:"participant_pin,omitempty"`
	HostPin        string `json:"host_pin,omitempty"`

	WaitForHost       bool `json:"wait_for_host"`
	MuteOnEntry       bool `json:"mute_on_entry"`
	AnnounceJoinLeave bool `json:"announce_join_leave"`
	MusicOnHold       bool `json:"music_on_hold"`

	RecordingEnabled     bool   `json:"recording_enabled"`
	RecordingAutoStart   bool   `json:"recording_auto_start"`
	RecordingWebhookURL  string `json:"recording_webhook_url,omitempty"`
	TalkDetectionEnabled bool   `json:"talk_detection_enabled"`
	TalkDetectionWebhook string `json:"talk_detection_webhook_url,omitempty"`
}
