package models

import "time"

// DID 路由类型
const (
	RoutingExtension      = "extension"
	RoutingRingGroup      = "ring_group"
	RoutingBusinessHours  = "business_hours"
	RoutingConferenceRoom = "conference_room"
)

// DIDNumber 外部号码（DID）
type DIDNumber struct {
	ID              uint      `json:"id"`
	Number          string    `json:"number"`
	RoutingType     string    `json:"routing_type"`
	DestinationID   uint      `json:"destination_id"`
	DestinationName string    `json:"destination_name,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DIDInput 创建/更新 DID 的表单载荷
type DIDInput struct {
	Number        string `json:"number"`
	RoutingType   string `json:"routing_type"`
	DestinationID uint   `json:"destination_id"`
	Status        string `json:"status,omitempty"`
}

// RoutingTypes 所有合法的路由类型
func RoutingTypes() []string {
	return []string{RoutingExtension, RoutingRingGroup, RoutingBusinessHours, RoutingConferenceRoom}
}
