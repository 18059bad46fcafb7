package api

import (
	"context"
	"fmt"

	"github.com/code-100-precent/EchoPBX/internal/models"
)

// ResourceConferenceRooms 会议室资源族名，同时作为缓存键前缀
const ResourceConferenceRooms = "conference_rooms"

// ConferenceRoomService 会议室接口
type ConferenceRoomService struct {
	c *Client
}

// ConferenceRooms 会议室资源
func (c *Client) ConferenceRooms() *ConferenceRoomService {
	return &ConferenceRoomService{c: c}
}

// List 分页查询会议室
func (s *ConferenceRoomService) List(ctx context.Context, params ListParams) (*models.Page[models.ConferenceRoom], error) {
	return listOf[models.ConferenceRoom](ctx, s.c, ResourceConferenceRooms, "/conference-rooms", params)
}

// Get 查询单个会议室
func (s *ConferenceRoomService) Get(ctx context.Context, id uint) (*models.ConferenceRoom, error) {
	return getOne[models.ConferenceRoom](ctx, s.c, ResourceConferenceRooms, fmt.Sprintf("/conference-rooms/%d", id))
}

// Create 创建会议室
func (s *ConferenceRoomService) Create(ctx context.Context, input models.ConferenceRoomInput) (*models.ConferenceRoom, error) {
	return createOne[models.ConferenceRoom](ctx, s.c, ResourceConferenceRooms, "/conference-rooms", input)
}

// Update 更新会议室，changes 只含变更字段
func (s *ConferenceRoomService) Update(ctx context.Context, id uint, changes map[string]interface{}) (*models.ConferenceRoom, error) {
	return updateOne[models.ConferenceRoom](ctx, s.c, ResourceConferenceRooms, fmt.Sprintf("/conference-rooms/%d", id), changes)
}

// Delete 删除会议室
func (s *ConferenceRoomService) Delete(ctx context.Context, id uint) error {
	return s.c.delete(ctx, ResourceConferenceRooms, fmt.Sprintf("/conference-rooms/%d", id))
}
