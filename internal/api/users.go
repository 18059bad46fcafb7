package api

import (
	"context"
	"fmt"

	"github.com/code-100-precent/EchoPBX/internal/models"
)

// ResourceUsers 用户资源族名
const ResourceUsers = "users"

// UserService 用户接口
type UserService struct {
	c *Client
}

// Users 用户资源
func (c *Client) Users() *UserService {
	return &UserService{c: c}
}

// List 分页查询用户
func (s *UserService) List(ctx context.Context, params ListParams) (*models.Page[models.User], error) {
	return listOf[models.User](ctx, s.c, ResourceUsers, "/users", params)
}

// Get 查询单个用户
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return getOne[models.User](ctx, s.c, ResourceUsers, fmt.Sprintf("/users/%d", id))
}

// Create 创建用户
func (s *UserService) Create(ctx context.Context, input models.UserInput) (*models.User, error) {
	return createOne[models.User](ctx, s.c, ResourceUsers, "/users", input)
}

// Update 更新用户，changes 只含变更字段
func (s *UserService) Update(ctx context.Context, id uint, changes map[string]interface{}) (*models.User, error) {
	return updateOne[models.User](ctx, s.c, ResourceUsers, fmt.Sprintf("/users/%d", id), changes)
}

// Delete 删除用户
func (s *UserService) Delete(ctx context.Context, id uint) error {
	return s.c.delete(ctx, ResourceUsers, fmt.Sprintf("/users/%d", id))
}
