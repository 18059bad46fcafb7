package api

import (
	"context"
	"fmt"

	"github.com/code-100-precent/EchoPBX/internal/models"
)

// ResourceIvrMenus IVR 菜单资源族名
const ResourceIvrMenus = "ivr_menus"

// IvrMenuService IVR 菜单接口
type IvrMenuService struct {
	c *Client
}

// IvrMenus IVR 菜单资源
func (c *Client) IvrMenus() *IvrMenuService {
	return &IvrMenuService{c: c}
}

// List 分页查询 IVR 菜单
func (s *IvrMenuService) List(ctx context.Context, params ListParams) (*models.Page[models.IvrMenu], error) {
	return listOf[models.IvrMenu](ctx, s.c, ResourceIvrMenus, "/ivr-menus", params)
}

// Get 查询单个菜单
func (s *IvrMenuService) Get(ctx context.Context, id uint) (*models.IvrMenu, error) {
	return getOne[models.IvrMenu](ctx, s.c, ResourceIvrMenus, fmt.Sprintf("/ivr-menus/%d", id))
}

// Create 创建菜单
func (s *IvrMenuService) Create(ctx context.Context, input models.IvrMenuInput) (*models.IvrMenu, error) {
	return createOne[models.IvrMenu](ctx, s.c, ResourceIvrMenus, "/ivr-menus", input)
}

// Update 更新菜单（整表单提交）
func (s *IvrMenuService) Update(ctx context.Context, id uint, input models.IvrMenuInput) (*models.IvrMenu, error) {
	return updateOne[models.IvrMenu](ctx, s.c, ResourceIvrMenus, fmt.Sprintf("/ivr-menus/%d", id), input)
}

// Delete 删除菜单
func (s *IvrMenuService) Delete(ctx context.Context, id uint) error {
	return s.c.delete(ctx, ResourceIvrMenus, fmt.Sprintf("/ivr-menus/%d", id))
}
