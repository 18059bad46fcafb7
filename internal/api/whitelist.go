package api

import (
	"context"
	"fmt"

	"github.com/code-100-precent/EchoPBX/internal/models"
)

// ResourceWhitelist 外呼白名单资源族名
const ResourceWhitelist = "outbound_whitelist"

// WhitelistService 外呼白名单接口
type WhitelistService struct {
	c *Client
}

// Whitelist 外呼白名单资源
func (c *Client) Whitelist() *WhitelistService {
	return &WhitelistService{c: c}
}

// List 分页查询白名单条目
func (s *WhitelistService) List(ctx context.Context, params ListParams) (*models.Page[models.OutboundWhitelistEntry], error) {
	return listOf[models.OutboundWhitelistEntry](ctx, s.c, ResourceWhitelist, "/outbound-whitelist", params)
}

// Get 查询单个条目
func (s *WhitelistService) Get(ctx context.Context, id uint) (*models.OutboundWhitelistEntry, error) {
	return getOne[models.OutboundWhitelistEntry](ctx, s.c, ResourceWhitelist, fmt.Sprintf("/outbound-whitelist/%d", id))
}

// Create 创建条目
func (s *WhitelistService) Create(ctx context.Context, input models.WhitelistInput) (*models.OutboundWhitelistEntry, error) {
	return createOne[models.OutboundWhitelistEntry](ctx, s.c, ResourceWhitelist, "/outbound-whitelist", input)
}

// Update 更新条目（整表单提交）
func (s *WhitelistService) Update(ctx context.Context, id uint, input models.WhitelistInput) (*models.OutboundWhitelistEntry, error) {
	return updateOne[models.OutboundWhitelistEntry](ctx, s.c, ResourceWhitelist, fmt.Sprintf("/outbound-whitelist/%d", id), input)
}

// Delete 删除条目
func (s *WhitelistService) Delete(ctx context.Context, id uint) error {
	return s.c.delete(ctx, ResourceWhitelist, fmt.Sprintf("/outbound-whitelist/%d", id))
}
