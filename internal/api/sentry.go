package api

import (
	"context"
	"fmt"

	"github.com/code-100-precent/EchoPBX/internal/models"
)

// ResourceSentry 黑名单资源族名（列表和列表内号码共用一个族）
const ResourceSentry = "sentry_blacklists"

// SentryService 黑名单接口
type SentryService struct {
	c *Client
}

// Sentry 黑名单资源
func (c *Client) Sentry() *SentryService {
	return &SentryService{c: c}
}

// List 分页查询黑名单
func (s *SentryService) List(ctx context.Context, params ListParams) (*models.Page[models.SentryBlacklist], error) {
	return listOf[models.SentryBlacklist](ctx, s.c, ResourceSentry, "/sentry/blacklists", params)
}

// Get 查询单个黑名单
func (s *SentryService) Get(ctx context.Context, id uint) (*models.SentryBlacklist, error) {
	return getOne[models.SentryBlacklist](ctx, s.c, ResourceSentry, fmt.Sprintf("/sentry/blacklists/%d", id))
}

// Create 创建黑名单
func (s *SentryService) Create(ctx context.Context, input models.SentryBlacklistInput) (*models.SentryBlacklist, error) {
	return createOne[models.SentryBlacklist](ctx, s.c, ResourceSentry, "/sentry/blacklists", input)
}

// Update 更新黑名单（整表单提交）
func (s *SentryService) Update(ctx context.Context, id uint, input models.SentryBlacklistInput) (*models.SentryBlacklist, error) {
	return updateOne[models.SentryBlacklist](ctx, s.c, ResourceSentry, fmt.Sprintf("/sentry/blacklists/%d", id), input)
}

// Delete 删除黑名单
func (s *SentryService) Delete(ctx context.Context, id uint) error {
	return s.c.delete(ctx, ResourceSentry, fmt.Sprintf("/sentry/blacklists/%d", id))
}

// Items 查询黑名单内的号码
func (s *SentryService) Items(ctx context.Context, listID uint, params ListParams) (*models.Page[models.BlacklistItem], error) {
	return listOf[models.BlacklistItem](ctx, s.c, ResourceSentry, fmt.Sprintf("/sentry/blacklists/%d/items", listID), params)
}

// AddItem 向黑名单添加号码
func (s *SentryService) AddItem(ctx context.Context, listID uint, input models.BlacklistItemInput) (*models.BlacklistItem, error) {
	return createOne[models.BlacklistItem](ctx, s.c, ResourceSentry, fmt.Sprintf("/sentry/blacklists/%d/items", listID), input)
}

// RemoveItem 从黑名单移除号码
func (s *SentryService) RemoveItem(ctx context.Context, listID, itemID uint) error {
	return s.c.delete(ctx, ResourceSentry, fmt.Sprintf("/sentry/blacklists/%d/items/%d", listID, itemID))
}
