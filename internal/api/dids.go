package api

import (
	"context"
	"fmt"

	"github.com/code-100-precent/EchoPBX/internal/models"
)

// ResourceDIDs DID 资源族名
const ResourceDIDs = "dids"

// DIDService DID 号码接口
type DIDService struct {
	c *Client
}

// DIDs DID 资源
func (c *Client) DIDs() *DIDService {
	return &DIDService{c: c}
}

// List 分页查询 DID
func (s *DIDService) List(ctx context.Context, params ListParams) (*models.Page[models.DIDNumber], error) {
	return listOf[models.DIDNumber](ctx, s.c, ResourceDIDs, "/dids", params)
}

// Get 查询单个 DID
func (s *DIDService) Get(ctx context.Context, id uint) (*models.DIDNumber, error) {
	return getOne[models.DIDNumber](ctx, s.c, ResourceDIDs, fmt.Sprintf("/dids/%d", id))
}

// Create 创建 DID
func (s *DIDService) Create(ctx context.Context, input models.DIDInput) (*models.DIDNumber, error) {
	return createOne[models.DIDNumber](ctx, s.c, ResourceDIDs, "/dids", input)
}

// Update 更新 DID（整表单提交）
func (s *DIDService) Update(ctx context.Context, id uint, input models.DIDInput) (*models.DIDNumber, error) {
	return updateOne[models.DIDNumber](ctx, s.c, ResourceDIDs, fmt.Sprintf("/dids/%d", id), input)
}

// Delete 删除 DID
func (s *DIDService) Delete(ctx context.Context, id uint) error {
	return s.c.delete(ctx, ResourceDIDs, fmt.Sprintf("/dids/%d", id))
}
