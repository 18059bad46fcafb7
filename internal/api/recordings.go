package api

import (
	"context"
	"fmt"

	"github.com/code-100-precent/EchoPBX/internal/models"
)

// ResourceRecordings 录音资源族名
const ResourceRecordings = "recordings"

// RecordingService 录音接口
type RecordingService struct {
	c *Client
}

// Recordings 录音资源
func (c *Client) Recordings() *RecordingService {
	return &RecordingService{c: c}
}

// List 分页查询录音
func (s *RecordingService) List(ctx context.Context, params ListParams) (*models.Page[models.Recording], error) {
	return listOf[models.Recording](ctx, s.c, ResourceRecordings, "/recordings", params)
}

// Get 查询单个录音
func (s *RecordingService) Get(ctx context.Context, id uint) (*models.Recording, error) {
	return getOne[models.Recording](ctx, s.c, ResourceRecordings, fmt.Sprintf("/recordings/%d", id))
}

// Create 创建录音记录
func (s *RecordingService) Create(ctx context.Context, input models.RecordingInput) (*models.Recording, error) {
	return createOne[models.Recording](ctx, s.c, ResourceRecordings, "/recordings", input)
}

// Update 更新录音（整表单提交）
func (s *RecordingService) Update(ctx context.Context, id uint, input models.RecordingInput) (*models.Recording, error) {
	return updateOne[models.Recording](ctx, s.c, ResourceRecordings, fmt.Sprintf("/recordings/%d", id), input)
}

// Delete 删除录音
func (s *RecordingService) Delete(ctx context.Context, id uint) error {
	return s.c.delete(ctx, ResourceRecordings, fmt.Sprintf("/recordings/%d", id))
}

// DownloadTicket 获取短时效下载凭证（签名 URL + 原始文件名）
// 文件字节随后从签名 URL 另行拉取
func (s *RecordingService) DownloadTicket(ctx context.Context, id uint) (*models.DownloadTicket, error) {
	var ticket models.DownloadTicket
	if err := s.c.get(ctx, ResourceRecordings, fmt.Sprintf("/recordings/%d/download", id), nil, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}
