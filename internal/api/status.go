package api

import (
	"context"

	"github.com/code-100-precent/EchoPBX/internal/models"
)

// LiveCalls 实时通话全量快照（轮询页每个 tick 调一次）
func (c *Client) LiveCalls(ctx context.Context) ([]models.LiveCall, error) {
	var snapshot struct {
		Data []models.LiveCall `json:"data"`
	}
	if err := c.get(ctx, "status", "/status/calls", nil, &snapshot); err != nil {
		return nil, err
	}
	return snapshot.Data, nil
}

// DashboardStats 仪表盘合并统计
func (c *Client) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	return getOne[models.DashboardStats](ctx, c, "status", "/dashboard/stats")
}
