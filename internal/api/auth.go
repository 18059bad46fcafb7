package api

import (
	"context"

	"github.com/code-100-precent/EchoPBX/internal/models"
)

// LoginResult 登录响应
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login 登录并返回 token 与用户信息
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var result LoginResult
	if err := c.post(ctx, "auth", "/auth/login", loginRequest{Email: email, Password: password}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Me 用已有 token 拉取当前用户
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	return getOne[models.User](ctx, c, "auth", "/auth/me")
}
