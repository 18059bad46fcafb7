package api

import (
	"errors"
	"fmt"
)

// 服务端未给出 message 时的兜底文案
const genericErrorMessage = "request failed, please try again"

// Error 上游 API 错误
// StatusCode 为 0 表示传输层失败（请求未到达或无响应）
type Error struct {
	StatusCode int
	Message    string
	// Fields 服务端字段级校验错误，按字段名分组
	Fields map[string][]string
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("transport error: %s", e.Message)
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// IsTransport 是否传输层失败
func (e *Error) IsTransport() bool {
	return e.StatusCode == 0
}

// IsTransport 判断任意错误是否为传输层失败，读请求据此重试一次
func IsTransport(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.IsTransport()
}

// MessageOf 取错误的用户可见文案，非 API 错误回退到通用文案
func MessageOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return genericErrorMessage
}

// FieldErrors 取服务端字段级错误，没有则返回 nil
func FieldErrors(err error) map[string][]string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Fields
	}
	return nil
}

// 服务端错误响应体
type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}
