package api

import (
	"context"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/code-100-precent/EchoPBX/internal/models"
	"github.com/code-100-precent/EchoPBX/internal/session"
	"github.com/code-100-precent/EchoPBX/pkg/metrics"
)

// Config 客户端配置
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client 上游 PBX API 客户端
// 每个资源一个 adapter（ConferenceRooms() / DIDs() / ...），统一走这里的
// bearer 注入、JSON 编解码、错误映射和请求计数
type Client struct {
	http    *resty.Client
	session *session.Session
}

// New 创建客户端
func New(cfg Config, sess *session.Session) *Client {
	hc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	hc.JSONMarshal = sonic.Marshal
	hc.JSONUnmarshal = sonic.Unmarshal

	hc.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		if token := sess.Token(); token != "" {
			r.SetHeader("Authorization", "Bearer "+token)
		}
		r.SetHeader("X-Request-ID", uuid.NewString())
		return nil
	})

	return &Client{http: hc, session: sess}
}

func (c *Client) finish(method, resource string, resp *resty.Response, err error) error {
	if err != nil {
		metrics.APIRequests.WithLabelValues(method, resource, "transport_error").Inc()
		return &Error{Message: err.Error()}
	}
	if resp.IsError() {
		metrics.APIRequests.WithLabelValues(method, resource, "api_error").Inc()
		message := genericErrorMessage
		var fields map[string][]string
		if body, ok := resp.Error().(*errorBody); ok && body != nil {
			if body.Message != "" {
				message = body.Message
			}
			fields = body.Errors
		}
		return &Error{StatusCode: resp.StatusCode(), Message: message, Fields: fields}
	}
	metrics.APIRequests.WithLabelValues(method, resource, "ok").Inc()
	return nil
}

func (c *Client) get(ctx context.Context, resource, path string, query url.Values, out interface{}) error {
	req := c.http.R().SetContext(ctx).SetError(&errorBody{})
	if out != nil {
		req.SetResult(out)
	}
	if query != nil {
		req.SetQueryParamsFromValues(query)
	}
	resp, err := req.Get(path)
	return c.finish("GET", resource, resp, err)
}

func (c *Client) post(ctx context.Context, resource, path string, payload, out interface{}) error {
	req := c.http.R().SetContext(ctx).SetError(&errorBody{}).SetBody(payload)
	if out != nil {
		req.SetResult(out)
	}
	resp, err := req.Post(path)
	return c.finish("POST", resource, resp, err)
}

func (c *Client) put(ctx context.Context, resource, path string, payload, out interface{}) error {
	req := c.http.R().SetContext(ctx).SetError(&errorBody{}).SetBody(payload)
	if out != nil {
		req.SetResult(out)
	}
	resp, err := req.Put(path)
	return c.finish("PUT", resource, resp, err)
}

func (c *Client) delete(ctx context.Context, resource, path string) error {
	resp, err := c.http.R().SetContext(ctx).SetError(&errorBody{}).Delete(path)
	return c.finish("DELETE", resource, resp, err)
}

// 单对象响应信封 {"data": {...}}
type itemEnvelope[T any] struct {
	Data T `json:"data"`
}

func listOf[T any](ctx context.Context, c *Client, resource, path string, params ListParams) (*models.Page[T], error) {
	var page models.Page[T]
	if err := c.get(ctx, resource, path, params.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func getOne[T any](ctx context.Context, c *Client, resource, path string) (*T, error) {
	var env itemEnvelope[T]
	if err := c.get(ctx, resource, path, nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func createOne[T any](ctx context.Context, c *Client, resource, path string, payload interface{}) (*T, error) {
	var env itemEnvelope[T]
	if err := c.post(ctx, resource, path, payload, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func updateOne[T any](ctx context.Context, c *Client, resource, path string, payload interface{}) (*T, error) {
	var env itemEnvelope[T]
	if err := c.put(ctx, resource, path, payload, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}
