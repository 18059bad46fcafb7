package api

import (
	"net/url"
	"strconv"
)

// ListParams 列表查询参数：分页、搜索、枚举过滤、排序
type ListParams struct {
	Page    int
	PerPage int
	Search  string
	// Filters 资源相关的枚举过滤，如 status=active
	Filters   map[string]string
	SortBy    string
	SortOrder string
}

// Values 转为请求查询参数
func (p ListParams) Values() url.Values {
	v := url.Values{}
	page := p.Page
	if page < 1 {
		page = 1
	}
	v.Set("page", strconv.Itoa(page))
	if p.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	for name, val := range p.Filters {
		if val != "" {
			v.Set(name, val)
		}
	}
	if p.SortBy != "" {
		v.Set("sort_by", p.SortBy)
		order := p.SortOrder
		if order == "" {
			order = "asc"
		}
		v.Set("sort_order", order)
	}
	return v
}

// CacheParams 转为缓存键参数（与 Values 同口径）
func (p ListParams) CacheParams() map[string]string {
	out := map[string]string{}
	for name, vals := range p.Values() {
		if len(vals) > 0 {
			out[name] = vals[0]
		}
	}
	return out
}
