package models

// PageMeta 列表分页元信息，对应上游响应的 meta 对象
type PageMeta struct {
	Total       int `json:"total"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
}

// Page 一页记录加分页元信息
type Page[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}
