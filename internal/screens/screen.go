package screens

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/code-100-precent/EchoPBX/internal/api"
	"github.com/code-100-precent/EchoPBX/internal/models"
	"github.com/code-100-precent/EchoPBX/internal/session"
	"github.com/code-100-precent/EchoPBX/pkg/cache"
	"github.com/code-100-precent/EchoPBX/pkg/notify"
)

var (
	// ErrForbidden 当前角色没有增删改权限
	ErrForbidden = errors.New("only owner or pbx_admin can manage resources")
	// ErrNoPendingDelete 未经确认对话框直接触发删除
	ErrNoPendingDelete = errors.New("no delete pending confirmation")
)

// Deps 页面公共依赖
type Deps struct {
	Cache    *cache.QueryCache
	Session  *session.Session
	Notify   *notify.Notifier
	Debounce time.Duration
	PageSize int
}

// listController 列表页公共部分：查询参数、防抖搜索、分页重置、缓存读取
// 每个资源页在其上补充自己的表单与变更操作
type listController[T any] struct {
	deps     Deps
	resource string
	fetch    func(ctx context.Context, p api.ListParams) (*models.Page[T], error)

	mu            sync.Mutex
	params        api.ListParams
	debounce      *time.Timer
	pendingSearch string
	onRefresh     func()

	Rows    []T
	Meta    models.PageMeta
	Loading bool
	Err     error
}

func newListController[T any](deps Deps, resource string, fetch func(ctx context.Context, p api.ListParams) (*models.Page[T], error)) *listController[T] {
	perPage := deps.PageSize
	if perPage <= 0 {
		perPage = 20
	}
	return &listController[T]{
		deps:     deps,
		resource: resource,
		fetch:    fetch,
		params: api.ListParams{
			Page:    1,
			PerPage: perPage,
			Filters: map[string]string{},
		},
	}
}

// OnRefresh 注册参数变化后的刷新回调（交互式浏览时重新加载并重绘）
func (l *listController[T]) OnRefresh(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onRefresh = fn
}

// Params 当前查询参数的副本
func (l *listController[T]) Params() api.ListParams {
	l.mu.Lock()
	defer l.mu.Unlock()
	p := l.params
	filters := make(map[string]string, len(p.Filters))
	for k, v := range p.Filters {
		filters[k] = v
	}
	p.Filters = filters
	return p
}

// Load 取当前参数对应的一页数据，优先走查询缓存
func (l *listController[T]) Load(ctx context.Context) error {
	l.mu.Lock()
	l.Loading = true
	params := l.params
	key := cache.QueryKey{Resource: l.resource, Params: params.CacheParams()}
	l.mu.Unlock()

	var page models.Page[T]
	err := l.deps.Cache.Fetch(ctx, key, &page, func(ctx context.Context) (interface{}, error) {
		return l.fetch(ctx, params)
	})

	l.mu.Lock()
	defer l.mu.Unlock()
	l.Loading = false
	if err != nil {
		l.Err = err
		return err
	}
	l.Err = nil
	l.Rows = page.Data
	l.Meta = page.Meta
	return nil
}

// Empty 是否为空结果状态（与错误状态区分渲染）
func (l *listController[T]) Empty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.Loading && l.Err == nil && len(l.Rows) == 0
}

// SetSearch 输入搜索词，静默期结束后才进入查询键
// 防抖窗口内不会发出针对中间词的请求
func (l *listController[T]) SetSearch(term string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pendingSearch = term
	if l.debounce != nil {
		l.debounce.Stop()
	}
	d := l.deps.Debounce
	if d <= 0 {
		d = 300 * time.Millisecond
	}
	l.debounce = time.AfterFunc(d, func() {
		l.applySearch(term)
	})
}

// FlushSearch 立即应用挂起的搜索词（回车提交）
func (l *listController[T]) FlushSearch() {
	l.mu.Lock()
	if l.debounce != nil {
		l.debounce.Stop()
		l.debounce = nil
	}
	term := l.pendingSearch
	l.mu.Unlock()
	l.applySearch(term)
}

func (l *listController[T]) applySearch(term string) {
	l.mu.Lock()
	if term == l.params.Search {
		l.mu.Unlock()
		return
	}
	l.params.Search = term
	l.params.Page = 1
	cb := l.onRefresh
	l.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// SetFilter 设置枚举过滤；有效过滤集变化时页码回到 1
func (l *listController[T]) SetFilter(name, value string) {
	l.mu.Lock()
	if l.params.Filters[name] == value {
		l.mu.Unlock()
		return
	}
	if value == "" {
		delete(l.params.Filters, name)
	} else {
		l.params.Filters[name] = value
	}
	l.params.Page = 1
	cb := l.onRefresh
	l.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// SetSort 设置排序字段与方向
func (l *listController[T]) SetSort(by, order string) {
	l.mu.Lock()
	if l.params.SortBy == by && l.params.SortOrder == order {
		l.mu.Unlock()
		return
	}
	l.params.SortBy = by
	l.params.SortOrder = order
	l.params.Page = 1
	cb := l.onRefresh
	l.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// SetPage 翻页
func (l *listController[T]) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	l.mu.Lock()
	if l.params.Page == page {
		l.mu.Unlock()
		return
	}
	l.params.Page = page
	cb := l.onRefresh
	l.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// SetPerPage 修改每页条数并回到第一页
func (l *listController[T]) SetPerPage(perPage int) {
	if perPage <= 0 {
		return
	}
	l.mu.Lock()
	l.params.PerPage = perPage
	l.params.Page = 1
	cb := l.onRefresh
	l.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// CanManage 当前角色是否可见增删改入口
func (l *listController[T]) CanManage() bool {
	return l.deps.Session.CanManage()
}

// invalidate 变更成功后使本资源族缓存整体失效
func (l *listController[T]) invalidate(ctx context.Context) {
	l.deps.Cache.Invalidate(ctx, l.resource)
}

// Close 释放防抖定时器（页面卸载）
func (l *listController[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.debounce != nil {
		l.debounce.Stop()
		l.debounce = nil
	}
}
