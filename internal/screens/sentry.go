package screens

import (
	"context"
	"fmt"
	"sync"

	"github.com/code-100-precent/EchoPBX/internal/api"
	"github.com/code-100-precent/EchoPBX/internal/forms"
	"github.com/code-100-precent/EchoPBX/internal/models"
	"github.com/code-100-precent/EchoPBX/pkg/cache"
)

var sentryListRules = []forms.Rule{
	forms.Required("name", "Name is required"),
}

var blacklistItemRules = []forms.Rule{
	forms.Required("number", "Number is required"),
}

// SentryScreen 黑名单页面：黑名单列表加选中名单内的号码子列表
// 号码的增删和名单本身的增删改共用同一个缓存族
type SentryScreen struct {
	*listController[models.SentryBlacklist]
	svc *api.SentryService

	mu          sync.Mutex
	CreateOpen  bool
	EditOpen    bool
	ConfirmOpen bool
	Form        forms.Values
	FieldErrors map[string][]string
	editing     *models.SentryBlacklist
	deleting    *models.SentryBlacklist

	// 选中名单的号码子列表
	selected    *models.SentryBlacklist
	itemParams  api.ListParams
	Items       []models.BlacklistItem
	ItemsMeta   models.PageMeta
	ItemForm    forms.Values
	ItemOpen    bool
	itemRemoval *models.BlacklistItem
	RemoveOpen  bool
}

// NewSentryScreen 创建黑名单页面
func NewSentryScreen(deps Deps, client *api.Client) *SentryScreen {
	svc := client.Sentry()
	s := &SentryScreen{
		listController: newListController(deps, api.ResourceSentry, svc.List),
		svc:            svc,
	}
	s.itemParams = api.ListParams{Page: 1, PerPage: deps.PageSize, Filters: map[string]string{}}
	if s.itemParams.PerPage <= 0 {
		s.itemParams.PerPage = 20
	}
	return s
}

// Select 展开某个名单，加载其号码子列表
func (s *SentryScreen) Select(ctx context.Context, list models.SentryBlacklist) error {
	s.mu.Lock()
	s.selected = &list
	s.itemParams.Page = 1
	s.mu.Unlock()
	return s.LoadItems(ctx)
}

// Selected 当前展开的名单
func (s *SentryScreen) Selected() *models.SentryBlacklist {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// LoadItems 加载选中名单的号码，走与名单相同的缓存族
func (s *SentryScreen) LoadItems(ctx context.Context) error {
	s.mu.Lock()
	selected := s.selected
	params := s.itemParams
	s.mu.Unlock()
	if selected == nil {
		return fmt.Errorf("no blacklist selected")
	}

	cacheParams := params.CacheParams()
	cacheParams["list_id"] = fmt.Sprintf("%d", selected.ID)
	key := cache.QueryKey{Resource: s.resource, Params: cacheParams}

	var page models.Page[models.BlacklistItem]
	err := s.deps.Cache.Fetch(ctx, key, &page, func(ctx context.Context) (interface{}, error) {
		return s.svc.Items(ctx, selected.ID, params)
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.Items = page.Data
	s.ItemsMeta = page.Meta
	s.mu.Unlock()
	return nil
}

// SetItemsPage 号码子列表翻页
func (s *SentryScreen) SetItemsPage(page int) {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itemParams.Page = page
}

// OpenAddItem 打开添加号码对话框
func (s *SentryScreen) OpenAddItem() error {
	if !s.CanManage() {
		return ErrForbidden
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return fmt.Errorf("no blacklist selected")
	}
	s.ItemOpen = true
	s.ItemForm = forms.Values{}
	return nil
}

// SubmitAddItem 校验并向选中名单添加号码
func (s *SentryScreen) SubmitAddItem(ctx context.Context, input models.BlacklistItemInput) error {
	s.mu.Lock()
	selected := s.selected
	form := s.ItemForm
	s.mu.Unlock()
	if selected == nil {
		return fmt.Errorf("no blacklist selected")
	}
	if form == nil {
		form = forms.Values{}
	}
	form.Set("number", input.Number)

	if err := forms.Validate(form, blacklistItemRules); err != nil {
		s.deps.Notify.Error("Validation", err.Error())
		return err
	}

	item, err := s.svc.AddItem(ctx, selected.ID, input)
	if err != nil {
		s.deps.Notify.Error("Add number failed", api.MessageOf(err))
		return err
	}

	s.invalidate(ctx)
	s.mu.Lock()
	s.ItemOpen = false
	s.ItemForm = nil
	s.mu.Unlock()
	s.deps.Notify.Success("Number added", item.Number)
	return nil
}

// RequestRemoveItem 打开移除号码确认对话框
func (s *SentryScreen) RequestRemoveItem(item models.BlacklistItem) (string, error) {
	if !s.CanManage() {
		return "", ErrForbidden
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itemRemoval = &item
	s.RemoveOpen = true
	return fmt.Sprintf("Remove number %q from this blacklist?", item.Number), nil
}

// ConfirmRemoveItem 确认后移除号码
func (s *SentryScreen) ConfirmRemoveItem(ctx context.Context) error {
	s.mu.Lock()
	if !s.RemoveOpen || s.itemRemoval == nil || s.selected == nil {
		s.mu.Unlock()
		return ErrNoPendingDelete
	}
	listID := s.selected.ID
	target := *s.itemRemoval
	s.mu.Unlock()

	if err := s.svc.RemoveItem(ctx, listID, target.ID); err != nil {
		s.mu.Lock()
		s.RemoveOpen = false
		s.itemRemoval = nil
		s.mu.Unlock()
		s.deps.Notify.Error("Remove number failed", api.MessageOf(err))
		return err
	}

	s.invalidate(ctx)
	s.mu.Lock()
	s.RemoveOpen = false
	s.itemRemoval = nil
	s.mu.Unlock()
	s.deps.Notify.Success("Number removed", target.Number)
	return nil
}

// CancelRemoveItem 取消移除号码
func (s *SentryScreen) CancelRemoveItem() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RemoveOpen = false
	s.itemRemoval = nil
}

func sentryForm(list models.SentryBlacklist) forms.Values {
	return forms.Values{
		"name":        list.Name,
		"description": list.Description,
		"status":      list.Status,
	}
}

func sentryInput(v forms.Values) models.SentryBlacklistInput {
	return models.SentryBlacklistInput{
		Name:        v.Str("name"),
		Description: v.Str("description"),
		Status:      v.Str("status"),
	}
}

// OpenCreate 打开创建对话框
func (s *SentryScreen) OpenCreate() error {
	if !s.CanManage() {
		return ErrForbidden
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CreateOpen = true
	s.Form = forms.Values{"status": "active"}
	s.FieldErrors = nil
	return nil
}

// SubmitCreate 校验并提交创建
func (s *SentryScreen) SubmitCreate(ctx context.Context) error {
	s.mu.Lock()
	form := s.Form
	s.mu.Unlock()

	if err := forms.Validate(form, sentryListRules); err != nil {
		s.deps.Notify.Error("Validation", err.Error())
		return err
	}

	list, err := s.svc.Create(ctx, sentryInput(form))
	if err != nil {
		s.mu.Lock()
		s.FieldErrors = api.FieldErrors(err)
		s.mu.Unlock()
		s.deps.Notify.Error("Create blacklist failed", api.MessageOf(err))
		return err
	}

	s.invalidate(ctx)
	s.mu.Lock()
	s.CreateOpen = false
	s.Form = nil
	s.FieldErrors = nil
	s.mu.Unlock()
	s.deps.Notify.Success("Blacklist created", list.Name)
	return nil
}

// OpenEdit 打开编辑对话框
func (s *SentryScreen) OpenEdit(list models.SentryBlacklist) error {
	if !s.CanManage() {
		return ErrForbidden
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = &list
	s.Form = sentryForm(list)
	s.FieldErrors = nil
	s.EditOpen = true
	return nil
}

// SubmitEdit 校验并提交编辑
func (s *SentryScreen) SubmitEdit(ctx context.Context) error {
	s.mu.Lock()
	form := s.Form
	editing := s.editing
	s.mu.Unlock()
	if editing == nil {
		return fmt.Errorf("no blacklist selected")
	}

	if err := forms.Validate(form, sentryListRules); err != nil {
		s.deps.Notify.Error("Validation", err.Error())
		return err
	}

	list, err := s.svc.Update(ctx, editing.ID, sentryInput(form))
	if err != nil {
		s.mu.Lock()
		s.FieldErrors = api.FieldErrors(err)
		s.mu.Unlock()
		s.deps.Notify.Error("Update blacklist failed", api.MessageOf(err))
		return err
	}

	s.invalidate(ctx)
	s.mu.Lock()
	s.EditOpen = false
	s.editing = nil
	s.Form = nil
	s.FieldErrors = nil
	s.mu.Unlock()
	s.deps.Notify.Success("Blacklist updated", list.Name)
	return nil
}

// RequestDelete 打开删除确认对话框
func (s *SentryScreen) RequestDelete(list models.SentryBlacklist) (string, error) {
	if !s.CanManage() {
		return "", ErrForbidden
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleting = &list
	s.ConfirmOpen = true
	return fmt.Sprintf("Delete blacklist %q?", list.Name), nil
}

// ConfirmDelete 确认后删除，同时清掉展开中的子列表
func (s *SentryScreen) ConfirmDelete(ctx context.Context) error {
	s.mu.Lock()
	if !s.ConfirmOpen || s.deleting == nil {
		s.mu.Unlock()
		return ErrNoPendingDelete
	}
	target := *s.deleting
	s.mu.Unlock()

	if err := s.svc.Delete(ctx, target.ID); err != nil {
		s.mu.Lock()
		s.ConfirmOpen = false
		s.deleting = nil
		s.mu.Unlock()
		s.deps.Notify.Error("Delete blacklist failed", api.MessageOf(err))
		return err
	}

	s.invalidate(ctx)
	s.mu.Lock()
	s.ConfirmOpen = false
	s.deleting = nil
	s.CreateOpen = false
	s.EditOpen = false
	if s.selected != nil && s.selected.ID == target.ID {
		s.selected = nil
		s.Items = nil
		s.ItemsMeta = models.PageMeta{}
	}
	s.mu.Unlock()
	s.deps.Notify.Success("Blacklist deleted", target.Name)
	return nil
}

// CancelDelete 取消删除
func (s *SentryScreen) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ConfirmOpen = false
	s.deleting = nil
}
