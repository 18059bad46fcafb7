package screens

import (
	"context"
	"fmt"
	"sync"

	"github.com/code-100-precent/EchoPBX/internal/api"
	"github.com/code-100-precent/EchoPBX/internal/forms"
	"github.com/code-100-precent/EchoPBX/internal/models"
)

var whitelistRules = []forms.Rule{
	forms.Required("name", "Name is required"),
	forms.Required("country_code", "Country code is required"),
	forms.Required("trunk_name", "Trunk is required"),
}

// WhitelistScreen 外呼白名单页面
type WhitelistScreen struct {
	*listController[models.OutboundWhitelistEntry]
	svc *api.WhitelistService

	mu          sync.Mutex
	CreateOpen  bool
	EditOpen    bool
	ConfirmOpen bool
	Form        forms.Values
	FieldErrors map[string][]string
	editing     *models.OutboundWhitelistEntry
	deleting    *models.OutboundWhitelistEntry
}

// NewWhitelistScreen 创建外呼白名单页面
func NewWhitelistScreen(deps Deps, client *api.Client) *WhitelistScreen {
	svc := client.Whitelist()
	return &WhitelistScreen{
		listController: newListController(deps, api.ResourceWhitelist, svc.List),
		svc:            svc,
	}
}

func whitelistForm(entry models.OutboundWhitelistEntry) forms.Values {
	return forms.Values{
		"name":         entry.Name,
		"country_code": entry.CountryCode,
		"prefix":       entry.Prefix,
		"trunk_name":   entry.TrunkName,
	}
}

func whitelistInput(v forms.Values) models.WhitelistInput {
	return models.WhitelistInput{
		Name:        v.Str("name"),
		CountryCode: v.Str("country_code"),
		Prefix:      v.Str("prefix"),
		TrunkName:   v.Str("trunk_name"),
	}
}

// OpenCreate 打开创建对话框
func (s *WhitelistScreen) OpenCreate() error {
	if !s.CanManage() {
		return ErrForbidden
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CreateOpen = true
	s.Form = forms.Values{}
	s.FieldErrors = nil
	return nil
}

// SubmitCreate 校验并提交创建
func (s *WhitelistScreen) SubmitCreate(ctx context.Context) error {
	s.mu.Lock()
	form := s.Form
	s.mu.Unlock()

	if err := forms.Validate(form, whitelistRules); err != nil {
		s.deps.Notify.Error("Validation", err.Error())
		return err
	}

	entry, err := s.svc.Create(ctx, whitelistInput(form))
	if err != nil {
		s.mu.Lock()
		s.FieldErrors = api.FieldErrors(err)
		s.mu.Unlock()
		s.deps.Notify.Error("Create whitelist entry failed", api.MessageOf(err))
		return err
	}

	s.invalidate(ctx)
	s.mu.Lock()
	s.CreateOpen = false
	s.Form = nil
	s.FieldErrors = nil
	s.mu.Unlock()
	s.deps.Notify.Success("Whitelist entry created", entry.Name)
	return nil
}

// OpenEdit 打开编辑对话框
func (s *WhitelistScreen) OpenEdit(entry models.OutboundWhitelistEntry) error {
	if !s.CanManage() {
		return ErrForbidden
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = &entry
	s.Form = whitelistForm(entry)
	s.FieldErrors = nil
	s.EditOpen = true
	return nil
}

// SubmitEdit 校验并提交编辑
func (s *WhitelistScreen) SubmitEdit(ctx context.Context) error {
	s.mu.Lock()
	form := s.Form
	editing := s.editing
	s.mu.Unlock()
	if editing == nil {
		return fmt.Errorf("no whitelist entry selected")
	}

	if err := forms.Validate(form, whitelistRules); err != nil {
		s.deps.Notify.Error("Validation", err.Error())
		return err
	}

	entry, err := s.svc.Update(ctx, editing.ID, whitelistInput(form))
	if err != nil {
		s.mu.Lock()
		s.FieldErrors = api.FieldErrors(err)
		s.mu.Unlock()
		s.deps.Notify.Error("Update whitelist entry failed", api.MessageOf(err))
		return err
	}

	s.invalidate(ctx)
	s.mu.Lock()
	s.EditOpen = false
	s.editing = nil
	s.Form = nil
	s.FieldErrors = nil
	s.mu.Unlock()
	s.deps.Notify.Success("Whitelist entry updated", entry.Name)
	return nil
}

// RequestDelete 打开删除确认对话框，文案点名该条目
func (s *WhitelistScreen) RequestDelete(entry models.OutboundWhitelistEntry) (string, error) {
	if !s.CanManage() {
		return "", ErrForbidden
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleting = &entry
	s.ConfirmOpen = true
	return fmt.Sprintf("Delete whitelist entry %q?", entry.Name), nil
}

// ConfirmDelete 确认后删除
func (s *WhitelistScreen) ConfirmDelete(ctx context.Context) error {
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
		s.deps.Notify.Error("Delete whitelist entry failed", api.MessageOf(err))
		return err
	}

	s.invalidate(ctx)
	s.mu.Lock()
	s.ConfirmOpen = false
	s.deleting = nil
	s.CreateOpen = false
	s.EditOpen = false
	s.mu.Unlock()
	s.deps.Notify.Success("Whitelist entry deleted", target.Name)
	return nil
}

// CancelDelete 取消删除
func (s *WhitelistScreen) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ConfirmOpen = false
	s.deleting = nil
}
