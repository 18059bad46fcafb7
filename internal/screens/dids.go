package screens

import (
	"context"
	"fmt"
	"sync"

	"github.com/code-100-precent/EchoPBX/internal/api"
	"github.com/code-100-precent/EchoPBX/internal/forms"
	"github.com/code-100-precent/EchoPBX/internal/models"
)

var didRules = []forms.Rule{
	forms.Required("number", "Number is required"),
	forms.OneOf("routing_type", models.RoutingTypes(), "Routing type is invalid"),
	forms.MinInt("destination_id", 1, "Destination is required"),
}

// DIDScreen 号码（DID）页面
type DIDScreen struct {
	*listController[models.DIDNumber]
	svc *api.DIDService

	mu          sync.Mutex
	CreateOpen  bool
	EditOpen    bool
	ConfirmOpen bool
	Form        forms.Values
	FieldErrors map[string][]string
	editing     *models.DIDNumber
	deleting    *models.DIDNumber
}

// NewDIDScreen 创建 DID 页面
func NewDIDScreen(deps Deps, client *api.Client) *DIDScreen {
	svc := client.DIDs()
	return &DIDScreen{
		listController: newListController(deps, api.ResourceDIDs, svc.List),
		svc:            svc,
	}
}

func didForm(did models.DIDNumber) forms.Values {
	return forms.Values{
		"number":         did.Number,
		"routing_type":   did.RoutingType,
		"destination_id": int(did.DestinationID),
		"status":         did.Status,
	}
}

func didInput(v forms.Values) models.DIDInput {
	return models.DIDInput{
		Number:        v.Str("number"),
		RoutingType:   v.Str("routing_type"),
		DestinationID: uint(v.Int("destination_id")),
		Status:        v.Str("status"),
	}
}

// OpenCreate 打开创建对话框
func (s *DIDScreen) OpenCreate() error {
	if !s.CanManage() {
		return ErrForbidden
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CreateOpen = true
	s.Form = forms.Values{"routing_type": models.RoutingExtension, "status": "active"}
	s.FieldErrors = nil
	return nil
}

// SubmitCreate 校验并提交创建
func (s *DIDScreen) SubmitCreate(ctx context.Context) error {
	s.mu.Lock()
	form := s.Form
	s.mu.Unlock()

	if err := forms.Validate(form, didRules); err != nil {
		s.deps.Notify.Error("Validation", err.Error())
		return err
	}

	did, err := s.svc.Create(ctx, didInput(form))
	if err != nil {
		s.mu.Lock()
		s.FieldErrors = api.FieldErrors(err)
		s.mu.Unlock()
		s.deps.Notify.Error("Create DID failed", api.MessageOf(err))
		return err
	}

	s.invalidate(ctx)
	s.mu.Lock()
	s.CreateOpen = false
	s.Form = nil
	s.FieldErrors = nil
	s.mu.Unlock()
	s.deps.Notify.Success("DID created", did.Number)
	return nil
}

// OpenEdit 打开编辑对话框
func (s *DIDScreen) OpenEdit(did models.DIDNumber) error {
	if !s.CanManage() {
		return ErrForbidden
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = &did
	s.Form = didForm(did)
	s.FieldErrors = nil
	s.EditOpen = true
	return nil
}

// SubmitEdit 校验并提交编辑
func (s *DIDScreen) SubmitEdit(ctx context.Context) error {
	s.mu.Lock()
	form := s.Form
	editing := s.editing
	s.mu.Unlock()
	if editing == nil {
		return fmt.Errorf("no DID selected")
	}

	if err := forms.Validate(form, didRules); err != nil {
		s.deps.Notify.Error("Validation", err.Error())
		return err
	}

	did, err := s.svc.Update(ctx, editing.ID, didInput(form))
	if err != nil {
		s.mu.Lock()
		s.FieldErrors = api.FieldErrors(err)
		s.mu.Unlock()
		s.deps.Notify.Error("Update DID failed", api.MessageOf(err))
		return err
	}

	s.invalidate(ctx)
	s.mu.Lock()
	s.EditOpen = false
	s.editing = nil
	s.Form = nil
	s.FieldErrors = nil
	s.mu.Unlock()
	s.deps.Notify.Success("DID updated", did.Number)
	return nil
}

// RequestDelete 打开删除确认对话框
func (s *DIDScreen) RequestDelete(did models.DIDNumber) (string, error) {
	if !s.CanManage() {
		return "", ErrForbidden
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleting = &did
	s.ConfirmOpen = true
	return fmt.Sprintf("Delete DID %q?", did.Number), nil
}

// ConfirmDelete 确认后删除
func (s *DIDScreen) ConfirmDelete(ctx context.Context) error {
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
		s.deps.Notify.Error("Delete DID failed", api.MessageOf(err))
		return err
	}

	s.invalidate(ctx)
	s.mu.Lock()
	s.ConfirmOpen = false
	s.deleting = nil
	s.CreateOpen = false
	s.EditOpen = false
	s.mu.Unlock()
	s.deps.Notify.Success("DID deleted", target.Number)
	return nil
}

// CancelDelete 取消删除
func (s *DIDScreen) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ConfirmOpen = false
	s.deleting = nil
}
