package screens

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/code-100-precent/EchoPBX/internal/api"
	"github.com/code-100-precent/EchoPBX/internal/forms"
	"github.com/code-100-precent/EchoPBX/internal/models"
)

var userRules = []forms.Rule{
	forms.Required("name", "Name is required"),
	forms.Required("email", "Email is required"),
	{
		Field:   "email",
		Message: "Email is invalid",
		Check: func(v forms.Values) bool {
			email := v.Str("email")
			at := strings.Index(email, "@")
			return at > 0 && strings.Contains(email[at+1:], ".")
		},
	},
	forms.OneOf("role", []string{
		models.RoleOwner, models.RolePBXAdmin, models.RolePBXUser, models.RoleReporter,
	}, "Role is invalid"),
}

// UserScreen 用户页面
type UserScreen struct {
	*listController[models.User]
	svc *api.UserService

	mu          sync.Mutex
	CreateOpen  bool
	EditOpen    bool
	ConfirmOpen bool
	Form        forms.Values
	FieldErrors map[string][]string
	editing     *models.User
	deleting    *models.User
}

// NewUserScreen 创建用户页面
func NewUserScreen(deps Deps, client *api.Client) *UserScreen {
	svc := client.Users()
	return &UserScreen{
		listController: newListController(deps, api.ResourceUsers, svc.List),
		svc:            svc,
	}
}

func userForm(user models.User) forms.Values {
	v := forms.Values{
		"name":    user.Name,
		"email":   user.Email,
		"role":    user.Role,
		"status":  user.Status,
		"address": user.Address,
		"city":    user.City,
		"country": user.Country,
		"phone":   user.Phone,
	}
	if user.Extension != nil {
		v["extension_id"] = int(user.Extension.ID)
	}
	return v
}

func userInput(v forms.Values) models.UserInput {
	return models.UserInput{
		Name:        v.Str("name"),
		Email:       v.Str("email"),
		Role:        v.Str("role"),
		Status:      v.Str("status"),
		Address:     v.Str("address"),
		City:        v.Str("city"),
		Country:     v.Str("country"),
		Phone:       v.Str("phone"),
		ExtensionID: uint(v.Int("extension_id")),
	}
}

// userChanges 只取与原记录不同的字段（部分更新）
func userChanges(user models.User, v forms.Values) map[string]interface{} {
	changes := map[string]interface{}{}
	put := func(field string, oldVal, newVal interface{}) {
		if oldVal != newVal {
			changes[field] = newVal
		}
	}
	put("name", user.Name, v.Str("name"))
	put("email", user.Email, v.Str("email"))
	put("role", user.Role, v.Str("role"))
	put("status", user.Status, v.Str("status"))
	put("address", user.Address, v.Str("address"))
	put("city", user.City, v.Str("city"))
	put("country", user.Country, v.Str("country"))
	put("phone", user.Phone, v.Str("phone"))
	oldExt := 0
	if user.Extension != nil {
		oldExt = int(user.Extension.ID)
	}
	put("extension_id", oldExt, v.Int("extension_id"))
	return changes
}

// OpenCreate 打开创建对话框
func (s *UserScreen) OpenCreate() error {
	if !s.CanManage() {
		return ErrForbidden
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CreateOpen = true
	s.Form = forms.Values{"role": models.RolePBXUser, "status": "active"}
	s.FieldErrors = nil
	return nil
}

// SubmitCreate 校验并提交创建
func (s *UserScreen) SubmitCreate(ctx context.Context) error {
	s.mu.Lock()
	form := s.Form
	s.mu.Unlock()

	if err := forms.Validate(form, userRules); err != nil {
		s.deps.Notify.Error("Validation", err.Error())
		return err
	}

	user, err := s.svc.Create(ctx, userInput(form))
	if err != nil {
		s.mu.Lock()
		s.FieldErrors = api.FieldErrors(err)
		s.mu.Unlock()
		s.deps.Notify.Error("Create user failed", api.MessageOf(err))
		return err
	}

	s.invalidate(ctx)
	s.mu.Lock()
	s.CreateOpen = false
	s.Form = nil
	s.FieldErrors = nil
	s.mu.Unlock()
	s.deps.Notify.Success("User created", user.Name)
	return nil
}

// OpenEdit 打开编辑对话框
func (s *UserScreen) OpenEdit(user models.User) error {
	if !s.CanManage() {
		return ErrForbidden
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = &user
	s.Form = userForm(user)
	s.FieldErrors = nil
	s.EditOpen = true
	return nil
}

// SubmitEdit 校验并提交编辑，只发送变更字段
func (s *UserScreen) SubmitEdit(ctx context.Context) error {
	s.mu.Lock()
	form := s.Form
	editing := s.editing
	s.mu.Unlock()
	if editing == nil {
		return fmt.Errorf("no user selected")
	}

	if err := forms.Validate(form, userRules); err != nil {
		s.deps.Notify.Error("Validation", err.Error())
		return err
	}

	changes := userChanges(*editing, form)
	if len(changes) == 0 {
		s.mu.Lock()
		s.EditOpen = false
		s.editing = nil
		s.mu.Unlock()
		return nil
	}

	user, err := s.svc.Update(ctx, editing.ID, changes)
	if err != nil {
		s.mu.Lock()
		s.FieldErrors = api.FieldErrors(err)
		s.mu.Unlock()
		s.deps.Notify.Error("Update user failed", api.MessageOf(err))
		return err
	}

	s.invalidate(ctx)
	s.mu.Lock()
	s.EditOpen = false
	s.editing = nil
	s.Form = nil
	s.FieldErrors = nil
	s.mu.Unlock()
	s.deps.Notify.Success("User updated", user.Name)
	return nil
}

// RequestDelete 打开删除确认对话框
func (s *UserScreen) RequestDelete(user models.User) (string, error) {
	if !s.CanManage() {
		return "", ErrForbidden
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleting = &user
	s.ConfirmOpen = true
	return fmt.Sprintf("Delete user %q?", user.Name), nil
}

// ConfirmDelete 确认后删除
func (s *UserScreen) ConfirmDelete(ctx context.Context) error {
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
		s.deps.Notify.Error("Delete user failed", api.MessageOf(err))
		return err
	}

	s.invalidate(ctx)
	s.mu.Lock()
	s.ConfirmOpen = false
	s.deleting = nil
	s.CreateOpen = false
	s.EditOpen = false
	s.mu.Unlock()
	s.deps.Notify.Success("User deleted", target.Name)
	return nil
}

// CancelDelete 取消删除
func (s *UserScreen) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ConfirmOpen = false
	s.deleting = nil
}
