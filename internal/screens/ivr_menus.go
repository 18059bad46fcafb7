package screens

import (
	"context"
	"fmt"
	"sync"

	"github.com/code-100-precent/EchoPBX/internal/api"
	"github.com/code-100-precent/EchoPBX/internal/forms"
	"github.com/code-100-precent/EchoPBX/internal/models"
)

// IVR 菜单：音频来源三选一（录音 / 远程 URL / TTS 文本）
var ivrRules = []forms.Rule{
	forms.Required("name", "Name is required"),
	{
		Field:   "audio_source",
		Message: "An audio source is required: recording, audio URL or TTS text",
		Check: func(v forms.Values) bool {
			return v.Int("recording_id") > 0 || v.Str("audio_url") != "" || v.Str("tts_text") != ""
		},
	},
	forms.RequiredIf("has_tts", "tts_voice", "TTS voice is required when using TTS text"),
}

// IvrMenuScreen IVR 菜单页面
type IvrMenuScreen struct {
	*listController[models.IvrMenu]
	svc *api.IvrMenuService

	mu          sync.Mutex
	CreateOpen  bool
	EditOpen    bool
	ConfirmOpen bool
	Form        forms.Values
	Options     []models.IvrMenuOption
	FieldErrors map[string][]string
	editing     *models.IvrMenu
	deleting    *models.IvrMenu
}

// NewIvrMenuScreen 创建 IVR 菜单页面
func NewIvrMenuScreen(deps Deps, client *api.Client) *IvrMenuScreen {
	svc := client.IvrMenus()
	return &IvrMenuScreen{
		listController: newListController(deps, api.ResourceIvrMenus, svc.List),
		svc:            svc,
	}
}

func ivrForm(menu models.IvrMenu) forms.Values {
	return forms.Values{
		"name":          menu.Name,
		"description":   menu.Description,
		"recording_id":  int(menu.RecordingID),
		"audio_url":     menu.AudioURL,
		"tts_text":      menu.TTSText,
		"tts_voice":     menu.TTSVoice,
		"has_tts":       menu.TTSText != "",
		"max_replays":   menu.MaxReplays,
		"failover_type": menu.FailoverType,
		"failover_id":   int(menu.FailoverID),
		"status":        menu.Status,
	}
}

func (s *IvrMenuScreen) ivrInput(v forms.Values) models.IvrMenuInput {
	return models.IvrMenuInput{
		Name:         v.Str("name"),
		Description:  v.Str("description"),
		RecordingID:  uint(v.Int("recording_id")),
		AudioURL:     v.Str("audio_url"),
		TTSText:      v.Str("tts_text"),
		TTSVoice:     v.Str("tts_voice"),
		Options:      s.Options,
		MaxReplays:   v.Int("max_replays"),
		FailoverType: v.Str("failover_type"),
		FailoverID:   uint(v.Int("failover_id")),
		Status:       v.Str("status"),
	}
}

func (s *IvrMenuScreen) syncTTSFlag() {
	s.Form.Set("has_tts", s.Form.Str("tts_text") != "")
}

// OpenCreate 打开创建对话框
func (s *IvrMenuScreen) OpenCreate() error {
	if !s.CanManage() {
		return ErrForbidden
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CreateOpen = true
	s.Form = forms.Values{"max_replays": 3, "status": "active"}
	s.Options = nil
	s.FieldErrors = nil
	return nil
}

// AddOption 添加按键选项（按 digit 去重覆盖）
func (s *IvrMenuScreen) AddOption(opt models.IvrMenuOption) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.Options {
		if existing.Digit == opt.Digit {
			s.Options[i] = opt
			return
		}
	}
	s.Options = append(s.Options, opt)
}

// RemoveOption 移除按键选项
func (s *IvrMenuScreen) RemoveOption(digit string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.Options {
		if existing.Digit == digit {
			s.Options = append(s.Options[:i], s.Options[i+1:]...)
			return
		}
	}
}

// SubmitCreate 校验并提交创建
func (s *IvrMenuScreen) SubmitCreate(ctx context.Context) error {
	s.mu.Lock()
	s.syncTTSFlag()
	form := s.Form
	s.mu.Unlock()

	if err := forms.Validate(form, ivrRules); err != nil {
		s.deps.Notify.Error("Validation", err.Error())
		return err
	}

	menu, err := s.svc.Create(ctx, s.ivrInput(form))
	if err != nil {
		s.mu.Lock()
		s.FieldErrors = api.FieldErrors(err)
		s.mu.Unlock()
		s.deps.Notify.Error("Create IVR menu failed", api.MessageOf(err))
		return err
	}

	s.invalidate(ctx)
	s.mu.Lock()
	s.CreateOpen = false
	s.Form = nil
	s.Options = nil
	s.FieldErrors = nil
	s.mu.Unlock()
	s.deps.Notify.Success("IVR menu created", menu.Name)
	return nil
}

// OpenEdit 打开编辑对话框
func (s *IvrMenuScreen) OpenEdit(menu models.IvrMenu) error {
	if !s.CanManage() {
		return ErrForbidden
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = &menu
	s.Form = ivrForm(menu)
	s.Options = append([]models.IvrMenuOption(nil), menu.Options...)
	s.FieldErrors = nil
	s.EditOpen = true
	return nil
}

// SubmitEdit 校验并提交编辑
func (s *IvrMenuScreen) SubmitEdit(ctx context.Context) error {
	s.mu.Lock()
	s.syncTTSFlag()
	form := s.Form
	editing := s.editing
	s.mu.Unlock()
	if editing == nil {
		return fmt.Errorf("no IVR menu selected")
	}

	if err := forms.Validate(form, ivrRules); err != nil {
		s.deps.Notify.Error("Validation", err.Error())
		return err
	}

	menu, err := s.svc.Update(ctx, editing.ID, s.ivrInput(form))
	if err != nil {
		s.mu.Lock()
		s.FieldErrors = api.FieldErrors(err)
		s.mu.Unlock()
		s.deps.Notify.Error("Update IVR menu failed", api.MessageOf(err))
		return err
	}

	s.invalidate(ctx)
	s.mu.Lock()
	s.EditOpen = false
	s.editing = nil
	s.Form = nil
	s.Options = nil
	s.FieldErrors = nil
	s.mu.Unlock()
	s.deps.Notify.Success("IVR menu updated", menu.Name)
	return nil
}

// RequestDelete 打开删除确认对话框
func (s *IvrMenuScreen) RequestDelete(menu models.IvrMenu) (string, error) {
	if !s.CanManage() {
		return "", ErrForbidden
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleting = &menu
	s.ConfirmOpen = true
	return fmt.Sprintf("Delete IVR menu %q?", menu.Name), nil
}

// ConfirmDelete 确认后删除
func (s *IvrMenuScreen) ConfirmDelete(ctx context.Context) error {
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
		s.deps.Notify.Error("Delete IVR menu failed", api.MessageOf(err))
		return err
	}

	s.invalidate(ctx)
	s.mu.Lock()
	s.ConfirmOpen = false
	s.deleting = nil
	s.CreateOpen = false
	s.EditOpen = false
	s.mu.Unlock()
	s.deps.Notify.Success("IVR menu deleted", target.Name)
	return nil
}

// CancelDelete 取消删除
func (s *IvrMenuScreen) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ConfirmOpen = false
	s.deleting = nil
}
