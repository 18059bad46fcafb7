package screens

import (
	"context"
	"fmt"
	"sync"

	"github.com/code-100-precent/EchoPBX/internal/api"
	"github.com/code-100-precent/EchoPBX/internal/forms"
	"github.com/code-100-precent/EchoPBX/internal/models"
)

// 会议室表单校验规则，创建与编辑共用
var conferenceRoomRules = []forms.Rule{
	forms.Required("name", "Name is required"),
	forms.MinInt("max_members", 2, "Capacity must be at least 2"),
	forms.RequiredIf("pin_required", "participant_pin", "PIN is required when PIN protection is enabled"),
	forms.RequiredIf("talk_detection_enabled", "talk_detection_webhook_url", "Webhook URL is required when talk detection is enabled"),
}

// ConferenceRoomScreen 会议室页面
type ConferenceRoomScreen struct {
	*listController[models.ConferenceRoom]
	svc *api.ConferenceRoomService

	mu          sync.Mutex
	CreateOpen  bool
	EditOpen    bool
	ConfirmOpen bool
	Form        forms.Values
	FieldErrors map[string][]string
	editing     *models.ConferenceRoom
	deleting    *models.ConferenceRoom
}

// NewConferenceRoomScreen 创建会议室页面
func NewConferenceRoomScreen(deps Deps, client *api.Client) *ConferenceRoomScreen {
	svc := client.ConferenceRooms()
	return &ConferenceRoomScreen{
		listController: newListController(deps, api.ResourceConferenceRooms, svc.List),
		svc:            svc,
	}
}

func defaultRoomForm() forms.Values {
	return forms.Values{
		"name":        "",
		"max_members": 10,
		"status":      "active",
	}
}

func roomForm(room models.ConferenceRoom) forms.Values {
	return forms.Values{
		"name":                       room.Name,
		"description":                room.Description,
		"max_members":                room.MaxMembers,
		"status":                     room.Status,
		"pin_required":               room.PinRequired,
		"participant_pin":            room.ParticipantPin,
		"host_pin":                   room.HostPin,
		"wait_for_host":              room.WaitForHost,
		"mute_on_entry":              room.MuteOnEntry,
		"announce_join_leave":        room.AnnounceJoinLeave,
		"music_on_hold":              room.MusicOnHold,
		"recording_enabled":          room.RecordingEnabled,
		"recording_auto_start":       room.RecordingAutoStart,
		"recording_webhook_url":      room.RecordingWebhookURL,
		"talk_detection_enabled":     room.TalkDetectionEnabled,
		"talk_detection_webhook_url": room.TalkDetectionWebhook,
	}
}

func roomInput(v forms.Values) models.ConferenceRoomInput {
	return models.ConferenceRoomInput{
		Name:                 v.Str("name"),
		Description:          v.Str("description"),
		MaxMembers:           v.Int("max_members"),
		Status:               v.Str("status"),
		PinRequired:          v.Bool("pin_required"),
		ParticipantPin:       v.Str("participant_pin"),
		HostPin:              v.Str("host_pin"),
		WaitForHost:          v.Bool("wait_for_host"),
		MuteOnEntry:          v.Bool("mute_on_entry"),
		AnnounceJoinLeave:    v.Bool("announce_join_leave"),
		MusicOnHold:          v.Bool("music_on_hold"),
		RecordingEnabled:     v.Bool("recording_enabled"),
		RecordingAutoStart:   v.Bool("recording_auto_start"),
		RecordingWebhookURL:  v.Str("recording_webhook_url"),
		TalkDetectionEnabled: v.Bool("talk_detection_enabled"),
		TalkDetectionWebhook: v.Str("talk_detection_webhook_url"),
	}
}

// roomChanges 只取与原记录不同的字段（部分更新）
func roomChanges(room models.ConferenceRoom, v forms.Values) map[string]interface{} {
	changes := map[string]interface{}{}
	put := func(field string, oldVal, newVal interface{}) {
		if oldVal != newVal {
			changes[field] = newVal
		}
	}
	put("name", room.Name, v.Str("name"))
	put("description", room.Description, v.Str("description"))
	put("max_members", room.MaxMembers, v.Int("max_members"))
	put("status", room.Status, v.Str("status"))
	put("pin_required", room.PinRequired, v.Bool("pin_required"))
	put("participant_pin", room.ParticipantPin, v.Str("participant_pin"))
	put("host_pin", room.HostPin, v.Str("host_pin"))
	put("wait_for_host", room.WaitForHost, v.Bool("wait_for_host"))
	put("mute_on_entry", room.MuteOnEntry, v.Bool("mute_on_entry"))
	put("announce_join_leave", room.AnnounceJoinLeave, v.Bool("announce_join_leave"))
	put("music_on_hold", room.MusicOnHold, v.Bool("music_on_hold"))
	put("recording_enabled", room.RecordingEnabled, v.Bool("recording_enabled"))
	put("recording_auto_start", room.RecordingAutoStart, v.Bool("recording_auto_start"))
	put("recording_webhook_url", room.RecordingWebhookURL, v.Str("recording_webhook_url"))
	put("talk_detection_enabled", room.TalkDetectionEnabled, v.Bool("talk_detection_enabled"))
	put("talk_detection_webhook_url", room.TalkDetectionWebhook, v.Str("talk_detection_webhook_url"))
	return changes
}

// OpenCreate 打开创建对话框
func (s *ConferenceRoomScreen) OpenCreate() error {
	if !s.CanManage() {
		return ErrForbidden
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CreateOpen = true
	s.Form = defaultRoomForm()
	s.FieldErrors = nil
	return nil
}

// SubmitCreate 校验并提交创建
// 校验失败不发请求；服务端拒绝时保留对话框与已填值
func (s *ConferenceRoomScreen) SubmitCreate(ctx context.Context) error {
	s.mu.Lock()
	form := s.Form
	s.mu.Unlock()

	if err := forms.Validate(form, conferenceRoomRules); err != nil {
		s.deps.Notify.Error("Validation", err.Error())
		return err
	}

	room, err := s.svc.Create(ctx, roomInput(form))
	if err != nil {
		s.mu.Lock()
		s.FieldErrors = api.FieldErrors(err)
		s.mu.Unlock()
		s.deps.Notify.Error("Create conference room failed", api.MessageOf(err))
		return err
	}

	s.invalidate(ctx)
	s.mu.Lock()
	s.CreateOpen = false
	s.Form = nil
	s.FieldErrors = nil
	s.mu.Unlock()
	s.deps.Notify.Success("Conference room created", room.Name)
	return nil
}

// OpenEdit 打开编辑对话框，表单用选中记录预填
func (s *ConferenceRoomScreen) OpenEdit(room models.ConferenceRoom) error {
	if !s.CanManage() {
		return ErrForbidden
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = &room
	s.Form = roomForm(room)
	s.FieldErrors = nil
	s.EditOpen = true
	return nil
}

// SubmitEdit 校验并提交编辑，只发送变更字段
func (s *ConferenceRoomScreen) SubmitEdit(ctx context.Context) error {
	s.mu.Lock()
	form := s.Form
	editing := s.editing
	s.mu.Unlock()
	if editing == nil {
		return fmt.Errorf("no conference room selected")
	}

	if err := forms.Validate(form, conferenceRoomRules); err != nil {
		s.deps.Notify.Error("Validation", err.Error())
		return err
	}

	changes := roomChanges(*editing, form)
	if len(changes) == 0 {
		s.mu.Lock()
		s.EditOpen = false
		s.editing = nil
		s.mu.Unlock()
		return nil
	}

	room, err := s.svc.Update(ctx, editing.ID, changes)
	if err != nil {
		s.mu.Lock()
		s.FieldErrors = api.FieldErrors(err)
		s.mu.Unlock()
		s.deps.Notify.Error("Update conference room failed", api.MessageOf(err))
		return err
	}

	s.invalidate(ctx)
	s.mu.Lock()
	s.EditOpen = false
	s.editing = nil
	s.Form = nil
	s.FieldErrors = nil
	s.mu.Unlock()
	s.deps.Notify.Success("Conference room updated", room.Name)
	return nil
}

// RequestDelete 打开删除确认对话框，返回点名该记录的确认文案
func (s *ConferenceRoomScreen) RequestDelete(room models.ConferenceRoom) (string, error) {
	if !s.CanManage() {
		return "", ErrForbidden
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleting = &room
	s.ConfirmOpen = true
	return fmt.Sprintf("Delete conference room %q?", room.Name), nil
}

// ConfirmDelete 确认后才真正发出删除请求
func (s *ConferenceRoomScreen) ConfirmDelete(ctx context.Context) error {
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
		s.deps.Notify.Error("Delete conference room failed", api.MessageOf(err))
		return err
	}

	s.invalidate(ctx)
	s.mu.Lock()
	s.ConfirmOpen = false
	s.deleting = nil
	s.CreateOpen = false
	s.EditOpen = false
	s.mu.Unlock()
	s.deps.Notify.Success("Conference room deleted", target.Name)
	return nil
}

// CancelDelete 取消删除
func (s *ConferenceRoomScreen) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ConfirmOpen = false
	s.deleting = nil
}
