package screens

import (
	"context"
	"fmt"
	"sync"

	"github.com/code-100-precent/EchoPBX/internal/api"
	"github.com/code-100-precent/EchoPBX/internal/download"
	"github.com/code-100-precent/EchoPBX/internal/forms"
	"github.com/code-100-precent/EchoPBX/internal/models"
	"github.com/code-100-precent/EchoPBX/pkg/player"
)

var recordingRules = []forms.Rule{
	forms.Required("name", "Name is required"),
	forms.OneOf("type", []string{models.RecordingTypeUpload, models.RecordingTypeRemote}, "Type is invalid"),
	{
		Field:   "remote_url",
		Message: "Remote URL is required for remote recordings",
		Check: func(v forms.Values) bool {
			if v.Str("type") != models.RecordingTypeRemote {
				return true
			}
			return v.Str("remote_url") != ""
		},
	},
}

// RecordingScreen 录音页面：列表 CRUD 加试听和下载
type RecordingScreen struct {
	*listController[models.Recording]
	svc        *api.RecordingService
	playback   *player.Controller
	downloader *download.Downloader

	mu          sync.Mutex
	CreateOpen  bool
	EditOpen    bool
	ConfirmOpen bool
	Form        forms.Values
	FieldErrors map[string][]string
	editing     *models.Recording
	deleting    *models.Recording
}

// NewRecordingScreen 创建录音页面
func NewRecordingScreen(deps Deps, client *api.Client, downloader *download.Downloader) *RecordingScreen {
	svc := client.Recordings()
	return &RecordingScreen{
		listController: newListController(deps, api.ResourceRecordings, svc.List),
		svc:            svc,
		playback:       player.NewController(),
		downloader:     downloader,
	}
}

// PlayingID 正在试听的录音 ID，0 表示静默
func (s *RecordingScreen) PlayingID() uint {
	key := s.playback.CurrentKey()
	if key == "" {
		return 0
	}
	var id uint
	fmt.Sscanf(key, "recording:%d", &id)
	return id
}

// TogglePlay 试听开关：同一条再点是停止，换一条则先停旧的
// 返回 true 表示现在正在播放
func (s *RecordingScreen) TogglePlay(ctx context.Context, rec models.Recording) (bool, error) {
	key := fmt.Sprintf("recording:%d", rec.ID)
	playing, err := s.playback.Toggle(ctx, key, func(ctx context.Context) (player.Playback, error) {
		data, _, err := s.downloader.FetchBytes(ctx, rec.ID)
		if err != nil {
			return nil, err
		}
		return player.NewDevice(player.DefaultPCMConfig(), data)
	})
	if err != nil {
		s.deps.Notify.Error("Playback failed", api.MessageOf(err))
		return false, err
	}
	return playing, nil
}

// Download 下载录音到本地目录
func (s *RecordingScreen) Download(ctx context.Context, rec models.Recording) (string, error) {
	path, err := s.downloader.Fetch(ctx, rec.ID)
	if err != nil {
		s.deps.Notify.Error("Download failed", api.MessageOf(err))
		return "", err
	}
	s.deps.Notify.Success("Recording downloaded", path)
	return path, nil
}

func recordingForm(rec models.Recording) forms.Values {
	return forms.Values{
		"name":       rec.Name,
		"type":       rec.Type,
		"remote_url": rec.RemoteURL,
		"mime_type":  rec.MimeType,
		"status":     rec.Status,
	}
}

func recordingInput(v forms.Values) models.RecordingInput {
	return models.RecordingInput{
		Name:      v.Str("name"),
		Type:      v.Str("type"),
		RemoteURL: v.Str("remote_url"),
		MimeType:  v.Str("mime_type"),
		Status:    v.Str("status"),
	}
}

// OpenCreate 打开创建对话框
func (s *RecordingScreen) OpenCreate() error {
	if !s.CanManage() {
		return ErrForbidden
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CreateOpen = true
	s.Form = forms.Values{"type": models.RecordingTypeUpload, "status": "active"}
	s.FieldErrors = nil
	return nil
}

// SubmitCreate 校验并提交创建
func (s *RecordingScreen) SubmitCreate(ctx context.Context) error {
	s.mu.Lock()
	form := s.Form
	s.mu.Unlock()

	if err := forms.Validate(form, recordingRules); err != nil {
		s.deps.Notify.Error("Validation", err.Error())
		return err
	}

	rec, err := s.svc.Create(ctx, recordingInput(form))
	if err != nil {
		s.mu.Lock()
		s.FieldErrors = api.FieldErrors(err)
		s.mu.Unlock()
		s.deps.Notify.Error("Create recording failed", api.MessageOf(err))
		return err
	}

	s.invalidate(ctx)
	s.mu.Lock()
	s.CreateOpen = false
	s.Form = nil
	s.FieldErrors = nil
	s.mu.Unlock()
	s.deps.Notify.Success("Recording created", rec.Name)
	return nil
}

// OpenEdit 打开编辑对话框
func (s *RecordingScreen) OpenEdit(rec models.Recording) error {
	if !s.CanManage() {
		return ErrForbidden
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = &rec
	s.Form = recordingForm(rec)
	s.FieldErrors = nil
	s.EditOpen = true
	return nil
}

// SubmitEdit 校验并提交编辑
func (s *RecordingScreen) SubmitEdit(ctx context.Context) error {
	s.mu.Lock()
	form := s.Form
	editing := s.editing
	s.mu.Unlock()
	if editing == nil {
		return fmt.Errorf("no recording selected")
	}

	if err := forms.Validate(form, recordingRules); err != nil {
		s.deps.Notify.Error("Validation", err.Error())
		return err
	}

	rec, err := s.svc.Update(ctx, editing.ID, recordingInput(form))
	if err != nil {
		s.mu.Lock()
		s.FieldErrors = api.FieldErrors(err)
		s.mu.Unlock()
		s.deps.Notify.Error("Update recording failed", api.MessageOf(err))
		return err
	}

	s.invalidate(ctx)
	s.mu.Lock()
	s.EditOpen = false
	s.editing = nil
	s.Form = nil
	s.FieldErrors = nil
	s.mu.Unlock()
	s.deps.Notify.Success("Recording updated", rec.Name)
	return nil
}

// RequestDelete 打开删除确认对话框
func (s *RecordingScreen) RequestDelete(rec models.Recording) (string, error) {
	if !s.CanManage() {
		return "", ErrForbidden
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleting = &rec
	s.ConfirmOpen = true
	return fmt.Sprintf("Delete recording %q?", rec.Name), nil
}

// ConfirmDelete 确认后删除
func (s *RecordingScreen) ConfirmDelete(ctx context.Context) error {
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
		s.deps.Notify.Error("Delete recording failed", api.MessageOf(err))
		return err
	}

	s.invalidate(ctx)
	s.mu.Lock()
	s.ConfirmOpen = false
	s.deleting = nil
	s.CreateOpen = false
	s.EditOpen = false
	s.mu.Unlock()
	s.deps.Notify.Success("Recording deleted", target.Name)
	return nil
}

// CancelDelete 取消删除
func (s *RecordingScreen) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ConfirmOpen = false
	s.deleting = nil
}

// Close 页面卸载：停防抖定时器，也停掉还在播的音频
func (s *RecordingScreen) Close() {
	s.playback.Close()
	s.listController.Close()
}
