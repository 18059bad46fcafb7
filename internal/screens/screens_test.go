package screens

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-100-precent/EchoPBX/internal/api"
	"github.com/code-100-precent/EchoPBX/internal/models"
	"github.com/code-100-precent/EchoPBX/internal/session"
	"github.com/code-100-precent/EchoPBX/pkg/cache"
	"github.com/code-100-precent/EchoPBX/pkg/notify"
)

// requestLog 记录到达后端的请求，断言页面行为用
type requestLog struct {
	mu      sync.Mutex
	entries []string
}

func (l *requestLog) add(r *http.Request) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry := r.Method + " " + r.URL.Path
	if q := r.URL.RawQuery; q != "" {
		entry += "?" + q
	}
	l.entries = append(l.entries, entry)
}

func (l *requestLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *requestLog) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *requestLog) contains(substr string) bool {
	for _, e := range l.all() {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

type fixture struct {
	deps   Deps
	client *api.Client
	sink   *notify.MemorySink
	log    *requestLog
}

func newFixture(t *testing.T, handler http.HandlerFunc) *fixture {
	t.Helper()
	log := &requestLog{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.add(r)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	sess := session.New()
	sess.SetToken("test-token")
	sess.SetUser(&models.User{ID: 1, Name: "Admin", Role: models.RolePBXAdmin})

	sink := &notify.MemorySink{}
	store := cache.NewLocalCache(cache.LocalConfig{MaxSize: 200, DefaultExpiration: time.Minute})
	deps := Deps{
		Cache:    cache.NewQueryCache(store, 30*time.Second, api.IsTransport),
		Session:  sess,
		Notify:   notify.NewNotifier(sink),
		Debounce: 30 * time.Millisecond,
		PageSize: 20,
	}
	client := api.New(api.Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, sess)
	return &fixture{deps: deps, client: client, sink: sink, log: log}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func emptyRoomPage(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, models.Page[models.ConferenceRoom]{
		Data: []models.ConferenceRoom{},
		Meta: models.PageMeta{Total: 0, CurrentPage: 1, LastPage: 1},
	})
}

func TestSearchDebounceCoalescesKeystrokes(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		emptyRoomPage(w)
	})
	screen := NewConferenceRoomScreen(f.deps, f.client)
	defer screen.Close()

	var refreshes int32
	var mu sync.Mutex
	screen.OnRefresh(func() {
		mu.Lock()
		refreshes++
		mu.Unlock()
		_ = screen.Load(context.Background())
	})

	// 模拟连续敲键
	screen.SetSearch("B")
	screen.SetSearch("Bo")
	screen.SetSearch("Board")

	time.Sleep(120 * time.Millisecond)

	mu.Lock()
	got := refreshes
	mu.Unlock()
	assert.Equal(t, int32(1), got, "only the settled term triggers a refresh")

	assert.Equal(t, 1, f.log.count(), "intermediate terms never reach the backend")
	assert.True(t, f.log.contains("search=Board"))
	assert.Equal(t, "Board", screen.Params().Search)
	assert.Equal(t, 1, screen.Params().Page)
}

func TestFilterAndSearchComposeIntoOneQuery(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		emptyRoomPage(w)
	})
	screen := NewConferenceRoomScreen(f.deps, f.client)
	defer screen.Close()

	screen.SetPerPage(25)
	screen.SetFilter("status", "active")
	screen.SetSearch("Board")
	screen.FlushSearch()
	screen.SetPage(3)
	// 过滤集变化后页码应回到 1；翻到第 3 页再改过滤重新回 1
	screen.SetFilter("status", "inactive")
	assert.Equal(t, 1, screen.Params().Page)

	screen.SetFilter("status", "active")
	require.NoError(t, screen.Load(context.Background()))

	assert.True(t, f.log.contains("page=1"))
	assert.True(t, f.log.contains("per_page=25"))
	assert.True(t, f.log.contains("search=Board"))
	assert.True(t, f.log.contains("status=active"))
}

func TestCreateValidationBlocksNetwork(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
	})
	screen := NewConferenceRoomScreen(f.deps, f.client)
	defer screen.Close()

	require.NoError(t, screen.OpenCreate())
	screen.Form.Set("name", "Board Room")
	screen.Form.Set("max_members", 10)
	screen.Form.Set("pin_required", true)
	screen.Form.Set("participant_pin", "")

	err := screen.SubmitCreate(context.Background())
	require.Error(t, err)
	assert.Equal(t, "PIN is required when PIN protection is enabled", err.Error())
	assert.Equal(t, 0, f.log.count(), "invalid form never hits the network")
	assert.True(t, screen.CreateOpen, "dialog stays open with entered values")
	assert.Equal(t, "Board Room", screen.Form.Str("name"))

	last := f.sink.Last()
	require.NotNil(t, last)
	assert.Equal(t, notify.LevelError, last.Level)
}

func TestCreateServerRejectionKeepsDialog(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"message": "The given data was invalid.",
			"errors":  map[string][]string{"name": {"Name already taken"}},
		})
	})
	screen := NewConferenceRoomScreen(f.deps, f.client)
	defer screen.Close()

	require.NoError(t, screen.OpenCreate())
	screen.Form.Set("name", "Board Room")
	screen.Form.Set("max_members", 10)

	err := screen.SubmitCreate(context.Background())
	require.Error(t, err)
	assert.True(t, screen.CreateOpen)
	assert.Equal(t, []string{"Name already taken"}, screen.FieldErrors["name"])

	last := f.sink.Last()
	require.NotNil(t, last)
	assert.Equal(t, notify.LevelError, last.Level)
	assert.Equal(t, "The given data was invalid.", last.Message)
}

func TestCreateSuccessInvalidatesFamily(t *testing.T) {
	var listCalls int32
	var lmu sync.Mutex
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			lmu.Lock()
			listCalls++
			lmu.Unlock()
			emptyRoomPage(w)
		case r.Method == http.MethodPost:
			writeJSON(w, http.StatusCreated, map[string]interface{}{
				"data": models.ConferenceRoom{ID: 9, Name: "Board Room", MaxMembers: 10, Status: "active"},
			})
		}
	})
	screen := NewConferenceRoomScreen(f.deps, f.client)
	defer screen.Close()
	ctx := context.Background()

	require.NoError(t, screen.Load(ctx))
	require.NoError(t, screen.Load(ctx))
	lmu.Lock()
	assert.Equal(t, int32(1), listCalls, "second load is served from cache")
	lmu.Unlock()

	require.NoError(t, screen.OpenCreate())
	screen.Form.Set("name", "Board Room")
	screen.Form.Set("max_members", 10)
	require.NoError(t, screen.SubmitCreate(ctx))
	assert.False(t, screen.CreateOpen)

	last := f.sink.Last()
	require.NotNil(t, last)
	assert.Equal(t, notify.LevelSuccess, last.Level)

	require.NoError(t, screen.Load(ctx))
	lmu.Lock()
	assert.Equal(t, int32(2), listCalls, "mutation invalidates the resource family")
	lmu.Unlock()
}

func TestEditSendsOnlyChangedFields(t *testing.T) {
	var gotBody map[string]interface{}
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"data": models.ConferenceRoom{ID: 4, Name: "Board Room", MaxMembers: 16, Status: "active"},
		})
	})
	screen := NewConferenceRoomScreen(f.deps, f.client)
	defer screen.Close()

	room := models.ConferenceRoom{ID: 4, Name: "Board Room", MaxMembers: 10, Status: "active"}
	require.NoError(t, screen.OpenEdit(room))
	screen.Form.Set("max_members", 16)

	require.NoError(t, screen.SubmitEdit(context.Background()))
	assert.Equal(t, map[string]interface{}{"max_members": float64(16)}, gotBody)
}

func TestEditWithoutChangesSkipsNetwork(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
	})
	screen := NewConferenceRoomScreen(f.deps, f.client)
	defer screen.Close()

	room := models.ConferenceRoom{ID: 4, Name: "Board Room", MaxMembers: 10, Status: "active"}
	require.NoError(t, screen.OpenEdit(room))
	require.NoError(t, screen.SubmitEdit(context.Background()))
	assert.False(t, screen.EditOpen)
	assert.Equal(t, 0, f.log.count())
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	var deleted int32
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deleted++
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, models.Page[models.OutboundWhitelistEntry]{
			Data: []models.OutboundWhitelistEntry{},
			Meta: models.PageMeta{Total: 0, CurrentPage: 1, LastPage: 1},
		})
	})
	screen := NewWhitelistScreen(f.deps, f.client)
	defer screen.Close()
	ctx := context.Background()

	// 未经确认直接删除
	err := screen.ConfirmDelete(ctx)
	require.ErrorIs(t, err, ErrNoPendingDelete)
	assert.Equal(t, int32(0), deleted)

	entry := models.OutboundWhitelistEntry{ID: 2, Name: "Local Calls", CountryCode: "1", TrunkName: "main"}
	prompt, err := screen.RequestDelete(entry)
	require.NoError(t, err)
	assert.Equal(t, `Delete whitelist entry "Local Calls"?`, prompt)

	// 取消后确认也不生效
	screen.CancelDelete()
	err = screen.ConfirmDelete(ctx)
	require.ErrorIs(t, err, ErrNoPendingDelete)
	assert.Equal(t, int32(0), deleted)

	// 完整流程
	_, err = screen.RequestDelete(entry)
	require.NoError(t, err)
	require.NoError(t, screen.ConfirmDelete(ctx))
	assert.Equal(t, int32(1), deleted)
	assert.True(t, f.log.contains("DELETE /outbound-whitelist/2"))
}

func TestManageGateForReadOnlyRoles(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		emptyRoomPage(w)
	})
	f.deps.Session.SetUser(&models.User{ID: 2, Name: "Reporter", Role: models.RoleReporter})

	screen := NewConferenceRoomScreen(f.deps, f.client)
	defer screen.Close()

	assert.False(t, screen.CanManage())
	assert.ErrorIs(t, screen.OpenCreate(), ErrForbidden)
	assert.ErrorIs(t, screen.OpenEdit(models.ConferenceRoom{ID: 1}), ErrForbidden)
	_, err := screen.RequestDelete(models.ConferenceRoom{ID: 1, Name: "Board Room"})
	assert.ErrorIs(t, err, ErrForbidden)

	// 只读角色仍可浏览
	require.NoError(t, screen.Load(context.Background()))
}

func TestLoadDistinguishesEmptyFromError(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		emptyRoomPage(w)
	})
	screen := NewConferenceRoomScreen(f.deps, f.client)
	defer screen.Close()

	require.NoError(t, screen.Load(context.Background()))
	assert.True(t, screen.Empty())
	assert.NoError(t, screen.Err)
}
