package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-100-precent/EchoPBX/internal/models"
	"github.com/code-100-precent/EchoPBX/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Session) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	sess := session.New()
	return New(Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, sess), sess
}

func TestListParamsValues(t *testing.T) {
	tests := []struct {
		name   string
		params ListParams
		want   map[string]string
	}{
		{
			"defaults",
			ListParams{},
			map[string]string{"page": "1"},
		},
		{
			"full set",
			ListParams{Page: 2, PerPage: 25, Search: "Board", Filters: map[string]string{"status": "active"}, SortBy: "name", SortOrder: "desc"},
			map[string]string{"page": "2", "per_page": "25", "search": "Board", "status": "active", "sort_by": "name", "sort_order": "desc"},
		},
		{
			"sort order defaults to asc",
			ListParams{Page: 1, SortBy: "name"},
			map[string]string{"page": "1", "sort_by": "name", "sort_order": "asc"},
		},
		{
			"empty filter values are dropped",
			ListParams{Page: 1, Filters: map[string]string{"status": ""}},
			map[string]string{"page": "1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.CacheParams())
		})
	}
}

func TestListSendsQueryAndBearer(t *testing.T) {
	var gotQuery map[string][]string
	var gotAuth string
	var gotRequestID string

	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.Page[models.DIDNumber]{
			Data: []models.DIDNumber{{ID: 1, Number: "+15551234567"}},
			Meta: models.PageMeta{Total: 1, CurrentPage: 1, LastPage: 1},
		})
	}))
	sess.SetToken("tok-123")

	page, err := client.DIDs().List(context.Background(), ListParams{
		Page: 1, PerPage: 25, Search: "555",
		Filters: map[string]string{"status": "active"},
	})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "+15551234567", page.Data[0].Number)
	assert.Equal(t, 1, page.Meta.Total)

	assert.Equal(t, []string{"25"}, gotQuery["per_page"])
	assert.Equal(t, []string{"555"}, gotQuery["search"])
	assert.Equal(t, []string{"active"}, gotQuery["status"])
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestAPIErrorMapping(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"The given data was invalid.","errors":{"number":["Number already taken"]}}`))
	}))

	_, err := client.DIDs().Create(context.Background(), models.DIDInput{Number: "+15551234567"})
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.False(t, apiErr.IsTransport())
	assert.Equal(t, "The given data was invalid.", MessageOf(err))
	assert.Equal(t, []string{"Number already taken"}, FieldErrors(err)["number"])
}

func TestAPIErrorWithoutBodyUsesGenericMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.Users().Get(context.Background(), 7)
	require.Error(t, err)
	assert.Equal(t, "request failed, please try again", MessageOf(err))
}

func TestTransportError(t *testing.T) {
	sess := session.New()
	// 不监听的端口，连接立即失败
	client := New(Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}, sess)

	_, err := client.LiveCalls(context.Background())
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.Equal(t, "request failed, please try again", MessageOf(err))
}

func TestItemEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/conference-rooms/3", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":3,"name":"Board Room","max_members":10,"status":"active"}}`))
	}))

	room, err := client.ConferenceRooms().Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, uint(3), room.ID)
	assert.Equal(t, "Board Room", room.Name)
}

func TestDownloadTicket(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recordings/5/download", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url":"https://cdn.example.com/signed/abc","filename":"welcome.wav"}`))
	}))

	ticket, err := client.Recordings().DownloadTicket(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/signed/abc", ticket.URL)
	assert.Equal(t, "welcome.wav", ticket.Filename)
}
