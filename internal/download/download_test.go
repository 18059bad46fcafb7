package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-100-precent/EchoPBX/internal/api"
	"github.com/code-100-precent/EchoPBX/internal/session"
)

// newBackends 起两个服务：API 发凭证，CDN 吐文件字节
func newBackends(t *testing.T, audio []byte, ticketCalls *int32) *api.Client {
	t.Helper()

	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/signed/abc" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "audio/wav")
		_, _ = w.Write(audio)
	}))
	t.Cleanup(cdn.Close)

	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recordings/5/download" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		atomic.AddInt32(ticketCalls, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url":"` + cdn.URL + `/signed/abc","filename":"welcome.wav"}`))
	}))
	t.Cleanup(apiSrv.Close)

	sess := session.New()
	sess.SetToken("tok")
	return api.New(api.Config{BaseURL: apiSrv.URL, Timeout: 5 * time.Second}, sess)
}

func TestFetchDownloadsViaTicket(t *testing.T) {
	audio := []byte("RIFF....WAVEfmt ")
	var ticketCalls int32
	client := newBackends(t, audio, &ticketCalls)

	dir := t.TempDir()
	d := New(client.Recordings(), dir)

	path, err := d.Fetch(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "welcome.wav"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, audio, data)
	assert.Equal(t, int32(1), atomic.LoadInt32(&ticketCalls))
}

func TestTicketIsReusedWithinTTL(t *testing.T) {
	audio := []byte("pcm-bytes")
	var ticketCalls int32
	client := newBackends(t, audio, &ticketCalls)

	d := New(client.Recordings(), t.TempDir())
	ctx := context.Background()

	_, err := d.Fetch(ctx, 5)
	require.NoError(t, err)
	_, _, err = d.FetchBytes(ctx, 5)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&ticketCalls), "fresh ticket is reused")
}

func TestFetchBytes(t *testing.T) {
	audio := []byte{0x01, 0x02, 0x03, 0x04}
	var ticketCalls int32
	client := newBackends(t, audio, &ticketCalls)

	d := New(client.Recordings(), t.TempDir())
	data, filename, err := d.FetchBytes(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, audio, data)
	assert.Equal(t, "welcome.wav", filename)
}

func TestTicketErrorAborts(t *testing.T) {
	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Recording not found"}`))
	}))
	t.Cleanup(apiSrv.Close)

	sess := session.New()
	client := api.New(api.Config{BaseURL: apiSrv.URL, Timeout: 5 * time.Second}, sess)

	dir := t.TempDir()
	d := New(client.Recordings(), dir)

	_, err := d.Fetch(context.Background(), 9)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no partial files on failure")
}

func TestSignedURLFailureDropsCachedTicket(t *testing.T) {
	var ticketCalls int32
	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(cdn.Close)

	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&ticketCalls, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url":"` + cdn.URL + `/expired","filename":"welcome.wav"}`))
	}))
	t.Cleanup(apiSrv.Close)

	sess := session.New()
	client := api.New(api.Config{BaseURL: apiSrv.URL, Timeout: 5 * time.Second}, sess)
	d := New(client.Recordings(), t.TempDir())
	ctx := context.Background()

	_, err := d.Fetch(ctx, 5)
	require.Error(t, err)
	_, err = d.Fetch(ctx, 5)
	require.Error(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&ticketCalls), "failed signed URL forces a new ticket")
}
