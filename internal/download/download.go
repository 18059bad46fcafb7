package download

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/carlmjohnson/requests"
	gocache "github.com/patrickmn/go-cache"

	"github.com/code-100-precent/EchoPBX/internal/api"
	"github.com/code-100-precent/EchoPBX/internal/models"
	"github.com/code-100-precent/EchoPBX/pkg/logger"
	"go.uber.org/zap"
)

// 签名 URL 时效很短，凭证只做一分钟的本地复用
const ticketTTL = time.Minute

// Downloader 录音下载器：先换短时效下载凭证，再从签名 URL 拉文件字节
type Downloader struct {
	recordings *api.RecordingService
	dir        string
	tickets    *gocache.Cache
}

// New 创建下载器，dir 为落盘目录
func New(recordings *api.RecordingService, dir string) *Downloader {
	return &Downloader{
		recordings: recordings,
		dir:        dir,
		tickets:    gocache.New(ticketTTL, 2*ticketTTL),
	}
}

func (d *Downloader) ticket(ctx context.Context, id uint) (*models.DownloadTicket, error) {
	key := fmt.Sprintf("%d", id)
	if cached, ok := d.tickets.Get(key); ok {
		return cached.(*models.DownloadTicket), nil
	}
	ticket, err := d.recordings.DownloadTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	d.tickets.Set(key, ticket, gocache.DefaultExpiration)
	return ticket, nil
}

// Fetch 下载录音到目录，返回落盘路径
// 两步都失败即中止，不留半截文件
func (d *Downloader) Fetch(ctx context.Context, id uint) (string, error) {
	ticket, err := d.ticket(ctx, id)
	if err != nil {
		return "", fmt.Errorf("get download ticket: %w", err)
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(d.dir, filepath.Base(ticket.Filename))

	if err := requests.URL(ticket.URL).ToFile(path).Fetch(ctx); err != nil {
		// 凭证可能刚好过期，丢掉缓存让下次重新换
		d.tickets.Delete(fmt.Sprintf("%d", id))
		os.Remove(path)
		return "", fmt.Errorf("fetch audio: %w", err)
	}

	logger.Info("recording downloaded",
		zap.Uint("id", id),
		zap.String("path", path))
	return path, nil
}

// FetchBytes 下载录音到内存（播放用）
func (d *Downloader) FetchBytes(ctx context.Context, id uint) ([]byte, string, error) {
	ticket, err := d.ticket(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("get download ticket: %w", err)
	}

	var buf bytes.Buffer
	if err := requests.URL(ticket.URL).ToBytesBuffer(&buf).Fetch(ctx); err != nil {
		d.tickets.Delete(fmt.Sprintf("%d", id))
		return nil, "", fmt.Errorf("fetch audio: %w", err)
	}
	return buf.Bytes(), ticket.Filename, nil
}
