package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid"
)

// Level 通知级别
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notification 一条通知（对应前端的 toast）
type Notification struct {
	ID      string
	Level   Level
	Title   string
	Message string
	At      time.Time
}

// Sink 通知输出端
type Sink interface {
	Notify(n Notification)
}

// Notifier 通知分发器
type Notifier struct {
	mu   sync.Mutex
	sink Sink
}

// NewNotifier 创建通知分发器
func NewNotifier(sink Sink) *Notifier {
	return &Notifier{sink: sink}
}

func (n *Notifier) emit(level Level, title, message string) {
	id, err := gonanoid.ID(12)
	if err != nil {
		id = fmt.Sprintf("%d", time.Now().UnixNano())
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sink.Notify(Notification{
		ID:      id,
		Level:   level,
		Title:   title,
		Message: message,
		At:      time.Now(),
	})
}

// Success 成功通知
func (n *Notifier) Success(title, message string) { n.emit(LevelSuccess, title, message) }

// Error 失败通知
func (n *Notifier) Error(title, message string) { n.emit(LevelError, title, message) }

// Info 普通通知
func (n *Notifier) Info(title, message string) { n.emit(LevelInfo, title, message) }

// ConsoleSink 输出到终端
type ConsoleSink struct {
	Out io.Writer
}

func (s *ConsoleSink) Notify(n Notification) {
	prefix := "•"
	switch n.Level {
	case LevelSuccess:
		prefix = "✔"
	case LevelError:
		prefix = "✘"
	}
	if n.Message != "" {
		fmt.Fprintf(s.Out, "%s %s: %s\n", prefix, n.Title, n.Message)
		return
	}
	fmt.Fprintf(s.Out, "%s %s\n", prefix, n.Title)
}

// MemorySink 记录通知，测试用
type MemorySink struct {
	mu    sync.Mutex
	items []Notification
}

func (s *MemorySink) Notify(n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, n)
}

// All 返回已记录的通知
func (s *MemorySink) All() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, len(s.items))
	copy(out, s.items)
	return out
}

// Last 返回最近一条通知
func (s *MemorySink) Last() *Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return nil
	}
	n := s.items[len(s.items)-1]
	return &n
}
