package player

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePlayback 测试用播放，可手动触发自然结束
type fakePlayback struct {
	done    chan struct{}
	stopped int32
}

func newFakePlayback() *fakePlayback {
	return &fakePlayback{done: make(chan struct{})}
}

func (f *fakePlayback) Done() <-chan struct{} { return f.done }

func (f *fakePlayback) Stop() {
	if atomic.CompareAndSwapInt32(&f.stopped, 0, 1) {
		close(f.done)
	}
}

func (f *fakePlayback) finish() {
	if atomic.CompareAndSwapInt32(&f.stopped, 0, 1) {
		close(f.done)
	}
}

func factoryFor(pb Playback) Factory {
	return func(ctx context.Context) (Playback, error) { return pb, nil }
}

func TestToggleStartsPlayback(t *testing.T) {
	c := NewController()
	pb := newFakePlayback()

	playing, err := c.Toggle(context.Background(), "recording:1", factoryFor(pb))
	require.NoError(t, err)
	assert.True(t, playing)
	assert.Equal(t, "recording:1", c.CurrentKey())
}

func TestToggleSameKeyStops(t *testing.T) {
	c := NewController()
	pb := newFakePlayback()

	_, err := c.Toggle(context.Background(), "recording:1", factoryFor(pb))
	require.NoError(t, err)

	playing, err := c.Toggle(context.Background(), "recording:1", func(ctx context.Context) (Playback, error) {
		t.Error("factory must not run when toggling the same key off")
		return nil, errors.New("unreachable")
	})
	require.NoError(t, err)
	assert.False(t, playing)
	assert.Equal(t, "", c.CurrentKey())
	assert.Equal(t, int32(1), atomic.LoadInt32(&pb.stopped))
}

func TestToggleOtherKeyReplacesPlayback(t *testing.T) {
	c := NewController()
	first := newFakePlayback()
	second := newFakePlayback()

	_, err := c.Toggle(context.Background(), "recording:1", factoryFor(first))
	require.NoError(t, err)

	playing, err := c.Toggle(context.Background(), "recording:2", factoryFor(second))
	require.NoError(t, err)
	assert.True(t, playing)
	assert.Equal(t, "recording:2", c.CurrentKey())
	assert.Equal(t, int32(1), atomic.LoadInt32(&first.stopped), "old playback is stopped first")
	assert.Equal(t, int32(0), atomic.LoadInt32(&second.stopped))
}

func TestNaturalFinishClearsState(t *testing.T) {
	c := NewController()
	pb := newFakePlayback()

	_, err := c.Toggle(context.Background(), "recording:1", factoryFor(pb))
	require.NoError(t, err)

	pb.finish()
	assert.Eventually(t, func() bool {
		return c.CurrentKey() == ""
	}, time.Second, 10*time.Millisecond)
}

func TestFactoryErrorLeavesSilence(t *testing.T) {
	c := NewController()
	boom := errors.New("device busy")

	playing, err := c.Toggle(context.Background(), "recording:1", func(ctx context.Context) (Playback, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	assert.False(t, playing)
	assert.Equal(t, "", c.CurrentKey())
}

func TestCloseStopsCurrent(t *testing.T) {
	c := NewController()
	pb := newFakePlayback()

	_, err := c.Toggle(context.Background(), "recording:1", factoryFor(pb))
	require.NoError(t, err)

	c.Close()
	assert.Equal(t, "", c.CurrentKey())
	assert.Equal(t, int32(1), atomic.LoadInt32(&pb.stopped))
}
