package player

import (
	"sync"

	"github.com/gen2brain/malgo"
)

// Device 播放一段完整 PCM 数据的声卡设备
// 数据放完后 Done 通道关闭
type Device struct {
	ctx    *malgo.AllocatedContext
	device *malgo.Device

	mu     sync.Mutex
	data   []byte
	offset int
	done   chan struct{}
	closed bool
}

// PCMConfig 播放参数
type PCMConfig struct {
	Channels   uint32
	SampleRate uint32
	Format     malgo.FormatType
}

// DefaultPCMConfig 16-bit 单声道 8kHz，电话录音常见格式
func DefaultPCMConfig() PCMConfig {
	return PCMConfig{Channels: 1, SampleRate: 8000, Format: malgo.FormatS16}
}

// NewDevice 打开声卡并开始播放 data
func NewDevice(cfg PCMConfig, data []byte) (*Device, error) {
	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, err
	}

	d := &Device{
		ctx:  mctx,
		data: data,
		done: make(chan struct{}),
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = cfg.Format
	deviceConfig.Playback.Channels = cfg.Channels
	deviceConfig.SampleRate = cfg.SampleRate
	deviceConfig.Alsa.NoMMap = 1

	bytesPerFrame := 2 * int(cfg.Channels)

	onSamples := func(pOutputSample, _ []byte, framecount uint32) {
		bytesNeeded := int(framecount) * bytesPerFrame

		d.mu.Lock()
		defer d.mu.Unlock()

		remain := len(d.data) - d.offset
		if remain <= 0 {
			for i := 0; i < bytesNeeded; i++ {
				pOutputSample[i] = 0
			}
			d.finishLocked()
			return
		}

		n := bytesNeeded
		if n > remain {
			n = remain
		}
		copy(pOutputSample, d.data[d.offset:d.offset+n])
		d.offset += n
		// 尾帧不足就补静音
		for i := n; i < bytesNeeded; i++ {
			pOutputSample[i] = 0
		}
		if d.offset >= len(d.data) {
			d.finishLocked()
		}
	}

	d.device, err = malgo.InitDevice(mctx.Context, deviceConfig, malgo.DeviceCallbacks{Data: onSamples})
	if err != nil {
		mctx.Uninit()
		mctx.Free()
		return nil, err
	}
	if err := d.device.Start(); err != nil {
		d.device.Uninit()
		mctx.Uninit()
		mctx.Free()
		return nil, err
	}
	return d, nil
}

func (d *Device) finishLocked() {
	if !d.closed {
		d.closed = true
		close(d.done)
	}
}

// Done 播放结束通道
func (d *Device) Done() <-chan struct{} {
	return d.done
}

// Stop 停止播放并释放设备
// 回调在设备线程跑，先 Uninit 再关通道避免写已释放的缓冲
func (d *Device) Stop() {
	if d.device != nil {
		d.device.Uninit()
		d.device = nil
	}
	if d.ctx != nil {
		d.ctx.Uninit()
		d.ctx.Free()
		d.ctx = nil
	}
	d.mu.Lock()
	d.finishLocked()
	d.mu.Unlock()
}
