package miniaudio

import (
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"
	"github.com/lingvo-app/lingvo-core/core/audio"
)

type playbackClient struct {
	device *malgo.Device
	config malgo.DeviceConfig

	queued []byte
	// drainWaiters are positions in the queue; each waiter is released once
	// the device has consumed past its position.
	drainWaiters []drainWaiter

	mu      sync.Mutex
	queueMu sync.Mutex
}

type drainWaiter struct {
	position int
	release  func()
}

func (c *playbackClient) Init(audioContext *malgo.AllocatedContext) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	encoding := audio.GetDefaultEncodingInfo()
	format := malgo.FormatS16
	channels := 1
	bytesPerFrame := malgo.SampleSizeInBytes(format) * channels

	c.config = malgo.DefaultDeviceConfig(malgo.Playback)
	c.config.SampleRate = uint32(encoding.SampleRate)
	c.config.Playback.Format = format
	c.config.Playback.Channels = uint32(channels)
	c.config.Alsa.NoMMap = 1
	c.config.PeriodSizeInFrames = uint32(encoding.SampleRate / 10) // ~100ms of audio
	c.config.Periods = 4

	var err error
	if c.device, err = malgo.InitDevice(
		audioContext.Context,
		c.config,
		malgo.DeviceCallbacks{Data: c.feedDevice(bytesPerFrame)},
	); err != nil {
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}

	return nil
}

func (c *playbackClient) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device == nil {
		return fmt.Errorf("device not initialized")
	}
	if c.device.IsStarted() {
		return nil
	}

	if err := c.device.Start(); err != nil {
		return fmt.Errorf("failed to start playback device: %w", err)
	}
	return nil
}

func (c *playbackClient) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device == nil {
		return fmt.Errorf("device not initialized")
	}

	if err := c.device.Stop(); err != nil {
		return fmt.Errorf("failed to stop playback device: %w", err)
	}
	c.ClearBuffer()
	return nil
}

func (c *playbackClient) SendAudio(audio []byte) error {
	if c.device == nil {
		return fmt.Errorf("device not initialized")
	} else if !c.device.IsStarted() {
		return fmt.Errorf("device not started")
	}

	c.queueMu.Lock()
	defer c.queueMu.Unlock()
	c.queued = append(c.queued, audio...)
	return nil
}

// ClearBuffer drops all queued audio and releases every drain waiter, so a
// preempted utterance never blocks its caller.
func (c *playbackClient) ClearBuffer() {
	c.queueMu.Lock()
	c.queued = nil
	waiters := c.drainWaiters
	c.drainWaiters = nil
	c.queueMu.Unlock()

	for _, waiter := range waiters {
		go waiter.release()
	}
}

// AwaitDrained blocks until everything queued before the call has been fed to
// the device, or the buffer is cleared.
func (c *playbackClient) AwaitDrained() error {
	wg := sync.WaitGroup{}
	wg.Add(1)

	c.queueMu.Lock()
	c.drainWaiters = append(c.drainWaiters, drainWaiter{
		position: len(c.queued),
		release:  wg.Done,
	})
	c.queueMu.Unlock()

	wg.Wait()
	return nil
}

func (c *playbackClient) Uninit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device == nil {
		return fmt.Errorf("device not initialized")
	}
	c.device.Uninit()
	c.device = nil
	return nil
}

func (c *playbackClient) feedDevice(bytesPerFrame int) malgo.DataProc {
	return func(pOutput, _ []byte, frameCount uint32) {
		need := int(frameCount) * bytesPerFrame
		if need > len(pOutput) {
			need = len(pOutput)
		}

		c.queueMu.Lock()
		n := copy(pOutput[:need], c.queued)
		c.queued = c.queued[n:]

		var released []drainWaiter
		remaining := c.drainWaiters[:0]
		for _, waiter := range c.drainWaiters {
			waiter.position -= n
			if waiter.position <= 0 {
				released = append(released, waiter)
			} else {
				remaining = append(remaining, waiter)
			}
		}
		c.drainWaiters = remaining
		c.queueMu.Unlock()

		// Anything past the queued audio stays zeroed, which is silence for
		// signed PCM.

		for _, waiter := range released {
			go waiter.release()
		}
	}
}
