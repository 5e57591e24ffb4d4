//go:build cgo

// Package portaudio is an alternative device backend for platforms where the
// miniaudio bindings are unavailable. It exposes the same capture and
// playback surface as the miniaudio client.
package portaudio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/lingvo-app/lingvo-core/core/audio"
)

type Client struct {
	bufferSize int
	stream     *portaudio.Stream

	in  []int16
	out []int16

	mu            sync.Mutex
	leftoverAudio []byte
	stopCapture   context.CancelFunc
}

func NewClient(bufferSize int) (*Client, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	in := make([]int16, bufferSize)
	out := make([]int16, bufferSize)
	stream, err := portaudio.OpenDefaultStream(1, 1, audio.DefaultSampleRate, bufferSize, in, out)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to open portaudio stream: %w", err)
	}

	return &Client{
		bufferSize: bufferSize,
		stream:     stream,
		in:         in,
		out:        out,
	}, nil
}

// StartCapture reads microphone frames until StopCapture or context expiry.
func (c *Client) StartCapture(ctx context.Context, onAudio func(audio []byte)) error {
	c.mu.Lock()
	if c.stopCapture != nil {
		c.mu.Unlock()
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	c.stopCapture = cancel
	c.mu.Unlock()

	if err := c.stream.Start(); err != nil {
		cancel()
		return fmt.Errorf("failed to start portaudio stream: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if err := c.stream.Read(); err != nil {
					continue
				}

				audioBuffer := bytes.Buffer{}
				_ = binary.Write(&audioBuffer, binary.LittleEndian, c.in)
				onAudio(audioBuffer.Bytes())
			}
		}
	}()

	return nil
}

func (c *Client) StopCapture() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopCapture == nil {
		return nil
	}
	c.stopCapture()
	c.stopCapture = nil

	if err := c.stream.Stop(); err != nil {
		return fmt.Errorf("failed to stop portaudio stream: %w", err)
	}
	return nil
}

func (c *Client) StartPlayback(context.Context) error { return nil }

func (c *Client) StopPlayback() error {
	c.ClearBuffer()
	return nil
}

// SendAudio writes full device buffers immediately and holds the remainder
// until the next call completes it.
func (c *Client) SendAudio(audio []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	bufferSize := c.bufferSize * 2
	audio = append(c.leftoverAudio, audio...)

	for len(audio) >= bufferSize {
		_ = binary.Read(bytes.NewBuffer(audio[:bufferSize]), binary.LittleEndian, c.out)
		if err := c.stream.Write(); err != nil {
			return fmt.Errorf("failed to write to portaudio stream: %w", err)
		}
		audio = audio[bufferSize:]
	}

	c.leftoverAudio = append([]byte{}, audio...)
	return nil
}

func (c *Client) ClearBuffer() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.leftoverAudio = nil
}

// AwaitDrained flushes the leftover partial buffer, padded with silence, so
// the utterance tail is not cut off.
func (c *Client) AwaitDrained() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.leftoverAudio) == 0 {
		return nil
	}

	bufferSize := c.bufferSize * 2
	chunk := make([]byte, bufferSize)
	copy(chunk, c.leftoverAudio)
	c.leftoverAudio = nil

	_ = binary.Read(bytes.NewBuffer(chunk), binary.LittleEndian, c.out)
	if err := c.stream.Write(); err != nil {
		return fmt.Errorf("failed to write to portaudio stream: %w", err)
	}
	return nil
}

func (c *Client) EncodingInfo() audio.EncodingInfo {
	return audio.EncodingInfo{
		SampleRate: audio.DefaultSampleRate,
		Format:     audio.EncodingLinear16,
	}
}

func (c *Client) Close() {
	_ = c.StopCapture()
	c.stream.Close()
	portaudio.Terminate()
}
