// Package miniaudio provides microphone capture and speaker playback through
// the malgo bindings. One Client owns both device halves so the speech
// vendors share a single audio context.
package miniaudio

import (
	"context"
	"fmt"

	"github.com/gen2brain/malgo"
	"github.com/lingvo-app/lingvo-core/core/audio"
)

// Client satisfies both the capture-side AudioInput and the synthesis-side
// AudioOutput contracts.
type Client struct {
	// context must outlive both devices; Close uninitializes it last.
	context *malgo.AllocatedContext

	playbackClient
	captureClient
}

// NewClient initializes the audio context and both devices. The playback
// device starts immediately and keeps running; it feeds silence while the
// queue is empty, which avoids start/stop clicks between utterances.
func NewClient() (*Client, error) {
	malgoCtx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(string) {})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audio context: %w", err)
	}

	client := Client{context: malgoCtx}

	if err := client.playbackClient.Init(malgoCtx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to initialize playback client: %w", err)
	}
	if err := client.playbackClient.Start(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to start playback device: %w", err)
	}
	if err := client.captureClient.Init(malgoCtx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to initialize capture client: %w", err)
	}

	return &client, nil
}

func (c *Client) StartCapture(_ context.Context, onAudio func(audio []byte)) error {
	return c.captureClient.Start(onAudio)
}

func (c *Client) StopCapture() error {
	return c.captureClient.Stop()
}

func (c *Client) StartPlayback(_ context.Context) error {
	return c.playbackClient.Start()
}

func (c *Client) StopPlayback() error {
	return c.playbackClient.Stop()
}

func (c *Client) SendAudio(audio []byte) error {
	return c.playbackClient.SendAudio(audio)
}

func (c *Client) ClearBuffer() {
	c.playbackClient.ClearBuffer()
}

// AwaitDrained blocks until every byte queued so far has been handed to the
// device.
func (c *Client) AwaitDrained() error {
	return c.playbackClient.AwaitDrained()
}

// EncodingInfo reports the stream format both halves run at.
func (c *Client) EncodingInfo() audio.EncodingInfo {
	return audio.GetDefaultEncodingInfo()
}

func (c *Client) Close() {
	_ = c.captureClient.Uninit()
	_ = c.playbackClient.Uninit()
	_ = c.context.Uninit()
	c.context.Free()
}
