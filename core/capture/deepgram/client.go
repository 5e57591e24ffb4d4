// Package deepgram implements speech capture over the Deepgram live
// transcription websocket, fed by a local audio input device. Capture is
// one-shot: a cycle ends at the first finalized utterance, after which the
// device and the socket are released until the next Start.
package deepgram

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lingvo-app/lingvo-core/core/audio"
)

const apiKeyEnv = "DEEPGRAM_API_KEY"

// AudioInput is the device half feeding the websocket: a microphone client
// such as miniaudio.Client or portaudio.Client.
type AudioInput interface {
	StartCapture(ctx context.Context, onAudio func(audio []byte)) error
	StopCapture() error
	EncodingInfo() audio.EncodingInfo
}

type Client struct {
	apiKey     string
	model      string
	audioInput AudioInput

	connMu    sync.Mutex
	conn      *websocket.Conn
	lastMsgTs time.Time

	listening bool
	cycleStop context.CancelFunc

	accumulatedTranscript string
	unendedSegment        bool
}

type ClientOption func(*Client)

// WithAPIKey overrides the DEEPGRAM_API_KEY environment lookup.
func WithAPIKey(apiKey string) ClientOption {
	return func(c *Client) {
		c.apiKey = apiKey
	}
}

func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

func NewClient(audioInput AudioInput, opts ...ClientOption) (*Client, error) {
	if audioInput == nil {
		return nil, fmt.Errorf("audio input is required")
	}

	client := &Client{
		audioInput: audioInput,
		model:      "nova-3",
	}
	for _, opt := range opts {
		opt(client)
	}

	if client.apiKey == "" {
		apiKey, ok := os.LookupEnv(apiKeyEnv)
		if !ok {
			return nil, fmt.Errorf("deepgram api key not found")
		}
		client.apiKey = apiKey
	}

	return client, nil
}

func (c *Client) IsListening() bool {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	return c.listening
}

// Stop tears down the in-flight cycle without delivering any further
// results. Safe to call when no cycle is running. The device is stopped
// outside connMu; its data callback takes the same lock.
func (c *Client) Stop() error {
	c.connMu.Lock()
	if !c.listening {
		c.connMu.Unlock()
		return nil
	}
	c.listening = false
	cancel := c.cycleStop
	c.cycleStop = nil
	conn := c.conn
	c.conn = nil
	c.connMu.Unlock()

	if cancel != nil {
		cancel()
	}
	if err := c.audioInput.StopCapture(); err != nil {
		logger.Warn("Failed to stop audio capture", "error", err)
	}

	if conn != nil {
		if err := conn.WriteJSON(struct {
			Type string `json:"type"`
		}{Type: "CloseStream"}); err != nil {
			logger.Warn("Failed to close deepgram stream", "error", err)
		}
		if err := conn.Close(); err != nil {
			return fmt.Errorf("failed to close deepgram connection: %w", err)
		}
	}
	return nil
}

func (c *Client) Close(context.Context) error {
	return c.Stop()
}

func (c *Client) sendAudio(chunk []byte) error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.conn == nil {
		return nil
	}
	c.lastMsgTs = time.Now()
	if err := c.conn.WriteMessage(websocket.BinaryMessage, chunk); err != nil {
		return fmt.Errorf("failed to write audio to deepgram: %w", err)
	}
	return nil
}

// silenceFrame builds a chunk of encoded silence spanning the given
// duration, in the input device's wire format.
func (c *Client) silenceFrame(duration time.Duration) []byte {
	encoding := c.audioInput.EncodingInfo()
	frame := make([]byte, encoding.ChunkSize(duration))
	for i := range frame {
		frame[i] = encoding.SilenceValue()
	}
	return frame
}

// keepConnectionAlive feeds short frames of encoded silence while the
// microphone is quiet so Deepgram does not drop the stream mid-cycle.
// Silence does not trip endpointing, so an open utterance is unaffected.
func (c *Client) keepConnectionAlive(ctx context.Context) {
	const interval = 5 * time.Second
	silence := c.silenceFrame(100 * time.Millisecond)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.connMu.Lock()
			quiet := time.Since(c.lastMsgTs) >= interval
			c.connMu.Unlock()
			if quiet {
				if err := c.sendAudio(silence); err != nil {
					logger.Warn("Failed to send keep-alive audio", "error", err)
				}
			}
		}
	}
}
