// Package deepgram implements speech synthesis over the Deepgram speak
// websocket, streaming generated audio into a local playback device. One
// utterance maps to one websocket stream; Speak blocks until the device has
// drained the audio or the utterance is stopped.
package deepgram

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/lingvo-app/lingvo-core/core/audio"
	"github.com/lingvo-app/lingvo-core/core/synthesis"
)

const apiKeyEnv = "DEEPGRAM_API_KEY"

// AudioOutput is the device half consuming generated audio: a speaker client
// such as miniaudio.Client or portaudio.Client.
type AudioOutput interface {
	StartPlayback(ctx context.Context) error
	SendAudio(audio []byte) error
	ClearBuffer()
	AwaitDrained() error
	EncodingInfo() audio.EncodingInfo
}

type Client struct {
	apiKey      string
	audioOutput AudioOutput

	mu      sync.Mutex
	current *utterance
}

type ClientOption func(*Client)

// WithAPIKey overrides the DEEPGRAM_API_KEY environment lookup.
func WithAPIKey(apiKey string) ClientOption {
	return func(c *Client) {
		c.apiKey = apiKey
	}
}

func NewClient(audioOutput AudioOutput, opts ...ClientOption) (*Client, error) {
	if audioOutput == nil {
		return nil, fmt.Errorf("audio output is required")
	}

	client := &Client{audioOutput: audioOutput}
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

// Speak generates and plays one utterance, blocking until playback finishes.
// A Speak while another utterance is running stops the running one first.
func (c *Client) Speak(ctx context.Context, text string, opts ...synthesis.Option) error {
	options := &synthesis.Options{}
	for _, opt := range opts {
		opt(options)
	}

	voice := voiceForLocale(options.Locale)
	if options.Voice != "" {
		voice = deepgramVoice(options.Voice)
	}

	utt, err := c.newUtterance(ctx, voice)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.current != nil {
		c.current.stop()
	}
	c.current = utt
	c.mu.Unlock()

	if err := c.audioOutput.StartPlayback(ctx); err != nil {
		utt.stop()
		return fmt.Errorf("failed to start playback device: %w", err)
	}

	err = utt.speak(ctx, text)

	c.mu.Lock()
	if c.current == utt {
		c.current = nil
	}
	c.mu.Unlock()

	if err != nil {
		return err
	}
	if options.SpeechEndedCallback != nil {
		options.SpeechEndedCallback()
	}
	return nil
}

// Stop discards the running utterance, if any, and clears buffered audio.
func (c *Client) Stop() error {
	c.mu.Lock()
	current := c.current
	c.current = nil
	c.mu.Unlock()

	if current != nil {
		current.stop()
	}
	c.audioOutput.ClearBuffer()
	return nil
}

func (c *Client) IsSpeaking() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current != nil
}

func (c *Client) Close(context.Context) error {
	return c.Stop()
}
