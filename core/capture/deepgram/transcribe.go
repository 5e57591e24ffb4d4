package deepgram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	api "github.com/deepgram/deepgram-go-sdk/pkg/api/listen/v1/websocket/interfaces"
	"github.com/gorilla/websocket"
	"github.com/lingvo-app/lingvo-core/core/capture"
)

// Start opens the live transcription stream and begins feeding it microphone
// audio. Results and failures are delivered through the option callbacks;
// the cycle ends at the first finalized utterance, on a no-speech timeout,
// or on Stop.
func (c *Client) Start(ctx context.Context, opts ...capture.Option) error {
	options := &capture.Options{Locale: "en-US"}
	for _, opt := range opts {
		opt(options)
	}

	encoding, err := convertEncoding(c.audioInput.EncodingInfo())
	if err != nil {
		return capture.NewError(capture.KindInternal, err)
	}

	c.connMu.Lock()
	if c.listening {
		c.connMu.Unlock()
		return capture.NewError(capture.KindInternal, fmt.Errorf("capture already running"))
	}

	conn, err := c.connectWebsocket(connectionOptions{
		sampleRate: encoding.SampleRate,
		encoding:   encoding.Format,
		language:   options.Locale,
	})
	if err != nil {
		c.connMu.Unlock()
		return capture.NewError(capture.KindNetwork, err)
	}

	cycleCtx, cancel := context.WithCancel(ctx)
	c.conn = conn
	c.cycleStop = cancel
	c.listening = true
	c.lastMsgTs = time.Now()
	c.accumulatedTranscript = ""
	c.unendedSegment = false
	c.connMu.Unlock()

	if err := c.audioInput.StartCapture(cycleCtx, func(chunk []byte) {
		if err := c.sendAudio(chunk); err != nil {
			logger.Warn("Failed to forward audio chunk", "error", err)
		}
	}); err != nil {
		_ = c.Stop()
		return capture.NewError(capture.KindDeviceUnavailable, err)
	}

	go c.keepConnectionAlive(cycleCtx)
	go c.readAndProcessMessages(cycleCtx, conn, *options)
	if options.NoSpeechTimeout > 0 {
		go c.watchForNoSpeech(cycleCtx, *options)
	}

	return nil
}

type connectionOptions struct {
	sampleRate int
	encoding   string
	language   string
}

func (c *Client) connectWebsocket(options connectionOptions) (*websocket.Conn, error) {
	listenUrl, _ := url.Parse("wss://api.deepgram.com/v1/listen")
	queryParams := listenUrl.Query()
	queryParams.Set("encoding", options.encoding)
	queryParams.Set("sample_rate", strconv.Itoa(options.sampleRate))
	queryParams.Set("channels", "1")
	queryParams.Set("model", c.model)
	queryParams.Set("language", options.language)
	queryParams.Set("smart_format", "true")
	queryParams.Set("interim_results", "true")
	queryParams.Set("utterance_end_ms", "1000")
	queryParams.Set("endpointing", "300")
	queryParams.Set("vad_events", "true")
	listenUrl.RawQuery = queryParams.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(listenUrl.String(),
		http.Header{"Authorization": {"Token " + c.apiKey}})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to deepgram: %w", err)
	}

	return conn, nil
}

// watchForNoSpeech fails the cycle when nothing has been transcribed within
// the timeout. Any speech activity on the stream disarms it.
func (c *Client) watchForNoSpeech(ctx context.Context, options capture.Options) {
	timer := time.NewTimer(options.NoSpeechTimeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
		c.connMu.Lock()
		spoke := c.unendedSegment || c.accumulatedTranscript != ""
		c.connMu.Unlock()
		if spoke {
			return
		}

		_ = c.Stop()
		if options.ErrorCallback != nil {
			options.ErrorCallback(capture.NewError(capture.KindNoSpeech, nil))
		}
	}
}

func (c *Client) readAndProcessMessages(ctx context.Context, conn *websocket.Conn, options capture.Options) {
	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				logger.Warn("Failed to read deepgram websocket message", "error", err)
				_ = c.Stop()
				if options.ErrorCallback != nil {
					options.ErrorCallback(capture.NewError(capture.KindNetwork, err))
				}
			}
			return
		}
		if msgType != websocket.BinaryMessage {
			c.processMessage(msg, options)
		}
	}
}

func (c *Client) processMessage(msg []byte, options capture.Options) {
	var parsedMsg struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(msg, &parsedMsg); err != nil {
		logger.Warn("Failed to unmarshal deepgram message", "error", err)
		return
	}

	switch api.TypeResponse(parsedMsg.Type) {
	case api.TypeMessageResponse:
		var msgResp api.MessageResponse
		if err := json.Unmarshal(msg, &msgResp); err != nil {
			logger.Warn("Failed to unmarshal deepgram message", "error", err)
			return
		}
		c.processTranscript(msgResp, options)

	case api.TypeUtteranceEndResponse:
		c.connMu.Lock()
		unended := c.unendedSegment
		c.connMu.Unlock()
		if unended {
			c.finishUtterance(options)
		}

	case api.TypeSpeechStartedResponse:
		c.connMu.Lock()
		c.unendedSegment = true
		c.connMu.Unlock()
	}
}

func (c *Client) processTranscript(msgResp api.MessageResponse, options capture.Options) {
	if len(msgResp.Channel.Alternatives) == 0 {
		return
	}
	transcript := strings.TrimSpace(msgResp.Channel.Alternatives[0].Transcript)
	if transcript == "" {
		return
	}

	if !msgResp.IsFinal {
		if options.ResultCallback != nil {
			c.connMu.Lock()
			preview := strings.TrimSpace(c.accumulatedTranscript + " " + transcript)
			c.connMu.Unlock()
			options.ResultCallback(preview, false)
		}
		return
	}

	c.connMu.Lock()
	c.accumulatedTranscript = strings.TrimSpace(c.accumulatedTranscript + " " + transcript)
	c.connMu.Unlock()

	if msgResp.SpeechFinal {
		c.finishUtterance(options)
	}
}

// finishUtterance delivers the finalized transcript and ends the cycle.
func (c *Client) finishUtterance(options capture.Options) {
	c.connMu.Lock()
	fullTranscript := strings.TrimSpace(c.accumulatedTranscript)
	c.accumulatedTranscript = ""
	c.unendedSegment = false
	c.connMu.Unlock()

	if fullTranscript == "" {
		return
	}

	_ = c.Stop()
	if options.ResultCallback != nil {
		options.ResultCallback(fullTranscript, true)
	}
}
