package deepgram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
)

// utterance is one speak websocket stream. Audio frames go straight to the
// playback device; the Flushed confirmation marks the end of generation.
type utterance struct {
	ws      *websocket.Conn
	writeMu sync.Mutex

	audioOutput AudioOutput

	generated chan struct{}
	stopOnce  sync.Once
	stopped   bool
	readErr   error
}

type websocketMessage struct {
	Type string `json:"type"`
}

var (
	flushMsg = websocketMessage{Type: "Flush"}
	clearMsg = websocketMessage{Type: "Clear"}
	closeMsg = websocketMessage{Type: "Close"}
)

func (c *Client) newUtterance(_ context.Context, voice deepgramVoice) (*utterance, error) {
	encoding := c.audioOutput.EncodingInfo()

	urlValues := url.Values{}
	urlValues.Set("encoding", encoding.Format.Name())
	urlValues.Set("sample_rate", strconv.Itoa(encoding.SampleRate))
	urlValues.Set("model", string(voice))
	urlValues.Set("container", "none")

	conn, _, err := websocket.DefaultDialer.Dial(
		(&url.URL{
			Scheme: "wss",
			Host:   "api.deepgram.com", Path: "/v1/speak",
			RawQuery: urlValues.Encode(),
		}).String(),
		http.Header{"Authorization": {"token " + c.apiKey}})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to deepgram: %w", err)
	}

	return &utterance{
		ws:          conn,
		audioOutput: c.audioOutput,
		generated:   make(chan struct{}),
	}, nil
}

// speak sends the text and blocks until the device drains the generated
// audio, the context expires, or stop is called.
func (u *utterance) speak(ctx context.Context, text string) error {
	go u.processIncomingMessages()

	if err := u.sendWebsocketMessage(struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}{Type: "Speak", Text: text}); err != nil {
		u.stop()
		return fmt.Errorf("failed to send text to deepgram: %w", err)
	}
	if err := u.sendWebsocketMessage(flushMsg); err != nil {
		u.stop()
		return fmt.Errorf("failed to flush deepgram buffer: %w", err)
	}

	select {
	case <-ctx.Done():
		u.stop()
		return ctx.Err()
	case <-u.generated:
	}

	u.writeMu.Lock()
	stopped, readErr := u.stopped, u.readErr
	u.writeMu.Unlock()
	if stopped {
		return nil
	}
	if readErr != nil {
		return readErr
	}

	if err := u.audioOutput.AwaitDrained(); err != nil {
		return fmt.Errorf("failed to drain playback device: %w", err)
	}
	return nil
}

// stop discards the utterance mid-generation.
func (u *utterance) stop() {
	u.stopOnce.Do(func() {
		u.writeMu.Lock()
		u.stopped = true
		if err := u.ws.WriteJSON(clearMsg); err != nil {
			logger.Warn("Failed to clear deepgram buffer", "error", err)
		}
		if err := u.ws.WriteJSON(closeMsg); err != nil {
			_ = u.ws.Close()
		}
		u.writeMu.Unlock()
	})
}

func (u *utterance) processIncomingMessages() {
	defer close(u.generated)

	for {
		msgType, msg, err := u.ws.ReadMessage()
		if err != nil {
			u.writeMu.Lock()
			if !u.stopped && !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				u.readErr = fmt.Errorf("websocket read error: %w", err)
			}
			u.writeMu.Unlock()
			_ = u.ws.Close()
			return
		}

		switch msgType {
		case websocket.BinaryMessage:
			if len(msg) == 0 {
				continue
			}
			if err := u.audioOutput.SendAudio(msg); err != nil {
				logger.Warn("Failed to queue generated audio", "error", err)
			}
		case websocket.TextMessage:
			var parsedMsg websocketMessage
			if err := json.Unmarshal(msg, &parsedMsg); err != nil {
				logger.Warn("Failed to unmarshal deepgram message", "error", err)
				continue
			}

			if parsedMsg.Type == "Flushed" {
				// All audio for the utterance has been received.
				u.writeMu.Lock()
				if err := u.ws.WriteJSON(closeMsg); err != nil {
					_ = u.ws.Close()
				}
				u.writeMu.Unlock()
				return
			}
		}
	}
}

func (u *utterance) sendWebsocketMessage(msg any) error {
	u.writeMu.Lock()
	defer u.writeMu.Unlock()

	if u.stopped {
		return fmt.Errorf("utterance stopped")
	}
	if err := u.ws.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to write to websocket: %w", err)
	}
	return nil
}
