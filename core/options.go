package conversation

import (
	"context"
	"time"

	"github.com/lingvo-app/lingvo-core/core/capture"
	"github.com/lingvo-app/lingvo-core/core/sessionbus"
	"github.com/lingvo-app/lingvo-core/core/synthesis"
)

type ControllerOption func(*Controller)

// Capture is the abstract speech capture capability. Start opens one capture
// cycle; the result callback may fire any number of times with isFinal=false
// before exactly one isFinal=true call, or none at all if the cycle is
// cancelled through Stop.
type Capture interface {
	Start(ctx context.Context, opts ...capture.Option) error
	Stop() error
	IsListening() bool
}

func WithCaptureClient(client Capture) ControllerOption {
	return func(c *Controller) {
		c.capture.set(client)
	}
}

// Synthesizer is the abstract speech synthesis capability. Speak blocks
// until the utterance finishes or the context is cancelled; Stop cancels the
// in-progress utterance without error.
type Synthesizer interface {
	Speak(ctx context.Context, text string, opts ...synthesis.Option) error
	Stop() error
	IsSpeaking() bool
}

func WithSynthesizerClient(client Synthesizer) ControllerOption {
	return func(c *Controller) {
		c.playback.set(client)
	}
}

// Translator is the abstract translation provider boundary. Failures carry a
// *translation.ProviderError so callers classify without inspecting text.
// Results are not guaranteed byte-identical across calls; callers must not
// assume caching.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

func WithTranslator(client Translator) ControllerOption {
	return func(c *Controller) {
		c.translate.set(client)
	}
}

// WithSessionBus puts the controller in session mode: completed cycles are
// published as MESSAGE events and inbound events from peers feed the local
// conversation view. The controller assumes ownership of the bus and closes
// it on Close.
func WithSessionBus(bus sessionbus.Bus) ControllerOption {
	return func(c *Controller) {
		c.bus = bus
	}
}

// WithSessionID selects which session's events this controller emits and
// reacts to; everything else on the shared topic is ignored.
func WithSessionID(sessionID string) ControllerOption {
	return func(c *Controller) {
		c.sessionID = sessionID
	}
}

// WithParticipant sets the local identity announced on join.
func WithParticipant(participant Participant) ControllerOption {
	return func(c *Controller) {
		c.local = participant
	}
}

// WithTranslateTimeout bounds every translation call. A provider that never
// resolves would otherwise leave a cycle in processing forever.
func WithTranslateTimeout(timeout time.Duration) ControllerOption {
	return func(c *Controller) {
		c.translate.timeout = timeout
	}
}

// WithNoticeWindow overrides the display window after which transient error
// notices self-clear and error-state channels recover to idle.
func WithNoticeWindow(window time.Duration) ControllerOption {
	return func(c *Controller) {
		c.noticeWindow = window
	}
}

// WithNoSpeechTimeout bounds how long a capture cycle may listen without any
// result before it fails with a no-speech error.
func WithNoSpeechTimeout(timeout time.Duration) ControllerOption {
	return func(c *Controller) {
		c.noSpeechTimeout = timeout
	}
}

// StartOptions carries the per-run callbacks the embedding surface (a UI,
// usually) registers when starting the controller.
type StartOptions struct {
	onPartialTranscript func(slot, transcript string)
	onTranscript        func(slot, transcript string)
	onChannelState      func(slot string, state ChannelState)
	onMessage           func(message Message)
	onNotice            func(notice Notice)
	onNoticeCleared     func()
	onPlaybackEnded     func(text string)
	onPeerJoined        func(participant Participant)
	onPeerLeft          func(id string)
	onPeerLanguage      func(id, language string)
}

type StartOption func(*StartOptions)

func WithPartialTranscriptCallback(callback func(slot, transcript string)) StartOption {
	return func(o *StartOptions) {
		o.onPartialTranscript = callback
	}
}

func WithTranscriptCallback(callback func(slot, transcript string)) StartOption {
	return func(o *StartOptions) {
		o.onTranscript = callback
	}
}

func WithChannelStateCallback(callback func(slot string, state ChannelState)) StartOption {
	return func(o *StartOptions) {
		o.onChannelState = callback
	}
}

func WithMessageCallback(callback func(message Message)) StartOption {
	return func(o *StartOptions) {
		o.onMessage = callback
	}
}

func WithNoticeCallback(callback func(notice Notice)) StartOption {
	return func(o *StartOptions) {
		o.onNotice = callback
	}
}

func WithNoticeClearedCallback(callback func()) StartOption {
	return func(o *StartOptions) {
		o.onNoticeCleared = callback
	}
}

func WithPlaybackEndedCallback(callback func(text string)) StartOption {
	return func(o *StartOptions) {
		o.onPlaybackEnded = callback
	}
}

func WithPeerJoinedCallback(callback func(participant Participant)) StartOption {
	return func(o *StartOptions) {
		o.onPeerJoined = callback
	}
}

func WithPeerLeftCallback(callback func(id string)) StartOption {
	return func(o *StartOptions) {
		o.onPeerLeft = callback
	}
}

func WithPeerLanguageCallback(callback func(id, language string)) StartOption {
	return func(o *StartOptions) {
		o.onPeerLanguage = callback
	}
}
