// Package conversation is the orchestration layer of lingvo: it turns raw
// capture events into translated, synchronized conversational state across
// one or more communication channels, enforcing mutual exclusion between
// concurrent capture slots and fanning session events out to every
// participant without a central server.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/lingvo-app/lingvo-core/core/capture"
	"github.com/lingvo-app/lingvo-core/core/events"
	"github.com/lingvo-app/lingvo-core/core/languages"
	"github.com/lingvo-app/lingvo-core/core/sessionbus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultNoSpeechTimeout bounds how long a capture cycle listens without any
// result before resetting with a no-speech notice.
const DefaultNoSpeechTimeout = 8 * time.Second

// Controller coordinates capture channels, the translation and playback
// gateways, and (in session mode) the session bus. It owns every
// CaptureChannel exclusively and is the only writer of the conversation log.
type Controller struct {
	mu           sync.Mutex
	channels     map[string]*CaptureChannel
	channelOrder []string

	capture   *captureGateway
	translate *translateGateway
	playback  *playbackGateway
	bus       sessionbus.Bus

	transcript *transcriptLog
	session    *sessionView
	notices    *noticeBoard

	local     Participant
	sessionID string

	emitEvent    eventEmitter
	startOptions StartOptions
	baseContext  context.Context

	unsubscribe func()
	closeOnce   sync.Once
	closed      atomic.Bool
	done        chan struct{}

	noticeWindow    time.Duration
	noSpeechTimeout time.Duration
}

func NewController(opts ...ControllerOption) *Controller {
	c := &Controller{
		channels:        map[string]*CaptureChannel{},
		capture:         newCaptureGateway(),
		translate:       newTranslateGateway(),
		playback:        newPlaybackGateway(),
		transcript:      newTranscriptLog(),
		session:         newSessionView(),
		emitEvent:       noopEventEmitter,
		baseContext:     context.Background(),
		done:            make(chan struct{}),
		noticeWindow:    DefaultNoticeWindow,
		noSpeechTimeout: DefaultNoSpeechTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.local.ID == "" {
		c.local.ID = uuid.NewString()
	}
	if c.local.PreferredLanguage == "" {
		c.local.PreferredLanguage = "en"
	}
	c.notices = newNoticeBoard(c.noticeWindow)

	return c
}

// Start wires the per-run callbacks and, in session mode, joins the session:
// it subscribes to the bus and announces the local participant. Call Start
// at most once per controller instance, before any capture operation.
func (c *Controller) Start(ctx context.Context, opts ...StartOption) {
	if c.closed.Load() {
		logger.Warn("Controller already closed, skipping Start")
		return
	}

	c.startOptions = StartOptions{}
	for _, opt := range opts {
		opt(&c.startOptions)
	}

	c.baseContext = ctx
	c.emitEvent = newCallbackEventEmitter(c.startOptions)
	c.notices.setEventEmitter(c.emitEvent)
	c.playback.setEventEmitter(c.emitEvent)

	if c.bus != nil {
		c.session.join(c.local)
		c.unsubscribe = c.bus.Subscribe(c.handleSessionEvent)
		c.publish(sessionbus.EventTypeJoin, sessionbus.JoinPayload{
			ID:                c.local.ID,
			DisplayName:       c.local.DisplayName,
			PreferredLanguage: c.local.PreferredLanguage,
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			c.Close()
		case <-c.done:
		}
	}()
}

// Close leaves the session, tears down the capture and bus resources, and
// invalidates any in-flight cycle. Safe to call more than once.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		close(c.done)

		for _, slot := range c.slots() {
			c.CancelCapture(slot)
		}
		c.playback.Stop()
		c.notices.stop()

		if c.bus != nil {
			c.publish(sessionbus.EventTypeLeave, struct{}{})
			if c.unsubscribe != nil {
				c.unsubscribe()
			}
			if err := c.bus.Close(); err != nil {
				c.recordError(fmt.Errorf("failed to close session bus: %w", err))
			}
		}

		if err := c.capture.Close(c.baseContext); err != nil {
			c.recordError(err)
		}
	})
}

// Channel returns a point-in-time snapshot of one capture channel, creating
// the channel on first reference.
func (c *Controller) Channel(slot string) ChannelSnapshot {
	return c.channel(slot).Snapshot()
}

// Messages returns the conversation log in display order.
func (c *Controller) Messages() []Message {
	return c.transcript.Snapshot()
}

// Participants returns the derived session membership view.
func (c *Controller) Participants() []Participant {
	return c.session.snapshot()
}

// Local returns the local participant identity.
func (c *Controller) Local() Participant {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.local
}

// Notice returns the currently visible error notice, or nil.
func (c *Controller) Notice() *Notice {
	return c.notices.Current()
}

// DismissNotice clears the visible notice without waiting for the window.
func (c *Controller) DismissNotice() {
	c.notices.Dismiss()
}

// StartCapture begins a capture cycle on the given slot in the given source
// language. At most one channel per process may listen at any instant: any
// other slot still mid-cycle is cancelled first, with no error surfaced for
// it. Valid only while the slot itself is idle.
func (c *Controller) StartCapture(slot, languageCode string) error {
	if c.closed.Load() {
		return ErrControllerClosed
	}

	if !c.capture.isConfigured() {
		c.notices.Raise(ErrorKindCaptureUnsupported)
		return ErrCaptureUnsupported
	}

	c.mu.Lock()
	channel := c.channelLocked(slot)
	var preempted []string
	for _, other := range c.channelOrder {
		if other == slot {
			continue
		}
		if c.cancelLocked(other) {
			preempted = append(preempted, other)
		}
	}

	cycle, ok := channel.begin(languageCode)
	c.mu.Unlock()

	// Events are emitted with no controller lock held; a callback may read
	// controller state without deadlocking.
	for _, other := range preempted {
		c.emitCancelled(other)
	}
	if !ok {
		return fmt.Errorf("%w: slot %q is %s", ErrChannelBusy, slot, channel.State())
	}

	c.emitChannelState(slot, StateListening)
	c.emitEvent(events.NewCaptureStarted(slot))

	err := c.capture.Start(c.baseContext,
		capture.WithLocale(languages.Locale(languageCode)),
		capture.WithNoSpeechTimeout(c.noSpeechTimeout),
		capture.WithResultCallback(func(transcript string, isFinal bool) {
			if isFinal {
				c.handleFinalTranscript(slot, cycle, transcript)
			} else {
				c.handlePartialTranscript(slot, cycle, transcript)
			}
		}),
		capture.WithErrorCallback(func(captureErr *capture.Error) {
			c.failCycle(slot, cycle, mapCaptureErrorKind(captureErr.Kind()))
		}),
	)
	if err != nil {
		kind := ErrorKindGenericProviderError
		var captureErr *capture.Error
		if errors.As(err, &captureErr) {
			kind = mapCaptureErrorKind(captureErr.Kind())
		}
		c.failCycle(slot, cycle, kind)
		return fmt.Errorf("failed to start capture for slot %q: %w", slot, err)
	}

	return nil
}

// CancelCapture discards the slot's in-flight cycle and returns it to idle
// with no error surfaced. A no-op on an idle slot.
func (c *Controller) CancelCapture(slot string) {
	c.mu.Lock()
	cancelled := c.cancelLocked(slot)
	c.mu.Unlock()

	if cancelled {
		c.emitCancelled(slot)
	}
}

// cancelLocked must be called with c.mu held. It reports whether a cycle was
// actually discarded; the caller emits the cancellation events once c.mu is
// released.
func (c *Controller) cancelLocked(slot string) bool {
	channel, known := c.channels[slot]
	if !known {
		return false
	}

	wasListening := channel.State() == StateListening
	if !channel.cancel() {
		return false
	}
	if wasListening {
		if err := c.capture.Stop(); err != nil {
			c.recordError(fmt.Errorf("failed to stop capture for slot %q: %w", slot, err))
		}
	}
	return true
}

func (c *Controller) emitCancelled(slot string) {
	c.emitChannelState(slot, StateIdle)
	c.emitEvent(events.NewCaptureCancelled(slot))
}

func (c *Controller) emitChannelState(slot string, state ChannelState) {
	c.emitEvent(events.NewChannelStateChanged(slot, string(state)))
}

// SendText runs the typed-message path: translate, append, publish. No
// capture channel is involved and no playback of the sender's own message is
// triggered.
func (c *Controller) SendText(text string) error {
	if c.closed.Load() {
		return ErrControllerClosed
	}

	source := c.Local().PreferredLanguage
	if detected := languages.Detect(text); detected != "" {
		source = detected
	}
	target := c.targetLanguageFor("", source)

	translated, err := c.translate.Translate(c.baseContext, text, source, target)
	if err != nil {
		c.notices.Raise(mapTranslationErrorKind(err))
		return fmt.Errorf("failed to translate typed message: %w", err)
	}

	message := c.appendMessage(Message{
		Text:         text,
		Translation:  translated,
		SenderID:     c.senderID(""),
		LanguageCode: source,
	}, false)
	c.publishMessage(message)
	return nil
}

// SetPreferredLanguage updates the local participant's language and, in
// session mode, announces the change to peers.
func (c *Controller) SetPreferredLanguage(languageCode string) {
	c.mu.Lock()
	if c.local.PreferredLanguage == languageCode {
		c.mu.Unlock()
		return
	}
	c.local.PreferredLanguage = languageCode
	local := c.local
	c.mu.Unlock()

	c.session.setLanguage(local.ID, languageCode)
	if c.bus != nil {
		c.publish(sessionbus.EventTypeUpdateLang, sessionbus.UpdateLangPayload{Language: languageCode})
	}
}

// IsListening reports whether any channel currently holds the microphone.
func (c *Controller) IsListening() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, slot := range c.channelOrder {
		if c.channels[slot].State() == StateListening {
			return true
		}
	}
	return false
}

// IsSpeaking reports whether playback of an utterance is in progress.
func (c *Controller) IsSpeaking() bool {
	return c.playback.IsSpeaking()
}

func (c *Controller) handlePartialTranscript(slot string, cycle uint64, transcript string) {
	if !c.channel(slot).partial(cycle, transcript) {
		return
	}
	c.emitEvent(events.NewTranscriptPartial(slot, transcript))
}

func (c *Controller) handleFinalTranscript(slot string, cycle uint64, transcript string) {
	channel := c.channel(slot)
	if !channel.finalize(cycle, transcript) {
		// Stale completion from a cancelled or superseded cycle.
		return
	}
	c.emitChannelState(slot, StateProcessing)
	c.emitEvent(events.NewTranscriptFinal(slot, transcript))

	snapshot := channel.Snapshot()
	go c.runCycle(slot, cycle, transcript, snapshot.LanguageCode)
}

// runCycle finishes a capture cycle off the capture callback: translation,
// log append, playback dispatch, and session publish. Failures surface as a
// transient notice on the originating channel and nothing is appended,
// played, or published.
func (c *Controller) runCycle(slot string, cycle uint64, transcript, sourceLang string) {
	ctx, span := tracer.Start(c.baseContext, "capture cycle")
	defer span.End()

	targetLang := c.targetLanguageFor(slot, sourceLang)

	translated, err := c.translate.Translate(ctx, transcript, sourceLang, targetLang)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.failCycle(slot, cycle, mapTranslationErrorKind(err))
		return
	}

	channel := c.channel(slot)
	if !channel.speaking(cycle, translated) {
		// The cycle was cancelled while translation was in flight; drop the
		// late result.
		return
	}
	c.emitChannelState(slot, StateSpeaking)

	message := c.appendMessage(Message{
		Text:         transcript,
		Translation:  translated,
		SenderID:     c.senderID(slot),
		LanguageCode: sourceLang,
	}, false)

	c.playback.Speak(ctx, translated, languages.Locale(targetLang))
	if channel.settle(cycle) {
		c.emitChannelState(slot, StateIdle)
	}

	c.publishMessage(message)
}

// failCycle moves the channel to error with the mapped kind, raises the
// notice, and schedules the auto-recovery back to idle. A failure in one
// channel never touches another channel's availability.
func (c *Controller) failCycle(slot string, cycle uint64, kind ErrorKind) {
	channel := c.channel(slot)
	if !channel.fail(cycle, kind) {
		return
	}
	c.emitChannelState(slot, StateError)

	c.notices.Raise(kind)

	if kind.Sticky() {
		// An absent capability cannot recover on its own; leave the channel
		// in error until the next explicit cancel.
		return
	}

	time.AfterFunc(c.noticeWindow, func() {
		if channel.recover(cycle) {
			c.emitChannelState(slot, StateIdle)
		}
	})
}

func (c *Controller) appendMessage(message Message, inbound bool) Message {
	message = c.transcript.Append(message)
	c.emitEvent(events.NewMessageAppended(
		message.ID,
		message.SenderID,
		message.Text,
		message.Translation,
		message.LanguageCode,
		inbound,
		message.Timestamp,
	))
	return message
}

// senderID attributes a message: the participant identity in session mode,
// the speaker slot in co-located mode.
func (c *Controller) senderID(slot string) string {
	if c.bus != nil || slot == "" {
		return c.Local().ID
	}
	return slot
}

// targetLanguageFor picks the language a cycle translates into: the first
// session peer's preferred language when one is known, otherwise the other
// co-located slot's language, otherwise the local participant's own.
func (c *Controller) targetLanguageFor(slot, sourceLang string) string {
	if c.bus != nil {
		if peer, ok := c.session.firstPeer(c.Local().ID); ok && peer.PreferredLanguage != "" {
			return peer.PreferredLanguage
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, other := range c.channelOrder {
		if other == slot {
			continue
		}
		if language := c.channels[other].Snapshot().LanguageCode; language != "" {
			return language
		}
	}

	if c.local.PreferredLanguage != sourceLang {
		return c.local.PreferredLanguage
	}
	return sourceLang
}

func (c *Controller) channel(slot string) *CaptureChannel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.channelLocked(slot)
}

// channelLocked must be called with c.mu held.
func (c *Controller) channelLocked(slot string) *CaptureChannel {
	if channel, known := c.channels[slot]; known {
		return channel
	}

	channel := newCaptureChannel(slot)
	c.channels[slot] = channel
	c.channelOrder = append(c.channelOrder, slot)
	return channel
}

func (c *Controller) slots() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string{}, c.channelOrder...)
}

func (c *Controller) recordError(err error) {
	span := trace.SpanFromContext(c.baseContext)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	logger.Warn("Controller error", "error", err)
}
