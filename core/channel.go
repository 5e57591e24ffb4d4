package conversation

import "sync"

// ChannelState enumerates the capture channel lifecycle. idle and error are
// resting states; listening and processing are the only states reachable
// from idle.
type ChannelState string

const (
	StateIdle       ChannelState = "idle"
	StateListening  ChannelState = "listening"
	StateProcessing ChannelState = "processing"
	StateSpeaking   ChannelState = "speaking"
	StateError      ChannelState = "error"
)

// CaptureChannel is the per-speaker-slot state machine driving the
// listen→transcript lifecycle. The controller owns every channel exclusively
// and mutates it only through the transition methods below, each of which is
// guarded by the cycle identifier of the capture cycle that initiated it, so
// stale asynchronous completions are detected and dropped instead of
// corrupting a newer cycle.
//
// Transition methods only mutate state. The controller emits the
// corresponding lifecycle events after releasing every lock, so user
// callbacks are free to read controller state.
type CaptureChannel struct {
	mu sync.Mutex

	slot         string
	languageCode string
	state        ChannelState
	// cycle identifies the current capture cycle. Every begin and every
	// cancel bumps it, invalidating completions tagged with older values.
	cycle uint64

	lastTranscript  string
	lastTranslation string
	errorKind       ErrorKind
}

// ChannelSnapshot is a point-in-time view of channel state.
type ChannelSnapshot struct {
	Slot            string
	LanguageCode    string
	State           ChannelState
	LastTranscript  string
	LastTranslation string
	// ErrorKind is set only while State is StateError.
	ErrorKind ErrorKind
}

func newCaptureChannel(slot string) *CaptureChannel {
	return &CaptureChannel{slot: slot, state: StateIdle}
}

func (ch *CaptureChannel) Slot() string { return ch.slot }

func (ch *CaptureChannel) State() ChannelState {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.state
}

func (ch *CaptureChannel) Snapshot() ChannelSnapshot {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	snapshot := ChannelSnapshot{
		Slot:            ch.slot,
		LanguageCode:    ch.languageCode,
		State:           ch.state,
		LastTranscript:  ch.lastTranscript,
		LastTranslation: ch.lastTranslation,
	}
	if ch.state == StateError {
		snapshot.ErrorKind = ch.errorKind
	}
	return snapshot
}

// begin starts a new capture cycle: idle → listening. It returns the cycle
// identifier that tags every asynchronous completion of this cycle, or false
// when the channel is not at rest in idle.
func (ch *CaptureChannel) begin(languageCode string) (uint64, bool) {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if ch.state != StateIdle {
		return 0, false
	}

	ch.cycle++
	ch.languageCode = languageCode
	ch.lastTranscript = ""
	ch.lastTranslation = ""
	ch.errorKind = ""
	ch.state = StateListening
	return ch.cycle, true
}

// partial records a live-preview transcript. It does not change state and is
// dropped when the cycle is stale or the channel already left listening.
func (ch *CaptureChannel) partial(cycle uint64, transcript string) bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if cycle != ch.cycle || ch.state != StateListening {
		return false
	}
	ch.lastTranscript = transcript
	return true
}

// finalize moves listening → processing with the final transcript, dropping
// stale completions.
func (ch *CaptureChannel) finalize(cycle uint64, transcript string) bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if cycle != ch.cycle || ch.state != StateListening {
		return false
	}
	ch.lastTranscript = transcript
	ch.state = StateProcessing
	return true
}

// speaking moves processing → speaking with the cycle's translation.
func (ch *CaptureChannel) speaking(cycle uint64, translation string) bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if cycle != ch.cycle || ch.state != StateProcessing {
		return false
	}
	ch.lastTranslation = translation
	ch.state = StateSpeaking
	return true
}

// settle returns the channel to idle once playback has been dispatched. The
// state machine does not await playback completion.
func (ch *CaptureChannel) settle(cycle uint64) bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if cycle != ch.cycle || ch.state != StateSpeaking {
		return false
	}
	ch.state = StateIdle
	return true
}

// fail moves any non-resting state to error carrying the mapped kind.
func (ch *CaptureChannel) fail(cycle uint64, kind ErrorKind) bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if cycle != ch.cycle || ch.state == StateIdle || ch.state == StateError {
		return false
	}
	ch.errorKind = kind
	ch.state = StateError
	return true
}

// recover auto-returns an error-state channel to idle after the display
// window. No explicit reset is needed before the next start.
func (ch *CaptureChannel) recover(cycle uint64) bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if cycle != ch.cycle || ch.state != StateError {
		return false
	}
	ch.errorKind = ""
	ch.state = StateIdle
	return true
}

// cancel discards the in-flight cycle and returns to idle with no error
// surfaced. Calling it on an idle channel is a no-op; the cycle is bumped
// either way so any still-running completion for the old cycle is dropped
// when it eventually resolves.
func (ch *CaptureChannel) cancel() bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	ch.cycle++
	if ch.state == StateIdle {
		return false
	}

	ch.errorKind = ""
	ch.state = StateIdle
	return true
}
