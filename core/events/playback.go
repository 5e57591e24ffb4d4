package events

const (
	// KindPlaybackStarted identifies an utterance being dispatched to synthesis.
	KindPlaybackStarted Kind = "playback.started"
	// KindPlaybackEnded identifies an utterance finishing without preemption.
	KindPlaybackEnded Kind = "playback.ended"
)

// PlaybackStarted marks synthesis of an utterance being dispatched.
type PlaybackStarted struct {
	Base
	Text   string
	Locale string
}

// NewPlaybackStarted creates a playback started event.
func NewPlaybackStarted(text, locale string) PlaybackStarted {
	return PlaybackStarted{Base: NewBase(KindPlaybackStarted), Text: text, Locale: locale}
}

// PlaybackEnded marks an utterance that finished playing. Preempted
// utterances never produce this event.
type PlaybackEnded struct {
	Base
	Text string
}

// NewPlaybackEnded creates a playback ended event.
func NewPlaybackEnded(text string) PlaybackEnded {
	return PlaybackEnded{Base: NewBase(KindPlaybackEnded), Text: text}
}
