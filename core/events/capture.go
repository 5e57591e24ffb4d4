package events

const (
	// KindCaptureStarted identifies a channel entering listening.
	KindCaptureStarted Kind = "capture.started"
	// KindCaptureCancelled identifies a channel reset that discards in-flight results.
	KindCaptureCancelled Kind = "capture.cancelled"
	// KindTranscriptPartial identifies mutable live-preview transcript updates.
	KindTranscriptPartial Kind = "capture.transcript_partial"
	// KindTranscriptFinal identifies the final transcript for a capture cycle.
	KindTranscriptFinal Kind = "capture.transcript_final"
	// KindChannelStateChanged identifies any channel state transition.
	KindChannelStateChanged Kind = "capture.channel_state_changed"
)

// CaptureStarted marks a channel entering listening.
type CaptureStarted struct {
	Base
	Slot string
}

// NewCaptureStarted creates a capture started event.
func NewCaptureStarted(slot string) CaptureStarted {
	return CaptureStarted{Base: NewBase(KindCaptureStarted), Slot: slot}
}

// CaptureCancelled marks a channel reset to idle with results discarded.
type CaptureCancelled struct {
	Base
	Slot string
}

// NewCaptureCancelled creates a capture cancelled event.
func NewCaptureCancelled(slot string) CaptureCancelled {
	return CaptureCancelled{Base: NewBase(KindCaptureCancelled), Slot: slot}
}

// TranscriptPartial carries a mutable live-preview transcript snapshot.
type TranscriptPartial struct {
	Base
	Slot       string
	Transcript string
}

// NewTranscriptPartial creates a live-preview transcript event.
func NewTranscriptPartial(slot, transcript string) TranscriptPartial {
	return TranscriptPartial{Base: NewBase(KindTranscriptPartial), Slot: slot, Transcript: transcript}
}

// TranscriptFinal carries the terminal transcript for a capture cycle.
type TranscriptFinal struct {
	Base
	Slot       string
	Transcript string
}

// NewTranscriptFinal creates a final transcript event.
func NewTranscriptFinal(slot, transcript string) TranscriptFinal {
	return TranscriptFinal{Base: NewBase(KindTranscriptFinal), Slot: slot, Transcript: transcript}
}

// ChannelStateChanged reports a channel state transition.
type ChannelStateChanged struct {
	Base
	Slot  string
	State string
}

// NewChannelStateChanged creates a channel state transition event.
func NewChannelStateChanged(slot, state string) ChannelStateChanged {
	return ChannelStateChanged{Base: NewBase(KindChannelStateChanged), Slot: slot, State: state}
}
