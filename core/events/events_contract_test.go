package events

import (
	"testing"
	"time"
)

func TestConstructorsEmitExpectedKinds(t *testing.T) {
	testCases := []struct {
		name     string
		event    Event
		expected Kind
	}{
		{name: "capture started", event: NewCaptureStarted("a"), expected: KindCaptureStarted},
		{name: "capture cancelled", event: NewCaptureCancelled("a"), expected: KindCaptureCancelled},
		{name: "transcript partial", event: NewTranscriptPartial("a", "text"), expected: KindTranscriptPartial},
		{name: "transcript final", event: NewTranscriptFinal("a", "text"), expected: KindTranscriptFinal},
		{name: "channel state changed", event: NewChannelStateChanged("a", "idle"), expected: KindChannelStateChanged},
		{name: "message appended", event: NewMessageAppended("id", "sender", "text", "translation", "es", false, time.Now()), expected: KindMessageAppended},
		{name: "playback started", event: NewPlaybackStarted("text", "en-US"), expected: KindPlaybackStarted},
		{name: "playback ended", event: NewPlaybackEnded("text"), expected: KindPlaybackEnded},
		{name: "notice raised", event: NewNoticeRaised("network_error", "message", false), expected: KindNoticeRaised},
		{name: "notice cleared", event: NewNoticeCleared(), expected: KindNoticeCleared},
		{name: "peer joined", event: NewPeerJoined("id", "name", "es"), expected: KindPeerJoined},
		{name: "peer left", event: NewPeerLeft("id"), expected: KindPeerLeft},
		{name: "peer language changed", event: NewPeerLanguageChanged("id", "fr"), expected: KindPeerLanguageChanged},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := testCase.event.Kind(); got != testCase.expected {
				t.Fatalf("expected kind %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestTranscriptPartialAndFinalKindsAreDistinct(t *testing.T) {
	partial := NewTranscriptPartial("a", "text")
	final := NewTranscriptFinal("a", "text")

	if partial.Kind() == final.Kind() {
		t.Fatalf("expected partial and final transcript kinds to differ, both were %q", partial.Kind())
	}
}

func TestMessageAppendedCarriesSenderTimestamp(t *testing.T) {
	sentAt := time.Now().Add(-time.Hour)
	event := NewMessageAppended("id", "sender", "text", "translation", "es", true, sentAt)

	if !event.SentAt.Equal(sentAt) {
		t.Fatalf("expected SentAt %v, got %v", sentAt, event.SentAt)
	}
	if event.Timestamp().Equal(sentAt) {
		t.Fatalf("expected the emission timestamp to be stamped at creation, not copied from SentAt")
	}
}
