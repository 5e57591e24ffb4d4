package conversation

import (
	"testing"
	"time"

	"github.com/lingvo-app/lingvo-core/core/events"
)

func TestNoticeAutoClearsAfterWindow(t *testing.T) {
	board := newNoticeBoard(30 * time.Millisecond)
	collected := make(chan events.Event, 4)
	board.setEventEmitter(func(event events.Event) { collected <- event })

	board.Raise(ErrorKindNetworkError)
	expectEventKind(t, collected, events.KindNoticeRaised)

	if board.Current() == nil {
		t.Fatalf("expected the notice visible inside the window")
	}

	expectEventKind(t, collected, events.KindNoticeCleared)
	if board.Current() != nil {
		t.Fatalf("expected the notice cleared after the window")
	}
}

func TestStickyNoticeStaysUntilDismissed(t *testing.T) {
	board := newNoticeBoard(20 * time.Millisecond)

	board.Raise(ErrorKindCaptureUnsupported)
	time.Sleep(60 * time.Millisecond)

	notice := board.Current()
	if notice == nil {
		t.Fatalf("expected the sticky notice to outlive the window")
	}
	if !notice.Sticky {
		t.Fatalf("expected the capture-unsupported notice to be sticky")
	}

	board.Dismiss()
	if board.Current() != nil {
		t.Fatalf("expected the notice gone after an explicit dismissal")
	}
}

func TestRaiseReplacesNoticeAndRestartsWindow(t *testing.T) {
	board := newNoticeBoard(60 * time.Millisecond)

	board.Raise(ErrorKindNetworkError)
	time.Sleep(40 * time.Millisecond)
	board.Raise(ErrorKindQuotaExceeded)
	time.Sleep(40 * time.Millisecond)

	// The first window has elapsed; only the replacement's window counts.
	notice := board.Current()
	if notice == nil {
		t.Fatalf("expected the replacement notice still visible")
	}
	if notice.Kind != ErrorKindQuotaExceeded {
		t.Fatalf("expected the replacement notice, got %q", notice.Kind)
	}

	time.Sleep(60 * time.Millisecond)
	if board.Current() != nil {
		t.Fatalf("expected the replacement cleared after its own window")
	}
}

func TestDismissWithoutNoticeIsNoop(t *testing.T) {
	board := newNoticeBoard(0)
	collected := make(chan events.Event, 1)
	board.setEventEmitter(func(event events.Event) { collected <- event })

	board.Dismiss()

	select {
	case event := <-collected:
		t.Fatalf("expected no event for an empty dismissal, got %s", event.Kind())
	default:
	}
}
