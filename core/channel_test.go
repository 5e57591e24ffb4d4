package conversation

import (
	"testing"
)

func TestChannelRunsFullCycle(t *testing.T) {
	ch := newCaptureChannel("a")

	cycle, ok := ch.begin("es")
	if !ok {
		t.Fatalf("expected begin to succeed from idle")
	}
	if got := ch.State(); got != StateListening {
		t.Fatalf("expected listening after begin, got %s", got)
	}

	if !ch.partial(cycle, "Ho") {
		t.Fatalf("expected partial to be accepted while listening")
	}
	if !ch.finalize(cycle, "Hola") {
		t.Fatalf("expected finalize to be accepted while listening")
	}
	if got := ch.State(); got != StateProcessing {
		t.Fatalf("expected processing after finalize, got %s", got)
	}

	if !ch.speaking(cycle, "Hello") {
		t.Fatalf("expected speaking to be accepted while processing")
	}
	if !ch.settle(cycle) {
		t.Fatalf("expected settle to be accepted while speaking")
	}
	if got := ch.State(); got != StateIdle {
		t.Fatalf("expected idle after settle, got %s", got)
	}

	snapshot := ch.Snapshot()
	if snapshot.LastTranscript != "Hola" || snapshot.LastTranslation != "Hello" {
		t.Fatalf("expected snapshot to keep cycle results, got %+v", snapshot)
	}
}

func TestChannelBeginRequiresIdle(t *testing.T) {
	ch := newCaptureChannel("a")

	if _, ok := ch.begin("es"); !ok {
		t.Fatalf("expected first begin to succeed")
	}
	if _, ok := ch.begin("en"); ok {
		t.Fatalf("expected begin to fail while listening")
	}
}

func TestChannelCancelInvalidatesCycle(t *testing.T) {
	ch := newCaptureChannel("a")

	cycle, _ := ch.begin("es")
	if !ch.cancel() {
		t.Fatalf("expected cancel to report a discarded cycle")
	}
	if got := ch.State(); got != StateIdle {
		t.Fatalf("expected idle after cancel, got %s", got)
	}

	if ch.finalize(cycle, "late result") {
		t.Fatalf("expected stale finalize to be dropped after cancel")
	}
	if ch.partial(cycle, "late partial") {
		t.Fatalf("expected stale partial to be dropped after cancel")
	}
}

func TestChannelCancelFromIdleIsNoop(t *testing.T) {
	ch := newCaptureChannel("a")

	if ch.cancel() {
		t.Fatalf("expected cancel on idle channel to be a no-op")
	}

	// The cycle is bumped regardless so an old in-flight completion can
	// never land after the no-op cancel.
	cycle, _ := ch.begin("es")
	ch.cancel()
	if ch.finalize(cycle, "stale") {
		t.Fatalf("expected finalize from pre-cancel cycle to be dropped")
	}
}

func TestChannelFailureAndRecovery(t *testing.T) {
	ch := newCaptureChannel("a")

	cycle, _ := ch.begin("es")
	if !ch.fail(cycle, ErrorKindQuotaExceeded) {
		t.Fatalf("expected fail to be accepted while listening")
	}
	if got := ch.State(); got != StateError {
		t.Fatalf("expected error state after fail, got %s", got)
	}
	if got := ch.Snapshot().ErrorKind; got != ErrorKindQuotaExceeded {
		t.Fatalf("expected snapshot to carry the error kind, got %q", got)
	}

	if !ch.recover(cycle) {
		t.Fatalf("expected recover to be accepted from error state")
	}
	if got := ch.State(); got != StateIdle {
		t.Fatalf("expected idle after recovery, got %s", got)
	}
	if got := ch.Snapshot().ErrorKind; got != "" {
		t.Fatalf("expected error kind cleared after recovery, got %q", got)
	}

	if _, ok := ch.begin("es"); !ok {
		t.Fatalf("expected begin to succeed after recovery without explicit reset")
	}
}

func TestChannelRecoverySkippedAfterNewCycle(t *testing.T) {
	ch := newCaptureChannel("a")

	cycle, _ := ch.begin("es")
	ch.fail(cycle, ErrorKindNetworkError)
	ch.cancel()

	if _, ok := ch.begin("en"); !ok {
		t.Fatalf("expected begin after cancel")
	}
	if ch.recover(cycle) {
		t.Fatalf("expected stale recovery to be dropped after a new cycle started")
	}
	if got := ch.State(); got != StateListening {
		t.Fatalf("expected new cycle to keep listening, got %s", got)
	}
}
