package conversation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lingvo-app/lingvo-core/core/events"
	"github.com/lingvo-app/lingvo-core/core/synthesis"
)

type blockingSynthesizer struct {
	mu       sync.Mutex
	speaking bool
	spoken   []string
	stops    int
	release  chan struct{}
}

func newBlockingSynthesizer() *blockingSynthesizer {
	return &blockingSynthesizer{release: make(chan struct{}, 8)}
}

func (s *blockingSynthesizer) Speak(ctx context.Context, text string, _ ...synthesis.Option) error {
	s.mu.Lock()
	s.speaking = true
	s.spoken = append(s.spoken, text)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.speaking = false
		s.mu.Unlock()
	}()

	select {
	case <-s.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *blockingSynthesizer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stops++
	return nil
}

func (s *blockingSynthesizer) IsSpeaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speaking
}

func collectPlaybackEvents(gateway *playbackGateway) chan events.Event {
	collected := make(chan events.Event, 16)
	gateway.setEventEmitter(func(event events.Event) {
		collected <- event
	})
	return collected
}

func TestPlaybackWithoutClientCompletesImmediately(t *testing.T) {
	gateway := newPlaybackGateway()
	collected := collectPlaybackEvents(gateway)

	gateway.Speak(context.Background(), "hello", "en-US")

	expectEventKind(t, collected, events.KindPlaybackStarted)
	expectEventKind(t, collected, events.KindPlaybackEnded)
}

func TestPlaybackReportsCompletion(t *testing.T) {
	client := newBlockingSynthesizer()
	gateway := newPlaybackGateway()
	gateway.set(client)
	collected := collectPlaybackEvents(gateway)

	gateway.Speak(context.Background(), "hello", "en-US")
	expectEventKind(t, collected, events.KindPlaybackStarted)

	client.release <- struct{}{}
	expectEventKind(t, collected, events.KindPlaybackEnded)
}

func TestPlaybackPreemptionDropsStaleCompletion(t *testing.T) {
	client := newBlockingSynthesizer()
	gateway := newPlaybackGateway()
	gateway.set(client)
	collected := collectPlaybackEvents(gateway)

	gateway.Speak(context.Background(), "first", "en-US")
	expectEventKind(t, collected, events.KindPlaybackStarted)

	gateway.Speak(context.Background(), "second", "en-US")
	expectEventKind(t, collected, events.KindPlaybackStarted)

	// Resolve the preempted utterance first; its completion must be dropped.
	client.release <- struct{}{}
	client.release <- struct{}{}

	event := expectEventKind(t, collected, events.KindPlaybackEnded)
	ended, ok := event.(events.PlaybackEnded)
	if !ok {
		t.Fatalf("expected a playback-ended event, got %T", event)
	}
	if ended.Text != "second" {
		t.Fatalf("expected only the live utterance to complete, got %q", ended.Text)
	}

	select {
	case extra := <-collected:
		t.Fatalf("expected no further events, got %s", extra.Kind())
	case <-time.After(100 * time.Millisecond):
	}
}

func TestPlaybackStopInvalidatesCompletion(t *testing.T) {
	client := newBlockingSynthesizer()
	gateway := newPlaybackGateway()
	gateway.set(client)
	collected := collectPlaybackEvents(gateway)

	gateway.Speak(context.Background(), "hello", "en-US")
	expectEventKind(t, collected, events.KindPlaybackStarted)

	gateway.Stop()
	if client.stops == 0 {
		t.Fatalf("expected Stop forwarded to the synthesizer")
	}

	client.release <- struct{}{}
	select {
	case event := <-collected:
		t.Fatalf("expected the stopped utterance's completion dropped, got %s", event.Kind())
	case <-time.After(100 * time.Millisecond):
	}
}

func expectEventKind(t *testing.T, collected <-chan events.Event, want events.Kind) events.Event {
	t.Helper()
	select {
	case event := <-collected:
		if event.Kind() != want {
			t.Fatalf("expected event %s, got %s", want, event.Kind())
		}
		return event
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for event %s", want)
		return nil
	}
}
