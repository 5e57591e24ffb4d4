package main

import (
	"context"
	"testing"
	"time"

	"github.com/lingvo-app/lingvo-core/core/sessionbus"
)

type stubResponder struct {
	reply string
}

func (s stubResponder) SimulatePeerResponse(context.Context, string, string) (string, error) {
	return s.reply, nil
}

func awaitEvent(t *testing.T, events chan sessionbus.Event, eventType sessionbus.EventType) sessionbus.Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case event := <-events:
			if event.Type == eventType {
				return event
			}
		case <-deadline:
			t.Fatalf("timed out waiting for a %s event", eventType)
		}
	}
}

func TestDemoPeerAnnouncesAndReplies(t *testing.T) {
	bus := sessionbus.NewMemoryBus()
	observer := bus.Open()
	events := make(chan sessionbus.Event, 8)
	observer.Subscribe(func(event sessionbus.Event) { events <- event })

	startDemoPeer(context.Background(), bus.Open(), stubResponder{reply: "¡Hola!"}, "demo", "es")

	join := awaitEvent(t, events, sessionbus.EventTypeJoin)
	var joinPayload sessionbus.JoinPayload
	if err := join.DecodePayload(&joinPayload); err != nil {
		t.Fatalf("failed to decode join payload: %v", err)
	}
	if joinPayload.PreferredLanguage != "es" {
		t.Fatalf("expected the peer to announce language es, got %q", joinPayload.PreferredLanguage)
	}

	message, err := sessionbus.NewEvent(sessionbus.EventTypeMessage, "demo", "user", sessionbus.MessagePayload{
		ID:           "m1",
		Text:         "Hello",
		SenderID:     "user",
		LanguageCode: "en",
	})
	if err != nil {
		t.Fatalf("failed to build message event: %v", err)
	}
	observer.Publish(message)

	reply := awaitEvent(t, events, sessionbus.EventTypeMessage)
	var payload sessionbus.MessagePayload
	if err := reply.DecodePayload(&payload); err != nil {
		t.Fatalf("failed to decode reply payload: %v", err)
	}
	if payload.Text != "¡Hola!" || payload.LanguageCode != "es" {
		t.Fatalf("expected a reply in the peer's language, got %+v", payload)
	}
	if payload.Translation != "" {
		t.Fatalf("expected the reply untranslated, got %q", payload.Translation)
	}
	if payload.SenderID == "user" || payload.SenderID == "" {
		t.Fatalf("expected the reply attributed to the peer, got %q", payload.SenderID)
	}
}

func TestDemoPeerReannouncesToLateJoiners(t *testing.T) {
	bus := sessionbus.NewMemoryBus()
	startDemoPeer(context.Background(), bus.Open(), stubResponder{reply: "ok"}, "demo", "es")

	// Opened after the peer's initial announcement went out.
	observer := bus.Open()
	events := make(chan sessionbus.Event, 8)
	observer.Subscribe(func(event sessionbus.Event) { events <- event })

	join, err := sessionbus.NewEvent(sessionbus.EventTypeJoin, "demo", "user", sessionbus.JoinPayload{ID: "user"})
	if err != nil {
		t.Fatalf("failed to build join event: %v", err)
	}
	observer.Publish(join)

	awaitEvent(t, events, sessionbus.EventTypeJoin)
}

func TestDemoPeerIgnoresOtherSessions(t *testing.T) {
	bus := sessionbus.NewMemoryBus()
	observer := bus.Open()
	events := make(chan sessionbus.Event, 8)
	observer.Subscribe(func(event sessionbus.Event) { events <- event })

	startDemoPeer(context.Background(), bus.Open(), stubResponder{reply: "ok"}, "demo", "es")
	awaitEvent(t, events, sessionbus.EventTypeJoin)

	message, err := sessionbus.NewEvent(sessionbus.EventTypeMessage, "other", "user", sessionbus.MessagePayload{
		ID:   "m1",
		Text: "Hello",
	})
	if err != nil {
		t.Fatalf("failed to build message event: %v", err)
	}
	observer.Publish(message)

	select {
	case event := <-events:
		t.Fatalf("expected no reply across sessions, got a %s event", event.Type)
	case <-time.After(100 * time.Millisecond):
	}
}
