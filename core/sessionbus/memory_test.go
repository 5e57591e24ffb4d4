package sessionbus

import "testing"

func TestMemoryBusDoesNotEchoToPublisher(t *testing.T) {
	bus := NewMemoryBus()
	alice := bus.Open()
	bob := bus.Open()
	defer alice.Close()
	defer bob.Close()

	var aliceGot, bobGot []Event
	alice.Subscribe(func(event Event) { aliceGot = append(aliceGot, event) })
	bob.Subscribe(func(event Event) { bobGot = append(bobGot, event) })

	event, err := NewEvent(EventTypeMessage, "s1", "alice", MessagePayload{ID: "m1", Text: "hola"})
	if err != nil {
		t.Fatalf("expected event to encode, got %v", err)
	}
	alice.Publish(event)

	if len(aliceGot) != 0 {
		t.Fatalf("expected no echo to the publisher, got %d events", len(aliceGot))
	}
	if len(bobGot) != 1 {
		t.Fatalf("expected one event delivered to the peer, got %d", len(bobGot))
	}

	var payload MessagePayload
	if err := bobGot[0].DecodePayload(&payload); err != nil {
		t.Fatalf("expected the payload to decode, got %v", err)
	}
	if payload.ID != "m1" || payload.Text != "hola" {
		t.Fatalf("expected the payload preserved, got %+v", payload)
	}
}

func TestMemoryBusDeliversInPublicationOrder(t *testing.T) {
	bus := NewMemoryBus()
	alice := bus.Open()
	bob := bus.Open()
	defer alice.Close()
	defer bob.Close()

	var got []string
	bob.Subscribe(func(event Event) { got = append(got, event.SenderID) })

	for _, sender := range []string{"one", "two", "three"} {
		event, _ := NewEvent(EventTypeJoin, "s1", sender, JoinPayload{ID: sender})
		alice.Publish(event)
	}

	if len(got) != 3 {
		t.Fatalf("expected three deliveries, got %d", len(got))
	}
	for i, want := range []string{"one", "two", "three"} {
		if got[i] != want {
			t.Fatalf("expected %q at position %d, got %q", want, i, got[i])
		}
	}
}

func TestMemoryChannelUnsubscribe(t *testing.T) {
	bus := NewMemoryBus()
	alice := bus.Open()
	bob := bus.Open()
	defer alice.Close()
	defer bob.Close()

	delivered := 0
	unsubscribe := bob.Subscribe(func(Event) { delivered++ })

	event, _ := NewEvent(EventTypeJoin, "s1", "alice", JoinPayload{ID: "alice"})
	alice.Publish(event)
	unsubscribe()
	alice.Publish(event)

	if delivered != 1 {
		t.Fatalf("expected delivery to stop after unsubscribe, got %d", delivered)
	}
}

func TestMemoryChannelCloseDetaches(t *testing.T) {
	bus := NewMemoryBus()
	alice := bus.Open()
	bob := bus.Open()
	defer alice.Close()

	delivered := 0
	bob.Subscribe(func(Event) { delivered++ })
	if err := bob.Close(); err != nil {
		t.Fatalf("expected close to succeed, got %v", err)
	}

	event, _ := NewEvent(EventTypeJoin, "s1", "alice", JoinPayload{ID: "alice"})
	alice.Publish(event)
	bob.Publish(event)

	if delivered != 0 {
		t.Fatalf("expected no delivery to a closed channel, got %d", delivered)
	}
	if err := bob.Close(); err != nil {
		t.Fatalf("expected a repeated close to be a no-op, got %v", err)
	}
}
