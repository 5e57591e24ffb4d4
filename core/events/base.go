package events

import "time"

// Kind identifies an event type, namespaced by surface ("capture.",
// "playback.", "peer.", ...).
type Kind string

// Event is implemented by every conversation event. Consumers switch on the
// concrete type for payload access and on Kind for filtering.
type Event interface {
	Kind() Kind
	Timestamp() time.Time
}

// Base carries the identity common to all events. Embed it and construct it
// through NewBase so the timestamp is always stamped.
type Base struct {
	kind      Kind
	timestamp time.Time
}

func NewBase(kind Kind) Base {
	return Base{kind: kind, timestamp: time.Now()}
}

func (b Base) Kind() Kind {
	return b.kind
}

func (b Base) Timestamp() time.Time {
	return b.timestamp
}
