// Package sessionbus fans session events out across participants without a
// central authority. Delivery is best-effort: at-most-once, no
// acknowledgments, ordered per-sender only. Subscribers that are not running
// when an event is published never see it; this is deliberate for ephemeral
// conversational state, not a durable log.
package sessionbus

import (
	"encoding/json"
	"fmt"
	"time"
)

// Topic is the single well-known channel name shared by every participant of
// an application instance. Filtering by SessionID is the subscriber's
// responsibility.
const Topic = "lingvo.session"

type EventType string

const (
	EventTypeJoin       EventType = "JOIN"
	EventTypeMessage    EventType = "MESSAGE"
	EventTypeLeave      EventType = "LEAVE"
	EventTypeUpdateLang EventType = "UPDATE_LANG"
)

// Event is the atomic unit of cross-participant synchronization. It is
// immutable after creation and JSON-serializable as
// {type, sessionId, senderId, payload, timestamp(epoch-ms)}.
type Event struct {
	Type      EventType       `json:"type"`
	SessionID string          `json:"sessionId"`
	SenderID  string          `json:"senderId"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

// NewEvent stamps and serializes a payload into a wire event.
func NewEvent(eventType EventType, sessionID, senderID string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to encode %s payload: %w", eventType, err)
	}

	return Event{
		Type:      eventType,
		SessionID: sessionID,
		SenderID:  senderID,
		Payload:   raw,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// DecodePayload unpacks the event payload into the given wire struct.
func (e Event) DecodePayload(into any) error {
	if len(e.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(e.Payload, into); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", e.Type, err)
	}
	return nil
}

type Handler func(event Event)

// Bus is one participant's connection to the shared topic. Publish is
// fire-and-forget; Subscribe adds a handler to an ordered registry and
// returns its removal function. Handlers are invoked synchronously with
// respect to receipt: the bus never batches or coalesces events.
//
// The bus does not filter a publisher's own events on the way back in; the
// transports here happen not to echo, but subscribers that care must filter
// by SenderID themselves.
type Bus interface {
	Publish(event Event)
	Subscribe(handler Handler) (unsubscribe func())
	Close() error
}

// JoinPayload travels with JOIN events and carries the joining participant.
type JoinPayload struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	PreferredLanguage string `json:"preferredLanguage"`
}

// MessagePayload travels with MESSAGE events.
type MessagePayload struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	Translation  string `json:"translation,omitempty"`
	SenderID     string `json:"senderId"`
	LanguageCode string `json:"language"`
	Timestamp    int64  `json:"timestamp"`
}

// UpdateLangPayload travels with UPDATE_LANG events.
type UpdateLangPayload struct {
	Language string `json:"language"`
}
