package events

import "time"

const (
	// KindMessageAppended identifies an entry joining the conversation log.
	KindMessageAppended Kind = "message.appended"
)

// MessageAppended reports an immutable entry added to the conversation log.
// Inbound is true when the message arrived from a session peer rather than a
// local capture or typed cycle. SentAt is the message's own timestamp, the
// sender's for inbound messages, as opposed to Timestamp() which reports
// when the event was emitted locally.
type MessageAppended struct {
	Base
	ID           string
	SenderID     string
	Text         string
	Translation  string
	LanguageCode string
	Inbound      bool
	SentAt       time.Time
}

// NewMessageAppended creates a message appended event.
func NewMessageAppended(id, senderID, text, translation, languageCode string, inbound bool, sentAt time.Time) MessageAppended {
	return MessageAppended{
		Base:         NewBase(KindMessageAppended),
		ID:           id,
		SenderID:     senderID,
		Text:         text,
		Translation:  translation,
		LanguageCode: languageCode,
		Inbound:      inbound,
		SentAt:       sentAt,
	}
}
