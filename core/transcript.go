package conversation

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// Message is one completed utterance in the conversation. Entries are
// immutable once appended; the log is insertion-ordered and append-only,
// which is what makes the outbound capture path and the inbound session path
// safe to interleave without further locking discipline.
type Message struct {
	ID           string
	Text         string
	Translation  string
	SenderID     string
	LanguageCode string
	Timestamp    time.Time
}

type transcriptLog struct {
	mu       sync.RWMutex
	messages []Message
}

func newTranscriptLog() *transcriptLog {
	return &transcriptLog{}
}

// Append records a completed cycle. Missing identity fields are stamped here
// so callers on both paths build messages the same way.
func (l *transcriptLog) Append(message Message) Message {
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, message)
	return message
}

func (l *transcriptLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}

// Snapshot returns a deep copy of the log in display order.
func (l *transcriptLog) Snapshot() []Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	messages := []Message{}
	if err := copier.Copy(&messages, &l.messages); err != nil {
		// copier cannot fail on a slice of plain values; keep the contract
		// total anyway.
		messages = append([]Message{}, l.messages...)
	}
	return messages
}
