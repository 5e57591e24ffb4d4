package conversation

import (
	"sync"
	"time"

	"github.com/lingvo-app/lingvo-core/core/events"
)

// DefaultNoticeWindow matches the display window of transient error notices:
// they self-clear with no user action required.
const DefaultNoticeWindow = 5 * time.Second

// Notice is a session-scoped error surfaced to the user.
type Notice struct {
	Kind    ErrorKind
	Message string
	// Sticky notices do not self-clear.
	Sticky bool
}

// noticeBoard holds at most one visible notice. Raising a new notice
// replaces the current one and restarts the display window; sticky notices
// stay until explicitly dismissed or replaced.
type noticeBoard struct {
	mu      sync.Mutex
	window  time.Duration
	current *Notice
	timer   *time.Timer

	emit eventEmitter
}

func newNoticeBoard(window time.Duration) *noticeBoard {
	if window <= 0 {
		window = DefaultNoticeWindow
	}
	return &noticeBoard{window: window, emit: noopEventEmitter}
}

func (nb *noticeBoard) setEventEmitter(emit eventEmitter) {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	if emit == nil {
		emit = noopEventEmitter
	}
	nb.emit = emit
}

func (nb *noticeBoard) Raise(kind ErrorKind) {
	notice := Notice{Kind: kind, Message: kind.Message(), Sticky: kind.Sticky()}

	nb.mu.Lock()
	nb.current = &notice
	if nb.timer != nil {
		nb.timer.Stop()
		nb.timer = nil
	}
	if !notice.Sticky {
		nb.timer = time.AfterFunc(nb.window, func() { nb.clear(notice) })
	}
	emit := nb.emit
	nb.mu.Unlock()

	emit(events.NewNoticeRaised(string(kind), notice.Message, notice.Sticky))
}

// Current returns the visible notice, or nil.
func (nb *noticeBoard) Current() *Notice {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	if nb.current == nil {
		return nil
	}
	notice := *nb.current
	return &notice
}

// Dismiss clears any visible notice, sticky or not.
func (nb *noticeBoard) Dismiss() {
	nb.mu.Lock()
	if nb.current == nil {
		nb.mu.Unlock()
		return
	}
	nb.current = nil
	if nb.timer != nil {
		nb.timer.Stop()
		nb.timer = nil
	}
	emit := nb.emit
	nb.mu.Unlock()

	emit(events.NewNoticeCleared())
}

func (nb *noticeBoard) stop() {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	if nb.timer != nil {
		nb.timer.Stop()
		nb.timer = nil
	}
}

// clear removes the notice when the display window elapses, unless a newer
// notice replaced it in the meantime.
func (nb *noticeBoard) clear(notice Notice) {
	nb.mu.Lock()
	if nb.current == nil || *nb.current != notice {
		nb.mu.Unlock()
		return
	}
	nb.current = nil
	nb.timer = nil
	emit := nb.emit
	nb.mu.Unlock()

	emit(events.NewNoticeCleared())
}
