package events

const (
	// KindNoticeRaised identifies an error notice surfacing to the user.
	KindNoticeRaised Kind = "notice.raised"
	// KindNoticeCleared identifies a notice display window elapsing.
	KindNoticeCleared Kind = "notice.cleared"
)

// NoticeRaised reports an error surfaced to the user. Sticky notices do not
// self-clear.
type NoticeRaised struct {
	Base
	ErrorKind string
	Message   string
	Sticky    bool
}

// NewNoticeRaised creates a notice raised event.
func NewNoticeRaised(errorKind, message string, sticky bool) NoticeRaised {
	return NoticeRaised{Base: NewBase(KindNoticeRaised), ErrorKind: errorKind, Message: message, Sticky: sticky}
}

// NoticeCleared marks the end of a transient notice display window.
type NoticeCleared struct{ Base }

// NewNoticeCleared creates a notice cleared event.
func NewNoticeCleared() NoticeCleared {
	return NoticeCleared{Base: NewBase(KindNoticeCleared)}
}
