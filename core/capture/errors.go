package capture

import "fmt"

// Kind classifies capture failures so callers never have to inspect raw
// error text.
type Kind string

const (
	// KindUnsupported means the capture capability is absent or unconfigured
	// on this platform.
	KindUnsupported Kind = "unsupported"
	// KindPermissionDenied means the user or OS denied microphone access.
	KindPermissionDenied Kind = "permission_denied"
	// KindDeviceUnavailable means no audio device could be opened.
	KindDeviceUnavailable Kind = "device_unavailable"
	// KindNoSpeech means the cycle timed out without any input.
	KindNoSpeech Kind = "no_speech"
	// KindNetwork means the transport to the capture backend failed.
	KindNetwork Kind = "network"
	// KindInternal covers any other capture runtime failure.
	KindInternal Kind = "internal"
)

// Error is the structured failure surfaced by capture implementations.
type Error struct {
	ErrKind Kind
	Cause   error
}

func NewError(kind Kind, cause error) *Error {
	return &Error{ErrKind: kind, Cause: cause}
}

func (e *Error) Kind() Kind {
	if e == nil {
		return KindInternal
	}
	return e.ErrKind
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("capture error: %s", e.ErrKind)
	}
	return fmt.Sprintf("capture error (%s): %v", e.ErrKind, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }
