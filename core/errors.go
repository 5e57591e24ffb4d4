package conversation

import (
	"context"
	"errors"

	"github.com/lingvo-app/lingvo-core/core/capture"
	"github.com/lingvo-app/lingvo-core/core/translation"
)

var (
	// ErrCaptureUnsupported is returned by StartCapture when no capture
	// client is configured.
	ErrCaptureUnsupported = errors.New("speech capture is not supported on this platform")
	// ErrChannelBusy is returned by StartCapture when the same channel is
	// already mid-cycle; start is only valid from idle.
	ErrChannelBusy = errors.New("capture channel is not idle")
	// ErrControllerClosed is returned by operations issued after Close.
	ErrControllerClosed = errors.New("controller is closed")
)

// ErrorKind is the user-facing failure classification carried by error-state
// channels and transient notices.
type ErrorKind string

const (
	ErrorKindCaptureUnsupported       ErrorKind = "capture_unsupported"
	ErrorKindCapturePermissionDenied  ErrorKind = "capture_permission_denied"
	ErrorKindCaptureDeviceUnavailable ErrorKind = "capture_device_unavailable"
	ErrorKindNoSpeechDetected         ErrorKind = "no_speech_detected"
	ErrorKindNetworkError             ErrorKind = "network_error"
	ErrorKindInvalidCredential        ErrorKind = "invalid_credential"
	ErrorKindQuotaExceeded            ErrorKind = "quota_exceeded"
	ErrorKindGenericProviderError     ErrorKind = "generic_provider_error"
)

// Message returns the user-visible notice text for the kind. Quota and
// credential failures get distinct messages from the generic provider text.
func (k ErrorKind) Message() string {
	switch k {
	case ErrorKindCaptureUnsupported:
		return "Speech capture is not supported here."
	case ErrorKindCapturePermissionDenied:
		return "Microphone access was denied."
	case ErrorKindCaptureDeviceUnavailable:
		return "No microphone is available."
	case ErrorKindNoSpeechDetected:
		return "No speech was detected."
	case ErrorKindNetworkError:
		return "A network error interrupted the conversation."
	case ErrorKindInvalidCredential:
		return "The translation service rejected the configured credentials."
	case ErrorKindQuotaExceeded:
		return "The translation quota has been exhausted."
	}
	return "Something went wrong. Please try again."
}

// Sticky reports whether the notice stays up instead of self-clearing.
// Only the absent-capability notice is sticky; retrying cannot fix it.
func (k ErrorKind) Sticky() bool {
	return k == ErrorKindCaptureUnsupported
}

func mapCaptureErrorKind(kind capture.Kind) ErrorKind {
	switch kind {
	case capture.KindUnsupported:
		return ErrorKindCaptureUnsupported
	case capture.KindPermissionDenied:
		return ErrorKindCapturePermissionDenied
	case capture.KindDeviceUnavailable:
		return ErrorKindCaptureDeviceUnavailable
	case capture.KindNoSpeech:
		return ErrorKindNoSpeechDetected
	case capture.KindNetwork:
		return ErrorKindNetworkError
	}
	return ErrorKindGenericProviderError
}

func mapTranslationErrorKind(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorKindNetworkError
	}

	switch translation.KindOf(err) {
	case translation.KindQuota:
		return ErrorKindQuotaExceeded
	case translation.KindInvalidCredential:
		return ErrorKindInvalidCredential
	case translation.KindNetwork:
		return ErrorKindNetworkError
	}
	return ErrorKindGenericProviderError
}
