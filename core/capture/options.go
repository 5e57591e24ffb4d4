// Package capture holds the option and error contract consumed by speech
// capture implementations. The capture interface itself is declared next to
// the controller options so implementations only depend on this package.
package capture

import "time"

type Options struct {
	ResultCallback func(transcript string, isFinal bool)
	ErrorCallback  func(err *Error)

	// Locale is the full capture locale ("es-ES").
	Locale string
	// NoSpeechTimeout bounds how long a cycle may run without any result
	// before the implementation reports KindNoSpeech. Zero disables the
	// bound and defers to the backend's own endpointing.
	NoSpeechTimeout time.Duration
}

type Option func(*Options)

func WithResultCallback(callback func(transcript string, isFinal bool)) Option {
	return func(o *Options) {
		o.ResultCallback = callback
	}
}

func WithErrorCallback(callback func(err *Error)) Option {
	return func(o *Options) {
		o.ErrorCallback = callback
	}
}

func WithLocale(locale string) Option {
	return func(o *Options) {
		o.Locale = locale
	}
}

func WithNoSpeechTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.NoSpeechTimeout = timeout
	}
}
