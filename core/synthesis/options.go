// Package synthesis holds the option contract consumed by speech synthesis
// implementations.
package synthesis

type Options struct {
	// Locale is the full synthesis locale ("en-US"). Implementations pick the
	// best available voice whose locale prefix matches; absence of a match is
	// not an error and synthesis proceeds with a default voice.
	Locale string
	// Voice pins a specific voice, bypassing locale matching.
	Voice string

	SpeechEndedCallback func()
}

type Option func(*Options)

func WithLocale(locale string) Option {
	return func(o *Options) {
		o.Locale = locale
	}
}

func WithVoice(voice string) Option {
	return func(o *Options) {
		o.Voice = voice
	}
}

func WithSpeechEndedCallback(callback func()) Option {
	return func(o *Options) {
		o.SpeechEndedCallback = callback
	}
}
