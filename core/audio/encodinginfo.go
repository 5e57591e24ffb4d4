// Package audio holds the encoding contract shared by capture and playback
// device clients and the speech vendors that consume their streams.
package audio

import "time"

const DefaultSampleRate = 16000

// EncodingInfo describes a mono PCM stream: sample rate plus wire format.
type EncodingInfo struct {
	SampleRate int
	Format     encodingFormat
}

func GetDefaultEncodingInfo() EncodingInfo {
	return EncodingInfo{SampleRate: DefaultSampleRate, Format: EncodingLinear16}
}

func (e EncodingInfo) IsZero() bool {
	return e.SampleRate == 0 || e.Format.Name() == ""
}

// SilenceValue is the byte that represents silence in this format, used to
// synthesize keep-alive audio when the microphone goes quiet.
func (e EncodingInfo) SilenceValue() byte {
	switch e.Format {
	case EncodingALaw:
		return 0x55
	case EncodingMulaw:
		return 0xFF
	}
	return 0
}

// ChunkSize returns the byte length of a mono chunk spanning the given
// duration.
func (e EncodingInfo) ChunkSize(duration time.Duration) int {
	return e.SampleRate * e.Format.ByteSize() * int(duration.Milliseconds()) / 1000
}

type encodingFormat string

const (
	EncodingLinear16 encodingFormat = "linear16"
	EncodingALaw     encodingFormat = "alaw"
	EncodingMulaw    encodingFormat = "mulaw"
)

func (e encodingFormat) Name() string {
	return string(e)
}

func (e encodingFormat) ByteSize() int {
	switch e {
	case EncodingMulaw, EncodingALaw:
		return 1
	case EncodingLinear16:
		return 2
	}
	return -1
}
