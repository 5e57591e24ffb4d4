package deepgram

import (
	"fmt"

	"github.com/lingvo-app/lingvo-core/core/audio"
)

// encodingInfo is the subset of stream parameters Deepgram accepts, with the
// format already rendered as the wire name.
type encodingInfo struct {
	SampleRate int
	Format     string
}

func convertEncoding(encoding audio.EncodingInfo) (*encodingInfo, error) {
	if encoding.IsZero() {
		return nil, fmt.Errorf("missing encoding info")
	}

	deepgramEncoding := encodingInfo{}

	switch encoding.SampleRate {
	case 8000, 16000, 24000, 32000, 48000:
		deepgramEncoding.SampleRate = encoding.SampleRate
	default:
		return nil, fmt.Errorf("unsupported sample rate")
	}

	switch encoding.Format {
	case audio.EncodingLinear16:
		deepgramEncoding.Format = encoding.Format.Name()
	case audio.EncodingALaw, audio.EncodingMulaw:
		deepgramEncoding.Format = encoding.Format.Name()
		if deepgramEncoding.SampleRate != 8000 {
			return nil, fmt.Errorf("unsupported sample rate for %s encoding", encoding.Format.Name())
		}
	default:
		return nil, fmt.Errorf("unsupported encoding")
	}

	return &deepgramEncoding, nil
}
