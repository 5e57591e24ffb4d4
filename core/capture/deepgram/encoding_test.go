package deepgram

import (
	"testing"

	"github.com/lingvo-app/lingvo-core/core/audio"
)

func TestConvertEncodingAcceptsDefaultStream(t *testing.T) {
	got, err := convertEncoding(audio.GetDefaultEncodingInfo())
	if err != nil {
		t.Fatalf("expected the default stream accepted, got %v", err)
	}
	if got.SampleRate != audio.DefaultSampleRate || got.Format != "linear16" {
		t.Fatalf("expected a linear16 stream at the default rate, got %+v", got)
	}
}

func TestConvertEncodingRejectsUnsupportedSampleRate(t *testing.T) {
	_, err := convertEncoding(audio.EncodingInfo{SampleRate: 44100, Format: audio.EncodingLinear16})
	if err == nil {
		t.Fatalf("expected an unsupported sample rate rejected")
	}
}

func TestConvertEncodingCompandedFormatsRequire8kHz(t *testing.T) {
	if _, err := convertEncoding(audio.EncodingInfo{SampleRate: 8000, Format: audio.EncodingMulaw}); err != nil {
		t.Fatalf("expected mulaw at 8kHz accepted, got %v", err)
	}
	if _, err := convertEncoding(audio.EncodingInfo{SampleRate: 16000, Format: audio.EncodingMulaw}); err == nil {
		t.Fatalf("expected mulaw above 8kHz rejected")
	}
	if _, err := convertEncoding(audio.EncodingInfo{SampleRate: 16000, Format: audio.EncodingALaw}); err == nil {
		t.Fatalf("expected alaw above 8kHz rejected")
	}
}

func TestConvertEncodingRejectsZeroValue(t *testing.T) {
	if _, err := convertEncoding(audio.EncodingInfo{}); err == nil {
		t.Fatalf("expected a zero-value encoding rejected")
	}
}
