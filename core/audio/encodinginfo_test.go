package audio

import (
	"testing"
	"time"
)

func TestEncodingInfoChunkSize(t *testing.T) {
	linear := EncodingInfo{SampleRate: 16000, Format: EncodingLinear16}
	if got := linear.ChunkSize(time.Second); got != 32000 {
		t.Fatalf("expected 32000 bytes per second of linear16, got %d", got)
	}
	if got := linear.ChunkSize(250 * time.Millisecond); got != 8000 {
		t.Fatalf("expected 8000 bytes per quarter second, got %d", got)
	}

	mulaw := EncodingInfo{SampleRate: 8000, Format: EncodingMulaw}
	if got := mulaw.ChunkSize(time.Second); got != 8000 {
		t.Fatalf("expected 8000 bytes per second of mulaw, got %d", got)
	}
}

func TestEncodingInfoSilenceValue(t *testing.T) {
	cases := []struct {
		format encodingFormat
		want   byte
	}{
		{EncodingLinear16, 0x00},
		{EncodingALaw, 0x55},
		{EncodingMulaw, 0xFF},
	}
	for _, tc := range cases {
		info := EncodingInfo{SampleRate: 8000, Format: tc.format}
		if got := info.SilenceValue(); got != tc.want {
			t.Fatalf("expected silence byte %#x for %s, got %#x", tc.want, tc.format.Name(), got)
		}
	}
}

func TestEncodingInfoIsZero(t *testing.T) {
	if !(EncodingInfo{}).IsZero() {
		t.Fatalf("expected the zero value reported as zero")
	}
	if GetDefaultEncodingInfo().IsZero() {
		t.Fatalf("expected the default encoding reported as non-zero")
	}
}
