package deepgram

import (
	"context"
	"testing"
	"time"

	"github.com/lingvo-app/lingvo-core/core/audio"
)

type stubAudioInput struct {
	encoding audio.EncodingInfo
}

func (s stubAudioInput) StartCapture(context.Context, func([]byte)) error { return nil }
func (s stubAudioInput) StopCapture() error                               { return nil }
func (s stubAudioInput) EncodingInfo() audio.EncodingInfo                 { return s.encoding }

func TestSilenceFrameMatchesStreamEncoding(t *testing.T) {
	testCases := []struct {
		name     string
		encoding audio.EncodingInfo
		length   int
		value    byte
	}{
		{
			name:     "linear16 at 16kHz",
			encoding: audio.GetDefaultEncodingInfo(),
			length:   3200,
			value:    0x00,
		},
		{
			name:     "mulaw at 8kHz",
			encoding: audio.EncodingInfo{SampleRate: 8000, Format: audio.EncodingMulaw},
			length:   800,
			value:    0xFF,
		},
		{
			name:     "alaw at 8kHz",
			encoding: audio.EncodingInfo{SampleRate: 8000, Format: audio.EncodingALaw},
			length:   800,
			value:    0x55,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			client, err := NewClient(stubAudioInput{encoding: testCase.encoding}, WithAPIKey("test-key"))
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}

			frame := client.silenceFrame(100 * time.Millisecond)
			if len(frame) != testCase.length {
				t.Fatalf("expected a %d byte frame, got %d", testCase.length, len(frame))
			}
			for i, b := range frame {
				if b != testCase.value {
					t.Fatalf("expected every byte to be %#x, byte %d is %#x", testCase.value, i, b)
				}
			}
		})
	}
}

func TestNewClientRequiresAudioInput(t *testing.T) {
	if _, err := NewClient(nil, WithAPIKey("test-key")); err == nil {
		t.Fatalf("expected a nil audio input rejected")
	}
}
