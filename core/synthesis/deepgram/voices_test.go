package deepgram

import "testing"

func TestVoiceForLocale(t *testing.T) {
	if got := voiceForLocale("es"); got != "aura-2-celeste-es" {
		t.Fatalf("expected the Spanish voice for a bare code, got %q", got)
	}
	if got := voiceForLocale("es-MX"); got != "aura-2-celeste-es" {
		t.Fatalf("expected the Spanish voice for a full locale, got %q", got)
	}
	if got := voiceForLocale("ja-JP"); got != defaultVoice {
		t.Fatalf("expected the default voice for an uncovered language, got %q", got)
	}
	if got := voiceForLocale(""); got != defaultVoice {
		t.Fatalf("expected the default voice for an empty locale, got %q", got)
	}
}
