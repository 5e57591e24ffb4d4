package deepgram

type deepgramVoice string

const defaultVoice deepgramVoice = "aura-2-thalia-en"

// voicesByLanguage maps a language code to an Aura voice model. Locales
// without a dedicated voice fall back to the default English voice; the
// spoken text is already translated, so the mismatch only affects accent.
var voicesByLanguage = map[string]deepgramVoice{
	"en": "aura-2-thalia-en",
	"es": "aura-2-celeste-es",
}

// voiceForLocale resolves a capture locale ("es-ES") or bare language code to
// a voice model.
func voiceForLocale(locale string) deepgramVoice {
	if voice, ok := voicesByLanguage[locale]; ok {
		return voice
	}
	if len(locale) >= 2 {
		if voice, ok := voicesByLanguage[locale[:2]]; ok {
			return voice
		}
	}
	return defaultVoice
}
