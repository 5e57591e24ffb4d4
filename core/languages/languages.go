// Package languages maps the short conversation language codes used across
// the app to the full locale identifiers required by capture and synthesis
// backends, and offers best-effort detection for text with unknown origin.
package languages

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// DefaultLocale is used when a language code has no table entry.
const DefaultLocale = "en-US"

// Language describes one supported conversation language.
type Language struct {
	// Code is the short ISO-639-1-like identifier used on the wire ("es").
	Code string
	// Name is the language's own display name.
	Name string
	// Flag is the emoji shown next to the language in pickers.
	Flag string
	// Locale is the full identifier handed to capture/synthesis ("es-ES").
	Locale string
}

// Supported lists every language the conversation layer knows about, in
// picker order.
var Supported = []Language{
	{Code: "es", Name: "Español", Flag: "🇪🇸", Locale: "es-ES"},
	{Code: "en", Name: "English", Flag: "🇺🇸", Locale: "en-US"},
	{Code: "fr", Name: "Français", Flag: "🇫🇷", Locale: "fr-FR"},
	{Code: "de", Name: "Deutsch", Flag: "🇩🇪", Locale: "de-DE"},
	{Code: "it", Name: "Italiano", Flag: "🇮🇹", Locale: "it-IT"},
	{Code: "pt", Name: "Português", Flag: "🇧🇷", Locale: "pt-BR"},
	{Code: "ja", Name: "日本語", Flag: "🇯🇵", Locale: "ja-JP"},
	{Code: "zh", Name: "中文", Flag: "🇨🇳", Locale: "zh-CN"},
}

// Lookup returns the table entry for a short code, or false when the code is
// not supported.
func Lookup(code string) (Language, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, language := range Supported {
		if language.Code == code {
			return language, true
		}
	}
	return Language{}, false
}

// Locale resolves a short code to a capture/synthesis locale, falling back to
// DefaultLocale for unknown codes. Full locales are passed through untouched
// so callers may hand over either form.
func Locale(code string) string {
	if language, ok := Lookup(code); ok {
		return language.Locale
	}
	if strings.Contains(code, "-") {
		return code
	}
	return DefaultLocale
}

// Next cycles to the following supported language, wrapping around. Unknown
// codes restart the cycle at the first entry.
func Next(code string) Language {
	for i, language := range Supported {
		if language.Code == code {
			return Supported[(i+1)%len(Supported)]
		}
	}
	return Supported[0]
}

// Detect guesses the language of a piece of text, returning the short code of
// a supported language or "" when detection is unreliable or the language is
// not in the table.
func Detect(text string) string {
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return ""
	}

	code := info.Lang.Iso6391()
	if _, ok := Lookup(code); !ok {
		return ""
	}
	return code
}
