package languages

import "testing"

func TestLookup(t *testing.T) {
	language, ok := Lookup("es")
	if !ok {
		t.Fatalf("expected Spanish to be supported")
	}
	if language.Locale != "es-ES" {
		t.Fatalf("expected the Spanish locale, got %q", language.Locale)
	}

	if _, ok := Lookup(" ES "); !ok {
		t.Fatalf("expected lookup to normalize case and whitespace")
	}
	if _, ok := Lookup("xx"); ok {
		t.Fatalf("expected an unknown code rejected")
	}
}

func TestLocale(t *testing.T) {
	if got := Locale("pt"); got != "pt-BR" {
		t.Fatalf("expected the table locale, got %q", got)
	}
	if got := Locale("es-MX"); got != "es-MX" {
		t.Fatalf("expected a full locale passed through, got %q", got)
	}
	if got := Locale("xx"); got != DefaultLocale {
		t.Fatalf("expected the fallback locale, got %q", got)
	}
}

func TestNextWrapsAround(t *testing.T) {
	first := Supported[0]
	last := Supported[len(Supported)-1]

	if got := Next(first.Code); got.Code != Supported[1].Code {
		t.Fatalf("expected the following language, got %q", got.Code)
	}
	if got := Next(last.Code); got.Code != first.Code {
		t.Fatalf("expected the cycle to wrap, got %q", got.Code)
	}
	if got := Next("xx"); got.Code != first.Code {
		t.Fatalf("expected an unknown code to restart the cycle, got %q", got.Code)
	}
}

func TestDetect(t *testing.T) {
	if got := Detect("Buenos días, ¿cómo estás? Espero que tengas un buen día."); got != "es" {
		t.Fatalf("expected Spanish detected, got %q", got)
	}
	if got := Detect("ok"); got != "" {
		t.Fatalf("expected unreliable input to detect nothing, got %q", got)
	}
}
