package conversation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lingvo-app/lingvo-core/core/translation"
)

func TestTranslateShortCircuits(t *testing.T) {
	calls := 0
	gateway := newTranslateGateway()
	gateway.set(&stubTranslator{translate: func(text, _, _ string) (string, error) {
		calls++
		return text, nil
	}})

	got, err := gateway.Translate(context.Background(), "   ", "es", "en")
	if err != nil || got != "" {
		t.Fatalf("expected blank input to resolve empty, got %q, %v", got, err)
	}

	got, err = gateway.Translate(context.Background(), "hello", "en", "en")
	if err != nil || got != "hello" {
		t.Fatalf("expected matching languages to echo the input, got %q, %v", got, err)
	}

	if calls != 0 {
		t.Fatalf("expected the provider untouched, got %d calls", calls)
	}
}

func TestTranslateWithoutProvider(t *testing.T) {
	gateway := newTranslateGateway()

	got, err := gateway.Translate(context.Background(), "hola", "es", "en")
	if err != nil {
		t.Fatalf("expected no error without a provider, got %v", err)
	}
	if got != "" {
		t.Fatalf("expected an empty translation without a provider, got %q", got)
	}
}

func TestTranslateTimeoutClassifiedAsNetwork(t *testing.T) {
	gateway := newTranslateGateway()
	gateway.timeout = 20 * time.Millisecond
	gateway.set(&stubTranslator{translate: func(string, string, string) (string, error) {
		return "", context.DeadlineExceeded
	}})

	_, err := gateway.Translate(context.Background(), "hola", "es", "en")

	var providerErr *translation.ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected a provider error, got %v", err)
	}
	if providerErr.Kind() != translation.KindNetwork {
		t.Fatalf("expected a network-kind failure, got %s", providerErr.Kind())
	}
}

func TestTranslatePassesProviderErrorsThrough(t *testing.T) {
	want := translation.NewProviderError(translation.KindQuota, nil)
	gateway := newTranslateGateway()
	gateway.set(&stubTranslator{translate: func(string, string, string) (string, error) {
		return "", want
	}})

	_, err := gateway.Translate(context.Background(), "hola", "es", "en")
	if !errors.Is(err, want) {
		t.Fatalf("expected the provider error passed through, got %v", err)
	}
}
