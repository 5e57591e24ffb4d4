package conversation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lingvo-app/lingvo-core/core/translation"
)

// DefaultTranslateTimeout bounds translation calls so a provider that never
// resolves cannot park a cycle in processing indefinitely.
const DefaultTranslateTimeout = 15 * time.Second

// translateGateway is the controller-side facade over the configured
// translation provider.
type translateGateway struct {
	// client stores the configured translation implementation.
	client  Translator
	timeout time.Duration
}

func newTranslateGateway() *translateGateway {
	return &translateGateway{timeout: DefaultTranslateTimeout}
}

func (t *translateGateway) set(client Translator) {
	if t != nil {
		t.client = client
	}
}

func (t *translateGateway) isConfigured() bool {
	return t != nil && t.client != nil
}

// Translate resolves the translation for one utterance. Empty input
// short-circuits to an empty result, and a source/target match echoes the
// input, both without touching the provider. Context expiry is classified as
// a network-kind provider failure at this boundary so callers never see a
// bare deadline error.
func (t *translateGateway) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	if sourceLang == targetLang {
		return text, nil
	}
	if !t.isConfigured() {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	translated, err := t.client.Translate(ctx, text, sourceLang, targetLang)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", translation.NewProviderError(translation.KindNetwork, err)
		}
		return "", err
	}
	return translated, nil
}
