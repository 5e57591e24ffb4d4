// Package gemini implements the translation provider on the Gemini
// generateContent REST API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/lingvo-app/lingvo-core/core/languages"
	"github.com/lingvo-app/lingvo-core/core/translation"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

const (
	apiKeyEnv    = "GEMINI_API_KEY"
	defaultModel = "gemini-2.5-flash-latest"

	baseURL = "https://generativelanguage.googleapis.com/v1beta/models"
)

type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

type ClientOption func(*Client)

// WithAPIKey overrides the GEMINI_API_KEY environment lookup.
func WithAPIKey(apiKey string) ClientOption {
	return func(c *Client) {
		c.apiKey = apiKey
	}
}

func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithHTTPClient replaces the transport, mainly for tests.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL redirects requests, mainly for tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func NewClient(opts ...ClientOption) (*Client, error) {
	client := &Client{
		model:      defaultModel,
		baseURL:    baseURL,
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
	for _, opt := range opts {
		opt(client)
	}

	if client.apiKey == "" {
		apiKey, ok := os.LookupEnv(apiKeyEnv)
		if !ok {
			return nil, fmt.Errorf("gemini api key not found")
		}
		client.apiKey = apiKey
	}

	return client, nil
}

// Translate renders one utterance into the target language. Failures come
// back as a [translation.ProviderError] classified from the HTTP outcome.
func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	ctx, span := tracer.Start(ctx, "translate text")
	defer span.End()
	span.SetAttributes(
		attribute.String("request.source_language", sourceLang),
		attribute.String("request.target_language", targetLang),
	)

	prompt := fmt.Sprintf(`You are a highly skilled professional translator.
Translate the following text from %s to %s.

Rules:
1. Return ONLY the translated text.
2. Do not include quotes or explanations.
3. Maintain tone and context.

Text: %q`, languageName(sourceLang), languageName(targetLang), text)

	return c.generate(ctx, prompt)
}

// SimulatePeerResponse produces a short conversational reply in the peer's
// language, used by the demo mode when no real peer is connected.
func (c *Client) SimulatePeerResponse(ctx context.Context, lastMessage, peerLang string) (string, error) {
	ctx, span := tracer.Start(ctx, "simulate peer response")
	defer span.End()

	prompt := fmt.Sprintf(`Roleplay as a friendly person chatting in a messenger app.
The user just said: %q.

Respond naturally in %s language.
Keep it short (1-2 sentences).
Return ONLY the response text.`, lastMessage, languageName(peerLang))

	reply, err := c.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if reply == "" {
		reply = "..."
	}
	return reply, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := requestBody{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	requestBodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshalling JSON: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return "", fmt.Errorf("error creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return "", translation.NewProviderError(translation.KindNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if errorBody, readErr := io.ReadAll(resp.Body); readErr == nil {
			logger.Warn("Gemini request failed",
				"status", resp.Status, "body", string(errorBody))
		}
		return "", translation.NewProviderError(
			classifyStatus(resp.StatusCode),
			fmt.Errorf("non-OK HTTP status: %s", resp.Status),
		)
	}

	respBodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", translation.NewProviderError(translation.KindNetwork,
			fmt.Errorf("error reading response body: %w", err))
	}

	var responseBody generateResponse
	if err := json.Unmarshal(respBodyBytes, &responseBody); err != nil {
		return "", translation.NewProviderError(translation.KindGeneric,
			fmt.Errorf("error unmarshalling response: %w", err))
	}

	return strings.TrimSpace(responseBody.text()), nil
}

func classifyStatus(statusCode int) translation.Kind {
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return translation.KindInvalidCredential
	case statusCode == http.StatusTooManyRequests:
		return translation.KindQuota
	case statusCode >= 500:
		return translation.KindUnavailable
	}
	return translation.KindGeneric
}

// languageName renders a code as its display name; the model handles either,
// but names disambiguate short codes like "pt".
func languageName(code string) string {
	if language, ok := languages.Lookup(code); ok {
		return language.Name
	}
	return code
}

type requestBody struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (r generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var builder strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		builder.WriteString(p.Text)
	}
	return builder.String()
}
