package main

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DeepgramAPIKey string `envconfig:"DEEPGRAM_API_KEY"`
	GeminiAPIKey   string `envconfig:"GEMINI_API_KEY"`

	// LINGVO_SESSION_ID plus LINGVO_RELAY_URL switch the app from the
	// co-located two-slot view to a remote session joined through the relay.
	SessionID string `envconfig:"LINGVO_SESSION_ID"`
	RelayURL  string `envconfig:"LINGVO_RELAY_URL"`

	DisplayName string `envconfig:"LINGVO_DISPLAY_NAME" default:"You"`
	Language    string `envconfig:"LINGVO_LANGUAGE" default:"en"`
	// LINGVO_PEER_LANGUAGE seeds the second slot in the co-located view.
	PeerLanguage string `envconfig:"LINGVO_PEER_LANGUAGE" default:"es"`

	// LINGVO_DEMO_PEER runs a simulated remote peer over an in-process bus,
	// for trying the session surface without a relay or a second device.
	DemoPeer bool `envconfig:"LINGVO_DEMO_PEER"`

	// LINGVO_RELAY_ADDR is the listen address of the `lingvo relay` server.
	RelayAddr string `envconfig:"LINGVO_RELAY_ADDR" default:":8787"`
}

func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
