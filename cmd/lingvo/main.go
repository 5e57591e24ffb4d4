// Command lingvo is the terminal front end of the conversation layer: two
// co-located capture slots by default, or a remote session when a relay URL
// and session id are configured. LINGVO_DEMO_PEER joins a simulated peer
// instead, with no relay needed. `lingvo relay` runs the relay server that
// remote sessions connect through.
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	conversation "github.com/lingvo-app/lingvo-core/core"
	"github.com/lingvo-app/lingvo-core/core/audio/miniaudio"
	capturedeepgram "github.com/lingvo-app/lingvo-core/core/capture/deepgram"
	"github.com/lingvo-app/lingvo-core/core/sessionbus"
	"github.com/lingvo-app/lingvo-core/core/sessionbus/relay"
	synthesisdeepgram "github.com/lingvo-app/lingvo-core/core/synthesis/deepgram"
	"github.com/lingvo-app/lingvo-core/core/translation/gemini"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "relay" {
		runRelay(cfg)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := []conversation.ControllerOption{
		conversation.WithParticipant(conversation.Participant{
			DisplayName:       cfg.DisplayName,
			PreferredLanguage: cfg.Language,
		}),
	}

	audioClient, err := miniaudio.NewClient()
	if err != nil {
		// No devices is survivable: capture stays unconfigured and surfaces
		// as a sticky notice, typed messages still work.
		log.Printf("audio devices unavailable: %v", err)
	} else {
		defer audioClient.Close()

		if captureClient, err := capturedeepgram.NewClient(audioClient,
			capturedeepgram.WithAPIKey(cfg.DeepgramAPIKey),
		); err != nil {
			log.Printf("speech capture unavailable: %v", err)
		} else {
			opts = append(opts, conversation.WithCaptureClient(captureClient))
		}

		if synthClient, err := synthesisdeepgram.NewClient(audioClient,
			synthesisdeepgram.WithAPIKey(cfg.DeepgramAPIKey),
		); err != nil {
			log.Printf("speech synthesis unavailable: %v", err)
		} else {
			opts = append(opts, conversation.WithSynthesizerClient(synthClient))
		}
	}

	translator, err := gemini.NewClient(gemini.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		log.Printf("translation unavailable: %v", err)
	} else {
		opts = append(opts, conversation.WithTranslator(translator))
	}

	sessionMode := cfg.RelayURL != "" && cfg.SessionID != ""
	switch {
	case sessionMode:
		bus, err := relay.Dial(ctx, cfg.RelayURL)
		if err != nil {
			log.Fatalf("failed to join session relay: %v", err)
		}
		opts = append(opts,
			conversation.WithSessionBus(bus),
			conversation.WithSessionID(cfg.SessionID),
		)
	case cfg.DemoPeer && translator != nil:
		// A simulated peer over an in-process bus: the full session surface
		// without a relay or a second device.
		const demoSessionID = "demo"
		bus := sessionbus.NewMemoryBus()
		opts = append(opts,
			conversation.WithSessionBus(bus.Open()),
			conversation.WithSessionID(demoSessionID),
		)
		startDemoPeer(ctx, bus.Open(), translator, demoSessionID, cfg.PeerLanguage)
		sessionMode = true
	}

	controller := conversation.NewController(opts...)
	defer controller.Close()

	program := tea.NewProgram(newModel(cfg, controller, sessionMode), tea.WithAltScreen())

	controller.Start(ctx,
		conversation.WithPartialTranscriptCallback(func(slot, transcript string) {
			program.Send(partialTranscriptMsg{slot: slot, transcript: transcript})
		}),
		conversation.WithChannelStateCallback(func(slot string, state conversation.ChannelState) {
			program.Send(channelStateMsg{slot: slot, state: state})
		}),
		conversation.WithMessageCallback(func(message conversation.Message) {
			program.Send(messageMsg{message: message})
		}),
		conversation.WithNoticeCallback(func(notice conversation.Notice) {
			program.Send(noticeMsg{notice: notice})
		}),
		conversation.WithNoticeClearedCallback(func() {
			program.Send(noticeClearedMsg{})
		}),
		conversation.WithPeerJoinedCallback(func(conversation.Participant) {
			program.Send(peersChangedMsg{})
		}),
		conversation.WithPeerLeftCallback(func(string) {
			program.Send(peersChangedMsg{})
		}),
		conversation.WithPeerLanguageCallback(func(string, string) {
			program.Send(peersChangedMsg{})
		}),
	)

	if _, err := program.Run(); err != nil {
		log.Fatalf("failed to run terminal app: %v", err)
	}
}

func runRelay(cfg Config) {
	server := relay.NewServer()
	defer server.Close()

	log.Printf("session relay listening on %s", cfg.RelayAddr)
	if err := http.ListenAndServe(cfg.RelayAddr, server); err != nil {
		log.Fatalf("relay server failed: %v", err)
	}
}
