package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lingvo-app/lingvo-core/core/sessionbus"
)

// peerResponder generates the simulated peer's side of the conversation.
// *gemini.Client satisfies it.
type peerResponder interface {
	SimulatePeerResponse(ctx context.Context, lastMessage, peerLang string) (string, error)
}

// demoPeer is a synthetic session participant: it joins over an in-process
// bus and answers every message with a short generated reply in its own
// language. Replies carry no translation, so the receiving side translates
// them the same way it would a real peer's.
type demoPeer struct {
	ctx       context.Context
	channel   *sessionbus.MemoryChannel
	responder peerResponder

	id        string
	sessionID string
	language  string
}

func startDemoPeer(ctx context.Context, channel *sessionbus.MemoryChannel, responder peerResponder, sessionID, language string) *demoPeer {
	peer := &demoPeer{
		ctx:       ctx,
		channel:   channel,
		responder: responder,
		id:        uuid.NewString(),
		sessionID: sessionID,
		language:  language,
	}
	channel.Subscribe(peer.handle)
	peer.announce()
	return peer
}

func (p *demoPeer) announce() {
	p.publish(sessionbus.EventTypeJoin, sessionbus.JoinPayload{
		ID:                p.id,
		DisplayName:       "Demo peer",
		PreferredLanguage: p.language,
	})
}

func (p *demoPeer) handle(event sessionbus.Event) {
	if event.SessionID != p.sessionID || event.SenderID == p.id {
		return
	}

	switch event.Type {
	case sessionbus.EventTypeJoin:
		// The joiner has not seen our earlier announcement.
		p.announce()
	case sessionbus.EventTypeMessage:
		var payload sessionbus.MessagePayload
		if err := event.DecodePayload(&payload); err != nil {
			log.Printf("demo peer: %v", err)
			return
		}
		go p.reply(payload.Text)
	}
}

func (p *demoPeer) reply(lastMessage string) {
	text, err := p.responder.SimulatePeerResponse(p.ctx, lastMessage, p.language)
	if err != nil {
		log.Printf("demo peer reply failed: %v", err)
		return
	}

	p.publish(sessionbus.EventTypeMessage, sessionbus.MessagePayload{
		ID:           uuid.NewString(),
		Text:         text,
		SenderID:     p.id,
		LanguageCode: p.language,
		Timestamp:    time.Now().UnixMilli(),
	})
}

func (p *demoPeer) publish(eventType sessionbus.EventType, payload any) {
	event, err := sessionbus.NewEvent(eventType, p.sessionID, p.id, payload)
	if err != nil {
		log.Printf("demo peer: %v", err)
		return
	}
	p.channel.Publish(event)
}
