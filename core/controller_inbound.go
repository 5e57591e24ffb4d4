package conversation

import (
	"fmt"
	"time"

	"github.com/lingvo-app/lingvo-core/core/events"
	"github.com/lingvo-app/lingvo-core/core/languages"
	"github.com/lingvo-app/lingvo-core/core/sessionbus"
)

// publish sends a session event attributed to the local participant. Bus
// failures degrade the session surface only; the local conversation keeps
// working, so they are logged rather than surfaced.
func (c *Controller) publish(eventType sessionbus.EventType, payload any) {
	if c.bus == nil {
		return
	}

	event, err := sessionbus.NewEvent(eventType, c.sessionID, c.Local().ID, payload)
	if err != nil {
		c.recordError(fmt.Errorf("failed to encode %s session event: %w", eventType, err))
		return
	}
	c.bus.Publish(event)
}

func (c *Controller) publishMessage(message Message) {
	c.publish(sessionbus.EventTypeMessage, sessionbus.MessagePayload{
		ID:           message.ID,
		Text:         message.Text,
		Translation:  message.Translation,
		SenderID:     message.SenderID,
		LanguageCode: message.LanguageCode,
		Timestamp:    message.Timestamp.UnixMilli(),
	})
}

// handleSessionEvent is the single entrypoint for peer traffic. Events from
// other sessions and the controller's own echoes are dropped before any
// state is touched.
func (c *Controller) handleSessionEvent(event sessionbus.Event) {
	if c.closed.Load() {
		return
	}
	if c.sessionID != "" && event.SessionID != c.sessionID {
		return
	}
	if event.SenderID == c.Local().ID {
		return
	}

	switch event.Type {
	case sessionbus.EventTypeJoin:
		c.handlePeerJoin(event)
	case sessionbus.EventTypeLeave:
		c.handlePeerLeave(event)
	case sessionbus.EventTypeUpdateLang:
		c.handlePeerLanguage(event)
	case sessionbus.EventTypeMessage:
		c.handlePeerMessage(event)
	default:
		logger.Warn("Dropping session event of unknown type", "type", event.Type)
	}
}

func (c *Controller) handlePeerJoin(event sessionbus.Event) {
	var payload sessionbus.JoinPayload
	if err := event.DecodePayload(&payload); err != nil {
		c.recordError(fmt.Errorf("failed to decode join payload: %w", err))
		return
	}
	if payload.ID == "" {
		payload.ID = event.SenderID
	}

	first := c.session.join(Participant{
		ID:                payload.ID,
		DisplayName:       payload.DisplayName,
		PreferredLanguage: payload.PreferredLanguage,
	})
	c.emitEvent(events.NewPeerJoined(payload.ID, payload.DisplayName, payload.PreferredLanguage))

	// A newly seen peer has not observed our earlier join; re-announce so
	// both sides converge on the same membership view.
	if first {
		local := c.Local()
		c.publish(sessionbus.EventTypeJoin, sessionbus.JoinPayload{
			ID:                local.ID,
			DisplayName:       local.DisplayName,
			PreferredLanguage: local.PreferredLanguage,
		})
	}
}

func (c *Controller) handlePeerLeave(event sessionbus.Event) {
	if !c.session.leave(event.SenderID) {
		return
	}
	c.emitEvent(events.NewPeerLeft(event.SenderID))
}

func (c *Controller) handlePeerLanguage(event sessionbus.Event) {
	var payload sessionbus.UpdateLangPayload
	if err := event.DecodePayload(&payload); err != nil {
		c.recordError(fmt.Errorf("failed to decode language payload: %w", err))
		return
	}

	c.session.setLanguage(event.SenderID, payload.Language)
	c.emitEvent(events.NewPeerLanguageChanged(event.SenderID, payload.Language))
}

// handlePeerMessage integrates a remote message into the local log. The
// sender's own translation is trusted when present; only messages that
// arrive without one are translated locally. Append happens before playback
// so the log only ever holds complete messages.
func (c *Controller) handlePeerMessage(event sessionbus.Event) {
	var payload sessionbus.MessagePayload
	if err := event.DecodePayload(&payload); err != nil {
		c.recordError(fmt.Errorf("failed to decode message payload: %w", err))
		return
	}

	local := c.Local()
	translation := payload.Translation
	if translation == "" {
		if payload.LanguageCode == local.PreferredLanguage {
			translation = payload.Text
		} else {
			translated, err := c.translate.Translate(
				c.baseContext, payload.Text, payload.LanguageCode, local.PreferredLanguage,
			)
			if err != nil {
				c.notices.Raise(mapTranslationErrorKind(err))
				translation = payload.Text
			} else if translated != "" {
				translation = translated
			} else {
				translation = payload.Text
			}
		}
	}

	message := Message{
		ID:           payload.ID,
		Text:         payload.Text,
		Translation:  translation,
		SenderID:     payload.SenderID,
		LanguageCode: payload.LanguageCode,
	}
	if payload.SenderID == "" {
		message.SenderID = event.SenderID
	}
	if payload.Timestamp > 0 {
		message.Timestamp = time.UnixMilli(payload.Timestamp)
	}

	message = c.appendMessage(message, true)
	c.playback.Speak(c.baseContext, message.Translation, languages.Locale(local.PreferredLanguage))
}
