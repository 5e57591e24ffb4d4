package conversation

import "github.com/lingvo-app/lingvo-core/core/events"

type eventEmitter func(events.Event)

func noopEventEmitter(events.Event) {}

func newCallbackEventEmitter(opts StartOptions) eventEmitter {
	return func(event events.Event) {
		switch typedEvent := event.(type) {
		case events.TranscriptPartial:
			if opts.onPartialTranscript != nil {
				opts.onPartialTranscript(typedEvent.Slot, typedEvent.Transcript)
			}
		case events.TranscriptFinal:
			if opts.onTranscript != nil {
				opts.onTranscript(typedEvent.Slot, typedEvent.Transcript)
			}
		case events.ChannelStateChanged:
			if opts.onChannelState != nil {
				opts.onChannelState(typedEvent.Slot, ChannelState(typedEvent.State))
			}
		case events.MessageAppended:
			if opts.onMessage != nil {
				opts.onMessage(Message{
					ID:           typedEvent.ID,
					Text:         typedEvent.Text,
					Translation:  typedEvent.Translation,
					SenderID:     typedEvent.SenderID,
					LanguageCode: typedEvent.LanguageCode,
					Timestamp:    typedEvent.SentAt,
				})
			}
		case events.NoticeRaised:
			if opts.onNotice != nil {
				opts.onNotice(Notice{
					Kind:    ErrorKind(typedEvent.ErrorKind),
					Message: typedEvent.Message,
					Sticky:  typedEvent.Sticky,
				})
			}
		case events.NoticeCleared:
			if opts.onNoticeCleared != nil {
				opts.onNoticeCleared()
			}
		case events.PlaybackEnded:
			if opts.onPlaybackEnded != nil {
				opts.onPlaybackEnded(typedEvent.Text)
			}
		case events.PeerJoined:
			if opts.onPeerJoined != nil {
				opts.onPeerJoined(Participant{
					ID:                typedEvent.ID,
					DisplayName:       typedEvent.DisplayName,
					PreferredLanguage: typedEvent.Language,
				})
			}
		case events.PeerLeft:
			if opts.onPeerLeft != nil {
				opts.onPeerLeft(typedEvent.ID)
			}
		case events.PeerLanguageChanged:
			if opts.onPeerLanguage != nil {
				opts.onPeerLanguage(typedEvent.ID, typedEvent.Language)
			}
		}
	}
}
