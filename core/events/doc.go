// Package events defines the typed conversation lifecycle event contract.
//
// Event kinds are grouped by receiver-facing namespaces:
//
//   - capture.*
//   - message.*
//   - playback.*
//   - notice.*
//   - peer.*
//
// Semantics used across the package:
//
//   - Partial: mutable point-in-time transcript snapshot that can change while
//     a capture cycle is live.
//   - Final: terminal immutable text for the current capture cycle.
//   - Appended: an entry was added to the append-only conversation log and
//     will never change afterwards.
//
// capture events
//
//   - CaptureStarted (capture.started): a channel entered listening.
//   - CaptureCancelled (capture.cancelled): a channel was reset to idle with
//     in-flight results discarded.
//   - TranscriptPartial (capture.transcript_partial): live-preview transcript
//     update for the listening channel.
//   - TranscriptFinal (capture.transcript_final): final transcript; the
//     channel moves on to processing.
//   - ChannelStateChanged (capture.channel_state_changed): any channel state
//     transition, including error entry and auto-recovery to idle.
//
// message events
//
//   - MessageAppended (message.appended): a message joined the conversation
//     log, either from a local capture/typed cycle or from a session peer.
//
// playback events
//
//   - PlaybackStarted (playback.started): synthesis of an utterance was
//     dispatched.
//   - PlaybackEnded (playback.ended): the utterance finished playing without
//     being preempted.
//
// notice events
//
//   - NoticeRaised (notice.raised): a transient (or, for unsupported capture,
//     sticky) error surfaced to the user.
//   - NoticeCleared (notice.cleared): the transient notice display window
//     elapsed.
//
// peer events
//
//   - PeerJoined (peer.joined): a participant joined the session.
//   - PeerLeft (peer.left): a participant left the session.
//   - PeerLanguageChanged (peer.language_changed): a participant switched
//     preferred language.
package events
