package events

const (
	// KindPeerJoined identifies a participant joining the session.
	KindPeerJoined Kind = "peer.joined"
	// KindPeerLeft identifies a participant leaving the session.
	KindPeerLeft Kind = "peer.left"
	// KindPeerLanguageChanged identifies a participant switching preferred language.
	KindPeerLanguageChanged Kind = "peer.language_changed"
)

// PeerJoined marks a participant joining the session.
type PeerJoined struct {
	Base
	ID          string
	DisplayName string
	Language    string
}

// NewPeerJoined creates a peer joined event.
func NewPeerJoined(id, displayName, language string) PeerJoined {
	return PeerJoined{Base: NewBase(KindPeerJoined), ID: id, DisplayName: displayName, Language: language}
}

// PeerLeft marks a participant leaving the session.
type PeerLeft struct {
	Base
	ID string
}

// NewPeerLeft creates a peer left event.
func NewPeerLeft(id string) PeerLeft {
	return PeerLeft{Base: NewBase(KindPeerLeft), ID: id}
}

// PeerLanguageChanged marks a participant switching preferred language.
type PeerLanguageChanged struct {
	Base
	ID       string
	Language string
}

// NewPeerLanguageChanged creates a peer language changed event.
func NewPeerLanguageChanged(id, language string) PeerLanguageChanged {
	return PeerLanguageChanged{Base: NewBase(KindPeerLanguageChanged), ID: id, Language: language}
}
