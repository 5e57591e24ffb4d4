package conversation

import "testing"

func TestSessionViewJoinOrderAndRejoin(t *testing.T) {
	view := newSessionView()

	if !view.join(Participant{ID: "a", PreferredLanguage: "en"}) {
		t.Fatalf("expected the first join reported as new")
	}
	if !view.join(Participant{ID: "b", PreferredLanguage: "es"}) {
		t.Fatalf("expected the second join reported as new")
	}
	if view.join(Participant{ID: "a", DisplayName: "Alice", PreferredLanguage: "fr"}) {
		t.Fatalf("expected a re-join reported as already known")
	}

	participants := view.snapshot()
	if len(participants) != 2 {
		t.Fatalf("expected two participants, got %d", len(participants))
	}
	if participants[0].ID != "a" || participants[1].ID != "b" {
		t.Fatalf("expected first-join order preserved, got %v", participants)
	}
	if participants[0].DisplayName != "Alice" || participants[0].PreferredLanguage != "fr" {
		t.Fatalf("expected the re-join to refresh the record, got %+v", participants[0])
	}
}

func TestSessionViewJoinRejectsEmptyID(t *testing.T) {
	view := newSessionView()
	if view.join(Participant{DisplayName: "nameless"}) {
		t.Fatalf("expected a join without an id rejected")
	}
	if len(view.snapshot()) != 0 {
		t.Fatalf("expected no participants recorded")
	}
}

func TestSessionViewLeave(t *testing.T) {
	view := newSessionView()
	view.join(Participant{ID: "a"})
	view.join(Participant{ID: "b"})

	if !view.leave("a") {
		t.Fatalf("expected leaving a known participant to report true")
	}
	if view.leave("a") {
		t.Fatalf("expected a repeated leave to report false")
	}

	participants := view.snapshot()
	if len(participants) != 1 || participants[0].ID != "b" {
		t.Fatalf("expected only the remaining participant, got %v", participants)
	}
}

func TestSessionViewSetLanguage(t *testing.T) {
	view := newSessionView()
	view.join(Participant{ID: "a", PreferredLanguage: "en"})

	if !view.setLanguage("a", "fr") {
		t.Fatalf("expected a language change reported")
	}
	if view.setLanguage("a", "fr") {
		t.Fatalf("expected an unchanged language reported as no-op")
	}
	if view.setLanguage("ghost", "fr") {
		t.Fatalf("expected an unknown participant reported as no-op")
	}

	if got := view.snapshot()[0].PreferredLanguage; got != "fr" {
		t.Fatalf("expected the language updated, got %q", got)
	}
}

func TestSessionViewFirstPeer(t *testing.T) {
	view := newSessionView()

	if _, ok := view.firstPeer("a"); ok {
		t.Fatalf("expected no peer in an empty view")
	}

	view.join(Participant{ID: "a"})
	if _, ok := view.firstPeer("a"); ok {
		t.Fatalf("expected no peer when only the local participant joined")
	}

	view.join(Participant{ID: "b", PreferredLanguage: "es"})
	view.join(Participant{ID: "c", PreferredLanguage: "fr"})

	peer, ok := view.firstPeer("a")
	if !ok || peer.ID != "b" {
		t.Fatalf("expected the earliest-joined peer, got %+v, %v", peer, ok)
	}
}
