package models

import (
	"testing"
	"time"
)

func TestPairKeyCanonical(t *testing.T) {
	if PairKey("alice", "bob") != PairKey("bob", "alice") {
		t.Fatalf("PairKey is order-dependent: %q vs %q", PairKey("alice", "bob"), PairKey("bob", "alice"))
	}
	if got := PairKey("bob", "alice"); got != "alice--bob" {
		t.Fatalf("PairKey = %q, want alice--bob", got)
	}
}

func TestOrderPair(t *testing.T) {
	a, b := OrderPair("bob", "alice")
	if a != "alice" || b != "bob" {
		t.Fatalf("OrderPair = (%q, %q), want (alice, bob)", a, b)
	}
}

func TestRequestKeyDirectional(t *testing.T) {
	if RequestKey("alice", "bob") == RequestKey("bob", "alice") {
		t.Fatalf("RequestKey collapsed opposite directions")
	}
	if got := RequestKey("alice", "bob"); got != "alice--bob" {
		t.Fatalf("RequestKey = %q, want alice--bob", got)
	}
}

func TestPostKey(t *testing.T) {
	day := time.Date(2025, 12, 3, 23, 59, 0, 0, time.UTC)
	if got := PostKey("alice", day); got != "alice-2025-12-03" {
		t.Fatalf("PostKey = %q, want alice-2025-12-03", got)
	}
}

func TestDateKey(t *testing.T) {
	day := time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)
	if got := DateKey(day); got != "20250107" {
		t.Fatalf("DateKey = %q, want 20250107", got)
	}
}

func TestChallengeRefRoundtrip(t *testing.T) {
	ref := ChallengeRef(20251203)
	if ref != "Challenge/20251203" {
		t.Fatalf("ChallengeRef = %q", ref)
	}
	id, err := ChallengeIDFromRef(ref)
	if err != nil {
		t.Fatalf("ChallengeIDFromRef: %v", err)
	}
	if id != 20251203 {
		t.Fatalf("id = %d, want 20251203", id)
	}
}

func TestChallengeIDFromRefMalformed(t *testing.T) {
	for _, ref := range []string{"", "20251203", "Task/20251203", "Challenge/abc"} {
		if _, err := ChallengeIDFromRef(ref); err == nil {
			t.Fatalf("ChallengeIDFromRef(%q) = nil error", ref)
		}
	}
}
