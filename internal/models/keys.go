package models

import (
	"fmt"
	"strings"
	"time"
)

// Document key conventions. These double as light indexing and are the wire
// contracts shared with the mobile client, so their shapes must not change.

// DateKey returns the YYYYMMDD key for a day.
func DateKey(t time.Time) string {
	return t.Format("20060102")
}

// ChallengeRef returns the challenge reference stored on user profiles,
// e.g. "Challenge/20251203".
func ChallengeRef(id int) string {
	return fmt.Sprintf("Challenge/%d", id)
}

// ChallengeIDFromRef parses a challenge reference back into its id.
func ChallengeIDFromRef(ref string) (int, error) {
	rest, ok := strings.CutPrefix(ref, "Challenge/")
	if !ok {
		return 0, fmt.Errorf("malformed challenge ref %q", ref)
	}
	var id int
	if _, err := fmt.Sscanf(rest, "%d", &id); err != nil {
		return 0, fmt.Errorf("malformed challenge ref %q: %w", ref, err)
	}
	return id, nil
}

// PostKey returns the one-post-per-day key "{uid}-{YYYY-MM-DD}".
func PostKey(uid string, day time.Time) string {
	return uid + "-" + day.Format("2006-01-02")
}

// PairKey returns the canonical friend-relation key for an unordered pair.
// The smaller uid always comes first so lookup and write agree on one
// representation.
func PairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "--" + b
}

// OrderPair returns the pair in canonical order.
func OrderPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

// RequestKey returns the directional friend-request key "{from}--{to}".
func RequestKey(from, to string) string {
	return from + "--" + to
}
