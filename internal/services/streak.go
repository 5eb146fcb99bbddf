package services

import (
	"time"

	"dailydare-backend/internal/models"
)

// Streak policy. One rule applied everywhere: a streak is alive only while
// consecutive daily challenges are completed.
//
//   - on aggregate load, derivedStreak self-heals the stored counter:
//     yesterday completed -> keep stored value; only today completed -> 1;
//     neither -> 0.
//   - on post submit, nextStreak computes the value to persist:
//     yesterday completed -> stored+1; otherwise the streak restarts at 1.

func containsRef(refs []string, ref string) bool {
	for _, r := range refs {
		if r == ref {
			return true
		}
	}
	return false
}

func dayRef(day time.Time) string {
	return "Challenge/" + models.DateKey(day)
}

func derivedStreak(stored int, refs []string, today time.Time) int {
	switch {
	case containsRef(refs, dayRef(today.AddDate(0, 0, -1))):
		return stored
	case containsRef(refs, dayRef(today)):
		return 1
	default:
		return 0
	}
}

func nextStreak(stored int, refs []string, today time.Time) int {
	if containsRef(refs, dayRef(today.AddDate(0, 0, -1))) {
		return stored + 1
	}
	return 1
}
