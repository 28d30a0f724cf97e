package streak

import (
	"time"

	"github.com/google/uuid"
)

type Streak struct {
	ID                uuid.UUID  `json:"id" db:"id"`
	UserID            uuid.UUID  `json:"user_id" db:"user_id"`
	CurrentStreak     int        `json:"current_streak" db:"current_streak"`
	LongestStreak     int        `json:"longest_streak" db:"longest_streak"`
	LastCompletedDate *time.Time `json:"last_completed_date" db:"last_completed_date"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}

type ValidateResponse struct {
	StreakUpdated bool   `json:"streak_updated"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	Message       string `json:"message"`
}

// Result describes the outcome of applying one completion day to a streak.
type Result struct {
	CurrentStreak int
	LongestStreak int
	Changed       bool
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Apply runs the streak transition table for a completion on "today".
// current/longest are the stored values, last is the stored last-completed
// date (nil when the user has no streak row yet). The same rules back both
// the completion path and the validate endpoint, so the two can never drift.
//
//	no prior date        -> current = 1
//	last == today        -> no change (at most one increment per day)
//	last == today - 1d   -> current + 1
//	gap of 2+ days       -> current = 1
//
// longest is the high-water mark of current and never decreases.
func Apply(current, longest int, last *time.Time, today time.Time) Result {
	res := Result{CurrentStreak: current, LongestStreak: longest}

	switch {
	case last == nil:
		res.CurrentStreak = 1
		res.Changed = true
	case SameDay(*last, today):
		// Already counted today.
	case SameDay(last.AddDate(0, 0, 1), today):
		res.CurrentStreak = current + 1
		res.Changed = true
	default:
		res.CurrentStreak = 1
		res.Changed = true
	}

	if res.CurrentStreak > res.LongestStreak {
		res.LongestStreak = res.CurrentStreak
	}

	return res
}

// Milestones are the streak lengths that trigger a celebration push.
var Milestones = map[int]bool{3: true, 7: true, 14: true, 30: true, 50: true, 100: true}

// IsMilestone reports whether count is a notification-worthy streak length.
func IsMilestone(count int) bool {
	return Milestones[count]
}
