package achievement

import (
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryStreak     Category = "streak"
	CategoryChallenges Category = "challenges"
)

// Definition is one entry of the static achievement catalog.
type Definition struct {
	ID          string   `json:"id" db:"id"`
	Title       string   `json:"title" db:"title"`
	Description string   `json:"description" db:"description"`
	Emoji       string   `json:"emoji" db:"emoji"`
	Category    Category `json:"category" db:"category"`
	Requirement int      `json:"requirement" db:"requirement"`
}

type UserAchievement struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	AchievementID string    `json:"achievement_id" db:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at" db:"unlocked_at"`
}

type WithStatus struct {
	Definition
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

type ListResponse struct {
	Achievements  []*WithStatus `json:"achievements"`
	UnlockedCount int           `json:"unlocked_count"`
	TotalCount    int           `json:"total_count"`
}

// Stats are the numbers achievements are evaluated against.
type Stats struct {
	LongestStreak   int
	TotalChallenges int
}

// Satisfied reports whether the definition's threshold is crossed. Streak
// achievements key off the longest streak: once earned through a since-broken
// streak, they stay earned.
func (d Definition) Satisfied(s Stats) bool {
	switch d.Category {
	case CategoryStreak:
		return s.LongestStreak >= d.Requirement
	case CategoryChallenges:
		return s.TotalChallenges >= d.Requirement
	}
	return false
}

// Catalog is the fixed achievement set, seeded into the database at startup
// and used directly for evaluation. Order matters only for display.
var Catalog = []Definition{
	{ID: "streak_3", Title: "Getting Started", Description: "Maintain a 3-day streak", Emoji: "🌱", Category: CategoryStreak, Requirement: 3},
	{ID: "streak_7", Title: "Week Warrior", Description: "Maintain a 7-day streak", Emoji: "🔥", Category: CategoryStreak, Requirement: 7},
	{ID: "streak_30", Title: "Monthly Master", Description: "Maintain a 30-day streak", Emoji: "⭐", Category: CategoryStreak, Requirement: 30},
	{ID: "streak_100", Title: "Century Club", Description: "Maintain a 100-day streak", Emoji: "👑", Category: CategoryStreak, Requirement: 100},
	{ID: "challenges_5", Title: "First Steps", Description: "Complete 5 challenges", Emoji: "🎯", Category: CategoryChallenges, Requirement: 5},
	{ID: "challenges_25", Title: "Dedicated", Description: "Complete 25 challenges", Emoji: "💪", Category: CategoryChallenges, Requirement: 25},
	{ID: "challenges_50", Title: "Wellness Pro", Description: "Complete 50 challenges", Emoji: "🏆", Category: CategoryChallenges, Requirement: 50},
	{ID: "challenges_100", Title: "Legend", Description: "Complete 100 challenges", Emoji: "🌟", Category: CategoryChallenges, Requirement: 100},
}

// NewlySatisfied returns the catalog entries that stats satisfy but are not
// yet in the unlocked set.
func NewlySatisfied(s Stats, unlocked map[string]bool) []Definition {
	var out []Definition
	for _, d := range Catalog {
		if unlocked[d.ID] {
			continue
		}
		if d.Satisfied(s) {
			out = append(out, d)
		}
	}
	return out
}
