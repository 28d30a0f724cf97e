package tracking

import (
	"time"

	"github.com/google/uuid"
)

// Daily is one per-user-per-day tracking row, upserted on first touch.
type Daily struct {
	ID                uuid.UUID `json:"id" db:"id"`
	UserID            uuid.UUID `json:"user_id" db:"user_id"`
	Date              time.Time `json:"date" db:"date"`
	WaterIntake       int       `json:"water_intake" db:"water_intake"`
	Mood              *string   `json:"mood" db:"mood"`
	BreathingSessions int       `json:"breathing_sessions" db:"breathing_sessions"`
	PostureChecks     int       `json:"posture_checks" db:"posture_checks"`
	ScreenBreaks      int       `json:"screen_breaks" db:"screen_breaks"`
	MorningStretch    bool      `json:"morning_stretch" db:"morning_stretch"`
	EveningReflection bool      `json:"evening_reflection" db:"evening_reflection"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

type UpdateRequest struct {
	WaterIntake       *int    `json:"water_intake"`
	Mood              *string `json:"mood"`
	BreathingSessions *int    `json:"breathing_sessions"`
	PostureChecks     *int    `json:"posture_checks"`
	ScreenBreaks      *int    `json:"screen_breaks"`
	MorningStretch    *bool   `json:"morning_stretch"`
	EveningReflection *bool   `json:"evening_reflection"`
}

type HistoryResponse struct {
	Items []*Daily `json:"items"`
	Total int      `json:"total"`
}
