package reminder

import (
	"time"

	"github.com/google/uuid"
)

type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekdays Frequency = "weekdays"
	FrequencyCustom   Frequency = "custom"
)

type Reminder struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	Type       string    `json:"type" db:"type"`
	Title      string    `json:"title" db:"title"`
	Message    *string   `json:"message" db:"message"`
	TimeHour   int       `json:"time_hour" db:"time_hour"`
	TimeMinute int       `json:"time_minute" db:"time_minute"`
	Frequency  Frequency `json:"frequency" db:"frequency"`
	CustomDays []int     `json:"custom_days" db:"custom_days"`
	IsEnabled  bool      `json:"is_enabled" db:"is_enabled"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

type CreateRequest struct {
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Message    *string   `json:"message"`
	TimeHour   int       `json:"time_hour"`
	TimeMinute int       `json:"time_minute"`
	Frequency  Frequency `json:"frequency"`
	CustomDays []int     `json:"custom_days"`
	IsEnabled  *bool     `json:"is_enabled"`
}

type UpdateRequest struct {
	Type       *string    `json:"type"`
	Title      *string    `json:"title"`
	Message    *string    `json:"message"`
	TimeHour   *int       `json:"time_hour"`
	TimeMinute *int       `json:"time_minute"`
	Frequency  *Frequency `json:"frequency"`
	CustomDays []int      `json:"custom_days"`
	IsEnabled  *bool      `json:"is_enabled"`
}

type ListResponse struct {
	Reminders []*Reminder `json:"reminders"`
	Total     int         `json:"total"`
}

// Due reports whether the reminder should fire at "now". The stored
// hour/minute must land within one minute of the wall clock, and the
// frequency rule must match. Custom days use 0=Sunday..6=Saturday, which is
// exactly time.Weekday's numbering.
func (r *Reminder) Due(now time.Time) bool {
	diff := now.Hour()*60 + now.Minute() - (r.TimeHour*60 + r.TimeMinute)
	if diff < 0 {
		diff = -diff
	}
	if diff > 1 {
		return false
	}

	switch r.Frequency {
	case FrequencyDaily:
		return true
	case FrequencyWeekdays:
		wd := now.Weekday()
		return wd >= time.Monday && wd <= time.Friday
	case FrequencyCustom:
		wd := int(now.Weekday())
		for _, d := range r.CustomDays {
			if d == wd {
				return true
			}
		}
	}
	return false
}
