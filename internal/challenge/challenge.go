package challenge

import (
	"time"

	"github.com/google/uuid"
)

// History is one completed-challenge log entry. Rows are append-only: there
// is no update path, only account deletion removes them.
type History struct {
	ID           uuid.UUID `json:"id" db:"id"`
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	Title        string    `json:"title" db:"title"`
	Description  *string   `json:"description" db:"description"`
	Duration     *string   `json:"duration" db:"duration"`
	Emoji        *string   `json:"emoji" db:"emoji"`
	FunFact      *string   `json:"fun_fact" db:"fun_fact"`
	GoalCategory *string   `json:"goal_category" db:"goal_category"`
	EnergyLevel  *string   `json:"energy_level" db:"energy_level"`
	CompletedAt  time.Time `json:"completed_at" db:"completed_at"`
}

type CompleteRequest struct {
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	Duration     *string `json:"duration"`
	Emoji        *string `json:"emoji"`
	FunFact      *string `json:"fun_fact"`
	GoalCategory *string `json:"goal_category"`
	EnergyLevel  *string `json:"energy_level"`
}

type HistoryListResponse struct {
	Items    []*History `json:"items"`
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}
