package notification

import (
	"time"

	"github.com/google/uuid"
)

type DeviceToken struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	Platform  string    `json:"platform" db:"platform"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type RegisterTokenRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

type UnregisterTokenRequest struct {
	Token string `json:"token"`
}

// SendResult counts per-token outcomes of one dispatch. A user with no
// registered devices yields the zero value.
type SendResult struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
}

// PushResult is what a push provider reports for one multicast call.
// InvalidTokens lists tokens the transport rejected as dead; the dispatcher
// prunes them from the store so they are never retried.
type PushResult struct {
	Success       int
	Failure       int
	InvalidTokens []string
}
