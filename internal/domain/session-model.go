package domain

import (
	"time"

	"gojobot/internal/i18n"
)

// Session holds per-user preferences. Created lazily on first contact and
// mutated only by the owning user's commands.
type Session struct {
	TelegramID     int64     `json:"telegram_id"`
	Language       i18n.Lang `json:"language"`
	PreferredStore string    `json:"preferred_store"` // digits, empty when unset
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewSession returns the default session for a user: bilingual replies,
// no preferred store.
func NewSession(telegramID int64) *Session {
	now := time.Now()
	return &Session{
		TelegramID: telegramID,
		Language:   i18n.Default,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
