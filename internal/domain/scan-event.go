package domain

import "time"

// Scan sources.
const (
	ScanSourceText  = "text"
	ScanSourcePhoto = "photo"
)

// ScanEvent is published to the admin feed whenever a code is extracted.
type ScanEvent struct {
	ID         string    `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	Code       string    `json:"code"`
	Source     string    `json:"source"` // "text" or "photo"
	ScannedAt  time.Time `json:"scanned_at"`
}
