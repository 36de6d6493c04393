package models

import (
	"time"
)

// LoginAttempt represents one authentication attempt, successful or not.
// AccountID is nil when the submitted username resolved to no account.
// Attempts are append-only; the core never mutates or deletes them.
type LoginAttempt struct {
	ID            int64     `json:"id"`
	AccountID     *int64    `json:"account_id"`
	Successful    bool      `json:"successful"`
	SourceAddress string    `json:"source_address"`
	CreatedAt     time.Time `json:"created_at"`
}
