package repository

import (
	"context"
	"time"
)

// LoginAttemptRepository is the append-only audit log of authentication
// attempts. The core writes it and never reads it back; retention and review
// belong to external tooling.
type LoginAttemptRepository interface {
	// Record appends one attempt. accountID is nil when the username did not
	// resolve to any account.
	Record(ctx context.Context, accountID *int64, successful bool, sourceAddress string, at time.Time) error
	// DeleteOlderThan prunes attempts recorded before the cutoff and returns
	// the number removed. Used by the retention job only.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
