package repository

import (
	"context"
	"time"

	"facultyauth/internal/models"
)

// AccountRepository defines the credential store: durable faculty accounts
// with unique usernames, emails, and faculty id numbers. Uniqueness is
// enforced atomically at the storage layer; two concurrent Creates with the
// same username cannot both succeed.
type AccountRepository interface {
	// Create inserts the account and assigns its ID and CreatedAt. Collisions
	// return ErrDuplicateUsername, ErrDuplicateEmail, or ErrDuplicateFacultyID.
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	// GetByUsername is case-sensitive, matching the original system.
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// ExistsByEmail matches case-insensitively; emails are stored lower-cased.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByFacultyID(ctx context.Context, facultyID string) (bool, error)
	UpdateLastLogin(ctx context.Context, id int64, lastLogin time.Time) error
	UpdateActivation(ctx context.Context, id int64, active bool) error
	// UpdateRegistrationStatus transitions pending accounts to approved or
	// rejected. A transition attempted from a terminal state returns
	// ErrInvalidStateTransition.
	UpdateRegistrationStatus(ctx context.Context, id int64, status models.RegistrationStatus, approvedBy *string) error
	List(ctx context.Context, filter AccountFilter) ([]models.Account, error)
}

// AccountFilter defines the filter options for listing accounts
type AccountFilter struct {
	Status     *models.RegistrationStatus
	Department *models.Department
	Limit      *int
	Offset     *int
}
