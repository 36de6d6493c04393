// Package testutil provides utilities for testing
package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"facultyauth/internal/models"
	"facultyauth/internal/repository"
)

// FakeAccountRepo is an in-memory repository.AccountRepository. All methods
// hold a mutex, so the uniqueness guarantees match the real store even under
// concurrent Creates.
type FakeAccountRepo struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]*models.Account

	// CreateErr, when set, is returned by Create before any state change.
	CreateErr error
	// GetErr, when set, is returned by GetByID and GetByUsername.
	GetErr error
	// UpdateLastLoginErr, when set, is returned by UpdateLastLogin.
	UpdateLastLoginErr error
	// Calls counts invocations per method name.
	Calls map[string]int
}

// NewFakeAccountRepo creates an empty in-memory account repository
func NewFakeAccountRepo() *FakeAccountRepo {
	return &FakeAccountRepo{
		nextID:   1,
		accounts: make(map[int64]*models.Account),
		Calls:    make(map[string]int),
	}
}

func (r *FakeAccountRepo) record(method string) {
	r.Calls[method]++
}

func (r *FakeAccountRepo) Create(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("Create")

	if r.CreateErr != nil {
		return r.CreateErr
	}

	email := strings.ToLower(account.Email)
	for _, existing := range r.accounts {
		if existing.Username == account.Username {
			return repository.ErrDuplicateUsername
		}
		if existing.Email == email {
			return repository.ErrDuplicateEmail
		}
		if existing.FacultyIDNumber != nil && account.FacultyIDNumber != nil &&
			*existing.FacultyIDNumber == *account.FacultyIDNumber {
			return repository.ErrDuplicateFacultyID
		}
	}

	account.ID = r.nextID
	account.Email = email
	account.CreatedAt = time.Now()
	r.nextID++

	stored := *account
	r.accounts[stored.ID] = &stored
	return nil
}

func (r *FakeAccountRepo) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("GetByID")

	if r.GetErr != nil {
		return nil, r.GetErr
	}
	account, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (r *FakeAccountRepo) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("GetByUsername")

	if r.GetErr != nil {
		return nil, r.GetErr
	}
	for _, account := range r.accounts {
		if account.Username == username {
			copied := *account
			return &copied, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func (r *FakeAccountRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("ExistsByUsername")

	for _, account := range r.accounts {
		if account.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *FakeAccountRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("ExistsByEmail")

	email = strings.ToLower(email)
	for _, account := range r.accounts {
		if account.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *FakeAccountRepo) ExistsByFacultyID(ctx context.Context, facultyID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("ExistsByFacultyID")

	for _, account := range r.accounts {
		if account.FacultyIDNumber != nil && *account.FacultyIDNumber == facultyID {
			return true, nil
		}
	}
	return false, nil
}

func (r *FakeAccountRepo) UpdateLastLogin(ctx context.Context, id int64, lastLogin time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("UpdateLastLogin")

	if r.UpdateLastLoginErr != nil {
		return r.UpdateLastLoginErr
	}
	account, ok := r.accounts[id]
	if !ok {
		return repository.ErrAccountNotFound
	}
	account.LastLogin = &lastLogin
	return nil
}

func (r *FakeAccountRepo) UpdateActivation(ctx context.Context, id int64, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("UpdateActivation")

	account, ok := r.accounts[id]
	if !ok {
		return repository.ErrAccountNotFound
	}
	account.IsActive = active
	return nil
}

func (r *FakeAccountRepo) UpdateRegistrationStatus(ctx context.Context, id int64, status models.RegistrationStatus, approvedBy *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("UpdateRegistrationStatus")

	account, ok := r.accounts[id]
	if !ok {
		return repository.ErrAccountNotFound
	}
	if account.Status != models.RegistrationPending {
		return repository.ErrInvalidStateTransition
	}
	now := time.Now()
	account.Status = status
	account.ApprovedBy = approvedBy
	account.ApprovedAt = &now
	return nil
}

func (r *FakeAccountRepo) List(ctx context.Context, filter repository.AccountFilter) ([]models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("List")

	var accounts []models.Account
	for _, account := range r.accounts {
		if filter.Status != nil && account.Status != *filter.Status {
			continue
		}
		if filter.Department != nil && account.Department != *filter.Department {
			continue
		}
		accounts = append(accounts, *account)
	}
	return accounts, nil
}

// Count returns the number of stored accounts.
func (r *FakeAccountRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.accounts)
}

// RecordedAttempt is one row captured by FakeLoginAttemptRepo.
type RecordedAttempt struct {
	AccountID     *int64
	Successful    bool
	SourceAddress string
	At            time.Time
}

// FakeLoginAttemptRepo is an in-memory repository.LoginAttemptRepository.
type FakeLoginAttemptRepo struct {
	mu       sync.Mutex
	attempts []RecordedAttempt

	// RecordErr, when set, is returned by Record without capturing the attempt.
	RecordErr error
	// DeleteErr, when set, is returned by DeleteOlderThan without pruning.
	DeleteErr error
}

// NewFakeLoginAttemptRepo creates an empty in-memory attempt log
func NewFakeLoginAttemptRepo() *FakeLoginAttemptRepo {
	return &FakeLoginAttemptRepo{}
}

func (r *FakeLoginAttemptRepo) Record(ctx context.Context, accountID *int64, successful bool, sourceAddress string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.RecordErr != nil {
		return r.RecordErr
	}
	r.attempts = append(r.attempts, RecordedAttempt{
		AccountID:     accountID,
		Successful:    successful,
		SourceAddress: sourceAddress,
		At:            at,
	})
	return nil
}

func (r *FakeLoginAttemptRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.DeleteErr != nil {
		return 0, r.DeleteErr
	}

	kept := r.attempts[:0]
	var removed int64
	for _, attempt := range r.attempts {
		if attempt.At.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, attempt)
	}
	r.attempts = kept
	return removed, nil
}

// Attempts returns a copy of the captured attempts.
func (r *FakeLoginAttemptRepo) Attempts() []RecordedAttempt {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedAttempt, len(r.attempts))
	copy(out, r.attempts)
	return out
}
