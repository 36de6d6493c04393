package registration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"facultyauth/internal/auth"
	"facultyauth/internal/metrics"
	"facultyauth/internal/models"
	"facultyauth/internal/repository"

	"go.uber.org/zap"
)

// Result holds the public identifiers of a newly created account. The
// password digest is never exposed.
type Result struct {
	ID       int64
	Username string
	Email    string
}

// Service validates registration payloads and creates pending faculty
// accounts. It also owns the registration-status transition contract used by
// the external approval actor.
type Service struct {
	accounts     repository.AccountRepository
	hasher       auth.Hasher
	log          *zap.Logger
	storeTimeout time.Duration
}

// NewService creates a new registration service
func NewService(accounts repository.AccountRepository, hasher auth.Hasher, log *zap.Logger, storeTimeout time.Duration) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		accounts:     accounts,
		hasher:       hasher,
		log:          log,
		storeTimeout: storeTimeout,
	}
}

// Register validates the payload, checks for collisions, and inserts a new
// account in pending, inactive state. Rule violations return *Error with the
// code of the first failing check; any other error is a storage fault.
func (s *Service) Register(ctx context.Context, req models.RegistrationRequest) (*Result, error) {
	f, verr := validate(req)
	if verr != nil {
		metrics.Registrations.WithLabelValues("validation_error").Inc()
		return nil, verr
	}

	// Friendly pre-checks in the documented order. The insert below still
	// wins races through the store's unique indexes.
	if taken, err := s.emailTaken(ctx, f.Email); err != nil {
		metrics.Registrations.WithLabelValues("storage_error").Inc()
		return nil, fmt.Errorf("check email: %w", err)
	} else if taken {
		metrics.Registrations.WithLabelValues("duplicate").Inc()
		return nil, newError(CodeEmailExists, "Email address is already registered")
	}

	if taken, err := s.usernameTaken(ctx, f.Username); err != nil {
		metrics.Registrations.WithLabelValues("storage_error").Inc()
		return nil, fmt.Errorf("check username: %w", err)
	} else if taken {
		metrics.Registrations.WithLabelValues("duplicate").Inc()
		return nil, newError(CodeUsernameExists, "Username is already taken")
	}

	if f.FacultyID != nil {
		if taken, err := s.facultyIDTaken(ctx, *f.FacultyID); err != nil {
			metrics.Registrations.WithLabelValues("storage_error").Inc()
			return nil, fmt.Errorf("check faculty id: %w", err)
		} else if taken {
			metrics.Registrations.WithLabelValues("duplicate").Inc()
			return nil, newError(CodeFacultyIDExists, "Faculty ID is already registered")
		}
	}

	// Hashing happens outside any store call; the KDF is deliberately slow.
	digest, err := s.hasher.Hash(f.Password)
	if err != nil {
		metrics.Registrations.WithLabelValues("storage_error").Inc()
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &models.Account{
		Username:        f.Username,
		PasswordDigest:  digest,
		Email:           f.Email,
		FullName:        f.FullName,
		PhoneNumber:     f.Phone,
		DateOfBirth:     f.DateOfBirth,
		FacultyIDNumber: f.FacultyID,
		Department:      f.Department,
		Designation:     f.Designation,
		YearsExperience: f.YearsExperience,
		Status:          models.RegistrationPending,
		IsActive:        false,
	}

	if err := s.create(ctx, account); err != nil {
		// A concurrent registration may have won between the pre-check and
		// the insert; surface it as the same duplicate code.
		if repository.IsDuplicate(err) {
			metrics.Registrations.WithLabelValues("duplicate").Inc()
			switch {
			case errors.Is(err, repository.ErrDuplicateEmail):
				return nil, newError(CodeEmailExists, "Email address is already registered")
			case errors.Is(err, repository.ErrDuplicateUsername):
				return nil, newError(CodeUsernameExists, "Username is already taken")
			default:
				return nil, newError(CodeFacultyIDExists, "Faculty ID is already registered")
			}
		}
		metrics.Registrations.WithLabelValues("storage_error").Inc()
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.log.Info("faculty account registered",
		zap.Int64("account_id", account.ID),
		zap.String("username", account.Username),
		zap.String("department", string(account.Department)))

	metrics.Registrations.WithLabelValues("success").Inc()
	return &Result{ID: account.ID, Username: account.Username, Email: account.Email}, nil
}

// SetRegistrationStatus moves a pending account to approved or rejected.
// The transition is valid only from pending; deciding an already-decided
// account returns repository.ErrInvalidStateTransition.
func (s *Service) SetRegistrationStatus(ctx context.Context, accountID int64, status models.RegistrationStatus, approvedBy string) error {
	if !status.Terminal() {
		return newError(CodeInvalidStatus, "Status must be approved or rejected")
	}

	var by *string
	if approvedBy != "" {
		by = &approvedBy
	}

	ctx, cancel := s.storeCtx(ctx)
	defer cancel()
	return s.accounts.UpdateRegistrationStatus(ctx, accountID, status, by)
}

// SetActivation flips whether stored credentials may authenticate. Approval
// and activation are both required before a login can succeed.
func (s *Service) SetActivation(ctx context.Context, accountID int64, active bool) error {
	ctx, cancel := s.storeCtx(ctx)
	defer cancel()
	return s.accounts.UpdateActivation(ctx, accountID, active)
}

// UsernameAvailable reports whether the username passes the registration
// format rule and is not yet taken
func (s *Service) UsernameAvailable(ctx context.Context, username string) (bool, string, error) {
	if !IsValidUsername(username) {
		return false, "Username must be 4-20 characters with letters, numbers, dots, underscores, or hyphens only", nil
	}
	taken, err := s.usernameTaken(ctx, username)
	if err != nil {
		return false, "", fmt.Errorf("check username: %w", err)
	}
	if taken {
		return false, "Username is already taken", nil
	}
	return true, "Username is available", nil
}

// EmailAvailable reports whether the email passes the registration format
// rule and is not yet registered
func (s *Service) EmailAvailable(ctx context.Context, email string) (bool, string, error) {
	normalized := auth.NormalizeEmail(email)
	if normalized == "" || !auth.IsValidEmail(normalized) {
		return false, "Please enter a valid email address", nil
	}
	taken, err := s.emailTaken(ctx, normalized)
	if err != nil {
		return false, "", fmt.Errorf("check email: %w", err)
	}
	if taken {
		return false, "Email is already registered", nil
	}
	return true, "Email is available", nil
}

func (s *Service) emailTaken(ctx context.Context, email string) (bool, error) {
	ctx, cancel := s.storeCtx(ctx)
	defer cancel()
	return s.accounts.ExistsByEmail(ctx, email)
}

func (s *Service) usernameTaken(ctx context.Context, username string) (bool, error) {
	ctx, cancel := s.storeCtx(ctx)
	defer cancel()
	return s.accounts.ExistsByUsername(ctx, username)
}

func (s *Service) facultyIDTaken(ctx context.Context, facultyID string) (bool, error) {
	ctx, cancel := s.storeCtx(ctx)
	defer cancel()
	return s.accounts.ExistsByFacultyID(ctx, facultyID)
}

func (s *Service) create(ctx context.Context, account *models.Account) error {
	ctx, cancel := s.storeCtx(ctx)
	defer cancel()
	return s.accounts.Create(ctx, account)
}

func (s *Service) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storeTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.storeTimeout)
}
