package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"facultyauth/internal/metrics"
	"facultyauth/internal/models"
	"facultyauth/internal/repository"

	"go.uber.org/zap"
)

var (
	// ErrMissingCredentials indicates a blank username or password. Rejected
	// before any store access; no attempt is recorded.
	ErrMissingCredentials = errors.New("username and password are required")
	// ErrInvalidCredentials covers both unknown usernames and wrong passwords,
	// deliberately undifferentiated to avoid username enumeration.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrAccountInactive indicates the account exists but is not yet approved
	// and activated. Returned without comparing the password.
	ErrAccountInactive = errors.New("account is not active")
)

// Service verifies credentials against the account store and records every
// attempt in the login audit log
type Service struct {
	accounts     repository.AccountRepository
	attempts     repository.LoginAttemptRepository
	hasher       Hasher
	log          *zap.Logger
	storeTimeout time.Duration
}

// NewService creates a new authentication service. storeTimeout bounds each
// store access; zero disables the bound.
func NewService(accounts repository.AccountRepository, attempts repository.LoginAttemptRepository, hasher Hasher, log *zap.Logger, storeTimeout time.Duration) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		accounts:     accounts,
		attempts:     attempts,
		hasher:       hasher,
		log:          log,
		storeTimeout: storeTimeout,
	}
}

// Authenticate verifies a username/password pair. On success the returned
// account has its LastLogin refreshed. Failures return ErrMissingCredentials,
// ErrInvalidCredentials, or ErrAccountInactive; any other error is a storage
// fault the caller may retry.
func (s *Service) Authenticate(ctx context.Context, username, password, sourceAddress string) (*models.Account, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		metrics.LoginAttempts.WithLabelValues("validation_error").Inc()
		return nil, ErrMissingCredentials
	}

	account, err := s.getByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			s.recordAttempt(ctx, nil, false, sourceAddress)
			metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
			return nil, ErrInvalidCredentials
		}
		metrics.LoginAttempts.WithLabelValues("storage_error").Inc()
		return nil, fmt.Errorf("look up account: %w", err)
	}

	// Activation gates before any digest comparison.
	if !account.CanAuthenticate() {
		s.recordAttempt(ctx, &account.ID, false, sourceAddress)
		metrics.LoginAttempts.WithLabelValues("account_inactive").Inc()
		return nil, ErrAccountInactive
	}

	// A Verify error means the stored digest is unreadable, which is a data
	// fault, not a storage one.
	ok, err := s.hasher.Verify(password, account.PasswordDigest)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("internal_error").Inc()
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.recordAttempt(ctx, &account.ID, false, sourceAddress)
		metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
		return nil, ErrInvalidCredentials
	}

	s.recordAttempt(ctx, &account.ID, true, sourceAddress)

	// Last-write-wins; a lost update costs nothing but a stale timestamp.
	now := time.Now()
	if err := s.updateLastLogin(ctx, account.ID, now); err != nil {
		s.log.Warn("failed to update last login",
			zap.Int64("account_id", account.ID),
			zap.Error(err))
	} else {
		account.LastLogin = &now
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	return account, nil
}

func (s *Service) getByUsername(ctx context.Context, username string) (*models.Account, error) {
	ctx, cancel := s.storeCtx(ctx)
	defer cancel()
	return s.accounts.GetByUsername(ctx, username)
}

func (s *Service) updateLastLogin(ctx context.Context, id int64, at time.Time) error {
	ctx, cancel := s.storeCtx(ctx)
	defer cancel()
	return s.accounts.UpdateLastLogin(ctx, id, at)
}

// recordAttempt appends to the audit log. Best-effort: a failed write is
// reported to the log and metrics but never changes the caller's outcome.
func (s *Service) recordAttempt(ctx context.Context, accountID *int64, successful bool, sourceAddress string) {
	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	if err := s.attempts.Record(ctx, accountID, successful, sourceAddress, time.Now()); err != nil {
		metrics.AuditWriteFailures.Inc()
		s.log.Warn("failed to record login attempt",
			zap.Bool("successful", successful),
			zap.String("source_address", sourceAddress),
			zap.Error(err))
	}
}

func (s *Service) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storeTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.storeTimeout)
}
