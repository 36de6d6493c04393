package auth_test

import (
	"context"
	"testing"
	"time"

	"facultyauth/internal/auth"
	"facultyauth/internal/metrics"
	"facultyauth/internal/models"
	"facultyauth/internal/testutil"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (*auth.Service, *testutil.FakeAccountRepo, *testutil.FakeLoginAttemptRepo, auth.Hasher) {
	t.Helper()

	// bcrypt at minimum cost keeps the suite fast; the service is agnostic to
	// the digest scheme.
	hasher, err := auth.NewHasher(auth.AlgorithmBcrypt, bcrypt.MinCost)
	require.NoError(t, err)

	accounts := testutil.NewFakeAccountRepo()
	attempts := testutil.NewFakeLoginAttemptRepo()
	svc := auth.NewService(accounts, attempts, hasher, zap.NewNop(), time.Second)
	return svc, accounts, attempts, hasher
}

func seedAccount(t *testing.T, accounts *testutil.FakeAccountRepo, hasher auth.Hasher, username, password string, status models.RegistrationStatus, active bool) *models.Account {
	t.Helper()

	digest, err := hasher.Hash(password)
	require.NoError(t, err)

	account := &models.Account{
		Username:        username,
		PasswordDigest:  digest,
		Email:           username + "@rnscollege.edu",
		FullName:        "Dr. Test Faculty",
		PhoneNumber:     "9876543210",
		FacultyIDNumber: testutil.String("FAC-" + username),
		Department:      models.DepartmentBCA,
		Designation:     models.DesignationLecturer,
		YearsExperience: 5,
		Status:          status,
		IsActive:        active,
	}
	require.NoError(t, accounts.Create(context.Background(), account))
	return account
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	svc, accounts, attempts, hasher := newTestService(t)
	seeded := seedAccount(t, accounts, hasher, "faculty001", "longpass1", models.RegistrationApproved, true)

	account, err := svc.Authenticate(context.Background(), "faculty001", "longpass1", "10.0.0.1")
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, seeded.ID, account.ID)
	assert.Equal(t, "faculty001", account.Username)
	assert.NotNil(t, account.LastLogin)

	recorded := attempts.Attempts()
	require.Len(t, recorded, 1)
	assert.True(t, recorded[0].Successful)
	require.NotNil(t, recorded[0].AccountID)
	assert.Equal(t, seeded.ID, *recorded[0].AccountID)
	assert.Equal(t, "10.0.0.1", recorded[0].SourceAddress)
}

func TestAuthService_Authenticate_MissingCredentials(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
	}{
		{"blank username", "", "longpass1"},
		{"blank password", "faculty001", ""},
		{"whitespace username", "   ", "longpass1"},
		{"both blank", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, accounts, attempts, _ := newTestService(t)

			_, err := svc.Authenticate(context.Background(), tt.username, tt.password, "10.0.0.1")
			assert.ErrorIs(t, err, auth.ErrMissingCredentials)

			// Rejected before any store access: no lookup, no audit row.
			assert.Zero(t, accounts.Calls["GetByUsername"])
			assert.Empty(t, attempts.Attempts())
		})
	}
}

func TestAuthService_Authenticate_UnknownUsername(t *testing.T) {
	svc, _, attempts, _ := newTestService(t)

	_, err := svc.Authenticate(context.Background(), "nobody", "longpass1", "10.0.0.1")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	recorded := attempts.Attempts()
	require.Len(t, recorded, 1)
	assert.False(t, recorded[0].Successful)
	assert.Nil(t, recorded[0].AccountID)
}

func TestAuthService_Authenticate_WrongPassword(t *testing.T) {
	svc, accounts, attempts, hasher := newTestService(t)
	seeded := seedAccount(t, accounts, hasher, "faculty001", "longpass1", models.RegistrationApproved, true)

	_, err := svc.Authenticate(context.Background(), "faculty001", "wrongpass", "10.0.0.1")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	recorded := attempts.Attempts()
	require.Len(t, recorded, 1)
	assert.False(t, recorded[0].Successful)
	require.NotNil(t, recorded[0].AccountID)
	assert.Equal(t, seeded.ID, *recorded[0].AccountID)
}

func TestAuthService_Authenticate_InactiveAccount(t *testing.T) {
	tests := []struct {
		name   string
		status models.RegistrationStatus
		active bool
	}{
		{"pending and inactive", models.RegistrationPending, false},
		{"approved but not activated", models.RegistrationApproved, false},
		{"activated but still pending", models.RegistrationPending, true},
		{"rejected", models.RegistrationRejected, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, accounts, attempts, hasher := newTestService(t)
			seedAccount(t, accounts, hasher, "faculty001", "longpass1", tt.status, tt.active)

			_, err := svc.Authenticate(context.Background(), "faculty001", "longpass1", "10.0.0.1")
			assert.ErrorIs(t, err, auth.ErrAccountInactive)

			recorded := attempts.Attempts()
			require.Len(t, recorded, 1)
			assert.False(t, recorded[0].Successful)
		})
	}
}

func TestAuthService_Authenticate_InactiveSkipsDigestComparison(t *testing.T) {
	svc, accounts, attempts, _ := newTestService(t)

	// A digest this malformed would surface an error from any comparison, so
	// getting ErrAccountInactive proves the password was never checked.
	account := &models.Account{
		Username:       "faculty001",
		PasswordDigest: "!!not-a-digest!!",
		Email:          "faculty001@rnscollege.edu",
		FullName:       "Dr. Test Faculty",
		Department:     models.DepartmentBCA,
		Designation:    models.DesignationLecturer,
		Status:         models.RegistrationPending,
	}
	require.NoError(t, accounts.Create(context.Background(), account))

	_, err := svc.Authenticate(context.Background(), "faculty001", "whatever1", "10.0.0.1")
	assert.ErrorIs(t, err, auth.ErrAccountInactive)
	assert.Len(t, attempts.Attempts(), 1)
}

func TestAuthService_Authenticate_AuditFailureDoesNotBlock(t *testing.T) {
	svc, accounts, attempts, hasher := newTestService(t)
	seedAccount(t, accounts, hasher, "faculty001", "longpass1", models.RegistrationApproved, true)
	attempts.RecordErr = assert.AnError

	account, err := svc.Authenticate(context.Background(), "faculty001", "longpass1", "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "faculty001", account.Username)
}

func TestAuthService_Authenticate_LastLoginFailureDoesNotBlock(t *testing.T) {
	svc, accounts, _, hasher := newTestService(t)
	seedAccount(t, accounts, hasher, "faculty001", "longpass1", models.RegistrationApproved, true)
	accounts.UpdateLastLoginErr = assert.AnError

	account, err := svc.Authenticate(context.Background(), "faculty001", "longpass1", "10.0.0.1")
	require.NoError(t, err)
	assert.Nil(t, account.LastLogin)
}

func TestAuthService_Authenticate_MalformedStoredDigest(t *testing.T) {
	svc, accounts, attempts, _ := newTestService(t)

	account := &models.Account{
		Username:       "faculty001",
		PasswordDigest: "!!not-a-digest!!",
		Email:          "faculty001@rnscollege.edu",
		FullName:       "Dr. Test Faculty",
		Department:     models.DepartmentBCA,
		Designation:    models.DesignationLecturer,
		Status:         models.RegistrationApproved,
		IsActive:       true,
	}
	require.NoError(t, accounts.Create(context.Background(), account))

	before := promtestutil.ToFloat64(metrics.LoginAttempts.WithLabelValues("internal_error"))

	_, err := svc.Authenticate(context.Background(), "faculty001", "longpass1", "10.0.0.1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.NotErrorIs(t, err, auth.ErrAccountInactive)
	assert.Empty(t, attempts.Attempts())

	// An unreadable stored digest counts as an internal fault, not storage.
	after := promtestutil.ToFloat64(metrics.LoginAttempts.WithLabelValues("internal_error"))
	assert.Equal(t, before+1, after)
}

func TestAuthService_Authenticate_StorageError(t *testing.T) {
	svc, accounts, attempts, _ := newTestService(t)
	accounts.GetErr = assert.AnError

	_, err := svc.Authenticate(context.Background(), "faculty001", "longpass1", "10.0.0.1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.NotErrorIs(t, err, auth.ErrAccountInactive)
	assert.Empty(t, attempts.Attempts())
}
