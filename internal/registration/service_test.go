package registration_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"facultyauth/internal/auth"
	"facultyauth/internal/models"
	"facultyauth/internal/registration"
	"facultyauth/internal/repository"
	"facultyauth/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (*registration.Service, *testutil.FakeAccountRepo, auth.Hasher) {
	t.Helper()

	hasher, err := auth.NewHasher(auth.AlgorithmBcrypt, bcrypt.MinCost)
	require.NoError(t, err)

	accounts := testutil.NewFakeAccountRepo()
	svc := registration.NewService(accounts, hasher, zap.NewNop(), time.Second)
	return svc, accounts, hasher
}

func validRequest() models.RegistrationRequest {
	return models.RegistrationRequest{
		FullName:        "Dr. A. Sharma",
		Email:           "a.sharma@rnscollege.edu",
		Phone:           "9876543210",
		DateOfBirth:     "1980-06-15",
		FacultyID:       "FAC-0042",
		Department:      "BCA",
		Designation:     "lecturer",
		Experience:      "5",
		Username:        "faculty001",
		Password:        "longpass1",
		ConfirmPassword: "longpass1",
		AgreeToTerms:    true,
	}
}

func TestRegistrationService_Register_Success(t *testing.T) {
	svc, accounts, hasher := newTestService(t)

	result, err := svc.Register(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "faculty001", result.Username)
	assert.Equal(t, "a.sharma@rnscollege.edu", result.Email)
	assert.NotZero(t, result.ID)

	stored, err := accounts.GetByID(context.Background(), result.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationPending, stored.Status)
	assert.False(t, stored.IsActive)
	assert.False(t, stored.CanAuthenticate())

	// Stored digest verifies the password but never equals it.
	assert.NotEqual(t, "longpass1", stored.PasswordDigest)
	ok, err := hasher.Verify("longpass1", stored.PasswordDigest)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegistrationService_Register_NormalizesEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := validRequest()
	req.Email = "  A.Sharma@RNSCollege.EDU "
	result, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "a.sharma@rnscollege.edu", result.Email)
}

func TestRegistrationService_Register_ValidationFailureTouchesNoStorage(t *testing.T) {
	svc, accounts, _ := newTestService(t)

	req := validRequest()
	req.Phone = "12345"
	_, err := svc.Register(context.Background(), req)

	var regErr *registration.Error
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, registration.CodeInvalidPhone, regErr.Code)
	assert.Empty(t, accounts.Calls)
}

func TestRegistrationService_Register_Duplicates(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), validRequest())
	require.NoError(t, err)

	tests := []struct {
		name     string
		mutate   func(*models.RegistrationRequest)
		wantCode string
	}{
		{
			name:     "same email",
			mutate:   func(r *models.RegistrationRequest) { r.Username = "faculty002"; r.FacultyID = "FAC-0043" },
			wantCode: registration.CodeEmailExists,
		},
		{
			name: "same email different case",
			mutate: func(r *models.RegistrationRequest) {
				r.Username = "faculty002"
				r.FacultyID = "FAC-0043"
				r.Email = "A.SHARMA@rnscollege.edu"
			},
			wantCode: registration.CodeEmailExists,
		},
		{
			name: "same username",
			mutate: func(r *models.RegistrationRequest) {
				r.Email = "other@rnscollege.edu"
				r.FacultyID = "FAC-0043"
			},
			wantCode: registration.CodeUsernameExists,
		},
		{
			name: "same faculty id",
			mutate: func(r *models.RegistrationRequest) {
				r.Email = "other@rnscollege.edu"
				r.Username = "faculty002"
			},
			wantCode: registration.CodeFacultyIDExists,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			_, err := svc.Register(context.Background(), req)
			var regErr *registration.Error
			require.ErrorAs(t, err, &regErr)
			assert.Equal(t, tt.wantCode, regErr.Code)
			assert.True(t, registration.IsDuplicateCode(regErr.Code))
		})
	}
}

func TestRegistrationService_Register_RaceLoserGetsDuplicateCode(t *testing.T) {
	// The pre-check passes but the insert collides, as when a concurrent
	// registration wins between the two.
	tests := []struct {
		name      string
		createErr error
		wantCode  string
	}{
		{"username collision", repository.ErrDuplicateUsername, registration.CodeUsernameExists},
		{"email collision", repository.ErrDuplicateEmail, registration.CodeEmailExists},
		{"faculty id collision", repository.ErrDuplicateFacultyID, registration.CodeFacultyIDExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, accounts, _ := newTestService(t)
			accounts.CreateErr = tt.createErr

			_, err := svc.Register(context.Background(), validRequest())
			var regErr *registration.Error
			require.ErrorAs(t, err, &regErr)
			assert.Equal(t, tt.wantCode, regErr.Code)
		})
	}
}

func TestRegistrationService_Register_ConcurrentSameUsername(t *testing.T) {
	svc, accounts, _ := newTestService(t)

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest()
			req.Email = fmt.Sprintf("f%d@rnscollege.edu", i)
			req.FacultyID = fmt.Sprintf("FAC-%04d", i)
			_, errs[i] = svc.Register(context.Background(), req)
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var regErr *registration.Error
		require.ErrorAs(t, err, &regErr)
		assert.Equal(t, registration.CodeUsernameExists, regErr.Code)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, accounts.Count())
}

func TestRegistrationService_SetRegistrationStatus(t *testing.T) {
	svc, _, _ := newTestService(t)

	result, err := svc.Register(context.Background(), validRequest())
	require.NoError(t, err)

	err = svc.SetRegistrationStatus(context.Background(), result.ID, models.RegistrationApproved, "registrar")
	require.NoError(t, err)

	// A decided registration cannot be decided again.
	err = svc.SetRegistrationStatus(context.Background(), result.ID, models.RegistrationRejected, "registrar")
	assert.ErrorIs(t, err, repository.ErrInvalidStateTransition)
}

func TestRegistrationService_SetRegistrationStatus_RejectsNonTerminal(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.SetRegistrationStatus(context.Background(), 1, models.RegistrationPending, "registrar")
	var regErr *registration.Error
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, registration.CodeInvalidStatus, regErr.Code)
}

func TestRegistrationService_SetRegistrationStatus_UnknownAccount(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.SetRegistrationStatus(context.Background(), 999, models.RegistrationApproved, "registrar")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestRegistrationService_SetActivation(t *testing.T) {
	svc, accounts, _ := newTestService(t)

	result, err := svc.Register(context.Background(), validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.SetActivation(context.Background(), result.ID, true))
	stored, err := accounts.GetByID(context.Background(), result.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)

	assert.ErrorIs(t, svc.SetActivation(context.Background(), 999, true), repository.ErrAccountNotFound)
}

func TestRegistrationService_Availability(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), validRequest())
	require.NoError(t, err)

	available, message, err := svc.UsernameAvailable(context.Background(), "faculty001")
	require.NoError(t, err)
	assert.False(t, available)
	assert.Equal(t, "Username is already taken", message)

	available, message, err = svc.UsernameAvailable(context.Background(), "faculty002")
	require.NoError(t, err)
	assert.True(t, available)
	assert.Equal(t, "Username is available", message)

	available, _, err = svc.UsernameAvailable(context.Background(), "ab")
	require.NoError(t, err)
	assert.False(t, available)

	available, message, err = svc.EmailAvailable(context.Background(), "A.Sharma@rnscollege.edu")
	require.NoError(t, err)
	assert.False(t, available)
	assert.Equal(t, "Email is already registered", message)

	available, _, err = svc.EmailAvailable(context.Background(), "fresh@rnscollege.edu")
	require.NoError(t, err)
	assert.True(t, available)

	available, _, err = svc.EmailAvailable(context.Background(), "not-an-email")
	require.NoError(t, err)
	assert.False(t, available)
}

// The full account lifecycle: a fresh registration cannot log in until it is
// both approved and activated.
func TestRegistrationService_NewAccountLifecycle(t *testing.T) {
	svc, accounts, hasher := newTestService(t)
	attempts := testutil.NewFakeLoginAttemptRepo()
	authSvc := auth.NewService(accounts, attempts, hasher, zap.NewNop(), time.Second)

	result, err := svc.Register(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = authSvc.Authenticate(context.Background(), "faculty001", "longpass1", "10.0.0.1")
	assert.ErrorIs(t, err, auth.ErrAccountInactive)

	require.NoError(t, svc.SetRegistrationStatus(context.Background(), result.ID, models.RegistrationApproved, "registrar"))

	// Approval alone is not enough.
	_, err = authSvc.Authenticate(context.Background(), "faculty001", "longpass1", "10.0.0.1")
	assert.ErrorIs(t, err, auth.ErrAccountInactive)

	require.NoError(t, svc.SetActivation(context.Background(), result.ID, true))

	account, err := authSvc.Authenticate(context.Background(), "faculty001", "longpass1", "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, result.ID, account.ID)
}
