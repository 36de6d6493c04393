package registration

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"facultyauth/internal/auth"
	"facultyauth/internal/models"
)

const (
	// MinPasswordLength is the minimum accepted password length
	MinPasswordLength = 8
	dateLayout        = "2006-01-02"
)

var (
	// Indian mobile number: ten digits, leading digit 6-9
	phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
	// 4-20 characters: letters, digits, dots, underscores, hyphens
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{4,20}$`)
)

// IsValidPhone checks the ten-digit mobile number format
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// IsValidUsername checks the username length and charset
func IsValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// form is a registration request with trimmed fields and parsed values,
// produced only when every format rule passed
type form struct {
	FullName        string
	Email           string
	Phone           string
	DateOfBirth     *time.Time
	FacultyID       *string
	Department      models.Department
	Designation     models.Designation
	YearsExperience int
	Username        string
	Password        string
}

// validate applies the format rules in their fixed order and returns the
// first violation. Duplicate checks happen later, in the service, so that
// no storage is touched while the payload itself is still invalid.
func validate(req models.RegistrationRequest) (*form, *Error) {
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, newError(CodeMissingFullName, "Full name is required")
	}

	email := auth.NormalizeEmail(req.Email)
	if email == "" {
		return nil, newError(CodeMissingEmail, "Email address is required")
	}
	if !auth.IsValidEmail(email) {
		return nil, newError(CodeInvalidEmail, "Please enter a valid email address")
	}

	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return nil, newError(CodeMissingPhone, "Phone number is required")
	}
	if !IsValidPhone(phone) {
		return nil, newError(CodeInvalidPhone, "Please enter a valid 10-digit phone number")
	}

	department := models.Department(strings.TrimSpace(req.Department))
	if department == "" {
		return nil, newError(CodeMissingDepartment, "Department selection is required")
	}
	if !department.Valid() {
		return nil, newError(CodeInvalidDepartment, "Invalid department selected")
	}

	designation := models.Designation(strings.TrimSpace(req.Designation))
	if designation == "" {
		return nil, newError(CodeMissingDesignation, "Designation is required")
	}
	if !designation.Valid() {
		return nil, newError(CodeInvalidDesignation, "Invalid designation selected")
	}

	experience := strings.TrimSpace(req.Experience)
	if experience == "" {
		return nil, newError(CodeMissingExperience, "Years of experience is required")
	}
	years, err := strconv.Atoi(experience)
	if err != nil || years < 0 {
		return nil, newError(CodeInvalidExperience, "Years of experience must be a non-negative number")
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, newError(CodeMissingUsername, "Username is required")
	}
	if !IsValidUsername(username) {
		return nil, newError(CodeInvalidUsername, "Username must be 4-20 characters with letters, numbers, dots, underscores, or hyphens only")
	}

	if req.Password == "" {
		return nil, newError(CodeMissingPassword, "Password is required")
	}
	if len(req.Password) < MinPasswordLength {
		return nil, newError(CodeWeakPassword, "Password must be at least 8 characters long")
	}

	if req.ConfirmPassword != req.Password {
		return nil, newError(CodePasswordMismatch, "Passwords do not match")
	}

	if !req.AgreeToTerms {
		return nil, newError(CodeTermsNotAccepted, "You must agree to the terms and conditions")
	}

	f := &form{
		FullName:        fullName,
		Email:           email,
		Phone:           phone,
		Department:      department,
		Designation:     designation,
		YearsExperience: years,
		Username:        username,
		Password:        req.Password,
	}

	if dob := strings.TrimSpace(req.DateOfBirth); dob != "" {
		parsed, err := time.Parse(dateLayout, dob)
		if err != nil {
			return nil, newError(CodeInvalidDateOfBirth, "Date of birth must use the YYYY-MM-DD format")
		}
		f.DateOfBirth = &parsed
	}

	if facultyID := strings.TrimSpace(req.FacultyID); facultyID != "" {
		f.FacultyID = &facultyID
	}

	return f, nil
}
