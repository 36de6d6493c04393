package models

// LoginRequest represents the login credentials submitted by a client
type LoginRequest struct {
	Username string `json:"username" binding:"required,nospaces,max=50" example:"faculty001"`
	Password string `json:"password" binding:"required,nospaces" example:"mypassword123"`
}

// RegistrationRequest represents the full faculty signup form.
// Validation beyond basic binding happens in the registration service so
// that rule order and error codes stay deterministic.
type RegistrationRequest struct {
	FullName        string `json:"fullName" example:"Dr. A. Sharma"`
	Email           string `json:"email" example:"a.sharma@rnscollege.edu"`
	Phone           string `json:"phone" example:"9876543210"`
	DateOfBirth     string `json:"dateOfBirth,omitempty" example:"1980-06-15"`
	FacultyID       string `json:"facultyId,omitempty" example:"FAC-0042"`
	Department      string `json:"department" example:"BCA"`
	Designation     string `json:"designation" example:"lecturer"`
	Experience      string `json:"experience" example:"5"`
	Username        string `json:"username" example:"faculty001"`
	Password        string `json:"password" example:"longpass1"`
	ConfirmPassword string `json:"confirmPassword" example:"longpass1"`
	AgreeToTerms    bool   `json:"agreeToTerms" example:"true"`
}

// StatusChangeRequest represents an administrative approval decision
type StatusChangeRequest struct {
	Status     string `json:"status" binding:"required,oneof=approved rejected" example:"approved"`
	ApprovedBy string `json:"approvedBy,omitempty" example:"registrar"`
}

// ActivationRequest toggles whether an account may authenticate
type ActivationRequest struct {
	Active *bool `json:"active" binding:"required" example:"true"`
}
